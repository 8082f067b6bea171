package catalog

import (
	"sort"

	"github.com/pradeepit93/srienippagam-menu/pkg/models"
)

// Filter returns the products matching category, sub-category and a free-text
// query, sorted by display order. "All" disables the category filter and,
// when used for either argument, the sub-category filter. An empty query
// matches everything. The input slice is not modified.
func Filter(products []models.Product, category, subCategory, query string) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if category != models.CategoryAll && p.Category != category {
			continue
		}
		if category != models.CategoryAll && subCategory != models.CategoryAll && p.SubCategory != subCategory {
			continue
		}
		if !p.Matches(query) {
			continue
		}
		out = append(out, p)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order < out[j].Order
	})
	return out
}

// SubCategoriesFor returns ["All"] for the "All" category, otherwise "All"
// followed by the sorted distinct sub-categories present in the category.
func SubCategoriesFor(products []models.Product, category string) []string {
	if category == models.CategoryAll {
		return []string{models.CategoryAll}
	}

	seen := make(map[string]struct{})
	var subs []string
	for _, p := range products {
		if p.Category != category {
			continue
		}
		if _, ok := seen[p.SubCategory]; ok {
			continue
		}
		seen[p.SubCategory] = struct{}{}
		subs = append(subs, p.SubCategory)
	}
	sort.Strings(subs)

	return append([]string{models.CategoryAll}, subs...)
}

// ShowFacets reports whether a facet list offers a real choice, i.e. more
// than one value besides the "All" placeholder.
func ShowFacets(subCategories []string) bool {
	n := 0
	for _, s := range subCategories {
		if s != models.CategoryAll {
			n++
		}
	}
	return n > 1
}
