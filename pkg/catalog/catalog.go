// Package catalog holds the read-only product catalog and the pure
// functions that derive categories, facets and filtered views from it.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/pradeepit93/srienippagam-menu/pkg/models"
)

// ErrDataUnavailable is returned when the catalog source cannot be reached or
// returns data that does not describe a valid catalog.
var ErrDataUnavailable = errors.New("catalog data unavailable")

// Catalog is an immutable, validated product list ordered by display rank.
type Catalog struct {
	products   []models.Product
	byID       map[int]int
	categories []string
}

// New validates the products and builds a catalog. Missing sub-categories are
// derived with Classify. The input slice is not retained.
func New(products []models.Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]models.Product, 0, len(products)),
		byID:     make(map[int]int, len(products)),
	}

	seenCategory := make(map[string]bool)
	for i, p := range products {
		if p.ID <= 0 {
			return nil, fmt.Errorf("product at index %d: id must be positive, got %d", i, p.ID)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("product at index %d: duplicate id %d", i, p.ID)
		}
		p.Name = strings.TrimSpace(p.Name)
		p.Category = strings.TrimSpace(p.Category)
		if p.Name == "" {
			return nil, fmt.Errorf("product %d: name is required", p.ID)
		}
		if p.Category == "" || p.Category == models.CategoryAll {
			return nil, fmt.Errorf("product %d: invalid category %q", p.ID, p.Category)
		}
		if p.Price < 0 {
			return nil, fmt.Errorf("product %d: negative price %d", p.ID, p.Price)
		}
		if p.SubCategory == "" {
			p.SubCategory = Classify(p.Name, p.Category)
		}
		if !seenCategory[p.Category] {
			seenCategory[p.Category] = true
			c.categories = append(c.categories, p.Category)
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}

	sort.SliceStable(c.products, func(i, j int) bool {
		return c.products[i].Order < c.products[j].Order
	})
	for i, p := range c.products {
		c.byID[p.ID] = i
	}
	return c, nil
}

// Products returns a copy of every product in display order.
func (c *Catalog) Products() []models.Product {
	out := make([]models.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Len returns the number of products.
func (c *Catalog) Len() int { return len(c.products) }

// Product looks up a product by id.
func (c *Catalog) Product(id int) (models.Product, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return models.Product{}, false
	}
	return c.products[idx], true
}

// Categories returns "All" followed by every category in first-seen order.
func (c *Catalog) Categories() []string {
	out := make([]string, 0, len(c.categories)+1)
	out = append(out, models.CategoryAll)
	return append(out, c.categories...)
}

// SubCategoriesFor returns the facet values for a category: "All" followed
// by the distinct sub-categories of that category, sorted.
func (c *Catalog) SubCategoriesFor(category string) []string {
	return SubCategoriesFor(c.products, category)
}

// Filter applies Filter to the whole catalog.
func (c *Catalog) Filter(category, subCategory, query string) []models.Product {
	return Filter(c.products, category, subCategory, query)
}
