package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pradeepit93/srienippagam-menu/pkg/models"
)

func ids(products []models.Product) []int {
	out := make([]int, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestFilter_CategoryOnly(t *testing.T) {
	products := []models.Product{
		{ID: 1, Name: "Kaju Katli", Category: "Sweets", Price: 100, Order: 1},
		{ID: 2, Name: "Onion Murukku", Category: "Karam", Price: 50, Order: 2},
	}

	assert.Equal(t, []int{1}, ids(Filter(products, "Sweets", "All", "")))
	assert.Equal(t, []int{1, 2}, ids(Filter(products, "All", "All", "")))
}

func TestFilter_SubCategoryIgnoredForAll(t *testing.T) {
	products := sampleProducts()
	for i := range products {
		products[i].SubCategory = Classify(products[i].Name, products[i].Category)
	}

	// sub-category filter is ignored when the category is "All"
	assert.Len(t, Filter(products, "All", "Halwa", ""), len(products))
	assert.Equal(t, []int{3}, ids(Filter(products, "Sweets", "Halwa", "")))
	assert.Empty(t, Filter(products, "Karam", "Halwa", ""))
}

func TestFilter_QueryMatchesNameOrDescriptionCaseInsensitive(t *testing.T) {
	products := sampleProducts()

	assert.Equal(t, []int{2}, ids(Filter(products, "All", "All", "MURUKKU")))
	assert.Equal(t, []int{3}, ids(Filter(products, "All", "All", "ghee")))
	assert.Empty(t, Filter(products, "All", "All", "pizza"))
}

func TestFilter_SortedByOrderStable(t *testing.T) {
	got := ids(Filter(sampleProducts(), "All", "All", ""))
	assert.Equal(t, []int{2, 3, 5, 1, 4}, got)
}

func TestFilter_Idempotent(t *testing.T) {
	products := SeedProducts()
	queries := []struct{ category, sub, q string }{
		{"All", "All", ""},
		{"Sweets", "All", "laddu"},
		{"Sweets", "Halwa", ""},
		{"Karam", "Murukku", "pepper"},
		{"Chat", "All", "PURI"},
	}

	for _, q := range queries {
		once := Filter(products, q.category, q.sub, q.q)
		twice := Filter(once, q.category, q.sub, q.q)
		assert.Equal(t, once, twice, "%+v", q)
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	products := sampleProducts()
	before := ids(products)
	Filter(products, "All", "All", "")
	assert.Equal(t, before, ids(products))
}

func TestSubCategoriesFor(t *testing.T) {
	products := SeedProducts()

	assert.Equal(t, []string{"All"}, SubCategoriesFor(products, "All"))

	chat := SubCategoriesFor(products, "Chat")
	assert.Equal(t, []string{"All", "Chaat", "Chat Items", "Cutlet", "Pav Bhaji", "Puri"}, chat)

	assert.Equal(t, []string{"All"}, SubCategoriesFor(products, "Desserts"))
}

func TestShowFacets(t *testing.T) {
	assert.False(t, ShowFacets([]string{"All"}))
	assert.False(t, ShowFacets([]string{"All", "Halwa"}))
	assert.False(t, ShowFacets(nil))
	assert.True(t, ShowFacets([]string{"All", "Halwa", "Laddu"}))
}
