package models

import "strings"

// Known catalog categories.
const (
	CategoryAll    = "All"
	CategorySweets = "Sweets"
	CategoryKaram  = "Karam"
	CategoryChat   = "Chat"
)

// Unit labels of the full-price purchase options.
const (
	UnitKilo  = "1kg"
	UnitPlate = "plate"
)

// SubCategoryOther is the classifier fallback for unrecognized categories.
const SubCategoryOther = "Other"

// Product represents a catalog entry. Products are loaded once and never mutated.
type Product struct {
	ID          int    `json:"id" bson:"id" yaml:"id"`
	Name        string `json:"name" bson:"name" yaml:"name"`
	Category    string `json:"category" bson:"category" yaml:"category"`
	SubCategory string `json:"subCategory" bson:"sub_category" yaml:"subCategory"`
	Description string `json:"description" bson:"description" yaml:"description"`
	Price       int64  `json:"price" bson:"price" yaml:"price"`
	Order       int    `json:"order" bson:"order" yaml:"order"`
	ImageRef    string `json:"image" bson:"image" yaml:"image"`
}

// DefaultUnitLabel returns the label of the full-price purchase option,
// used when no option is chosen. It matches the full-weight tier label so
// both spellings of that option share one cart line.
func (p *Product) DefaultUnitLabel() string {
	if p.Category == CategoryChat {
		return UnitPlate
	}
	return UnitKilo
}

// Matches reports whether the lower-cased query occurs in the name or description.
func (p *Product) Matches(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Description), q)
}
