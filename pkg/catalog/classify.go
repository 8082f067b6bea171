package catalog

import (
	"strings"

	"github.com/pradeepit93/srienippagam-menu/pkg/models"
)

type classifierRule struct {
	keywords []string
	label    string
}

// Rules are evaluated top to bottom; the first keyword hit wins.
var classifierRules = map[string][]classifierRule{
	models.CategorySweets: {
		{[]string{"mysore", "mysurpa"}, "Mysore Pak"},
		{[]string{"halwa", "alwa"}, "Halwa"},
		{[]string{"laddu"}, "Laddu"},
		{[]string{"burfi", "barfi"}, "Burfi"},
		{[]string{"jamun"}, "Jamun"},
		{[]string{"jalebi", "jilebi"}, "Jalebi"},
		{[]string{"peda"}, "Peda"},
		{[]string{"cake"}, "Cake"},
		{[]string{"roll"}, "Roll"},
		{[]string{"rasgulla", "rasmalai", "bengali"}, "Bengali Sweets"},
		{[]string{"ghee"}, "Ghee Sweets"},
	},
	models.CategoryKaram: {
		{[]string{"murukku"}, "Murukku"},
		{[]string{"mixture"}, "Mixture"},
		{[]string{"sev"}, "Sev"},
		{[]string{"chips"}, "Chips"},
		{[]string{"thattai"}, "Thattai"},
		{[]string{"seedai"}, "Seedai"},
		{[]string{"pakoda"}, "Pakoda"},
	},
	models.CategoryChat: {
		{[]string{"puri"}, "Puri"},
		{[]string{"pav"}, "Pav Bhaji"},
		{[]string{"cutlet"}, "Cutlet"},
		{[]string{"chaat"}, "Chaat"},
	},
}

var classifierDefaults = map[string]string{
	models.CategorySweets: "Traditional Sweets",
	models.CategoryKaram:  "Savories",
	models.CategoryChat:   "Chat Items",
}

// Classify derives a product's sub-category from its name and category.
// Every input maps to exactly one label; unknown categories map to "Other".
func Classify(name, category string) string {
	fallback, known := classifierDefaults[category]
	if !known {
		return models.SubCategoryOther
	}

	lowerName := strings.ToLower(name)
	for _, rule := range classifierRules[category] {
		for _, keyword := range rule.keywords {
			if strings.Contains(lowerName, keyword) {
				return rule.label
			}
		}
	}
	return fallback
}
