package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/pradeepit93/srienippagam-menu/pkg/models"
)

// Tier is a purchase option for a product. Weight tiers scale the per-kg
// base price; the resulting unit price is rounded to a whole currency unit.
type Tier struct {
	Label     string `json:"label"`
	UnitPrice int64  `json:"unit_price"`
}

type tierSpec struct {
	label    string
	fraction decimal.Decimal
}

var weightTiers = []tierSpec{
	{"250g", decimal.New(25, -2)},
	{"500g", decimal.New(5, -1)},
	{models.UnitKilo, decimal.NewFromInt(1)},
}

// Tiers lists the purchase options for a product. Chat items are sold by the
// plate at the base price; everything else is sold by weight.
func Tiers(p models.Product) []Tier {
	if p.Category == models.CategoryChat {
		return []Tier{{Label: p.DefaultUnitLabel(), UnitPrice: p.Price}}
	}

	tiers := make([]Tier, 0, len(weightTiers))
	for _, spec := range weightTiers {
		tiers = append(tiers, Tier{Label: spec.label, UnitPrice: TierPrice(p.Price, spec.fraction)})
	}
	return tiers
}

// TierFor finds the tier with the given label. An empty label or the
// product's default unit ("1kg" or "plate") selects the full-price tier.
func TierFor(p models.Product, label string) (Tier, bool) {
	if label == "" || label == p.DefaultUnitLabel() {
		return Tier{Label: p.DefaultUnitLabel(), UnitPrice: p.Price}, true
	}
	for _, t := range Tiers(p) {
		if t.Label == label {
			return t, true
		}
	}
	return Tier{}, false
}

// TierPrice scales a base price by fraction and rounds half away from zero.
func TierPrice(base int64, fraction decimal.Decimal) int64 {
	return decimal.NewFromInt(base).Mul(fraction).Round(0).IntPart()
}
