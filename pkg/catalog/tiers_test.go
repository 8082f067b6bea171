package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pradeepit93/srienippagam-menu/pkg/models"
)

func TestTiers_WeightProducts(t *testing.T) {
	p := models.Product{ID: 1, Name: "Sattur Sev", Category: "Karam", Price: 330}

	tiers := Tiers(p)
	require.Len(t, tiers, 3)
	assert.Equal(t, Tier{Label: "250g", UnitPrice: 83}, tiers[0]) // 82.5 rounds up
	assert.Equal(t, Tier{Label: "500g", UnitPrice: 165}, tiers[1])
	assert.Equal(t, Tier{Label: "1kg", UnitPrice: 330}, tiers[2])
}

func TestTiers_ChatSoldByPlate(t *testing.T) {
	p := models.Product{ID: 2, Name: "Vada Pav", Category: "Chat", Price: 60}
	assert.Equal(t, []Tier{{Label: "plate", UnitPrice: 60}}, Tiers(p))
}

func TestTierFor(t *testing.T) {
	sweet := models.Product{ID: 1, Name: "Rasmalai", Category: "Sweets", Price: 50}

	tier, ok := TierFor(sweet, "")
	require.True(t, ok)
	assert.Equal(t, Tier{Label: "1kg", UnitPrice: 50}, tier)

	full, ok := TierFor(sweet, "1kg")
	require.True(t, ok)
	assert.Equal(t, tier, full)

	_, ok = TierFor(sweet, "kg")
	assert.False(t, ok)

	tier, ok = TierFor(sweet, "250g")
	require.True(t, ok)
	assert.Equal(t, int64(13), tier.UnitPrice) // 12.5 rounds up

	_, ok = TierFor(sweet, "plate")
	assert.False(t, ok)

	chat := models.Product{ID: 2, Name: "Dahi Puri", Category: "Chat", Price: 90}
	_, ok = TierFor(chat, "500g")
	assert.False(t, ok)
}

func TestTierPrice(t *testing.T) {
	assert.Equal(t, int64(0), TierPrice(0, decimal.New(25, -2)))
	assert.Equal(t, int64(240), TierPrice(960, decimal.New(25, -2)))
	assert.Equal(t, int64(113), TierPrice(450, decimal.New(25, -2))) // 112.5
}
