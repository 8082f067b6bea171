package cart

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pradeepit93/srienippagam-menu/pkg/models"
)

var (
	laddu = models.Product{ID: 1, Name: "Boondi Laddu", Category: "Sweets", Price: 100, ImageRef: "Boondi_Laddu.png"}
	sev   = models.Product{ID: 2, Name: "Sattur Sev", Category: "Karam", Price: 50}
	puri  = models.Product{ID: 3, Name: "Sev Puri", Category: "Chat", Price: 80}
)

func sequentialIDs() Option {
	n := 0
	return WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("line-%d", n)
	})
}

func TestAddToCart_MergesSameProductAndLabel(t *testing.T) {
	c := New("s1")

	_, err := c.AddToCart(laddu, AddOptions{Quantity: 2, UnitPrice: Price(50), UnitLabel: "500g"})
	require.NoError(t, err)
	_, err = c.AddToCart(laddu, AddOptions{Quantity: 1, UnitPrice: Price(50), UnitLabel: "500g"})
	require.NoError(t, err)

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.Equal(t, int64(150), c.TotalPrice())
	assert.Equal(t, 3, c.TotalItemCount())
}

func TestAddToCart_DistinctLabelsMakeDistinctLines(t *testing.T) {
	c := New("s1", sequentialIDs())

	_, err := c.AddToCart(laddu, AddOptions{UnitLabel: "500g"})
	require.NoError(t, err)
	_, err = c.AddToCart(laddu, AddOptions{UnitLabel: "1kg"})
	require.NoError(t, err)

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "500g", lines[0].UnitLabel)
	assert.Equal(t, "1kg", lines[1].UnitLabel)
	assert.NotEqual(t, lines[0].LineID, lines[1].LineID)
}

func TestAddToCart_Defaults(t *testing.T) {
	c := New("s1")

	line, err := c.AddToCart(laddu, AddOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, line.Quantity)
	assert.Equal(t, int64(100), line.UnitPrice)
	assert.Equal(t, "1kg", line.UnitLabel)
	assert.Equal(t, "Boondi Laddu", line.Name)
	assert.NotEmpty(t, line.LineID)

	line, err = c.AddToCart(puri, AddOptions{})
	require.NoError(t, err)
	assert.Equal(t, "plate", line.UnitLabel)
}

func TestAddToCart_CopiesProductFields(t *testing.T) {
	c := New("s1")
	p := laddu

	_, err := c.AddToCart(p, AddOptions{})
	require.NoError(t, err)

	p.Name = "Renamed"
	p.Price = 999
	line := c.Lines()[0]
	assert.Equal(t, "Boondi Laddu", line.Name)
	assert.Equal(t, int64(100), line.UnitPrice)
}

func TestAddToCart_RejectsInvalidOptions(t *testing.T) {
	c := New("s1")

	_, err := c.AddToCart(laddu, AddOptions{Quantity: -1})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = c.AddToCart(laddu, AddOptions{UnitPrice: Price(-5)})
	assert.ErrorIs(t, err, ErrInvalidPrice)

	assert.Equal(t, 0, c.Len())
}

func TestAddToCart_Notifies(t *testing.T) {
	collector := &Collector{}
	c := New("s1", WithNotifier(collector))

	_, err := c.AddToCart(sev, AddOptions{})
	require.NoError(t, err)

	require.Len(t, collector.Notifications, 1)
	assert.Equal(t, "Added to cart", collector.Notifications[0].Title)
	assert.Contains(t, collector.Notifications[0].Description, "Sattur Sev")
}

func TestUpdateQuantity(t *testing.T) {
	c := New("s1", sequentialIDs())
	_, err := c.AddToCart(laddu, AddOptions{Quantity: 2})
	require.NoError(t, err)
	_, err = c.AddToCart(sev, AddOptions{})
	require.NoError(t, err)

	require.NoError(t, c.UpdateQuantity("line-1", 3))
	assert.Equal(t, 5, c.Lines()[0].Quantity)

	require.NoError(t, c.UpdateQuantity("line-1", -4))
	assert.Equal(t, 1, c.Lines()[0].Quantity)

	require.NoError(t, c.UpdateQuantity("line-1", -1))
	require.Len(t, c.Lines(), 1)
	assert.Equal(t, "line-2", c.Lines()[0].LineID)

	require.NoError(t, c.UpdateQuantity("line-2", -10))
	assert.Equal(t, 0, c.Len())
}

func TestUpdateQuantity_OverflowIsRejected(t *testing.T) {
	c := New("s1", sequentialIDs())
	_, err := c.AddToCart(laddu, AddOptions{Quantity: 2})
	require.NoError(t, err)
	before := c.Lines()

	err = c.UpdateQuantity("line-1", math.MaxInt)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.Equal(t, before, c.Lines())

	require.NoError(t, c.UpdateQuantity("line-1", math.MaxInt-2))
	assert.Equal(t, math.MaxInt, c.Lines()[0].Quantity)

	_, err = c.AddToCart(laddu, AddOptions{})
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.Equal(t, math.MaxInt, c.Lines()[0].Quantity)

	require.NoError(t, c.UpdateQuantity("line-1", math.MinInt))
	assert.Zero(t, c.Len())
}

func TestAddToCart_DefaultLabelIsFullWeightTier(t *testing.T) {
	c := New("s1")

	_, err := c.AddToCart(laddu, AddOptions{})
	require.NoError(t, err)
	_, err = c.AddToCart(laddu, AddOptions{UnitLabel: "1kg"})
	require.NoError(t, err)

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestUpdateQuantity_UnknownLineLeavesState(t *testing.T) {
	c := New("s1")
	_, err := c.AddToCart(laddu, AddOptions{Quantity: 2})
	require.NoError(t, err)
	before := c.Lines()

	err = c.UpdateQuantity("missing", -1)
	assert.ErrorIs(t, err, ErrLineNotFound)
	assert.Equal(t, before, c.Lines())
}

func TestRemoveFromCart(t *testing.T) {
	collector := &Collector{}
	c := New("s1", sequentialIDs(), WithNotifier(collector))
	_, err := c.AddToCart(laddu, AddOptions{Quantity: 7})
	require.NoError(t, err)
	_, err = c.AddToCart(sev, AddOptions{})
	require.NoError(t, err)

	require.NoError(t, c.RemoveFromCart("line-1"))
	require.Len(t, c.Lines(), 1)
	assert.Equal(t, sev.ID, c.Lines()[0].ProductID)
	assert.Equal(t, "Removed from cart", collector.Notifications[len(collector.Notifications)-1].Title)

	assert.ErrorIs(t, c.RemoveFromCart("line-1"), ErrLineNotFound)
}

// Random operation sequences must never leave a non-positive quantity or
// let the totals drift from the lines.
func TestCart_RandomOperationsKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	products := []models.Product{laddu, sev, puri}
	labels := []string{"", "250g", "500g", "1kg"}
	c := New("s1")

	for i := 0; i < 2000; i++ {
		switch rng.Intn(3) {
		case 0:
			p := products[rng.Intn(len(products))]
			_, err := c.AddToCart(p, AddOptions{Quantity: rng.Intn(5) + 1, UnitLabel: labels[rng.Intn(len(labels))]})
			require.NoError(t, err)
		case 1:
			if lines := c.Lines(); len(lines) > 0 {
				require.NoError(t, c.UpdateQuantity(lines[rng.Intn(len(lines))].LineID, rng.Intn(9)-5))
			}
		case 2:
			if lines := c.Lines(); len(lines) > 0 && rng.Intn(4) == 0 {
				require.NoError(t, c.RemoveFromCart(lines[rng.Intn(len(lines))].LineID))
			}
		}

		var total int64
		var count int
		keys := make(map[string]bool)
		for _, line := range c.Lines() {
			require.Greater(t, line.Quantity, 0)
			key := fmt.Sprintf("%d/%s", line.ProductID, line.UnitLabel)
			require.False(t, keys[key], "duplicate merge key %s", key)
			keys[key] = true
			total += line.UnitPrice * int64(line.Quantity)
			count += line.Quantity
		}
		require.Equal(t, total, c.TotalPrice())
		require.Equal(t, count, c.TotalItemCount())
	}
}

func TestModelRoundTrip(t *testing.T) {
	c := New("s1")
	_, err := c.AddToCart(laddu, AddOptions{Quantity: 2, UnitLabel: "500g", UnitPrice: Price(50)})
	require.NoError(t, err)

	restored := FromModel(c.Model())
	assert.Equal(t, c.Lines(), restored.Lines())
	assert.Equal(t, c.TotalPrice(), restored.TotalPrice())

	// restored cart does not share line storage with the model
	m := c.Model()
	restored = FromModel(m)
	require.NoError(t, restored.UpdateQuantity(m.Lines[0].LineID, 1))
	assert.Equal(t, 2, m.Lines[0].Quantity)
}
