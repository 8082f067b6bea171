// Package cart implements the session cart and the checkout that turns it
// into an order message for the messaging channel.
package cart

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/pradeepit93/srienippagam-menu/pkg/models"
)

// AddOptions overrides the defaults used by AddToCart.
type AddOptions struct {
	// Quantity to add. Zero means 1.
	Quantity int
	// UnitPrice charged per unit. Nil means the product's base price.
	UnitPrice *int64
	// UnitLabel is part of the merge key. Empty means the product's
	// default unit: "plate" for Chat items, "1kg" otherwise.
	UnitLabel string
}

// Price returns a pointer suitable for AddOptions.UnitPrice.
func Price(v int64) *int64 { return &v }

// Cart is a session cart. It is not safe for concurrent use; callers
// serialize access per session.
type Cart struct {
	sessionID string
	lines     []models.CartLine
	updatedAt time.Time

	cfg      Config
	notifier Notifier
	handoff  Handoff
	newID    func() string
	now      func() time.Time
}

// Option configures a Cart.
type Option func(*Cart)

func WithConfig(cfg Config) Option { return func(c *Cart) { c.cfg = cfg } }

func WithNotifier(n Notifier) Option { return func(c *Cart) { c.notifier = n } }

func WithHandoff(h Handoff) Option { return func(c *Cart) { c.handoff = h } }

func WithIDGenerator(fn func() string) Option { return func(c *Cart) { c.newID = fn } }

func WithClock(fn func() time.Time) Option { return func(c *Cart) { c.now = fn } }

// New returns an empty cart for the session.
func New(sessionID string, opts ...Option) *Cart {
	c := &Cart{
		sessionID: sessionID,
		cfg:       DefaultConfig(),
		notifier:  nopNotifier{},
		handoff:   nopHandoff{},
		newID:     uuid.NewString,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FromModel restores a cart from its stored form.
func FromModel(m *models.Cart, opts ...Option) *Cart {
	c := New(m.SessionID, opts...)
	c.lines = append(c.lines, m.Lines...)
	c.updatedAt = m.UpdatedAt
	return c
}

// Model returns the stored form of the cart.
func (c *Cart) Model() *models.Cart {
	return &models.Cart{
		SessionID: c.sessionID,
		Lines:     c.Lines(),
		UpdatedAt: c.updatedAt,
	}
}

// Lines returns a copy of the cart lines in insertion order.
func (c *Cart) Lines() []models.CartLine {
	out := make([]models.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Len() int { return len(c.lines) }

// AddToCart adds a product under the given options. A line with the same
// product and unit label is merged by summing quantities; otherwise a new
// line with a fresh id is appended.
func (c *Cart) AddToCart(p models.Product, opts AddOptions) (models.CartLine, error) {
	quantity := opts.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		return models.CartLine{}, fmt.Errorf("%w: got %d", ErrInvalidQuantity, quantity)
	}

	unitPrice := p.Price
	if opts.UnitPrice != nil {
		unitPrice = *opts.UnitPrice
	}
	if unitPrice < 0 {
		return models.CartLine{}, fmt.Errorf("%w: got %d", ErrInvalidPrice, unitPrice)
	}

	unitLabel := opts.UnitLabel
	if unitLabel == "" {
		unitLabel = p.DefaultUnitLabel()
	}

	var line models.CartLine
	if idx := c.indexOfKey(p.ID, unitLabel); idx >= 0 {
		if c.lines[idx].Quantity > math.MaxInt-quantity {
			return models.CartLine{}, fmt.Errorf("%w: adding %d overflows", ErrInvalidQuantity, quantity)
		}
		c.lines[idx].Quantity += quantity
		line = c.lines[idx]
	} else {
		line = models.CartLine{
			LineID:    c.newID(),
			ProductID: p.ID,
			Name:      p.Name,
			Category:  p.Category,
			ImageRef:  p.ImageRef,
			UnitPrice: unitPrice,
			UnitLabel: unitLabel,
			Quantity:  quantity,
		}
		c.lines = append(c.lines, line)
	}
	c.touch()

	c.notifier.Notify(Notification{
		Title:       "Added to cart",
		Description: fmt.Sprintf("%s has been added to your cart.", p.Name),
		Severity:    SeverityInfo,
	})
	return line, nil
}

// UpdateQuantity adds delta to a line's quantity, removing the line when the
// result drops to zero or below. A positive delta that would overflow the
// quantity is rejected and leaves the line as it was.
func (c *Cart) UpdateQuantity(lineID string, delta int) error {
	idx := c.indexOfLine(lineID)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrLineNotFound, lineID)
	}
	if delta == 0 {
		return nil
	}
	if delta > 0 && c.lines[idx].Quantity > math.MaxInt-delta {
		return fmt.Errorf("%w: adding %d overflows", ErrInvalidQuantity, delta)
	}

	if next := c.lines[idx].Quantity + delta; next > 0 {
		c.lines[idx].Quantity = next
	} else {
		c.removeAt(idx)
	}
	c.touch()
	return nil
}

// RemoveFromCart drops a line regardless of its quantity.
func (c *Cart) RemoveFromCart(lineID string) error {
	idx := c.indexOfLine(lineID)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrLineNotFound, lineID)
	}
	c.removeAt(idx)
	c.touch()

	c.notifier.Notify(Notification{
		Title:       "Removed from cart",
		Description: "Item has been removed from your cart.",
		Severity:    SeverityInfo,
	})
	return nil
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
	c.touch()
}

// TotalPrice returns the sum of unit price times quantity over all lines.
func (c *Cart) TotalPrice() int64 {
	var total int64
	for i := range c.lines {
		total += c.lines[i].Subtotal()
	}
	return total
}

// TotalItemCount returns the sum of quantities over all lines.
func (c *Cart) TotalItemCount() int {
	var count int
	for _, line := range c.lines {
		count += line.Quantity
	}
	return count
}

// Summary returns the API view of the cart.
func (c *Cart) Summary() models.CartSummary {
	return models.CartSummary{
		SessionID:  c.sessionID,
		Lines:      c.Lines(),
		ItemCount:  c.TotalItemCount(),
		TotalPrice: c.TotalPrice(),
		UpdatedAt:  c.updatedAt,
	}
}

func (c *Cart) indexOfKey(productID int, unitLabel string) int {
	for i, line := range c.lines {
		if line.ProductID == productID && line.UnitLabel == unitLabel {
			return i
		}
	}
	return -1
}

func (c *Cart) indexOfLine(lineID string) int {
	for i, line := range c.lines {
		if line.LineID == lineID {
			return i
		}
	}
	return -1
}

func (c *Cart) removeAt(idx int) {
	c.lines = append(c.lines[:idx], c.lines[idx+1:]...)
}

func (c *Cart) touch() {
	c.updatedAt = c.now().UTC()
}
