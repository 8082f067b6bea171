package models

import "time"

// CartLine is a single line of a session cart. Display fields are copied from
// the product at add time so later catalog changes do not alter the cart.
type CartLine struct {
	LineID    string `json:"line_id"`
	ProductID int    `json:"product_id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	ImageRef  string `json:"image,omitempty"`
	UnitPrice int64  `json:"unit_price"`
	UnitLabel string `json:"unit_label"`
	Quantity  int    `json:"quantity"`
}

// Subtotal returns the line total.
func (l *CartLine) Subtotal() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// Cart is the session-scoped collection of cart lines, kept in insertion order.
type Cart struct {
	SessionID string     `json:"session_id"`
	Lines     []CartLine `json:"lines"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartSummary is the API view of a cart with derived totals.
type CartSummary struct {
	SessionID  string     `json:"session_id"`
	Lines      []CartLine `json:"lines"`
	ItemCount  int        `json:"item_count"`
	TotalPrice int64      `json:"total_price"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type AddToCartRequest struct {
	ProductID int    `json:"product_id" binding:"required,min=1"`
	Quantity  int    `json:"quantity" binding:"omitempty,min=1,max=100"`
	UnitLabel string `json:"unit_label"`
}

type UpdateCartLineRequest struct {
	Delta int `json:"delta" binding:"required,min=-100,max=100"`
}

type CheckoutRequest struct {
	CustomerName    string `json:"customer_name" binding:"max=100"`
	CustomerAddress string `json:"customer_address" binding:"max=500"`
}
