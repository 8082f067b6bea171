package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// OrderItem represents a single serialized line of an order
type OrderItem struct {
	Name      string `json:"name" validate:"required,max=100"`
	Quantity  int    `json:"quantity" validate:"min=1,max=100"`
	UnitPrice int64  `json:"unit_price" validate:"gte=0"`
	LineTotal int64  `json:"line_total"`
}

// Customer holds the optional delivery details entered at checkout
type Customer struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// Order is built at checkout time only. It is never stored.
type Order struct {
	Number   string      `json:"order_number"`
	Items    []OrderItem `json:"items" validate:"required,min=1,dive"`
	Total    int64       `json:"total" validate:"gte=0"`
	Customer Customer    `json:"customer"`
	Message  string      `json:"message"`
	Link     string      `json:"link"`
	PlacedAt time.Time   `json:"placed_at"`
}

// GetItemCount returns the total number of units in the order
func (o *Order) GetItemCount() int {
	var count int
	for _, item := range o.Items {
		count += item.Quantity
	}
	return count
}

func GenerateOrderNumber(now time.Time) string {
	// Format: ORD-YYYYMMDD-HHMMSS-XXXXXX
	return fmt.Sprintf("ORD-%s-%s",
		now.Format("20060102-150405"),
		strings.ToUpper(uuid.NewString()[:6]),
	)
}
