package cart

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf16"

	"github.com/go-playground/validator/v10"

	"github.com/pradeepit93/srienippagam-menu/pkg/models"
)

// MaxMessageLength is the messaging channel's ceiling on the order text.
const MaxMessageLength = 2000

const notProvided = "Not Provided"

var validate = validator.New()

// Config controls how orders are rendered and where they are sent.
type Config struct {
	// Destination is the messaging channel's recipient identifier, e.g. a
	// WhatsApp phone number in international format without "+".
	Destination      string
	CurrencySymbol   string
	Signature        string
	MaxMessageLength int
}

func DefaultConfig() Config {
	return Config{
		CurrencySymbol:   "₹",
		Signature:        "Sent via Sri Enippagam Web App",
		MaxMessageLength: MaxMessageLength,
	}
}

// PlaceOrder validates the cart, renders the order message, hands it off and
// clears the cart. On any error the cart is left untouched.
func (c *Cart) PlaceOrder(ctx context.Context, customer models.Customer) (*models.Order, error) {
	order, err := c.PrepareOrder(customer)
	if err != nil {
		return nil, err
	}
	if err := c.SendOrder(ctx, order); err != nil {
		return nil, err
	}
	c.CompleteOrder(c.Lines())
	return order, nil
}

// PrepareOrder validates the cart and renders the order with its link
// without handing it off or changing the cart.
func (c *Cart) PrepareOrder(customer models.Customer) (*models.Order, error) {
	order, err := c.prepareOrder(customer)
	if err != nil {
		c.notifier.Notify(NotificationFor(err))
		return nil, err
	}
	return order, nil
}

// SendOrder hands a prepared order to the messaging channel.
func (c *Cart) SendOrder(ctx context.Context, order *models.Order) error {
	if err := c.handoff.Handoff(ctx, order); err != nil {
		err = fmt.Errorf("%w: %v", ErrHandoffFailed, err)
		c.notifier.Notify(NotificationFor(err))
		return err
	}
	return nil
}

// CompleteOrder takes the ordered lines out of the cart. Quantities added to
// a line after the order was prepared, and lines added since, stay.
func (c *Cart) CompleteOrder(ordered []models.CartLine) {
	for _, o := range ordered {
		idx := c.indexOfLine(o.LineID)
		if idx < 0 {
			continue
		}
		if rest := c.lines[idx].Quantity - o.Quantity; rest > 0 {
			c.lines[idx].Quantity = rest
		} else {
			c.removeAt(idx)
		}
	}
	c.touch()
	c.notifier.Notify(Notification{
		Title:       "Redirecting to WhatsApp",
		Description: "Complete your order on WhatsApp.",
		Severity:    SeverityInfo,
	})
}

func (c *Cart) prepareOrder(customer models.Customer) (*models.Order, error) {
	if len(c.lines) == 0 {
		return nil, ErrEmptyCart
	}

	order := BuildOrder(c.lines, customer)
	if err := ValidateOrder(order); err != nil {
		return nil, err
	}

	order.Message = RenderMessage(order, c.cfg)
	limit := c.cfg.MaxMessageLength
	if limit <= 0 {
		limit = MaxMessageLength
	}
	if n := MessageLength(order.Message); n > limit {
		return nil, fmt.Errorf("%w: %d characters, limit %d", ErrMessageTooLarge, n, limit)
	}

	order.Link = Link(c.cfg.Destination, order.Message)
	order.PlacedAt = c.now().UTC()
	order.Number = models.GenerateOrderNumber(order.PlacedAt)
	return order, nil
}

// BuildOrder derives order items and the total from cart lines.
func BuildOrder(lines []models.CartLine, customer models.Customer) *models.Order {
	order := &models.Order{
		Items:    make([]models.OrderItem, 0, len(lines)),
		Customer: customer,
	}
	for i := range lines {
		line := &lines[i]
		item := models.OrderItem{
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			LineTotal: line.Subtotal(),
		}
		order.Items = append(order.Items, item)
		order.Total += item.LineTotal
	}
	return order
}

// ValidateOrder checks the structural bounds of every order item.
func ValidateOrder(order *models.Order) error {
	if err := validate.Struct(order); err != nil {
		return fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	return nil
}

// RenderMessage renders the human-readable order text.
func RenderMessage(order *models.Order, cfg Config) string {
	var b strings.Builder

	b.WriteString("*New Order Request* 🛍️\n")
	b.WriteString("------------------\n")
	b.WriteString("*Items:*\n")
	for i, item := range order.Items {
		fmt.Fprintf(&b, "%d. %s x %d = %s%d\n", i+1, item.Name, item.Quantity, cfg.CurrencySymbol, item.LineTotal)
	}
	fmt.Fprintf(&b, "\n*Total Amount: %s%d* 💰\n\n", cfg.CurrencySymbol, order.Total)
	b.WriteString("*Customer Details:*\n")
	fmt.Fprintf(&b, "Name: %s\n", orNotProvided(order.Customer.Name))
	fmt.Fprintf(&b, "Address: %s\n", orNotProvided(order.Customer.Address))
	b.WriteString("------------------")
	if cfg.Signature != "" {
		fmt.Fprintf(&b, "\n_%s_", cfg.Signature)
	}
	return b.String()
}

// MessageLength counts characters the way the messaging deep link does,
// in UTF-16 code units.
func MessageLength(s string) int {
	return len(utf16.Encode([]rune(s)))
}

// Link builds the wa.me deep link carrying the message as its text payload.
// Spaces are sent as %20 rather than "+".
func Link(destination, message string) string {
	text := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return "https://wa.me/" + url.PathEscape(destination) + "?text=" + text
}

func orNotProvided(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return notProvided
	}
	return s
}
