package cart

import "errors"

var (
	// ErrEmptyCart is returned by PlaceOrder when the cart has no lines.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrValidationFailed is returned when a line fails the order bounds.
	ErrValidationFailed = errors.New("order validation failed")
	// ErrMessageTooLarge is returned when the order message exceeds the
	// messaging channel's ceiling.
	ErrMessageTooLarge = errors.New("order message too large")
	// ErrHandoffFailed is returned when the handoff collaborator rejects the order.
	ErrHandoffFailed = errors.New("order handoff failed")

	ErrLineNotFound    = errors.New("cart line not found")
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrInvalidPrice    = errors.New("unit price must not be negative")
)

// NotificationFor maps an engine error to the title and description shown to
// the user. Unknown errors get a generic message so internals never leak.
func NotificationFor(err error) Notification {
	switch {
	case errors.Is(err, ErrEmptyCart):
		return Notification{
			Title:       "Cart is empty",
			Description: "Please add items to your cart before placing an order.",
			Severity:    SeverityDestructive,
		}
	case errors.Is(err, ErrValidationFailed):
		return Notification{
			Title:       "Order validation failed",
			Description: "Please check your cart and try again.",
			Severity:    SeverityDestructive,
		}
	case errors.Is(err, ErrMessageTooLarge):
		return Notification{
			Title:       "Order too large",
			Description: "Please reduce the number of items or place multiple orders.",
			Severity:    SeverityDestructive,
		}
	case errors.Is(err, ErrHandoffFailed):
		return Notification{
			Title:       "Could not send order",
			Description: "We could not reach WhatsApp. Your cart is saved, please try again.",
			Severity:    SeverityDestructive,
		}
	case errors.Is(err, ErrLineNotFound):
		return Notification{
			Title:       "Item not in cart",
			Description: "This item is no longer in your cart.",
			Severity:    SeverityDestructive,
		}
	case errors.Is(err, ErrInvalidQuantity), errors.Is(err, ErrInvalidPrice):
		return Notification{
			Title:       "Could not add item",
			Description: "Please choose a valid quantity and option.",
			Severity:    SeverityDestructive,
		}
	default:
		return Notification{
			Title:       "Something went wrong",
			Description: "Please try again in a moment.",
			Severity:    SeverityDestructive,
		}
	}
}
