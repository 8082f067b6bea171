package cart

import (
	"context"

	"github.com/pradeepit93/srienippagam-menu/pkg/models"
)

type Severity string

const (
	SeverityInfo        Severity = "info"
	SeverityDestructive Severity = "destructive"
)

// Notification is a transient user-visible message.
type Notification struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
}

// Notifier displays notifications. Calls are fire-and-forget.
type Notifier interface {
	Notify(n Notification)
}

// Collector is a Notifier that records notifications, e.g. to return them
// with an API response.
type Collector struct {
	Notifications []Notification
}

func (c *Collector) Notify(n Notification) {
	c.Notifications = append(c.Notifications, n)
}

// Reset drops the recorded notifications.
func (c *Collector) Reset() {
	c.Notifications = nil
}

// Handoff delivers a validated order to the external messaging channel,
// typically by opening order.Link.
type Handoff interface {
	Handoff(ctx context.Context, order *models.Order) error
}

type HandoffFunc func(ctx context.Context, order *models.Order) error

func (f HandoffFunc) Handoff(ctx context.Context, order *models.Order) error { return f(ctx, order) }

type nopNotifier struct{}

func (nopNotifier) Notify(Notification) {}

type nopHandoff struct{}

func (nopHandoff) Handoff(context.Context, *models.Order) error { return nil }
