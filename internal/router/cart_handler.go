package router

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pradeepit93/srienippagam-menu/pkg/cart"
	"github.com/pradeepit93/srienippagam-menu/pkg/catalog"
	"github.com/pradeepit93/srienippagam-menu/pkg/events"
	"github.com/pradeepit93/srienippagam-menu/pkg/global"
	"github.com/pradeepit93/srienippagam-menu/pkg/metrics"
	"github.com/pradeepit93/srienippagam-menu/pkg/models"
)

type cartResponse struct {
	Cart          models.CartSummary  `json:"cart"`
	Line          *models.CartLine    `json:"line,omitempty"`
	Notifications []cart.Notification `json:"notifications,omitempty"`
}

type checkoutResponse struct {
	Order         *models.Order       `json:"order"`
	Link          string              `json:"link"`
	Notifications []cart.Notification `json:"notifications,omitempty"`
}

// newCart restores the engine around a stored cart for one request.
func (s *Server) newCart(m *models.Cart, notifier cart.Notifier) *cart.Cart {
	opts := []cart.Option{
		cart.WithNotifier(notifier),
		cart.WithConfig(cart.Config{
			Destination:      s.Config.WhatsAppNumber,
			CurrencySymbol:   s.Config.CurrencySymbol,
			Signature:        s.Config.ShopSignature,
			MaxMessageLength: cart.MaxMessageLength,
		}),
	}
	if s.Handoff != nil {
		opts = append(opts, cart.WithHandoff(s.Handoff))
	}
	return cart.FromModel(m, opts...)
}

// mutateCart applies op to the session cart inside the store's atomic update
// and returns the resulting summary with the notifications op produced.
func (s *Server) mutateCart(c *gin.Context, op func(*cart.Cart) error) (models.CartSummary, *cart.Collector, error) {
	sessionID := c.GetString("sessionId")
	collector := &cart.Collector{}
	var summary models.CartSummary

	err := s.Carts.Update(c.Request.Context(), sessionID, func(m *models.Cart) error {
		// the store may retry fn on conflicts
		collector.Reset()
		ct := s.newCart(m, collector)
		if err := op(ct); err != nil {
			return err
		}
		*m = *ct.Model()
		summary = ct.Summary()
		return nil
	})
	return summary, collector, err
}

// respondCartError maps engine errors to status codes. The body carries the
// user-facing notification only.
func (s *Server) respondCartError(c *gin.Context, err error, collector *cart.Collector) {
	n := cart.NotificationFor(err)
	if collector != nil && len(collector.Notifications) > 0 {
		if last := collector.Notifications[len(collector.Notifications)-1]; last.Severity == cart.SeverityDestructive {
			n = last
		}
	}

	status := http.StatusInternalServerError
	code := "internal_error"
	switch {
	case errors.Is(err, cart.ErrEmptyCart):
		status, code = http.StatusBadRequest, "empty_cart"
	case errors.Is(err, cart.ErrInvalidQuantity), errors.Is(err, cart.ErrInvalidPrice):
		status, code = http.StatusBadRequest, "invalid_option"
	case errors.Is(err, cart.ErrLineNotFound):
		status, code = http.StatusNotFound, "not_found"
	case errors.Is(err, cart.ErrValidationFailed):
		status, code = http.StatusUnprocessableEntity, "validation_failed"
	case errors.Is(err, cart.ErrMessageTooLarge):
		status, code = http.StatusRequestEntityTooLarge, "message_too_large"
	case errors.Is(err, cart.ErrHandoffFailed):
		status, code = http.StatusBadGateway, "handoff_failed"
	}

	if status >= http.StatusInternalServerError {
		c.Error(err)
	}
	c.JSON(status, global.ErrorResponse(n.Title, []global.ValidationError{
		{Field: "cart", Message: n.Description, Code: code},
	}))
}

func (s *Server) GetCart(c *gin.Context) {
	m, err := s.Carts.Load(c.Request.Context(), c.GetString("sessionId"))
	if err != nil {
		s.respondCartError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(cartResponse{Cart: cart.FromModel(m).Summary()}))
}

// AddToCart adds a catalog product under the purchase tier named by unit_label.
// The unit price always comes from the catalog.
func (s *Server) AddToCart(c *gin.Context) {
	var req models.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid JSON format", []global.ValidationError{
			{Field: "body", Message: err.Error(), Code: "json_parse_error"},
		}))
		return
	}

	cat, ok := s.loadedCatalog(c)
	if !ok {
		return
	}
	product, found := cat.Product(req.ProductID)
	if !found {
		c.JSON(http.StatusNotFound, global.ErrorResponse("Product not found", []global.ValidationError{
			{Field: "product_id", Message: "No product exists with this id", Code: "not_found"},
		}))
		return
	}
	tier, found := catalog.TierFor(product, req.UnitLabel)
	if !found {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid purchase option", []global.ValidationError{
			{Field: "unit_label", Message: "This product is not sold in that unit", Code: "invalid_option"},
		}))
		return
	}

	var line models.CartLine
	summary, collector, err := s.mutateCart(c, func(ct *cart.Cart) error {
		var err error
		line, err = ct.AddToCart(product, cart.AddOptions{
			Quantity:  req.Quantity,
			UnitPrice: cart.Price(tier.UnitPrice),
			UnitLabel: tier.Label,
		})
		return err
	})
	if err != nil {
		s.respondCartError(c, err, collector)
		return
	}

	s.Metrics.CartAdds.Inc()
	c.JSON(http.StatusCreated, global.SuccessResponse(cartResponse{
		Cart:          summary,
		Line:          &line,
		Notifications: collector.Notifications,
	}))
}

// UpdateCartLine applies a signed quantity delta to one line.
func (s *Server) UpdateCartLine(c *gin.Context) {
	var req models.UpdateCartLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid JSON format", []global.ValidationError{
			{Field: "delta", Message: "delta must be a non-zero integer", Code: "json_parse_error"},
		}))
		return
	}

	lineID := c.Param("lineId")
	summary, collector, err := s.mutateCart(c, func(ct *cart.Cart) error {
		return ct.UpdateQuantity(lineID, req.Delta)
	})
	if err != nil {
		s.respondCartError(c, err, collector)
		return
	}

	s.Metrics.CartUpdates.Inc()
	c.JSON(http.StatusOK, global.SuccessResponse(cartResponse{Cart: summary, Notifications: collector.Notifications}))
}

func (s *Server) RemoveFromCart(c *gin.Context) {
	lineID := c.Param("lineId")
	summary, collector, err := s.mutateCart(c, func(ct *cart.Cart) error {
		return ct.RemoveFromCart(lineID)
	})
	if err != nil {
		s.respondCartError(c, err, collector)
		return
	}

	s.Metrics.CartRemovals.Inc()
	c.JSON(http.StatusOK, global.SuccessResponse(cartResponse{Cart: summary, Notifications: collector.Notifications}))
}

func (s *Server) ClearCart(c *gin.Context) {
	if err := s.Carts.Delete(c.Request.Context(), c.GetString("sessionId")); err != nil {
		s.respondCartError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(cartResponse{
		Cart: models.CartSummary{SessionID: c.GetString("sessionId"), Lines: []models.CartLine{}},
	}))
}

// Checkout places the order and returns the deep link for the client to open.
// The order is handed off once, outside the store update; only then are the
// ordered lines taken out of the saved cart. The OrderPlaced event never fails
// the request.
func (s *Server) Checkout(c *gin.Context) {
	var req models.CheckoutRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid JSON format", []global.ValidationError{
				{Field: "body", Message: err.Error(), Code: "json_parse_error"},
			}))
			return
		}
	}

	ctx := c.Request.Context()
	sessionID := c.GetString("sessionId")
	collector := &cart.Collector{}

	order, ordered, err := s.sendOrder(ctx, sessionID, collector, models.Customer{
		Name:    req.CustomerName,
		Address: req.CustomerAddress,
	})
	if err != nil {
		s.Metrics.OrdersRejected.WithLabelValues(rejectionReason(err)).Inc()
		s.respondCartError(c, err, collector)
		return
	}

	s.Metrics.OrdersPlaced.Inc()
	s.Metrics.OrderValue.Add(float64(order.Total))

	_, completed, err := s.mutateCart(c, func(ct *cart.Cart) error {
		ct.CompleteOrder(ordered)
		return nil
	})
	if err != nil {
		global.Logger.Error("Order sent but cart not cleared",
			zap.String("order_number", order.Number), zap.Error(err))
	}

	if err := s.Events.PublishOrderPlaced(ctx, events.NewOrderPlaced(sessionID, order)); err != nil {
		s.Metrics.EventFailures.Inc()
		global.Logger.Warn("Failed to publish order event",
			zap.String("order_number", order.Number), zap.Error(err))
	}

	global.Logger.Info("Order placed",
		zap.String("order_number", order.Number),
		zap.Int("items", order.GetItemCount()),
		zap.Int64("total", order.Total))

	c.JSON(http.StatusOK, global.SuccessResponse(checkoutResponse{
		Order:         order,
		Link:          order.Link,
		Notifications: append(collector.Notifications, completed.Notifications...),
	}))
}

// sendOrder prepares the order from the stored cart and hands it off. It
// returns the lines the order was built from.
func (s *Server) sendOrder(ctx context.Context, sessionID string, collector *cart.Collector, customer models.Customer) (*models.Order, []models.CartLine, error) {
	stored, err := s.Carts.Load(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	ct := s.newCart(stored, collector)
	order, err := ct.PrepareOrder(customer)
	if err != nil {
		return nil, nil, err
	}
	ordered := ct.Lines()
	if err := ct.SendOrder(ctx, order); err != nil {
		return nil, nil, err
	}
	return order, ordered, nil
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, cart.ErrEmptyCart):
		return metrics.ReasonEmptyCart
	case errors.Is(err, cart.ErrValidationFailed):
		return metrics.ReasonValidation
	case errors.Is(err, cart.ErrMessageTooLarge):
		return metrics.ReasonMessageTooLarge
	case errors.Is(err, cart.ErrHandoffFailed):
		return metrics.ReasonHandoff
	default:
		return metrics.ReasonOther
	}
}
