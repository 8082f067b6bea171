package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Rejection reasons used as the "reason" label of OrdersRejected.
const (
	ReasonEmptyCart       = "empty_cart"
	ReasonValidation      = "validation"
	ReasonMessageTooLarge = "message_too_large"
	ReasonHandoff         = "handoff"
	ReasonOther           = "other"
)

type Registry struct {
	reg            *prometheus.Registry
	CartAdds       prometheus.Counter
	CartUpdates    prometheus.Counter
	CartRemovals   prometheus.Counter
	OrdersPlaced   prometheus.Counter
	OrderValue     prometheus.Counter
	OrdersRejected *prometheus.CounterVec
	CatalogLoads   *prometheus.CounterVec
	CatalogSize    prometheus.Gauge
	ImageFailures  prometheus.Counter
	EventFailures  prometheus.Counter
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	cartAdds := prometheus.NewCounter(prometheus.CounterOpts{Name: "storefront_cart_adds_total"})
	cartUpdates := prometheus.NewCounter(prometheus.CounterOpts{Name: "storefront_cart_updates_total"})
	cartRemovals := prometheus.NewCounter(prometheus.CounterOpts{Name: "storefront_cart_removals_total"})
	ordersPlaced := prometheus.NewCounter(prometheus.CounterOpts{Name: "storefront_orders_placed_total"})
	orderValue := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "storefront_order_value_total",
		Help: "Sum of placed order totals in whole currency units.",
	})
	ordersRejected := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "storefront_orders_rejected_total"}, []string{"reason"})
	catalogLoads := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "storefront_catalog_loads_total"}, []string{"result"})
	catalogSize := prometheus.NewGauge(prometheus.GaugeOpts{Name: "storefront_catalog_products"})
	imageFailures := prometheus.NewCounter(prometheus.CounterOpts{Name: "storefront_image_failures_total"})
	eventFailures := prometheus.NewCounter(prometheus.CounterOpts{Name: "storefront_order_event_failures_total"})

	r.MustRegister(cartAdds, cartUpdates, cartRemovals, ordersPlaced, orderValue, ordersRejected,
		catalogLoads, catalogSize, imageFailures, eventFailures)
	return &Registry{
		reg:            r,
		CartAdds:       cartAdds,
		CartUpdates:    cartUpdates,
		CartRemovals:   cartRemovals,
		OrdersPlaced:   ordersPlaced,
		OrderValue:     orderValue,
		OrdersRejected: ordersRejected,
		CatalogLoads:   catalogLoads,
		CatalogSize:    catalogSize,
		ImageFailures:  imageFailures,
		EventFailures:  eventFailures,
	}
}

// ObserveCatalogLoad records one catalog fetch attempt.
func (r *Registry) ObserveCatalogLoad(err error, products int) {
	if err != nil {
		r.CatalogLoads.WithLabelValues("failure").Inc()
		return
	}
	r.CatalogLoads.WithLabelValues("success").Inc()
	r.CatalogSize.Set(float64(products))
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
