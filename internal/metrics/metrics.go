// Package metrics holds the Prometheus collectors for cart, checkout and
// review activity.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "foodcart"

type Metrics struct {
	CartMutations    *prometheus.CounterVec
	CheckoutAttempts *prometheus.CounterVec
	Reviews          *prometheus.CounterVec
	CartTotal        prometheus.Gauge
}

// New creates the collectors and registers them with reg. A nil reg leaves
// them unregistered, which is what tests usually want.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		CartMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_mutations_total",
			Help:      "Cart mutations by operation.",
		}, []string{"op"}),
		CheckoutAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_attempts_total",
			Help:      "Checkout attempts by result.",
		}, []string{"result"}),
		Reviews: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reviews_total",
			Help:      "Review submissions by result.",
		}, []string{"result"}),
		CartTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cart_total_price",
			Help:      "Current cart total in the catalog currency.",
		}),
	}

	if reg != nil {
		reg.MustRegister(m.CartMutations, m.CheckoutAttempts, m.Reviews, m.CartTotal)
	}

	return m
}

// Nop returns unregistered collectors.
func Nop() *Metrics {
	return New(nil)
}
