// Package metrics implements the domain metrics interfaces on Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"trolley/internal/domain/service"
)

// cartMetrics implements the service.CartMetrics interface with Prometheus counters.
type cartMetrics struct {
	cartOperations   *prometheus.CounterVec
	promoValidations *prometheus.CounterVec
}

// NewCartMetrics registers the cart counters on the default registry.
func NewCartMetrics() service.CartMetrics {
	return &cartMetrics{
		cartOperations: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "trolley",
			Name:      "cart_operations_total",
			Help:      "Number of successful cart operations by operation name.",
		}, []string{"operation"}),
		promoValidations: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "trolley",
			Name:      "promo_validations_total",
			Help:      "Number of promo code validations by outcome.",
		}, []string{"result"}),
	}
}

// RecordCartOperation counts one successful cart operation.
func (m *cartMetrics) RecordCartOperation(operation string) {
	m.cartOperations.WithLabelValues(operation).Inc()
}

// RecordPromoValidation counts one promo validation outcome.
func (m *cartMetrics) RecordPromoValidation(result string) {
	m.promoValidations.WithLabelValues(result).Inc()
}
