// Package metrics holds the Prometheus collectors of the listing core
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bimakw/token-holdings/internal/domain/cursor"
)

// ListingMetrics holds Prometheus metrics for paginated listings
type ListingMetrics struct {
	PagesServed         *prometheus.CounterVec
	PageItems           *prometheus.HistogramVec
	IntegrityViolations prometheus.Counter
}

// NewListingMetrics creates listing metrics registered with reg
func NewListingMetrics(reg prometheus.Registerer) *ListingMetrics {
	factory := promauto.With(reg)

	return &ListingMetrics{
		PagesServed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "listing_pages_served_total",
			Help: "Total number of listing pages served",
		}, []string{"mode"}),
		PageItems: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "listing_page_items",
			Help:    "Number of items returned per listing page",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250},
		}, []string{"mode"}),
		IntegrityViolations: factory.NewCounter(prometheus.CounterOpts{
			Name: "listing_integrity_violations_total",
			Help: "Total number of listings aborted on conflicting snapshots",
		}),
	}
}

// ObservePage records a page of items served in mode. A nil receiver is a no-op.
func (m *ListingMetrics) ObservePage(mode cursor.SortMode, items int) {
	if m == nil {
		return
	}
	m.PagesServed.WithLabelValues(string(mode)).Inc()
	m.PageItems.WithLabelValues(string(mode)).Observe(float64(items))
}

// ObserveIntegrityViolation counts an aborted listing. A nil receiver is a no-op.
func (m *ListingMetrics) ObserveIntegrityViolation() {
	if m == nil {
		return
	}
	m.IntegrityViolations.Inc()
}
