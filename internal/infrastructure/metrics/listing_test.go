package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/bimakw/token-holdings/internal/domain/cursor"
)

func TestListingMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewListingMetrics(reg)

	m.ObservePage(cursor.ModeTypeName, 3)
	m.ObservePage(cursor.ModeTypeName, 0)
	m.ObservePage(cursor.ModeMarketRank, 50)
	m.ObserveIntegrityViolation()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.PagesServed.WithLabelValues("type_name")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PagesServed.WithLabelValues("market_rank")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.IntegrityViolations))
	assert.Equal(t, 2, testutil.CollectAndCount(m.PageItems))
}

func TestListingMetrics_Nil(t *testing.T) {
	var m *ListingMetrics
	assert.NotPanics(t, func() {
		m.ObservePage(cursor.ModeTypeName, 1)
		m.ObserveIntegrityViolation()
	})
}

func TestNewListingMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewListingMetrics(reg)
	assert.Panics(t, func() { NewListingMetrics(reg) })
}
