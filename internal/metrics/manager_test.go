package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/trainerdesk/internal/metrics"
	"github.com/vytor/trainerdesk/internal/models"
)

func TestManager_Counters(t *testing.T) {
	m, reg := metrics.NewTestManagerAndRegistry()

	m.ProgressUpserted(true)
	m.ProgressUpserted(false)
	m.ProgressUpserted(false)
	m.SeriesBuilt([]models.SeriesResult{{InsufficientData: true}, {}, {}})
	m.RequestServed("GET", "/api/clients", 200, 0.01)
	m.RequestServed("GET", "/api/clients", 404, 0.02)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterProgressUpserts.WithLabelValues("created")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CounterProgressUpserts.WithLabelValues("updated")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterInsufficientSeries))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CounterChartableSeries))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterRequests.WithLabelValues("GET", "/api/clients", "404")))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestManager_NilIsNoop(t *testing.T) {
	var m *metrics.Manager
	assert.NotPanics(t, func() {
		m.ProgressUpserted(true)
		m.SeriesBuilt([]models.SeriesResult{{}})
		m.PanicRecovered()
		m.RequestServed("GET", "/", 200, 0)
	})
}
