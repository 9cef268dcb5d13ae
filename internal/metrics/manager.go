package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/vytor/trainerdesk/internal/models"
)

// Manager owns the service's Prometheus collectors. A nil *Manager is valid
// and records nothing.
type Manager struct {
	CounterRequests           *prometheus.CounterVec
	CounterHandlePanic        prometheus.Counter
	CounterProgressUpserts    *prometheus.CounterVec
	CounterInsufficientSeries prometheus.Counter
	CounterChartableSeries    prometheus.Counter

	HistRequestDuration *prometheus.HistogramVec
}

func NewTestManager() *Manager {
	return NewManager("trainerdesk", "test", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("trainerdesk", "test", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	return &Manager{
		CounterRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "requests_total",
			Help:      "The total number of incoming requests",
		}, []string{"method", "route", "status"}),
		CounterHandlePanic: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "handle_request_panic_total",
			Help:      "The total number of recovered handler panics",
		}),
		CounterProgressUpserts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "progress_upserts_total",
			Help:      "Progress records saved, by whether a new record was created",
		}, []string{"result"}),
		CounterInsufficientSeries: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "series_insufficient_total",
			Help:      "Metric series built with fewer than two points",
		}),
		CounterChartableSeries: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "series_chartable_total",
			Help:      "Metric series built with enough points to draw",
		}),
		HistRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "request_duration_seconds",
			Help:      "Request latency by route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}
}

func (m *Manager) ProgressUpserted(created bool) {
	if m == nil {
		return
	}
	result := "updated"
	if created {
		result = "created"
	}
	m.CounterProgressUpserts.WithLabelValues(result).Inc()
}

func (m *Manager) SeriesBuilt(results []models.SeriesResult) {
	if m == nil {
		return
	}
	for _, r := range results {
		if r.InsufficientData {
			m.CounterInsufficientSeries.Inc()
		} else {
			m.CounterChartableSeries.Inc()
		}
	}
}

func (m *Manager) PanicRecovered() {
	if m == nil {
		return
	}
	m.CounterHandlePanic.Inc()
}

func (m *Manager) RequestServed(method, route string, status int, seconds float64) {
	if m == nil {
		return
	}
	m.CounterRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HistRequestDuration.WithLabelValues(route).Observe(seconds)
}
