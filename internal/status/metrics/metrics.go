package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for status resolution. All methods are
// safe on a nil receiver.
type Metrics struct {
	// Resolutions by outcome kind
	ResolveOutcome *prometheus.CounterVec

	ResolveLatency prometheus.Histogram

	// Provider call latency by operation ("token", "submit", "status") and result
	ProviderLatency *prometheus.HistogramVec

	// Resolved-store lookups: "hit", "miss", "stale", "error"
	CacheLookups *prometheus.CounterVec

	// Pending-store lookups: "reused", "created"
	PendingLookups *prometheus.CounterVec

	StoreErrors *prometheus.CounterVec

	BreakerState prometheus.Gauge

	QueuePublished *prometheus.CounterVec
	QueueConsumed  *prometheus.CounterVec
}

// New registers on the default registry.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ResolveOutcome: f.NewCounterVec(prometheus.CounterOpts{
			Name: "statusgate_resolve_outcomes_total",
			Help: "Total status resolutions by outcome kind",
		}, []string{"outcome"}),

		ResolveLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "statusgate_resolve_duration_seconds",
			Help:    "Duration of a full status resolution including provider calls",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),

		ProviderLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "statusgate_provider_call_duration_seconds",
			Help:    "Duration of verification provider calls by operation and result",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"operation", "result"}),

		CacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "statusgate_resolved_cache_lookups_total",
			Help: "Resolved status store lookups by result",
		}, []string{"result"}),

		PendingLookups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "statusgate_pending_requests_total",
			Help: "Pending request handling by result",
		}, []string{"result"}),

		StoreErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "statusgate_store_errors_total",
			Help: "Store failures by store and operation",
		}, []string{"store", "operation"}),

		BreakerState: f.NewGauge(prometheus.GaugeOpts{
			Name: "statusgate_provider_circuit_open",
			Help: "Provider circuit breaker state (0=closed, 1=open)",
		}),

		QueuePublished: f.NewCounterVec(prometheus.CounterOpts{
			Name: "statusgate_queue_published_total",
			Help: "Subjects handed to the queue by result",
		}, []string{"result"}),

		QueueConsumed: f.NewCounterVec(prometheus.CounterOpts{
			Name: "statusgate_queue_consumed_total",
			Help: "Queued subjects resolved by outcome kind",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) IncrementOutcome(outcome string) {
	if m != nil {
		m.ResolveOutcome.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) ObserveResolveLatency(d time.Duration) {
	if m != nil {
		m.ResolveLatency.Observe(d.Seconds())
	}
}

// ObserveProviderCall records one outbound provider call.
func (m *Metrics) ObserveProviderCall(operation, result string, d time.Duration) {
	if m != nil {
		m.ProviderLatency.WithLabelValues(operation, result).Observe(d.Seconds())
	}
}

func (m *Metrics) IncrementCacheLookup(result string) {
	if m != nil {
		m.CacheLookups.WithLabelValues(result).Inc()
	}
}

func (m *Metrics) IncrementPending(result string) {
	if m != nil {
		m.PendingLookups.WithLabelValues(result).Inc()
	}
}

func (m *Metrics) IncrementStoreError(store, operation string) {
	if m != nil {
		m.StoreErrors.WithLabelValues(store, operation).Inc()
	}
}

func (m *Metrics) SetBreakerOpen(open bool) {
	if m == nil {
		return
	}
	if open {
		m.BreakerState.Set(1)
		return
	}
	m.BreakerState.Set(0)
}

func (m *Metrics) IncrementPublished(result string) {
	if m != nil {
		m.QueuePublished.WithLabelValues(result).Inc()
	}
}

func (m *Metrics) IncrementConsumed(outcome string) {
	if m != nil {
		m.QueueConsumed.WithLabelValues(outcome).Inc()
	}
}
