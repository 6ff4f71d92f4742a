package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	InboundMessages  *prometheus.CounterVec
	OutboundMessages *prometheus.CounterVec
	AIRequests       *prometheus.CounterVec
	AILatency        *prometheus.HistogramVec
	LedgerWrites     *prometheus.CounterVec
	SweepResults     *prometheus.CounterVec
	Errors           *prometheus.CounterVec
}

var (
	regOnce         sync.Once
	metricsInstance *Metrics
)

// Registry builds and registers the metrics singleton with optional namespace.
func Registry(namespace string) *Metrics {
	regOnce.Do(func() {
		metricsInstance = New(namespace)

		prometheus.MustRegister(metricsInstance.Collectors()...)
	})

	return metricsInstance
}

// New builds unregistered collectors, mostly useful for tests.
func New(namespace string) *Metrics {
	return &Metrics{
		InboundMessages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wa_incoming_messages_total",
			Help:      "Total incoming WhatsApp messages by kind.",
		}, []string{"kind"}),
		OutboundMessages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wa_outgoing_messages_total",
			Help:      "Total outgoing WhatsApp messages by outcome.",
		}, []string{"status"}),
		AIRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ai_requests_total",
			Help:      "Total AI requests by operation and outcome.",
		}, []string{"operation", "status"}),
		AILatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ai_request_duration_seconds",
			Help:      "Latency distribution for AI requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation", "status"}),
		LedgerWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ledger_writes_total",
			Help:      "Total ledger rows written by kind and source.",
		}, []string{"kind", "source"}),
		SweepResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bill_sweep_results_total",
			Help:      "Bill reminder sweep outcomes.",
		}, []string{"result"}),
		Errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "Total errors grouped by component.",
		}, []string{"component"}),
	}
}

func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.InboundMessages,
		m.OutboundMessages,
		m.AIRequests,
		m.AILatency,
		m.LedgerWrites,
		m.SweepResults,
		m.Errors,
	}
}

// The helpers below accept a nil receiver so components can run without metrics.

func (m *Metrics) Inbound(kind string) {
	if m == nil {
		return
	}

	m.InboundMessages.WithLabelValues(kind).Inc()
}

func (m *Metrics) Outbound(success bool) {
	if m == nil {
		return
	}

	m.OutboundMessages.WithLabelValues(statusLabel(success)).Inc()
}

func (m *Metrics) AIRequest(operation string, started time.Time, err error) {
	if m == nil {
		return
	}

	status := statusLabel(err == nil)

	m.AIRequests.WithLabelValues(operation, status).Inc()
	m.AILatency.WithLabelValues(operation, status).Observe(time.Since(started).Seconds())
}

func (m *Metrics) LedgerWrite(kind string, source string) {
	if m == nil {
		return
	}

	m.LedgerWrites.WithLabelValues(kind, source).Inc()
}

func (m *Metrics) Sweep(result string, count int) {
	if m == nil || count == 0 {
		return
	}

	m.SweepResults.WithLabelValues(result).Add(float64(count))
}

func (m *Metrics) Error(component string) {
	if m == nil {
		return
	}

	m.Errors.WithLabelValues(component).Inc()
}

func statusLabel(success bool) string {
	if success {
		return "success"
	}

	return "error"
}
