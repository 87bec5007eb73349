package metrics

import "github.com/prometheus/client_golang/prometheus"

// ChatMetrics exposes counters/histograms for the conversation exchange flow.
type ChatMetrics struct {
	exchangesTotal      *prometheus.CounterVec
	exchangeLatency     *prometheus.HistogramVec
	submissionsRejected *prometheus.CounterVec
	bookingsDetected    prometheus.Counter
}

func NewChatMetrics(reg prometheus.Registerer) *ChatMetrics {
	m := &ChatMetrics{
		exchangesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "appointment_chat",
			Subsystem: "exchange",
			Name:      "total",
			Help:      "Total completed assistant exchanges",
		}, []string{"status"}),
		exchangeLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "appointment_chat",
			Subsystem: "exchange",
			Name:      "latency_seconds",
			Help:      "Latency of one assistant request/response cycle",
			Buckets:   prometheus.DefBuckets,
		}, []string{"status"}),
		submissionsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "appointment_chat",
			Subsystem: "exchange",
			Name:      "rejected_total",
			Help:      "Submissions rejected before reaching the assistant",
		}, []string{"reason"}),
		bookingsDetected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "appointment_chat",
			Subsystem: "booking",
			Name:      "detected_total",
			Help:      "Bookings detected in assistant responses",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.exchangesTotal, m.exchangeLatency, m.submissionsRejected, m.bookingsDetected)
	return m
}

func (m *ChatMetrics) ObserveExchange(status string, seconds float64) {
	if m == nil {
		return
	}
	m.exchangesTotal.WithLabelValues(status).Inc()
	m.exchangeLatency.WithLabelValues(status).Observe(seconds)
}

func (m *ChatMetrics) ObserveRejected(reason string) {
	if m == nil {
		return
	}
	m.submissionsRejected.WithLabelValues(reason).Inc()
}

func (m *ChatMetrics) ObserveBookingDetected() {
	if m == nil {
		return
	}
	m.bookingsDetected.Inc()
}
