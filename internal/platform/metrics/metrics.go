package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	LeadsCreated         prometheus.Counter
	WebhooksReceived     prometheus.Counter
	WebhooksIgnored      *prometheus.CounterVec
	PayloadsGenerated    *prometheus.CounterVec
	ProcessingFailures   *prometheus.CounterVec
	ProviderFetchLatency prometheus.Histogram
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		LeadsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kycbridge_leads_created_total",
			Help: "Total number of leads created in the system",
		}),
		WebhooksReceived: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kycbridge_webhooks_received_total",
			Help: "Total number of provider webhook events received",
		}),
		WebhooksIgnored: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "kycbridge_webhooks_ignored_total",
			Help: "Webhook events acknowledged without processing, by reason",
		}, []string{"reason"}),
		PayloadsGenerated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "kycbridge_payloads_generated_total",
			Help: "Partner payloads generated and persisted, by lead type",
		}, []string{"lead_type"}),
		ProcessingFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "kycbridge_processing_failures_total",
			Help: "Payload generation failures, by lead type",
		}, []string{"lead_type"}),
		ProviderFetchLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "kycbridge_provider_fetch_duration_seconds",
			Help:    "Latency of verification-provider data fetches",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// IncrementLeadsCreated increments the leads created counter by 1.
func (m *Metrics) IncrementLeadsCreated() {
	m.LeadsCreated.Inc()
}

// IncrementWebhooksReceived increments the webhook counter by 1.
func (m *Metrics) IncrementWebhooksReceived() {
	m.WebhooksReceived.Inc()
}

// IncrementWebhooksIgnored records an acknowledged-but-unprocessed event.
func (m *Metrics) IncrementWebhooksIgnored(reason string) {
	m.WebhooksIgnored.WithLabelValues(reason).Inc()
}

// IncrementPayloadsGenerated records a persisted partner payload.
func (m *Metrics) IncrementPayloadsGenerated(leadType string) {
	m.PayloadsGenerated.WithLabelValues(leadType).Inc()
}

// IncrementProcessingFailures records a failed transformation.
func (m *Metrics) IncrementProcessingFailures(leadType string) {
	m.ProcessingFailures.WithLabelValues(leadType).Inc()
}

// ObserveProviderFetch records the duration of a provider fetch.
func (m *Metrics) ObserveProviderFetch(d time.Duration) {
	m.ProviderFetchLatency.Observe(d.Seconds())
}
