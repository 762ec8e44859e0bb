package observability

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"leaseflex/internal/domain"
)

// Metrics holds the service's Prometheus collectors.
type Metrics struct {
	registry *prometheus.Registry

	offersGenerated    *prometheus.CounterVec
	riskScores         prometheus.Histogram
	validationFailures *prometheus.CounterVec
	followupsEmitted   *prometheus.CounterVec
	publishFailures    prometheus.Counter
	claimsSubmitted    *prometheus.CounterVec
}

// NewMetrics registers every collector on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		offersGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leaseflex",
			Name:      "offers_generated_total",
			Help:      "Offers priced and stored.",
		}, []string{"manual_review", "concierge"}),
		riskScores: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "leaseflex",
			Name:      "offer_risk_score",
			Help:      "Risk score of generated offers.",
			Buckets:   prometheus.LinearBuckets(10, 10, 9),
		}),
		validationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leaseflex",
			Name:      "quote_validation_failures_total",
			Help:      "Rejected quote requests by offending field.",
		}, []string{"field"}),
		followupsEmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leaseflex",
			Name:      "followups_emitted_total",
			Help:      "Drip follow-up events emitted by step.",
		}, []string{"step"}),
		publishFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "leaseflex",
			Name:      "event_publish_failures_total",
			Help:      "Offer events that could not be published.",
		}),
		claimsSubmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leaseflex",
			Name:      "claims_submitted_total",
			Help:      "Claims submitted by qualifying event type.",
		}, []string{"event_type"}),
	}
	m.registry.MustRegister(
		m.offersGenerated,
		m.riskScores,
		m.validationFailures,
		m.followupsEmitted,
		m.publishFailures,
		m.claimsSubmitted,
		collectors.NewGoCollector(),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) OfferGenerated(o domain.Offer) {
	m.offersGenerated.WithLabelValues(strconv.FormatBool(o.RequiresManualReview), strconv.FormatBool(o.RequiresConcierge)).Inc()
	m.riskScores.Observe(float64(o.RiskScore))
}

func (m *Metrics) ValidationFailed(fields []string) {
	for _, f := range fields {
		m.validationFailures.WithLabelValues(f).Inc()
	}
}

func (m *Metrics) FollowupEmitted(step int) {
	m.followupsEmitted.WithLabelValues(strconv.Itoa(step)).Inc()
}

func (m *Metrics) PublishFailed() { m.publishFailures.Inc() }

func (m *Metrics) ClaimSubmitted(eventType domain.ClaimEventType) {
	m.claimsSubmitted.WithLabelValues(string(eventType)).Inc()
}
