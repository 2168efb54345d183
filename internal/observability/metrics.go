package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "resume_matcher"

// Metrics holds the Prometheus collectors for the scoring pipeline, the
// embedding oracle and the HTTP API. A nil *Metrics is a valid no-op.
type Metrics struct {
	AnalysesTotal    *prometheus.CounterVec
	AnalysisDuration prometheus.Histogram
	DegradedSteps    *prometheus.CounterVec
	FinalScore       prometheus.Histogram

	EmbedCalls    *prometheus.CounterVec
	EmbedDuration prometheus.Histogram

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

// NewMetrics registers the collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		AnalysesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "analyses_total",
				Help:      "Total number of resume analyses by outcome",
			},
			[]string{"outcome"},
		),
		AnalysisDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "analysis_duration_seconds",
				Help:      "Duration of a single resume analysis in seconds",
				Buckets:   prometheus.DefBuckets,
			},
		),
		DegradedSteps: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "degraded_steps_total",
				Help:      "Optional analysis steps that fell back to a neutral result",
			},
			[]string{"step"},
		),
		FinalScore: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "final_score",
				Help:      "Distribution of blended match scores (0-1)",
				Buckets:   prometheus.LinearBuckets(0.1, 0.1, 10),
			},
		),
		EmbedCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "embedding_calls_total",
				Help:      "Embedding oracle calls by outcome",
			},
			[]string{"outcome"},
		),
		EmbedDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "embedding_call_duration_seconds",
				Help:      "Duration of embedding oracle calls in seconds",
				Buckets:   prometheus.DefBuckets,
			},
		),
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests by route and status code",
			},
			[]string{"route", "code"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route"},
		),
	}
}

// ObserveAnalysis records one finished analysis.
func (m *Metrics) ObserveAnalysis(d time.Duration, finalScore float64, err error) {
	if m == nil {
		return
	}
	m.AnalysesTotal.WithLabelValues(outcome(err)).Inc()
	m.AnalysisDuration.Observe(d.Seconds())
	if err == nil {
		m.FinalScore.Observe(finalScore)
	}
}

// ObserveDegraded records an optional step that fell back.
func (m *Metrics) ObserveDegraded(step string) {
	if m == nil {
		return
	}
	m.DegradedSteps.WithLabelValues(step).Inc()
}

// ObserveEmbed records one embedding oracle call.
func (m *Metrics) ObserveEmbed(d time.Duration, err error) {
	if m == nil {
		return
	}
	m.EmbedCalls.WithLabelValues(outcome(err)).Inc()
	m.EmbedDuration.Observe(d.Seconds())
}

// ObserveHTTP records one served request.
func (m *Metrics) ObserveHTTP(route, code string, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(route, code).Inc()
	m.HTTPDuration.WithLabelValues(route).Observe(d.Seconds())
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
