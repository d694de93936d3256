package metrics

import "github.com/prometheus/client_golang/prometheus"

// NLU, comparison, financing and completion Prometheus metrics.
var (
	ParseRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "showroom",
			Name:      "parse_requests_total",
			Help:      "Total number of NLU parse requests by classified intent",
		},
		[]string{"intent"},
	)

	ComparisonsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "showroom",
			Name:      "comparisons_total",
			Help:      "Total comparison requests by resolution outcome",
		},
		[]string{"outcome"}, // "resolved" / "unresolved"
	)

	FinanceCalculationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "showroom",
			Name:      "finance_calculations_total",
			Help:      "Total financing calculations by scenario and status",
		},
		[]string{"scenario", "status"},
	)

	CompletionRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "showroom",
			Name:      "completion_requests_total",
			Help:      "Total LLM completion fallback requests",
		},
		[]string{"provider", "model", "status"},
	)

	CompletionRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "showroom",
			Name:      "completion_request_duration_seconds",
			Help:      "LLM completion request duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"provider", "model"},
	)

	CompletionTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "showroom",
			Name:      "completion_tokens_total",
			Help:      "Total completion tokens consumed",
		},
		[]string{"provider", "model", "type"},
	)
)

var domainMetricsRegistered bool

// RegisterDomainMetrics registers the domain metric families. Must be
// called once from main.
func RegisterDomainMetrics() {
	if domainMetricsRegistered {
		return
	}
	prometheus.MustRegister(ParseRequestsTotal)
	prometheus.MustRegister(ComparisonsTotal)
	prometheus.MustRegister(FinanceCalculationsTotal)
	prometheus.MustRegister(CompletionRequestsTotal)
	prometheus.MustRegister(CompletionRequestDuration)
	prometheus.MustRegister(CompletionTokensTotal)
	domainMetricsRegistered = true
}
