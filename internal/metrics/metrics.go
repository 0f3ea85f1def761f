package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Tracks outbound API calls to Plaid (per HTTP attempt).
	PlaidRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plaid_api_requests_total",
			Help: "Total number of Plaid API requests made, by status code.",
		},
		[]string{"status"},
	)

	// Measures duration of API requests to Plaid.
	PlaidRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "plaid_api_request_duration_seconds",
			Help:    "Duration of Plaid API requests in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 15), // 1ms → ~16s
		},
	)

	// Counts Link tokens handed to the browser widget.
	LinkTokensCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "link_tokens_created_total",
			Help: "Number of Link tokens created for the browser widget.",
		},
	)

	// Counts public-token exchanges by result.
	TokenExchangesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "token_exchanges_total",
			Help: "Number of public-token exchange attempts.",
		},
		[]string{"result"}, // ok | error
	)
)

// ObservePlaidRequest records one completed Plaid HTTP attempt. Wired as the
// executor's observer.
func ObservePlaidRequest(status int, elapsed time.Duration) {
	PlaidRequestsTotal.WithLabelValues(strconv.Itoa(status)).Inc()
	PlaidRequestDuration.Observe(elapsed.Seconds())
}

func IncLinkTokenCreated() {
	LinkTokensCreatedTotal.Inc()
}

func IncTokenExchange(result string) {
	TokenExchangesTotal.WithLabelValues(result).Inc()
}
