// Package metrics exposes prometheus instrumentation for the key-fetch path.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for FetchOutcomes.
const (
	OutcomeFulfilled    = "fulfilled"
	OutcomeUnauthorized = "unauthorized"
	OutcomeRateLimited  = "rate_limited"
	OutcomeNotFound     = "not_found"
	OutcomeError        = "error"
)

// FetchOutcomes counts terminal key-fetch outcomes by kind.
var FetchOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "prekeyd",
	Subsystem: "keys",
	Name:      "fetch_outcomes_total",
	Help:      "Terminal outcomes of key-fetch requests.",
}, []string{"outcome"})

// Handler returns the scrape endpoint handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
