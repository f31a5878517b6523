package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_total",
			Help: "Total recommendation requests by outcome",
		},
		[]string{"outcome"},
	)

	LLMFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_fallbacks_total",
			Help: "Total LLM calls recovered via a local fallback path",
		},
		[]string{"stage", "reason"},
	)

	LLMCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "llm_call_duration_seconds",
			Help:    "Duration of external LLM calls in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"stage"},
	)

	RetrievalCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "retrieval_candidates",
			Help:    "Candidate set size returned by the retrieval planner",
			Buckets: []float64{0, 1, 5, 10, 20, 50},
		},
	)
)

// Outcome labels for RecommendationsTotal.
const (
	OutcomeOK      = "ok"
	OutcomeNoMatch = "no_match"
	OutcomeInvalid = "invalid_request"
)

// Handler exposes the Prometheus scrape endpoint as a Gin handler.
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
