// Package metrics provides prometheus collectors for ingestion and scoring.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// evaluation outcomes
const (
	OutcomeScored   = "scored"
	OutcomeFallback = "fallback"
	OutcomeSkipped  = "skipped"
	OutcomeError    = "error"
)

var (
	// FeedRuns counts per-feed ingestion runs by status (ok, fetch_error, error)
	FeedRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "leadfeed",
			Name:      "feed_runs_total",
			Help:      "Total number of feed ingestion runs",
		},
		[]string{"status"},
	)

	// FeedRunDuration measures a single feed ingestion run
	FeedRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "leadfeed",
			Name:      "feed_run_duration_seconds",
			Help:      "Duration of feed ingestion runs in seconds",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
	)

	// Articles counts ingested articles by result (created, updated, error)
	Articles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "leadfeed",
			Name:      "articles_total",
			Help:      "Total number of ingested articles by result",
		},
		[]string{"result"},
	)

	// Evaluations counts evaluations by outcome
	Evaluations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "leadfeed",
			Name:      "evaluations_total",
			Help:      "Total number of article evaluations by outcome",
		},
		[]string{"outcome"},
	)

	// EvaluationDuration measures scoring calls
	EvaluationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "leadfeed",
			Name:      "evaluation_duration_seconds",
			Help:      "Duration of article evaluations in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)
)

// RecordFeedRun records a completed feed run
func RecordFeedRun(status string, duration time.Duration) {
	FeedRuns.WithLabelValues(status).Inc()
	FeedRunDuration.Observe(duration.Seconds())
}

// RecordArticles adds created, updated and failed article counts
func RecordArticles(created, updated, errs int) {
	Articles.WithLabelValues("created").Add(float64(created))
	Articles.WithLabelValues("updated").Add(float64(updated))
	Articles.WithLabelValues("error").Add(float64(errs))
}

// RecordEvaluation records one evaluation attempt
func RecordEvaluation(outcome string, duration time.Duration) {
	Evaluations.WithLabelValues(outcome).Inc()
	if duration > 0 {
		EvaluationDuration.Observe(duration.Seconds())
	}
}
