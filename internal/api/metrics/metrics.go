// Package metrics defines and registers all custom Prometheus metrics for the
// study buddy API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register with the default Prometheus registry at init time; the
// /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "studybuddy"

// ── Completion metrics ────────────────────────────────────────────────────────

// CompletionsTotal counts upstream completion attempts.
// Labels:
//   - provider: the credential slot that served the attempt (e.g. "gemini-primary")
//   - result: "ok" or "error"
var CompletionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "completions_total",
		Help:      "Total number of completion attempts, by provider and result.",
	},
	[]string{"provider", "result"},
)

// CompletionFallbacksTotal counts turns where the first provider failed and a
// later provider in the list was attempted.
var CompletionFallbacksTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "completion_fallbacks_total",
		Help:      "Total number of completion calls that fell through to a secondary provider.",
	},
)

// CompletionDuration measures a single provider attempt end-to-end.
// Label:
//   - provider: the credential slot attempted
var CompletionDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "completion_duration_seconds",
		Help:      "Duration of a single upstream completion attempt.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"provider"},
)

// ── Chat metrics ──────────────────────────────────────────────────────────────

// ChatSavesTotal counts best-effort chat history writes.
// Label:
//   - result: "ok" or "error"
var ChatSavesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "chat_saves_total",
		Help:      "Total number of best-effort chat history writes, by result.",
	},
	[]string{"result"},
)
