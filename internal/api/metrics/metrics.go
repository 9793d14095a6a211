// Package metrics defines and registers all custom Prometheus metrics
// for the CodeCoach API. It is the single source of truth for metric
// names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "codecoach"

// RateLimitDecisionsTotal counts rate-limit decisions.
// Labels:
//   - action: the limited action name (e.g. "csrf_token")
//   - result: "allowed" or "denied"
var RateLimitDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limit_decisions_total",
		Help:      "Total number of rate-limit checks, labelled by action and result.",
	},
	[]string{"action", "result"},
)

// TokenVerificationsTotal counts double-submit token verifications.
// Label:
//   - result: "ok", "expired" or "invalid"
var TokenVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verifications_total",
		Help:      "Total number of security-token verifications, labelled by result.",
	},
	[]string{"result"},
)

// ContentGeneratedTotal counts successfully generated content records.
// Label:
//   - kind: "lesson", "quiz" or "exercise"
var ContentGeneratedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "content_generated_total",
		Help:      "Total number of content records generated, by kind.",
	},
	[]string{"kind"},
)

// ExportDuration measures PDF export latency end-to-end.
// Label:
//   - outcome: "success" or "error"
var ExportDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "export_duration_seconds",
		Help:      "Duration of PDF export requests from receipt to response.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"outcome"},
)
