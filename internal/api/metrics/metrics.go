// Package metrics defines and registers all custom Prometheus metrics for the
// research chat API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at package init; the
// router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "research_chat"

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts issued sessions.
// Label:
//   - role: the role resolved at session creation ("user", "admin", "super_admin")
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of sessions issued, by resolved role.",
	},
	[]string{"role"},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditEventsTotal counts audit events accepted by the log.
// Label:
//   - action: the recorded action (e.g. "admin_grant", "chat_message")
var AuditEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_total",
		Help:      "Total number of audit events durably recorded, by action.",
	},
	[]string{"action"},
)

// AuditWriteErrorsTotal counts failed audit writes.
// Label:
//   - kind: "privileged" (operation aborted) or "telemetry" (swallowed)
var AuditWriteErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_write_errors_total",
		Help:      "Total number of audit write failures, by caller kind.",
	},
	[]string{"kind"},
)

// TelemetryQueueDepth tracks events waiting in each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index ("0", "1", …)
var TelemetryQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "telemetry_queue_depth",
		Help:      "Current number of telemetry events pending per dispatcher worker.",
	},
	[]string{"worker_id"},
)

// ── Chat metrics ──────────────────────────────────────────────────────────────

// ChatCompletionsTotal counts chat-completion round trips.
// Label:
//   - result: "ok" or "error"
var ChatCompletionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "chat_completions_total",
		Help:      "Total number of chat-completion provider calls, by result.",
	},
	[]string{"result"},
)

// ChatCompletionDuration measures the provider round-trip time.
var ChatCompletionDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "chat_completion_duration_seconds",
		Help:      "Duration of chat-completion provider calls.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
)
