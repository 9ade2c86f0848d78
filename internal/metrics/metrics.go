// Package metrics defines and registers the custom Prometheus metrics for the
// Tributestream API. It is the single source of truth for metric names,
// labels, and help strings; metrics register with the default registry at
// package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tributestream"

// ── Workflow metrics ──────────────────────────────────────────────────────────

// WorkflowRunsTotal counts completed orchestration runs.
// Labels:
//   - kind: the workflow kind (e.g. "memorial")
//   - outcome: "complete" or "error"
var WorkflowRunsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "workflow_runs_total",
		Help:      "Total number of orchestrated workflow runs, by kind and outcome.",
	},
	[]string{"kind", "outcome"},
)

// WorkflowStepFailuresTotal counts step failures inside workflow runs.
// Labels:
//   - step: the step name (e.g. "register", "send_emails")
//   - mode: "required" or "best_effort"
var WorkflowStepFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "workflow_step_failures_total",
		Help:      "Total number of failed workflow steps, by step and failure mode.",
	},
	[]string{"step", "mode"},
)

// ── Upstream (CMS) metrics ────────────────────────────────────────────────────

// UpstreamRequestsTotal counts calls to the remote CMS.
// Labels:
//   - operation: the gateway operation (e.g. "login", "create_tribute")
//   - outcome: "ok", "upstream_error" or "transport_error"
var UpstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total number of requests issued to the remote CMS.",
	},
	[]string{"operation", "outcome"},
)

// UpstreamRequestDuration measures remote CMS call latency.
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of remote CMS calls, by operation.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)

// ── Email metrics ─────────────────────────────────────────────────────────────

// EmailsSentTotal counts outbound email attempts.
// Labels:
//   - kind: "staff", "user" or "api"
//   - outcome: "ok" or "error"
var EmailsSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "emails_sent_total",
		Help:      "Total number of outbound email attempts, by kind and outcome.",
	},
	[]string{"kind", "outcome"},
)
