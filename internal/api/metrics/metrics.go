// Package metrics defines and registers all custom Prometheus metrics for
// the console state sidecar. It is the single source of truth for metric
// names, labels, and help strings; everything registers with the default
// registry at package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "console"

// ── Query cache ───────────────────────────────────────────────────────────────

// CacheOpsTotal counts cache lookups per logical resource.
// Labels:
//   - resource: "session", "admin_check", "app_access", "dashboard"
//   - result: "hit" or "miss"
var CacheOpsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_ops_total",
		Help:      "Total number of query cache lookups, by resource and result.",
	},
	[]string{"resource", "result"},
)

// CacheStaleRejectionsTotal counts fetch results discarded because a newer
// request for the same key had already been accepted.
var CacheStaleRejectionsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_stale_rejections_total",
		Help:      "Total number of superseded fetch results rejected by the cache.",
	},
)

// ── Gates ─────────────────────────────────────────────────────────────────────

// GateDecisionsTotal counts gate evaluations.
// Labels:
//   - gate: "admin" or "app"
//   - outcome: "checking", "denied", "granted"
var GateDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_decisions_total",
		Help:      "Total number of access gate decisions, by gate and outcome.",
	},
	[]string{"gate", "outcome"},
)

// ── Session ───────────────────────────────────────────────────────────────────

// SessionRefreshesTotal counts identity fetches against the backend.
// Label:
//   - result: "ok" or "error"
var SessionRefreshesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_refreshes_total",
		Help:      "Total number of identity fetches, by result.",
	},
	[]string{"result"},
)

// ── Backend client ────────────────────────────────────────────────────────────

// BackendRequestsTotal counts calls to the remote console API.
// Labels:
//   - endpoint: "identity", "admin_check", "app_access", "dashboard_get", "dashboard_patch"
//   - status: HTTP status code, or "transport_error"
var BackendRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_requests_total",
		Help:      "Total number of requests to the remote console API.",
	},
	[]string{"endpoint", "status"},
)

// BackendRequestDuration measures remote call latency per endpoint.
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of requests to the remote console API.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"endpoint"},
)

// ── Refresh dispatcher ────────────────────────────────────────────────────────

// RefreshQueueDepth tracks pending re-warm jobs in each worker channel.
// Label:
//   - worker_id: numeric worker index ("0", "1", …)
var RefreshQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "refresh_queue_depth",
		Help:      "Current number of cache re-warm jobs pending per dispatcher worker.",
	},
	[]string{"worker_id"},
)
