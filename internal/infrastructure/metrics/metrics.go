// Package metrics defines and registers all custom Prometheus metrics for the
// LocalTalent console. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation; the console exposes them on GET /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "localtalent"

// ── Upstream API metrics ──────────────────────────────────────────────────────

// UpstreamRequestsTotal counts requests sent to the remote API.
// Labels:
//   - method: HTTP method (e.g. "GET")
//   - status: response status code, or "error" on transport failure
var UpstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total number of requests sent to the remote API.",
	},
	[]string{"method", "status"},
)

// UpstreamRequestDuration measures round-trip latency of remote API calls.
// Label:
//   - method: HTTP method
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of remote API requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method"},
)

// SessionRefreshTotal counts silent token refresh attempts.
// Label:
//   - result: "success", "failure" or "shared" (joined an in-flight refresh)
var SessionRefreshTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_refresh_total",
		Help:      "Total number of access token refresh attempts, by result.",
	},
	[]string{"result"},
)

// ── Client UI metrics ─────────────────────────────────────────────────────────

// NotificationsTotal counts notifications emitted by the request helper.
// Label:
//   - variant: "default" or "destructive"
var NotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Total number of user notifications, by variant.",
	},
	[]string{"variant"},
)

// RowActionsTotal counts table row actions.
// Labels:
//   - endpoint: table endpoint identity ("service", "booking", "user")
//   - action: row action (e.g. "approve")
//   - result: "ok", "failed" or "busy"
var RowActionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "row_actions_total",
		Help:      "Total number of table row actions, by endpoint, action and result.",
	},
	[]string{"endpoint", "action", "result"},
)
