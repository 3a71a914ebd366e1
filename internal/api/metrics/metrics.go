// Package metrics defines and registers all custom Prometheus metrics for the
// dashboard workspace service. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics are registered with the default registry on package init through
// promauto; request-level HTTP metrics come from echoprometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dashboards"

// Result label values.
const (
	ResultOK     = "ok"
	ResultError  = "error"
	ResultDenied = "denied"
)

// ── Dashboard metrics ─────────────────────────────────────────────────────────

// OperationsTotal counts Dashboard Repository calls.
// Labels:
//   - operation: "list", "get", "create", "update", "delete", "search", "count", "count_all"
//   - result: "ok", "denied" (authentication/authorization) or "error"
var OperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "operations_total",
		Help:      "Total number of dashboard repository operations, by operation and result.",
	},
	[]string{"operation", "result"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionEventsTotal counts published session changes.
// Label:
//   - kind: "signed_in" or "signed_out"
var SessionEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_events_total",
		Help:      "Total number of session change events published.",
	},
	[]string{"kind"},
)

// LiveConnections tracks open /ui/live websocket connections.
var LiveConnections = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "live_connections",
		Help:      "Current number of open live sidebar connections.",
	},
)

// ── Workspace metrics ─────────────────────────────────────────────────────────

// LayoutSavesTotal counts per-user layout saves.
// Label:
//   - result: "ok" or "error"
var LayoutSavesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "layout_saves_total",
		Help:      "Total number of workspace layout saves, by result.",
	},
	[]string{"result"},
)
