// Package metrics defines and registers the custom Prometheus metrics for the
// wellness hub API. It is the single source of truth for metric names,
// labels, and help strings.
//
// All metrics are registered with the default registry at package init via
// promauto; request-level HTTP metrics come from echoprometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "wellness"

// ── Identity metrics ──────────────────────────────────────────────────────────

// IdentitySyncTotal counts completed identity syncs.
// Labels:
//   - role: the role stamped on the record (guest, member, admin)
//   - source: the signal that decided the role (scoped, flat_flag, none)
var IdentitySyncTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "identity_sync_total",
		Help:      "Total number of successful identity syncs, by resulting role.",
	},
	[]string{"role", "source"},
)

// RoleClassificationsTotal counts every role decision, including those whose
// sync later failed to persist.
var RoleClassificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "role_classifications_total",
		Help:      "Total number of access classifications, by role and deciding signal.",
	},
	[]string{"role", "source"},
)

// UpstreamErrorsTotal counts recovered membership platform failures.
// Label:
//   - call: "profile" or "access"
var UpstreamErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_errors_total",
		Help:      "Total number of membership platform lookups that failed and fell back.",
	},
	[]string{"call"},
)

// TokenVerificationsTotal counts identity token checks.
// Label:
//   - result: "ok", "missing", "invalid"
var TokenVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verifications_total",
		Help:      "Total number of identity token verifications, by result.",
	},
	[]string{"result"},
)

// ── Recommendation metrics ────────────────────────────────────────────────────

// RecommendationsTotal counts recommendation outcomes.
// Label:
//   - outcome: "model", "no_match", "offline", "degraded", "empty_catalog"
var RecommendationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "recommendations_total",
		Help:      "Total number of recommendation requests, by outcome.",
	},
	[]string{"outcome"},
)

// ModelCallDuration measures the latency of a single model call.
var ModelCallDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "model_call_duration_seconds",
		Help:      "Duration of recommendation model calls.",
		Buckets:   []float64{.1, .25, .5, 1, 2, 4, 8, 16},
	},
)

// ── Catalog metrics ───────────────────────────────────────────────────────────

// CatalogCacheTotal counts catalog cache lookups.
// Label:
//   - result: "hit", "miss" or "error"
var CatalogCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_cache_total",
		Help:      "Total number of product catalog cache lookups, by result.",
	},
	[]string{"result"},
)
