// Package metrics defines the custom Prometheus metrics of the lending API.
// It is the single source of truth for metric names, labels, and help strings.
//
// Metrics are registered with the default registry through promauto when the
// package is first imported.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "lending"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// RegistrationsTotal counts registration attempts.
// Labels:
//   - result: "success", "conflict", "invalid" or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Labels:
//   - result: "success", "invalid_credentials", "throttled" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AuthRejectionsTotal counts requests rejected by the identity middleware.
// Labels:
//   - kind: "missing_token", "invalid_token" or "identity_not_found"
//   - reason: token failure reason ("malformed", "signature_mismatch", "expired") or ""
var AuthRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of requests rejected for missing or invalid identity.",
	},
	[]string{"kind", "reason"},
)

// AuthzDenialsTotal counts requests rejected by the role gate.
// Label:
//   - role: the caller's role
var AuthzDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authz_denials_total",
		Help:      "Total number of requests denied for insufficient role.",
	},
	[]string{"role"},
)

// ── Business metrics ──────────────────────────────────────────────────────────

// SubmissionsTotal counts public and customer submissions.
// Label:
//   - kind: "application", "quote" or "contact"
var SubmissionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "submissions_total",
		Help:      "Total number of accepted submissions, by kind.",
	},
	[]string{"kind"},
)

// ApplicationStatusChangesTotal counts admin review decisions.
// Label:
//   - status: the new application status
var ApplicationStatusChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "application_status_changes_total",
		Help:      "Total number of application status changes, by new status.",
	},
	[]string{"status"},
)

// ── HTTP metrics ──────────────────────────────────────────────────────────────

// HTTPRequestDuration measures request latency as seen by the router.
// Labels:
//   - method: HTTP method
//   - route: the registered route pattern (e.g. "/loans/:id"), never the raw URL
//   - status: response status code
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests, by method, route and status.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route", "status"},
)
