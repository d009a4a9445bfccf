// Package metrics defines and registers the custom Prometheus metrics for
// the bug tracker. It is the single source of truth for metric names,
// labels, and help strings. Metrics register with the default registry at
// import time via promauto; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bugtracker"

// ── Account metrics ──────────────────────────────────────────────────────────

// SignupsTotal counts account registrations.
// Label:
//   - result: "success" or the validation failure kind (e.g. "duplicate_email")
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of sign-up attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "user_not_found" or "invalid_credentials"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AccountDeletionsTotal counts confirmed account deletions (cascade included).
var AccountDeletionsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "account_deletions_total",
		Help:      "Total number of confirmed account deletions.",
	},
)

// ── Bug metrics ──────────────────────────────────────────────────────────────

// BugsCreatedTotal counts created bug reports.
// Label:
//   - priority: the caller-supplied priority string
var BugsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bugs_created_total",
		Help:      "Total number of bugs created, by priority.",
	},
	[]string{"priority"},
)

// SearchesTotal counts search requests.
// Label:
//   - category: title, status, priority, date_created, or "invalid"
var SearchesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "searches_total",
		Help:      "Total number of bug searches, by category.",
	},
	[]string{"category"},
)
