// Package metrics defines and registers all custom Prometheus metrics for
// the user-registry API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at package init and
// are exposed by the /metrics route.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "user_registry"

// UsersCreatedTotal counts successfully created users.
var UsersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of users successfully created.",
	},
)

// UsersUpdatedTotal counts successfully updated users.
// Label:
//   - email_changed: "true" when the update migrated the email lookup entry
var UsersUpdatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_updated_total",
		Help:      "Total number of users successfully updated, by whether the email changed.",
	},
	[]string{"email_changed"},
)

// UsersDeletedTotal counts successfully deleted users.
var UsersDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_deleted_total",
		Help:      "Total number of users successfully deleted.",
	},
)

// UserConflictsTotal counts mutations rejected because the email was already
// claimed by another user.
// Label:
//   - operation: "create" or "update"
var UserConflictsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "user_conflicts_total",
		Help:      "Total number of mutations rejected due to an email collision.",
	},
	[]string{"operation"},
)

// UserCacheTotal counts cache lookups on the read path.
// Label:
//   - result: "hit" or "miss"
var UserCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "user_cache_total",
		Help:      "Total number of user cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)
