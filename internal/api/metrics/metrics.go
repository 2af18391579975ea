// Package metrics defines and registers all custom Prometheus metrics for
// the banking API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "banking"

// SignUpsTotal counts sign-up attempts.
// Label:
//   - result: "success", "duplicate_email", "vendor_error", or "error"
var SignUpsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of sign-up attempts, by result.",
	},
	[]string{"result"},
)

// SignInsTotal counts sign-in attempts.
// Label:
//   - result: "success", "invalid_credentials", "no_user", or "error"
var SignInsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signins_total",
		Help:      "Total number of sign-in attempts, by result.",
	},
	[]string{"result"},
)

// LinkExchangesTotal counts public-token exchange pipelines.
// Label:
//   - result: "complete" or "error"
var LinkExchangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "link_exchanges_total",
		Help:      "Total number of bank-link exchange flows, by result.",
	},
	[]string{"result"},
)

// LinkExchangeDuration measures the full exchange pipeline end-to-end.
var LinkExchangeDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "link_exchange_duration_seconds",
		Help:      "Duration of the bank-link exchange pipeline.",
		Buckets:   prometheus.DefBuckets,
	},
)

// TransfersTotal counts transfer attempts.
// Label:
//   - result: "success" or "error"
var TransfersTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transfers_total",
		Help:      "Total number of transfer attempts, by result.",
	},
	[]string{"result"},
)
