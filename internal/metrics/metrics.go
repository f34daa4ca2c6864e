// Package metrics defines and registers the custom Prometheus metrics for
// the Looms & Petals storefront service. It is the single source of truth
// for metric names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// LoginsTotal counts login attempts.
// Labels:
//   - audience: "user" or "admin"
//   - result: "success", "invalid_credentials" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by audience and result.",
	},
	[]string{"audience", "result"},
)

// RegistrationsTotal counts completed account registrations.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts created.",
	},
)

// OTPIssuedTotal counts OTP codes written to the store.
// Label:
//   - flow: "register" or "reset"
var OTPIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "otp_issued_total",
		Help:      "Total number of one-time codes issued.",
	},
	[]string{"flow"},
)

// OTPVerifiedTotal counts OTP verification outcomes.
// Label:
//   - result: "success", "invalid", "expired" or "used"
var OTPVerifiedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "otp_verified_total",
		Help:      "Total number of OTP verification attempts by outcome.",
	},
	[]string{"result"},
)

// SessionsPrunedTotal counts session rows removed by the login-time cap.
var SessionsPrunedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_pruned_total",
		Help:      "Total number of storefront sessions pruned beyond the per-user cap.",
	},
)

// OTPCleanupDeletedTotal counts rows removed by the cleanup sweep.
var OTPCleanupDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "otp_cleanup_deleted_total",
		Help:      "Total number of stale OTP rows removed by the cleanup sweep.",
	},
)
