// Package metrics defines and registers all custom Prometheus metrics for the
// GourmetCare platform API. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics register with the default Prometheus registry at package init; the
// router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "gourmetcare"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthDeniedTotal counts requests rejected by the auth middleware chain.
// Label:
//   - reason: "missing_token", "invalid_token", "unknown_user", or "forbidden"
var AuthDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_denied_total",
		Help:      "Total number of requests denied by authentication or authorization.",
	},
	[]string{"reason"},
)

// LoginsTotal counts successful logins.
var LoginsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of successful logins.",
	},
)

// RegistrationsTotal counts successfully created accounts.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts created.",
	},
)

// ── OTP metrics ───────────────────────────────────────────────────────────────

// OTPIssuedTotal counts verification codes issued, by delivery channel.
// Label:
//   - channel: "email" or "phone"
var OTPIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "otp_issued_total",
		Help:      "Total number of verification codes issued, by channel.",
	},
	[]string{"channel"},
)

// OTPFailuresTotal counts rejected verification code submissions.
var OTPFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "otp_failures_total",
		Help:      "Total number of verification code submissions that did not match.",
	},
)
