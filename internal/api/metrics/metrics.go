// Package metrics defines the custom Prometheus metrics of the admin auth
// API. Metrics register with the default registry on package init and are
// served at /metrics alongside the echoprometheus HTTP metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "admin_auth"

// RegistrationsTotal counts register attempts.
// Label:
//   - result: "success", "validation_error", "duplicate", "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of admin registration attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of admin login attempts, by result.",
	},
	[]string{"result"},
)

// GateRejectionsTotal counts requests refused by the bearer token gate.
// Label:
//   - reason: "no_credentials", "invalid_format", "empty_token", "invalid_token"
var GateRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_rejections_total",
		Help:      "Total number of protected requests rejected by the auth gate, by reason.",
	},
	[]string{"reason"},
)
