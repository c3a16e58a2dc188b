// Package metrics holds the Prometheus collectors for authentication traffic.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values.
const (
	OutcomeSuccess   = "success"
	OutcomeFailure   = "failure"
	OutcomeDuplicate = "duplicate"
	OutcomeInvalid   = "invalid"
	OutcomeError     = "error"
)

// Auth counts login, registration and validation attempts.
type Auth struct {
	logins        *prometheus.CounterVec
	registrations *prometheus.CounterVec
	validations   *prometheus.CounterVec
}

// NewAuth registers the auth collectors on reg.
func NewAuth(reg prometheus.Registerer) *Auth {
	f := promauto.With(reg)
	return &Auth{
		logins: f.NewCounterVec(prometheus.CounterOpts{
			Name: "medvault_logins_total",
			Help: "Login attempts by outcome",
		}, []string{"outcome"}),
		registrations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "medvault_registrations_total",
			Help: "Registration attempts by role and outcome",
		}, []string{"role", "outcome"}),
		validations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "medvault_token_validations_total",
			Help: "Token validation requests by outcome",
		}, []string{"outcome"}),
	}
}

// The Observe methods are no-ops on a nil *Auth.

func (a *Auth) ObserveLogin(outcome string) {
	if a == nil {
		return
	}
	a.logins.WithLabelValues(outcome).Inc()
}

// ObserveRegistration records a registration; role is lowercased by the caller
// and should be empty when it could not be parsed.
func (a *Auth) ObserveRegistration(role, outcome string) {
	if a == nil {
		return
	}
	if role == "" {
		role = "unknown"
	}
	a.registrations.WithLabelValues(role, outcome).Inc()
}

func (a *Auth) ObserveValidation(outcome string) {
	if a == nil {
		return
	}
	a.validations.WithLabelValues(outcome).Inc()
}
