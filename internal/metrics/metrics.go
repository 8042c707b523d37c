// Package metrics collects and exposes Prometheus metrics for the API.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the interface the application layer records through.
type Recorder interface {
	RecordCodeIssued(purpose string)
	RecordCodeConsumed(purpose, outcome string)
	RecordLogin(outcome string)
	RecordTokenRefresh(outcome string)
	RecordCapabilityRedeemed(outcome string)
}

// Collector implements Recorder on top of Prometheus counters.
type Collector struct {
	codesIssued      *prometheus.CounterVec
	codesConsumed    *prometheus.CounterVec
	logins           *prometheus.CounterVec
	tokenRefreshes   *prometheus.CounterVec
	capabilityRedeem *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		codesIssued: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "account_verification_codes_issued_total",
			Help: "Verification codes issued, by purpose.",
		}, []string{"purpose"}),
		codesConsumed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "account_verification_codes_consumed_total",
			Help: "Verification code consumption attempts, by purpose and outcome.",
		}, []string{"purpose", "outcome"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "account_logins_total",
			Help: "Login attempts, by outcome.",
		}, []string{"outcome"}),
		tokenRefreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "account_token_refreshes_total",
			Help: "Refresh token exchanges, by outcome.",
		}, []string{"outcome"}),
		capabilityRedeem: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "account_reset_capabilities_redeemed_total",
			Help: "Password reset capability redemptions, by outcome.",
		}, []string{"outcome"}),
	}

	reg.MustRegister(
		c.codesIssued,
		c.codesConsumed,
		c.logins,
		c.tokenRefreshes,
		c.capabilityRedeem,
	)

	return c
}

func (c *Collector) RecordCodeIssued(purpose string) {
	c.codesIssued.WithLabelValues(purpose).Inc()
}

func (c *Collector) RecordCodeConsumed(purpose, outcome string) {
	c.codesConsumed.WithLabelValues(purpose, outcome).Inc()
}

func (c *Collector) RecordLogin(outcome string) {
	c.logins.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordTokenRefresh(outcome string) {
	c.tokenRefreshes.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordCapabilityRedeemed(outcome string) {
	c.capabilityRedeem.WithLabelValues(outcome).Inc()
}

// Handler returns the HTTP handler Prometheus scrapes.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
