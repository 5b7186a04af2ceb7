package internal

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/ryob/pkg/health"
)

const (
	defaultLivenessPath  = "/health/live"
	defaultReadinessPath = "/health/ready"
)

// HealthOption configures the health endpoints.
type HealthOption func(*healthConfig)

type healthConfig struct {
	livePath  string
	readyPath string
	checks    health.Checks
}

func newHealthConfig(opts []HealthOption) *healthConfig {
	cfg := &healthConfig{
		livePath:  defaultLivenessPath,
		readyPath: defaultReadinessPath,
		checks:    health.Checks{},
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func (h *healthConfig) register(r chi.Router, log *slog.Logger) {
	r.Get(h.livePath, health.LivenessHandler())
	r.Get(h.readyPath, health.ReadinessHandler(h.checks, health.WithLogger(log)))
}

// WithLivenessPath moves the liveness endpoint. Empty keeps /health/live.
func WithLivenessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.livePath = path
		}
	}
}

// WithReadinessPath moves the readiness endpoint. Empty keeps /health/ready.
func WithReadinessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.readyPath = path
		}
	}
}

// WithReadinessCheck adds a named dependency check to the readiness endpoint.
//
//	ryob.WithReadinessCheck("postgres", db.Healthcheck(pool))
func WithReadinessCheck(name string, fn func(context.Context) error) HealthOption {
	return func(c *healthConfig) {
		if fn != nil {
			c.checks[name] = fn
		}
	}
}
