package health

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"
)

// Probe outcomes, used for the whole response and for each check.
const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

const defaultTimeout = 5 * time.Second

// ErrCheckTimeout marks a check that was still running at the deadline.
var ErrCheckTimeout = errors.New("health: check timeout")

// CheckFunc has the shape of db.Healthcheck and redis.Healthcheck.
type CheckFunc func(ctx context.Context) error

// Checks names the dependencies a readiness probe looks at.
type Checks map[string]CheckFunc

// Response is the readiness report; the JSON form lists every check.
type Response struct {
	Status string           `json:"status"`
	Checks map[string]Check `json:"checks,omitempty"`
}

type Check struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type config struct {
	timeout time.Duration
	log     *slog.Logger
}

type Option func(*config)

// WithTimeout limits how long all checks together may take. Default 5s.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger reports failing checks at warn level.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.log = l
		}
	}
}

func newConfig(opts []Option) *config {
	cfg := &config{timeout: defaultTimeout, log: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Run executes all checks concurrently under one deadline.
func Run(ctx context.Context, checks Checks, opts ...Option) *Response {
	return newConfig(opts).run(ctx, checks)
}

func (cfg *config) run(ctx context.Context, checks Checks) *Response {
	if len(checks) == 0 {
		return &Response{Status: StatusHealthy}
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	names := slices.Sorted(maps.Keys(checks))
	results := make([]Check, len(names))

	// Check errors are collected, never returned, so one failure does not
	// cancel the others.
	var g errgroup.Group
	for i, name := range names {
		g.Go(func() error {
			results[i] = cfg.check(ctx, name, checks[name])
			return nil
		})
	}
	_ = g.Wait()

	resp := &Response{Status: StatusHealthy, Checks: make(map[string]Check, len(names))}
	for i, name := range names {
		resp.Checks[name] = results[i]
		if results[i].Status != StatusHealthy {
			resp.Status = StatusUnhealthy
		}
	}
	return resp
}

func (cfg *config) check(ctx context.Context, name string, fn CheckFunc) Check {
	err := fn(ctx)
	if err == nil {
		return Check{Status: StatusHealthy}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		err = errors.Join(ErrCheckTimeout, err)
	}
	cfg.log.WarnContext(ctx, "health check failed", slog.String("check", name), slog.Any("error", err))
	return Check{Status: StatusUnhealthy, Error: err.Error()}
}
