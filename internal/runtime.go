package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
)

// RunOption configures App.Run.
type RunOption func(*runConfig)

type runConfig struct {
	log             *slog.Logger
	baseCtx         context.Context
	shutdownTimeout time.Duration
	onStart         []func(context.Context) error
	onStop          []func(context.Context) error
}

// Logger sets the logger for server lifecycle events. Nil is ignored and
// the default discards everything.
func Logger(l *slog.Logger) RunOption {
	return func(c *runConfig) {
		if l != nil {
			c.log = l
		}
	}
}

// ShutdownTimeout bounds graceful shutdown, server drain and shutdown
// hooks together. Defaults to 30 seconds.
func ShutdownTimeout(d time.Duration) RunOption {
	return func(c *runConfig) {
		if d > 0 {
			c.shutdownTimeout = d
		}
	}
}

// StartupHook runs fn before the listener opens, e.g. to apply migrations.
// An error aborts Run after the shutdown hooks have run.
func StartupHook(fn func(context.Context) error) RunOption {
	return func(c *runConfig) {
		if fn != nil {
			c.onStart = append(c.onStart, fn)
		}
	}
}

// ShutdownHook runs fn once the server has stopped accepting requests.
// Hooks run in registration order and all of them run even if one fails.
//
//	ryob.ShutdownHook(db.Shutdown(pool))
func ShutdownHook(fn func(context.Context) error) RunOption {
	return func(c *runConfig) {
		if fn != nil {
			c.onStop = append(c.onStop, fn)
		}
	}
}

// WithContext sets the parent of the signal context. Cancelling it stops
// the server the same way SIGTERM does.
func WithContext(ctx context.Context) RunOption {
	return func(c *runConfig) {
		if ctx != nil {
			c.baseCtx = ctx
		}
	}
}

func serve(h http.Handler, addr string, cfg *runConfig) error {
	log := cfg.log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	base := cfg.baseCtx
	if base == nil {
		base = context.Background()
	}
	if addr == "" {
		addr = ":8080"
	}

	ctx, stop := signal.NotifyContext(base, os.Interrupt, syscall.SIGTERM)
	defer stop()

	for _, fn := range cfg.onStart {
		if err := fn(ctx); err != nil {
			return errors.Join(fmt.Errorf("startup hook: %w", err), cfg.stop(ctx, log))
		}
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Join(err, cfg.stop(ctx, log))
	}

	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		MaxHeaderBytes:    maxHeaderBytes,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", slog.String("address", ln.Addr().String()))
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server")

		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.shutdownTimeout)
		defer cancel()
		return errors.Join(srv.Shutdown(sctx), cfg.stop(sctx, log))
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped with errors", slog.Any("error", err))
		return err
	}
	log.Info("server stopped")
	return nil
}

// stop runs every shutdown hook within the shutdown timeout.
func (c *runConfig) stop(ctx context.Context, log *slog.Logger) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.WithoutCancel(ctx), c.shutdownTimeout)
		defer cancel()
	}

	var errs []error
	for _, fn := range c.onStop {
		if err := fn(ctx); err != nil {
			log.Error("shutdown hook failed", slog.Any("error", err))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
