package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/ryob"
	"github.com/dmitrymomot/ryob/forum"
	"github.com/dmitrymomot/ryob/handlers"
	"github.com/dmitrymomot/ryob/middlewares"
	"github.com/dmitrymomot/ryob/pkg/cookie"
	"github.com/dmitrymomot/ryob/pkg/logger"
	"github.com/dmitrymomot/ryob/pkg/session"
	"github.com/dmitrymomot/ryob/views"
)

const sessionCookieName = "ryob_session"

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Apply migrations and start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(ctx context.Context, cfg config) error {
	if err := cookie.ValidateSecret(cfg.CookieSecret); err != nil {
		return err
	}

	log, logFile := logger.NewFromConfig(cfg.Log,
		middlewares.RequestIDExtractor(),
		middlewares.UserIDExtractor(),
	)
	defer logFile.Close()

	be, err := openBackend(ctx, cfg.DB)
	if err != nil {
		log.Error("database unavailable", slog.Any("error", err))
		return err
	}

	users, err := openUserCache(ctx, cfg)
	if err != nil {
		_ = be.close(ctx)
		log.Error("user cache unavailable", slog.Any("error", err))
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	domainMetrics := forum.NewMetrics(reg)

	identity := forum.NewIdentity(
		forum.NewCachedUsers(be.store, users.loader),
		forum.WithHasher(forum.NewBcryptHasher(cfg.BcryptCost)),
		forum.WithIdentityLogger(log),
		forum.WithIdentityMetrics(domainMetrics),
	)
	content := forum.NewContent(be.store, be.store,
		forum.WithContentLogger(log),
		forum.WithContentMetrics(domainMetrics),
	)

	renderer, err := views.New()
	if err != nil {
		_ = users.close(ctx)
		_ = be.close(ctx)
		return err
	}

	cookies := cookie.New(
		cookie.WithSecret(cfg.CookieSecret),
		cookie.WithSecure(cfg.CookieSecure),
	)

	health := []ryob.HealthOption{ryob.WithReadinessCheck(be.name, be.health)}
	if users.health != nil {
		health = append(health, ryob.WithReadinessCheck("redis", users.health))
	}

	app := handlers.NewApp(handlers.Deps{
		Accounts:       identity,
		Content:        content,
		Views:          renderer,
		Sessions:       session.NewCookieStore(cookies, session.WithCookieName(sessionCookieName)),
		Logger:         log,
		HTTPMetrics:    middlewares.NewHTTPMetrics(reg),
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
		Health:         health,
		PageSize:       cfg.PageSize,
		RequestTimeout: cfg.RequestTimeout,
	})

	return app.Run(cfg.HTTPAddr,
		ryob.WithContext(ctx),
		ryob.Logger(log),
		ryob.ShutdownTimeout(cfg.ShutdownTimeout),
		ryob.StartupHook(func(ctx context.Context) error {
			start := time.Now()
			if err := be.migrate(ctx, log); err != nil {
				return err
			}
			log.Info("database ready",
				slog.String("driver", be.name),
				slog.Duration("took", time.Since(start)),
			)
			return nil
		}),
		ryob.ShutdownHook(users.close),
		ryob.ShutdownHook(be.close),
	)
}
