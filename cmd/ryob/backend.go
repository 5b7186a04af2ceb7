package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/ryob/forum"
	"github.com/dmitrymomot/ryob/migrations"
	"github.com/dmitrymomot/ryob/pkg/cache"
	"github.com/dmitrymomot/ryob/pkg/db"
	"github.com/dmitrymomot/ryob/pkg/redis"
	"github.com/dmitrymomot/ryob/repository/postgres"
	"github.com/dmitrymomot/ryob/repository/sqlite"
)

// backend is an open storage engine and the hooks the server needs around it.
type backend struct {
	name    string
	store   forum.Store
	migrate func(ctx context.Context, log *slog.Logger) error
	health  func(ctx context.Context) error
	close   func(ctx context.Context) error
}

func openBackend(ctx context.Context, cfg db.Config) (*backend, error) {
	switch cfg.Driver() {
	case db.DriverPostgres:
		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &backend{
			name:  "postgres",
			store: postgres.New(pool),
			migrate: func(ctx context.Context, log *slog.Logger) error {
				return db.MigratePostgres(ctx, pool, migrations.Postgres(), log)
			},
			health: db.Healthcheck(pool),
			close:  db.Shutdown(pool),
		}, nil

	case db.DriverSQLite:
		conn, err := db.OpenSQLite(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &backend{
			name:  "sqlite",
			store: sqlite.New(conn),
			migrate: func(ctx context.Context, log *slog.Logger) error {
				return db.MigrateSQLite(ctx, conn, migrations.SQLite(), log)
			},
			health: db.SQLiteHealthcheck(conn),
			close:  db.ShutdownSQLite(conn),
		}, nil

	default:
		return nil, db.ErrUnsupportedDriver
	}
}

// userCache is the read-through cache in front of user id lookups.
type userCache struct {
	loader *cache.Loader[forum.User]
	health func(ctx context.Context) error
	close  func(ctx context.Context) error
}

func openUserCache(ctx context.Context, cfg config) (*userCache, error) {
	switch cfg.CacheDriver {
	case cacheRedis:
		client, err := redis.Open(ctx, cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("user cache: %w", err)
		}
		c := cache.NewRedis[forum.User](client, cache.WithPrefix("ryob:"))
		return &userCache{
			loader: cache.NewLoader[forum.User](c, cfg.CacheTTL),
			health: redis.Healthcheck(client),
			close:  redis.Shutdown(client),
		}, nil

	case cacheMemory:
		c := cache.NewMemory[forum.User](
			cache.WithDefaultTTL(cfg.CacheTTL),
			cache.WithCleanupInterval(time.Minute),
		)
		return &userCache{
			loader: cache.NewLoader[forum.User](c, cfg.CacheTTL),
			close:  func(context.Context) error { return c.Close() },
		}, nil

	case cacheNone:
		return &userCache{
			loader: cache.NewLoader[forum.User](cache.Nop[forum.User]{}, cfg.CacheTTL),
			close:  func(context.Context) error { return nil },
		}, nil

	default:
		return nil, errors.Join(errUnknownCacheDriver, errors.New(cfg.CacheDriver))
	}
}
