package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/dmitrymomot/ryob/pkg/db"
	"github.com/dmitrymomot/ryob/pkg/logger"
	"github.com/dmitrymomot/ryob/pkg/redis"
)

// Cache drivers for user lookups.
const (
	cacheMemory = "memory"
	cacheRedis  = "redis"
	cacheNone   = "none"
)

type config struct {
	DB    db.Config
	Log   logger.Config
	Redis redis.Config

	HTTPAddr        string        `env:"HTTP_ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`

	// Checked only by serve; other commands never touch cookies.
	CookieSecret string `env:"COOKIE_SECRET"`
	CookieSecure bool   `env:"COOKIE_SECURE" envDefault:"true"`

	CacheDriver string        `env:"CACHE_DRIVER" envDefault:"memory"`
	CacheTTL    time.Duration `env:"CACHE_TTL" envDefault:"5m"`

	PageSize   int `env:"PAGE_SIZE" envDefault:"20"`
	BcryptCost int `env:"BCRYPT_COST" envDefault:"10"`
}

var errUnknownCacheDriver = errors.New("config: unknown CACHE_DRIVER")

func loadConfig() (config, error) {
	cfg, err := env.ParseAs[config]()
	if err != nil {
		return config{}, fmt.Errorf("config: %w", err)
	}

	switch cfg.CacheDriver {
	case cacheMemory, cacheNone:
	case cacheRedis:
		if cfg.Redis.URL == "" {
			return config{}, errors.New("config: CACHE_DRIVER=redis needs REDIS_URL")
		}
	default:
		return config{}, fmt.Errorf("%w: %q", errUnknownCacheDriver, cfg.CacheDriver)
	}
	if cfg.DB.Driver() == "" {
		return config{}, db.ErrUnsupportedDriver
	}
	return cfg, nil
}
