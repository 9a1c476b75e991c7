// Package bootstrap wires shared runtime dependencies for the binaries.
package bootstrap

import (
	"context"
	"fmt"

	"umoja/internal/cache"
	"umoja/internal/config"
	"umoja/internal/database"
	"umoja/internal/observability"
	"umoja/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedDemoData populates the database with demo content on startup.
	// Only honored outside production.
	SeedDemoData bool
}

// Runtime holds the shared dependencies a binary needs to operate.
type Runtime struct {
	DB    *gorm.DB
	Redis *redis.Client
	// ShutdownTracing flushes pending spans. Always non-nil.
	ShutdownTracing func(context.Context) error
}

// InitRuntime connects to the database and Redis, starts tracing if enabled,
// and optionally seeds demo data. The Redis client is nil when the server is
// unreachable; callers degrade gracefully.
func InitRuntime(cfg *config.Config, opts Options) (*Runtime, error) {
	shutdownTracing, err := observability.InitTracing(observability.TracingConfig{
		ServiceName:  "umoja-api",
		Environment:  cfg.Env,
		Enabled:      cfg.TracingEnabled,
		Exporter:     cfg.TracingExport,
		OTLPEndpoint: cfg.OTLPEndpoint,
		SamplerRatio: cfg.TracingSampler,
	})
	if err != nil {
		return nil, fmt.Errorf("tracing initialization failed: %w", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if opts.SeedDemoData && cfg.Env != "production" && cfg.Env != "prod" {
		if err := seed.Seed(db, seed.Options{NumUsers: 10, NumStories: 40}); err != nil {
			return nil, fmt.Errorf("failed to seed demo data: %w", err)
		}
	}

	return &Runtime{DB: db, Redis: r, ShutdownTracing: shutdownTracing}, nil
}
