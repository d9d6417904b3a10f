package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/route-cli/internal/planner"
	"github.com/sells-group/route-cli/internal/store"
	"github.com/sells-group/route-cli/pkg/overpass"
)

// env bundles the per-command planner and its cache handle.
type env struct {
	planner *planner.Planner
	cache   *store.ResponseCache
}

// initEnv builds the planner from config. A broken cache downgrades to
// uncached operation instead of failing the command.
func initEnv(ctx context.Context) *env {
	client := overpass.NewClient(
		overpass.WithBaseURL(cfg.Overpass.BaseURL),
		overpass.WithUserAgent(cfg.Overpass.UserAgent),
		overpass.WithRateLimit(cfg.Overpass.RateRPS),
	)

	var cache *store.ResponseCache
	if cfg.Cache.Path != "" {
		c, err := store.Open(cfg.Cache.Path)
		if err != nil {
			zap.L().Warn("cache unavailable, continuing without", zap.Error(err))
		} else if err := c.Migrate(ctx); err != nil {
			zap.L().Warn("cache migration failed, continuing without", zap.Error(err))
			c.Close() //nolint:errcheck
		} else {
			cache = c
			if pruned, err := c.Prune(ctx); err == nil && pruned > 0 {
				zap.L().Debug("pruned expired cache entries", zap.Int64("count", pruned))
			}
		}
	}

	return &env{planner: planner.New(cfg, client, cache), cache: cache}
}

func (e *env) Close() {
	if e.cache != nil {
		e.cache.Close() //nolint:errcheck
	}
}
