package main

import (
	"context"
	"log/slog"

	"leaseflex/internal/adapters/memory"
	redisadapter "leaseflex/internal/adapters/redis"
	"leaseflex/internal/config"
	"leaseflex/internal/ports"
)

// newOfferCache picks the offer cache. Redis is shared by every replica and
// wins when reachable. An in-process cache is only safe in front of the
// in-process store; a shared store without Redis is read through uncached.
// The returned func releases the cache.
func newOfferCache(ctx context.Context, cfg config.Config, sharedStore bool, log *slog.Logger) (ports.OfferCache, func()) {
	if cfg.RedisAddr != "" {
		rc := redisadapter.NewCache(cfg.RedisAddr, cfg.CacheTTL)
		err := rc.Ping(ctx)
		if err == nil {
			log.Info("offers cached in redis", "addr", cfg.RedisAddr, "ttl", cfg.CacheTTL)
			return rc, func() { _ = rc.Close() }
		}
		log.Warn("redis unreachable", "addr", cfg.RedisAddr, "error", err)
		_ = rc.Close()
	}
	if sharedStore {
		log.Info("offer cache disabled")
		return ports.NoopCache{}, func() {}
	}
	return memory.NewCache(cfg.CacheSize, cfg.CacheTTL), func() {}
}
