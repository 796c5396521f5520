package memcache_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripplanner/internal/config"
	"tripplanner/internal/infra"
	mem "tripplanner/pkg/memcache"
)

var Module = fx.Provide(provideInFlightGuard, provideImageCache)

func provideInFlightGuard() mem.InFlightGuard {
	return mem.NewInFlight()
}

// provideImageCache uses Redis when REDIS_ADDR is set and falls back to process memory
// when it is unset or unreachable.
func provideImageCache(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) mem.ImageCache {
	if cfg.RedisAddr == "" {
		return mem.NewMemoryImageCache()
	}

	client, err := infra.InitRedis(context.Background(), cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Warn("Redis unavailable, using in-memory image cache", zap.Error(err))
		return mem.NewMemoryImageCache()
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
	logger.Info("Using Redis image cache", zap.String("addr", cfg.RedisAddr))
	return mem.NewRedisImageCache(client, cfg.RedisImageTTL)
}
