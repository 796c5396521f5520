package image_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripplanner/internal/config"
	"tripplanner/internal/services"
	"tripplanner/pkg/memcache"
)

var Module = fx.Provide(provideImageService)

func provideImageService(cfg *config.Config, cache memcache.ImageCache, logger *zap.Logger) services.ImageServiceInterface {
	return services.NewPexelsImageService(services.PexelsConfig{
		APIKey:  cfg.PexelsAPIKey,
		BaseURL: cfg.PexelsBaseURL,
		Timeout: cfg.PexelsTimeout,
	}, cache, logger)
}
