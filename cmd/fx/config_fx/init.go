package config_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripplanner/internal/config"
	"tripplanner/pkg/logger"
)

var Module = fx.Options(
	fx.Provide(config.Load, provideLogger),
)

func provideLogger(lc fx.Lifecycle, cfg *config.Config) *zap.Logger {
	l := logger.New(cfg)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			_ = l.Sync()
			return nil
		},
	})
	return l
}
