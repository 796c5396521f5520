package db_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripplanner/internal/config"
	"tripplanner/internal/infra"
	"tripplanner/internal/repositories"
)

var Module = fx.Provide(provideSessionRepo)

// provideSessionRepo picks the session store named by STORAGE_DRIVER.
func provideSessionRepo(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (repositories.SessionRepository, error) {
	if cfg.Storage() != "postgres" {
		logger.Info("Using in-memory session store")
		return repositories.NewMemorySessionRepository(), nil
	}

	db, err := infra.InitPostgresql(cfg.PostgresURL, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			infra.ClosePostgresql(db, logger)
			return nil
		},
	})
	return repositories.NewSessionRepository(db), nil
}
