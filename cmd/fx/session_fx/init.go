package session_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripplanner/internal/repositories"
	"tripplanner/internal/services"
	"tripplanner/pkg/memcache"
)

var Module = fx.Provide(provideSessionService)

func provideSessionService(
	sessionRepo repositories.SessionRepository,
	orchestrator services.ItineraryOrchestratorInterface,
	inFlight memcache.InFlightGuard,
	logger *zap.Logger,
) services.SessionServiceInterface {
	return services.NewSessionService(sessionRepo, orchestrator, inFlight, logger)
}
