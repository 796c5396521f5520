package prompt_fx

import (
	"context"
	"io"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripplanner/internal/config"
	"tripplanner/internal/services"
	"tripplanner/pkg/utils"
)

var Module = fx.Provide(
	ProvideTextGenerator,
	ProvideOrchestrator)

// ProvideTextGenerator creates the LLM client selected by LLM_PROVIDER.
func ProvideTextGenerator(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (utils.TextGenerator, error) {
	logger.Info("Initializing text generation client",
		zap.String("provider", cfg.Provider()),
		zap.String("model", cfg.LLMModel))

	generator, err := utils.NewTextGenerator(cfg.Provider(), cfg.LLMAPIKey(), cfg.LLMModel)
	if err != nil {
		return nil, err
	}
	if closer, ok := generator.(io.Closer); ok {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return closer.Close()
			},
		})
	}
	return generator, nil
}

func ProvideOrchestrator(generator utils.TextGenerator, cfg *config.Config, logger *zap.Logger) services.ItineraryOrchestratorInterface {
	return services.NewItineraryOrchestratorWithLimits(generator, services.Limits{
		MaxIterations:     cfg.PlannerMaxIterations,
		SafetyLoopPadding: cfg.PlannerSafetyLoopPadding,
		BudgetTolerance:   cfg.PlannerBudgetTolerance,
	}, logger)
}
