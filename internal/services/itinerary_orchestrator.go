package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"tripplanner/internal/models/request_models"
	"tripplanner/internal/models/response_models"
	"tripplanner/pkg/utils"
)

type Phase string

const (
	PhasePlanning   Phase = "planning"
	PhaseExtending  Phase = "extending"
	PhaseChecking   Phase = "checking"
	PhaseReplanning Phase = "replanning"
	PhaseFinalizing Phase = "finalizing"
	PhaseComplete   Phase = "complete"
	PhaseError      Phase = "error"
)

// ProgressFunc is called synchronously at every phase transition and once per generated day.
type ProgressFunc func(phase Phase, message string)

const budgetWarning = "Budget constraints could not be fully met."

// Limits are the retry and safety policy of a generation run.
type Limits struct {
	// MaxIterations bounds the number of replanning requests.
	MaxIterations int
	// SafetyLoopPadding is added to the requested day count to cap extension attempts.
	SafetyLoopPadding int
	// BudgetTolerance is the absolute amount the total may exceed the budget by.
	BudgetTolerance float64
}

func DefaultLimits() Limits {
	return Limits{
		MaxIterations:     3,
		SafetyLoopPadding: 3,
		BudgetTolerance:   DefaultBudgetTolerance,
	}
}

type ItineraryOrchestratorInterface interface {
	GenerateItinerary(ctx context.Context, request request_models.TripRequest, onProgress ProgressFunc) (*response_models.GenerationResult, error)
}

type ItineraryOrchestrator struct {
	generator utils.TextGenerator
	checker   ConstraintChecker
	limits    Limits
	logger    *zap.Logger
}

func NewItineraryOrchestrator(generator utils.TextGenerator, logger *zap.Logger) *ItineraryOrchestrator {
	return NewItineraryOrchestratorWithLimits(generator, DefaultLimits(), logger)
}

func NewItineraryOrchestratorWithLimits(generator utils.TextGenerator, limits Limits, logger *zap.Logger) *ItineraryOrchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if limits.MaxIterations < 0 {
		limits.MaxIterations = 0
	}
	if limits.SafetyLoopPadding < 0 {
		limits.SafetyLoopPadding = 0
	}
	return &ItineraryOrchestrator{
		generator: generator,
		checker:   NewConstraintChecker(limits.BudgetTolerance),
		limits:    limits,
		logger:    logger.Named("orchestrator"),
	}
}

// GenerateItinerary runs plan, extend, check and replan until the itinerary satisfies the
// request or the iteration budget runs out. Every failure is reported through onProgress
// with PhaseError and returned as *utils.GenerationError.
func (o *ItineraryOrchestrator) GenerateItinerary(
	ctx context.Context,
	request request_models.TripRequest,
	onProgress ProgressFunc,
) (result *response_models.GenerationResult, err error) {
	if onProgress == nil {
		onProgress = func(Phase, string) {}
	}
	startTime := time.Now()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unexpected failure during generation: %v", r)
		}
		if err != nil {
			genErr := utils.NewGenerationError(err)
			o.logger.Error("itinerary generation failed",
				zap.String("destination", request.Destination),
				zap.Duration("elapsed", time.Since(startTime)),
				zap.Error(err))
			onProgress(PhaseError, genErr.Message)
			result, err = nil, genErr
		}
	}()

	request = request.WithDefaults()
	if err := request.Validate(); err != nil {
		return nil, err
	}

	onProgress(PhasePlanning, fmt.Sprintf("Drafting initial %d-day itinerary to %s...", request.Days, request.Destination))
	itinerary, meta, err := o.initialPlan(ctx, request, onProgress)
	if err != nil {
		return nil, err
	}

	itinerary, err = o.extend(ctx, request, itinerary, onProgress)
	if err != nil {
		return nil, err
	}

	iterations := 0
	for iterations < o.limits.MaxIterations {
		onProgress(PhaseChecking, fmt.Sprintf("Validating constraints (Iteration %d)...", iterations))
		validation := o.checker.Check(itinerary, request)
		if validation.Valid {
			o.logger.Info("itinerary accepted",
				zap.Int("iterations", iterations),
				zap.Float64("total_cost", validation.TotalCost),
				zap.Duration("elapsed", time.Since(startTime)))
			onProgress(PhaseFinalizing, "Plan looks good! Finalizing...")
			res := o.finalize(itinerary, iterations, meta, "")
			onProgress(PhaseComplete, "Itinerary ready!")
			return res, nil
		}

		iterations++
		onProgress(PhaseReplanning, fmt.Sprintf("Issues found: %s. Replanning (Attempt %d/%d)...",
			validation.Issues[0], iterations, o.limits.MaxIterations))

		itinerary, err = o.replan(ctx, request, itinerary, validation.Issues, iterations)
		if err != nil {
			return nil, err
		}
	}

	// the last replan is returned unchecked
	o.logger.Warn("iteration budget exhausted", zap.Int("iterations", iterations))
	res := o.finalize(itinerary, iterations, meta, budgetWarning)
	onProgress(PhaseComplete, "Max iterations reached. Showing best effort plan.")
	return res, nil
}

// initialPlan requests the full trip, retrying once with a Day 1 request when the
// response parses but carries no recognizable day list. Unparseable responses are fatal.
func (o *ItineraryOrchestrator) initialPlan(
	ctx context.Context,
	request request_models.TripRequest,
	onProgress ProgressFunc,
) (response_models.Itinerary, ResponseMeta, error) {
	raw, err := o.requestJSON(ctx, buildFullPlanPrompt(request))
	if err != nil {
		return nil, ResponseMeta{}, err
	}

	meta := ExtractMeta(raw)
	if itinerary := ExtractItinerary(raw); itinerary != nil {
		return itinerary, meta, nil
	}

	o.logger.Warn("initial plan structure invalid, retrying day 1")
	onProgress(PhasePlanning, "Initial plan structure invalid. Retrying Day 1...")

	raw, err = o.requestJSON(ctx, buildSingleDayPrompt(request, 1))
	if err != nil {
		return nil, meta, err
	}
	itinerary := ExtractItinerary(raw)
	if itinerary == nil {
		return nil, meta, utils.ErrInvalidStructure
	}
	return itinerary, meta, nil
}

// extend requests missing days one at a time. Failed days are skipped; the loop stops
// after days+padding attempts even if the itinerary is still short.
func (o *ItineraryOrchestrator) extend(
	ctx context.Context,
	request request_models.TripRequest,
	itinerary response_models.Itinerary,
	onProgress ProgressFunc,
) (response_models.Itinerary, error) {
	safetyLimit := request.Days + o.limits.SafetyLoopPadding

	for attempt := 0; len(itinerary) < request.Days && attempt < safetyLimit; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		nextDay := len(itinerary) + 1
		onProgress(PhaseExtending, fmt.Sprintf("Model returned %d/%d days. Generating Day %d...",
			len(itinerary), request.Days, nextDay))

		day, err := o.generateDay(ctx, request, nextDay)
		if err != nil {
			o.logger.Warn("failed to generate day",
				zap.Int("day", nextDay),
				zap.Int("attempt", attempt+1),
				zap.Error(err))
			continue
		}
		itinerary = append(itinerary, day)
	}

	if len(itinerary) < request.Days {
		o.logger.Warn("extension stopped at safety limit",
			zap.Int("days", len(itinerary)),
			zap.Int("target", request.Days),
			zap.Int("safety_limit", safetyLimit))
	}
	return itinerary, nil
}

func (o *ItineraryOrchestrator) generateDay(ctx context.Context, request request_models.TripRequest, dayNum int) (response_models.DayPlan, error) {
	raw, err := o.requestJSON(ctx, buildSingleDayPrompt(request, dayNum))
	if err != nil {
		return response_models.DayPlan{}, err
	}

	days := ExtractItinerary(raw)
	if len(days) == 0 {
		return response_models.DayPlan{}, utils.ErrInvalidStructure
	}

	day := days[0]
	for _, candidate := range days {
		if candidate.Day == dayNum {
			day = candidate
			break
		}
	}
	// the model's numbering is not trusted
	day.Day = dayNum
	return day, nil
}

// replan asks for a corrected itinerary. Only a response with exactly the requested
// number of days replaces the current one; an unparseable response fails the run.
func (o *ItineraryOrchestrator) replan(
	ctx context.Context,
	request request_models.TripRequest,
	current response_models.Itinerary,
	issues []string,
	iteration int,
) (response_models.Itinerary, error) {
	raw, err := o.requestJSON(ctx, buildReplanPrompt(current, request, issues, iteration))
	if err != nil {
		return nil, err
	}

	candidate := ExtractItinerary(raw)
	if len(candidate) != request.Days {
		o.logger.Warn("replan returned incomplete list, discarding changes",
			zap.Int("iteration", iteration),
			zap.Int("returned_days", len(candidate)),
			zap.Int("target", request.Days))
		return current, nil
	}
	return candidate, nil
}

func (o *ItineraryOrchestrator) requestJSON(ctx context.Context, prompt string) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	text, err := o.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return utils.ParseLLMJSON(text)
}

func (o *ItineraryOrchestrator) finalize(
	itinerary response_models.Itinerary,
	iterations int,
	meta ResponseMeta,
	warning string,
) *response_models.GenerationResult {
	if itinerary == nil {
		itinerary = response_models.Itinerary{}
	}
	return &response_models.GenerationResult{
		Itinerary:      itinerary,
		Breakdown:      AggregateBreakdown(itinerary),
		Iterations:     iterations,
		Warning:        warning,
		Theme:          meta.Theme,
		HeroImageQuery: meta.HeroImageQuery,
	}
}
