package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tripplanner/internal/models/db_models"
	"tripplanner/internal/models/request_models"
	"tripplanner/internal/models/response_models"
	"tripplanner/internal/repositories"
	"tripplanner/pkg/memcache"
	"tripplanner/pkg/utils"
)

const (
	defaultSessionTitle  = "New Trip"
	untitledSessionTitle = "Untitled Trip"
)

type SessionServiceInterface interface {
	CreateSession(ctx context.Context, inputs *request_models.TripRequest) (*db_models.Session, error)
	GetSession(ctx context.Context, id string) (*db_models.Session, error)
	ListSessions(ctx context.Context) ([]db_models.Session, error)
	DeleteSession(ctx context.Context, id string) error
	UpdateInputs(ctx context.Context, id string, inputs request_models.TripRequest) (*db_models.Session, error)
	ToggleFoodPreference(ctx context.Context, id string, value string) (*db_models.Session, error)
	SaveResults(ctx context.Context, id string, result *response_models.GenerationResult) (*db_models.Session, error)
	GenerateForSession(ctx context.Context, id string, onProgress ProgressFunc) (*db_models.Session, *response_models.GenerationResult, error)
}

type SessionService struct {
	sessionRepo  repositories.SessionRepository
	orchestrator ItineraryOrchestratorInterface
	inFlight     memcache.InFlightGuard
	logger       *zap.Logger
}

func NewSessionService(
	sessionRepo repositories.SessionRepository,
	orchestrator ItineraryOrchestratorInterface,
	inFlight memcache.InFlightGuard,
	logger *zap.Logger,
) SessionServiceInterface {
	if logger == nil {
		logger = zap.NewNop()
	}
	if inFlight == nil {
		inFlight = memcache.NewInFlight()
	}
	return &SessionService{
		sessionRepo:  sessionRepo,
		orchestrator: orchestrator,
		inFlight:     inFlight,
		logger:       logger.Named("sessions"),
	}
}

func parseSessionID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: malformed session id %q", utils.ErrInvalidInput, id)
	}
	return parsed, nil
}

func dbError(err error) error {
	return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
}

func (s *SessionService) load(ctx context.Context, id string) (*db_models.Session, error) {
	sessionID, err := parseSessionID(id)
	if err != nil {
		return nil, err
	}
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, dbError(err)
	}
	if session == nil {
		return nil, utils.ErrSessionNotFound
	}
	return session, nil
}

func (s *SessionService) CreateSession(ctx context.Context, inputs *request_models.TripRequest) (*db_models.Session, error) {
	form := request_models.DefaultTripRequest()
	if inputs != nil {
		form = *inputs
	}

	session := &db_models.Session{
		BaseModel: db_models.BaseModel{ID: uuid.New()},
		Title:     defaultSessionTitle,
		Inputs:    form.WithDefaults(),
		Itinerary: response_models.Itinerary{},
		Status:    db_models.SessionDraft,
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, dbError(err)
	}

	s.logger.Info("session created", zap.String("session_id", session.ID.String()))
	return session, nil
}

func (s *SessionService) GetSession(ctx context.Context, id string) (*db_models.Session, error) {
	return s.load(ctx, id)
}

func (s *SessionService) ListSessions(ctx context.Context) ([]db_models.Session, error) {
	sessions, err := s.sessionRepo.List(ctx)
	if err != nil {
		return nil, dbError(err)
	}
	if sessions == nil {
		sessions = []db_models.Session{}
	}
	return sessions, nil
}

func (s *SessionService) DeleteSession(ctx context.Context, id string) error {
	sessionID, err := parseSessionID(id)
	if err != nil {
		return err
	}
	deleted, err := s.sessionRepo.Delete(ctx, sessionID)
	if err != nil {
		return dbError(err)
	}
	if !deleted {
		return utils.ErrSessionNotFound
	}

	s.logger.Info("session deleted", zap.String("session_id", sessionID.String()))
	return nil
}

func (s *SessionService) UpdateInputs(ctx context.Context, id string, inputs request_models.TripRequest) (*db_models.Session, error) {
	session, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	session.Inputs = inputs.WithDefaults()
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, dbError(err)
	}
	return session, nil
}

func (s *SessionService) ToggleFoodPreference(ctx context.Context, id string, value string) (*db_models.Session, error) {
	if strings.TrimSpace(value) == "" {
		return nil, fmt.Errorf("%w: food preference is required", utils.ErrInvalidInput)
	}

	session, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	session.Inputs.ToggleFoodPreference(value)
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, dbError(err)
	}
	return session, nil
}

// SaveResults stores a generation result and retitles the session after its destination.
func (s *SessionService) SaveResults(ctx context.Context, id string, result *response_models.GenerationResult) (*db_models.Session, error) {
	if result == nil {
		return nil, fmt.Errorf("%w: result is required", utils.ErrInvalidInput)
	}

	session, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	applyResult(session, result)
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, dbError(err)
	}
	return session, nil
}

func applyResult(session *db_models.Session, result *response_models.GenerationResult) {
	itinerary := result.Itinerary
	if itinerary == nil {
		itinerary = response_models.Itinerary{}
	}
	breakdown := result.Breakdown

	session.Itinerary = itinerary
	session.Breakdown = &breakdown
	session.Theme = result.Theme
	session.HeroImageQuery = result.HeroImageQuery

	if dest := strings.TrimSpace(session.Inputs.Destination); dest != "" {
		session.Title = "Trip to " + dest
	} else {
		session.Title = untitledSessionTitle
	}

	if len(itinerary) > 0 {
		session.Status = db_models.SessionComplete
	} else {
		session.Status = db_models.SessionDraft
	}
}

// GenerateForSession runs the orchestrator on the session's stored inputs and persists the result.
// Only one generation may run per session at a time; a concurrent call fails with
// utils.ErrGenerationInFlight. A failed run leaves the session untouched.
func (s *SessionService) GenerateForSession(ctx context.Context, id string, onProgress ProgressFunc) (*db_models.Session, *response_models.GenerationResult, error) {
	session, err := s.load(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	key := session.ID.String()
	if !s.inFlight.TryAcquire(key) {
		return nil, nil, utils.ErrGenerationInFlight
	}
	defer s.inFlight.Release(key)

	s.logger.Info("session generation started",
		zap.String("session_id", key),
		zap.String("destination", session.Inputs.Destination),
		zap.Int("days", session.Inputs.Days))

	result, err := s.orchestrator.GenerateItinerary(ctx, session.Inputs, onProgress)
	if err != nil {
		return nil, nil, err
	}

	// reload so edits made while generating are not overwritten
	latest, err := s.load(ctx, key)
	if err != nil {
		return nil, nil, err
	}
	applyResult(latest, result)
	if err := s.sessionRepo.Update(ctx, latest); err != nil {
		return nil, nil, dbError(err)
	}

	s.logger.Info("session generation saved",
		zap.String("session_id", key),
		zap.Int("iterations", result.Iterations),
		zap.Bool("warning", result.Warning != ""))
	return latest, result, nil
}
