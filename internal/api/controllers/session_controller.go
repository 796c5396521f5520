package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tripplanner/internal/models/db_models"
	"tripplanner/internal/models/request_models"
	"tripplanner/internal/models/response_models"
	"tripplanner/internal/services"
	"tripplanner/pkg/utils"
)

type SessionController struct {
	sessionService services.SessionServiceInterface
	logger         *zap.Logger
}

func NewSessionController(sessionService services.SessionServiceInterface, logger *zap.Logger) *SessionController {
	return &SessionController{
		sessionService: sessionService,
		logger:         logger.Named("session_controller"),
	}
}

// SessionGenerationResponse is the payload of the final "result" event.
type SessionGenerationResponse struct {
	Session *db_models.Session                `json:"session"`
	Result  *response_models.GenerationResult `json:"result"`
}

func (s *SessionController) ListSessionsHandler(c *gin.Context) {
	sessions, err := s.sessionService.ListSessions(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, s.logger, err)
		return
	}
	utils.RespondSuccess(c, sessions, "Sessions retrieved successfully")
}

// CreateSessionHandler accepts an optional TripRequest body.
func (s *SessionController) CreateSessionHandler(c *gin.Context) {
	var inputs *request_models.TripRequest

	if c.Request.Body != nil && c.Request.ContentLength != 0 {
		var req request_models.TripRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			if !errors.Is(err, io.EOF) {
				utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
				return
			}
		} else {
			inputs = &req
		}
	}

	session, err := s.sessionService.CreateSession(c.Request.Context(), inputs)
	if err != nil {
		utils.HandleServiceError(c, s.logger, err)
		return
	}
	utils.RespondSuccess(c, session, "Session created successfully")
}

func (s *SessionController) GetSessionHandler(c *gin.Context) {
	session, err := s.sessionService.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, s.logger, err)
		return
	}
	utils.RespondSuccess(c, session, "Session retrieved successfully")
}

func (s *SessionController) UpdateInputsHandler(c *gin.Context) {
	var req request_models.TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	session, err := s.sessionService.UpdateInputs(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, s.logger, err)
		return
	}
	utils.RespondSuccess(c, session, "Session inputs updated")
}

func (s *SessionController) ToggleFoodPreferenceHandler(c *gin.Context) {
	var req request_models.FoodPreferenceToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "value is required")
		return
	}

	session, err := s.sessionService.ToggleFoodPreference(c.Request.Context(), c.Param("id"), req.Value)
	if err != nil {
		utils.HandleServiceError(c, s.logger, err)
		return
	}
	utils.RespondSuccess(c, session, "Food preferences updated")
}

func (s *SessionController) DeleteSessionHandler(c *gin.Context) {
	if err := s.sessionService.DeleteSession(c.Request.Context(), c.Param("id")); err != nil {
		utils.HandleServiceError(c, s.logger, err)
		return
	}
	utils.RespondSuccess(c, nil, "Session deleted successfully")
}

// GenerateSessionHandler streams progress as server-sent events. Failures detected before
// the first progress event are answered with a regular JSON error.
func (s *SessionController) GenerateSessionHandler(c *gin.Context) {
	streaming := false
	startStream := func() {
		if streaming {
			return
		}
		streaming = true
		c.Header("Content-Type", "text/event-stream")
		c.Header("Cache-Control", "no-cache")
		c.Header("Connection", "keep-alive")
		c.Header("X-Accel-Buffering", "no")
		c.Status(http.StatusOK)
	}

	onProgress := func(phase services.Phase, message string) {
		if phase == services.PhaseError && !streaming {
			return
		}
		startStream()
		c.SSEvent("progress", response_models.ProgressEvent{Phase: string(phase), Message: message})
		c.Writer.Flush()
	}

	session, result, err := s.sessionService.GenerateForSession(c.Request.Context(), c.Param("id"), onProgress)
	if err != nil {
		if !streaming {
			utils.HandleServiceError(c, s.logger, err)
			return
		}
		s.logger.Warn("session generation failed", zap.String("session_id", c.Param("id")), zap.Error(err))
		c.SSEvent("error", utils.APIResponse{
			Status:  "error",
			Code:    utils.StatusForError(err),
			Message: err.Error(),
			TraceID: c.GetString("trace_id"),
		})
		c.Writer.Flush()
		return
	}

	startStream()
	c.SSEvent("result", SessionGenerationResponse{Session: session, Result: result})
	c.Writer.Flush()
}
