package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func traceIDOf(c *gin.Context) string {
	return c.GetString("trace_id")
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceIDOf(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceIDOf(c),
	})
}

// StatusForError maps service errors onto HTTP status codes.
func StatusForError(err error) int {
	var genErr *GenerationError
	switch {
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrGenerationInFlight):
		return http.StatusConflict
	case errors.As(err, &genErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func HandleServiceError(c *gin.Context, logger *zap.Logger, err error) {
	code := StatusForError(err)

	switch code {
	case http.StatusBadRequest, http.StatusNotFound, http.StatusConflict, http.StatusBadGateway:
		RespondError(c, code, err.Error())
	default:
		logger.Error("unhandled service error", zap.Error(err), zap.String("trace_id", traceIDOf(c)))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
