package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tripplanner/internal/models/request_models"
	"tripplanner/internal/services"
	"tripplanner/pkg/utils"
)

type ItineraryController struct {
	orchestrator services.ItineraryOrchestratorInterface
	logger       *zap.Logger
}

func NewItineraryController(orchestrator services.ItineraryOrchestratorInterface, logger *zap.Logger) *ItineraryController {
	return &ItineraryController{
		orchestrator: orchestrator,
		logger:       logger.Named("itinerary_controller"),
	}
}

// POST /itineraries/generate
func (i *ItineraryController) GenerateItineraryHandler(c *gin.Context) {
	var req request_models.TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	result, err := i.orchestrator.GenerateItinerary(c.Request.Context(), req, nil)
	if err != nil {
		utils.HandleServiceError(c, i.logger, err)
		return
	}

	utils.RespondSuccess(c, result, "Itinerary generated successfully")
}
