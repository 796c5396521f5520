package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripplanner/internal/api/controllers"
)

// RegisterRoutes mounts every endpoint. limiter guards the generation endpoints.
func RegisterRoutes(r *gin.Engine,
	limiter gin.HandlerFunc,
	itineraryController *controllers.ItineraryController,
	sessionController *controllers.SessionController,
	imageController *controllers.ImageController) {

	if limiter == nil {
		limiter = func(c *gin.Context) { c.Next() }
	}

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	itineraryGroup := r.Group("/itineraries")
	itineraryGroup.POST("/generate", limiter, itineraryController.GenerateItineraryHandler)

	sessionGroup := r.Group("/sessions")
	sessionGroup.GET("", sessionController.ListSessionsHandler)
	sessionGroup.POST("", sessionController.CreateSessionHandler)
	sessionGroup.GET("/:id", sessionController.GetSessionHandler)
	sessionGroup.PUT("/:id/inputs", sessionController.UpdateInputsHandler)
	sessionGroup.POST("/:id/food-preferences", sessionController.ToggleFoodPreferenceHandler)
	sessionGroup.DELETE("/:id", sessionController.DeleteSessionHandler)
	sessionGroup.POST("/:id/generate", limiter, sessionController.GenerateSessionHandler)

	imageGroup := r.Group("/images")
	imageGroup.GET("/day", imageController.DayImageHandler)
	imageGroup.GET("/destination", imageController.DestinationImagesHandler)
	imageGroup.DELETE("/cache", imageController.ClearCacheHandler)
}
