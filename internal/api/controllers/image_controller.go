package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"tripplanner/internal/services"
	"tripplanner/pkg/utils"
)

const maxGalleryCount = 20

type ImageController struct {
	imageService services.ImageServiceInterface
}

func NewImageController(imageService services.ImageServiceInterface) *ImageController {
	return &ImageController{imageService: imageService}
}

// GET /images/day?destination=Goa&day=2&q=Baga+beach+sunset
func (i *ImageController) DayImageHandler(c *gin.Context) {
	destination := strings.TrimSpace(c.Query("destination"))
	if destination == "" {
		utils.RespondError(c, http.StatusBadRequest, "destination is required")
		return
	}

	day, err := strconv.Atoi(c.DefaultQuery("day", "1"))
	if err != nil || day < 1 {
		utils.RespondError(c, http.StatusBadRequest, "day must be a positive integer")
		return
	}

	image := i.imageService.FindDayImage(c.Request.Context(), destination, day, c.Query("q"))
	if image == nil {
		utils.RespondSuccess(c, nil, "No image found")
		return
	}
	utils.RespondSuccess(c, image, "Image retrieved successfully")
}

// GET /images/destination?destination=Goa&count=4
func (i *ImageController) DestinationImagesHandler(c *gin.Context) {
	destination := strings.TrimSpace(c.Query("destination"))
	if destination == "" {
		utils.RespondError(c, http.StatusBadRequest, "destination is required")
		return
	}

	count, err := strconv.Atoi(c.DefaultQuery("count", strconv.Itoa(services.DefaultGalleryCount)))
	if err != nil || count < 1 || count > maxGalleryCount {
		utils.RespondError(c, http.StatusBadRequest, "count must be between 1 and 20")
		return
	}

	images := i.imageService.SearchDestinationImages(c.Request.Context(), destination, count)
	utils.RespondSuccess(c, images, "Images retrieved successfully")
}

// DELETE /images/cache
func (i *ImageController) ClearCacheHandler(c *gin.Context) {
	if err := i.imageService.ClearCache(c.Request.Context()); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, "Failed to clear image cache")
		return
	}
	utils.RespondSuccess(c, nil, "Image cache cleared")
}
