package request_models

type FoodPreferenceToggleRequest struct {
	Value string `json:"value" binding:"required"`
}
