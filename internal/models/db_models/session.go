package db_models

import (
	"encoding/json"

	"tripplanner/internal/models/request_models"
	"tripplanner/internal/models/response_models"
)

type SessionStatus string

const (
	SessionDraft    SessionStatus = "draft"
	SessionComplete SessionStatus = "complete"
)

// Session is a named planning session: the form inputs plus the last generated result.
type Session struct {
	BaseModel
	Title          string                           `gorm:"size:255" json:"title"`
	Inputs         request_models.TripRequest       `gorm:"type:jsonb;serializer:json" json:"inputs"`
	Itinerary      response_models.Itinerary        `gorm:"type:jsonb;serializer:json" json:"itinerary"`
	Breakdown      *response_models.BudgetBreakdown `gorm:"type:jsonb;serializer:json" json:"breakdown"`
	Theme          json.RawMessage                  `gorm:"type:jsonb;serializer:json" json:"theme"`
	HeroImageQuery string                           `json:"heroImageQuery"`
	Status         SessionStatus                    `gorm:"size:16;index" json:"status"`
}

func (Session) TableName() string {
	return "planner_sessions"
}
