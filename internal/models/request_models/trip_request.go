package request_models

import (
	"encoding/json"
	"fmt"
	"strings"

	"tripplanner/pkg/utils"
)

type TransportMode string

const (
	TransportAuto  TransportMode = "auto"
	TransportPlane TransportMode = "plane"
	TransportTrain TransportMode = "train"
	TransportCar   TransportMode = "car"
	TransportBike  TransportMode = "bike"
)

type TravelStyle string

const (
	StyleBudget   TravelStyle = "budget"
	StyleBalanced TravelStyle = "balanced"
	StyleLuxury   TravelStyle = "luxury"
)

type Pace string

const (
	PaceRelaxed  Pace = "relaxed"
	PaceModerate Pace = "moderate"
	PacePacked   Pace = "packed"
)

// NoFoodRestrictions is exclusive with every other food preference.
const NoFoodRestrictions = "no-restrictions"

type TripRequest struct {
	Destination     string        `json:"city"`
	Origin          string        `json:"origin"`
	Days            int           `json:"days"`
	Budget          float64       `json:"budget"`
	Preferences     []string      `json:"preferences"`
	FoodPreferences []string      `json:"foodPreferences"`
	TransportMode   TransportMode `json:"transportMode"`
	TravelStyle     TravelStyle   `json:"travelStyle"`
	Pace            Pace          `json:"pace"`
}

// UnmarshalJSON also accepts "destination" in place of "city".
func (r *TripRequest) UnmarshalJSON(data []byte) error {
	type alias TripRequest
	aux := struct {
		*alias
		AltDestination string `json:"destination"`
	}{alias: (*alias)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if r.Destination == "" {
		r.Destination = aux.AltDestination
	}
	return nil
}

// DefaultTripRequest mirrors the planner form's initial state.
func DefaultTripRequest() TripRequest {
	return TripRequest{
		Budget:          50000,
		Days:            3,
		Preferences:     []string{},
		FoodPreferences: []string{NoFoodRestrictions},
		TransportMode:   TransportAuto,
		TravelStyle:     StyleBalanced,
		Pace:            PaceModerate,
	}
}

// WithDefaults fills unset enums and the food preference set.
func (r TripRequest) WithDefaults() TripRequest {
	if r.TransportMode == "" {
		r.TransportMode = TransportAuto
	}
	if r.TravelStyle == "" {
		r.TravelStyle = StyleBalanced
	}
	if r.Pace == "" {
		r.Pace = PaceModerate
	}
	if r.Preferences == nil {
		r.Preferences = []string{}
	}
	r.FoodPreferences = normalizeFoodPreferences(r.FoodPreferences)
	return r
}

func (r TripRequest) Validate() error {
	if strings.TrimSpace(r.Destination) == "" {
		return fmt.Errorf("%w: destination is required", utils.ErrInvalidInput)
	}
	if strings.TrimSpace(r.Origin) == "" {
		return fmt.Errorf("%w: origin is required", utils.ErrInvalidInput)
	}
	if r.Days < 1 {
		return fmt.Errorf("%w: days must be at least 1", utils.ErrInvalidInput)
	}
	if r.Budget < 0 {
		return fmt.Errorf("%w: budget cannot be negative", utils.ErrInvalidInput)
	}
	switch r.TransportMode {
	case TransportAuto, TransportPlane, TransportTrain, TransportCar, TransportBike:
	default:
		return fmt.Errorf("%w: unknown transport mode %q", utils.ErrInvalidInput, r.TransportMode)
	}
	switch r.TravelStyle {
	case StyleBudget, StyleBalanced, StyleLuxury:
	default:
		return fmt.Errorf("%w: unknown travel style %q", utils.ErrInvalidInput, r.TravelStyle)
	}
	switch r.Pace {
	case PaceRelaxed, PaceModerate, PacePacked:
	default:
		return fmt.Errorf("%w: unknown pace %q", utils.ErrInvalidInput, r.Pace)
	}
	return nil
}

// ToggleFoodPreference flips value in the food preference set.
// Selecting no-restrictions clears everything else; selecting anything else drops no-restrictions.
func (r *TripRequest) ToggleFoodPreference(value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}

	if value == NoFoodRestrictions {
		r.FoodPreferences = []string{NoFoodRestrictions}
		return
	}

	next := make([]string, 0, len(r.FoodPreferences)+1)
	found := false
	for _, p := range r.FoodPreferences {
		switch p {
		case NoFoodRestrictions:
			continue
		case value:
			found = true
			continue
		}
		next = append(next, p)
	}
	if !found {
		next = append(next, value)
	}
	r.FoodPreferences = normalizeFoodPreferences(next)
}

func normalizeFoodPreferences(prefs []string) []string {
	out := make([]string, 0, len(prefs))
	seen := make(map[string]bool, len(prefs))
	restricted := false
	for _, p := range prefs {
		p = strings.TrimSpace(p)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		if p != NoFoodRestrictions {
			restricted = true
		}
		out = append(out, p)
	}

	if !restricted {
		return []string{NoFoodRestrictions}
	}

	filtered := out[:0]
	for _, p := range out {
		if p != NoFoodRestrictions {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
