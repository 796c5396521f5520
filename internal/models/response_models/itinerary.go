package response_models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number keeps a numeric field exactly as the model produced it and coerces on read.
// Numbers and numeric strings parse; anything else reads as 0.
type Number struct {
	raw json.RawMessage
}

func NumberOf(v float64) Number {
	return Number{raw: json.RawMessage(strconv.FormatFloat(v, 'f', -1, 64))}
}

func (n Number) MarshalJSON() ([]byte, error) {
	if len(n.raw) == 0 {
		return []byte("null"), nil
	}
	return n.raw, nil
}

func (n *Number) UnmarshalJSON(data []byte) error {
	n.raw = append(n.raw[:0], data...)
	return nil
}

// Float returns the coerced value, never negative.
func (n Number) Float() float64 {
	raw := bytes.TrimSpace(n.raw)
	if len(raw) == 0 {
		return 0
	}

	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return 0
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		v = parsed
	}

	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// Int truncates Float.
func (n Number) Int() int {
	return int(n.Float())
}

// looseText accepts any JSON value for a text field. Strings decode normally, null is
// empty and every other value keeps its JSON text.
type looseText string

func (t *looseText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || string(data) == "null":
		*t = ""
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = looseText(s)
	default:
		*t = looseText(data)
	}
	return nil
}

// looseTextList accepts an array of loose text or a single value.
type looseTextList []string

func (l *looseTextList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*l = nil
		return nil
	}
	if data[0] == '[' {
		var items []looseText
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		out := make([]string, len(items))
		for i, item := range items {
			out[i] = string(item)
		}
		*l = out
		return nil
	}

	var single looseText
	if err := single.UnmarshalJSON(data); err != nil {
		return err
	}
	if single == "" {
		*l = []string{}
		return nil
	}
	*l = []string{string(single)}
	return nil
}

type Activity struct {
	Time        string `json:"time"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Cost        Number `json:"cost"`
	Duration    Number `json:"duration"`
	Category    string `json:"category"`
}

// UnmarshalJSON tolerates non-string values in the text fields.
func (a *Activity) UnmarshalJSON(data []byte) error {
	type alias Activity
	aux := struct {
		*alias
		Time        looseText `json:"time"`
		Name        looseText `json:"name"`
		Description looseText `json:"description"`
		Category    looseText `json:"category"`
	}{alias: (*alias)(a)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	a.Time = string(aux.Time)
	a.Name = string(aux.Name)
	a.Description = string(aux.Description)
	a.Category = string(aux.Category)
	return nil
}

type DayPlan struct {
	Day              int        `json:"day"`
	DaySummary       string     `json:"daySummary"`
	Highlights       []string   `json:"highlights"`
	ImageSearchQuery string     `json:"imageSearchQuery"`
	Activities       []Activity `json:"activities"`
}

// UnmarshalJSON accepts the day number as a JSON number or a numeric string and
// tolerates mistyped text fields.
func (d *DayPlan) UnmarshalJSON(data []byte) error {
	type alias DayPlan
	aux := struct {
		*alias
		Day              Number        `json:"day"`
		DaySummary       looseText     `json:"daySummary"`
		Highlights       looseTextList `json:"highlights"`
		ImageSearchQuery looseText     `json:"imageSearchQuery"`
	}{alias: (*alias)(d)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	d.Day = aux.Day.Int()
	d.DaySummary = string(aux.DaySummary)
	d.Highlights = []string(aux.Highlights)
	d.ImageSearchQuery = string(aux.ImageSearchQuery)
	return nil
}

type Itinerary []DayPlan

type ValidationResult struct {
	Valid     bool     `json:"valid"`
	Issues    []string `json:"issues"`
	TotalCost float64  `json:"totalCost"`
}

type CategoryAmount struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type DailyCost struct {
	Day  int     `json:"day"`
	Cost float64 `json:"cost"`
}

type BudgetBreakdown struct {
	TotalCost      float64            `json:"totalCost"`
	CategoryTotals map[string]float64 `json:"categoryTotals"`
	CategoryData   []CategoryAmount   `json:"categoryData"`
	DailyCosts     []DailyCost        `json:"dailyCosts"`
}

type GenerationResult struct {
	Itinerary      Itinerary       `json:"itinerary"`
	Breakdown      BudgetBreakdown `json:"breakdown"`
	Iterations     int             `json:"iterations"`
	Warning        string          `json:"warning,omitempty"`
	Theme          json.RawMessage `json:"theme,omitempty"`
	HeroImageQuery string          `json:"heroImageQuery,omitempty"`
}

type ProgressEvent struct {
	Phase   string `json:"phase"`
	Message string `json:"message"`
}
