package services

import (
	"bytes"
	"encoding/json"

	"tripplanner/internal/models/response_models"
)

// shapeDecoder attempts one response shape. matched reports whether raw has that shape;
// days is nil when it matched but the elements could not be decoded.
type shapeDecoder func(raw json.RawMessage) (days response_models.Itinerary, matched bool)

// shapeDecoders are tried in order, first match wins.
var shapeDecoders = []shapeDecoder{
	decodeArrayShape,
	wrappedArrayShape("days"),
	wrappedArrayShape("itinerary"),
	wrappedArrayShape("plan"),
	decodeSingleDayShape,
}

// ExtractItinerary locates the day list inside a loosely shaped model response.
// Accepted shapes: a top-level array, an object with a "days", "itinerary" or "plan"
// array, or a single {"day", "activities"} object. Returns nil when nothing matches.
func ExtractItinerary(raw json.RawMessage) response_models.Itinerary {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}

	for _, decode := range shapeDecoders {
		if days, matched := decode(raw); matched {
			return days
		}
	}
	return nil
}

func decodeArrayShape(raw json.RawMessage) (response_models.Itinerary, bool) {
	if !isJSONArray(raw) {
		return nil, false
	}
	return decodeDays(raw), true
}

func wrappedArrayShape(key string) shapeDecoder {
	return func(raw json.RawMessage) (response_models.Itinerary, bool) {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, false
		}
		value, ok := fields[key]
		if !ok || !isJSONArray(value) {
			return nil, false
		}
		return decodeDays(value), true
	}
}

func decodeSingleDayShape(raw json.RawMessage) (response_models.Itinerary, bool) {
	var probe struct {
		Day        json.RawMessage `json:"day"`
		Activities json.RawMessage `json:"activities"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, false
	}
	if !isPresent(probe.Day) || !isPresent(probe.Activities) {
		return nil, false
	}

	var day response_models.DayPlan
	if err := json.Unmarshal(raw, &day); err != nil {
		return nil, true
	}
	return response_models.Itinerary{day}, true
}

// ResponseMeta holds the optional presentation hints carried on a full-plan response.
type ResponseMeta struct {
	Theme          json.RawMessage
	HeroImageQuery string
}

// ExtractMeta reads "theme" and "heroImageQuery" from an object response. Both are optional.
func ExtractMeta(raw json.RawMessage) ResponseMeta {
	var meta ResponseMeta
	var probe struct {
		Theme          json.RawMessage `json:"theme"`
		HeroImageQuery json.RawMessage `json:"heroImageQuery"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return meta
	}

	if isPresent(probe.Theme) {
		meta.Theme = append(json.RawMessage(nil), probe.Theme...)
	}
	var hero string
	if err := json.Unmarshal(probe.HeroImageQuery, &hero); err == nil {
		meta.HeroImageQuery = hero
	}
	return meta
}

func decodeDays(raw json.RawMessage) response_models.Itinerary {
	var days response_models.Itinerary
	if err := json.Unmarshal(raw, &days); err != nil {
		return nil
	}
	if days == nil {
		days = response_models.Itinerary{}
	}
	return days
}

func isJSONArray(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '['
}

// isPresent treats missing, null, false, 0 and "" as absent.
func isPresent(raw json.RawMessage) bool {
	switch string(bytes.TrimSpace(raw)) {
	case "", "null", "false", "0", `""`:
		return false
	}
	return true
}
