package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractItinerary_Shapes(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantDays []int
	}{
		{"top level array", `[{"day":1,"activities":[]},{"day":2,"activities":[]}]`, []int{1, 2}},
		{"days key", `{"days":[{"day":1,"activities":[]}]}`, []int{1}},
		{"itinerary key", `{"heroImageQuery":"x","itinerary":[{"day":1},{"day":2},{"day":3}]}`, []int{1, 2, 3}},
		{"plan key", `{"plan":[{"day":4}]}`, []int{4}},
		{"single day object", `{"day":1,"activities":[{"name":"Walk"}]}`, []int{1}},
		{"days wins over itinerary", `{"days":[{"day":7}],"itinerary":[{"day":8},{"day":9}]}`, []int{7}},
		{"non array days falls through", `{"days":"three","itinerary":[{"day":1}]}`, []int{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days := ExtractItinerary(json.RawMessage(tt.raw))
			require.NotNil(t, days)
			got := make([]int, 0, len(days))
			for _, d := range days {
				got = append(got, d.Day)
			}
			assert.Equal(t, tt.wantDays, got)
		})
	}
}

func TestExtractItinerary_Failures(t *testing.T) {
	for _, raw := range []string{
		`{"foo":"bar"}`,
		`{"day":1}`,
		`{"day":0,"activities":[]}`,
		`"just a string"`,
		`42`,
		`[1,2,3]`,
		``,
	} {
		assert.Nil(t, ExtractItinerary(json.RawMessage(raw)), "raw %s", raw)
	}
}

func TestExtractItinerary_MistypedTextFields(t *testing.T) {
	days := ExtractItinerary(json.RawMessage(`[{"day":1,"activities":[{"time":9,"name":"Fort","cost":500,"category":null}]}]`))
	require.Len(t, days, 1)
	require.Len(t, days[0].Activities, 1)
	act := days[0].Activities[0]
	assert.Equal(t, "9", act.Time)
	assert.Equal(t, "Fort", act.Name)
	assert.Empty(t, act.Category)
	assert.Equal(t, 500.0, act.Cost.Float())

	days = ExtractItinerary(json.RawMessage(`{"itinerary":[{"day":1,"highlights":"beach, fort","daySummary":42,"activities":[]}]}`))
	require.Len(t, days, 1)
	assert.Equal(t, []string{"beach, fort"}, days[0].Highlights)
	assert.Equal(t, "42", days[0].DaySummary)

	days = ExtractItinerary(json.RawMessage(`[{"day":2,"highlights":["a",3,true],"activities":[]}]`))
	require.Len(t, days, 1)
	assert.Equal(t, []string{"a", "3", "true"}, days[0].Highlights)
}

func TestExtractItinerary_EmptyArrayIsNotFailure(t *testing.T) {
	days := ExtractItinerary(json.RawMessage(`[]`))
	require.NotNil(t, days)
	assert.Empty(t, days)
}

func TestExtractMeta(t *testing.T) {
	meta := ExtractMeta(json.RawMessage(`{"theme":["from-orange-500","to-pink-600"],"heroImageQuery":"Rajasthan desert dunes","itinerary":[]}`))
	assert.JSONEq(t, `["from-orange-500","to-pink-600"]`, string(meta.Theme))
	assert.Equal(t, "Rajasthan desert dunes", meta.HeroImageQuery)

	empty := ExtractMeta(json.RawMessage(`[{"day":1}]`))
	assert.Nil(t, empty.Theme)
	assert.Empty(t, empty.HeroImageQuery)
}
