package response_models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberCoercion(t *testing.T) {
	tests := map[string]float64{
		`1500`:     1500,
		`"2500"`:   2500,
		`" 12.5 "`: 12.5,
		`"free"`:   0,
		`""`:       0,
		`null`:     0,
		`-300`:     0,
		`true`:     0,
		`{"a":1}`:  0,
	}
	for raw, want := range tests {
		var n Number
		require.NoError(t, json.Unmarshal([]byte(raw), &n))
		assert.Equal(t, want, n.Float(), "raw %s", raw)
	}
}

func TestNumberPreservesRawValue(t *testing.T) {
	var act Activity
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Fort","cost":"1,200"}`), &act))

	out, err := json.Marshal(act)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"cost":"1,200"`)
	assert.Contains(t, string(out), `"duration":null`)
	assert.Equal(t, 0.0, act.Cost.Float())
}

func TestDayPlanAcceptsStringDay(t *testing.T) {
	var day DayPlan
	require.NoError(t, json.Unmarshal([]byte(`{"day":"2","daySummary":"Beaches","activities":[{"name":"Swim","cost":0}]}`), &day))
	assert.Equal(t, 2, day.Day)
	assert.Equal(t, "Beaches", day.DaySummary)
	require.Len(t, day.Activities, 1)
}

func TestNumberOf(t *testing.T) {
	out, err := json.Marshal(NumberOf(4999.5))
	require.NoError(t, err)
	assert.Equal(t, "4999.5", string(out))
}
