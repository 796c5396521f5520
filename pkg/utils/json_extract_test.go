package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLLMJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain array", in: `[{"day":1}]`, want: `[{"day":1}]`},
		{name: "json fence", in: "```json\n{\"days\":[]}\n```", want: `{"days":[]}`},
		{name: "upper fence", in: "```JSON\n[1,2]\n```", want: `[1,2]`},
		{name: "bare fence", in: "```\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "prose around object", in: `Here is your plan: {"itinerary":[{"day":1}]} Enjoy!`, want: `{"itinerary":[{"day":1}]}`},
		{name: "prose around array", in: `Sure! [{"day":2}] hope it helps`, want: `[{"day":2}]`},
		{name: "braces inside strings", in: `note {"name":"a } tricky { one","x":"\"}"} end`, want: `{"name":"a } tricky { one","x":"\"}"}`},
		{name: "later object after invalid braces", in: `note {x} then {"day":1,"activities":[]}`, want: `{"day":1,"activities":[]}`},
		{name: "array before object", in: `result: [{"day":1},{"day":2}] and {"x":1}`, want: `[{"day":1},{"day":2}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLLMJSON(tt.in)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

func TestParseLLMJSON_Failures(t *testing.T) {
	for _, in := range []string{"", "   ", "no json here", `{"unterminated": [1, 2`, "``` ```"} {
		_, err := ParseLLMJSON(in)
		assert.ErrorIs(t, err, ErrJSONParse, "input %q", in)
	}
}

func TestParseLLMJSON_FallsBackToSecondOpener(t *testing.T) {
	// the leading brace never closes, the array does
	got, err := ParseLLMJSON(`{ broken [{"day":1}]`)
	require.NoError(t, err)

	var days []map[string]any
	require.NoError(t, json.Unmarshal(got, &days))
	assert.Len(t, days, 1)
}
