package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexIntUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "number", input: `42`, want: 42},
		{name: "numeric string", input: `"42"`, want: 42},
		{name: "float truncates", input: `12.9`, want: 12},
		{name: "float string truncates", input: `"12.9"`, want: 12},
		{name: "null", input: `null`, want: 0},
		{name: "empty string", input: `""`, want: 0},
		{name: "garbage coerces to zero", input: `"a few"`, want: 0},
		{name: "negative", input: `-3`, want: -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v FlexInt
			err := json.Unmarshal([]byte(tt.input), &v)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.Int())
		})
	}
}

func TestFlexIntInStruct(t *testing.T) {
	// Capture forms send schools/learners as strings; the request still binds.
	body := `{"province": "Gauteng", "type": "District Support", "entity_name": "Office", "schools": "15", "learners": "not sure"}`

	var req UpsertInterventionRequest
	err := json.Unmarshal([]byte(body), &req)
	require.NoError(t, err)

	assert.Equal(t, 15, req.Schools.Int())
	assert.Equal(t, 0, req.Learners.Int())
}
