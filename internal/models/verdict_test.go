package models_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rigcheck/rigcheck-go/internal/models"
)

func TestTriStateJSON(t *testing.T) {
	tests := []struct {
		state models.TriState
		wire  string
	}{
		{models.Compatible, "true"},
		{models.Incompatible, "false"},
		{models.Unknown, "null"},
	}
	for _, tt := range tests {
		data, err := json.Marshal(tt.state)
		require.NoError(t, err)
		assert.Equal(t, tt.wire, string(data))

		var back models.TriState
		require.NoError(t, json.Unmarshal([]byte(tt.wire), &back))
		assert.Equal(t, tt.state, back)
	}
}

func TestTriStateUnmarshalInvalid(t *testing.T) {
	var s models.TriState
	assert.Error(t, json.Unmarshal([]byte(`"maybe"`), &s))
}

func TestVerdictJSON(t *testing.T) {
	v := models.Verdict{
		Compatible: models.Unknown,
		Reason:     "undetermined: socket information missing",
		Confidence: 0.5,
	}
	data, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"compatible":null,"reason":"undetermined: socket information missing","confidence":0.5}`, string(data))
}

func TestTriFromBool(t *testing.T) {
	assert.Equal(t, models.Compatible, models.TriFromBool(true))
	assert.Equal(t, models.Incompatible, models.TriFromBool(false))
}
