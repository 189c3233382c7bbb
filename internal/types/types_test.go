package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexFloat64(t *testing.T) {
	var body struct {
		Kilometers FlexFloat64 `json:"kilometers"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"kilometers": 4.5}`), &body))
	assert.Equal(t, 4.5, body.Kilometers.Float64())

	require.NoError(t, json.Unmarshal([]byte(`{"kilometers": "7,25"}`), &body))
	assert.Equal(t, 7.25, body.Kilometers.Float64())

	err := json.Unmarshal([]byte(`{"kilometers": "far"}`), &body)
	require.Error(t, err)

	err = json.Unmarshal([]byte(`{"kilometers": true}`), &body)
	require.Error(t, err)
}

func TestFlexList(t *testing.T) {
	var body struct {
		UserIDs FlexList[string] `json:"userIds"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"userIds": "u1"}`), &body))
	assert.Equal(t, []string{"u1"}, body.UserIDs.Slice())

	require.NoError(t, json.Unmarshal([]byte(`{"userIds": ["u1", "u2"]}`), &body))
	assert.Equal(t, []string{"u1", "u2"}, body.UserIDs.Slice())
}

func TestCustomError(t *testing.T) {
	err := NewError(400, "Code expired", "codes.expired")
	assert.Equal(t, "400: Code expired [type: codes.expired]", err.Error())
}

func TestFlexListUnique(t *testing.T) {
	list := FlexList[string]{"a", "", "b", "a"}
	assert.Equal(t, []string{"a", "b"}, list.Unique())
}
