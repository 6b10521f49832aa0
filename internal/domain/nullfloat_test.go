package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullFloat_JSON(t *testing.T) {
	data, err := json.Marshal([]NullFloat{1.5, Null()})
	require.NoError(t, err)
	assert.Equal(t, `[1.5,null]`, string(data))

	var back []NullFloat
	require.NoError(t, json.Unmarshal(data, &back))
	require.Len(t, back, 2)
	assert.Equal(t, NullFloat(1.5), back[0])
	assert.False(t, back[1].Valid())
}

func TestNullFloat_YAML(t *testing.T) {
	v, err := Null().MarshalYAML()
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = NullFloat(2).MarshalYAML()
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)
}
