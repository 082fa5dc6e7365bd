package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPoint(t *testing.T) {
	p, err := NewPoint(37.77, -122.42)
	require.NoError(t, err)
	assert.Equal(t, 37.77, p.Latitude)
	assert.Equal(t, -122.42, p.Longitude)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(90, 180))
	assert.NoError(t, Validate(-90, -180))
	assert.NoError(t, Validate(0, 0))

	assert.Error(t, Validate(90.1, 0))
	assert.Error(t, Validate(-90.1, 0))
	assert.Error(t, Validate(0, 180.1))
	assert.Error(t, Validate(0, -180.1))
}
