package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceKm(t *testing.T) {
	// Bengaluru to Mysuru is roughly 128 km as the crow flies
	d := DistanceKm(12.971599, 77.594566, 12.295810, 76.639381)
	assert.InDelta(t, 128, d, 5)

	assert.Zero(t, DistanceKm(12.971599, 77.594566, 12.971599, 77.594566))
}

func TestWithinRadiusBoundaryInclusive(t *testing.T) {
	center := [2]float64{12.971599, 77.594566}
	d := DistanceKm(center[0], center[1], 12.295810, 76.639381)

	assert.True(t, WithinRadius(center[0], center[1], 12.295810, 76.639381, d))
	assert.False(t, WithinRadius(center[0], center[1], 12.295810, 76.639381, d-1))
}

func TestRoundKm(t *testing.T) {
	assert.Equal(t, 12.3, RoundKm(12.34))
	assert.Equal(t, 12.4, RoundKm(12.35))
	assert.Equal(t, 0.0, RoundKm(0.04))
}

func TestValidCoordinates(t *testing.T) {
	assert.True(t, ValidLatitude(90))
	assert.True(t, ValidLatitude(-90))
	assert.False(t, ValidLatitude(90.01))

	assert.True(t, ValidLongitude(180))
	assert.True(t, ValidLongitude(-180))
	assert.False(t, ValidLongitude(-180.5))
}
