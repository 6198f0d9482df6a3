package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistance_Symmetry(t *testing.T) {
	lat1, lon1 := -6.2088, 106.8456 // Jakarta
	lat2, lon2 := -6.9175, 107.6191 // Bandung

	d1 := Distance(lat1, lon1, lat2, lon2)
	d2 := Distance(lat2, lon2, lat1, lon1)

	assert.InDelta(t, d1, d2, 1e-9)
}

func TestDistance_SamePointIsZero(t *testing.T) {
	d := Distance(-6.2088, 106.8456, -6.2088, 106.8456)
	assert.Equal(t, 0.0, d)
}

func TestDistance_KnownDistance(t *testing.T) {
	// Jakarta to Bandung is roughly 116 km.
	d := Distance(-6.2088, 106.8456, -6.9175, 107.6191)
	assert.InDelta(t, 116000, d, 5000)
}

func TestValidate_CenterAlwaysValid(t *testing.T) {
	res, err := Validate(-6.2088, 106.8456, -6.2088, 106.8456, 0)
	require.NoError(t, err)
	assert.True(t, res.IsValid)
	assert.Equal(t, 0.0, res.DistanceMeters)
}

func TestValidate_InsideRadius(t *testing.T) {
	// ~40m offset: 0.00036 degrees latitude is about 40 meters.
	res, err := Validate(-6.20916, 106.8456, -6.2088, 106.8456, 100)
	require.NoError(t, err)
	assert.True(t, res.IsValid)
	assert.InDelta(t, 40, res.DistanceMeters, 2)
}

func TestValidate_OutsideRadius(t *testing.T) {
	// ~150m offset against a 100m radius.
	res, err := Validate(-6.21015, 106.8456, -6.2088, 106.8456, 100)
	require.NoError(t, err)
	assert.False(t, res.IsValid)
	assert.InDelta(t, 150, res.DistanceMeters, 3)
}

func TestValidate_NonFiniteCoordinates(t *testing.T) {
	tests := []struct {
		name               string
		lat, lon           float64
		siteLat, siteLon   float64
		radius             float64
	}{
		{"nan latitude", math.NaN(), 106.8, -6.2, 106.8, 100},
		{"inf longitude", -6.2, math.Inf(1), -6.2, 106.8, 100},
		{"nan site latitude", -6.2, 106.8, math.NaN(), 106.8, 100},
		{"latitude out of range", 91, 106.8, -6.2, 106.8, 100},
		{"longitude out of range", -6.2, 181, -6.2, 106.8, 100},
		{"negative radius", -6.2, 106.8, -6.2, 106.8, -1},
		{"nan radius", -6.2, 106.8, -6.2, 106.8, math.NaN()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate(tt.lat, tt.lon, tt.siteLat, tt.siteLon, tt.radius)
			assert.ErrorIs(t, err, ErrInvalidCoordinate)
		})
	}
}
