package geo

import (
	"errors"
	"math"
)

// earthRadiusMeters is the mean Earth radius used by the haversine formula.
const earthRadiusMeters = 6371000

// ErrInvalidCoordinate is returned when a latitude or longitude is NaN,
// infinite, or outside the valid range.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// Result describes the outcome of a geofence check.
type Result struct {
	IsValid        bool
	DistanceMeters float64
}

// Distance computes the great-circle distance between two coordinates
// in meters using the haversine formula.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * (math.Pi / 180.0)
	dLon := (lon2 - lon1) * (math.Pi / 180.0)

	lat1Rad := lat1 * (math.Pi / 180.0)
	lat2Rad := lat2 * (math.Pi / 180.0)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// Validate checks whether the reported coordinate falls within
// radiusMeters of the site coordinate. Coordinates must be finite and in
// range; malformed input returns ErrInvalidCoordinate rather than a
// silently-invalid result.
func Validate(reportedLat, reportedLon, siteLat, siteLon, radiusMeters float64) (Result, error) {
	if !validCoordinate(reportedLat, reportedLon) || !validCoordinate(siteLat, siteLon) {
		return Result{}, ErrInvalidCoordinate
	}
	if math.IsNaN(radiusMeters) || math.IsInf(radiusMeters, 0) || radiusMeters < 0 {
		return Result{}, ErrInvalidCoordinate
	}

	distance := Distance(reportedLat, reportedLon, siteLat, siteLon)
	return Result{
		IsValid:        distance <= radiusMeters,
		DistanceMeters: distance,
	}, nil
}

func validCoordinate(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lon) || math.IsInf(lon, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
