package utils

import (
	"fmt"
	"math"
	"strconv"
)

// EarthRadiusMeters is the mean Earth radius used by the haversine formula.
const EarthRadiusMeters = 6371000

// HaversineDistance calculates the great-circle distance in meters between
// two points given in degrees.
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	φ1 := lat1 * math.Pi / 180
	φ2 := lat2 * math.Pi / 180
	Δφ := (lat2 - lat1) * math.Pi / 180
	Δλ := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(Δφ/2)*math.Sin(Δφ/2) +
		math.Cos(φ1)*math.Cos(φ2)*
			math.Sin(Δλ/2)*math.Sin(Δλ/2)

	// Floating point can push a just past 1 for near-antipodal points,
	// which would NaN the Sqrt below.
	if a > 1 {
		a = 1
	} else if a < 0 {
		a = 0
	}

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c
}

// FormatDistance renders a distance in meters for user-facing messages:
// kilometers rounded to one decimal above 1000 m, whole meters otherwise.
func FormatDistance(meters float64) string {
	if meters >= 1000 {
		km := math.Round(meters/100) / 10
		return strconv.FormatFloat(km, 'f', -1, 64) + " км"
	}
	return fmt.Sprintf("%d м", int(math.Round(meters)))
}
