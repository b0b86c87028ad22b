// Package geo provides great-circle distance helpers for stores that lack a
// native geospatial index, and for attaching display distances to results.
package geo

import "math"

const earthRadiusKm = 6371.0

// DistanceKm returns the haversine distance between two points in kilometers.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := degreesToRadians(lat2 - lat1)
	dLon := degreesToRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(degreesToRadians(lat1))*math.Cos(degreesToRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// WithinRadius reports whether the point is within radiusKm of the center.
// The boundary is inclusive: a point exactly at radiusKm is in.
func WithinRadius(centerLat, centerLon, lat, lon, radiusKm float64) bool {
	return DistanceKm(centerLat, centerLon, lat, lon) <= radiusKm
}

// RoundKm rounds a distance to one decimal place for client display.
func RoundKm(km float64) float64 {
	return math.Round(km*10) / 10
}

// ValidLatitude reports whether lat is in [-90, 90].
func ValidLatitude(lat float64) bool {
	return lat >= -90 && lat <= 90
}

// ValidLongitude reports whether lon is in [-180, 180].
func ValidLongitude(lon float64) bool {
	return lon >= -180 && lon <= 180
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
