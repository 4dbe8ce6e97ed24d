package domain

import (
	"errors"
	"math"
)

// EarthRadiusKm mean Earth radius used for great-circle distances
const EarthRadiusKm = 6371.0

// ErrInvalidCoordinates is returned for points outside the WGS84 range
var ErrInvalidCoordinates = errors.New("invalid coordinates")

// GeoPoint is a WGS84 coordinate pair
type GeoPoint struct {
	Longitude float64
	Latitude  float64
}

// Validate checks coordinate bounds
func (p GeoPoint) Validate() error {
	if p.Latitude < -90 || p.Latitude > 90 || p.Longitude < -180 || p.Longitude > 180 {
		return ErrInvalidCoordinates
	}
	if math.IsNaN(p.Latitude) || math.IsNaN(p.Longitude) {
		return ErrInvalidCoordinates
	}
	return nil
}

// DistanceKm returns the haversine distance between two points in kilometers
func (p GeoPoint) DistanceKm(other GeoPoint) float64 {
	lat1 := p.Latitude * math.Pi / 180
	lat2 := other.Latitude * math.Pi / 180
	dLat := (other.Latitude - p.Latitude) * math.Pi / 180
	dLon := (other.Longitude - p.Longitude) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}
