// Package geo provides coordinate validation shared by the request handlers
// and provider clients.
package geo

import "errors"

// Point is a WGS84 coordinate pair in decimal degrees.
type Point struct {
	Latitude  float64
	Longitude float64
}

// NewPoint creates a Point, rejecting out-of-range coordinates.
func NewPoint(latitude, longitude float64) (Point, error) {
	p := Point{Latitude: latitude, Longitude: longitude}
	if !isValidCoordinate(p) {
		return Point{}, errors.New("invalid coordinates: latitude must be [-90, 90], longitude must be [-180, 180]")
	}
	return p, nil
}

// Validate checks a raw latitude/longitude pair.
func Validate(latitude, longitude float64) error {
	_, err := NewPoint(latitude, longitude)
	return err
}

func isValidCoordinate(p Point) bool {
	return p.Latitude >= -90 && p.Latitude <= 90 &&
		p.Longitude >= -180 && p.Longitude <= 180
}
