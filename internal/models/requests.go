package models

import "github.com/motio/analysis-api/internal/lib/enrich"

// WeatherRequest is the body of POST /get-weather.
type WeatherRequest struct {
	Lat     *float64         `json:"lat"`
	Lng     *float64         `json:"lng"`
	WhenUTC *enrich.FlexTime `json:"when_utc"`
}

// RoadRequest is the body of POST /get-road.
type RoadRequest struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

// ContextRequest is the body of POST /get-context.
type ContextRequest struct {
	Lat  *float64         `json:"lat"`
	Lng  *float64         `json:"lng"`
	TS   *enrich.FlexTime `json:"ts"`
	Type string           `json:"type"`
}
