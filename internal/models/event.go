// Package models defines the request and response types of the analysis API.
package models

import "github.com/motio/analysis-api/internal/lib/enrich"

// EventType classifies a driving-telemetry event.
type EventType string

const (
	EventHardBrake  EventType = "hard_brake"
	EventRapidAccel EventType = "rapid_accel"
	EventHardCorner EventType = "hard_corner"
	EventOverspeed  EventType = "overspeed"
	EventOther      EventType = "other"
)

// Valid reports whether the event type is one of the known classifications.
func (e EventType) Valid() bool {
	switch e {
	case EventHardBrake, EventRapidAccel, EventHardCorner, EventOverspeed, EventOther:
		return true
	}
	return false
}

// OrDefault substitutes EventOther for an empty classification.
func (e EventType) OrDefault() EventType {
	if e == "" {
		return EventOther
	}
	return e
}

// TelemetryEvent is a single raw driving event as submitted by a client.
// Latitude, longitude and timestamp are required; motion fields are optional.
type TelemetryEvent struct {
	SessionID     string          `json:"session_id,omitempty"`
	Lat           float64         `json:"lat"`
	Lng           float64         `json:"lng"`
	Timestamp     enrich.FlexTime `json:"timestamp"`
	SpeedMPS      *float64        `json:"speed_mps,omitempty"`
	Ax            *float64        `json:"ax,omitempty"`
	Ay            *float64        `json:"ay,omitempty"`
	Az            *float64        `json:"az,omitempty"`
	RotationRateZ *float64        `json:"rotation_rate_z,omitempty"`
	EventType     EventType       `json:"event_type"`
}
