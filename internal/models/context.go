package models

// WeatherObservation is the forecast record nearest to a requested instant.
// Every field is nullable; a lookup that found no hourly data at all yields a
// nil observation rather than an error.
type WeatherObservation struct {
	Summary         *string  `json:"summary"`
	TemperatureF    *float64 `json:"temperature_f"`
	PrecipitationIn *float64 `json:"precipitation_in"`
	WindMPH         *float64 `json:"wind_mph"`
	WeatherCode     *string  `json:"weather_code"`
}

// RoadInfo describes the first highway-tagged way near a coordinate. A nil
// RoadInfo means no road was found within the search radius.
type RoadInfo struct {
	Name    *string `json:"name"`
	Highway *string `json:"highway"`
}

// EnrichedContext is the derived, request-scoped context for an event. The
// optional fields stay nil when the corresponding lookup returned no data.
type EnrichedContext struct {
	LocalTimeISO string `json:"local_time_iso"`
	TimeOfDay    string `json:"time_of_day"`
	Timezone     string `json:"timezone"`

	RoadName        *string  `json:"road_name,omitempty"`
	RoadHighwayType *string  `json:"road_highway_type,omitempty"`
	SpeedLimitMPH   *float64 `json:"speed_limit_mph,omitempty"` // reserved, never populated

	WeatherSummary  *string  `json:"weather_summary,omitempty"`
	TemperatureF    *float64 `json:"temperature_f,omitempty"`
	PrecipitationIn *float64 `json:"precipitation_in,omitempty"`
	WindMPH         *float64 `json:"wind_mph,omitempty"`
	ConditionCode   *string  `json:"condition_code,omitempty"`
}

// AnalysisResult composes the original event, its enrichment, and the
// generated narrative.
type AnalysisResult struct {
	Event     TelemetryEvent  `json:"event"`
	Enriched  EnrichedContext `json:"enriched"`
	AIContext string          `json:"ai_context"`
}
