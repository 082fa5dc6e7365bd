// Package enrich derives local-time context for a telemetry event: timestamp
// normalization, coordinate-based timezone resolution, and time-of-day
// bucketing.
package enrich

import (
	"fmt"
	"time"

	"github.com/ringsaturn/tzf"
)

// Time-of-day buckets, derived purely from the local hour.
const (
	TimeOfDayNight     = "night"
	TimeOfDayDawn      = "dawn"
	TimeOfDayMorning   = "morning"
	TimeOfDayAfternoon = "afternoon"
	TimeOfDayEvening   = "evening"
)

// Localization is the local-calendar view of a UTC instant at a coordinate.
type Localization struct {
	LocalTimeISO string
	Timezone     string
	TimeOfDay    string
}

// TimezoneFinder is the slice of the tzf finder the Localizer uses.
// Note the longitude-first argument order, matching tzf.
type TimezoneFinder interface {
	GetTimezoneName(lng float64, lat float64) string
}

// Localizer resolves coordinates to IANA timezones. The underlying finder
// index is expensive to build; construct one Localizer at startup and share
// it across requests.
type Localizer struct {
	finder TimezoneFinder
}

// NewLocalizer builds the timezone finder index.
func NewLocalizer() (*Localizer, error) {
	finder, err := tzf.NewDefaultFinder()
	if err != nil {
		return nil, fmt.Errorf("failed to build timezone finder: %w", err)
	}
	return &Localizer{finder: finder}, nil
}

// NewLocalizerWithFinder creates a Localizer with a custom finder. Used by
// tests.
func NewLocalizerWithFinder(finder TimezoneFinder) *Localizer {
	return &Localizer{finder: finder}
}

// Localize converts a UTC instant to the local wall-clock time at the given
// coordinate. Falls back to UTC when no timezone covers the coordinate or the
// resolved name is unknown to the tz database.
func (l *Localizer) Localize(lat, lng float64, instant time.Time) Localization {
	name := l.finder.GetTimezoneName(lng, lat)
	if name == "" {
		name = "UTC"
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		name = "UTC"
		loc = time.UTC
	}

	local := instant.In(loc)
	return Localization{
		LocalTimeISO: local.Format(time.RFC3339),
		Timezone:     name,
		TimeOfDay:    TimeOfDayBucket(local.Hour()),
	}
}

// TimeOfDayBucket maps a local hour to its coarse bucket using half-open
// bins: [5,8) dawn, [8,12) morning, [12,17) afternoon, [17,21) evening,
// everything else night.
func TimeOfDayBucket(hour int) string {
	switch {
	case hour >= 5 && hour < 8:
		return TimeOfDayDawn
	case hour >= 8 && hour < 12:
		return TimeOfDayMorning
	case hour >= 12 && hour < 17:
		return TimeOfDayAfternoon
	case hour >= 17 && hour < 21:
		return TimeOfDayEvening
	default:
		return TimeOfDayNight
	}
}
