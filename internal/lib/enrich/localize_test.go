package enrich

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticFinder returns the same timezone name for every coordinate.
type staticFinder string

func (f staticFinder) GetTimezoneName(lng, lat float64) string { return string(f) }

func TestTimeOfDayBucket(t *testing.T) {
	cases := []struct {
		hour int
		want string
	}{
		{0, TimeOfDayNight},
		{4, TimeOfDayNight},
		{5, TimeOfDayDawn},
		{7, TimeOfDayDawn},
		{8, TimeOfDayMorning},
		{11, TimeOfDayMorning},
		{12, TimeOfDayAfternoon},
		{16, TimeOfDayAfternoon},
		{17, TimeOfDayEvening},
		{20, TimeOfDayEvening},
		{21, TimeOfDayNight},
		{23, TimeOfDayNight},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, TimeOfDayBucket(tc.hour), "hour %d", tc.hour)
	}
}

func TestLocalize_ConvertsToLocalWallClock(t *testing.T) {
	l := NewLocalizerWithFinder(staticFinder("America/Los_Angeles"))

	// 1700000000 = 2023-11-14T22:13:20Z = 14:13:20 PST.
	instant := time.Unix(1700000000, 0).UTC()
	loc := l.Localize(37.77, -122.42, instant)

	assert.Equal(t, "America/Los_Angeles", loc.Timezone)
	assert.Equal(t, "2023-11-14T14:13:20-08:00", loc.LocalTimeISO)
	assert.Equal(t, TimeOfDayAfternoon, loc.TimeOfDay)
}

func TestLocalize_NoZoneFallsBackToUTC(t *testing.T) {
	l := NewLocalizerWithFinder(staticFinder(""))

	instant := time.Unix(1700000000, 0).UTC()
	loc := l.Localize(0, 0, instant)

	assert.Equal(t, "UTC", loc.Timezone)
	assert.Equal(t, TimeOfDayNight, loc.TimeOfDay) // 22:13 UTC
	assert.Equal(t, "2023-11-14T22:13:20Z", loc.LocalTimeISO)
}

func TestLocalize_UnknownZoneFallsBackToUTC(t *testing.T) {
	l := NewLocalizerWithFinder(staticFinder("Not/AZone"))

	loc := l.Localize(0, 0, time.Unix(1700000000, 0).UTC())
	assert.Equal(t, "UTC", loc.Timezone)
}

func TestNewLocalizer_ResolvesRealCoordinates(t *testing.T) {
	l, err := NewLocalizer()
	require.NoError(t, err)

	loc := l.Localize(37.77, -122.42, time.Unix(1700000000, 0).UTC())
	assert.Equal(t, "America/Los_Angeles", loc.Timezone)
}
