package enrich

import (
	"encoding/json"
	"errors"
	"math"
	"time"

	"github.com/araddon/dateparse"

	"github.com/motio/analysis-api/internal/lib/fault"
)

// FlexTime accepts either a JSON number (Unix seconds, possibly fractional)
// or a date string in any recognizable format. The value is always normalized
// to UTC: numbers are interpreted directly as UTC epoch seconds, and strings
// without an offset are assumed to be UTC.
type FlexTime struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *FlexTime) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		return fault.Newf(fault.Validation, "timestamp", "timestamp is required")
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fault.New(fault.Validation, "timestamp", err)
		}
		parsed, err := ParseInstant(s)
		if err != nil {
			return err
		}
		t.Time = parsed
		return nil
	}

	var seconds float64
	if err := json.Unmarshal(data, &seconds); err != nil {
		return fault.New(fault.Validation, "timestamp", err)
	}
	t.Time = FromEpochSeconds(seconds)
	return nil
}

// MarshalJSON renders the instant as an RFC 3339 string in UTC.
func (t FlexTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.UTC().Format(time.RFC3339Nano))
}

// FromEpochSeconds converts fractional Unix seconds to a UTC instant.
func FromEpochSeconds(seconds float64) time.Time {
	sec, frac := math.Modf(seconds)
	return time.Unix(int64(sec), int64(math.Round(frac*1e9))).UTC()
}

// ParseInstant parses a free-form date string. A parsed offset is honored and
// the result converted to UTC; strings with no offset are taken as UTC.
func ParseInstant(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fault.New(fault.Validation, "timestamp", errors.New("empty timestamp string"))
	}
	parsed, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, fault.New(fault.Validation, "timestamp", err)
	}
	return parsed.UTC(), nil
}
