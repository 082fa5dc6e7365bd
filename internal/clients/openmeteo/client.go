// Package openmeteo fetches hourly forecasts from the Open-Meteo API and
// selects the record nearest a target instant.
package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/motio/analysis-api/internal/lib/fault"
	"github.com/motio/analysis-api/internal/models"
)

// HTTPDoer abstracts the HTTP client for testing.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client provides access to the Open-Meteo forecast API.
type Client struct {
	httpClient HTTPDoer
	baseURL    string
}

// NewClient creates an Open-Meteo client with a per-call timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// NewClientWithHTTPDoer creates a client with a custom HTTP implementation.
// Used by tests to inject mock responses.
func NewClientWithHTTPDoer(baseURL string, doer HTTPDoer) *Client {
	return &Client{baseURL: baseURL, httpClient: doer}
}

// Lookup requests a one-day hourly forecast for the coordinate and returns
// the record whose timestamp is closest to target. A forecast with no hourly
// timestamps yields a nil observation rather than an error; a missing value
// at the chosen index yields a nil field.
func (c *Client) Lookup(ctx context.Context, lat, lng float64, target time.Time) (*models.WeatherObservation, error) {
	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%.6f", lat))
	params.Set("longitude", fmt.Sprintf("%.6f", lng))
	params.Set("hourly", "temperature_2m,precipitation,wind_speed_10m,weather_code")
	params.Set("forecast_days", "1")
	params.Set("timezone", "auto")
	params.Set("temperature_unit", "fahrenheit")
	params.Set("wind_speed_unit", "mph")
	params.Set("precipitation_unit", "inch")

	requestURL := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fault.FromRequestError("open-meteo", fmt.Errorf("failed to execute request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fault.Newf(fault.UpstreamResponse, "open-meteo", "API error %d: %s", resp.StatusCode, string(body))
	}

	var response forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fault.New(fault.UpstreamResponse, "open-meteo", fmt.Errorf("failed to decode response: %w", err))
	}

	return observe(response.Hourly, target), nil
}

// observe selects the hourly index nearest target and assembles the
// observation. Exposed to the service layer only through Lookup.
func observe(hourly hourlyBlock, target time.Time) *models.WeatherObservation {
	if len(hourly.Time) == 0 {
		return nil
	}

	idx := nearestIndex(hourly.Time, target)

	obs := &models.WeatherObservation{
		TemperatureF:    floatAt(hourly.Temperature2M, idx),
		PrecipitationIn: floatAt(hourly.Precipitation, idx),
		WindMPH:         floatAt(hourly.WindSpeed10M, idx),
		WeatherCode:     codeAt(hourly.WeatherCode, idx),
	}
	obs.Summary = summarize(obs)
	return obs
}

// nearestIndex returns the index whose timestamp has the smallest absolute
// distance from target. Ties keep the earlier candidate; unparseable
// timestamps are skipped.
func nearestIndex(times []string, target time.Time) int {
	idx := 0
	best := math.Inf(1)

	for i, raw := range times {
		parsed, err := dateparse.ParseIn(raw, time.UTC)
		if err != nil {
			continue
		}
		d := math.Abs(parsed.Sub(target).Seconds())
		if d < best {
			best = d
			idx = i
		}
	}

	return idx
}

// summarize builds the human-readable summary: temperature, wind, and, only
// when strictly positive, precipitation. Returns nil when no bits are
// present.
func summarize(obs *models.WeatherObservation) *string {
	var bits []string
	if obs.TemperatureF != nil {
		bits = append(bits, fmt.Sprintf("%.0f°F", *obs.TemperatureF))
	}
	if obs.WindMPH != nil {
		bits = append(bits, fmt.Sprintf("wind %.0f mi/h", *obs.WindMPH))
	}
	if obs.PrecipitationIn != nil && *obs.PrecipitationIn > 0 {
		bits = append(bits, fmt.Sprintf("%.1fin precip", *obs.PrecipitationIn))
	}
	if len(bits) == 0 {
		return nil
	}
	s := strings.Join(bits, ", ")
	return &s
}

func floatAt(arr []*float64, i int) *float64 {
	if i < 0 || i >= len(arr) {
		return nil
	}
	return arr[i]
}

func codeAt(arr []*int, i int) *string {
	if i < 0 || i >= len(arr) || arr[i] == nil {
		return nil
	}
	s := fmt.Sprintf("%d", *arr[i])
	return &s
}

// forecastResponse represents the subset of the Open-Meteo response the
// client consumes: parallel hourly arrays indexed by timestamp. Pointer
// elements keep provider nulls distinguishable from zero values.
type forecastResponse struct {
	Hourly hourlyBlock `json:"hourly"`
}

type hourlyBlock struct {
	Time          []string   `json:"time"`
	Temperature2M []*float64 `json:"temperature_2m"`
	Precipitation []*float64 `json:"precipitation"`
	WindSpeed10M  []*float64 `json:"wind_speed_10m"`
	WeatherCode   []*int     `json:"weather_code"`
}
