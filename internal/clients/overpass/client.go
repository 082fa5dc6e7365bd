// Package overpass queries the Overpass API for the road nearest a
// coordinate.
package overpass

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/motio/analysis-api/internal/lib/fault"
	"github.com/motio/analysis-api/internal/models"
)

// Ways tagged "highway" within this radius of the event coordinate are
// considered; only the first matching way is used.
const searchRadiusMeters = 30

// HTTPDoer abstracts the HTTP client for testing.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client provides access to an Overpass API endpoint.
type Client struct {
	httpClient HTTPDoer
	baseURL    string
}

// NewClient creates an Overpass client with a per-call timeout.
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

// NearbyRoad returns the name and highway classification of the first
// highway-tagged way near the coordinate, or nil when none is found within
// the search radius.
func (c *Client) NearbyRoad(ctx context.Context, lat, lng float64) (*models.RoadInfo, error) {
	query := fmt.Sprintf(`[out:json][timeout:10];
way(around:%d,%.6f,%.6f)["highway"];
out tags geom 1;`, searchRadiusMeters, lat, lng)

	form := url.Values{}
	form.Set("data", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fault.FromRequestError("overpass", fmt.Errorf("failed to execute request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fault.Newf(fault.UpstreamResponse, "overpass", "API error %d: %s", resp.StatusCode, string(body))
	}

	var response overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fault.New(fault.UpstreamResponse, "overpass", fmt.Errorf("failed to decode response: %w", err))
	}

	// No matching way is a graceful-empty result, not an error.
	if len(response.Elements) == 0 {
		return nil, nil
	}

	tags := response.Elements[0].Tags
	return &models.RoadInfo{
		Name:    tagValue(tags, "name"),
		Highway: tagValue(tags, "highway"),
	}, nil
}

func tagValue(tags map[string]string, key string) *string {
	if v, ok := tags[key]; ok {
		return &v
	}
	return nil
}

// overpassResponse represents the subset of the Overpass JSON output the
// client consumes.
type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

type overpassElement struct {
	ID   int64             `json:"id"`
	Type string            `json:"type"`
	Tags map[string]string `json:"tags"`
}
