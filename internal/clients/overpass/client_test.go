package overpass

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/motio/analysis-api/internal/lib/fault"
)

// MockHTTPDoer is a mock implementation of HTTPDoer
type MockHTTPDoer struct {
	mock.Mock
}

func (m *MockHTTPDoer) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*http.Response), args.Error(1)
}

func createMockResponse(statusCode int, body string) *http.Response {
	return &http.Response{
		StatusCode: statusCode,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

const residentialFixture = `{
	"elements": [
		{
			"type": "way",
			"id": 123456,
			"tags": {"name": "Valencia Street", "highway": "residential"}
		},
		{
			"type": "way",
			"id": 123457,
			"tags": {"name": "Mission Street", "highway": "primary"}
		}
	]
}`

func TestNearbyRoad_FirstElementUsed(t *testing.T) {
	mockHTTP := &MockHTTPDoer{}
	mockHTTP.On("Do", mock.AnythingOfType("*http.Request")).Return(
		createMockResponse(200, residentialFixture), nil)

	client := NewClientWithHTTPDoer("https://overpass-api.de/api/interpreter", mockHTTP)

	road, err := client.NearbyRoad(context.Background(), 37.77, -122.42)
	require.NoError(t, err)
	require.NotNil(t, road)

	// Only the first matching way counts, even when several intersect the radius.
	require.NotNil(t, road.Name)
	assert.Equal(t, "Valencia Street", *road.Name)
	require.NotNil(t, road.Highway)
	assert.Equal(t, "residential", *road.Highway)

	mockHTTP.AssertExpectations(t)
}

func TestNearbyRoad_MissingTagsAreNil(t *testing.T) {
	mockHTTP := &MockHTTPDoer{}
	mockHTTP.On("Do", mock.AnythingOfType("*http.Request")).Return(
		createMockResponse(200, `{"elements":[{"type":"way","id":1,"tags":{"highway":"service"}}]}`), nil)

	client := NewClientWithHTTPDoer("https://overpass-api.de/api/interpreter", mockHTTP)

	road, err := client.NearbyRoad(context.Background(), 37.77, -122.42)
	require.NoError(t, err)
	require.NotNil(t, road)
	assert.Nil(t, road.Name)
	require.NotNil(t, road.Highway)
	assert.Equal(t, "service", *road.Highway)
}

func TestNearbyRoad_NoElementsIsNotAnError(t *testing.T) {
	mockHTTP := &MockHTTPDoer{}
	mockHTTP.On("Do", mock.AnythingOfType("*http.Request")).Return(
		createMockResponse(200, `{"elements":[]}`), nil)

	client := NewClientWithHTTPDoer("https://overpass-api.de/api/interpreter", mockHTTP)

	road, err := client.NearbyRoad(context.Background(), 37.77, -122.42)
	require.NoError(t, err)
	assert.Nil(t, road)

	mockHTTP.AssertExpectations(t)
}

func TestNearbyRoad_APIError(t *testing.T) {
	mockHTTP := &MockHTTPDoer{}
	mockHTTP.On("Do", mock.AnythingOfType("*http.Request")).Return(
		createMockResponse(429, "Too Many Requests"), nil)

	client := NewClientWithHTTPDoer("https://overpass-api.de/api/interpreter", mockHTTP)

	road, err := client.NearbyRoad(context.Background(), 37.77, -122.42)
	require.Error(t, err)
	assert.Nil(t, road)
	assert.Equal(t, fault.UpstreamResponse, fault.KindOf(err))
	assert.Contains(t, err.Error(), "API error 429")
}

func TestNearbyRoad_InvalidJSON(t *testing.T) {
	mockHTTP := &MockHTTPDoer{}
	mockHTTP.On("Do", mock.AnythingOfType("*http.Request")).Return(
		createMockResponse(200, `<html>gateway error</html>`), nil)

	client := NewClientWithHTTPDoer("https://overpass-api.de/api/interpreter", mockHTTP)

	_, err := client.NearbyRoad(context.Background(), 37.77, -122.42)
	require.Error(t, err)
	assert.Equal(t, fault.UpstreamResponse, fault.KindOf(err))
	assert.Contains(t, err.Error(), "failed to decode response")
}

func TestNearbyRoad_RequestFormat(t *testing.T) {
	var capturedRequest *http.Request
	var capturedBody string
	mockHTTP := &MockHTTPDoer{}
	mockHTTP.On("Do", mock.AnythingOfType("*http.Request")).Run(func(args mock.Arguments) {
		capturedRequest = args.Get(0).(*http.Request)
		body, _ := io.ReadAll(capturedRequest.Body)
		capturedBody = string(body)
	}).Return(createMockResponse(200, `{"elements":[]}`), nil)

	client := NewClientWithHTTPDoer("https://overpass-api.de/api/interpreter", mockHTTP)

	_, err := client.NearbyRoad(context.Background(), 37.774900, -122.419400)
	require.NoError(t, err)

	require.NotNil(t, capturedRequest)
	assert.Equal(t, "POST", capturedRequest.Method)
	assert.Equal(t, "application/x-www-form-urlencoded", capturedRequest.Header.Get("Content-Type"))

	// The QL query is form-encoded under "data".
	assert.Contains(t, capturedBody, "data=")
	assert.Contains(t, capturedBody, "around%3A30%2C37.774900%2C-122.419400")
	assert.Contains(t, capturedBody, "highway")
}
