package narrate

import (
	"context"
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motio/analysis-api/internal/lib/fault"
)

// fakeCompleter records the request it received and replies with a canned
// response.
type fakeCompleter struct {
	lastRequest openai.ChatCompletionRequest
	response    openai.ChatCompletionResponse
	err         error
}

func (f *fakeCompleter) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.lastRequest = req
	return f.response, f.err
}

func completionWith(text string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: text}},
		},
	}
}

func TestNarrate_ReturnsCompletionVerbatim(t *testing.T) {
	fake := &fakeCompleter{response: completionWith("  Slow down on wet residential streets.  ")}
	n := NewNarratorWithClient(fake, "gpt-5-nano")

	out, err := n.Narrate(context.Background(), Request{
		EventType:      "hard_brake",
		WeatherSummary: "55°F, wind 12 mi/h, 0.3in precip",
		RoadType:       "residential",
	})
	require.NoError(t, err)

	// No trimming or post-processing of the model output.
	assert.Equal(t, "  Slow down on wet residential streets.  ", out)
}

func TestNarrate_PromptEmbedsContext(t *testing.T) {
	fake := &fakeCompleter{response: completionWith("ok")}
	n := NewNarratorWithClient(fake, "gpt-5-nano")

	_, err := n.Narrate(context.Background(), Request{
		EventType:      "hard_corner",
		WeatherSummary: "72°F, wind 5 mi/h",
		RoadType:       "primary",
	})
	require.NoError(t, err)

	assert.Equal(t, "gpt-5-nano", fake.lastRequest.Model)
	require.Len(t, fake.lastRequest.Messages, 1)
	assert.Equal(t, openai.ChatMessageRoleUser, fake.lastRequest.Messages[0].Role)

	prompt := fake.lastRequest.Messages[0].Content
	assert.Contains(t, prompt, "type=hard_corner")
	assert.Contains(t, prompt, "weather='72°F, wind 5 mi/h'")
	assert.Contains(t, prompt, "road='primary'")
	assert.Contains(t, prompt, "suggestions to avoid this error")
}

func TestNarrate_APIError(t *testing.T) {
	fake := &fakeCompleter{err: errors.New("rate limited")}
	n := NewNarratorWithClient(fake, "gpt-5-nano")

	_, err := n.Narrate(context.Background(), Request{EventType: "overspeed"})
	require.Error(t, err)
	assert.Equal(t, fault.Generation, fault.KindOf(err))
	assert.Contains(t, err.Error(), "rate limited")
}

func TestNarrate_EmptyChoices(t *testing.T) {
	fake := &fakeCompleter{response: openai.ChatCompletionResponse{}}
	n := NewNarratorWithClient(fake, "gpt-5-nano")

	_, err := n.Narrate(context.Background(), Request{EventType: "other"})
	require.Error(t, err)
	assert.Equal(t, fault.Generation, fault.KindOf(err))
}

func TestNarrate_MissingAPIKey(t *testing.T) {
	n := NewNarrator("", "gpt-5-nano")

	_, err := n.Narrate(context.Background(), Request{EventType: "hard_brake"})
	require.Error(t, err)
	assert.Equal(t, fault.Generation, fault.KindOf(err))
	assert.Contains(t, err.Error(), "not initialized")
}
