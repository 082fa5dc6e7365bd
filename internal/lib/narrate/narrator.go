// Package narrate turns an event classification plus its weather and road
// context into a short natural-language explanation using OpenAI.
package narrate

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/motio/analysis-api/internal/lib/fault"
)

// Request carries the context fed into the prompt. WeatherSummary and
// RoadType default to "unknown" upstream when the lookups returned no data.
type Request struct {
	EventType      string
	WeatherSummary string
	RoadType       string
}

// Narrator generates a driver-facing explanation for a telemetry event.
type Narrator interface {
	Narrate(ctx context.Context, req Request) (string, error)
}

// chatCompleter is the slice of the OpenAI client the narrator uses.
// Satisfied by *openai.Client; tests substitute a fake.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type openaiNarrator struct {
	client chatCompleter
	model  string
}

// NewNarrator creates a Narrator backed by the OpenAI chat completion API.
// The client is stateless per call; construct one at startup and share it.
func NewNarrator(apiKey, model string) Narrator {
	if apiKey == "" {
		return &openaiNarrator{client: nil, model: model} // Will cause errors - for testing
	}
	return &openaiNarrator{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// NewNarratorWithClient creates a Narrator with a custom completion client.
func NewNarratorWithClient(client chatCompleter, model string) Narrator {
	return &openaiNarrator{client: client, model: model}
}

// Narrate makes a single completion call and returns its text verbatim. The
// 2-3 sentence prose-only constraint is expressed in the prompt, not
// enforced on the output.
func (n *openaiNarrator) Narrate(ctx context.Context, req Request) (string, error) {
	if n.client == nil {
		return "", fault.New(fault.Generation, "openai", errors.New("OpenAI client not initialized - invalid API key"))
	}

	resp, err := n.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: n.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: BuildPrompt(req),
			},
		},
	})
	if err != nil {
		return "", fault.New(fault.Generation, "openai", fmt.Errorf("OpenAI API error: %w", err))
	}

	if len(resp.Choices) == 0 {
		return "", fault.New(fault.Generation, "openai", errors.New("no response from OpenAI API"))
	}

	return resp.Choices[0].Message.Content, nil
}

// BuildPrompt composes the generation prompt embedding the event type,
// weather summary, and road type.
func BuildPrompt(req Request) string {
	return fmt.Sprintf("In 2-3 short sentences, just include a paragraph with no headings or bullet points, "+
		"provide context for why the driver might have made this error (type=%s) "+
		"given weather='%s' and road='%s', also provide suggestions to avoid this error in the future.",
		req.EventType, req.WeatherSummary, req.RoadType)
}
