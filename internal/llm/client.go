package llm

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/attendai/attendai/internal/models"
)

const defaultModel = "claude-sonnet-4-6"

// Client is a stateless, concurrency-safe completion client. Both pipeline
// calls (query synthesis, answer synthesis) go through Complete: one system
// instruction, one prompt, one attempt, no retries.
type Client struct {
	client    *anthropic.Client
	model     string
	maxTokens int
}

// New creates a client for Anthropic or a compatible provider behind baseURL.
func New(apiKey, model, baseURL string) *Client {
	if model == "" {
		model = defaultModel
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &Client{
		client:    anthropic.NewClient(opts...),
		model:     model,
		maxTokens: 2048,
	}
}

// Complete sends one completion request and returns the concatenated text
// blocks. Transport failures wrap models.ErrNetwork.
func (c *Client) Complete(ctx context.Context, system, prompt string) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.F(anthropic.Model(c.model)),
		MaxTokens: anthropic.F(int64(c.maxTokens)),
		Messages: anthropic.F([]anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		}),
	}
	if system != "" {
		params.System = anthropic.F([]anthropic.TextBlockParam{
			anthropic.NewTextBlock(system),
		})
	}

	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrNetwork, err)
	}

	var text string
	for _, block := range resp.Content {
		if b, ok := block.AsUnion().(anthropic.TextBlock); ok {
			text += b.Text
		}
	}
	return text, nil
}
