package anthropic

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"schedbot/clients"
)

const defaultRequestTimeout = 30 * time.Second

// AnthropicClient implements the clients.LLMClient interface using the
// official Anthropic SDK
type AnthropicClient struct {
	client anthropic.Client
	model  anthropic.Model
}

// NewAnthropicClient creates a new Anthropic completion client
func NewAnthropicClient(apiKey, model string) clients.LLMClient {
	return &AnthropicClient{
		client: anthropic.NewClient(
			option.WithAPIKey(apiKey),
			option.WithRequestTimeout(defaultRequestTimeout),
		),
		model: anthropic.Model(model),
	}
}

// Complete sends a system prompt plus user text to the Messages API and
// returns the concatenated text blocks of the response
func (c *AnthropicClient) Complete(ctx context.Context, systemPrompt, userText string) (string, error) {
	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       c.model,
		MaxTokens:   1024,
		Temperature: anthropic.Float(0.3),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userText)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create completion: %w", err)
	}

	var sb strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	if sb.Len() == 0 {
		return "", fmt.Errorf("completion contained no text content")
	}

	return sb.String(), nil
}
