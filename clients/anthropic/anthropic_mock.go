package anthropic

import (
	"context"
)

// MockLLMClient implements the LLMClient interface for testing
type MockLLMClient struct {
	MockComplete func(ctx context.Context, systemPrompt, userText string) (string, error)
}

// NewMockLLMClient creates a new mock LLM client
func NewMockLLMClient() *MockLLMClient {
	return &MockLLMClient{}
}

// Complete implements LLMClient interface for testing
func (m *MockLLMClient) Complete(ctx context.Context, systemPrompt, userText string) (string, error) {
	if m.MockComplete != nil {
		return m.MockComplete(ctx, systemPrompt, userText)
	}

	// Default mock response: no extractable schedule
	return `{}`, nil
}
