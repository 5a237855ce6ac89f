package slack

import (
	"context"

	"schedbot/clients"
)

// MockSlackClient implements SlackClient interface for testing
type MockSlackClient struct {
	// Bot operations
	MockAuthTest func(ctx context.Context) (*clients.SlackAuthTestResponse, error)

	// Channel operations
	MockGetConversationHistory func(ctx context.Context, channelID string, limit int) ([]clients.SlackHistoryMessage, error)
	MockGetConversationInfo    func(ctx context.Context, channelID string) error
	MockOpenDirectMessage      func(ctx context.Context, userID string) (string, error)

	// User operations
	MockGetUserDisplayName func(ctx context.Context, userID string) (string, error)

	// Message operations
	MockPostMessage func(ctx context.Context, channelID, text string) error
}

// NewMockSlackClient creates a new mock Slack client
func NewMockSlackClient() *MockSlackClient {
	return &MockSlackClient{}
}

// AuthTest implements SlackClient interface for testing
func (m *MockSlackClient) AuthTest(ctx context.Context) (*clients.SlackAuthTestResponse, error) {
	if m.MockAuthTest != nil {
		return m.MockAuthTest(ctx)
	}

	// Default mock response
	return &clients.SlackAuthTestResponse{
		UserID: "U123456789",
		TeamID: "T123456789",
	}, nil
}

// GetConversationHistory implements SlackClient interface for testing
func (m *MockSlackClient) GetConversationHistory(
	ctx context.Context,
	channelID string,
	limit int,
) ([]clients.SlackHistoryMessage, error) {
	if m.MockGetConversationHistory != nil {
		return m.MockGetConversationHistory(ctx, channelID, limit)
	}

	return nil, nil
}

// GetConversationInfo implements SlackClient interface for testing
func (m *MockSlackClient) GetConversationInfo(ctx context.Context, channelID string) error {
	if m.MockGetConversationInfo != nil {
		return m.MockGetConversationInfo(ctx, channelID)
	}

	return nil
}

// OpenDirectMessage implements SlackClient interface for testing
func (m *MockSlackClient) OpenDirectMessage(ctx context.Context, userID string) (string, error) {
	if m.MockOpenDirectMessage != nil {
		return m.MockOpenDirectMessage(ctx, userID)
	}

	// Default mock response
	return "D123456789", nil
}

// GetUserDisplayName implements SlackClient interface for testing
func (m *MockSlackClient) GetUserDisplayName(ctx context.Context, userID string) (string, error) {
	if m.MockGetUserDisplayName != nil {
		return m.MockGetUserDisplayName(ctx, userID)
	}

	// Default mock response
	return "Test User", nil
}

// PostMessage implements SlackClient interface for testing
func (m *MockSlackClient) PostMessage(ctx context.Context, channelID, text string) error {
	if m.MockPostMessage != nil {
		return m.MockPostMessage(ctx, channelID, text)
	}

	return nil
}
