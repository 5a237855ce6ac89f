package clients

import (
	"context"
	"time"
)

// SlackHistoryMessage is one raw message from a channel's history.
type SlackHistoryMessage struct {
	TS       string
	UserID   string
	Text     string
	PostedAt time.Time
}

// SlackAuthTestResponse carries the bot identity from auth.test.
type SlackAuthTestResponse struct {
	UserID string
	TeamID string
}

// SlackClient defines the interface for the Slack API operations the
// pipeline consumes.
type SlackClient interface {
	// Bot operations
	AuthTest(ctx context.Context) (*SlackAuthTestResponse, error)

	// Channel operations
	GetConversationHistory(ctx context.Context, channelID string, limit int) ([]SlackHistoryMessage, error)
	GetConversationInfo(ctx context.Context, channelID string) error
	OpenDirectMessage(ctx context.Context, userID string) (string, error)

	// User operations
	GetUserDisplayName(ctx context.Context, userID string) (string, error)

	// Message operations
	PostMessage(ctx context.Context, channelID, text string) error
}

// LLMClient defines the interface for structured-text completion.
type LLMClient interface {
	Complete(ctx context.Context, systemPrompt, userText string) (string, error)
}
