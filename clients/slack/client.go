package slack

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"

	"schedbot/clients"
)

// SlackClient implements the clients.SlackClient interface using the
// slack-go/slack SDK
type SlackClient struct {
	*slack.Client
}

// NewSlackClient creates a new Slack client with the provided bot token
func NewSlackClient(authToken string) clients.SlackClient {
	return &SlackClient{
		Client: slack.New(authToken),
	}
}

// AuthTest verifies the bot token and returns information about the bot
func (c *SlackClient) AuthTest(ctx context.Context) (*clients.SlackAuthTestResponse, error) {
	response, err := c.Client.AuthTestContext(ctx)
	if err != nil {
		return nil, err
	}

	return &clients.SlackAuthTestResponse{
		UserID: response.UserID,
		TeamID: response.TeamID,
	}, nil
}

// GetConversationHistory fetches up to limit most recent messages from a channel
func (c *SlackClient) GetConversationHistory(
	ctx context.Context,
	channelID string,
	limit int,
) ([]clients.SlackHistoryMessage, error) {
	response, err := c.Client.GetConversationHistoryContext(ctx, &slack.GetConversationHistoryParameters{
		ChannelID: channelID,
		Limit:     limit,
	})
	if err != nil {
		return nil, err
	}

	// Map SDK messages to our custom history structs
	var messages []clients.SlackHistoryMessage
	for _, message := range response.Messages {
		postedAt, err := ParseSlackTimestamp(message.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("failed to parse message timestamp %q: %w", message.Timestamp, err)
		}
		messages = append(messages, clients.SlackHistoryMessage{
			TS:       message.Timestamp,
			UserID:   message.User,
			Text:     message.Text,
			PostedAt: postedAt,
		})
	}

	return messages, nil
}

// GetConversationInfo checks that a channel exists and is visible to the bot
func (c *SlackClient) GetConversationInfo(ctx context.Context, channelID string) error {
	_, err := c.Client.GetConversationInfoContext(ctx, &slack.GetConversationInfoInput{
		ChannelID: channelID,
	})
	return err
}

// OpenDirectMessage opens (or reuses) a DM channel with a user and returns its id
func (c *SlackClient) OpenDirectMessage(ctx context.Context, userID string) (string, error) {
	channel, _, _, err := c.Client.OpenConversationContext(ctx, &slack.OpenConversationParameters{
		Users:    []string{userID},
		ReturnIM: true,
	})
	if err != nil {
		return "", err
	}

	return channel.ID, nil
}

// GetUserDisplayName resolves a user's display name, preferring the profile
// display name over the real name
func (c *SlackClient) GetUserDisplayName(ctx context.Context, userID string) (string, error) {
	user, err := c.Client.GetUserInfoContext(ctx, userID)
	if err != nil {
		return "", err
	}

	if user.Profile.DisplayName != "" {
		return user.Profile.DisplayName, nil
	}
	if user.Profile.RealName != "" {
		return user.Profile.RealName, nil
	}
	return user.ID, nil
}

// PostMessage sends a plain-text message to a Slack channel
func (c *SlackClient) PostMessage(ctx context.Context, channelID, text string) error {
	_, _, err := c.Client.PostMessageContext(ctx, channelID, slack.MsgOptionText(text, false))
	return err
}
