package ingestion

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"schedbot/clients"
	slackclient "schedbot/clients/slack"
	"schedbot/models"
	"schedbot/services/slackmessages"
)

const testChannelID = "C_SOURCE"

func newTestIngestionUseCase() (*IngestionUseCase, *slackclient.MockSlackClient, *slackmessages.MockSlackMessagesService) {
	slackClient := slackclient.NewMockSlackClient()
	slackMessages := new(slackmessages.MockSlackMessagesService)
	uc := NewIngestionUseCase(slackClient, slackMessages, testChannelID, 100)
	return uc, slackClient, slackMessages
}

func historyMessage(ts, userID, text string, postedAt time.Time) clients.SlackHistoryMessage {
	return clients.SlackHistoryMessage{
		TS:       ts,
		UserID:   userID,
		Text:     text,
		PostedAt: postedAt,
	}
}

func TestIngestionRun_UpsertsEachMessage(t *testing.T) {
	uc, slackClient, slackMessages := newTestIngestionUseCase()

	postedAt := time.Date(2024, 4, 5, 9, 0, 0, 0, time.UTC)
	slackClient.MockGetConversationHistory = func(ctx context.Context, channelID string, limit int) ([]clients.SlackHistoryMessage, error) {
		assert.Equal(t, testChannelID, channelID)
		assert.Equal(t, 100, limit)
		return []clients.SlackHistoryMessage{
			historyMessage("1712345678.000100", "U_1", "明日10時に会議です", postedAt),
			historyMessage("1712345678.000200", "U_2", "了解です", postedAt.Add(time.Minute)),
		}, nil
	}

	slackMessages.On("UpsertSlackMessage",
		mock.Anything, "1712345678.000100", testChannelID, "U_1", "明日10時に会議です", postedAt).
		Return(&models.SlackMessage{ID: "msg_1"}, nil).Once()
	slackMessages.On("UpsertSlackMessage",
		mock.Anything, "1712345678.000200", testChannelID, "U_2", "了解です", postedAt.Add(time.Minute)).
		Return(&models.SlackMessage{ID: "msg_2"}, nil).Once()

	err := uc.Run(context.Background())

	require.NoError(t, err)
	slackMessages.AssertExpectations(t)
}

func TestIngestionRun_EmptyHistory(t *testing.T) {
	uc, slackClient, slackMessages := newTestIngestionUseCase()

	slackClient.MockGetConversationHistory = func(ctx context.Context, channelID string, limit int) ([]clients.SlackHistoryMessage, error) {
		return nil, nil
	}

	err := uc.Run(context.Background())

	require.NoError(t, err)
	slackMessages.AssertNotCalled(t, "UpsertSlackMessage",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestIngestionRun_TransportFailureAborts(t *testing.T) {
	uc, slackClient, slackMessages := newTestIngestionUseCase()

	slackClient.MockGetConversationHistory = func(ctx context.Context, channelID string, limit int) ([]clients.SlackHistoryMessage, error) {
		return nil, errors.New("invalid_auth")
	}

	err := uc.Run(context.Background())

	assert.Error(t, err)
	slackMessages.AssertNotCalled(t, "UpsertSlackMessage",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestIngestionRun_UpsertFailureAborts(t *testing.T) {
	uc, slackClient, slackMessages := newTestIngestionUseCase()

	postedAt := time.Date(2024, 4, 5, 9, 0, 0, 0, time.UTC)
	slackClient.MockGetConversationHistory = func(ctx context.Context, channelID string, limit int) ([]clients.SlackHistoryMessage, error) {
		return []clients.SlackHistoryMessage{
			historyMessage("1712345678.000100", "U_1", "明日10時に会議です", postedAt),
			historyMessage("1712345678.000200", "U_2", "了解です", postedAt.Add(time.Minute)),
		}, nil
	}

	slackMessages.On("UpsertSlackMessage",
		mock.Anything, "1712345678.000100", testChannelID, "U_1", "明日10時に会議です", postedAt).
		Return(nil, errors.New("database unavailable")).Once()

	err := uc.Run(context.Background())

	assert.Error(t, err)
	slackMessages.AssertExpectations(t)
	slackMessages.AssertNotCalled(t, "UpsertSlackMessage",
		mock.Anything, "1712345678.000200", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestIngestionRun_UnconfiguredChannel(t *testing.T) {
	slackClient := slackclient.NewMockSlackClient()
	slackMessages := new(slackmessages.MockSlackMessagesService)
	uc := NewIngestionUseCase(slackClient, slackMessages, "", 100)

	err := uc.Run(context.Background())

	assert.Error(t, err)
}
