package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"schedbot/clients"
	slackclient "schedbot/clients/slack"
	"schedbot/models"
	"schedbot/services/scheduledevents"
	"schedbot/services/slackmessages"
)

const testChannelID = "C_NOTIFY"

var testCooldown = 30 * time.Minute

type notificationMocks struct {
	slackClient     *slackclient.MockSlackClient
	slackMessages   *slackmessages.MockSlackMessagesService
	scheduledEvents *scheduledevents.MockScheduledEventsService
}

func newTestNotificationUseCase(now time.Time) (*NotificationUseCase, *notificationMocks) {
	mocks := &notificationMocks{
		slackClient:     slackclient.NewMockSlackClient(),
		slackMessages:   new(slackmessages.MockSlackMessagesService),
		scheduledEvents: new(scheduledevents.MockScheduledEventsService),
	}
	uc := NewNotificationUseCase(
		mocks.slackClient,
		mocks.slackMessages,
		mocks.scheduledEvents,
		testChannelID,
		testCooldown,
	)
	uc.now = func() time.Time { return now }
	return uc, mocks
}

func notifiableEvent(id, slackMessageID string, start time.Time) *models.ScheduledEvent {
	return &models.ScheduledEvent{
		ID:                    id,
		SlackMessageID:        slackMessageID,
		EventType:             "meeting",
		Title:                 "朝会",
		StartDatetime:         start,
		Status:                models.ScheduledEventStatusPending,
		Priority:              models.EventPriorityMedium,
		IsNotificationEnabled: true,
	}
}

func sourceMessage(id, userID string) *models.SlackMessage {
	return &models.SlackMessage{
		ID:        id,
		SlackTS:   "1712345678.000100",
		ChannelID: "C_SOURCE",
		UserID:    userID,
	}
}

func TestNotificationRun_PostsBatchAndRecords(t *testing.T) {
	now := time.Date(2024, 4, 5, 8, 30, 0, 0, time.Local)
	uc, mocks := newTestNotificationUseCase(now)

	description := "四半期レビュー"
	location := "会議室A"
	end := time.Date(2024, 4, 5, 11, 0, 0, 0, time.Local)

	first := notifiableEvent("evt_1", "msg_1", time.Date(2024, 4, 5, 9, 0, 0, 0, time.Local))
	second := notifiableEvent("evt_2", "msg_2", time.Date(2024, 4, 5, 10, 0, 0, 0, time.Local))
	second.Title = "企画レビュー"
	second.Description = &description
	second.Location = &location
	second.EndDatetime = &end
	second.Priority = models.EventPriorityHigh

	windowStart := time.Date(2024, 4, 5, 0, 0, 0, 0, time.Local)
	windowEnd := windowStart.AddDate(0, 0, 1)
	mocks.scheduledEvents.On("GetNotifiableEvents", mock.Anything, windowStart, windowEnd, testCooldown, now).
		Return([]*models.ScheduledEvent{first, second}, nil)

	mocks.slackMessages.On("GetSlackMessageByID", mock.Anything, "msg_1").
		Return(mo.Some(sourceMessage("msg_1", "U_TANAKA")), nil)
	mocks.slackMessages.On("GetSlackMessageByID", mock.Anything, "msg_2").
		Return(mo.Some(sourceMessage("msg_2", "U_SUZUKI")), nil)
	mocks.slackClient.MockGetUserDisplayName = func(ctx context.Context, userID string) (string, error) {
		if userID == "U_TANAKA" {
			return "tanaka", nil
		}
		return "suzuki", nil
	}

	var postedChannel, postedText string
	mocks.slackClient.MockPostMessage = func(ctx context.Context, channelID, text string) error {
		postedChannel = channelID
		postedText = text
		return nil
	}

	mocks.scheduledEvents.On("RecordNotification", mock.Anything, "evt_1", "channel", now, testCooldown).
		Return(true, nil).Once()
	mocks.scheduledEvents.On("RecordNotification", mock.Anything, "evt_2", "channel", now, testCooldown).
		Return(true, nil).Once()

	err := uc.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, testChannelID, postedChannel)
	assert.Contains(t, postedText, "【本日の予定一覧】")
	assert.Contains(t, postedText, "⏰ 09:00")
	assert.Contains(t, postedText, "⏰ 10:00")
	assert.Contains(t, postedText, "作成者: @tanaka")
	assert.Contains(t, postedText, "作成者: @suzuki")
	assert.Contains(t, postedText, "タイトル: 朝会")
	assert.Contains(t, postedText, "説明: （なし）")
	assert.Contains(t, postedText, "説明: 四半期レビュー")
	assert.Contains(t, postedText, "終了時刻: 11:00")
	assert.Contains(t, postedText, "場所: （未設定）")
	assert.Contains(t, postedText, "場所: 会議室A")
	assert.Contains(t, postedText, "優先度: high")
	mocks.scheduledEvents.AssertExpectations(t)
}

func TestNotificationRun_SendFailureRecordsNothing(t *testing.T) {
	now := time.Date(2024, 4, 5, 8, 30, 0, 0, time.Local)
	uc, mocks := newTestNotificationUseCase(now)

	event := notifiableEvent("evt_1", "msg_1", time.Date(2024, 4, 5, 9, 0, 0, 0, time.Local))
	mocks.scheduledEvents.On("GetNotifiableEvents",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]*models.ScheduledEvent{event}, nil)
	mocks.slackMessages.On("GetSlackMessageByID", mock.Anything, "msg_1").
		Return(mo.Some(sourceMessage("msg_1", "U_TANAKA")), nil)
	mocks.slackClient.MockPostMessage = func(ctx context.Context, channelID, text string) error {
		return errors.New("channel_not_found")
	}

	err := uc.Run(context.Background())

	assert.Error(t, err)
	mocks.scheduledEvents.AssertNotCalled(t, "RecordNotification",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestNotificationRun_NoEventsNoPost(t *testing.T) {
	now := time.Date(2024, 4, 5, 8, 30, 0, 0, time.Local)
	uc, mocks := newTestNotificationUseCase(now)

	mocks.scheduledEvents.On("GetNotifiableEvents",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]*models.ScheduledEvent{}, nil)
	mocks.slackClient.MockPostMessage = func(ctx context.Context, channelID, text string) error {
		t.Fatal("no message must be posted when there are no notifiable events")
		return nil
	}

	err := uc.Run(context.Background())

	require.NoError(t, err)
}

func TestNotificationRun_PreflightFailureAborts(t *testing.T) {
	now := time.Date(2024, 4, 5, 8, 30, 0, 0, time.Local)
	uc, mocks := newTestNotificationUseCase(now)

	mocks.slackClient.MockGetConversationInfo = func(ctx context.Context, channelID string) error {
		return errors.New("channel_not_found")
	}

	err := uc.Run(context.Background())

	assert.Error(t, err)
	mocks.scheduledEvents.AssertNotCalled(t, "GetNotifiableEvents",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestNotificationRun_AuthFailureAborts(t *testing.T) {
	now := time.Date(2024, 4, 5, 8, 30, 0, 0, time.Local)
	uc, mocks := newTestNotificationUseCase(now)

	mocks.slackClient.MockAuthTest = func(ctx context.Context) (*clients.SlackAuthTestResponse, error) {
		return nil, errors.New("invalid_auth")
	}

	err := uc.Run(context.Background())

	assert.Error(t, err)
	mocks.scheduledEvents.AssertNotCalled(t, "GetNotifiableEvents",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthorLabel(t *testing.T) {
	now := time.Date(2024, 4, 5, 8, 30, 0, 0, time.Local)

	t.Run("resolves display name", func(t *testing.T) {
		uc, mocks := newTestNotificationUseCase(now)
		mocks.slackMessages.On("GetSlackMessageByID", mock.Anything, "msg_1").
			Return(mo.Some(sourceMessage("msg_1", "U_TANAKA")), nil)
		mocks.slackClient.MockGetUserDisplayName = func(ctx context.Context, userID string) (string, error) {
			return "tanaka", nil
		}

		assert.Equal(t, "@tanaka", uc.authorLabel(context.Background(), "msg_1"))
	})

	t.Run("falls back to user ID when lookup fails", func(t *testing.T) {
		uc, mocks := newTestNotificationUseCase(now)
		mocks.slackMessages.On("GetSlackMessageByID", mock.Anything, "msg_1").
			Return(mo.Some(sourceMessage("msg_1", "U_TANAKA")), nil)
		mocks.slackClient.MockGetUserDisplayName = func(ctx context.Context, userID string) (string, error) {
			return "", errors.New("user_not_found")
		}

		assert.Equal(t, "@U_TANAKA", uc.authorLabel(context.Background(), "msg_1"))
	})

	t.Run("unknown when source message is gone", func(t *testing.T) {
		uc, mocks := newTestNotificationUseCase(now)
		mocks.slackMessages.On("GetSlackMessageByID", mock.Anything, "msg_1").
			Return(mo.None[*models.SlackMessage](), nil)

		assert.Equal(t, "不明", uc.authorLabel(context.Background(), "msg_1"))
	})
}

func TestNotifyUser(t *testing.T) {
	now := time.Date(2024, 4, 5, 8, 30, 0, 0, time.Local)
	uc, mocks := newTestNotificationUseCase(now)

	var openedUser, postedChannel, postedText string
	mocks.slackClient.MockOpenDirectMessage = func(ctx context.Context, userID string) (string, error) {
		openedUser = userID
		return "D_123", nil
	}
	mocks.slackClient.MockPostMessage = func(ctx context.Context, channelID, text string) error {
		postedChannel = channelID
		postedText = text
		return nil
	}

	err := uc.NotifyUser(context.Background(), "U_TANAKA", "リマインダーです")

	require.NoError(t, err)
	assert.Equal(t, "U_TANAKA", openedUser)
	assert.Equal(t, "D_123", postedChannel)
	assert.Equal(t, "リマインダーです", postedText)
}

func TestDayWindow(t *testing.T) {
	loc := time.FixedZone("JST", 9*3600)
	now := time.Date(2024, 4, 5, 13, 45, 12, 0, loc)

	start, end := dayWindow(now)

	assert.Equal(t, time.Date(2024, 4, 5, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2024, 4, 6, 0, 0, 0, 0, loc), end)
}
