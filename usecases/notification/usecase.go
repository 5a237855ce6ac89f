package notification

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"schedbot/clients"
	"schedbot/models"
	"schedbot/services"
)

// Placeholders used when an event field was not extracted. Notifications are
// composed in the same language as the extracted data.
const (
	notificationHeader     = "【本日の予定一覧】"
	placeholderNoTitle     = "（無題）"
	placeholderNone        = "（なし）"
	placeholderUnset       = "（未設定）"
	placeholderUnknownUser = "不明"
)

// notifiedRecipient is the recipient recorded for channel-wide batches.
const notifiedRecipient = "channel"

type NotificationUseCase struct {
	slackClient            clients.SlackClient
	slackMessagesService   services.SlackMessagesService
	scheduledEventsService services.ScheduledEventsService
	notificationChannelID  string
	cooldown               time.Duration

	now func() time.Time
}

func NewNotificationUseCase(
	slackClient clients.SlackClient,
	slackMessagesService services.SlackMessagesService,
	scheduledEventsService services.ScheduledEventsService,
	notificationChannelID string,
	cooldown time.Duration,
) *NotificationUseCase {
	return &NotificationUseCase{
		slackClient:            slackClient,
		slackMessagesService:   slackMessagesService,
		scheduledEventsService: scheduledEventsService,
		notificationChannelID:  notificationChannelID,
		cooldown:               cooldown,
		now:                    time.Now,
	}
}

// Preflight verifies the bot token and the destination channel before any
// notification work. A misconfigured channel fails here instead of after
// events were already collected.
func (uc *NotificationUseCase) Preflight(ctx context.Context) error {
	if uc.notificationChannelID == "" {
		return fmt.Errorf("notification channel is not configured")
	}
	if _, err := uc.slackClient.AuthTest(ctx); err != nil {
		return fmt.Errorf("slack auth check failed: %w", err)
	}
	if err := uc.slackClient.GetConversationInfo(ctx, uc.notificationChannelID); err != nil {
		return fmt.Errorf("notification channel %s is not accessible: %w", uc.notificationChannelID, err)
	}
	return nil
}

// Run posts one batched notification for all of today's notifiable events.
// Events are marked notified only after the post succeeded, so a failed post
// leaves them eligible for the next run.
func (uc *NotificationUseCase) Run(ctx context.Context) error {
	log.Printf("📋 Starting to notify today's scheduled events")

	if err := uc.Preflight(ctx); err != nil {
		return err
	}

	now := uc.now()
	windowStart, windowEnd := dayWindow(now)
	events, err := uc.scheduledEventsService.GetNotifiableEvents(ctx, windowStart, windowEnd, uc.cooldown, now)
	if err != nil {
		return fmt.Errorf("failed to list notifiable events: %w", err)
	}
	if len(events) == 0 {
		log.Printf("📋 Completed successfully - no events to notify")
		return nil
	}

	text := uc.composeBatchMessage(ctx, events)
	if err := uc.slackClient.PostMessage(ctx, uc.notificationChannelID, text); err != nil {
		return fmt.Errorf("failed to post notification: %w", err)
	}

	recorded := 0
	for _, event := range events {
		applied, err := uc.scheduledEventsService.RecordNotification(ctx, event.ID, notifiedRecipient, now, uc.cooldown)
		if err != nil {
			log.Printf("⚠️ Failed to record notification for event %s: %v", event.ID, err)
			continue
		}
		if !applied {
			log.Printf("⚠️ Notification for event %s was already recorded by a concurrent run", event.ID)
			continue
		}
		recorded++
	}

	log.Printf("📋 Completed successfully - notified %d events (%d recorded)", len(events), recorded)
	return nil
}

// NotifyUser sends a direct message to a single user.
func (uc *NotificationUseCase) NotifyUser(ctx context.Context, userID, text string) error {
	channelID, err := uc.slackClient.OpenDirectMessage(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to open direct message with %s: %w", userID, err)
	}
	if err := uc.slackClient.PostMessage(ctx, channelID, text); err != nil {
		return fmt.Errorf("failed to send direct message to %s: %w", userID, err)
	}
	return nil
}

// composeBatchMessage renders the batched notification text. Author lookups
// are best effort; a failed lookup falls back to the raw user ID or an
// unknown-author placeholder rather than failing the batch.
func (uc *NotificationUseCase) composeBatchMessage(ctx context.Context, events []*models.ScheduledEvent) string {
	var b strings.Builder
	b.WriteString(notificationHeader)
	b.WriteString("\n\n")

	for i, event := range events {
		if i > 0 {
			b.WriteString("\n")
		}

		endLine := ""
		if event.EndDatetime != nil {
			endLine = fmt.Sprintf("終了時刻: %s\n", event.EndDatetime.Format("15:04"))
		}

		fmt.Fprintf(&b, "⏰ %s\n作成者: %s\nタイトル: %s\n説明: %s\n%s場所: %s\n優先度: %s\n",
			event.StartDatetime.Format("15:04"),
			uc.authorLabel(ctx, event.SlackMessageID),
			valueOr(event.Title, placeholderNoTitle),
			valueOrPtr(event.Description, placeholderNone),
			endLine,
			valueOrPtr(event.Location, placeholderUnset),
			valueOr(string(event.Priority), placeholderUnset),
		)
	}

	return b.String()
}

// authorLabel resolves the display name of the user who posted the source
// message.
func (uc *NotificationUseCase) authorLabel(ctx context.Context, slackMessageID string) string {
	maybeMessage, err := uc.slackMessagesService.GetSlackMessageByID(ctx, slackMessageID)
	if err != nil || maybeMessage.IsAbsent() {
		return placeholderUnknownUser
	}

	userID := maybeMessage.MustGet().UserID
	if userID == "" {
		return placeholderUnknownUser
	}

	displayName, err := uc.slackClient.GetUserDisplayName(ctx, userID)
	if err != nil || displayName == "" {
		return "@" + userID
	}
	return "@" + displayName
}

// dayWindow returns the local-time day containing t as a half-open interval.
func dayWindow(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

func valueOr(value, placeholder string) string {
	if value == "" {
		return placeholder
	}
	return value
}

func valueOrPtr(value *string, placeholder string) string {
	if value == nil || *value == "" {
		return placeholder
	}
	return *value
}
