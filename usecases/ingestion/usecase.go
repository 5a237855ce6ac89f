package ingestion

import (
	"context"
	"fmt"
	"log"

	"schedbot/clients"
	"schedbot/services"
)

// IngestionUseCase pulls recent messages from the source Slack channel and
// upserts them into the message store.
type IngestionUseCase struct {
	slackClient          clients.SlackClient
	slackMessagesService services.SlackMessagesService
	sourceChannelID      string
	fetchLimit           int
}

// NewIngestionUseCase creates a new instance of IngestionUseCase
func NewIngestionUseCase(
	slackClient clients.SlackClient,
	slackMessagesService services.SlackMessagesService,
	sourceChannelID string,
	fetchLimit int,
) *IngestionUseCase {
	return &IngestionUseCase{
		slackClient:          slackClient,
		slackMessagesService: slackMessagesService,
		sourceChannelID:      sourceChannelID,
		fetchLimit:           fetchLimit,
	}
}

// Run executes one ingestion batch. A transport or auth failure aborts the
// run; upserts already committed stand and the run is safe to retry because
// ingestion is idempotent on the Slack message ts.
func (u *IngestionUseCase) Run(ctx context.Context) error {
	log.Printf("📋 Starting to fetch messages from channel: %s (limit %d)", u.sourceChannelID, u.fetchLimit)

	if u.sourceChannelID == "" {
		return fmt.Errorf("source channel id is not configured")
	}

	messages, err := u.slackClient.GetConversationHistory(ctx, u.sourceChannelID, u.fetchLimit)
	if err != nil {
		return fmt.Errorf("failed to fetch channel history: %w", err)
	}

	if len(messages) == 0 {
		log.Printf("📋 Completed successfully - no new messages in channel %s", u.sourceChannelID)
		return nil
	}

	saved := 0
	for _, message := range messages {
		if _, err := u.slackMessagesService.UpsertSlackMessage(
			ctx,
			message.TS,
			u.sourceChannelID,
			message.UserID,
			message.Text,
			message.PostedAt,
		); err != nil {
			return fmt.Errorf("failed to save message %s: %w", message.TS, err)
		}
		saved++
	}

	log.Printf("📋 Completed successfully - fetched %d messages, saved %d", len(messages), saved)
	return nil
}
