package slackmessages

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/samber/mo"

	"schedbot/core"
	"schedbot/db"
	"schedbot/models"
)

type SlackMessagesService struct {
	slackMessagesRepo *db.PostgresSlackMessagesRepository
}

func NewSlackMessagesService(repo *db.PostgresSlackMessagesRepository) *SlackMessagesService {
	return &SlackMessagesService{
		slackMessagesRepo: repo,
	}
}

func (s *SlackMessagesService) UpsertSlackMessage(
	ctx context.Context,
	slackTS, channelID, userID, textContent string,
	postedAt time.Time,
) (*models.SlackMessage, error) {
	log.Printf("📋 Starting to upsert slack message with ts: %s, channel: %s", slackTS, channelID)

	if slackTS == "" {
		return nil, fmt.Errorf("slack_ts cannot be empty")
	}
	if channelID == "" {
		return nil, fmt.Errorf("channel_id cannot be empty")
	}
	if postedAt.IsZero() {
		return nil, fmt.Errorf("posted_at cannot be zero")
	}

	message := &models.SlackMessage{
		ID:          core.NewID("msg"),
		SlackTS:     slackTS,
		ChannelID:   channelID,
		UserID:      userID,
		TextContent: textContent,
		PostedAt:    postedAt,
	}

	if err := s.slackMessagesRepo.UpsertSlackMessage(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to upsert slack message: %w", err)
	}

	log.Printf("📋 Completed successfully - upserted slack message with ID: %s", message.ID)
	return message, nil
}

func (s *SlackMessagesService) GetSlackMessageByID(
	ctx context.Context,
	id string,
) (mo.Option[*models.SlackMessage], error) {
	log.Printf("📋 Starting to get slack message by ID: %s", id)
	if !core.IsValidULID(id) {
		return mo.None[*models.SlackMessage](), fmt.Errorf("slack message ID must be a valid ULID")
	}

	maybeMsg, err := s.slackMessagesRepo.GetSlackMessageByID(ctx, id)
	if err != nil {
		return mo.None[*models.SlackMessage](), fmt.Errorf("failed to get slack message: %w", err)
	}
	if !maybeMsg.IsPresent() {
		log.Printf("📋 Completed successfully - slack message not found")
		return mo.None[*models.SlackMessage](), nil
	}
	message := maybeMsg.MustGet()

	log.Printf("📋 Completed successfully - retrieved slack message with ID: %s", message.ID)
	return mo.Some(message), nil
}

func (s *SlackMessagesService) GetUnanalyzedSlackMessages(
	ctx context.Context,
) ([]*models.SlackMessage, error) {
	log.Printf("📋 Starting to get unanalyzed slack messages")

	messages, err := s.slackMessagesRepo.GetUnanalyzedSlackMessages(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get unanalyzed slack messages: %w", err)
	}

	log.Printf("📋 Completed successfully - retrieved %d unanalyzed slack messages", len(messages))
	return messages, nil
}

// ClaimSlackMessageForAnalysis marks a message analyzed as the processing
// claim. Returns false when another worker already holds the claim.
func (s *SlackMessagesService) ClaimSlackMessageForAnalysis(
	ctx context.Context,
	id string,
) (bool, error) {
	log.Printf("📋 Starting to claim slack message for analysis: %s", id)
	if !core.IsValidULID(id) {
		return false, fmt.Errorf("slack message ID must be a valid ULID")
	}

	claimed, err := s.slackMessagesRepo.ClaimSlackMessageForAnalysis(ctx, id, time.Now())
	if err != nil {
		return false, fmt.Errorf("failed to claim slack message for analysis: %w", err)
	}

	log.Printf("📋 Completed successfully - claim result for %s: %t", id, claimed)
	return claimed, nil
}
