package slackmessages

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schedbot/db"
	"schedbot/testutils"
)

func TestSlackMessagesService_Integration(t *testing.T) {
	cfg := testutils.LoadTestConfig(t)

	dbConn, err := db.NewConnection(cfg.DatabaseURL)
	require.NoError(t, err)
	defer dbConn.Close()

	repo := db.NewPostgresSlackMessagesRepository(dbConn, cfg.DatabaseSchema)
	service := NewSlackMessagesService(repo)
	ctx := context.Background()

	slackTS := testutils.GenerateSlackTS()
	channelID := testutils.GenerateChannelID()
	postedAt := time.Now().UTC().Truncate(time.Microsecond)

	message, err := service.UpsertSlackMessage(ctx, slackTS, channelID, "U_TEST", "明日の会議です", postedAt)
	require.NoError(t, err)
	defer func() {
		query := fmt.Sprintf("DELETE FROM %s.slack_messages WHERE id = $1", cfg.DatabaseSchema)
		_, err := dbConn.Exec(query, message.ID)
		assert.NoError(t, err)
	}()

	t.Run("upsert is idempotent on slack ts", func(t *testing.T) {
		updated, err := service.UpsertSlackMessage(ctx, slackTS, channelID, "U_TEST", "明日の会議です（更新）", postedAt)

		require.NoError(t, err)
		assert.Equal(t, message.ID, updated.ID)
		assert.Equal(t, "明日の会議です（更新）", updated.TextContent)
		assert.False(t, updated.IsAnalyzed)
	})

	t.Run("get by id", func(t *testing.T) {
		maybeMessage, err := service.GetSlackMessageByID(ctx, message.ID)

		require.NoError(t, err)
		require.True(t, maybeMessage.IsPresent())
		assert.Equal(t, slackTS, maybeMessage.MustGet().SlackTS)
	})

	t.Run("appears in unanalyzed listing", func(t *testing.T) {
		messages, err := service.GetUnanalyzedSlackMessages(ctx)

		require.NoError(t, err)
		ids := make([]string, 0, len(messages))
		for _, m := range messages {
			ids = append(ids, m.ID)
		}
		assert.Contains(t, ids, message.ID)
	})

	t.Run("claim succeeds exactly once", func(t *testing.T) {
		claimed, err := service.ClaimSlackMessageForAnalysis(ctx, message.ID)
		require.NoError(t, err)
		assert.True(t, claimed)

		claimedAgain, err := service.ClaimSlackMessageForAnalysis(ctx, message.ID)
		require.NoError(t, err)
		assert.False(t, claimedAgain)
	})

	t.Run("claimed message leaves unanalyzed listing", func(t *testing.T) {
		messages, err := service.GetUnanalyzedSlackMessages(ctx)

		require.NoError(t, err)
		for _, m := range messages {
			assert.NotEqual(t, message.ID, m.ID)
		}
	})
}

func TestSlackMessagesService_Validation(t *testing.T) {
	service := NewSlackMessagesService(nil)
	ctx := context.Background()

	t.Run("empty slack ts", func(t *testing.T) {
		_, err := service.UpsertSlackMessage(ctx, "", "C123", "U123", "text", time.Now())
		assert.Error(t, err)
	})

	t.Run("empty channel id", func(t *testing.T) {
		_, err := service.UpsertSlackMessage(ctx, "1712345678.000100", "", "U123", "text", time.Now())
		assert.Error(t, err)
	})

	t.Run("zero posted at", func(t *testing.T) {
		_, err := service.UpsertSlackMessage(ctx, "1712345678.000100", "C123", "U123", "text", time.Time{})
		assert.Error(t, err)
	})

	t.Run("invalid id rejected", func(t *testing.T) {
		_, err := service.GetSlackMessageByID(ctx, "not-a-ulid")
		assert.Error(t, err)

		_, err = service.ClaimSlackMessageForAnalysis(ctx, "not-a-ulid")
		assert.Error(t, err)
	})
}
