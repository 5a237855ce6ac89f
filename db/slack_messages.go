package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/samber/mo"

	dbtx "schedbot/db/tx"
	"schedbot/models"
)

type PostgresSlackMessagesRepository struct {
	db     *sqlx.DB
	schema string
}

// Column names for slack_messages table
var slackMessagesColumns = []string{
	"id",
	"slack_ts",
	"channel_id",
	"user_id",
	"text_content",
	"posted_at",
	"is_analyzed",
	"analyzed_at",
	"created_at",
	"updated_at",
}

func NewPostgresSlackMessagesRepository(db *sqlx.DB, schema string) *PostgresSlackMessagesRepository {
	return &PostgresSlackMessagesRepository{db: db, schema: schema}
}

// UpsertSlackMessage inserts a message keyed on its Slack ts, overwriting
// channel/user/text/posted_at on conflict. Analysis state is never reset by
// an upsert.
func (r *PostgresSlackMessagesRepository) UpsertSlackMessage(
	ctx context.Context,
	message *models.SlackMessage,
) error {
	columns := strings.Join(slackMessagesColumns, ", ")
	query := fmt.Sprintf(`
		INSERT INTO %s.slack_messages (id, slack_ts, channel_id, user_id, text_content, posted_at, is_analyzed, analyzed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE, NULL, NOW(), NOW())
		ON CONFLICT (slack_ts) DO UPDATE SET
			channel_id = EXCLUDED.channel_id,
			user_id = EXCLUDED.user_id,
			text_content = EXCLUDED.text_content,
			posted_at = EXCLUDED.posted_at,
			updated_at = NOW()
		RETURNING %s`, r.schema, columns)

	q := dbtx.GetTransactional(ctx, r.db)
	err := q.QueryRowxContext(
		ctx,
		query,
		message.ID,
		message.SlackTS,
		message.ChannelID,
		message.UserID,
		message.TextContent,
		message.PostedAt,
	).StructScan(message)
	if err != nil {
		return fmt.Errorf("failed to upsert slack message: %w", err)
	}

	return nil
}

func (r *PostgresSlackMessagesRepository) GetSlackMessageByID(
	ctx context.Context,
	id string,
) (mo.Option[*models.SlackMessage], error) {
	columns := strings.Join(slackMessagesColumns, ", ")
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.slack_messages
		WHERE id = $1`, columns, r.schema)

	message := &models.SlackMessage{}
	q := dbtx.GetTransactional(ctx, r.db)
	err := q.GetContext(ctx, message, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return mo.None[*models.SlackMessage](), nil
		}
		return mo.None[*models.SlackMessage](), fmt.Errorf("failed to get slack message: %w", err)
	}

	return mo.Some(message), nil
}

// GetUnanalyzedSlackMessages returns every message not yet claimed for analysis
func (r *PostgresSlackMessagesRepository) GetUnanalyzedSlackMessages(
	ctx context.Context,
) ([]*models.SlackMessage, error) {
	columns := strings.Join(slackMessagesColumns, ", ")
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.slack_messages
		WHERE is_analyzed = FALSE
		ORDER BY posted_at ASC`, columns, r.schema)

	var messages []*models.SlackMessage
	q := dbtx.GetTransactional(ctx, r.db)
	err := q.SelectContext(ctx, &messages, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get unanalyzed slack messages: %w", err)
	}

	return messages, nil
}

// ClaimSlackMessageForAnalysis flips is_analyzed false -> true for a single
// message. The equality guard makes concurrent workers safe: only one caller
// observes true, and a claimed message is never selected again.
func (r *PostgresSlackMessagesRepository) ClaimSlackMessageForAnalysis(
	ctx context.Context,
	id string,
	analyzedAt time.Time,
) (bool, error) {
	query := fmt.Sprintf(`
		UPDATE %s.slack_messages
		SET is_analyzed = TRUE, analyzed_at = $2, updated_at = NOW()
		WHERE id = $1 AND is_analyzed = FALSE`, r.schema)

	q := dbtx.GetTransactional(ctx, r.db)
	result, err := q.ExecContext(ctx, query, id, analyzedAt)
	if err != nil {
		return false, fmt.Errorf("failed to claim slack message for analysis: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected == 1, nil
}
