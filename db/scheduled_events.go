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

type PostgresScheduledEventsRepository struct {
	db     *sqlx.DB
	schema string
}

// Column names for scheduled_events table
var scheduledEventsColumns = []string{
	"id",
	"slack_message_id",
	"event_type",
	"title",
	"description",
	"start_datetime",
	"end_datetime",
	"location",
	"participants",
	"status",
	"priority",
	"is_notification_enabled",
	"last_notified_at",
	"notification_history",
	"created_at",
	"updated_at",
}

func NewPostgresScheduledEventsRepository(db *sqlx.DB, schema string) *PostgresScheduledEventsRepository {
	return &PostgresScheduledEventsRepository{db: db, schema: schema}
}

func (r *PostgresScheduledEventsRepository) CreateScheduledEvent(
	ctx context.Context,
	event *models.ScheduledEvent,
) error {
	columns := strings.Join(scheduledEventsColumns, ", ")
	query := fmt.Sprintf(`
		INSERT INTO %s.scheduled_events (id, slack_message_id, event_type, title, description, start_datetime, end_datetime, location, participants, status, priority, is_notification_enabled, last_notified_at, notification_history, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NULL, '[]', NOW(), NOW())
		RETURNING %s`, r.schema, columns)

	q := dbtx.GetTransactional(ctx, r.db)
	err := q.QueryRowxContext(
		ctx,
		query,
		event.ID,
		event.SlackMessageID,
		event.EventType,
		event.Title,
		event.Description,
		event.StartDatetime,
		event.EndDatetime,
		event.Location,
		event.Participants,
		event.Status,
		event.Priority,
		event.IsNotificationEnabled,
	).StructScan(event)
	if err != nil {
		return fmt.Errorf("failed to create scheduled event: %w", err)
	}

	return nil
}

func (r *PostgresScheduledEventsRepository) GetScheduledEventByID(
	ctx context.Context,
	id string,
) (mo.Option[*models.ScheduledEvent], error) {
	columns := strings.Join(scheduledEventsColumns, ", ")
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.scheduled_events
		WHERE id = $1`, columns, r.schema)

	event := &models.ScheduledEvent{}
	q := dbtx.GetTransactional(ctx, r.db)
	err := q.GetContext(ctx, event, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return mo.None[*models.ScheduledEvent](), nil
		}
		return mo.None[*models.ScheduledEvent](), fmt.Errorf("failed to get scheduled event: %w", err)
	}

	return mo.Some(event), nil
}

// GetNotifiableEvents returns events starting within [windowStart, windowEnd)
// that are not cancelled, have notifications enabled and were last notified
// before the cooldown cutoff (or never), ordered by start time.
func (r *PostgresScheduledEventsRepository) GetNotifiableEvents(
	ctx context.Context,
	windowStart, windowEnd, cooldownCutoff time.Time,
) ([]*models.ScheduledEvent, error) {
	columns := strings.Join(scheduledEventsColumns, ", ")
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.scheduled_events
		WHERE start_datetime >= $1
		AND start_datetime < $2
		AND status != $3
		AND is_notification_enabled = TRUE
		AND (last_notified_at IS NULL OR last_notified_at <= $4)
		ORDER BY start_datetime ASC`, columns, r.schema)

	var events []*models.ScheduledEvent
	q := dbtx.GetTransactional(ctx, r.db)
	err := q.SelectContext(
		ctx,
		&events,
		query,
		windowStart,
		windowEnd,
		models.ScheduledEventStatusCancelled,
		cooldownCutoff,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get notifiable events: %w", err)
	}

	return events, nil
}

// RecordNotification appends a history entry and stamps last_notified_at,
// guarded by the same can-notify predicate used for selection so state that
// changed mid-run is respected. Returns false when the guard rejected the row.
func (r *PostgresScheduledEventsRepository) RecordNotification(
	ctx context.Context,
	id, recipient string,
	notifiedAt, cooldownCutoff time.Time,
) (bool, error) {
	query := fmt.Sprintf(`
		UPDATE %s.scheduled_events
		SET last_notified_at = $2,
			notification_history = notification_history || $3::jsonb,
			updated_at = NOW()
		WHERE id = $1
		AND is_notification_enabled = TRUE
		AND (last_notified_at IS NULL OR last_notified_at <= $4)`, r.schema)

	entry := models.NotificationHistory{{NotifiedAt: notifiedAt, Recipient: recipient}}

	q := dbtx.GetTransactional(ctx, r.db)
	result, err := q.ExecContext(ctx, query, id, notifiedAt, entry, cooldownCutoff)
	if err != nil {
		return false, fmt.Errorf("failed to record notification: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected == 1, nil
}
