package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/samber/mo"

	dbtx "schedbot/db/tx"
	"schedbot/models"
)

type PostgresEventAnalysesRepository struct {
	db     *sqlx.DB
	schema string
}

// Column names for event_analyses table
var eventAnalysesColumns = []string{
	"id",
	"slack_message_id",
	"scheduled_event_id",
	"analysis_type",
	"extracted_data",
	"confidence_score",
	"analysis_status",
	"event_start_datetime",
	"event_end_datetime",
	"event_title",
	"event_type",
	"created_at",
	"updated_at",
}

func NewPostgresEventAnalysesRepository(db *sqlx.DB, schema string) *PostgresEventAnalysesRepository {
	return &PostgresEventAnalysesRepository{db: db, schema: schema}
}

func (r *PostgresEventAnalysesRepository) CreateEventAnalysis(
	ctx context.Context,
	analysis *models.EventAnalysis,
) error {
	columns := strings.Join(eventAnalysesColumns, ", ")
	query := fmt.Sprintf(`
		INSERT INTO %s.event_analyses (id, slack_message_id, scheduled_event_id, analysis_type, extracted_data, confidence_score, analysis_status, event_start_datetime, event_end_datetime, event_title, event_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING %s`, r.schema, columns)

	q := dbtx.GetTransactional(ctx, r.db)
	err := q.QueryRowxContext(
		ctx,
		query,
		analysis.ID,
		analysis.SlackMessageID,
		analysis.ScheduledEventID,
		analysis.AnalysisType,
		analysis.ExtractedData,
		analysis.ConfidenceScore,
		analysis.Status,
		analysis.EventStart,
		analysis.EventEnd,
		analysis.EventTitle,
		analysis.EventType,
	).StructScan(analysis)
	if err != nil {
		return fmt.Errorf("failed to create event analysis: %w", err)
	}

	return nil
}

func (r *PostgresEventAnalysesRepository) GetEventAnalysisByID(
	ctx context.Context,
	id string,
) (mo.Option[*models.EventAnalysis], error) {
	columns := strings.Join(eventAnalysesColumns, ", ")
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.event_analyses
		WHERE id = $1`, columns, r.schema)

	analysis := &models.EventAnalysis{}
	q := dbtx.GetTransactional(ctx, r.db)
	err := q.GetContext(ctx, analysis, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return mo.None[*models.EventAnalysis](), nil
		}
		return mo.None[*models.EventAnalysis](), fmt.Errorf("failed to get event analysis: %w", err)
	}

	return mo.Some(analysis), nil
}

func (r *PostgresEventAnalysesRepository) GetEventAnalysesBySlackMessageID(
	ctx context.Context,
	slackMessageID string,
) ([]*models.EventAnalysis, error) {
	columns := strings.Join(eventAnalysesColumns, ", ")
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.event_analyses
		WHERE slack_message_id = $1
		ORDER BY created_at ASC`, columns, r.schema)

	var analyses []*models.EventAnalysis
	q := dbtx.GetTransactional(ctx, r.db)
	err := q.SelectContext(ctx, &analyses, query, slackMessageID)
	if err != nil {
		return nil, fmt.Errorf("failed to get event analyses by slack message id: %w", err)
	}

	return analyses, nil
}

// MarkEventAnalysisSuccess promotes an analysis to success, optionally
// back-linking the scheduled event it produced.
func (r *PostgresEventAnalysesRepository) MarkEventAnalysisSuccess(
	ctx context.Context,
	id string,
	scheduledEventID *string,
) (mo.Option[*models.EventAnalysis], error) {
	columns := strings.Join(eventAnalysesColumns, ", ")
	query := fmt.Sprintf(`
		UPDATE %s.event_analyses
		SET analysis_status = $2, scheduled_event_id = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING %s`, r.schema, columns)

	analysis := &models.EventAnalysis{}
	q := dbtx.GetTransactional(ctx, r.db)
	err := q.QueryRowxContext(ctx, query, id, models.EventAnalysisStatusSuccess, scheduledEventID).
		StructScan(analysis)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return mo.None[*models.EventAnalysis](), nil
		}
		return mo.None[*models.EventAnalysis](), fmt.Errorf("failed to mark event analysis success: %w", err)
	}

	return mo.Some(analysis), nil
}

// MarkEventAnalysisFailed moves an analysis to failed and replaces its
// extracted data, which by convention carries the original fields merged with
// the failure reason.
func (r *PostgresEventAnalysesRepository) MarkEventAnalysisFailed(
	ctx context.Context,
	id string,
	extractedData models.JSONMap,
) (mo.Option[*models.EventAnalysis], error) {
	columns := strings.Join(eventAnalysesColumns, ", ")
	query := fmt.Sprintf(`
		UPDATE %s.event_analyses
		SET analysis_status = $2, extracted_data = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING %s`, r.schema, columns)

	analysis := &models.EventAnalysis{}
	q := dbtx.GetTransactional(ctx, r.db)
	err := q.QueryRowxContext(ctx, query, id, models.EventAnalysisStatusFailed, extractedData).
		StructScan(analysis)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return mo.None[*models.EventAnalysis](), nil
		}
		return mo.None[*models.EventAnalysis](), fmt.Errorf("failed to mark event analysis failed: %w", err)
	}

	return mo.Some(analysis), nil
}
