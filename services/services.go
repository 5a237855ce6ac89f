package services

import (
	"context"
	"time"

	"github.com/samber/mo"
	"github.com/shopspring/decimal"

	"schedbot/models"
)

// SlackMessagesService defines the interface for ingested-message operations
type SlackMessagesService interface {
	UpsertSlackMessage(
		ctx context.Context,
		slackTS, channelID, userID, textContent string,
		postedAt time.Time,
	) (*models.SlackMessage, error)
	GetSlackMessageByID(ctx context.Context, id string) (mo.Option[*models.SlackMessage], error)
	GetUnanalyzedSlackMessages(ctx context.Context) ([]*models.SlackMessage, error)
	ClaimSlackMessageForAnalysis(ctx context.Context, id string) (bool, error)
}

// EventAnalysesService defines the interface for extraction audit records
type EventAnalysesService interface {
	CreateEventAnalysis(
		ctx context.Context,
		slackMessageID string,
		extractedData models.JSONMap,
		confidenceScore decimal.Decimal,
		status models.EventAnalysisStatus,
		derived models.DerivedEventFields,
	) (*models.EventAnalysis, error)
	GetEventAnalysesBySlackMessageID(ctx context.Context, slackMessageID string) ([]*models.EventAnalysis, error)
	MarkEventAnalysisSuccess(ctx context.Context, id string, scheduledEventID *string) (*models.EventAnalysis, error)
	MarkEventAnalysisFailed(ctx context.Context, id, analysisError string) (*models.EventAnalysis, error)
}

// ScheduledEventsService defines the interface for scheduled-event operations
type ScheduledEventsService interface {
	CreateScheduledEvent(ctx context.Context, event *models.ScheduledEvent) (*models.ScheduledEvent, error)
	GetScheduledEventByID(ctx context.Context, id string) (mo.Option[*models.ScheduledEvent], error)
	GetNotifiableEvents(
		ctx context.Context,
		windowStart, windowEnd time.Time,
		cooldown time.Duration,
		now time.Time,
	) ([]*models.ScheduledEvent, error)
	RecordNotification(
		ctx context.Context,
		id, recipient string,
		now time.Time,
		cooldown time.Duration,
	) (bool, error)
}

// TransactionManager defines the interface for scoping multi-write operations
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(context.Context) error) error
}
