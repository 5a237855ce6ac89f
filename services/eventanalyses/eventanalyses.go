package eventanalyses

import (
	"context"
	"fmt"
	"log"

	"github.com/shopspring/decimal"

	"schedbot/core"
	"schedbot/db"
	"schedbot/models"
)

type EventAnalysesService struct {
	eventAnalysesRepo *db.PostgresEventAnalysesRepository
}

func NewEventAnalysesService(repo *db.PostgresEventAnalysesRepository) *EventAnalysesService {
	return &EventAnalysesService{
		eventAnalysesRepo: repo,
	}
}

func (s *EventAnalysesService) CreateEventAnalysis(
	ctx context.Context,
	slackMessageID string,
	extractedData models.JSONMap,
	confidenceScore decimal.Decimal,
	status models.EventAnalysisStatus,
	derived models.DerivedEventFields,
) (*models.EventAnalysis, error) {
	log.Printf("📋 Starting to create event analysis for slack message: %s", slackMessageID)

	if !core.IsValidULID(slackMessageID) {
		return nil, fmt.Errorf("slack_message_id must be a valid ULID")
	}
	if confidenceScore.LessThan(decimal.Zero) || confidenceScore.GreaterThan(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("confidence_score must be between 0 and 1")
	}
	if extractedData == nil {
		extractedData = models.JSONMap{}
	}

	analysis := &models.EventAnalysis{
		ID:              core.NewID("ea"),
		SlackMessageID:  slackMessageID,
		AnalysisType:    models.AnalysisTypeEventExtraction,
		ExtractedData:   extractedData,
		ConfidenceScore: confidenceScore,
		Status:          status,
		EventStart:      derived.Start,
		EventEnd:        derived.End,
		EventTitle:      derived.Title,
		EventType:       derived.Type,
	}

	if err := s.eventAnalysesRepo.CreateEventAnalysis(ctx, analysis); err != nil {
		return nil, fmt.Errorf("failed to create event analysis: %w", err)
	}

	log.Printf("📋 Completed successfully - created event analysis with ID: %s", analysis.ID)
	return analysis, nil
}

func (s *EventAnalysesService) GetEventAnalysesBySlackMessageID(
	ctx context.Context,
	slackMessageID string,
) ([]*models.EventAnalysis, error) {
	log.Printf("📋 Starting to get event analyses for slack message: %s", slackMessageID)
	if !core.IsValidULID(slackMessageID) {
		return nil, fmt.Errorf("slack_message_id must be a valid ULID")
	}

	analyses, err := s.eventAnalysesRepo.GetEventAnalysesBySlackMessageID(ctx, slackMessageID)
	if err != nil {
		return nil, fmt.Errorf("failed to get event analyses: %w", err)
	}

	log.Printf("📋 Completed successfully - retrieved %d event analyses", len(analyses))
	return analyses, nil
}

func (s *EventAnalysesService) MarkEventAnalysisSuccess(
	ctx context.Context,
	id string,
	scheduledEventID *string,
) (*models.EventAnalysis, error) {
	log.Printf("📋 Starting to mark event analysis success: %s", id)
	if !core.IsValidULID(id) {
		return nil, fmt.Errorf("event analysis ID must be a valid ULID")
	}
	if scheduledEventID != nil && !core.IsValidULID(*scheduledEventID) {
		return nil, fmt.Errorf("scheduled_event_id must be a valid ULID")
	}

	maybeAnalysis, err := s.eventAnalysesRepo.MarkEventAnalysisSuccess(ctx, id, scheduledEventID)
	if err != nil {
		return nil, fmt.Errorf("failed to mark event analysis success: %w", err)
	}
	if !maybeAnalysis.IsPresent() {
		return nil, core.ErrNotFound
	}
	analysis := maybeAnalysis.MustGet()

	log.Printf("📋 Completed successfully - marked event analysis %s success", id)
	return analysis, nil
}

// MarkEventAnalysisFailed moves the analysis to failed and merges the error
// message into its stored extracted data.
func (s *EventAnalysesService) MarkEventAnalysisFailed(
	ctx context.Context,
	id, analysisError string,
) (*models.EventAnalysis, error) {
	log.Printf("📋 Starting to mark event analysis failed: %s", id)
	if !core.IsValidULID(id) {
		return nil, fmt.Errorf("event analysis ID must be a valid ULID")
	}
	if analysisError == "" {
		return nil, fmt.Errorf("analysis error cannot be empty")
	}

	maybeAnalysis, err := s.eventAnalysesRepo.GetEventAnalysisByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get event analysis: %w", err)
	}
	if !maybeAnalysis.IsPresent() {
		return nil, core.ErrNotFound
	}
	analysis := maybeAnalysis.MustGet()

	extractedData := models.JSONMap{}
	for key, value := range analysis.ExtractedData {
		extractedData[key] = value
	}
	extractedData["error"] = analysisError

	maybeUpdated, err := s.eventAnalysesRepo.MarkEventAnalysisFailed(ctx, id, extractedData)
	if err != nil {
		return nil, fmt.Errorf("failed to mark event analysis failed: %w", err)
	}
	if !maybeUpdated.IsPresent() {
		return nil, core.ErrNotFound
	}
	updated := maybeUpdated.MustGet()

	log.Printf("📋 Completed successfully - marked event analysis %s failed", id)
	return updated, nil
}
