package extraction

import (
	"context"
	"fmt"
	"log"

	"github.com/shopspring/decimal"

	"schedbot/clients"
	"schedbot/models"
	"schedbot/services"
)

// extractionConfidence is the score recorded for candidates the model
// returned successfully. Responses that failed outright score zero.
var extractionConfidence = decimal.NewFromFloat(0.8)

type ExtractionUseCase struct {
	llmClient              clients.LLMClient
	slackMessagesService   services.SlackMessagesService
	eventAnalysesService   services.EventAnalysesService
	scheduledEventsService services.ScheduledEventsService
	txManager              services.TransactionManager
}

func NewExtractionUseCase(
	llmClient clients.LLMClient,
	slackMessagesService services.SlackMessagesService,
	eventAnalysesService services.EventAnalysesService,
	scheduledEventsService services.ScheduledEventsService,
	txManager services.TransactionManager,
) *ExtractionUseCase {
	return &ExtractionUseCase{
		llmClient:              llmClient,
		slackMessagesService:   slackMessagesService,
		eventAnalysesService:   eventAnalysesService,
		scheduledEventsService: scheduledEventsService,
		txManager:              txManager,
	}
}

// Run analyzes all unanalyzed messages. Each message is claimed before any
// model call so a concurrent run never analyzes it twice; a message that
// fails analysis stays claimed and its failure is recorded as an analysis
// record rather than retried.
func (uc *ExtractionUseCase) Run(ctx context.Context) error {
	log.Printf("📋 Starting to analyze unanalyzed messages")

	messages, err := uc.slackMessagesService.GetUnanalyzedSlackMessages(ctx)
	if err != nil {
		return fmt.Errorf("failed to list unanalyzed messages: %w", err)
	}
	if len(messages) == 0 {
		log.Printf("📋 Completed successfully - no unanalyzed messages")
		return nil
	}

	analyzed, skipped, failed, eventsCreated := 0, 0, 0, 0
	for _, message := range messages {
		claimed, err := uc.slackMessagesService.ClaimSlackMessageForAnalysis(ctx, message.ID)
		if err != nil {
			log.Printf("⚠️ Failed to claim message %s for analysis: %v", message.ID, err)
			failed++
			continue
		}
		if !claimed {
			skipped++
			continue
		}

		created, err := uc.analyzeMessage(ctx, message)
		if err != nil {
			log.Printf("⚠️ Failed to analyze message %s: %v", message.ID, err)
			failed++
			continue
		}
		analyzed++
		eventsCreated += created
	}

	log.Printf(
		"📋 Completed successfully - analyzed %d messages (%d skipped, %d failed), created %d scheduled events",
		analyzed, skipped, failed, eventsCreated)
	return nil
}

// analyzeMessage runs the model on one claimed message and persists one
// analysis record per extracted candidate. It returns the number of
// scheduled events created.
func (uc *ExtractionUseCase) analyzeMessage(ctx context.Context, message *models.SlackMessage) (int, error) {
	raw, err := uc.llmClient.Complete(ctx, extractionSystemPrompt, message.TextContent)
	if err != nil {
		log.Printf("⚠️ Model call failed for message %s: %v", message.ID, err)
		if _, createErr := uc.eventAnalysesService.CreateEventAnalysis(
			ctx,
			message.ID,
			models.JSONMap{"error": err.Error()},
			decimal.Zero,
			models.EventAnalysisStatusFailed,
			models.DerivedEventFields{},
		); createErr != nil {
			return 0, fmt.Errorf("failed to record failed analysis: %w", createErr)
		}
		return 0, nil
	}

	eventsCreated := 0
	for _, candidate := range ParseCandidates(raw) {
		created, err := uc.processCandidate(ctx, message.ID, candidate)
		if err != nil {
			return eventsCreated, err
		}
		if created {
			eventsCreated++
		}
	}
	return eventsCreated, nil
}

// processCandidate persists the audit record for one candidate and, when the
// candidate carries a valid schedule, the scheduled event it describes. Both
// writes and the success/failure promotion share one transaction.
func (uc *ExtractionUseCase) processCandidate(
	ctx context.Context,
	slackMessageID string,
	candidate models.JSONMap,
) (bool, error) {
	if _, ok := CandidateError(candidate); ok {
		_, err := uc.eventAnalysesService.CreateEventAnalysis(
			ctx, slackMessageID, candidate, decimal.Zero, models.EventAnalysisStatusFailed, models.DerivedEventFields{})
		if err != nil {
			return false, fmt.Errorf("failed to record error candidate: %w", err)
		}
		return false, nil
	}

	mapped := MapCandidateFields(candidate)
	created := false
	err := uc.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		analysis, err := uc.eventAnalysesService.CreateEventAnalysis(
			ctx, slackMessageID, candidate, extractionConfidence,
			models.EventAnalysisStatusPending, mapped.DerivedFields())
		if err != nil {
			return fmt.Errorf("failed to create event analysis: %w", err)
		}

		// Candidates without a start datetime are recorded but do not
		// become scheduled events.
		if !mapped.HasStart() {
			_, err := uc.eventAnalysesService.MarkEventAnalysisSuccess(ctx, analysis.ID, nil)
			return err
		}

		event, buildErr := BuildScheduledEvent(slackMessageID, mapped).Get()
		if buildErr != nil {
			_, err := uc.eventAnalysesService.MarkEventAnalysisFailed(ctx, analysis.ID, buildErr.Error())
			return err
		}

		persisted, err := uc.scheduledEventsService.CreateScheduledEvent(ctx, event)
		if err != nil {
			return fmt.Errorf("failed to create scheduled event: %w", err)
		}
		if _, err := uc.eventAnalysesService.MarkEventAnalysisSuccess(ctx, analysis.ID, &persisted.ID); err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return created, nil
}
