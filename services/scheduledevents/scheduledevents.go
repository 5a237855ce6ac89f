package scheduledevents

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

type ScheduledEventsService struct {
	scheduledEventsRepo *db.PostgresScheduledEventsRepository
}

func NewScheduledEventsService(repo *db.PostgresScheduledEventsRepository) *ScheduledEventsService {
	return &ScheduledEventsService{
		scheduledEventsRepo: repo,
	}
}

// CreateScheduledEvent persists a new event. The caller provides a mapped
// candidate; the service assigns identity and defaults and enforces the
// invariant that persisted events always carry start, type and title.
func (s *ScheduledEventsService) CreateScheduledEvent(
	ctx context.Context,
	event *models.ScheduledEvent,
) (*models.ScheduledEvent, error) {
	log.Printf("📋 Starting to create scheduled event for slack message: %s", event.SlackMessageID)

	if !core.IsValidULID(event.SlackMessageID) {
		return nil, fmt.Errorf("slack_message_id must be a valid ULID")
	}
	if event.StartDatetime.IsZero() {
		return nil, fmt.Errorf("start_datetime cannot be zero")
	}
	if event.EventType == "" {
		return nil, fmt.Errorf("event_type cannot be empty")
	}
	if event.Title == "" {
		return nil, fmt.Errorf("title cannot be empty")
	}

	event.ID = core.NewID("evt")
	if event.Status == "" {
		event.Status = models.ScheduledEventStatusPending
	}
	event.Priority = models.NormalizePriority(string(event.Priority))
	if event.Participants == nil {
		event.Participants = models.StringList{}
	}
	event.IsNotificationEnabled = true

	if err := s.scheduledEventsRepo.CreateScheduledEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create scheduled event: %w", err)
	}

	log.Printf("📋 Completed successfully - created scheduled event with ID: %s", event.ID)
	return event, nil
}

func (s *ScheduledEventsService) GetScheduledEventByID(
	ctx context.Context,
	id string,
) (mo.Option[*models.ScheduledEvent], error) {
	log.Printf("📋 Starting to get scheduled event by ID: %s", id)
	if !core.IsValidULID(id) {
		return mo.None[*models.ScheduledEvent](), fmt.Errorf("scheduled event ID must be a valid ULID")
	}

	maybeEvent, err := s.scheduledEventsRepo.GetScheduledEventByID(ctx, id)
	if err != nil {
		return mo.None[*models.ScheduledEvent](), fmt.Errorf("failed to get scheduled event: %w", err)
	}
	if !maybeEvent.IsPresent() {
		log.Printf("📋 Completed successfully - scheduled event not found")
		return mo.None[*models.ScheduledEvent](), nil
	}
	event := maybeEvent.MustGet()

	log.Printf("📋 Completed successfully - retrieved scheduled event with ID: %s", event.ID)
	return mo.Some(event), nil
}

// GetNotifiableEvents returns the events due within the window that may be
// notified at the given time under the cooldown.
func (s *ScheduledEventsService) GetNotifiableEvents(
	ctx context.Context,
	windowStart, windowEnd time.Time,
	cooldown time.Duration,
	now time.Time,
) ([]*models.ScheduledEvent, error) {
	log.Printf("📋 Starting to get notifiable events in window [%s, %s)",
		windowStart.Format(time.RFC3339), windowEnd.Format(time.RFC3339))

	if !windowEnd.After(windowStart) {
		return nil, fmt.Errorf("window end must be after window start")
	}
	if cooldown < 0 {
		return nil, fmt.Errorf("cooldown cannot be negative")
	}

	events, err := s.scheduledEventsRepo.GetNotifiableEvents(ctx, windowStart, windowEnd, now.Add(-cooldown))
	if err != nil {
		return nil, fmt.Errorf("failed to get notifiable events: %w", err)
	}

	log.Printf("📋 Completed successfully - found %d notifiable events", len(events))
	return events, nil
}

// RecordNotification stamps the notification bookkeeping for one event. The
// can-notify predicate is re-checked in the update itself, so an event whose
// state changed since selection is left untouched (returns false).
func (s *ScheduledEventsService) RecordNotification(
	ctx context.Context,
	id, recipient string,
	now time.Time,
	cooldown time.Duration,
) (bool, error) {
	log.Printf("📋 Starting to record notification for event: %s, recipient: %s", id, recipient)
	if !core.IsValidULID(id) {
		return false, fmt.Errorf("scheduled event ID must be a valid ULID")
	}
	if recipient == "" {
		return false, fmt.Errorf("recipient cannot be empty")
	}

	recorded, err := s.scheduledEventsRepo.RecordNotification(ctx, id, recipient, now, now.Add(-cooldown))
	if err != nil {
		return false, fmt.Errorf("failed to record notification: %w", err)
	}

	log.Printf("📋 Completed successfully - notification record result for %s: %t", id, recorded)
	return recorded, nil
}
