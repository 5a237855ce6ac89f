package scheduledevents

import (
	"context"
	"time"

	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"

	"schedbot/models"
)

type MockScheduledEventsService struct {
	mock.Mock
}

func (m *MockScheduledEventsService) CreateScheduledEvent(
	ctx context.Context,
	event *models.ScheduledEvent,
) (*models.ScheduledEvent, error) {
	args := m.Called(ctx, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ScheduledEvent), args.Error(1)
}

func (m *MockScheduledEventsService) GetScheduledEventByID(
	ctx context.Context,
	id string,
) (mo.Option[*models.ScheduledEvent], error) {
	args := m.Called(ctx, id)
	return args.Get(0).(mo.Option[*models.ScheduledEvent]), args.Error(1)
}

func (m *MockScheduledEventsService) GetNotifiableEvents(
	ctx context.Context,
	windowStart, windowEnd time.Time,
	cooldown time.Duration,
	now time.Time,
) ([]*models.ScheduledEvent, error) {
	args := m.Called(ctx, windowStart, windowEnd, cooldown, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ScheduledEvent), args.Error(1)
}

func (m *MockScheduledEventsService) RecordNotification(
	ctx context.Context,
	id, recipient string,
	now time.Time,
	cooldown time.Duration,
) (bool, error) {
	args := m.Called(ctx, id, recipient, now, cooldown)
	return args.Bool(0), args.Error(1)
}
