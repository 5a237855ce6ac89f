package slackmessages

import (
	"context"
	"time"

	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"

	"schedbot/models"
)

type MockSlackMessagesService struct {
	mock.Mock
}

func (m *MockSlackMessagesService) UpsertSlackMessage(
	ctx context.Context,
	slackTS, channelID, userID, textContent string,
	postedAt time.Time,
) (*models.SlackMessage, error) {
	args := m.Called(ctx, slackTS, channelID, userID, textContent, postedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SlackMessage), args.Error(1)
}

func (m *MockSlackMessagesService) GetSlackMessageByID(
	ctx context.Context,
	id string,
) (mo.Option[*models.SlackMessage], error) {
	args := m.Called(ctx, id)
	return args.Get(0).(mo.Option[*models.SlackMessage]), args.Error(1)
}

func (m *MockSlackMessagesService) GetUnanalyzedSlackMessages(
	ctx context.Context,
) ([]*models.SlackMessage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.SlackMessage), args.Error(1)
}

func (m *MockSlackMessagesService) ClaimSlackMessageForAnalysis(
	ctx context.Context,
	id string,
) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
