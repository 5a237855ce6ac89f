package eventanalyses

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"schedbot/models"
)

type MockEventAnalysesService struct {
	mock.Mock
}

func (m *MockEventAnalysesService) CreateEventAnalysis(
	ctx context.Context,
	slackMessageID string,
	extractedData models.JSONMap,
	confidenceScore decimal.Decimal,
	status models.EventAnalysisStatus,
	derived models.DerivedEventFields,
) (*models.EventAnalysis, error) {
	args := m.Called(ctx, slackMessageID, extractedData, confidenceScore, status, derived)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EventAnalysis), args.Error(1)
}

func (m *MockEventAnalysesService) GetEventAnalysesBySlackMessageID(
	ctx context.Context,
	slackMessageID string,
) ([]*models.EventAnalysis, error) {
	args := m.Called(ctx, slackMessageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.EventAnalysis), args.Error(1)
}

func (m *MockEventAnalysesService) MarkEventAnalysisSuccess(
	ctx context.Context,
	id string,
	scheduledEventID *string,
) (*models.EventAnalysis, error) {
	args := m.Called(ctx, id, scheduledEventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EventAnalysis), args.Error(1)
}

func (m *MockEventAnalysesService) MarkEventAnalysisFailed(
	ctx context.Context,
	id, analysisError string,
) (*models.EventAnalysis, error) {
	args := m.Called(ctx, id, analysisError)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EventAnalysis), args.Error(1)
}
