package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docanalytics/internal/model"
	"docanalytics/internal/repository"
)

type MockSearchLogRepository struct {
	mock.Mock
}

var _ repository.SearchLogRepository = (*MockSearchLogRepository)(nil)

func (m *MockSearchLogRepository) Append(ctx context.Context, entry *model.SearchLog) (*model.SearchLog, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SearchLog), args.Error(1)
}

func (m *MockSearchLogRepository) Recent(ctx context.Context, limit int) ([]model.SearchLog, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SearchLog), args.Error(1)
}

func (m *MockSearchLogRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockSearchLogRepository) AverageSearchTime(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}
