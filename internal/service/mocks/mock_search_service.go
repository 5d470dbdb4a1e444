package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docanalytics/internal/service"
)

type MockSearchService struct {
	mock.Mock
}

var _ service.SearchService = (*MockSearchService)(nil)

func (m *MockSearchService) Search(ctx context.Context, keywords string) (*service.SearchResult, error) {
	args := m.Called(ctx, keywords)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SearchResult), args.Error(1)
}

type MockStatisticsService struct {
	mock.Mock
}

var _ service.StatisticsService = (*MockStatisticsService)(nil)

func (m *MockStatisticsService) Get(ctx context.Context) (*service.Statistics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Statistics), args.Error(1)
}
