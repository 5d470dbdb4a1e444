package service

import (
	"context"
	"fmt"
	"math"

	"docanalytics/internal/model"
	"docanalytics/internal/repository"
)

const recentSearchesLimit = 10

// Statistics summarizes stored documents and the search log.
type Statistics struct {
	TotalDocuments             int                    `json:"total_documents"`
	TotalSizeBytes             int64                  `json:"total_size_bytes"`
	TotalSizeMB                float64                `json:"total_size_mb"`
	ClassificationDistribution map[model.Category]int `json:"classification_distribution"`
	RecentSearches             []model.SearchLog      `json:"recent_searches"`
	AverageSearchTime          float64                `json:"average_search_time"`
	TotalSearches              int                    `json:"total_searches"`
}

type StatisticsService interface {
	Get(ctx context.Context) (*Statistics, error)
}

type statisticsService struct {
	docs repository.DocumentRepository
	logs repository.SearchLogRepository
}

func NewStatisticsService(docs repository.DocumentRepository, logs repository.SearchLogRepository) StatisticsService {
	return &statisticsService{docs: docs, logs: logs}
}

func (s *statisticsService) Get(ctx context.Context) (*Statistics, error) {
	total, err := s.docs.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count documents: %w", err)
	}
	size, err := s.docs.TotalSize(ctx)
	if err != nil {
		return nil, fmt.Errorf("total size: %w", err)
	}
	dist, err := s.docs.CategoryCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("category counts: %w", err)
	}

	searches, err := s.logs.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count searches: %w", err)
	}
	recent := []model.SearchLog{}
	avg := 0.0
	if searches > 0 {
		if recent, err = s.logs.Recent(ctx, recentSearchesLimit); err != nil {
			return nil, fmt.Errorf("recent searches: %w", err)
		}
		if avg, err = s.logs.AverageSearchTime(ctx); err != nil {
			return nil, fmt.Errorf("average search time: %w", err)
		}
	}

	return &Statistics{
		TotalDocuments:             total,
		TotalSizeBytes:             size,
		TotalSizeMB:                round(float64(size)/(1024*1024), 2),
		ClassificationDistribution: dist,
		RecentSearches:             recent,
		AverageSearchTime:          round(avg, 4),
		TotalSearches:              searches,
	}, nil
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
