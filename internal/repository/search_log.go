package repository

import (
	"context"

	"docanalytics/internal/model"
)

// SearchLogRepository persists the append-only log of executed searches.
type SearchLogRepository interface {
	// Append stores a new entry and returns it with its generated ID.
	Append(ctx context.Context, entry *model.SearchLog) (*model.SearchLog, error)

	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]model.SearchLog, error)

	Count(ctx context.Context) (int, error)

	// AverageSearchTime returns the mean search time in seconds, or 0 when the log is empty.
	AverageSearchTime(ctx context.Context) (float64, error)
}
