package postgres

import (
	"context"
	"database/sql"

	"docanalytics/internal/model"
	"docanalytics/internal/repository"
)

// SearchLogPostgres stores search log entries in the search_logs table.
type SearchLogPostgres struct {
	db *sql.DB
}

func NewSearchLogPostgres(db *sql.DB) *SearchLogPostgres {
	return &SearchLogPostgres{db: db}
}

var _ repository.SearchLogRepository = (*SearchLogPostgres)(nil)

// Append inserts an entry and returns it with the generated ID.
func (r *SearchLogPostgres) Append(ctx context.Context, entry *model.SearchLog) (*model.SearchLog, error) {
	const q = `
		INSERT INTO search_logs (query, results_count, search_time, timestamp)
		VALUES ($1, $2, $3, $4)
		RETURNING id, query, results_count, search_time, timestamp
	`
	var out model.SearchLog
	if err := r.db.QueryRowContext(ctx, q,
		entry.Query,
		entry.ResultsCount,
		entry.SearchTime,
		entry.Timestamp,
	).Scan(
		&out.ID,
		&out.Query,
		&out.ResultsCount,
		&out.SearchTime,
		&out.Timestamp,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

// Recent returns up to limit entries ordered newest first.
func (r *SearchLogPostgres) Recent(ctx context.Context, limit int) ([]model.SearchLog, error) {
	const q = `
		SELECT id, query, results_count, search_time, timestamp
		FROM search_logs
		ORDER BY timestamp DESC, id DESC
		LIMIT $1
	`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.SearchLog, 0)
	for rows.Next() {
		var l model.SearchLog
		if err := rows.Scan(&l.ID, &l.Query, &l.ResultsCount, &l.SearchTime, &l.Timestamp); err != nil {
			return nil, err
		}
		items = append(items, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *SearchLogPostgres) Count(ctx context.Context) (int, error) {
	const q = `SELECT COUNT(*) FROM search_logs`
	var n int
	if err := r.db.QueryRowContext(ctx, q).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *SearchLogPostgres) AverageSearchTime(ctx context.Context) (float64, error) {
	const q = `SELECT COALESCE(AVG(search_time), 0) FROM search_logs`
	var avg float64
	if err := r.db.QueryRowContext(ctx, q).Scan(&avg); err != nil {
		return 0, err
	}
	return avg, nil
}
