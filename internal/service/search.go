package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"docanalytics/internal/model"
	"docanalytics/internal/repository"
	"docanalytics/internal/search"
)

var ErrKeywordsRequired = errors.New("keywords are required")

const tracerName = "docanalytics/internal/service"

// SearchResult is the response of a keyword search.
type SearchResult struct {
	Documents        []search.Match `json:"documents"`
	SearchTime       float64        `json:"search_time"`
	ResultsCount     int            `json:"results_count"`
	TotalDocuments   int            `json:"total_documents"`
	Query            string         `json:"query"`
	KeywordsSearched []string       `json:"keywords_searched"`
}

// SearchService runs keyword searches over all stored documents and logs each one.
type SearchService interface {
	Search(ctx context.Context, keywords string) (*SearchResult, error)
}

type searchService struct {
	docs    repository.DocumentRepository
	logs    repository.SearchLogRepository
	metrics *Metrics
	logger  *zap.Logger
	now     func() time.Time
}

// NewSearchService constructs a SearchService. metrics and logger may be nil.
func NewSearchService(docs repository.DocumentRepository, logs repository.SearchLogRepository, metrics *Metrics, logger *zap.Logger) SearchService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &searchService{docs: docs, logs: logs, metrics: metrics, logger: logger, now: time.Now}
}

func (s *searchService) Search(ctx context.Context, keywords string) (*SearchResult, error) {
	query := strings.TrimSpace(keywords)
	if query == "" {
		return nil, ErrKeywordsRequired
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "SearchService.Search",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String("search.query", query)),
	)
	defer span.End()

	start := s.now()
	all, err := s.docs.ListAll(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load documents")
		return nil, fmt.Errorf("load documents: %w", err)
	}
	matches := search.Search(all, query)
	elapsed := s.now().Sub(start).Seconds()

	span.SetAttributes(
		attribute.Int("search.total_documents", len(all)),
		attribute.Int("search.results_count", len(matches)),
	)
	s.metrics.searched(elapsed)

	if _, err := s.logs.Append(ctx, &model.SearchLog{
		Query:        query,
		ResultsCount: len(matches),
		SearchTime:   elapsed,
		Timestamp:    s.now().UTC(),
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "append search log")
		return nil, fmt.Errorf("append search log: %w", err)
	}

	s.logger.Info("search executed",
		zap.String("query", query),
		zap.Int("results_count", len(matches)),
		zap.Float64("search_time", elapsed),
	)
	return &SearchResult{
		Documents:        matches,
		SearchTime:       elapsed,
		ResultsCount:     len(matches),
		TotalDocuments:   len(all),
		Query:            query,
		KeywordsSearched: strings.Fields(query),
	}, nil
}
