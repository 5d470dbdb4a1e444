package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"docanalytics/internal/model"
	repoMocks "docanalytics/internal/repository/mocks"
	"docanalytics/internal/search"
)

// steppingClock advances by step on every call.
func steppingClock(start time.Time, step time.Duration) func() time.Time {
	t := start
	return func() time.Time {
		cur := t
		t = t.Add(step)
		return cur
	}
}

func TestSearchService_Search(t *testing.T) {
	ctx := context.Background()
	docs := []model.Document{
		{ID: "1", Title: "Lease", ContentText: "rental contract\nterms apply"},
		{ID: "2", Title: "Recipe", ContentText: "flour and sugar"},
	}

	tests := []struct {
		name       string
		keywords   string
		setupMocks func(mDocs *repoMocks.MockDocumentRepository, mLogs *repoMocks.MockSearchLogRepository)
		wantErr    error
		wantErrMsg string
		check      func(t *testing.T, res *SearchResult, mLogs *repoMocks.MockSearchLogRepository)
	}{
		{
			name:     "matches and logs",
			keywords: "  contract sugar ",
			setupMocks: func(mDocs *repoMocks.MockDocumentRepository, mLogs *repoMocks.MockSearchLogRepository) {
				mDocs.On("ListAll", mock.Anything).Return(docs, nil)
				mLogs.On("Append", mock.Anything, mock.MatchedBy(func(l *model.SearchLog) bool {
					return l.Query == "contract sugar" && l.ResultsCount == 2
				})).Return(&model.SearchLog{ID: "1"}, nil)
			},
			check: func(t *testing.T, res *SearchResult, mLogs *repoMocks.MockSearchLogRepository) {
				assert.Equal(t, "contract sugar", res.Query)
				assert.Equal(t, []string{"contract", "sugar"}, res.KeywordsSearched)
				assert.Equal(t, 2, res.ResultsCount)
				assert.Equal(t, 2, res.TotalDocuments)
				require.Len(t, res.Documents, 2)
				assert.Equal(t, search.MatchIndividualWords, res.Documents[0].MatchType)
				assert.Equal(t, []string{"contract"}, res.Documents[0].MatchedTerms)
				assert.InDelta(t, 0.25, res.SearchTime, 1e-9)

				entry := mLogs.Calls[0].Arguments.Get(1).(*model.SearchLog)
				assert.InDelta(t, 0.25, entry.SearchTime, 1e-9)
				assert.Equal(t, time.UTC, entry.Timestamp.Location())
			},
		},
		{
			name:     "no results still logged",
			keywords: "zebra",
			setupMocks: func(mDocs *repoMocks.MockDocumentRepository, mLogs *repoMocks.MockSearchLogRepository) {
				mDocs.On("ListAll", mock.Anything).Return(docs, nil)
				mLogs.On("Append", mock.Anything, mock.MatchedBy(func(l *model.SearchLog) bool {
					return l.ResultsCount == 0
				})).Return(&model.SearchLog{}, nil)
			},
			check: func(t *testing.T, res *SearchResult, _ *repoMocks.MockSearchLogRepository) {
				assert.Empty(t, res.Documents)
				assert.Equal(t, 0, res.ResultsCount)
			},
		},
		{
			name:       "blank keywords",
			keywords:   "   ",
			setupMocks: func(*repoMocks.MockDocumentRepository, *repoMocks.MockSearchLogRepository) {},
			wantErr:    ErrKeywordsRequired,
		},
		{
			name:     "load failure",
			keywords: "x",
			setupMocks: func(mDocs *repoMocks.MockDocumentRepository, _ *repoMocks.MockSearchLogRepository) {
				mDocs.On("ListAll", mock.Anything).Return(nil, errors.New("db down"))
			},
			wantErrMsg: "load documents: db down",
		},
		{
			name:     "log failure",
			keywords: "contract",
			setupMocks: func(mDocs *repoMocks.MockDocumentRepository, mLogs *repoMocks.MockSearchLogRepository) {
				mDocs.On("ListAll", mock.Anything).Return(docs, nil)
				mLogs.On("Append", mock.Anything, mock.Anything).Return(nil, errors.New("disk full"))
			},
			wantErrMsg: "append search log: disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mDocs := new(repoMocks.MockDocumentRepository)
			mLogs := new(repoMocks.MockSearchLogRepository)
			tt.setupMocks(mDocs, mLogs)

			svc := NewSearchService(mDocs, mLogs, nil, nil).(*searchService)
			svc.now = steppingClock(fixedNow, 250*time.Millisecond)

			res, err := svc.Search(ctx, tt.keywords)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, res)
			case tt.wantErrMsg != "":
				assert.EqualError(t, err, tt.wantErrMsg)
				assert.Nil(t, res)
			default:
				require.NoError(t, err)
				tt.check(t, res, mLogs)
			}
			mDocs.AssertExpectations(t)
			mLogs.AssertExpectations(t)
		})
	}
}

func TestSearchService_MetricsAndLogs(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := NewMetrics(reg)
	require.NoError(t, err)
	core, logs := observer.New(zap.InfoLevel)

	mDocs := new(repoMocks.MockDocumentRepository)
	mLogs := new(repoMocks.MockSearchLogRepository)
	mDocs.On("ListAll", mock.Anything).Return([]model.Document{}, nil)
	mLogs.On("Append", mock.Anything, mock.Anything).Return(&model.SearchLog{}, nil)

	svc := NewSearchService(mDocs, mLogs, metrics, zap.New(core))
	_, err = svc.Search(context.Background(), "anything")
	require.NoError(t, err)

	assert.Equal(t, 1, testutil.CollectAndCount(metrics.searchDuration))
	entries := logs.FilterMessage("search executed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "anything", entries[0].ContextMap()["query"])
}
