package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"docanalytics/internal/extract"
	"docanalytics/internal/model"
	"docanalytics/internal/repository"
	"docanalytics/internal/search"
	"docanalytics/internal/storage"
)

var (
	ErrIDRequired        = errors.New("id is required")
	ErrNotFound          = errors.New("document not found")
	ErrReaderNil         = errors.New("reader is nil")
	ErrUnsupportedFormat = errors.New("file type not allowed, only PDF and DOCX files are supported")
)

const objectPrefix = "documents"

var contentTypes = map[extract.Format]string{
	extract.FormatPDF:  "application/pdf",
	extract.FormatDOCX: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// Classifier assigns a category and a confidence in [0,1] to document text.
type Classifier interface {
	Classify(text string) (model.Category, float64)
}

// Extractor reads text and metadata from a file on local disk.
type Extractor interface {
	Extract(path string, format extract.Format) extract.Result
}

// ListParams selects, orders and pages documents. Query, when not blank, keeps only
// documents the search engine matches.
type ListParams struct {
	SortBy    string
	SortOrder string
	Limit     int
	Offset    int
	Query     string
}

// DocumentListResult is the service-level DTO for listed documents.
type DocumentListResult struct {
	Documents  []model.Document `json:"documents"`
	TotalCount int              `json:"total_count"`
	SortTime   float64          `json:"sort_time"`
}

// ReclassifyResult reports a bulk classification run.
type ReclassifyResult struct {
	Message            string  `json:"message"`
	ClassifiedCount    int     `json:"classified_count"`
	ClassificationTime float64 `json:"classification_time"`
}

// ReprocessResult reports a bulk re-extraction run. Errors holds one message per failed document.
type ReprocessResult struct {
	Message        string   `json:"message"`
	ProcessedCount int      `json:"processed_count"`
	TotalDocuments int      `json:"total_documents"`
	Errors         []string `json:"errors"`
}

// DocumentService defines the use cases for handling documents.
type DocumentService interface {
	// Upload extracts and classifies the file, stores it in object storage and saves its record.
	// The stored object is removed again if the record cannot be saved.
	Upload(ctx context.Context, r io.Reader, originalFilename string, size int64) (*model.Document, error)

	// List returns documents sorted and paged as requested.
	List(ctx context.Context, p ListParams) (*DocumentListResult, error)

	// Get returns a single document by its ID.
	Get(ctx context.Context, id string) (*model.Document, error)

	// Download opens the stored file of a document. The caller closes the reader.
	Download(ctx context.Context, id string) (io.ReadCloser, *model.Document, error)

	// Delete removes a document by ID from both storage and repository.
	Delete(ctx context.Context, id string) error

	// Reclassify runs the classifier again over every document that has text.
	Reclassify(ctx context.Context) (*ReclassifyResult, error)

	// Reprocess downloads every stored file, extracts it again and refreshes the record.
	Reprocess(ctx context.Context) (*ReprocessResult, error)
}

// DocumentOption configures the document service.
type DocumentOption func(*documentService)

// WithLogger sets the service logger.
func WithLogger(l *zap.Logger) DocumentOption {
	return func(s *documentService) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics records uploads on m.
func WithMetrics(m *Metrics) DocumentOption {
	return func(s *documentService) { s.metrics = m }
}

// WithSpoolDir sets where uploads are staged for extraction. Defaults to os.TempDir().
func WithSpoolDir(dir string) DocumentOption {
	return func(s *documentService) { s.spoolDir = dir }
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) DocumentOption {
	return func(s *documentService) { s.now = now }
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	store      storage.Storage
	repo       repository.DocumentRepository
	extractor  Extractor
	classifier Classifier
	metrics    *Metrics
	logger     *zap.Logger
	spoolDir   string
	now        func() time.Time
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(store storage.Storage, repo repository.DocumentRepository, ex Extractor, cl Classifier, opts ...DocumentOption) DocumentService {
	s := &documentService{
		store:      store,
		repo:       repo,
		extractor:  ex,
		classifier: cl,
		logger:     zap.NewNop(),
		spoolDir:   os.TempDir(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *documentService) Upload(ctx context.Context, r io.Reader, originalFilename string, size int64) (*model.Document, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	filename := sanitizeFilename(originalFilename)
	format, err := extract.FormatFromFilename(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, originalFilename)
	}

	// The file is staged under its own name so the filename title fallback sees it.
	dir, err := os.MkdirTemp(s.spoolDir, "upload-*")
	if err != nil {
		return nil, fmt.Errorf("create spool dir: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, filename)
	written, err := spool(path, r)
	if err != nil {
		return nil, err
	}

	res := s.extractor.Extract(path, format)
	category, confidence := s.classifier.Classify(res.Text)

	id := uuid.New().String()
	key := objectKey(id, filepath.Ext(filename))

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reopen spooled file: %w", err)
	}
	defer f.Close()

	objInfo, err := s.store.Put(ctx, key, f, storage.PutObjectOptions{
		Size:        written,
		ContentType: contentTypes[format],
		Metadata: map[string]string{
			"original-filename": filename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	doc := &model.Document{
		ID:                       id,
		Title:                    res.Title,
		Filename:                 filename,
		FilePath:                 objInfo.Key,
		FileSize:                 written,
		UploadDate:               s.now().UTC(),
		ContentText:              res.Text,
		Classification:           &category,
		ClassificationConfidence: &confidence,
		Author:                   res.Author,
		CreationDate:             res.CreatedAt,
		LastModified:             res.ModifiedAt,
		PageCount:                res.PageCount,
	}
	stored, err := s.repo.Create(ctx, doc)
	if err != nil {
		// Rollback: delete the object from storage
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}

	s.metrics.uploaded(category)
	s.logger.Info("document uploaded",
		zap.String("document_id", stored.ID),
		zap.String("filename", filename),
		zap.Int64("file_size", written),
		zap.String("classification", string(category)),
		zap.Float64("confidence", confidence),
		zap.Int("content_length", len(res.Text)),
	)
	if size >= 0 && size != written {
		s.logger.Warn("upload size mismatch", zap.Int64("declared", size), zap.Int64("written", written))
	}
	return stored, nil
}

func objectKey(id, ext string) string {
	return objectPrefix + "/" + id + strings.ToLower(ext)
}

func spool(path string, r io.Reader) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create spool file: %w", err)
	}
	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return 0, fmt.Errorf("spool upload: %w", err)
	}
	return n, nil
}

// List returns documents in the requested order. With a blank query the store pages
// directly; otherwise every row is filtered through the search engine and paged in memory.
func (s *documentService) List(ctx context.Context, p ListParams) (*DocumentListResult, error) {
	start := time.Now()
	limit := max(p.Limit, 0)
	offset := max(p.Offset, 0)
	lq := repository.ListQuery{SortBy: p.SortBy, Order: p.SortOrder, Limit: limit, Offset: offset}

	if strings.TrimSpace(p.Query) == "" {
		res, err := s.repo.List(ctx, lq)
		if err != nil {
			return nil, err
		}
		return &DocumentListResult{
			Documents:  res.Items,
			TotalCount: res.Total,
			SortTime:   time.Since(start).Seconds(),
		}, nil
	}

	lq.Limit, lq.Offset = 0, 0
	res, err := s.repo.List(ctx, lq)
	if err != nil {
		return nil, err
	}
	matches := search.Search(res.Items, p.Query)
	docs := make([]model.Document, 0, len(matches))
	for _, m := range matches {
		docs = append(docs, m.Document)
	}
	total := len(docs)

	docs = docs[min(offset, total):]
	if limit > 0 && len(docs) > limit {
		docs = docs[:limit]
	}
	return &DocumentListResult{
		Documents:  docs,
		TotalCount: total,
		SortTime:   time.Since(start).Seconds(),
	}, nil
}

// Get returns a document by ID.
func (s *documentService) Get(ctx context.Context, id string) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

func (s *documentService) Download(ctx context.Context, id string) (io.ReadCloser, *model.Document, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	rc, _, err := s.store.Get(ctx, doc.FilePath)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, nil, fmt.Errorf("%w: stored file missing", ErrNotFound)
		}
		return nil, nil, fmt.Errorf("get from storage: %w", err)
	}
	return rc, doc, nil
}

// Delete removes a document from storage, then deletes its record.
func (s *documentService) Delete(ctx context.Context, id string) error {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	// Storage first; if this fails the row is kept so the object is not orphaned.
	if err := s.store.Delete(ctx, doc.FilePath); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	s.logger.Info("document deleted", zap.String("document_id", id))
	return nil
}

func (s *documentService) Reclassify(ctx context.Context) (*ReclassifyResult, error) {
	start := time.Now()
	docs, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	count := 0
	for _, d := range docs {
		if d.ContentText == "" {
			continue
		}
		category, confidence := s.classifier.Classify(d.ContentText)
		if err := s.repo.UpdateClassification(ctx, d.ID, category, confidence); err != nil {
			return nil, fmt.Errorf("update classification of %s: %w", d.ID, err)
		}
		count++
	}

	elapsed := time.Since(start).Seconds()
	s.logger.Info("documents reclassified", zap.Int("classified_count", count), zap.Float64("classification_time", elapsed))
	return &ReclassifyResult{
		Message:            fmt.Sprintf("Successfully classified %d documents", count),
		ClassifiedCount:    count,
		ClassificationTime: elapsed,
	}, nil
}

func (s *documentService) Reprocess(ctx context.Context) (*ReprocessResult, error) {
	docs, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	out := &ReprocessResult{TotalDocuments: len(docs), Errors: []string{}}
	for i := range docs {
		d := &docs[i]
		format, err := extract.FormatFromFilename(d.Filename)
		if err != nil {
			continue
		}
		if err := s.reprocessOne(ctx, d, format); err != nil {
			s.logger.Warn("reprocess failed", zap.String("document_id", d.ID), zap.Error(err))
			out.Errors = append(out.Errors, err.Error())
			continue
		}
		out.ProcessedCount++
	}

	out.Message = fmt.Sprintf("Successfully reprocessed %d documents", out.ProcessedCount)
	s.logger.Info("documents reprocessed",
		zap.Int("processed_count", out.ProcessedCount),
		zap.Int("total_documents", out.TotalDocuments),
		zap.Int("errors", len(out.Errors)),
	)
	return out, nil
}

func (s *documentService) reprocessOne(ctx context.Context, d *model.Document, format extract.Format) error {
	rc, _, err := s.store.Get(ctx, d.FilePath)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return fmt.Errorf("file not found: %s", d.FilePath)
		}
		return fmt.Errorf("error processing %s: %v", d.Filename, err)
	}
	defer rc.Close()

	dir, err := os.MkdirTemp(s.spoolDir, "reprocess-*")
	if err != nil {
		return fmt.Errorf("error processing %s: %v", d.Filename, err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, d.Filename)
	if _, err := spool(path, rc); err != nil {
		return fmt.Errorf("error processing %s: %v", d.Filename, err)
	}

	res := s.extractor.Extract(path, format)
	d.ContentText = res.Text
	d.Title = res.Title
	d.Author = res.Author
	d.CreationDate = res.CreatedAt
	d.LastModified = res.ModifiedAt
	d.PageCount = res.PageCount
	if res.Text != "" {
		category, confidence := s.classifier.Classify(res.Text)
		d.Classification = &category
		d.ClassificationConfidence = &confidence
	}

	if err := s.repo.UpdateContent(ctx, d); err != nil {
		return fmt.Errorf("error processing %s: %v", d.Filename, err)
	}
	return nil
}
