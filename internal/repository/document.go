package repository

import (
	"context"

	"docanalytics/internal/model"
)

// DocumentRepository defines data access for documents using SQL queries only.
// No business logic here, strictly persistence operations.
type DocumentRepository interface {
	// Create inserts a new document record and returns the stored row.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document by its ID, or sql.ErrNoRows.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// List returns a sorted, paginated list of documents and the total row count.
	List(ctx context.Context, q ListQuery) (*PageResult[model.Document], error)

	// ListAll returns every document, newest upload first.
	ListAll(ctx context.Context) ([]model.Document, error)

	// UpdateContent overwrites the extracted fields and classification of an existing document.
	UpdateContent(ctx context.Context, doc *model.Document) error

	// UpdateClassification sets the category and confidence of a document.
	UpdateClassification(ctx context.Context, id string, category model.Category, confidence float64) error

	// Delete removes a document by ID. It returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id string) error

	// Count returns the number of stored documents.
	Count(ctx context.Context) (int, error)

	// TotalSize returns the sum of file sizes in bytes.
	TotalSize(ctx context.Context) (int64, error)

	// CategoryCounts returns the number of documents per category, ignoring unclassified ones.
	CategoryCounts(ctx context.Context) (map[model.Category]int, error)
}
