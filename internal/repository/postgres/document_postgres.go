package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"docanalytics/internal/model"
	"docanalytics/internal/repository"
)

const documentColumns = `id, title, filename, file_path, file_size, upload_date, content_text,
		classification, classification_confidence, author, creation_date, last_modified, page_count`

// ORDER BY is built from this whitelist only; user input never reaches the SQL text.
var sortColumns = map[string]string{
	repository.SortByTitle:      "title",
	repository.SortByUploadDate: "upload_date",
	repository.SortByFileSize:   "file_size",
}

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(s rowScanner) (model.Document, error) {
	var (
		d              model.Document
		classification sql.NullString
	)
	if err := s.Scan(
		&d.ID,
		&d.Title,
		&d.Filename,
		&d.FilePath,
		&d.FileSize,
		&d.UploadDate,
		&d.ContentText,
		&classification,
		&d.ClassificationConfidence,
		&d.Author,
		&d.CreationDate,
		&d.LastModified,
		&d.PageCount,
	); err != nil {
		return model.Document{}, err
	}
	if classification.Valid {
		c := model.Category(classification.String)
		d.Classification = &c
	}
	return d, nil
}

func categoryArg(c *model.Category) any {
	if c == nil {
		return nil
	}
	return string(*c)
}

// Create inserts a new document row and returns the stored record.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	q := `
		INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING ` + documentColumns
	row := r.db.QueryRowContext(ctx, q,
		doc.ID,
		doc.Title,
		doc.Filename,
		doc.FilePath,
		doc.FileSize,
		doc.UploadDate,
		doc.ContentText,
		categoryArg(doc.Classification),
		doc.ClassificationConfidence,
		doc.Author,
		doc.CreationDate,
		doc.LastModified,
		doc.PageCount,
	)
	out, err := scanDocument(row)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a single document by its ID.
func (r *DocumentPostgres) FindByID(ctx context.Context, id string) (*model.Document, error) {
	q := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	d, err := scanDocument(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// List returns documents ordered by a whitelisted column using LIMIT/OFFSET pagination and a total count.
func (r *DocumentPostgres) List(ctx context.Context, lq repository.ListQuery) (*repository.PageResult[model.Document], error) {
	total, err := r.Count(ctx)
	if err != nil {
		return nil, err
	}

	col, ok := sortColumns[lq.SortBy]
	if !ok {
		col = sortColumns[repository.SortByUploadDate]
	}
	dir := "DESC"
	if strings.EqualFold(lq.Order, repository.OrderAsc) {
		dir = "ASC"
	}

	offset := max(lq.Offset, 0)
	q := fmt.Sprintf(`SELECT %s FROM documents ORDER BY %s %s, id %s`, documentColumns, col, dir, dir)
	args := []any{}
	if lq.Limit > 0 {
		q += ` LIMIT $1 OFFSET $2`
		args = append(args, lq.Limit, offset)
	} else {
		q += ` OFFSET $1`
		args = append(args, offset)
	}

	items, err := r.query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	return &repository.PageResult[model.Document]{
		Items: items,
		Total: total,
	}, nil
}

// ListAll returns every document, newest upload first.
func (r *DocumentPostgres) ListAll(ctx context.Context) ([]model.Document, error) {
	q := `SELECT ` + documentColumns + ` FROM documents ORDER BY upload_date DESC, id DESC`
	return r.query(ctx, q)
}

func (r *DocumentPostgres) query(ctx context.Context, q string, args ...any) ([]model.Document, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateContent overwrites the extracted fields and classification of a document.
// It returns sql.ErrNoRows if the document does not exist.
func (r *DocumentPostgres) UpdateContent(ctx context.Context, doc *model.Document) error {
	const q = `
		UPDATE documents
		SET title = $2, content_text = $3, classification = $4, classification_confidence = $5,
		    author = $6, creation_date = $7, last_modified = $8, page_count = $9
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, q,
		doc.ID,
		doc.Title,
		doc.ContentText,
		categoryArg(doc.Classification),
		doc.ClassificationConfidence,
		doc.Author,
		doc.CreationDate,
		doc.LastModified,
		doc.PageCount,
	)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// UpdateClassification sets category and confidence. It returns sql.ErrNoRows if the document does not exist.
func (r *DocumentPostgres) UpdateClassification(ctx context.Context, id string, category model.Category, confidence float64) error {
	const q = `UPDATE documents SET classification = $2, classification_confidence = $3 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, string(category), confidence)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a document by ID. It returns sql.ErrNoRows when no row matched.
func (r *DocumentPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM documents WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *DocumentPostgres) Count(ctx context.Context) (int, error) {
	const q = `SELECT COUNT(*) FROM documents`
	var n int
	if err := r.db.QueryRowContext(ctx, q).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *DocumentPostgres) TotalSize(ctx context.Context) (int64, error) {
	const q = `SELECT COALESCE(SUM(file_size), 0) FROM documents`
	var n int64
	if err := r.db.QueryRowContext(ctx, q).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// CategoryCounts groups classified documents by category.
func (r *DocumentPostgres) CategoryCounts(ctx context.Context) (map[model.Category]int, error) {
	const q = `
		SELECT classification, COUNT(*)
		FROM documents
		WHERE classification IS NOT NULL
		GROUP BY classification
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[model.Category]int)
	for rows.Next() {
		var (
			c string
			n int
		)
		if err := rows.Scan(&c, &n); err != nil {
			return nil, err
		}
		out[model.Category(c)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
