package model

import "time"

// Document represents an uploaded file together with its extracted content and classification.
// This is a pure domain model with no database-specific dependencies or tags.
// Optional fields are pointers so that absent values serialize as null.
type Document struct {
	ID                       string     `json:"id"`
	Title                    string     `json:"title"`
	Filename                 string     `json:"filename"`
	FilePath                 string     `json:"file_path"`
	FileSize                 int64      `json:"file_size"`
	UploadDate               time.Time  `json:"upload_date"`
	ContentText              string     `json:"content_text"`
	Classification           *Category  `json:"classification"`
	ClassificationConfidence *float64   `json:"classification_confidence"`
	Author                   *string    `json:"author"`
	CreationDate             *time.Time `json:"creation_date"`
	LastModified             *time.Time `json:"last_modified"`
	PageCount                *int       `json:"page_count"`
}

// SearchLog records a single executed search. Entries are append-only.
type SearchLog struct {
	ID           string    `json:"id"`
	Query        string    `json:"query"`
	ResultsCount int       `json:"results_count"`
	SearchTime   float64   `json:"search_time"` // seconds
	Timestamp    time.Time `json:"timestamp"`
}
