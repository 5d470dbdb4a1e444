// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g., postgres) inside this directory.
package repository

// Sort fields accepted by DocumentRepository.List. Anything else falls back to SortByUploadDate.
const (
	SortByTitle      = "title"
	SortByUploadDate = "upload_date"
	SortByFileSize   = "file_size"
)

// Sort orders accepted by DocumentRepository.List. Anything else is treated as OrderDesc.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// ListQuery holds sorting and limit/offset pagination parameters.
// A non-positive Limit returns every row from Offset on.
type ListQuery struct {
	SortBy string
	Order  string
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
