// Package extract turns uploaded PDF and DOCX files into plain text, a title and
// document metadata. Extraction never fails: unreadable content degrades to
// empty text, a filename-derived title and absent metadata.
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
)

// Format identifies a supported document format.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

// ParseFormat maps a file extension (with or without the leading dot, any case) to a Format.
func ParseFormat(ext string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimPrefix(ext, "."))) {
	case FormatPDF:
		return FormatPDF, nil
	case FormatDOCX:
		return FormatDOCX, nil
	default:
		return "", fmt.Errorf("unsupported format: %q", ext)
	}
}

// FormatFromFilename returns the Format implied by the extension of name.
func FormatFromFilename(name string) (Format, error) {
	return ParseFormat(filepath.Ext(name))
}

// Result is the outcome of extracting a single file.
type Result struct {
	Text       string
	Title      string
	Author     *string
	CreatedAt  *time.Time
	ModifiedAt *time.Time
	PageCount  *int
}

// StatFunc reports creation and modification timestamps of a file on disk.
// It backs DOCX timestamps when the package carries no core properties.
type StatFunc func(path string) (created, modified time.Time, err error)

// OSStat uses the filesystem modification time for both timestamps; creation
// time is not portable across platforms.
func OSStat(path string) (time.Time, time.Time, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return fi.ModTime(), fi.ModTime(), nil
}

// Extractor extracts text and metadata from files. The zero value is not usable; call New.
type Extractor struct {
	logger *zap.Logger
	stat   StatFunc
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets the logger used for extraction diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(e *Extractor) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithStat replaces the filesystem timestamp lookup.
func WithStat(fn StatFunc) Option {
	return func(e *Extractor) {
		if fn != nil {
			e.stat = fn
		}
	}
}

// New builds an Extractor.
func New(opts ...Option) *Extractor {
	e := &Extractor{logger: zap.NewNop(), stat: OSStat}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract reads the file at path as the given format.
func (e *Extractor) Extract(path string, format Format) Result {
	var res Result
	switch format {
	case FormatPDF:
		res = e.extractPDF(path)
	case FormatDOCX:
		res = e.extractDOCX(path)
	default:
		e.logger.Warn("unsupported format", zap.String("path", path), zap.String("format", string(format)))
	}
	if res.Title == "" {
		res.Title = titleFromFilename(path)
	}

	e.logger.Debug("document extracted",
		zap.String("path", path),
		zap.String("format", string(format)),
		zap.Int("text_length", utf8.RuneCountInString(res.Text)),
		zap.String("title", res.Title),
	)
	return res
}

const (
	minTitleLen = 10
	maxTitleLen = 200
)

// pickTitle returns the first candidate whose trimmed length lies strictly between
// minTitleLen and maxTitleLen characters.
func pickTitle(candidates []string) string {
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		n := utf8.RuneCountInString(c)
		if n > minTitleLen && n < maxTitleLen {
			return c
		}
	}
	return ""
}

func titleFromFilename(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func stringPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
