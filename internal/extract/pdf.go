package extract

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"go.uber.org/zap"
)

// titleScanLines is how many lines of the first page are considered as a title.
const titleScanLines = 10

func (e *Extractor) extractPDF(path string) Result {
	var res Result

	text, firstPage := e.pdfText(path)
	res.Text = text

	info := e.pdfInfo(path)
	res.Title = strings.TrimSpace(info.title)
	if res.Title == "" {
		lines := strings.Split(firstPage, "\n")
		if len(lines) > titleScanLines {
			lines = lines[:titleScanLines]
		}
		res.Title = pickTitle(lines)
	}
	res.Author = stringPtr(info.author)
	if t, ok := parsePDFDate(info.created); ok {
		res.CreatedAt = &t
	}
	if t, ok := parsePDFDate(info.modified); ok {
		res.ModifiedAt = &t
	}
	res.PageCount = e.pdfPageCount(path)
	return res
}

// pdfText returns the text of every page joined by newlines, and the text of page one.
func (e *Extractor) pdfText(path string) (text, firstPage string) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("pdf text extraction panicked", zap.String("path", path), zap.Any("panic", r))
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		e.logger.Warn("open pdf", zap.String("path", path), zap.Error(err))
		return "", ""
	}
	defer f.Close()

	pages := 0
	func() {
		defer func() { _ = recover() }()
		pages = r.NumPage()
	}()

	var b strings.Builder
	for i := 1; i <= pages; i++ {
		pageText := pdfPageText(r, i)
		if pageText == "" {
			e.logger.Debug("pdf page has no text", zap.String("path", path), zap.Int("page", i))
			continue
		}
		if i == 1 {
			firstPage = pageText
		}
		b.WriteString(pageText)
		b.WriteByte('\n')
	}
	return strings.TrimSpace(b.String()), firstPage
}

func pdfPageText(r *pdf.Reader, num int) (text string) {
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
		}
	}()
	page := r.Page(num)
	if page.V.IsNull() {
		return ""
	}
	text, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return text
}

type pdfProps struct {
	title    string
	author   string
	created  string
	modified string
}

// pdfInfo reads the document information dictionary from the trailer.
func (e *Extractor) pdfInfo(path string) (props pdfProps) {
	defer func() {
		if r := recover(); r != nil {
			props = pdfProps{}
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return pdfProps{}
	}
	defer f.Close()

	info := r.Trailer().Key("Info")
	if info.IsNull() {
		return pdfProps{}
	}
	return pdfProps{
		title:    info.Key("Title").Text(),
		author:   info.Key("Author").Text(),
		created:  info.Key("CreationDate").Text(),
		modified: info.Key("ModDate").Text(),
	}
}

func (e *Extractor) pdfPageCount(path string) *int {
	defer func() { _ = recover() }()

	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	n, err := api.PageCount(f, nil)
	if err != nil {
		e.logger.Debug("pdf page count", zap.String("path", path), zap.Error(err))
		return nil
	}
	return &n
}

// parsePDFDate parses the PDF date syntax D:YYYYMMDDHHmmSSOHH'mm'. Every component after
// the year is optional; a missing offset means UTC.
func parsePDFDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "D:")
	if len(s) < 4 {
		return time.Time{}, false
	}

	fields := []int{0, 1, 1, 0, 0, 0} // year month day hour minute second
	widths := []int{4, 2, 2, 2, 2, 2}
	pos := 0
	for i, w := range widths {
		if pos+w > len(s) || !isDigits(s[pos:pos+w]) {
			if i == 0 {
				return time.Time{}, false
			}
			break
		}
		v, _ := strconv.Atoi(s[pos : pos+w])
		fields[i] = v
		pos += w
	}

	loc := time.UTC
	if rest := s[pos:]; rest != "" {
		switch rest[0] {
		case 'Z':
		case '+', '-':
			tz := strings.ReplaceAll(rest[1:], "'", "")
			var hh, mm int
			if len(tz) >= 2 && isDigits(tz[:2]) {
				hh, _ = strconv.Atoi(tz[:2])
			}
			if len(tz) >= 4 && isDigits(tz[2:4]) {
				mm, _ = strconv.Atoi(tz[2:4])
			}
			offset := hh*3600 + mm*60
			if rest[0] == '-' {
				offset = -offset
			}
			loc = time.FixedZone(fmt.Sprintf("%c%02d:%02d", rest[0], hh, mm), offset)
		}
	}

	t := time.Date(fields[0], time.Month(fields[1]), fields[2], fields[3], fields[4], fields[5], 0, loc)
	return t.UTC(), true
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}
