package extract

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	docxBodyPart  = "word/document.xml"
	docxCorePart  = "docProps/core.xml"
	titleScanDocx = 5
)

// docxPackage is the text-bearing content of a word processing document.
type docxPackage struct {
	paragraphs []string   // top-level body paragraphs, in order, including empty ones
	tables     [][]string // per top-level table, the text of each cell in row order
	props      coreProps
}

type coreProps struct {
	Title    string `xml:"title"`
	Creator  string `xml:"creator"`
	Created  string `xml:"created"`
	Modified string `xml:"modified"`
}

func (e *Extractor) extractDOCX(path string) Result {
	var res Result

	pkg, err := readDOCX(path)
	if err != nil {
		e.logger.Warn("read docx", zap.String("path", path), zap.Error(err))
	}

	res.Text = pkg.text()
	res.Title = strings.TrimSpace(pkg.props.Title)
	if res.Title == "" {
		head := pkg.paragraphs
		if len(head) > titleScanDocx {
			head = head[:titleScanDocx]
		}
		res.Title = pickTitle(head)
	}
	res.Author = stringPtr(pkg.props.Creator)

	created, okC := parseW3CDate(pkg.props.Created)
	modified, okM := parseW3CDate(pkg.props.Modified)
	if !okC || !okM {
		if c, m, err := e.stat(path); err == nil {
			if !okC {
				created, okC = c, !c.IsZero()
			}
			if !okM {
				modified, okM = m, !m.IsZero()
			}
		}
	}
	if okC {
		res.CreatedAt = &created
	}
	if okM {
		res.ModifiedAt = &modified
	}
	return res
}

// text joins non-empty paragraphs with newlines, then appends each table as a line
// of space-separated non-empty cells.
func (p docxPackage) text() string {
	var b strings.Builder
	for _, para := range p.paragraphs {
		if strings.TrimSpace(para) != "" {
			b.WriteString(para)
			b.WriteByte('\n')
		}
	}
	for _, table := range p.tables {
		for _, cell := range table {
			if strings.TrimSpace(cell) != "" {
				b.WriteString(cell)
				b.WriteByte(' ')
			}
		}
		b.WriteByte('\n')
	}
	return strings.TrimSpace(b.String())
}

func readDOCX(path string) (pkg docxPackage, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("docx parser panic: %v", r)
		}
	}()

	zr, err := zip.OpenReader(path)
	if err != nil {
		return docxPackage{}, err
	}
	defer zr.Close()

	var body *zip.File
	for _, f := range zr.File {
		switch f.Name {
		case docxBodyPart:
			body = f
		case docxCorePart:
			if props, perr := readCoreProps(f); perr == nil {
				pkg.props = props
			}
		}
	}
	if body == nil {
		return pkg, errors.New("missing " + docxBodyPart)
	}

	rc, err := body.Open()
	if err != nil {
		return pkg, err
	}
	defer rc.Close()

	pkg.paragraphs, pkg.tables, err = parseBody(rc)
	return pkg, err
}

func readCoreProps(f *zip.File) (coreProps, error) {
	rc, err := f.Open()
	if err != nil {
		return coreProps{}, err
	}
	defer rc.Close()

	var props coreProps
	if err := xml.NewDecoder(rc).Decode(&props); err != nil {
		return coreProps{}, err
	}
	return props, nil
}

// parseBody streams word/document.xml. Paragraphs nested in tables belong to their
// top-level cell; paragraphs in nested tables are folded into the enclosing cell.
// Text box content is skipped.
func parseBody(r io.Reader) (paragraphs []string, tables [][]string, err error) {
	dec := xml.NewDecoder(r)

	var (
		para     strings.Builder
		inText   bool
		tblDepth int
		table    []string
		cell     []string
	)

	for {
		tok, terr := dec.Token()
		if terr == io.EOF {
			break
		}
		if terr != nil {
			return paragraphs, tables, terr
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "txbxContent", "Fallback":
				// Text boxes are not part of the paragraph text, and Fallback repeats Choice.
				if serr := dec.Skip(); serr != nil {
					return paragraphs, tables, serr
				}
			case "tbl":
				tblDepth++
				if tblDepth == 1 {
					table = nil
				}
			case "tc":
				if tblDepth == 1 {
					cell = nil
				}
			case "p":
				para.Reset()
			case "t":
				inText = true
			case "tab":
				para.WriteByte('\t')
			case "br", "cr":
				para.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				para.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if tblDepth == 0 {
					paragraphs = append(paragraphs, para.String())
				} else {
					cell = append(cell, para.String())
				}
				para.Reset()
			case "tc":
				if tblDepth == 1 {
					table = append(table, strings.Join(cell, "\n"))
					cell = nil
				}
			case "tbl":
				if tblDepth == 1 {
					tables = append(tables, table)
					table = nil
				}
				if tblDepth > 0 {
					tblDepth--
				}
			}
		}
	}
	return paragraphs, tables, nil
}

func parseW3CDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
