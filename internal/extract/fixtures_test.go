package extract

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// pdfInfo entries are written verbatim into the document information dictionary.
type pdfFixture struct {
	lines []string
	info  map[string]string
}

// writePDF writes a single-page PDF with one text-show operation per line and a correct xref table.
func writePDF(t *testing.T, dir, name string, fx pdfFixture) string {
	t.Helper()

	var content strings.Builder
	content.WriteString("BT /F1 12 Tf 72 720 Td ")
	for i, line := range fx.lines {
		if i > 0 {
			content.WriteString("0 -14 Td ")
		}
		fmt.Fprintf(&content, "(%s) Tj ", line)
	}
	content.WriteString("ET")
	stream := content.String()

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 5 0 R >> >> /Contents 4 0 R >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	}
	if len(fx.info) > 0 {
		var info strings.Builder
		info.WriteString("<<")
		for k, v := range fx.info {
			fmt.Fprintf(&info, " /%s (%s)", k, v)
		}
		info.WriteString(" >>")
		objects = append(objects, info.String())
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	trailer := fmt.Sprintf("<< /Size %d /Root 1 0 R", len(objects)+1)
	if len(fx.info) > 0 {
		trailer += fmt.Sprintf(" /Info %d 0 R", len(objects))
	}
	trailer += " >>"
	fmt.Fprintf(&buf, "trailer\n%s\nstartxref\n%d\n%%%%EOF\n", trailer, xref)

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

type docxFixture struct {
	paragraphs []string
	tables     [][][]string // table -> row -> cell
	core       string       // raw docProps/core.xml body, omitted when empty
}

func writeDOCX(t *testing.T, dir, name string, fx docxFixture) string {
	t.Helper()

	var body strings.Builder
	body.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	body.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range fx.paragraphs {
		fmt.Fprintf(&body, `<w:p><w:r><w:t xml:space="preserve">%s</w:t></w:r></w:p>`, p)
	}
	for _, table := range fx.tables {
		body.WriteString(`<w:tbl>`)
		for _, row := range table {
			body.WriteString(`<w:tr>`)
			for _, cell := range row {
				fmt.Fprintf(&body, `<w:tc><w:p><w:r><w:t>%s</w:t></w:r></w:p></w:tc>`, cell)
			}
			body.WriteString(`</w:tr>`)
		}
		body.WriteString(`</w:tbl>`)
	}
	body.WriteString(`</w:body></w:document>`)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create(docxBodyPart)
	require.NoError(t, err)
	_, err = w.Write([]byte(body.String()))
	require.NoError(t, err)

	if fx.core != "" {
		w, err := zw.Create(docxCorePart)
		require.NoError(t, err)
		core := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" ` +
			`xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/" ` +
			`xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">` + fx.core + `</cp:coreProperties>`
		_, err = w.Write([]byte(core))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}
