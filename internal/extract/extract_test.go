package extract

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedStat(created, modified time.Time) StatFunc {
	return func(string) (time.Time, time.Time, error) { return created, modified, nil }
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"pdf", FormatPDF, false},
		{".PDF", FormatPDF, false},
		{"docx", FormatDOCX, false},
		{".Docx", FormatDOCX, false},
		{"txt", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	f, err := FormatFromFilename("report.final.docx")
	require.NoError(t, err)
	assert.Equal(t, FormatDOCX, f)
}

func TestExtract_PDF(t *testing.T) {
	dir := t.TempDir()
	e := New()

	t.Run("embedded metadata", func(t *testing.T) {
		path := writePDF(t, dir, "meta.pdf", pdfFixture{
			lines: []string{"Quarterly revenue report"},
			info: map[string]string{
				"Title":        "Embedded Title",
				"Author":       "Jane Analyst",
				"CreationDate": "D:20230102030405Z",
				"ModDate":      "D:20230203040506+02'00'",
			},
		})

		res := e.Extract(path, FormatPDF)

		assert.Contains(t, res.Text, "Quarterly revenue report")
		assert.Equal(t, "Embedded Title", res.Title)
		require.NotNil(t, res.Author)
		assert.Equal(t, "Jane Analyst", *res.Author)
		require.NotNil(t, res.CreatedAt)
		assert.Equal(t, time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC), *res.CreatedAt)
		require.NotNil(t, res.ModifiedAt)
		assert.Equal(t, time.Date(2023, 2, 3, 2, 5, 6, 0, time.UTC), *res.ModifiedAt)
		if assert.NotNil(t, res.PageCount) {
			assert.Equal(t, 1, *res.PageCount)
		}
	})

	t.Run("title from first page", func(t *testing.T) {
		path := writePDF(t, dir, "content.pdf", pdfFixture{
			lines: []string{"Annual Engineering Review"},
		})

		res := e.Extract(path, FormatPDF)

		assert.Equal(t, "Annual Engineering Review", res.Title)
		assert.Nil(t, res.Author)
		assert.Nil(t, res.CreatedAt)
	})

	t.Run("short first line falls back to filename", func(t *testing.T) {
		path := writePDF(t, dir, "memo-2024.pdf", pdfFixture{lines: []string{"Memo"}})

		res := e.Extract(path, FormatPDF)

		assert.Equal(t, "memo-2024", res.Title)
	})

	t.Run("corrupt file degrades to defaults", func(t *testing.T) {
		path := filepath.Join(dir, "broken.pdf")
		require.NoError(t, os.WriteFile(path, []byte("this is not a pdf"), 0o644))

		res := e.Extract(path, FormatPDF)

		assert.Equal(t, "", res.Text)
		assert.Equal(t, "broken", res.Title)
		assert.Nil(t, res.Author)
		assert.Nil(t, res.CreatedAt)
		assert.Nil(t, res.ModifiedAt)
		assert.Nil(t, res.PageCount)
	})

	t.Run("missing file", func(t *testing.T) {
		res := e.Extract(filepath.Join(dir, "gone.pdf"), FormatPDF)
		assert.Equal(t, "", res.Text)
		assert.Equal(t, "gone", res.Title)
	})
}

func TestExtract_DOCX(t *testing.T) {
	dir := t.TempDir()
	statCreated := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	statModified := time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)
	e := New(WithStat(fixedStat(statCreated, statModified)))

	t.Run("paragraphs and tables", func(t *testing.T) {
		path := writeDOCX(t, dir, "tables.docx", docxFixture{
			paragraphs: []string{"Short", "", "Contract agreement for services", "Second paragraph"},
			tables: [][][]string{
				{{"Party", "Acme"}, {"", "Term"}},
			},
		})

		res := e.Extract(path, FormatDOCX)

		assert.Equal(t, "Short\nContract agreement for services\nSecond paragraph\nParty Acme Term", res.Text)
		assert.Equal(t, "Contract agreement for services", res.Title)
		assert.Nil(t, res.Author)
		require.NotNil(t, res.CreatedAt)
		assert.Equal(t, statCreated, *res.CreatedAt)
		require.NotNil(t, res.ModifiedAt)
		assert.Equal(t, statModified, *res.ModifiedAt)
		assert.Nil(t, res.PageCount)
	})

	t.Run("core properties", func(t *testing.T) {
		path := writeDOCX(t, dir, "props.docx", docxFixture{
			paragraphs: []string{"Body text that is long enough"},
			core: `<dc:title>  Policy Handbook </dc:title><dc:creator>Legal Team</dc:creator>` +
				`<dcterms:created xsi:type="dcterms:W3CDTF">2022-03-04T05:06:07Z</dcterms:created>` +
				`<dcterms:modified xsi:type="dcterms:W3CDTF">2022-04-05T06:07:08Z</dcterms:modified>`,
		})

		res := e.Extract(path, FormatDOCX)

		assert.Equal(t, "Policy Handbook", res.Title)
		require.NotNil(t, res.Author)
		assert.Equal(t, "Legal Team", *res.Author)
		assert.Equal(t, time.Date(2022, 3, 4, 5, 6, 7, 0, time.UTC), *res.CreatedAt)
		assert.Equal(t, time.Date(2022, 4, 5, 6, 7, 8, 0, time.UTC), *res.ModifiedAt)
	})

	t.Run("title only from first five paragraphs", func(t *testing.T) {
		path := writeDOCX(t, dir, "late-title.docx", docxFixture{
			paragraphs: []string{"a", "b", "c", "d", "e", "This paragraph is long enough"},
		})

		res := e.Extract(path, FormatDOCX)

		assert.Equal(t, "late-title", res.Title)
	})

	t.Run("not a zip", func(t *testing.T) {
		path := filepath.Join(dir, "empty.docx")
		require.NoError(t, os.WriteFile(path, []byte("plain"), 0o644))

		res := e.Extract(path, FormatDOCX)

		assert.Equal(t, "", res.Text)
		assert.Equal(t, "empty", res.Title)
	})

	t.Run("stat failure leaves timestamps absent", func(t *testing.T) {
		failing := New(WithStat(func(string) (time.Time, time.Time, error) {
			return time.Time{}, time.Time{}, errors.New("stat failed")
		}))
		path := writeDOCX(t, dir, "nostat.docx", docxFixture{paragraphs: []string{"Hello"}})

		res := failing.Extract(path, FormatDOCX)

		assert.Nil(t, res.CreatedAt)
		assert.Nil(t, res.ModifiedAt)
	})
}

func TestParseBody_SkipsTextBoxes(t *testing.T) {
	body := `<w:document xmlns:w="w" xmlns:mc="mc" xmlns:wps="wps"><w:body>` +
		`<w:p><w:r><w:t xml:space="preserve">Hello outer start </w:t></w:r>` +
		`<w:r><mc:AlternateContent>` +
		`<mc:Choice Requires="wps"><w:drawing><wps:txbx><w:txbxContent>` +
		`<w:p><w:r><w:t>Box text</w:t></w:r></w:p>` +
		`</w:txbxContent></wps:txbx></w:drawing></mc:Choice>` +
		`<mc:Fallback><w:pict><w:txbxContent>` +
		`<w:p><w:r><w:t>Box text</w:t></w:r></w:p>` +
		`</w:txbxContent></w:pict></mc:Fallback>` +
		`</mc:AlternateContent></w:r>` +
		`<w:r><w:t>outer end</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>Second</w:t></w:r></w:p>` +
		`</w:body></w:document>`

	paragraphs, tables, err := parseBody(strings.NewReader(body))

	require.NoError(t, err)
	assert.Equal(t, []string{"Hello outer start outer end", "Second"}, paragraphs)
	assert.Empty(t, tables)
}

func TestParsePDFDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"D:20230102030405Z", time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC), true},
		{"D:20230102030405-05'30'", time.Date(2023, 1, 2, 8, 34, 5, 0, time.UTC), true},
		{"D:2023", time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), true},
		{"20231231", time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), true},
		{"", time.Time{}, false},
		{"D:abc", time.Time{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parsePDFDate(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, tt.want.Equal(got), "got %v", got)
			}
		})
	}
}

func TestPickTitle(t *testing.T) {
	assert.Equal(t, "", pickTitle(nil))
	assert.Equal(t, "", pickTitle([]string{"exactly10c"}))
	assert.Equal(t, "eleven char", pickTitle([]string{"exactly10c", "  eleven char  "}))
}
