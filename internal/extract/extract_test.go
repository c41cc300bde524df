package extract

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jchen042/batch-translator/internal/models"
)

func buildZip(t *testing.T, entries map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range entries {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestDocxText(t *testing.T) {
	doc := buildZip(t, map[string]string{
		"word/document.xml": `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Hello </w:t></w:r><w:r><w:t>world</w:t></w:r></w:p>
    <w:p><w:r><w:t>Second paragraph</w:t></w:r></w:p>
  </w:body>
</w:document>`,
	})

	text, err := Text(doc, models.MimeDOCX)
	require.NoError(t, err)
	assert.Equal(t, "Hello world\nSecond paragraph", text)
}

func TestDocxMissingDocumentPart(t *testing.T) {
	doc := buildZip(t, map[string]string{"word/styles.xml": "<x/>"})

	_, err := Text(doc, models.MimeDOCX)
	assert.ErrorIs(t, err, models.ErrMalformedDocument)
}

func TestDocxNotAZip(t *testing.T) {
	_, err := Text([]byte("definitely not a zip"), models.MimeDOCX)
	assert.ErrorIs(t, err, models.ErrMalformedDocument)
}

func TestPptxSlidesInNumericOrder(t *testing.T) {
	slide := func(text string) string {
		return `<?xml version="1.0"?>
<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"
       xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">
  <a:p><a:r><a:t>` + text + `</a:t></a:r></a:p>
</p:sld>`
	}
	// slide10 sorts before slide2 lexically; extraction must order numerically.
	doc := buildZip(t, map[string]string{
		"ppt/slides/slide10.xml": slide("ten"),
		"ppt/slides/slide2.xml":  slide("two"),
		"ppt/slides/slide1.xml":  slide("one"),
		"ppt/notes/notes1.xml":   slide("ignored"),
	})

	text, err := Text(doc, models.MimePPTX)
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\nten", text)
}

func TestXlsxText(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "name"))
	require.NoError(t, f.SetCellValue("Sheet1", "B1", "count"))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", "widgets"))
	require.NoError(t, f.SetCellValue("Sheet1", "B2", 42))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NoError(t, f.Close())

	text, err := Text(buf.Bytes(), models.MimeXLSX)
	require.NoError(t, err)
	assert.Equal(t, "name\tcount\nwidgets\t42", text)
}

func TestUnsupportedMime(t *testing.T) {
	_, err := Text([]byte("x"), "text/html")
	assert.ErrorIs(t, err, models.ErrUnsupportedMime)
}
