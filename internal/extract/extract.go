// Package extract pulls plain text out of translated documents for the
// combined-text output mode. These are thin decode wrappers, not parsing
// logic: enough to prove a file produced output.
package extract

import (
	"fmt"

	"github.com/jchen042/batch-translator/internal/models"
)

// Text extracts the plain text of a document by its MIME type.
func Text(content []byte, mimeType string) (string, error) {
	switch mimeType {
	case models.MimePDF:
		return pdfText(content)
	case models.MimeDOCX:
		return docxText(content)
	case models.MimePPTX:
		return pptxText(content)
	case models.MimeXLSX:
		return xlsxText(content)
	default:
		return "", fmt.Errorf("%w: cannot extract text from %s", models.ErrUnsupportedMime, mimeType)
	}
}
