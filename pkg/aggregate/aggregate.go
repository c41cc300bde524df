// Package aggregate renders per-item batch outcomes into one response:
// a single passthrough attachment, a zip archive, or a combined text
// document. It relies on the 1:1 positional correspondence between items
// and outcomes.
package aggregate

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"

	"github.com/jchen042/batch-translator/internal/models"
)

const (
	maxBetweenBlocksLines = 20

	zipMimeType  = "application/zip"
	textMimeType = "text/plain; charset=utf-8"
)

// Response is the aggregated batch output handed back to the transport.
type Response struct {
	Content     []byte
	ContentType string
	Filename    string
}

// Passthrough returns a single item's payload directly. An item failure has
// no sibling to isolate it from, so it propagates as a request-level error.
func Passthrough(outcome models.BatchOutcome) (*Response, error) {
	if outcome.Failed() {
		return nil, outcome.Err
	}
	return &Response{
		Content:     outcome.Content,
		ContentType: outcome.MimeType,
		Filename:    outcome.Filename,
	}, nil
}

// Archive renders one zip entry per outcome: translated bytes under the
// derived filename on success, a sibling <base>_error.txt with the error
// message on failure. A single entry going wrong degrades to its error
// entry; the archive always finalizes.
func Archive(items []models.BatchItem, outcomes []models.BatchOutcome, targetLang string) (*Response, error) {
	if len(items) != len(outcomes) {
		return nil, fmt.Errorf("%w: %d items but %d outcomes", models.ErrInvalidArgument, len(items), len(outcomes))
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for i, outcome := range outcomes {
		name := items[i].OriginalName
		if outcome.Failed() {
			writeArchiveError(zw, name, outcome.Err.Error())
			continue
		}
		if err := writeArchiveEntry(zw, outcome.Filename, outcome.Content); err != nil {
			writeArchiveError(zw, name, err.Error())
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}

	return &Response{
		Content:     buf.Bytes(),
		ContentType: zipMimeType,
		Filename:    fmt.Sprintf("translations_%s.zip", targetLang),
	}, nil
}

func writeArchiveEntry(zw *zip.Writer, name string, content []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = w.Write(content)
	return err
}

func writeArchiveError(zw *zip.Writer, originalName, message string) {
	w, err := zw.Create(ErrorFilename(originalName))
	if err != nil {
		return
	}
	_, _ = w.Write([]byte(message))
}

// CombinedText concatenates every item's text into one document. Each item
// is introduced by a literal separator line and terminated by a newline;
// betweenBlocksLines blank lines (clamped to 0..20) separate consecutive
// items, never trailing the last one. Item failures render inline as
// "[ERRO] <message>" instead of aborting the document.
func CombinedText(items []models.BatchItem, outcomes []models.BatchOutcome, targetLang string, betweenBlocksLines int, imagesOnly bool) (*Response, error) {
	if len(items) != len(outcomes) {
		return nil, fmt.Errorf("%w: %d items but %d outcomes", models.ErrInvalidArgument, len(items), len(outcomes))
	}

	if betweenBlocksLines < 0 {
		betweenBlocksLines = 0
	}
	if betweenBlocksLines > maxBetweenBlocksLines {
		betweenBlocksLines = maxBetweenBlocksLines
	}

	var b strings.Builder
	for i, outcome := range outcomes {
		name := items[i].OriginalName
		if name == "" {
			name = fallbackBase
		}

		b.WriteString("===== ")
		b.WriteString(name)
		b.WriteString(" =====\n")

		if outcome.Failed() {
			b.WriteString("[ERRO] ")
			b.WriteString(outcome.Err.Error())
		} else {
			b.Write(outcome.Content)
		}
		b.WriteString("\n")

		if i < len(outcomes)-1 {
			b.WriteString(strings.Repeat("\n", betweenBlocksLines))
		}
	}

	return &Response{
		Content:     []byte(b.String()),
		ContentType: textMimeType,
		Filename:    CombinedFilename(targetLang, imagesOnly),
	}, nil
}
