package segment

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/jchen042/batch-translator/internal/models"
)

// Segment is a standalone PDF covering the 0-indexed page range
// [Start, End) of its parent document. Segments are ordered by Start.
type Segment struct {
	Start   int
	End     int
	Content []byte
}

// Pages returns the number of pages in the segment's range.
func (s Segment) Pages() int {
	return s.End - s.Start
}

func relaxedConf() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// PageCount returns the page count of an in-memory PDF.
func PageCount(doc []byte) (int, error) {
	n, err := api.PageCount(bytes.NewReader(doc), relaxedConf())
	if err != nil {
		return 0, fmt.Errorf("%w: %v", models.ErrMalformedDocument, err)
	}
	return n, nil
}

// Split partitions a PDF into fixed, non-overlapping page windows of
// maxPagesPerSegment pages; the last window may be shorter. Each segment is a
// fully valid PDF on its own, preserving original page order within its
// window. totalPages must be the document's page count as reported by
// PageCount; maxPagesPerSegment is clamped to at least 1.
func Split(doc []byte, totalPages, maxPagesPerSegment int) ([]Segment, error) {
	if maxPagesPerSegment < 1 {
		maxPagesPerSegment = 1
	}

	segments := make([]Segment, 0, (totalPages+maxPagesPerSegment-1)/maxPagesPerSegment)
	for start := 0; start < totalPages; start += maxPagesPerSegment {
		end := start + maxPagesPerSegment
		if end > totalPages {
			end = totalPages
		}

		// pdfcpu page selections are 1-based and inclusive.
		selection := []string{fmt.Sprintf("%d-%d", start+1, end)}

		var buf bytes.Buffer
		if err := api.Trim(bytes.NewReader(doc), &buf, selection, relaxedConf()); err != nil {
			return nil, fmt.Errorf("%w: pages %d-%d: %v", models.ErrMalformedDocument, start+1, end, err)
		}

		segments = append(segments, Segment{
			Start:   start,
			End:     end,
			Content: buf.Bytes(),
		})
	}

	return segments, nil
}
