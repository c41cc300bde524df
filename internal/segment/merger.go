package segment

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/jchen042/batch-translator/internal/models"
)

// Merge concatenates the pages of the given PDFs in input-list order into one
// document: docs[0]'s pages first, then docs[1]'s, and so on. The input order
// is the only ordering contract; callers must pass segments sorted by their
// page range, never by completion time.
func Merge(docs [][]byte) ([]byte, error) {
	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: merge requires at least one document", models.ErrInvalidArgument)
	}

	readers := make([]io.ReadSeeker, len(docs))
	for i, doc := range docs {
		readers[i] = bytes.NewReader(doc)
	}

	var buf bytes.Buffer
	if err := api.MergeRaw(readers, &buf, false, relaxedConf()); err != nil {
		return nil, fmt.Errorf("%w: merge: %v", models.ErrMalformedDocument, err)
	}

	return buf.Bytes(), nil
}
