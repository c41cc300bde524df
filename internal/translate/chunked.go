// Package translate drives document translation through the remote
// capability, splitting oversized PDFs into page-bounded segments and
// merging the translated segments back in page order.
package translate

import (
	"context"
	"fmt"

	"github.com/jchen042/batch-translator/internal/capability"
	"github.com/jchen042/batch-translator/internal/models"
	"github.com/jchen042/batch-translator/internal/segment"
	"github.com/jchen042/batch-translator/pkg/logger"
)

// Chunked decides per document whether a single direct call fits under the
// service's page ceiling, and orchestrates split/translate/merge when it
// doesn't.
type Chunked struct {
	translator capability.DocumentTranslator
	maxPages   int
	logger     logger.Logger
}

func NewChunked(translator capability.DocumentTranslator, maxPagesPerRequest int, log logger.Logger) *Chunked {
	if maxPagesPerRequest < 1 {
		maxPagesPerRequest = 1
	}
	return &Chunked{
		translator: translator,
		maxPages:   maxPagesPerRequest,
		logger:     log.Named("chunked"),
	}
}

// Translate produces a uniform result regardless of whether the document was
// sent whole or in segments. Only PDFs are paginated; every other supported
// format always goes through the direct path.
func (c *Chunked) Translate(ctx context.Context, doc models.Document, sourceLang, targetLang string, params models.DocumentParams) (*models.TranslationResult, error) {
	if doc.MimeType != models.MimePDF {
		return c.direct(ctx, doc, sourceLang, targetLang, params)
	}

	pages, err := segment.PageCount(doc.Content)
	if err != nil {
		return nil, err
	}
	if pages <= c.maxPages {
		return c.direct(ctx, doc, sourceLang, targetLang, params)
	}

	segments, err := segment.Split(doc.Content, pages, c.maxPages)
	if err != nil {
		return nil, err
	}

	c.logger.Info("Translating oversized document in segments",
		logger.Int("pages", pages),
		logger.Int("segments", len(segments)),
		logger.Int("maxPagesPerRequest", c.maxPages),
	)

	// Segments are translated strictly sequentially in ascending page order.
	// Any segment failure aborts the whole document; a partially merged
	// output would be silently truncated.
	outputs := make([][]byte, len(segments))
	detected := ""
	for i, seg := range segments {
		res, err := c.translator.TranslateDocument(ctx, &capability.DocumentRequest{
			Content:    seg.Content,
			MimeType:   models.MimePDF,
			SourceLang: sourceLang,
			TargetLang: targetLang,
			Params:     params,
		})
		if err != nil {
			return nil, fmt.Errorf("segment %d of %d (pages %d-%d): %w", i+1, len(segments), seg.Start+1, seg.End, err)
		}

		outputs[i] = res.Content
		// First non-empty detection wins; later detections are ignored.
		if detected == "" && res.DetectedLanguage != "" {
			detected = res.DetectedLanguage
		}
	}

	merged, err := segment.Merge(outputs)
	if err != nil {
		return nil, err
	}

	return &models.TranslationResult{
		Content:          merged,
		MimeType:         models.MimePDF,
		DetectedLanguage: detected,
	}, nil
}

func (c *Chunked) direct(ctx context.Context, doc models.Document, sourceLang, targetLang string, params models.DocumentParams) (*models.TranslationResult, error) {
	res, err := c.translator.TranslateDocument(ctx, &capability.DocumentRequest{
		Content:    doc.Content,
		MimeType:   doc.MimeType,
		SourceLang: sourceLang,
		TargetLang: targetLang,
		Params:     params,
	})
	if err != nil {
		return nil, err
	}

	return &models.TranslationResult{
		Content:          res.Content,
		MimeType:         res.MimeType,
		DetectedLanguage: res.DetectedLanguage,
	}, nil
}
