package batch

import (
	"context"

	"github.com/jchen042/batch-translator/internal/models"
	"github.com/jchen042/batch-translator/pkg/aggregate"
)

type BatchTranslator interface {
	// TranslateBatch processes every item of the request and aggregates the
	// outcomes into one response. Per-item failures are captured inside the
	// aggregated output; only whole-batch-fatal conditions return an error.
	TranslateBatch(ctx context.Context, req *models.BatchRequest) (*aggregate.Response, error)

	// ConvertDocument translates a single PDF into an editable DOCX via the
	// asynchronous batch conversion path.
	ConvertDocument(ctx context.Context, item models.BatchItem, sourceLang, targetLang string) (*aggregate.Response, error)
}
