package handlers

import (
	"github.com/jchen042/batch-translator/internal/service/batch"
	"github.com/jchen042/batch-translator/pkg/logger"
)

type Handlers struct {
	Translate *TranslateHandler
}

func NewHandlers(
	batchService batch.BatchTranslator,
	logger logger.Logger,
) *Handlers {
	return &Handlers{
		Translate: NewTranslateHandler(batchService, logger),
	}
}
