package translate

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/jchen042/batch-translator/internal/capability"
	"github.com/jchen042/batch-translator/internal/models"
	"github.com/jchen042/batch-translator/internal/segment"
	"github.com/jchen042/batch-translator/pkg/logger"
	"github.com/jchen042/batch-translator/pkg/storage"
)

// Converter produces an editable document from a fixed-layout source
// (PDF in, DOCX out) via the asynchronous batch translation job. The job
// reads and writes object storage, so content is staged under a per-request
// prefix and best-effort deleted afterwards.
type Converter struct {
	translator capability.DocumentTranslator
	store      storage.Storage
	logger     logger.Logger
}

func NewConverter(translator capability.DocumentTranslator, store storage.Storage, log logger.Logger) *Converter {
	return &Converter{
		translator: translator,
		store:      store,
		logger:     log.Named("convert"),
	}
}

// Convert translates a PDF and returns it as DOCX. The batch job requires a
// configured staging bucket and an explicit source language.
func (c *Converter) Convert(ctx context.Context, doc models.Document, sourceLang, targetLang string) (*models.TranslationResult, error) {
	if c.store == nil {
		return nil, fmt.Errorf("%w: conversion requires a configured staging bucket", models.ErrInvalidArgument)
	}
	if sourceLang == "" {
		return nil, fmt.Errorf("%w: conversion requires an explicit source language", models.ErrInvalidArgument)
	}
	if doc.MimeType != models.MimePDF {
		return nil, fmt.Errorf("%w: conversion input must be %s", models.ErrUnsupportedMime, models.MimePDF)
	}
	if _, err := segment.PageCount(doc.Content); err != nil {
		return nil, err
	}

	prefix := "staging/" + uuid.New().String()
	inputKey := prefix + "/source.pdf"
	outputPrefix := prefix + "/out/"

	if err := c.store.Write(ctx, inputKey, doc.Content); err != nil {
		return nil, err
	}
	// Staged objects are deleted whether or not the job succeeds; cleanup
	// failures are swallowed.
	defer c.cleanup(ctx, prefix)

	err := c.translator.ConvertDocument(ctx, &capability.ConvertRequest{
		InputURI:        c.store.URI(inputKey),
		InputMimeType:   models.MimePDF,
		OutputURIPrefix: c.store.URI(outputPrefix),
		SourceLang:      sourceLang,
		TargetLang:      targetLang,
	})
	if err != nil {
		return nil, err
	}

	keys, err := c.store.List(ctx, outputPrefix)
	if err != nil {
		return nil, err
	}

	outputKey := ""
	for _, key := range keys {
		if strings.HasSuffix(key, ".docx") {
			outputKey = key
			break
		}
	}
	if outputKey == "" {
		return nil, fmt.Errorf("%w: conversion job produced no document under %s", models.ErrTranslationService, outputPrefix)
	}

	content, err := c.store.Read(ctx, outputKey)
	if err != nil {
		return nil, err
	}

	c.logger.Info("Conversion completed",
		logger.String("output", path.Base(outputKey)),
		logger.Int("bytes", len(content)),
	)

	return &models.TranslationResult{
		Content:  content,
		MimeType: models.MimeDOCX,
	}, nil
}

func (c *Converter) cleanup(ctx context.Context, prefix string) {
	keys, err := c.store.List(ctx, prefix)
	if err != nil {
		c.logger.Warn("Staging cleanup listing failed", logger.String("prefix", prefix), logger.Error(err))
		return
	}
	for _, key := range keys {
		if err := c.store.Delete(ctx, key); err != nil {
			c.logger.Warn("Staging cleanup delete failed", logger.String("key", key), logger.Error(err))
		}
	}
}
