package batch

import (
	"context"
	"fmt"
	"strings"

	"github.com/jchen042/batch-translator/internal/capability"
	"github.com/jchen042/batch-translator/internal/extract"
	"github.com/jchen042/batch-translator/internal/models"
	"github.com/jchen042/batch-translator/internal/translate"
	"github.com/jchen042/batch-translator/internal/utils/validator"
	"github.com/jchen042/batch-translator/pkg/aggregate"
	"github.com/jchen042/batch-translator/pkg/logger"
	"github.com/jchen042/batch-translator/pkg/runner"
	"github.com/jchen042/batch-translator/pkg/storage"
)

type BatchService struct {
	translator capability.DocumentTranslator
	detector   capability.TextDetector
	chunked    *translate.Chunked
	converter  *translate.Converter
	logger     logger.Logger
	config     *ServiceConfig
}

type ServiceConfig struct {
	// MaxPagesPerRequest is the page ceiling of one document translate
	// call; oversized PDFs are split into windows of this size. Server-side
	// constant, never caller-controlled.
	MaxPagesPerRequest int
	// MaxConcurrent bounds how many items of one batch are processed at
	// the same time.
	MaxConcurrent int
}

func NewService(
	translator capability.DocumentTranslator,
	detector capability.TextDetector,
	store storage.Storage,
	log logger.Logger,
	cfg *ServiceConfig,
) BatchTranslator {
	if cfg == nil {
		cfg = &ServiceConfig{
			MaxPagesPerRequest: 20,
			MaxConcurrent:      5,
		}
	}

	var converter *translate.Converter
	if store != nil {
		converter = translate.NewConverter(translator, store, log)
	}

	return &BatchService{
		translator: translator,
		detector:   detector,
		chunked:    translate.NewChunked(translator, cfg.MaxPagesPerRequest, log),
		converter:  converter,
		logger:     log.Named("batch"),
		config:     cfg,
	}
}

// TranslateBatch validates the request, fans the items out through the
// bounded runner, and aggregates the positional outcomes into one response.
func (s *BatchService) TranslateBatch(ctx context.Context, req *models.BatchRequest) (*aggregate.Response, error) {
	if err := validator.ValidateRequest(req); err != nil {
		return nil, err
	}

	allImages := true
	for _, item := range req.Items {
		if validator.Classify(validator.EffectiveMime(item)) != validator.KindImage {
			allImages = false
			break
		}
	}
	// Combined mode needs siblings to concatenate; a single item is always a
	// passthrough, whatever flags the caller set.
	combined := len(req.Items) > 1 &&
		(req.CombineAllToTxt || (req.CombineImages && allImages))

	s.logger.Info("Starting batch",
		logger.Int("items", len(req.Items)),
		logger.String("targetLang", req.TargetLang),
		logger.Bool("combined", combined),
	)

	// Units of work never return an error; every per-item failure is
	// captured in its outcome so sibling items keep running.
	outcomes, err := runner.Run(ctx, req.Items, s.config.MaxConcurrent,
		func(ctx context.Context, i int, item models.BatchItem) (models.BatchOutcome, error) {
			return s.processItem(ctx, req, item, combined), nil
		})
	if err != nil {
		return nil, err
	}

	for i, outcome := range outcomes {
		if outcome.Failed() {
			s.logger.Warn("Item failed",
				logger.Int("index", i),
				logger.String("filename", req.Items[i].OriginalName),
				logger.Error(outcome.Err),
			)
		}
	}

	switch {
	case len(req.Items) == 1:
		return aggregate.Passthrough(outcomes[0])
	case combined:
		return aggregate.CombinedText(req.Items, outcomes, req.TargetLang, req.BetweenBlocksLines, !req.CombineAllToTxt)
	default:
		return aggregate.Archive(req.Items, outcomes, req.TargetLang)
	}
}

// ConvertDocument runs the storage-staged conversion path for one PDF.
func (s *BatchService) ConvertDocument(ctx context.Context, item models.BatchItem, sourceLang, targetLang string) (*aggregate.Response, error) {
	if targetLang == "" {
		return nil, fmt.Errorf("%w: target language is required", models.ErrInvalidArgument)
	}
	if err := validator.ValidateItem(item); err != nil {
		return nil, err
	}
	if s.converter == nil {
		return nil, fmt.Errorf("%w: conversion requires a configured staging bucket", models.ErrInvalidArgument)
	}

	doc := models.Document{Content: item.Content, MimeType: validator.EffectiveMime(item)}
	res, err := s.converter.Convert(ctx, doc, sourceLang, targetLang)
	if err != nil {
		return nil, err
	}

	return &aggregate.Response{
		Content:     res.Content,
		ContentType: res.MimeType,
		Filename:    aggregate.BaseName(item.OriginalName) + "_" + targetLang + "_translations.docx",
	}, nil
}

func (s *BatchService) processItem(ctx context.Context, req *models.BatchRequest, item models.BatchItem, combined bool) models.BatchOutcome {
	if err := validator.ValidateItem(item); err != nil {
		return errorOutcome(err)
	}

	effective := validator.EffectiveMime(item)
	switch validator.Classify(effective) {
	case validator.KindImage:
		return s.processImage(ctx, req, item)
	case validator.KindDocument:
		return s.processDocument(ctx, req, item, effective, combined)
	default:
		return errorOutcome(
			fmt.Errorf("%w: %s", models.ErrUnsupportedMime, effective))
	}
}

func (s *BatchService) processDocument(ctx context.Context, req *models.BatchRequest, item models.BatchItem, mimeType string, combined bool) models.BatchOutcome {
	doc := models.Document{Content: item.Content, MimeType: mimeType}

	res, err := s.chunked.Translate(ctx, doc, req.SourceLang, req.TargetLang, req.Params)
	if err != nil {
		return errorOutcome(err)
	}

	if !combined {
		return models.BatchOutcome{
			Content:  res.Content,
			MimeType: res.MimeType,
			Filename: aggregate.DocumentFilename(item.OriginalName, req.TargetLang),
		}
	}

	text, err := extract.Text(res.Content, res.MimeType)
	if err != nil {
		return errorOutcome(err)
	}
	return models.BatchOutcome{
		Content:  []byte(text),
		MimeType: "text/plain; charset=utf-8",
		Filename: aggregate.TextFilename(item.OriginalName, req.TargetLang),
	}
}

func (s *BatchService) processImage(ctx context.Context, req *models.BatchRequest, item models.BatchItem) models.BatchOutcome {
	text, err := s.detector.DetectDocumentText(ctx, item.Content)
	if err != nil {
		return errorOutcome(err)
	}

	if strings.TrimSpace(text) == "" {
		// Full-document detection found nothing; try the simpler pass.
		text, err = s.detector.DetectText(ctx, item.Content)
		if err != nil {
			return errorOutcome(err)
		}
	}
	if strings.TrimSpace(text) == "" {
		return errorOutcome(
			fmt.Errorf("%w: %s", models.ErrNoTextDetected, item.OriginalName))
	}

	res, err := s.translator.TranslateText(ctx, text, req.SourceLang, req.TargetLang)
	if err != nil {
		return errorOutcome(err)
	}

	return models.BatchOutcome{
		Content:  []byte(res.Text),
		MimeType: "text/plain; charset=utf-8",
		Filename: aggregate.TextFilename(item.OriginalName, req.TargetLang),
	}
}

// errorOutcome carries only the error; the aggregation modes derive failure
// naming from the item themselves.
func errorOutcome(err error) models.BatchOutcome {
	return models.BatchOutcome{Err: err}
}
