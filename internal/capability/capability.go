// Package capability defines the boundary to the remote translation and OCR
// services. The orchestrator only depends on these interfaces; tests inject
// deterministic fakes.
package capability

import (
	"context"

	"github.com/jchen042/batch-translator/internal/models"
)

// DocumentRequest is one synchronous document translation call.
type DocumentRequest struct {
	Content    []byte
	MimeType   string
	SourceLang string // optional; empty means auto-detect
	TargetLang string
	Params     models.DocumentParams
}

// DocumentResult is what the translation service reports back.
type DocumentResult struct {
	Content          []byte
	MimeType         string
	DetectedLanguage string
}

// TextResult is the outcome of a plain-text translation call.
type TextResult struct {
	Text             string
	DetectedLanguage string
}

// ConvertRequest describes an asynchronous batch translation job that reads
// and writes object storage locations instead of inline bytes. SourceLang is
// required by the batch variant.
type ConvertRequest struct {
	InputURI        string
	InputMimeType   string
	OutputURIPrefix string
	SourceLang      string
	TargetLang      string
}

// DocumentTranslator is the translation capability.
type DocumentTranslator interface {
	TranslateDocument(ctx context.Context, req *DocumentRequest) (*DocumentResult, error)
	TranslateText(ctx context.Context, text, sourceLang, targetLang string) (*TextResult, error)
	// ConvertDocument runs the asynchronous batch variant and blocks until
	// the job completes. Outputs appear under req.OutputURIPrefix.
	ConvertDocument(ctx context.Context, req *ConvertRequest) error
}

// TextDetector is the OCR capability.
type TextDetector interface {
	// DetectDocumentText requests full-document text detection.
	DetectDocumentText(ctx context.Context, image []byte) (string, error)
	// DetectText is the simpler fallback; it returns the top annotation.
	DetectText(ctx context.Context, image []byte) (string, error)
}
