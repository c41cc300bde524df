package models

import "errors"

var (
	// ErrInvalidArgument is returned for caller errors detected before any
	// external call: missing target language, empty content, empty item list.
	ErrInvalidArgument = errors.New("translator: invalid argument")

	// ErrUnsupportedMime is returned when an item's effective MIME type is
	// outside the supported document and image sets.
	ErrUnsupportedMime = errors.New("translator: unsupported mime type")

	// ErrMalformedDocument is returned when a paginated document cannot be
	// parsed into pages for splitting or merging.
	ErrMalformedDocument = errors.New("translator: malformed document")

	// ErrNoTextDetected is returned when OCR finds no text in an image,
	// including the fallback annotation pass.
	ErrNoTextDetected = errors.New("translator: no text detected")

	// ErrTranslationService is returned when the translation capability
	// errors or returns an empty payload.
	ErrTranslationService = errors.New("translator: translation service failure")

	// ErrOCRService is returned when the OCR capability call fails.
	ErrOCRService = errors.New("translator: ocr service failure")

	// ErrStorage is returned when staging objects for the batch conversion
	// path cannot be written or read. Cleanup failures are never surfaced.
	ErrStorage = errors.New("translator: storage failure")
)
