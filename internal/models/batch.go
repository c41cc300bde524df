package models

// Supported document MIME types. Anything else that is not an image is
// rejected before any external call.
const (
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimePPTX = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	MimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	// MimeGeneric is the placeholder browsers send when they don't know the
	// content type; it never wins over name-based inference.
	MimeGeneric = "application/octet-stream"
)

// Document is opaque byte content tagged with a MIME type. Transformations
// (split, translate, merge) always produce a new Document.
type Document struct {
	Content  []byte
	MimeType string
}

// DocumentParams carries per-document tuning flags for the translation call.
// They only apply to PDF input and are ignored otherwise.
type DocumentParams struct {
	NativePDFOnly   bool
	RemoveShadow    bool
	CorrectRotation bool
}

// TranslationResult is the uniform output of a document translation,
// whether the document was sent whole or split into segments.
type TranslationResult struct {
	Content          []byte
	MimeType         string
	DetectedLanguage string
}

// BatchItem is one caller-submitted file.
type BatchItem struct {
	OriginalName string
	Content      []byte
	// DeclaredMime is the multipart Content-Type as sent by the caller.
	// May be empty or the generic placeholder.
	DeclaredMime string
}

// BatchOutcome is the per-item result feeding the aggregator. Outcomes keep
// the position of their item: outcomes[i] always belongs to items[i].
type BatchOutcome struct {
	Content  []byte
	MimeType string
	Filename string
	Err      error
}

// Failed reports whether this outcome carries an error payload.
func (o BatchOutcome) Failed() bool {
	return o.Err != nil
}

// BatchRequest is the transport-independent shape of one batch.
type BatchRequest struct {
	Items              []BatchItem
	TargetLang         string
	SourceLang         string
	CombineImages      bool
	CombineAllToTxt    bool
	BetweenBlocksLines int
	Params             DocumentParams
}
