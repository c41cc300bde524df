package validator

import (
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"github.com/jchen042/batch-translator/internal/models"
)

// Kind classifies an item by its effective MIME type.
type Kind int

const (
	KindUnsupported Kind = iota
	KindDocument
	KindImage
)

var documentMimes = map[string]bool{
	models.MimePDF:  true,
	models.MimeDOCX: true,
	models.MimePPTX: true,
	models.MimeXLSX: true,
}

var extraExtensions = map[string]string{
	".pdf":  models.MimePDF,
	".docx": models.MimeDOCX,
	".pptx": models.MimePPTX,
	".xlsx": models.MimeXLSX,
}

// EffectiveMime resolves the content type used for routing: the declared
// MIME when present and not the generic placeholder, otherwise a name-based
// inference.
func EffectiveMime(item models.BatchItem) string {
	declared := normalize(item.DeclaredMime)
	if declared != "" && declared != models.MimeGeneric {
		return declared
	}

	ext := strings.ToLower(filepath.Ext(item.OriginalName))
	if m, ok := extraExtensions[ext]; ok {
		return m
	}
	return normalize(mime.TypeByExtension(ext))
}

// Classify buckets an effective MIME into image, document, or unsupported.
func Classify(effectiveMime string) Kind {
	switch {
	case strings.HasPrefix(effectiveMime, "image/"):
		return KindImage
	case documentMimes[effectiveMime]:
		return KindDocument
	default:
		return KindUnsupported
	}
}

// ValidateRequest checks the whole-batch-fatal conditions that must be
// reported before any item processing begins.
func ValidateRequest(req *models.BatchRequest) error {
	if req.TargetLang == "" {
		return fmt.Errorf("%w: target language is required", models.ErrInvalidArgument)
	}
	if len(req.Items) == 0 {
		return fmt.Errorf("%w: no files provided", models.ErrInvalidArgument)
	}
	return nil
}

// ValidateItem checks the per-item caller errors that are captured at the
// item boundary rather than aborting the batch.
func ValidateItem(item models.BatchItem) error {
	if len(item.Content) == 0 {
		return fmt.Errorf("%w: empty content", models.ErrInvalidArgument)
	}
	return nil
}

// normalize strips mime parameters ("; charset=...") and lowercases.
func normalize(mimeType string) string {
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = mimeType[:i]
	}
	return strings.ToLower(strings.TrimSpace(mimeType))
}
