package aggregate

import (
	"fmt"
	"path/filepath"
	"strings"
)

// fallbackBase is used when an item carries no original filename.
const fallbackBase = "file"

// BaseName returns the original filename without its extension, or the
// fallback token when there is no usable name.
func BaseName(originalName string) string {
	name := filepath.Base(strings.TrimSpace(originalName))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return fallbackBase
	}
	base := strings.TrimSuffix(name, filepath.Ext(name))
	if base == "" {
		return fallbackBase
	}
	return base
}

// DocumentFilename derives the attachment name of a translated document,
// keeping the original extension.
func DocumentFilename(originalName, targetLang string) string {
	return fmt.Sprintf("%s_%s_translations%s", BaseName(originalName), targetLang, filepath.Ext(originalName))
}

// TextFilename derives the attachment name of an item rendered as text
// (OCR'd images and combined-mode documents).
func TextFilename(originalName, targetLang string) string {
	return fmt.Sprintf("%s_%s_translations.txt", BaseName(originalName), targetLang)
}

// ErrorFilename names the archive sibling entry carrying an item's error
// message.
func ErrorFilename(originalName string) string {
	return BaseName(originalName) + "_error.txt"
}

// CombinedFilename names the single text document of combined mode.
// imagesOnly distinguishes the combine-images trigger from combine-all.
func CombinedFilename(targetLang string, imagesOnly bool) string {
	if imagesOnly {
		return fmt.Sprintf("images_%s_translations.txt", targetLang)
	}
	return fmt.Sprintf("combined_%s_translations.txt", targetLang)
}
