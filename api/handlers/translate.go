package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jchen042/batch-translator/internal/models"
	"github.com/jchen042/batch-translator/internal/service/batch"
	"github.com/jchen042/batch-translator/pkg/logger"
)

type TranslateHandler struct {
	service batch.BatchTranslator
	logger  logger.Logger
}

// ErrorResponse is the JSON body of a failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func NewTranslateHandler(service batch.BatchTranslator, logger logger.Logger) *TranslateHandler {
	return &TranslateHandler{
		service: service,
		logger:  logger,
	}
}

// TranslateBatch accepts a multipart batch of documents and images and
// responds with a single attachment, a zip archive, or a combined text
// document depending on item count and mode flags.
func (h *TranslateHandler) TranslateBatch(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		h.handleError(c, http.StatusBadRequest, "Invalid form data", err)
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		h.handleError(c, http.StatusBadRequest, "No files provided", nil)
		return
	}

	items, err := readItems(files)
	if err != nil {
		h.handleError(c, http.StatusBadRequest, "Failed to read uploads", err)
		return
	}

	req := &models.BatchRequest{
		Items:              items,
		TargetLang:         c.PostForm("targetLang"),
		SourceLang:         c.PostForm("sourceLang"),
		CombineImages:      formBool(c, "combineImages"),
		CombineAllToTxt:    formBool(c, "combineAllToTxt"),
		BetweenBlocksLines: formInt(c, "betweenBlocksLines"),
		Params: models.DocumentParams{
			NativePDFOnly:   formBool(c, "nativePdfOnly"),
			RemoveShadow:    formBool(c, "removeShadow"),
			CorrectRotation: formBool(c, "correctRotation"),
		},
	}

	resp, err := h.service.TranslateBatch(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, statusFor(err), "Failed to translate batch", err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", resp.Filename))
	c.Data(http.StatusOK, resp.ContentType, resp.Content)
}

// ConvertDocument accepts a single PDF and returns its translation as DOCX.
func (h *TranslateHandler) ConvertDocument(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		h.handleError(c, http.StatusBadRequest, "Invalid file upload", err)
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		h.handleError(c, http.StatusBadRequest, "Failed to read upload", err)
		return
	}

	item := models.BatchItem{
		OriginalName: header.Filename,
		Content:      content,
		DeclaredMime: header.Header.Get("Content-Type"),
	}

	resp, err := h.service.ConvertDocument(c.Request.Context(), item, c.PostForm("sourceLang"), c.PostForm("targetLang"))
	if err != nil {
		h.handleError(c, statusFor(err), "Failed to convert document", err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", resp.Filename))
	c.Data(http.StatusOK, resp.ContentType, resp.Content)
}

func readItems(files []*multipart.FileHeader) ([]models.BatchItem, error) {
	items := make([]models.BatchItem, 0, len(files))
	for _, header := range files {
		f, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", header.Filename, err)
		}

		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", header.Filename, err)
		}

		items = append(items, models.BatchItem{
			OriginalName: header.Filename,
			Content:      content,
			DeclaredMime: header.Header.Get("Content-Type"),
		})
	}
	return items, nil
}

func formBool(c *gin.Context, key string) bool {
	v, _ := strconv.ParseBool(c.PostForm(key))
	return v
}

func formInt(c *gin.Context, key string) int {
	v, _ := strconv.Atoi(c.PostForm(key))
	return v
}

// statusFor maps the error taxonomy onto HTTP statuses. NoTextDetected gets
// its own status so callers can tell "no text found" from a server fault.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidArgument),
		errors.Is(err, models.ErrUnsupportedMime),
		errors.Is(err, models.ErrMalformedDocument):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrNoTextDetected):
		return http.StatusUnprocessableEntity
	case errors.Is(err, models.ErrTranslationService),
		errors.Is(err, models.ErrOCRService),
		errors.Is(err, models.ErrStorage):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (h *TranslateHandler) handleError(c *gin.Context, status int, message string, err error) {
	h.logger.Error(message,
		logger.String("path", c.Request.URL.Path),
		logger.Error(err),
	)

	response := ErrorResponse{
		Message: message,
	}
	if err != nil {
		response.Error = err.Error()
	}

	c.JSON(status, response)
}
