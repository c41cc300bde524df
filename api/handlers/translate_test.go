package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jchen042/batch-translator/internal/models"
	"github.com/jchen042/batch-translator/pkg/aggregate"
	"github.com/jchen042/batch-translator/pkg/logger"
)

// fakeService records the request it received and returns a scripted
// response or error.
type fakeService struct {
	lastBatch  *models.BatchRequest
	lastItem   models.BatchItem
	lastSource string
	lastTarget string
	response   *aggregate.Response
	err        error
}

func (f *fakeService) TranslateBatch(_ context.Context, req *models.BatchRequest) (*aggregate.Response, error) {
	f.lastBatch = req
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

func (f *fakeService) ConvertDocument(_ context.Context, item models.BatchItem, sourceLang, targetLang string) (*aggregate.Response, error) {
	f.lastItem = item
	f.lastSource = sourceLang
	f.lastTarget = targetLang
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

func newTestRouter(svc *fakeService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewTranslateHandler(svc, logger.NewTestLogger())
	r := gin.New()
	r.POST("/api/v1/translate/batch", h.TranslateBatch)
	r.POST("/api/v1/translate/convert", h.ConvertDocument)
	return r
}

type filePart struct {
	field, name, mime string
	content           []byte
}

func multipartBody(t *testing.T, fields map[string]string, files ...filePart) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, mw.WriteField(key, value))
	}
	for _, f := range files {
		hdr := make(map[string][]string)
		hdr["Content-Disposition"] = []string{fmt.Sprintf(`form-data; name=%q; filename=%q`, f.field, f.name)}
		hdr["Content-Type"] = []string{f.mime}
		w, err := mw.CreatePart(hdr)
		require.NoError(t, err)
		_, err = w.Write(f.content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestTranslateBatchSuccess(t *testing.T) {
	svc := &fakeService{response: &aggregate.Response{
		Content:     []byte("zip bytes"),
		ContentType: "application/zip",
		Filename:    "translations_de.zip",
	}}
	router := newTestRouter(svc)

	body, contentType := multipartBody(t,
		map[string]string{
			"targetLang":         "de",
			"sourceLang":         "en",
			"combineAllToTxt":    "true",
			"betweenBlocksLines": "2",
			"nativePdfOnly":      "true",
		},
		filePart{"files", "a.pdf", "application/pdf", []byte("pdf1")},
		filePart{"files", "b.png", "image/png", []byte("png1")},
	)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/translate/batch", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "zip bytes", w.Body.String())
	assert.Equal(t, "application/zip", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="translations_de.zip"`, w.Header().Get("Content-Disposition"))

	require.NotNil(t, svc.lastBatch)
	assert.Equal(t, "de", svc.lastBatch.TargetLang)
	assert.Equal(t, "en", svc.lastBatch.SourceLang)
	assert.True(t, svc.lastBatch.CombineAllToTxt)
	assert.False(t, svc.lastBatch.CombineImages)
	assert.Equal(t, 2, svc.lastBatch.BetweenBlocksLines)
	assert.True(t, svc.lastBatch.Params.NativePDFOnly)
	assert.False(t, svc.lastBatch.Params.RemoveShadow)

	require.Len(t, svc.lastBatch.Items, 2)
	assert.Equal(t, "a.pdf", svc.lastBatch.Items[0].OriginalName)
	assert.Equal(t, "application/pdf", svc.lastBatch.Items[0].DeclaredMime)
	assert.Equal(t, []byte("pdf1"), svc.lastBatch.Items[0].Content)
	assert.Equal(t, "b.png", svc.lastBatch.Items[1].OriginalName)
}

func TestTranslateBatchNoFiles(t *testing.T) {
	router := newTestRouter(&fakeService{})

	body, contentType := multipartBody(t, map[string]string{"targetLang": "de"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/translate/batch", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No files provided")
}

func TestTranslateBatchErrorStatuses(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid argument", fmt.Errorf("%w: target language is required", models.ErrInvalidArgument), http.StatusBadRequest},
		{"unsupported mime", fmt.Errorf("%w: text/html", models.ErrUnsupportedMime), http.StatusBadRequest},
		{"malformed document", fmt.Errorf("%w: bad xref", models.ErrMalformedDocument), http.StatusBadRequest},
		{"no text detected", fmt.Errorf("%w: blank.png", models.ErrNoTextDetected), http.StatusUnprocessableEntity},
		{"translation service", fmt.Errorf("%w: unavailable", models.ErrTranslationService), http.StatusBadGateway},
		{"ocr service", fmt.Errorf("%w: unavailable", models.ErrOCRService), http.StatusBadGateway},
		{"storage", fmt.Errorf("%w: write failed", models.ErrStorage), http.StatusBadGateway},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&fakeService{err: tt.err})

			body, contentType := multipartBody(t,
				map[string]string{"targetLang": "de"},
				filePart{"files", "a.pdf", "application/pdf", []byte("x")},
			)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/translate/batch", body)
			req.Header.Set("Content-Type", contentType)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
			assert.Contains(t, w.Body.String(), "Failed to translate batch")
		})
	}
}

func TestConvertDocumentSuccess(t *testing.T) {
	svc := &fakeService{response: &aggregate.Response{
		Content:     []byte("docx bytes"),
		ContentType: models.MimeDOCX,
		Filename:    "report_de_translations.docx",
	}}
	router := newTestRouter(svc)

	body, contentType := multipartBody(t,
		map[string]string{"sourceLang": "en", "targetLang": "de"},
		filePart{"file", "report.pdf", "application/pdf", []byte("pdf bytes")},
	)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/translate/convert", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "docx bytes", w.Body.String())
	assert.Equal(t, `attachment; filename="report_de_translations.docx"`, w.Header().Get("Content-Disposition"))

	assert.Equal(t, "report.pdf", svc.lastItem.OriginalName)
	assert.Equal(t, "en", svc.lastSource)
	assert.Equal(t, "de", svc.lastTarget)
}

func TestConvertDocumentMissingFile(t *testing.T) {
	router := newTestRouter(&fakeService{})

	body, contentType := multipartBody(t, map[string]string{"targetLang": "de"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/translate/convert", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
