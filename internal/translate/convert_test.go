package translate

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jchen042/batch-translator/internal/capability"
	"github.com/jchen042/batch-translator/internal/models"
	"github.com/jchen042/batch-translator/internal/testpdf"
	"github.com/jchen042/batch-translator/pkg/logger"
)

// memStore is an in-memory Storage keyed like a bucket.
type memStore struct {
	objects map[string][]byte
	deleted []string
}

func newMemStore() *memStore {
	return &memStore{objects: map[string][]byte{}}
}

func (m *memStore) Write(_ context.Context, key string, content []byte) error {
	m.objects[key] = content
	return nil
}

func (m *memStore) Read(_ context.Context, key string) ([]byte, error) {
	content, ok := m.objects[key]
	if !ok {
		return nil, errors.New("object not found: " + key)
	}
	return content, nil
}

func (m *memStore) List(_ context.Context, prefix string) ([]string, error) {
	var keys []string
	for key := range m.objects {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	delete(m.objects, key)
	m.deleted = append(m.deleted, key)
	return nil
}

func (m *memStore) URI(key string) string {
	return "gs://test-bucket/" + key
}

// convertingTranslator simulates the batch job by dropping a DOCX object
// under the requested output prefix.
type convertingTranslator struct {
	fakeTranslator
	store   *memStore
	lastReq *capability.ConvertRequest
	fail    error
}

func (c *convertingTranslator) ConvertDocument(ctx context.Context, req *capability.ConvertRequest) error {
	c.lastReq = req
	if c.fail != nil {
		return c.fail
	}
	prefix := strings.TrimPrefix(req.OutputURIPrefix, "gs://test-bucket/")
	c.store.objects[prefix+"index.csv"] = []byte("index")
	c.store.objects[prefix+"source_de_translations.docx"] = []byte("docx bytes")
	return nil
}

func TestConvertHappyPath(t *testing.T) {
	store := newMemStore()
	fake := &convertingTranslator{store: store}
	converter := NewConverter(fake, store, logger.NewTestLogger())

	doc := models.Document{Content: testpdf.MinimalDoc(3), MimeType: models.MimePDF}
	res, err := converter.Convert(context.Background(), doc, "en", "de")
	require.NoError(t, err)

	assert.Equal(t, []byte("docx bytes"), res.Content)
	assert.Equal(t, models.MimeDOCX, res.MimeType)

	require.NotNil(t, fake.lastReq)
	assert.Equal(t, "en", fake.lastReq.SourceLang)
	assert.Equal(t, "de", fake.lastReq.TargetLang)
	assert.Equal(t, models.MimePDF, fake.lastReq.InputMimeType)
	assert.True(t, strings.HasPrefix(fake.lastReq.InputURI, "gs://test-bucket/staging/"))
	assert.True(t, strings.HasSuffix(fake.lastReq.InputURI, "/source.pdf"))

	assert.Empty(t, store.objects, "staged objects removed after the job")
}

func TestConvertCleansUpOnJobFailure(t *testing.T) {
	store := newMemStore()
	jobErr := errors.New("operation failed")
	fake := &convertingTranslator{store: store, fail: jobErr}
	converter := NewConverter(fake, store, logger.NewTestLogger())

	doc := models.Document{Content: testpdf.MinimalDoc(1), MimeType: models.MimePDF}
	_, err := converter.Convert(context.Background(), doc, "en", "de")
	assert.ErrorIs(t, err, jobErr)
	assert.Empty(t, store.objects, "staged input removed even when the job fails")
}

func TestConvertRequiresSourceLanguage(t *testing.T) {
	store := newMemStore()
	converter := NewConverter(&convertingTranslator{store: store}, store, logger.NewTestLogger())

	doc := models.Document{Content: testpdf.MinimalDoc(1), MimeType: models.MimePDF}
	_, err := converter.Convert(context.Background(), doc, "", "de")
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
	assert.Empty(t, store.objects)
}

func TestConvertRejectsNonPDF(t *testing.T) {
	store := newMemStore()
	converter := NewConverter(&convertingTranslator{store: store}, store, logger.NewTestLogger())

	doc := models.Document{Content: []byte("plain"), MimeType: models.MimeDOCX}
	_, err := converter.Convert(context.Background(), doc, "en", "de")
	assert.ErrorIs(t, err, models.ErrUnsupportedMime)
}

func TestConvertRejectsMalformedPDF(t *testing.T) {
	store := newMemStore()
	converter := NewConverter(&convertingTranslator{store: store}, store, logger.NewTestLogger())

	doc := models.Document{Content: []byte("%PDF-broken"), MimeType: models.MimePDF}
	_, err := converter.Convert(context.Background(), doc, "en", "de")
	assert.ErrorIs(t, err, models.ErrMalformedDocument)
	assert.Empty(t, store.objects, "nothing staged for an unparseable input")
}

func TestConvertNoOutputProduced(t *testing.T) {
	store := newMemStore()
	// The job succeeds but drops only the index, not the docx.
	converter := NewConverter(translatorFunc(func(_ context.Context, req *capability.ConvertRequest) error {
		prefix := strings.TrimPrefix(req.OutputURIPrefix, "gs://test-bucket/")
		store.objects[prefix+"index.csv"] = []byte("index")
		return nil
	}), store, logger.NewTestLogger())

	doc := models.Document{Content: testpdf.MinimalDoc(1), MimeType: models.MimePDF}
	_, err := converter.Convert(context.Background(), doc, "en", "de")
	assert.ErrorIs(t, err, models.ErrTranslationService)
	assert.Empty(t, store.objects)
}

// translatorFunc adapts a ConvertDocument func to the DocumentTranslator
// interface for single-purpose fakes.
type translatorFunc func(ctx context.Context, req *capability.ConvertRequest) error

func (f translatorFunc) TranslateDocument(context.Context, *capability.DocumentRequest) (*capability.DocumentResult, error) {
	return nil, errors.New("not scripted")
}

func (f translatorFunc) TranslateText(context.Context, string, string, string) (*capability.TextResult, error) {
	return nil, errors.New("not scripted")
}

func (f translatorFunc) ConvertDocument(ctx context.Context, req *capability.ConvertRequest) error {
	return f(ctx, req)
}
