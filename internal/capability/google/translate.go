package google

import (
	"context"
	"fmt"

	translate "cloud.google.com/go/translate/apiv3"
	"cloud.google.com/go/translate/apiv3/translatepb"
	"google.golang.org/api/option"
	"google.golang.org/grpc/status"

	"github.com/jchen042/batch-translator/internal/capability"
	"github.com/jchen042/batch-translator/internal/models"
	"github.com/jchen042/batch-translator/pkg/logger"
)

// Config identifies the Google Cloud project the capability clients bill to.
type Config struct {
	ProjectID       string
	Location        string
	CredentialsFile string
}

func (c Config) clientOptions() []option.ClientOption {
	var opts []option.ClientOption
	if c.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(c.CredentialsFile))
	}
	return opts
}

func (c Config) parent() string {
	return fmt.Sprintf("projects/%s/locations/%s", c.ProjectID, c.Location)
}

// TranslationClient implements capability.DocumentTranslator on Cloud
// Translation v3.
type TranslationClient struct {
	client *translate.TranslationClient
	cfg    Config
	logger logger.Logger
}

func NewTranslationClient(ctx context.Context, cfg Config, log logger.Logger) (*TranslationClient, error) {
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("%w: project id is required", models.ErrInvalidArgument)
	}
	if cfg.Location == "" {
		cfg.Location = "us-central1"
	}

	client, err := translate.NewTranslationClient(ctx, cfg.clientOptions()...)
	if err != nil {
		return nil, fmt.Errorf("failed to create translation client: %w", err)
	}

	return &TranslationClient{
		client: client,
		cfg:    cfg,
		logger: log.Named("translate"),
	}, nil
}

func (c *TranslationClient) TranslateDocument(ctx context.Context, req *capability.DocumentRequest) (*capability.DocumentResult, error) {
	resp, err := c.client.TranslateDocument(ctx, &translatepb.TranslateDocumentRequest{
		Parent:             c.cfg.parent(),
		SourceLanguageCode: req.SourceLang,
		TargetLanguageCode: req.TargetLang,
		DocumentInputConfig: &translatepb.DocumentInputConfig{
			Source:   &translatepb.DocumentInputConfig_Content{Content: req.Content},
			MimeType: req.MimeType,
		},
		IsTranslateNativePdfOnly:     req.Params.NativePDFOnly,
		EnableShadowRemovalNativePdf: req.Params.RemoveShadow,
		EnableRotationCorrection:     req.Params.CorrectRotation,
	})
	if err != nil {
		return nil, serviceError(models.ErrTranslationService, err)
	}

	doc := resp.GetDocumentTranslation()
	if doc == nil || len(doc.GetByteStreamOutputs()) == 0 {
		return nil, fmt.Errorf("%w: empty document translation payload", models.ErrTranslationService)
	}

	mimeType := doc.GetMimeType()
	if mimeType == "" {
		mimeType = req.MimeType
	}

	return &capability.DocumentResult{
		Content:          doc.GetByteStreamOutputs()[0],
		MimeType:         mimeType,
		DetectedLanguage: doc.GetDetectedLanguageCode(),
	}, nil
}

func (c *TranslationClient) TranslateText(ctx context.Context, text, sourceLang, targetLang string) (*capability.TextResult, error) {
	resp, err := c.client.TranslateText(ctx, &translatepb.TranslateTextRequest{
		Parent:             c.cfg.parent(),
		Contents:           []string{text},
		MimeType:           "text/plain",
		SourceLanguageCode: sourceLang,
		TargetLanguageCode: targetLang,
	})
	if err != nil {
		return nil, serviceError(models.ErrTranslationService, err)
	}

	translations := resp.GetTranslations()
	if len(translations) == 0 {
		return nil, fmt.Errorf("%w: empty text translation payload", models.ErrTranslationService)
	}

	return &capability.TextResult{
		Text:             translations[0].GetTranslatedText(),
		DetectedLanguage: translations[0].GetDetectedLanguageCode(),
	}, nil
}

func (c *TranslationClient) ConvertDocument(ctx context.Context, req *capability.ConvertRequest) error {
	op, err := c.client.BatchTranslateDocument(ctx, &translatepb.BatchTranslateDocumentRequest{
		Parent:              c.cfg.parent(),
		SourceLanguageCode:  req.SourceLang,
		TargetLanguageCodes: []string{req.TargetLang},
		InputConfigs: []*translatepb.BatchDocumentInputConfig{{
			Source: &translatepb.BatchDocumentInputConfig_GcsSource{
				GcsSource: &translatepb.GcsSource{InputUri: req.InputURI},
			},
		}},
		OutputConfig: &translatepb.BatchDocumentOutputConfig{
			Destination: &translatepb.BatchDocumentOutputConfig_GcsDestination{
				GcsDestination: &translatepb.GcsDestination{OutputUriPrefix: req.OutputURIPrefix},
			},
		},
	})
	if err != nil {
		return serviceError(models.ErrTranslationService, err)
	}

	c.logger.Info("Batch conversion job started",
		logger.String("inputUri", req.InputURI),
	)

	if _, err := op.Wait(ctx); err != nil {
		return serviceError(models.ErrTranslationService, err)
	}
	return nil
}

func (c *TranslationClient) Close() error {
	return c.client.Close()
}

// serviceError maps a capability call error onto the taxonomy, keeping the
// gRPC status message for the caller-facing text.
func serviceError(kind error, err error) error {
	if s, ok := status.FromError(err); ok {
		return fmt.Errorf("%w: %s: %s", kind, s.Code(), s.Message())
	}
	return fmt.Errorf("%w: %v", kind, err)
}
