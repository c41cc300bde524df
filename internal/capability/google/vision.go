package google

import (
	"context"
	"fmt"

	vision "cloud.google.com/go/vision/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"

	"github.com/jchen042/batch-translator/internal/models"
	"github.com/jchen042/batch-translator/pkg/logger"
)

// VisionClient implements capability.TextDetector on the Cloud Vision image
// annotator.
type VisionClient struct {
	client *vision.ImageAnnotatorClient
	logger logger.Logger
}

func NewVisionClient(ctx context.Context, cfg Config, log logger.Logger) (*VisionClient, error) {
	client, err := vision.NewImageAnnotatorClient(ctx, cfg.clientOptions()...)
	if err != nil {
		return nil, fmt.Errorf("failed to create vision client: %w", err)
	}

	return &VisionClient{
		client: client,
		logger: log.Named("vision"),
	}, nil
}

func (c *VisionClient) DetectDocumentText(ctx context.Context, image []byte) (string, error) {
	annotation, err := c.client.DetectDocumentText(ctx, &visionpb.Image{Content: image}, nil)
	if err != nil {
		return "", serviceError(models.ErrOCRService, err)
	}
	if annotation == nil {
		return "", nil
	}
	return annotation.GetText(), nil
}

func (c *VisionClient) DetectText(ctx context.Context, image []byte) (string, error) {
	annotations, err := c.client.DetectTexts(ctx, &visionpb.Image{Content: image}, nil, 1)
	if err != nil {
		return "", serviceError(models.ErrOCRService, err)
	}
	if len(annotations) == 0 {
		return "", nil
	}
	// The first annotation spans the whole detected block.
	return annotations[0].GetDescription(), nil
}

func (c *VisionClient) Close() error {
	return c.client.Close()
}
