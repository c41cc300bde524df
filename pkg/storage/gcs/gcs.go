package gcs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	"github.com/jchen042/batch-translator/internal/models"
	"github.com/jchen042/batch-translator/pkg/logger"
)

// GCSStorage stages conversion objects in a Google Cloud Storage bucket.
type GCSStorage struct {
	client *storage.Client
	bucket string
	logger logger.Logger
}

func NewGCSStorage(ctx context.Context, bucket string, log logger.Logger) (*GCSStorage, error) {
	if bucket == "" {
		return nil, fmt.Errorf("%w: conversion bucket is required", models.ErrInvalidArgument)
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	return &GCSStorage{
		client: client,
		bucket: bucket,
		logger: log.Named("gcs"),
	}, nil
}

// Write implements Storage.Write
func (s *GCSStorage) Write(ctx context.Context, key string, content []byte) error {
	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	if _, err := io.Copy(w, bytes.NewReader(content)); err != nil {
		_ = w.Close()
		s.logger.Error("Failed to write object",
			logger.String("bucket", s.bucket),
			logger.String("key", key),
			logger.Error(err),
		)
		return fmt.Errorf("%w: write %s: %v", models.ErrStorage, key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("%w: finalize %s: %v", models.ErrStorage, key, err)
	}
	return nil
}

// Read implements Storage.Read
func (s *GCSStorage) Read(ctx context.Context, key string) ([]byte, error) {
	r, err := s.client.Bucket(s.bucket).Object(key).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", models.ErrStorage, key, err)
	}
	defer r.Close()

	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", models.ErrStorage, key, err)
	}
	return content, nil
}

// List implements Storage.List
func (s *GCSStorage) List(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	it := s.client.Bucket(s.bucket).Objects(ctx, &storage.Query{Prefix: prefix})
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: list %s: %v", models.ErrStorage, prefix, err)
		}
		keys = append(keys, attrs.Name)
	}
	return keys, nil
}

// Delete implements Storage.Delete
func (s *GCSStorage) Delete(ctx context.Context, key string) error {
	if err := s.client.Bucket(s.bucket).Object(key).Delete(ctx); err != nil {
		return fmt.Errorf("%w: delete %s: %v", models.ErrStorage, key, err)
	}
	return nil
}

// URI implements Storage.URI
func (s *GCSStorage) URI(key string) string {
	return fmt.Sprintf("gs://%s/%s", s.bucket, key)
}

func (s *GCSStorage) Close() error {
	return s.client.Close()
}
