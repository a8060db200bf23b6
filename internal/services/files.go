package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/carevault/apiserver/internal/storage"
	"go.uber.org/zap"
)

// ObjectStore is satisfied by *storage.Storage.
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// Upload is a file received from a multipart form.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// File is an opened stored object ready to be streamed back.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.ReadCloser
}

func putUpload(ctx context.Context, files ObjectStore, prefix string, upload *Upload) (string, error) {
	if upload == nil || upload.Body == nil || upload.Size == 0 {
		return "", invalid("file is required")
	}
	key, err := storage.NewKey(prefix, upload.Filename)
	if err != nil {
		return "", err
	}
	if err := files.Put(ctx, key, upload.Body, upload.Size, upload.ContentType); err != nil {
		return "", fmt.Errorf("store file: %w", err)
	}
	return key, nil
}

// discard removes an object whose metadata row was never written.
func discard(ctx context.Context, files ObjectStore, logger *zap.Logger, key string) {
	if err := files.Delete(context.WithoutCancel(ctx), key); err != nil {
		logger.Warn("remove orphaned upload", zap.String("key", key), zap.Error(err))
	}
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
