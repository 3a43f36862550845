package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/noah-isme/gym-management-api/pkg/config"
)

// ErrInvalidKey is returned for object keys that escape the storage root.
var ErrInvalidKey = errors.New("storage: invalid object key")

// Store persists uploaded files under slash separated keys.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
}

// New builds the Store selected by cfg.Upload.Driver.
func New(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.Upload.Driver {
	case "", config.StorageLocal:
		return NewLocalStorage(cfg.Upload.Dir)
	case config.StorageS3:
		return NewS3Storage(ctx, cfg.S3)
	case config.StorageMinio:
		client, err := NewMinioClient(cfg.Minio)
		if err != nil {
			return nil, err
		}
		return NewMinioStorage(ctx, client, cfg.Minio.Bucket, cfg.Minio.Region)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Upload.Driver)
	}
}

// CleanKey normalises a key and rejects absolute or parent-relative paths.
func CleanKey(key string) (string, error) {
	key = strings.TrimSpace(strings.ReplaceAll(key, "\\", "/"))
	if key == "" || strings.HasPrefix(key, "/") {
		return "", ErrInvalidKey
	}
	cleaned := path.Clean(key)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", ErrInvalidKey
	}
	return cleaned, nil
}
