// Package storage contains object storage abstractions for uploaded document files,
// with an S3-compatible driver (MinIO) and a local directory driver.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"docanalytics/internal/config"
)

const (
	DriverMinIO = "minio"
	DriverLocal = "local"
)

// ErrObjectNotFound is returned by Get when no object exists under the key.
var ErrObjectNotFound = errors.New("object not found")

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known; if unknown, set to -1 and the implementation
// will buffer/chunk as supported by the backend.
// ContentType and Metadata are optional.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about an object in storage.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is an object storage client interface.
// Methods use context and streaming readers.
type Storage interface {
	// Put uploads an object under the given key using the provided reader and options.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get retrieves an object's content as a streaming reader alongside its info.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Delete removes an object by key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// New builds the driver selected by cfg.Driver.
func New(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (Storage, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch cfg.Driver {
	case DriverMinIO, "":
		s, err := NewMinIO(ctx, cfg.MinIO)
		if err != nil {
			return nil, err
		}
		logger.Info("storage ready", zap.String("driver", DriverMinIO), zap.String("bucket", cfg.MinIO.Bucket))
		return s, nil
	case DriverLocal:
		s, err := NewLocal(cfg.LocalDir)
		if err != nil {
			return nil, err
		}
		logger.Info("storage ready", zap.String("driver", DriverLocal), zap.String("dir", cfg.LocalDir))
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
