package storage

import (
	"context"
	"io"
)

// ObjectStorage is the subset of object-store operations the uploads need.
type ObjectStorage interface {
	EnsureBucket(ctx context.Context) error
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	// URL is the public address clients use to fetch key.
	URL(key string) string
	Bucket() string
}
