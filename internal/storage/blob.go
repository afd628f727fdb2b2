package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

// BlobStore is a flat key-value store holding opaque payloads.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}
