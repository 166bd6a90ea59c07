package storage

import (
	"context"
	"errors"
)

// BlobStore is the durable key-value store the adapter persists through.
// Values are opaque JSON blobs; whole collections are written at once.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)

	Set(ctx context.Context, key string, value []byte) error

	Remove(ctx context.Context, key string) error

	Clear(ctx context.Context) error
}

var ErrKeyNotFound = errors.New("key not found")
