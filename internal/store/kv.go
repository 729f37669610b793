package store

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when a key holds no value.
	ErrNotFound = errors.New("key not found")
	// ErrCorrupt is returned when the backing document cannot be parsed.
	// Writes replace a corrupt document.
	ErrCorrupt = errors.New("store document is corrupt")
)

// KV is the persistence port behind favorites. Values are opaque bytes.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
