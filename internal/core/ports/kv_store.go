package ports

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by KVStore.Get for absent keys.
var ErrKeyNotFound = errors.New("key not found")

// KVStore is the storage port behind the learning-state service. Writes are
// last-write-wins; the store provides no merging or optimistic concurrency.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
