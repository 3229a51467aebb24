// Package storage provides the key-value persistence layer. Repositories
// depend only on the Store interface so backends can be swapped without
// touching call sites: the default backend keeps one JSON document per key
// on disk, the sqlite backend keeps the same documents in an embedded
// database.
package storage

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get when the key has no value
var ErrKeyNotFound = errors.New("storage: key not found")

// Store is a bucketed key-value store. Put replaces the value atomically:
// a concurrent Get never observes a partially written value.
type Store interface {
	// Get returns the value for key, or ErrKeyNotFound
	Get(ctx context.Context, bucket, key string) ([]byte, error)

	// Put writes the value for key, replacing any prior value atomically
	Put(ctx context.Context, bucket, key string, value []byte) error

	// Delete removes the key, reporting whether it existed
	Delete(ctx context.Context, bucket, key string) (bool, error)

	// List returns all keys in the bucket; an absent bucket is empty
	List(ctx context.Context, bucket string) ([]string, error)

	// Close releases backend resources
	Close() error
}
