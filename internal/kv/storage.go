// Package kv is the persistent key-value layer under the credential and task
// stores. Values are opaque byte slices; the stores keep whole JSON
// collections under a handful of well-known keys.
//
// Drivers: in-process memory, SQLite, PostgreSQL and S3-compatible object
// storage. Use Open to build one from Config, and WithNamespace to isolate
// profiles sharing a backend.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by driver internals for a missing key. Storage.Get
// reports a missing key as (nil, nil) instead.
var ErrNotFound = errors.New("kv: key not found")

// ErrInvalidNamespace rejects namespaces that could address keys of
// another namespace.
var ErrInvalidNamespace = errors.New("kv: invalid namespace")

// Storage is the contract every driver implements. Implementations must be
// safe for concurrent use.
type Storage interface {
	// Get returns the value under key, or (nil, nil) when absent.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set creates or overwrites the value under key.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
