// Package kv is the persistence port for the record store: a string
// key-value store holding the serialized record collections. Backends are
// a SQLite table for durable deployments and an in-memory map for tests
// and throwaway runs.
package kv

import "context"

type Store interface {
	// Get returns the stored value for key. ok is false when the key has
	// never been written.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Put writes the full value for key, replacing any previous value.
	Put(ctx context.Context, key, value string) error
}
