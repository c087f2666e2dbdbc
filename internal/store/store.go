package store

import "errors"

// ErrNotFound is returned by Get for a key that was never put.
var ErrNotFound = errors.New("key not found")

// Store is a minimal key-addressed blob store. Put is atomic from the
// caller's perspective: a Get after a Put in the same process returns
// exactly the bytes written.
type Store interface {
	Put(key string, payload []byte) error
	Get(key string) ([]byte, error)
	Close() error
}
