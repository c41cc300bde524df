package storage

import (
	"context"
)

// Storage is the object store used to stage input and collect output for
// asynchronous batch conversion jobs. Objects are addressed by key within a
// single configured bucket.
type Storage interface {
	// Write stores content under key.
	Write(ctx context.Context, key string, content []byte) error
	// Read returns the content stored under key.
	Read(ctx context.Context, key string) ([]byte, error)
	// List returns the keys of all objects under prefix.
	List(ctx context.Context, prefix string) ([]string, error)
	// Delete removes the object stored under key.
	Delete(ctx context.Context, key string) error
	// URI returns the fully qualified location of key, in the form the
	// batch translation job expects.
	URI(key string) string
}
