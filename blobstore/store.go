package blobstore

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations must return an error that satisfies
// errors.Is(err, ErrNotFound).
var ErrNotFound = errors.New("blobstore: blob not found")

// Store reads and writes named snapshot blobs.
//
// Create is the streaming write path: the returned writer commits the
// blob on Close and reports any upload error there. Put is the
// convenience path for payloads already in memory; it must be atomic
// (readers never observe a partial blob).
type Store interface {
	// Open opens a blob for sequential reading.
	Open(ctx context.Context, name string) (io.ReadCloser, error)

	// Create opens a blob for streaming writes. The blob becomes
	// visible on Close.
	Create(ctx context.Context, name string) (io.WriteCloser, error)

	// Put writes a blob atomically.
	Put(ctx context.Context, name string, data []byte) error

	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the names of all blobs with the given prefix,
	// sorted.
	List(ctx context.Context, prefix string) ([]string, error)
}
