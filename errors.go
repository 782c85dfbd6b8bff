package webmesh

import (
	"errors"

	"github.com/particleforge/webmesh/knn"
)

var (
	// ErrInvalidK is returned when the configured k is not positive.
	// Aliased from the knn package so callers can match either.
	ErrInvalidK = knn.ErrInvalidK

	// ErrEmptyPointCloud is returned when an update carries no points.
	ErrEmptyPointCloud = knn.ErrEmptyPointCloud

	// ErrBufferNotFound is returned when a named web does not exist.
	ErrBufferNotFound = errors.New("buffer not found")
)
