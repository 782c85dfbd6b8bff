// Package knn computes k-nearest-neighbor tables over 3D point clouds.
//
// The exact finder evaluates all pairwise distances and is unsuitable
// beyond roughly one thousand points; the approximate finder builds a
// throwaway HNSW index per call and trades exactness for sub-quadratic
// throughput.
package knn

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/particleforge/webmesh/distance"
	"github.com/particleforge/webmesh/geom"
)

var (
	// ErrEmptyPointCloud is returned when no points are supplied.
	ErrEmptyPointCloud = errors.New("empty point cloud")

	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = errors.New("k must be positive")

	// ErrIndexUnavailable is returned when an approximate index was
	// requested but could not be constructed. Find never surfaces it;
	// it falls back to the exact finder instead.
	ErrIndexUnavailable = errors.New("approximate index unavailable")
)

// Table is an N×k matrix of point indices. Row i holds point i's k
// nearest neighbors in ascending distance order, with row[i][0] == i
// (every point is its own nearest neighbor).
type Table [][]uint32

// K returns the number of neighbors per row, self included.
func (t Table) K() int {
	if len(t) == 0 {
		return 0
	}
	return len(t[0])
}

// Validate checks the table invariants against a point count: uniform
// row width, indices within [0,n) and self-inclusion at column 0.
func (t Table) Validate(n int) error {
	if len(t) != n {
		return &ErrTableShape{Reason: fmt.Sprintf("%d rows for %d points", len(t), n)}
	}
	k := t.K()
	for i, row := range t {
		if len(row) != k {
			return &ErrTableShape{Row: i, Reason: fmt.Sprintf("row width %d, expected %d", len(row), k)}
		}
		if len(row) == 0 {
			return &ErrTableShape{Row: i, Reason: "empty row, column 0 must hold the self reference"}
		}
		if row[0] != uint32(i) {
			return &ErrTableShape{Row: i, Reason: fmt.Sprintf("column 0 is %d, expected self", row[0])}
		}
		for _, idx := range row {
			if int(idx) >= n {
				return &ErrTableShape{Row: i, Reason: fmt.Sprintf("index %d out of range [0,%d)", idx, n)}
			}
		}
	}
	return nil
}

// ErrTableShape indicates a malformed neighbor table.
type ErrTableShape struct {
	Row    int
	Reason string
}

func (e *ErrTableShape) Error() string {
	return fmt.Sprintf("malformed neighbor table (row %d): %s", e.Row, e.Reason)
}

// Options contains configuration options for neighbor finding.
type Options struct {
	// Metric selects the pairwise distance function.
	Metric distance.Metric

	// Approximate selects the HNSW-backed finder instead of the exact
	// brute-force one.
	Approximate bool

	// Parallelism bounds the number of rows computed concurrently by
	// the exact finder. Values <= 1 keep the computation sequential.
	// Parallelism never escapes a single Find call.
	Parallelism int

	// Logger receives warnings (k clamping, approximate fallback).
	// Nil disables logging.
	Logger *slog.Logger
}

// DefaultOptions contains the default configuration options.
var DefaultOptions = Options{
	Metric:      distance.MetricEuclidean,
	Approximate: false,
	Parallelism: 1,
}

// Find returns the neighbor table for the given points.
//
// k counts the point itself: k=1 yields a table of self-references only.
// k greater than the point count is clamped to the point count. An
// approximate-mode index construction failure falls back to the exact
// finder; it is never fatal.
func Find(points []geom.Point3, k int, optFns ...func(o *Options)) (Table, error) {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	k, err := checkArgs(points, k, &opts)
	if err != nil {
		return nil, err
	}

	if opts.Approximate {
		table, err := findApproximate(points, k, &opts)
		if err == nil {
			return table, nil
		}
		if opts.Logger != nil {
			opts.Logger.Warn("approximate index unavailable, falling back to exact search",
				"error", err,
			)
		}
	}

	return findExact(points, k, &opts)
}

// FindExact returns the exact neighbor table, ignoring the Approximate
// option.
func FindExact(points []geom.Point3, k int, optFns ...func(o *Options)) (Table, error) {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	k, err := checkArgs(points, k, &opts)
	if err != nil {
		return nil, err
	}
	return findExact(points, k, &opts)
}

// FindApproximate returns an HNSW-backed neighbor table. Unlike Find it
// surfaces index construction failures (wrapped in ErrIndexUnavailable)
// instead of falling back.
func FindApproximate(points []geom.Point3, k int, optFns ...func(o *Options)) (Table, error) {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	k, err := checkArgs(points, k, &opts)
	if err != nil {
		return nil, err
	}
	return findApproximate(points, k, &opts)
}

// checkArgs validates the inputs and clamps k to the point count.
func checkArgs(points []geom.Point3, k int, opts *Options) (int, error) {
	if len(points) == 0 {
		return 0, ErrEmptyPointCloud
	}
	if k < 1 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidK, k)
	}
	if _, err := distance.Provider(opts.Metric); err != nil {
		return 0, err
	}
	if k > len(points) {
		if opts.Logger != nil {
			opts.Logger.Warn("k exceeds point count, clamping",
				"k", k,
				"points", len(points),
			)
		}
		k = len(points)
	}
	return k, nil
}
