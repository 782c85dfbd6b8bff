package knn

import (
	"fmt"

	"github.com/particleforge/webmesh/distance"
	"github.com/particleforge/webmesh/geom"
	"github.com/particleforge/webmesh/hnsw"
)

// findApproximate builds a throwaway HNSW index over the points and
// fills the table by querying each point by item. Node IDs are dense
// insertion-order, so they coincide with point indices.
//
// An approximate index may omit the query point from its own result
// set, so column 0 is forced to self and the remaining columns are
// filled from the index results.
func findApproximate(points []geom.Point3, k int, opts *Options) (Table, error) {
	distFn, err := distance.Provider(opts.Metric)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIndexUnavailable, err)
	}

	idx := hnsw.New(func(o *hnsw.Options) {
		o.DistanceFunc = distFn
	})
	for _, p := range points {
		idx.Insert(p)
	}

	table := make(Table, len(points))
	for i := range points {
		// Ask for one extra result to compensate for self showing up
		// anywhere (or nowhere) in the approximate result set.
		results := idx.SearchByItem(uint32(i), k+1)

		row := make([]uint32, 1, k)
		row[0] = uint32(i)
		for _, item := range results {
			if len(row) == k {
				break
			}
			if item.Index == uint32(i) {
				continue
			}
			row = append(row, item.Index)
		}

		// Degenerate recall can leave the row short; pad with self so
		// the table shape stays N×k without inventing neighbors.
		for len(row) < k {
			row = append(row, uint32(i))
		}

		table[i] = row
	}

	return table, nil
}
