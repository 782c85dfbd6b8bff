package knn

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/particleforge/webmesh/distance"
	"github.com/particleforge/webmesh/geom"
	"github.com/particleforge/webmesh/internal/queue"
)

// findExact computes the neighbor table by bounded-heap selection over
// all pairwise distances. O(N²) time; each row needs O(k) extra memory.
//
// Determinism: candidates are scanned in ascending index order and only
// a strictly smaller distance evicts the current worst, so equal
// distances resolve toward the lower point index on every run. Self is
// seeded at column 0 and never competes with other candidates, which
// keeps the self-inclusion invariant even for coincident points.
func findExact(points []geom.Point3, k int, opts *Options) (Table, error) {
	distFn, err := distance.Provider(opts.Metric)
	if err != nil {
		return nil, err
	}

	table := make(Table, len(points))

	if opts.Parallelism <= 1 {
		pq := queue.NewMax(k)
		for i := range points {
			table[i] = exactRow(points, uint32(i), k, distFn, pq)
		}
		return table, nil
	}

	workers := opts.Parallelism
	if workers > runtime.GOMAXPROCS(0) {
		workers = runtime.GOMAXPROCS(0)
	}

	var g errgroup.Group
	g.SetLimit(workers)

	chunk := (len(points) + workers - 1) / workers
	for start := 0; start < len(points); start += chunk {
		end := min(start+chunk, len(points))
		g.Go(func() error {
			pq := queue.NewMax(k)
			for i := start; i < end; i++ {
				table[i] = exactRow(points, uint32(i), k, distFn, pq)
			}
			return nil
		})
	}

	// Rows are disjoint and the workers never fail; Wait is only a
	// completion barrier.
	_ = g.Wait()

	return table, nil
}

// exactRow selects the k nearest neighbors of point i, self first.
// pq is reused across rows by the same worker.
func exactRow(points []geom.Point3, i uint32, k int, distFn distance.Func, pq *queue.PriorityQueue) []uint32 {
	row := make([]uint32, k)
	row[0] = i
	if k == 1 {
		return row
	}

	// Bounded max-heap of the k-1 best non-self candidates.
	pq.Reset()
	for j := range points {
		if uint32(j) == i {
			continue
		}
		d := distFn(points[i], points[j])
		if pq.Len() < k-1 {
			pq.Push(queue.Item{Index: uint32(j), Distance: d})
			continue
		}
		if worst, _ := pq.Top(); d < worst.Distance {
			pq.Pop()
			pq.Push(queue.Item{Index: uint32(j), Distance: d})
		}
	}

	// Drain the max-heap backwards into ascending distance order.
	for col := pq.Len(); col > 0; col-- {
		it, _ := pq.Pop()
		row[col] = it.Index
	}

	return row
}
