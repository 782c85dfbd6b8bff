// Package hnsw implements a Hierarchical Navigable Small World graph
// over 3D points.
//
// The index is built fresh for one neighbor-table computation and
// discarded with it: node IDs are assigned densely in insertion order,
// so the ID of the n-th inserted point is n and can be used directly as
// the point's index. There is no delete and no persistence.
package hnsw

import (
	"math"
	"math/rand"
	"sync"

	"github.com/bits-and-blooms/bitset"

	"github.com/particleforge/webmesh/distance"
	"github.com/particleforge/webmesh/geom"
	"github.com/particleforge/webmesh/internal/queue"
)

// Node is a point in the HNSW graph with its per-layer links.
type Node struct {
	Connections [][]uint32  // Links to other nodes, indexed by layer
	Point       geom.Point3 // The stored point
	Layer       int         // Highest layer the node exists in
	ID          uint32      // Dense insertion-order identifier
}

// Options represents the options for configuring the index.
type Options struct {
	// M is the number of established connections for every new node
	// during construction. 3D point clouds have low intrinsic
	// dimensionality, so small values work well.
	M int

	// EF is the size of the dynamic candidate list during construction
	// and search. Larger values improve recall at the cost of time.
	EF int

	// Heuristic selects the neighbor-diversity heuristic for linking;
	// false uses plain nearest-M selection.
	Heuristic bool

	// DistanceFunc is the pairwise distance used for all comparisons.
	DistanceFunc distance.Func
}

// DefaultOptions contains the default configuration options.
var DefaultOptions = Options{
	M:            8,
	EF:           100,
	Heuristic:    true,
	DistanceFunc: distance.Euclidean,
}

// Index is a Hierarchical Navigable Small World graph.
type Index struct {
	mmax     int     // Max connections per node per layer
	mmax0    int     // Max connections on layer 0
	ml       float64 // Normalization factor for layer generation
	ep       uint32  // Entry point node ID
	maxLevel int     // Current highest layer in use

	nodes []*Node

	opts Options

	mu sync.Mutex
}

// New creates an empty index.
func New(optFns ...func(o *Options)) *Index {
	opts := DefaultOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.M < 2 {
		// M == 1 would make the layer normalization 1/log(1) blow up.
		opts.M = 2
	}
	if opts.DistanceFunc == nil {
		opts.DistanceFunc = DefaultOptions.DistanceFunc
	}

	return &Index{
		mmax:  opts.M,
		mmax0: 2 * opts.M,
		ml:    1 / math.Log(float64(opts.M)),
		opts:  opts,
	}
}

// Len returns the number of inserted points.
func (h *Index) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.nodes)
}

// Insert adds a point to the index and returns its ID. IDs are assigned
// densely in insertion order starting at 0.
func (h *Index) Insert(p geom.Point3) uint32 {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := uint32(len(h.nodes))
	layer := h.randomLayer()
	node := &Node{
		ID:          id,
		Point:       p,
		Layer:       layer,
		Connections: make([][]uint32, layer+1),
	}

	if len(h.nodes) == 0 {
		h.nodes = append(h.nodes, node)
		h.ep = id
		h.maxLevel = layer
		return id
	}

	curr, currDist := h.greedyDescend(p, layer)

	for level := min(layer, h.maxLevel); level >= 0; level-- {
		candidates := h.searchLayer(p, queue.Item{Index: curr, Distance: currDist}, h.opts.EF, level)

		var conns []uint32
		if h.opts.Heuristic {
			conns = h.selectNeighborsHeuristic(p, candidates, h.opts.M)
		} else {
			conns = selectNeighborsSimple(candidates, h.opts.M)
		}
		node.Connections[level] = conns

		// The nearest selected neighbor seeds the next layer down.
		if len(conns) > 0 {
			curr = conns[0]
			currDist = h.opts.DistanceFunc(p, h.nodes[curr].Point)
		}
	}

	h.nodes = append(h.nodes, node)

	// Link back from the neighbors, making the new node reachable.
	for level := min(layer, h.maxLevel); level >= 0; level-- {
		for _, neighbor := range node.Connections[level] {
			h.link(neighbor, id, level)
		}
	}

	if layer > h.maxLevel {
		h.ep = id
		h.maxLevel = layer
	}

	return id
}

// Search returns up to k node IDs nearest to q in ascending distance
// order.
func (h *Index) Search(q geom.Point3, k int) []queue.Item {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.nodes) == 0 || k < 1 {
		return nil
	}

	curr, currDist := h.greedyDescend(q, 0)

	ef := h.opts.EF
	if ef < k {
		ef = k
	}
	candidates := h.searchLayer(q, queue.Item{Index: curr, Distance: currDist}, ef, 0)

	for candidates.Len() > k {
		candidates.Pop()
	}

	out := make([]queue.Item, candidates.Len())
	for i := candidates.Len() - 1; i >= 0; i-- {
		out[i], _ = candidates.Pop()
	}
	return out
}

// SearchByItem returns up to k node IDs nearest to the stored point with
// the given ID, in ascending distance order. The item itself is part of
// the candidate set.
func (h *Index) SearchByItem(id uint32, k int) []queue.Item {
	h.mu.Lock()
	p, ok := h.point(id)
	h.mu.Unlock()
	if !ok {
		return nil
	}
	return h.Search(p, k)
}

func (h *Index) point(id uint32) (geom.Point3, bool) {
	if int(id) >= len(h.nodes) {
		return geom.Point3{}, false
	}
	return h.nodes[id].Point, true
}

// randomLayer draws a layer from the standard exponentially decaying
// distribution.
func (h *Index) randomLayer() int {
	return int(math.Floor(-math.Log(rand.Float64()) * h.ml)) //nolint:gosec
}

// greedyDescend walks from the entry point down to toLayer+1, following
// strictly improving links, and returns the best node seen with its
// distance to q.
func (h *Index) greedyDescend(q geom.Point3, toLayer int) (uint32, float32) {
	curr := h.ep
	currDist := h.opts.DistanceFunc(q, h.nodes[curr].Point)

	for level := h.maxLevel; level > toLayer; level-- {
		changed := true
		for changed {
			changed = false

			node := h.nodes[curr]
			if len(node.Connections) <= level {
				continue
			}
			for _, id := range node.Connections[level] {
				d := h.opts.DistanceFunc(q, h.nodes[id].Point)
				if d < currDist {
					curr = id
					currDist = d
					changed = true
				}
			}
		}
	}

	return curr, currDist
}

// searchLayer runs the beam search on one layer and returns a max-heap
// of at most ef candidates.
func (h *Index) searchLayer(q geom.Point3, ep queue.Item, ef int, level int) *queue.PriorityQueue {
	var visited bitset.BitSet
	visited.Set(uint(ep.Index))

	candidates := queue.NewMin(ef)
	candidates.Push(ep)

	results := queue.NewMax(ef)
	results.Push(ep)

	for candidates.Len() > 0 {
		candidate, _ := candidates.Pop()
		if worst, _ := results.Top(); candidate.Distance > worst.Distance {
			break
		}

		node := h.nodes[candidate.Index]
		if len(node.Connections) <= level {
			continue
		}

		for _, id := range node.Connections[level] {
			if visited.Test(uint(id)) {
				continue
			}
			visited.Set(uint(id))

			d := h.opts.DistanceFunc(q, h.nodes[id].Point)
			item := queue.Item{Index: id, Distance: d}

			if results.Len() < ef {
				results.Push(item)
				candidates.Push(item)
			} else if worst, _ := results.Top(); d < worst.Distance {
				results.Pop()
				results.Push(item)
				candidates.Push(item)
			}
		}
	}

	return results
}

// link records an edge from first to second on the given level,
// re-selecting first's neighbor set when it overflows.
func (h *Index) link(first, second uint32, level int) {
	maxConnections := h.mmax
	if level == 0 {
		maxConnections = h.mmax0
	}

	node := h.nodes[first]
	node.Connections[level] = append(node.Connections[level], second)

	if len(node.Connections[level]) <= maxConnections {
		return
	}

	// Overflow: rebuild the neighbor set from all current links.
	candidates := queue.NewMax(len(node.Connections[level]))
	for _, id := range node.Connections[level] {
		candidates.Push(queue.Item{
			Index:    id,
			Distance: h.opts.DistanceFunc(node.Point, h.nodes[id].Point),
		})
	}

	if h.opts.Heuristic {
		node.Connections[level] = h.selectNeighborsHeuristic(node.Point, candidates, maxConnections)
	} else {
		node.Connections[level] = selectNeighborsSimple(candidates, maxConnections)
	}
}

// selectNeighborsSimple keeps the m nearest candidates, ascending.
func selectNeighborsSimple(candidates *queue.PriorityQueue, m int) []uint32 {
	for candidates.Len() > m {
		candidates.Pop()
	}
	out := make([]uint32, candidates.Len())
	for i := candidates.Len() - 1; i >= 0; i-- {
		it, _ := candidates.Pop()
		out[i] = it.Index
	}
	return out
}

// selectNeighborsHeuristic keeps up to m candidates favoring diversity:
// a candidate is kept only if it is closer to q than to every already
// kept neighbor, which avoids clustering all links on one side.
// Discarded candidates backfill when fewer than m survive.
func (h *Index) selectNeighborsHeuristic(q geom.Point3, candidates *queue.PriorityQueue, m int) []uint32 {
	if candidates.Len() <= m {
		return selectNeighborsSimple(candidates, m)
	}

	// Ascending distance order.
	asc := make([]queue.Item, candidates.Len())
	for i := candidates.Len() - 1; i >= 0; i-- {
		asc[i], _ = candidates.Pop()
	}

	kept := make([]queue.Item, 0, m)
	var discarded []queue.Item

	for _, item := range asc {
		if len(kept) >= m {
			break
		}

		diverse := true
		for _, sel := range kept {
			if h.opts.DistanceFunc(h.nodes[sel.Index].Point, h.nodes[item.Index].Point) < item.Distance {
				diverse = false
				break
			}
		}

		if diverse {
			kept = append(kept, item)
		} else {
			discarded = append(discarded, item)
		}
	}

	for _, item := range discarded {
		if len(kept) >= m {
			break
		}
		kept = append(kept, item)
	}

	out := make([]uint32, len(kept))
	for i, item := range kept {
		out[i] = item.Index
	}
	return out
}
