package mesh

import (
	"github.com/RoaringBitmap/roaring/v2/roaring64"
)

// EdgeSet deduplicates directed neighbor pairs into an undirected edge
// set. Each edge is stored once as a packed min<<32|max key in a
// roaring bitmap, so membership in either orientation is a single
// lookup and iteration comes out sorted and deterministic.
type EdgeSet struct {
	bm *roaring64.Bitmap
}

// NewEdgeSet creates an empty edge set.
func NewEdgeSet() *EdgeSet {
	return &EdgeSet{bm: roaring64.New()}
}

func packEdge(a, b uint32) uint64 {
	if a > b {
		a, b = b, a
	}
	return uint64(a)<<32 | uint64(b)
}

// Add inserts the undirected edge {a,b}. Self-loops and edges already
// present in either orientation are rejected; returns true if the edge
// was added.
func (s *EdgeSet) Add(a, b uint32) bool {
	if a == b {
		return false
	}
	return s.bm.CheckedAdd(packEdge(a, b))
}

// Contains reports whether {a,b} is present in either orientation.
func (s *EdgeSet) Contains(a, b uint32) bool {
	if a == b {
		return false
	}
	return s.bm.Contains(packEdge(a, b))
}

// Len returns the number of distinct edges.
func (s *EdgeSet) Len() int {
	return int(s.bm.GetCardinality())
}

// Edges materializes the set as a slice sorted by (A, B).
func (s *EdgeSet) Edges() []Edge {
	out := make([]Edge, 0, s.bm.GetCardinality())
	it := s.bm.Iterator()
	for it.HasNext() {
		key := it.Next()
		out = append(out, Edge{A: uint32(key >> 32), B: uint32(key)})
	}
	return out
}
