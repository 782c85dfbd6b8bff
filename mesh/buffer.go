// Package mesh maintains persistent vertex/edge buffers and synchronizes
// them with per-frame neighbor tables.
//
// A Buffer is an arena of vertex slots addressed by stable index: slot i
// always corresponds to point i of the most recent update, which is what
// makes neighbor-table indices directly usable as vertex references.
package mesh

import (
	"fmt"

	"github.com/particleforge/webmesh/geom"
)

// UpdateMode records which strategy the last synchronization used.
type UpdateMode int

const (
	// ModeNone means the buffer has not been synchronized yet.
	ModeNone UpdateMode = iota

	// ModeReposition kept the vertex identities and only rewrote their
	// coordinates and the edge list.
	ModeReposition

	// ModeRebuild discarded and recreated all vertices and edges.
	ModeRebuild
)

func (m UpdateMode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeReposition:
		return "reposition"
	case ModeRebuild:
		return "rebuild"
	default:
		return fmt.Sprintf("Unknown(%d)", m)
	}
}

// Edge is an undirected edge between two vertex slots, stored with
// A < B.
type Edge struct {
	A, B uint32
}

// Buffer is a persistent web mesh: a vertex slot arena plus the edge
// list derived from the latest neighbor table. It lives across frames
// and is mutated in place by Sync; the identity of the Buffer never
// changes.
//
// A Buffer is not safe for concurrent mutation; the update loop owns it
// exclusively.
type Buffer struct {
	name     string
	verts    []geom.Point3
	edges    []Edge
	lastMode UpdateMode
	updates  uint64
}

// NewBuffer creates an empty buffer with the given name.
func NewBuffer(name string) *Buffer {
	return &Buffer{name: name}
}

// Name returns the buffer's name.
func (b *Buffer) Name() string { return b.name }

// VertexCount returns the number of vertex slots.
func (b *Buffer) VertexCount() int { return len(b.verts) }

// EdgeCount returns the number of edges.
func (b *Buffer) EdgeCount() int { return len(b.edges) }

// Vertex returns the position in slot i.
func (b *Buffer) Vertex(i int) geom.Point3 { return b.verts[i] }

// Vertices returns the backing vertex slice. It is valid until the next
// synchronization; callers that hold on to it must copy.
func (b *Buffer) Vertices() []geom.Point3 { return b.verts }

// Edges returns the backing edge slice, sorted by (A, B). It is valid
// until the next synchronization.
func (b *Buffer) Edges() []Edge { return b.edges }

// LastMode returns the strategy of the most recent synchronization.
func (b *Buffer) LastMode() UpdateMode { return b.lastMode }

// Resize prepares the arena for n vertices and discards the edge list.
// When n differs from the current slot count all slots are discarded
// and recreated (rebuild); otherwise the slots and their identities
// survive (reposition). Returns true on rebuild.
func (b *Buffer) Resize(n int) bool {
	b.edges = b.edges[:0]
	if n == len(b.verts) {
		return false
	}
	b.verts = make([]geom.Point3, n)
	return true
}

// Load replaces the buffer's content wholesale, validating edge
// indices. Edges are normalized to A < B, deduplicated and sorted, so
// the result upholds the Edges ordering regardless of how the input
// was produced. Used when restoring a snapshot.
func (b *Buffer) Load(verts []geom.Point3, edges []Edge) error {
	set := NewEdgeSet()
	for _, e := range edges {
		if e.A == e.B {
			return fmt.Errorf("mesh: self-loop edge {%d,%d}", e.A, e.B)
		}
		if int(e.A) >= len(verts) || int(e.B) >= len(verts) {
			return fmt.Errorf("mesh: edge {%d,%d} out of range for %d vertices", e.A, e.B, len(verts))
		}
		set.Add(e.A, e.B)
	}
	b.verts = verts
	b.edges = set.Edges()
	b.lastMode = ModeRebuild
	b.updates++
	return nil
}

// Stats is a snapshot of the buffer's shape.
type Stats struct {
	Name     string
	Vertices int
	Edges    int
	LastMode UpdateMode
	Updates  uint64
}

// Stats returns a snapshot of the buffer's shape.
func (b *Buffer) Stats() Stats {
	return Stats{
		Name:     b.name,
		Vertices: len(b.verts),
		Edges:    len(b.edges),
		LastMode: b.lastMode,
		Updates:  b.updates,
	}
}
