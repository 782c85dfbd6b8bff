package mesh

import (
	"fmt"

	"github.com/particleforge/webmesh/geom"
	"github.com/particleforge/webmesh/knn"
)

// Sync applies a point cloud and its neighbor table to the buffer.
//
// If the point count matches the buffer's current vertex count the
// vertex slots survive and only their coordinates are overwritten
// (reposition); otherwise all slots are discarded and recreated
// (rebuild). Either way the edge list is rebuilt from scratch: one
// undirected edge per deduplicated pair from columns 1..k-1 of each
// table row, never a self-loop. After Sync returns the buffer's vertex
// count equals len(points).
//
// The buffer is mutated in place; its identity never changes. A
// malformed table is rejected before any mutation.
func Sync(buf *Buffer, points []geom.Point3, table knn.Table) error {
	if buf == nil {
		return fmt.Errorf("mesh: nil buffer")
	}
	if err := table.Validate(len(points)); err != nil {
		return err
	}

	if buf.Resize(len(points)) {
		buf.lastMode = ModeRebuild
	} else {
		buf.lastMode = ModeReposition
	}
	copy(buf.verts, points)

	set := NewEdgeSet()
	for i, row := range table {
		for _, neighbor := range row[1:] {
			set.Add(uint32(i), neighbor)
		}
	}
	buf.edges = set.Edges()
	buf.updates++

	return nil
}
