package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/particleforge/webmesh/geom"
	"github.com/particleforge/webmesh/knn"
)

func TestSyncRebuildFromEmpty(t *testing.T) {
	buf := NewBuffer("web")
	points := []geom.Point3{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}}
	table := knn.Table{{0, 1}, {1, 0}, {2, 1}}

	require.NoError(t, Sync(buf, points, table))

	assert.Equal(t, 3, buf.VertexCount())
	assert.Equal(t, ModeRebuild, buf.LastMode())
	assert.Equal(t, []Edge{{0, 1}, {1, 2}}, buf.Edges())
}

func TestSyncEdgeDedup(t *testing.T) {
	// Row 0 lists neighbor 1 and row 1 lists neighbor 0: exactly one
	// edge {0,1} results.
	buf := NewBuffer("web")
	points := []geom.Point3{{0, 0, 0}, {1, 0, 0}, {5, 0, 0}}
	table := knn.Table{{0, 1}, {1, 0}, {2, 0}}

	require.NoError(t, Sync(buf, points, table))
	assert.Equal(t, []Edge{{0, 1}, {0, 2}}, buf.Edges())
}

func TestSyncReposition(t *testing.T) {
	buf := NewBuffer("web")
	first := []geom.Point3{{0, 0, 0}, {1, 0, 0}}
	table := knn.Table{{0, 1}, {1, 0}}

	require.NoError(t, Sync(buf, first, table))
	require.Equal(t, ModeRebuild, buf.LastMode())

	// Same count, different coordinates: vertices are repositioned in
	// place and the second call's positions win.
	second := []geom.Point3{{0, 9, 0}, {1, 9, 0}}
	require.NoError(t, Sync(buf, second, table))

	assert.Equal(t, ModeReposition, buf.LastMode())
	assert.Equal(t, 2, buf.VertexCount())
	assert.Equal(t, second[0], buf.Vertex(0))
	assert.Equal(t, second[1], buf.Vertex(1))
	assert.Equal(t, []Edge{{0, 1}}, buf.Edges())
}

func TestSyncRebuildOnCountChange(t *testing.T) {
	buf := NewBuffer("web")
	require.NoError(t, Sync(buf,
		[]geom.Point3{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}},
		knn.Table{{0, 1}, {1, 2}, {2, 1}},
	))
	require.Equal(t, 3, buf.VertexCount())
	require.NotEmpty(t, buf.Edges())

	// Shrink: everything is rebuilt, no stale edges survive.
	require.NoError(t, Sync(buf,
		[]geom.Point3{{5, 0, 0}, {6, 0, 0}},
		knn.Table{{0, 1}, {1, 0}},
	))

	assert.Equal(t, ModeRebuild, buf.LastMode())
	assert.Equal(t, 2, buf.VertexCount())
	assert.Equal(t, []Edge{{0, 1}}, buf.Edges())
}

func TestSyncNoSelfLoops(t *testing.T) {
	// Degenerate coincident points can produce rows that repeat the
	// row's own index; no self-loop may result.
	buf := NewBuffer("web")
	points := []geom.Point3{{1, 1, 1}, {1, 1, 1}}
	table := knn.Table{{0, 0}, {1, 1}}

	require.NoError(t, Sync(buf, points, table))
	assert.Empty(t, buf.Edges())
}

func TestSyncMalformedTable(t *testing.T) {
	buf := NewBuffer("web")
	points := []geom.Point3{{0, 0, 0}, {1, 0, 0}}

	t.Run("WrongRowCount", func(t *testing.T) {
		err := Sync(buf, points, knn.Table{{0, 1}})
		var shapeErr *knn.ErrTableShape
		assert.ErrorAs(t, err, &shapeErr)
	})

	t.Run("OutOfRangeIndex", func(t *testing.T) {
		err := Sync(buf, points, knn.Table{{0, 7}, {1, 0}})
		assert.Error(t, err)
	})

	t.Run("ZeroWidthRow", func(t *testing.T) {
		fresh := NewBuffer("untouched")
		err := Sync(fresh, []geom.Point3{{0, 0, 0}}, knn.Table{{}})
		var shapeErr *knn.ErrTableShape
		assert.ErrorAs(t, err, &shapeErr)
		assert.Equal(t, 0, fresh.VertexCount())
	})

	t.Run("BufferUntouched", func(t *testing.T) {
		fresh := NewBuffer("untouched")
		_ = Sync(fresh, points, knn.Table{{0, 7}, {1, 0}})
		assert.Equal(t, 0, fresh.VertexCount())
		assert.Equal(t, ModeNone, fresh.LastMode())
	})

	t.Run("NilBuffer", func(t *testing.T) {
		assert.Error(t, Sync(nil, points, knn.Table{{0, 1}, {1, 0}}))
	})
}

func TestSyncIdentityPreserved(t *testing.T) {
	buf := NewBuffer("web")
	before := buf

	require.NoError(t, Sync(buf,
		[]geom.Point3{{0, 0, 0}, {1, 0, 0}},
		knn.Table{{0, 1}, {1, 0}},
	))
	assert.Same(t, before, buf)

	stats := buf.Stats()
	assert.Equal(t, "web", stats.Name)
	assert.Equal(t, 2, stats.Vertices)
	assert.Equal(t, 1, stats.Edges)
	assert.Equal(t, uint64(1), stats.Updates)
}
