// Package host defines the boundaries toward the embedding application:
// where point clouds come from, what happens to a buffer after it is
// synchronized, and the frame loop that drives repeated updates.
package host

import (
	"context"

	"github.com/particleforge/webmesh/geom"
	"github.com/particleforge/webmesh/mesh"
)

// PointProvider supplies the point cloud for the next update. The
// returned slice is owned by the caller after Points returns.
type PointProvider interface {
	Points(ctx context.Context) ([]geom.Point3, error)
}

// PointProviderFunc adapts a function to the PointProvider interface.
type PointProviderFunc func(ctx context.Context) ([]geom.Point3, error)

// Points calls f.
func (f PointProviderFunc) Points(ctx context.Context) ([]geom.Point3, error) {
	return f(ctx)
}

// StaticPoints returns a provider that always serves the same cloud.
func StaticPoints(points []geom.Point3) PointProvider {
	return PointProviderFunc(func(_ context.Context) ([]geom.Point3, error) {
		out := make([]geom.Point3, len(points))
		copy(out, points)
		return out, nil
	})
}

// Elaborator is an optional secondary stage that attaches derived state
// to a synchronized buffer, a thickening pass over the bare edge web.
// Attach must be idempotent per buffer; callers skip it when Attached
// reports true.
type Elaborator interface {
	Attach(buf *mesh.Buffer) error
	Attached(buf *mesh.Buffer) bool
}

// NoopElaborator attaches nothing.
type NoopElaborator struct{}

// Attach does nothing.
func (NoopElaborator) Attach(_ *mesh.Buffer) error { return nil }

// Attached always reports true so the stage is always skipped.
func (NoopElaborator) Attached(_ *mesh.Buffer) bool { return true }
