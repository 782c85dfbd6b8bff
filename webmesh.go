package webmesh

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/particleforge/webmesh/distance"
	"github.com/particleforge/webmesh/geom"
	"github.com/particleforge/webmesh/knn"
	"github.com/particleforge/webmesh/mesh"
	"github.com/particleforge/webmesh/snapshot"
)

// DefaultK is the default neighbor count per point, self included.
const DefaultK = 5

// Weaver turns point clouds into named web meshes. It owns a buffer
// registry; the same name always maps to the same buffer, so repeated
// updates reuse vertex slots whenever the point count is stable.
//
// Update is safe for concurrent use, but updates are serialized
// internally: each one runs as a single exclusive section.
type Weaver struct {
	mu       sync.Mutex
	opts     options
	registry *mesh.Registry
}

// New creates a Weaver. The configuration is fixed for the Weaver's
// lifetime.
func New(optFns ...Option) (*Weaver, error) {
	opts := applyOptions(optFns)

	if opts.k < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidK, opts.k)
	}
	if _, err := distance.Provider(opts.metric); err != nil {
		return nil, err
	}

	return &Weaver{
		opts:     opts,
		registry: mesh.NewRegistry(),
	}, nil
}

// Update runs one full cycle for the named web: neighbor search over
// the points, synchronization of the buffer, the optional elaborator
// stage, and the optional snapshot publish. It returns the updated
// buffer.
//
// The returned buffer's vertex and edge slices are valid until the next
// Update for the same name.
func (w *Weaver) Update(ctx context.Context, name string, points []geom.Point3) (*mesh.Buffer, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	start := time.Now()
	buf, err := w.update(ctx, name, points)

	stats := mesh.Stats{Name: name}
	if buf != nil {
		stats = buf.Stats()
	}
	w.opts.metricsCollector.RecordUpdate(stats, time.Since(start), err)
	w.opts.logger.LogSync(ctx, stats, err)

	if err != nil {
		return nil, err
	}
	return buf, nil
}

func (w *Weaver) update(ctx context.Context, name string, points []geom.Point3) (*mesh.Buffer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	findStart := time.Now()
	table, err := knn.Find(points, w.opts.k, func(o *knn.Options) {
		o.Metric = w.opts.metric
		o.Approximate = w.opts.approximate
		o.Parallelism = w.opts.parallelism
		o.Logger = w.opts.logger.Logger
	})
	w.opts.metricsCollector.RecordFind(w.opts.k, time.Since(findStart), err)
	w.opts.logger.LogFind(ctx, w.opts.k, len(points), err)
	if err != nil {
		return nil, err
	}

	buf := w.registry.GetOrCreate(name)
	if err := mesh.Sync(buf, points, table); err != nil {
		return nil, err
	}

	if w.opts.elaborator != nil && !w.opts.elaborator.Attached(buf) {
		if err := w.opts.elaborator.Attach(buf); err != nil {
			return nil, fmt.Errorf("elaborator: %w", err)
		}
	}

	if w.opts.snapshotStore != nil {
		if err := w.publish(ctx, buf); err != nil {
			return nil, err
		}
	}

	return buf, nil
}

func (w *Weaver) publish(ctx context.Context, buf *mesh.Buffer) error {
	key := snapshot.Key(buf.Name(), buf.Stats().Updates)

	start := time.Now()
	err := snapshot.Publish(ctx, w.opts.snapshotStore, key, snapshot.Capture(buf), w.opts.snapshotOptions...)
	w.opts.metricsCollector.RecordSnapshot(time.Since(start), err)
	w.opts.logger.LogSnapshot(ctx, key, err)
	return err
}

// Restore loads a published snapshot into the named buffer, replacing
// its content. The buffer is created if it does not exist.
func (w *Weaver) Restore(ctx context.Context, name, blob string) (*mesh.Buffer, error) {
	if w.opts.snapshotStore == nil {
		return nil, fmt.Errorf("no snapshot store configured")
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	frame, err := snapshot.Fetch(ctx, w.opts.snapshotStore, blob)
	w.opts.logger.LogRestore(ctx, blob, err)
	if err != nil {
		return nil, err
	}

	buf := w.registry.GetOrCreate(name)
	if err := frame.Apply(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// UpdateFunc adapts the named web to a host.UpdateFunc for use with
// host.Loop.
func (w *Weaver) UpdateFunc(name string) func(ctx context.Context, points []geom.Point3) error {
	return func(ctx context.Context, points []geom.Point3) error {
		_, err := w.Update(ctx, name, points)
		return err
	}
}

// Buffer returns the named buffer, if it exists.
func (w *Weaver) Buffer(name string) (*mesh.Buffer, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	buf, ok := w.registry.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrBufferNotFound, name)
	}
	return buf, nil
}

// Names returns the names of all webs, sorted.
func (w *Weaver) Names() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.registry.Names()
}

// Remove drops the named buffer. Removing a missing name is not an
// error.
func (w *Weaver) Remove(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.registry.Remove(name)
}
