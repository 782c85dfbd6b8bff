package webmesh

import (
	"sync/atomic"
	"time"

	"github.com/particleforge/webmesh/mesh"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    updateCounter   prometheus.Counter
//	    updateHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordUpdate(stats mesh.Stats, duration time.Duration, err error) {
//	    p.updateCounter.Inc()
//	    // ... record error state, duration, etc.
//	}
type MetricsCollector interface {
	// RecordFind is called after each neighbor search.
	// k is the number of neighbors requested, duration is the time
	// taken, err is nil if successful.
	RecordFind(k int, duration time.Duration, err error)

	// RecordUpdate is called after each full update (find + sync).
	// stats reflects the buffer after synchronization.
	RecordUpdate(stats mesh.Stats, duration time.Duration, err error)

	// RecordSnapshot is called after each snapshot publish.
	RecordSnapshot(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordFind(int, time.Duration, error)          {}
func (NoopMetricsCollector) RecordUpdate(mesh.Stats, time.Duration, error) {}
func (NoopMetricsCollector) RecordSnapshot(time.Duration, error)           {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	FindCount          atomic.Int64
	FindErrors         atomic.Int64
	FindTotalNanos     atomic.Int64
	UpdateCount        atomic.Int64
	UpdateErrors       atomic.Int64
	UpdateTotalNanos   atomic.Int64
	Rebuilds           atomic.Int64
	Repositions        atomic.Int64
	SnapshotCount      atomic.Int64
	SnapshotErrors     atomic.Int64
	SnapshotTotalNanos atomic.Int64
}

// RecordFind implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFind(k int, duration time.Duration, err error) {
	b.FindCount.Add(1)
	b.FindTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.FindErrors.Add(1)
	}
}

// RecordUpdate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordUpdate(stats mesh.Stats, duration time.Duration, err error) {
	b.UpdateCount.Add(1)
	b.UpdateTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.UpdateErrors.Add(1)
		return
	}
	switch stats.LastMode {
	case mesh.ModeRebuild:
		b.Rebuilds.Add(1)
	case mesh.ModeReposition:
		b.Repositions.Add(1)
	}
}

// RecordSnapshot implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSnapshot(duration time.Duration, err error) {
	b.SnapshotCount.Add(1)
	b.SnapshotTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SnapshotErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		FindCount:      b.FindCount.Load(),
		FindErrors:     b.FindErrors.Load(),
		FindAvgNanos:   avgNanos(b.FindTotalNanos.Load(), b.FindCount.Load()),
		UpdateCount:    b.UpdateCount.Load(),
		UpdateErrors:   b.UpdateErrors.Load(),
		UpdateAvgNanos: avgNanos(b.UpdateTotalNanos.Load(), b.UpdateCount.Load()),
		Rebuilds:       b.Rebuilds.Load(),
		Repositions:    b.Repositions.Load(),
		SnapshotCount:  b.SnapshotCount.Load(),
		SnapshotErrors: b.SnapshotErrors.Load(),
	}
}

func avgNanos(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	FindCount      int64
	FindErrors     int64
	FindAvgNanos   int64
	UpdateCount    int64
	UpdateErrors   int64
	UpdateAvgNanos int64
	Rebuilds       int64
	Repositions    int64
	SnapshotCount  int64
	SnapshotErrors int64
}
