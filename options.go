package webmesh

import (
	"log/slog"

	"github.com/particleforge/webmesh/blobstore"
	"github.com/particleforge/webmesh/distance"
	"github.com/particleforge/webmesh/host"
	"github.com/particleforge/webmesh/snapshot"
)

type options struct {
	k                int
	metric           distance.Metric
	approximate      bool
	parallelism      int
	elaborator       host.Elaborator
	snapshotStore    blobstore.Store
	snapshotOptions  []func(*snapshot.Options)
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures Weaver constructor behavior.
type Option func(*options)

// WithK configures the neighbor count per point, self included.
// Must be at least 1.
func WithK(k int) Option {
	return func(o *options) {
		o.k = k
	}
}

// WithMetric configures the distance metric used for neighbor search.
func WithMetric(m distance.Metric) Option {
	return func(o *options) {
		o.metric = m
	}
}

// WithApproximateIndex enables the approximate neighbor index. The
// result keeps the table shape contract but trades exactness for build
// speed on large clouds; if index construction fails, search falls back
// to exact mode with a warning.
func WithApproximateIndex(enabled bool) Option {
	return func(o *options) {
		o.approximate = enabled
	}
}

// WithParallelism configures how many goroutines the exact search may
// use per update. Values <= 1 keep the computation sequential.
// Parallelism never escapes a single update.
func WithParallelism(n int) Option {
	return func(o *options) {
		o.parallelism = n
	}
}

// WithElaborator configures the secondary stage applied to each buffer
// after synchronization. Pass nil to disable.
func WithElaborator(e host.Elaborator) Option {
	return func(o *options) {
		o.elaborator = e
	}
}

// WithSnapshotStore configures a blob store that receives a snapshot of
// every buffer after each update. optFns configure the snapshot format
// (codec, compression).
//
// Example:
//
//	store, _ := blobstore.NewLocalStore("./webs")
//	w, _ := webmesh.New(
//	    webmesh.WithK(4),
//	    webmesh.WithSnapshotStore(store, func(o *snapshot.Options) {
//	        o.Compression = snapshot.CompressionLZ4
//	    }),
//	)
func WithSnapshotStore(store blobstore.Store, optFns ...func(*snapshot.Options)) Option {
	return func(o *options) {
		o.snapshotStore = store
		o.snapshotOptions = optFns
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations. Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &webmesh.BasicMetricsCollector{}
//	w, _ := webmesh.New(webmesh.WithMetricsCollector(metrics))
//	// ... use w ...
//	stats := metrics.GetStats()
//	fmt.Printf("Updates: %d, Rebuilds: %d\n", stats.UpdateCount, stats.Rebuilds)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := webmesh.NewJSONLogger(slog.LevelInfo)
//	w, _ := webmesh.New(webmesh.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		k:                DefaultK,
		metric:           distance.MetricEuclidean,
		parallelism:      1,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	return o
}
