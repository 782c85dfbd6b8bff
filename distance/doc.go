// Package distance provides the pairwise distance metrics used for
// nearest-neighbor computation over 3D points.
//
// # Supported Metrics
//
//   - MetricEuclidean: L2 distance
//   - MetricManhattan: L1 distance
//   - MetricDot: squared euclidean distance (historical name, see below)
//   - MetricAngular: euclidean distance between unit directions
//
// MetricDot does not compute a dot product. The configuration surface this
// library replaces labeled squared-euclidean distance "dot", and changing
// the behavior would silently reorder every neighbor table produced with
// that setting, so the literal behavior is preserved and documented.
package distance
