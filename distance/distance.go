package distance

import (
	"fmt"
	"math"
	"strings"

	"github.com/particleforge/webmesh/geom"
)

// Euclidean calculates the euclidean (L2) distance between two points.
func Euclidean(a, b geom.Point3) float32 {
	return float32(math.Sqrt(float64(a.SquaredDistance(b))))
}

// Manhattan calculates the manhattan (L1) distance between two points.
func Manhattan(a, b geom.Point3) float32 {
	return a.Sub(b).AbsSum()
}

// SquaredEuclidean calculates the squared euclidean distance between two
// points. It is a monotonic transform of Euclidean and produces the same
// neighbor ordering without the square root.
func SquaredEuclidean(a, b geom.Point3) float32 {
	return a.SquaredDistance(b)
}

// Angular calculates the euclidean distance between the directions of two
// points, i.e. between the points after each is independently normalized
// to unit length. Points on the same ray from the origin have angular
// distance 0 regardless of their euclidean distance. A zero-length point
// keeps the zero direction.
func Angular(a, b geom.Point3) float32 {
	na, _ := a.Normalized()
	nb, _ := b.Normalized()
	return Euclidean(na, nb)
}

// Metric represents the distance metric used for neighbor comparison.
type Metric int

const (
	// MetricEuclidean is the L2 distance.
	MetricEuclidean Metric = iota

	// MetricManhattan is the L1 distance.
	MetricManhattan

	// MetricDot is, despite its name, the squared euclidean distance.
	// The name is kept for compatibility with the configuration surface
	// it came from; the behavior is intentionally not a dot product.
	MetricDot

	// MetricAngular is the euclidean distance between unit directions.
	MetricAngular
)

func (m Metric) String() string {
	switch m {
	case MetricEuclidean:
		return "euclidean"
	case MetricManhattan:
		return "manhattan"
	case MetricDot:
		return "dot"
	case MetricAngular:
		return "angular"
	default:
		return fmt.Sprintf("Unknown(%d)", m)
	}
}

// Func is a function type for pairwise distance calculation.
type Func func(a, b geom.Point3) float32

// Provider returns the distance function for the given metric.
func Provider(m Metric) (Func, error) {
	switch m {
	case MetricEuclidean:
		return Euclidean, nil
	case MetricManhattan:
		return Manhattan, nil
	case MetricDot:
		return SquaredEuclidean, nil
	case MetricAngular:
		return Angular, nil
	default:
		return nil, fmt.Errorf("unsupported metric: %v", m)
	}
}

// ParseMetric maps a metric name to its Metric value.
// Recognized names are "euclidean", "manhattan", "dot" and "angular".
func ParseMetric(name string) (Metric, error) {
	switch strings.ToLower(name) {
	case "euclidean":
		return MetricEuclidean, nil
	case "manhattan":
		return MetricManhattan, nil
	case "dot":
		return MetricDot, nil
	case "angular":
		return MetricAngular, nil
	default:
		return 0, fmt.Errorf("unsupported metric: %q", name)
	}
}
