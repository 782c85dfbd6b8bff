package distance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/particleforge/webmesh/geom"
)

func TestEuclidean(t *testing.T) {
	tests := []struct {
		name     string
		a, b     geom.Point3
		expected float32
	}{
		{"Simple", geom.Point3{0, 0, 0}, geom.Point3{1, 2, 2}, 3},
		{"Identical", geom.Point3{1, 2, 3}, geom.Point3{1, 2, 3}, 0},
		{"Axis", geom.Point3{1, 0, 0}, geom.Point3{3, 0, 0}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Euclidean(tt.a, tt.b), 1e-5)
			assert.InDelta(t, tt.expected, Euclidean(tt.b, tt.a), 1e-5)
		})
	}
}

func TestManhattan(t *testing.T) {
	tests := []struct {
		name     string
		a, b     geom.Point3
		expected float32
	}{
		{"Simple", geom.Point3{0, 0, 0}, geom.Point3{1, 2, 2}, 5},
		{"Identical", geom.Point3{1, 2, 3}, geom.Point3{1, 2, 3}, 0},
		{"Mixed", geom.Point3{1, -1, 0}, geom.Point3{-1, 1, 0}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Manhattan(tt.a, tt.b), 1e-5)
		})
	}
}

func TestSquaredEuclidean(t *testing.T) {
	a := geom.Point3{0, 0, 0}
	b := geom.Point3{1, 2, 2}
	assert.InDelta(t, float32(9), SquaredEuclidean(a, b), 1e-5)

	// Monotonic transform of Euclidean: ordering is preserved.
	c := geom.Point3{3, 0, 0}
	bCloser := Euclidean(a, b) < Euclidean(a, c)
	assert.Equal(t, bCloser, SquaredEuclidean(a, b) < SquaredEuclidean(a, c))
}

func TestAngular(t *testing.T) {
	t.Run("SameRay", func(t *testing.T) {
		// Points sharing a ray from the origin have angular distance 0
		// even though their euclidean distance is 1.
		a := geom.Point3{1, 0, 0}
		b := geom.Point3{2, 0, 0}
		assert.InDelta(t, float32(0), Angular(a, b), 1e-6)
		assert.InDelta(t, float32(1), Euclidean(a, b), 1e-6)
	})

	t.Run("Opposite", func(t *testing.T) {
		a := geom.Point3{1, 0, 0}
		b := geom.Point3{-5, 0, 0}
		assert.InDelta(t, float32(2), Angular(a, b), 1e-6)
	})

	t.Run("ZeroVector", func(t *testing.T) {
		// Zero-length points keep the zero direction; no NaN.
		a := geom.Point3{}
		b := geom.Point3{3, 0, 0}
		got := Angular(a, b)
		assert.False(t, got != got, "angular distance must not be NaN")
		assert.InDelta(t, float32(1), got, 1e-6)
	})
}

func TestCollinearRanking(t *testing.T) {
	// A=(0,0,0), B=(1,0,0), C=(3,0,0): the nearest neighbor of B is A
	// (distance 1), not C (distance 2), under every translation-based
	// metric.
	a := geom.Point3{0, 0, 0}
	b := geom.Point3{1, 0, 0}
	c := geom.Point3{3, 0, 0}

	for _, m := range []Metric{MetricEuclidean, MetricManhattan, MetricDot} {
		t.Run(m.String(), func(t *testing.T) {
			fn, err := Provider(m)
			require.NoError(t, err)
			assert.Less(t, fn(b, a), fn(b, c))
		})
	}
}

func TestMetric(t *testing.T) {
	t.Run("String", func(t *testing.T) {
		assert.Equal(t, "euclidean", MetricEuclidean.String())
		assert.Equal(t, "manhattan", MetricManhattan.String())
		assert.Equal(t, "dot", MetricDot.String())
		assert.Equal(t, "angular", MetricAngular.String())
		assert.Contains(t, Metric(42).String(), "Unknown")
	})

	t.Run("Provider", func(t *testing.T) {
		for _, m := range []Metric{MetricEuclidean, MetricManhattan, MetricDot, MetricAngular} {
			fn, err := Provider(m)
			require.NoError(t, err)
			require.NotNil(t, fn)
		}

		_, err := Provider(Metric(42))
		assert.Error(t, err)
	})

	t.Run("Parse", func(t *testing.T) {
		m, err := ParseMetric("Angular")
		require.NoError(t, err)
		assert.Equal(t, MetricAngular, m)

		_, err = ParseMetric("cosine")
		assert.Error(t, err)
	})
}
