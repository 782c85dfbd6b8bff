package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSub(t *testing.T) {
	tests := []struct {
		name     string
		p, q     Point3
		expected Point3
	}{
		{"Simple", Point3{4, 5, 6}, Point3{1, 2, 3}, Point3{3, 3, 3}},
		{"Zero", Point3{}, Point3{}, Point3{}},
		{"Negative", Point3{1, -1, 2}, Point3{2, 1, -2}, Point3{-1, -2, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.p.Sub(tt.q))
		})
	}
}

func TestLengths(t *testing.T) {
	p := Point3{3, 4, 0}
	assert.InDelta(t, float32(25), p.SquaredLength(), 1e-6)
	assert.InDelta(t, float32(5), p.Length(), 1e-6)
	assert.InDelta(t, float32(7), p.AbsSum(), 1e-6)

	q := Point3{-3, 4, 0}
	assert.InDelta(t, float32(7), q.AbsSum(), 1e-6)
}

func TestSquaredDistance(t *testing.T) {
	a := Point3{0, 0, 0}
	b := Point3{1, 2, 2}
	assert.InDelta(t, float32(9), a.SquaredDistance(b), 1e-6)
	assert.InDelta(t, float32(9), b.SquaredDistance(a), 1e-6)
	assert.InDelta(t, float32(0), b.SquaredDistance(b), 1e-6)
}

func TestNormalized(t *testing.T) {
	t.Run("Unit", func(t *testing.T) {
		n, ok := Point3{3, 4, 0}.Normalized()
		assert.True(t, ok)
		assert.InDelta(t, float32(0.6), n[0], 1e-6)
		assert.InDelta(t, float32(0.8), n[1], 1e-6)
		assert.InDelta(t, float32(1), n.Length(), 1e-6)
	})

	t.Run("SameRay", func(t *testing.T) {
		// Points on the same ray from the origin normalize to the
		// same direction.
		a, _ := Point3{1, 0, 0}.Normalized()
		b, _ := Point3{2, 0, 0}.Normalized()
		assert.Equal(t, a, b)
	})

	t.Run("Zero", func(t *testing.T) {
		n, ok := Point3{}.Normalized()
		assert.False(t, ok)
		assert.Equal(t, Point3{}, n)
	})
}
