// Package geom provides the fixed 3D point type and the small set of
// vector helpers the distance metrics are built on.
package geom

import "math"

// Point3 is a point (or direction) in 3D space.
// Slices of Point3 are index-addressable; the index is the point's
// identity for neighbor computations.
type Point3 [3]float32

// X returns the first component.
func (p Point3) X() float32 { return p[0] }

// Y returns the second component.
func (p Point3) Y() float32 { return p[1] }

// Z returns the third component.
func (p Point3) Z() float32 { return p[2] }

// Sub returns the component-wise difference p - q.
func (p Point3) Sub(q Point3) Point3 {
	return Point3{p[0] - q[0], p[1] - q[1], p[2] - q[2]}
}

// SquaredLength returns the squared L2 length of p.
func (p Point3) SquaredLength() float32 {
	return p[0]*p[0] + p[1]*p[1] + p[2]*p[2]
}

// Length returns the L2 length of p.
func (p Point3) Length() float32 {
	return float32(math.Sqrt(float64(p.SquaredLength())))
}

// AbsSum returns the sum of the absolute values of the components.
func (p Point3) AbsSum() float32 {
	return abs(p[0]) + abs(p[1]) + abs(p[2])
}

// Normalized returns p scaled to unit length.
// A zero-length point cannot be normalized and is returned unchanged
// with ok=false; callers treat it as the zero direction.
func (p Point3) Normalized() (Point3, bool) {
	l := p.Length()
	if l == 0 {
		return p, false
	}
	inv := 1 / l
	return Point3{p[0] * inv, p[1] * inv, p[2] * inv}, true
}

// SquaredDistance returns the squared euclidean distance between p and q.
func (p Point3) SquaredDistance(q Point3) float32 {
	return p.Sub(q).SquaredLength()
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
