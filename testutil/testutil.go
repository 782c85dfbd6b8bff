// Package testutil provides seeded point-cloud generators and an
// exhaustive reference KNN used as ground truth in tests.
package testutil

import (
	"math/rand"
	"sort"
	"sync"

	"github.com/particleforge/webmesh/distance"
	"github.com/particleforge/webmesh/geom"
)

// RNG encapsulates a seeded random number generator.
// It is safe for concurrent use.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), //nolint:gosec
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// UniformPoints generates points with coordinates in [0, 1).
func (r *RNG) UniformPoints(n int) []geom.Point3 {
	r.mu.Lock()
	defer r.mu.Unlock()

	points := make([]geom.Point3, n)
	for i := range points {
		points[i] = geom.Point3{r.rand.Float32(), r.rand.Float32(), r.rand.Float32()}
	}
	return points
}

// ClusteredPoints generates points grouped around random centroids with
// Gaussian spread, the typical shape of a settled particle simulation.
func (r *RNG) ClusteredPoints(n, clusters int, spread float32) []geom.Point3 {
	centroids := r.UniformPoints(clusters)

	r.mu.Lock()
	defer r.mu.Unlock()

	points := make([]geom.Point3, n)
	for i := range points {
		c := centroids[i%clusters]
		points[i] = geom.Point3{
			c[0] + float32(r.rand.NormFloat64())*spread,
			c[1] + float32(r.rand.NormFloat64())*spread,
			c[2] + float32(r.rand.NormFloat64())*spread,
		}
	}
	return points
}

// CollinearPoints generates n points spaced along the x axis.
func CollinearPoints(n int, step float32) []geom.Point3 {
	points := make([]geom.Point3, n)
	for i := range points {
		points[i] = geom.Point3{float32(i) * step, 0, 0}
	}
	return points
}

// CoincidentPoints generates n copies of the same point, the degenerate
// input for tie and self-loop handling.
func CoincidentPoints(n int, p geom.Point3) []geom.Point3 {
	points := make([]geom.Point3, n)
	for i := range points {
		points[i] = p
	}
	return points
}

// Result is a reference search result.
type Result struct {
	Index    uint32
	Distance float32
}

// ExhaustiveKNN computes the k nearest points to q by full sort, ties
// broken by lower index. Ground truth for both finder modes.
func ExhaustiveKNN(points []geom.Point3, q geom.Point3, k int, distFn distance.Func) []Result {
	results := make([]Result, len(points))
	for i, p := range points {
		results[i] = Result{Index: uint32(i), Distance: distFn(q, p)}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Distance != results[j].Distance {
			return results[i].Distance < results[j].Distance
		}
		return results[i].Index < results[j].Index
	})

	if len(results) > k {
		results = results[:k]
	}
	return results
}

// MaxPairwiseDistance returns the largest pairwise distance in the
// cloud, a cheap sanity bound for generated fixtures.
func MaxPairwiseDistance(points []geom.Point3, distFn distance.Func) float32 {
	var maxDist float32
	for i := range points {
		for j := i + 1; j < len(points); j++ {
			if d := distFn(points[i], points[j]); d > maxDist {
				maxDist = d
			}
		}
	}
	return maxDist
}

// Jitter returns a copy of the points with every coordinate displaced
// by at most amp, simulating one animation step.
func (r *RNG) Jitter(points []geom.Point3, amp float32) []geom.Point3 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]geom.Point3, len(points))
	for i, p := range points {
		out[i] = geom.Point3{
			p[0] + (r.rand.Float32()*2-1)*amp,
			p[1] + (r.rand.Float32()*2-1)*amp,
			p[2] + (r.rand.Float32()*2-1)*amp,
		}
	}
	return out
}
