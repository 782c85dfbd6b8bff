package webmesh_test

import (
	"context"
	"fmt"
	"log"

	"github.com/particleforge/webmesh"
	"github.com/particleforge/webmesh/distance"
	"github.com/particleforge/webmesh/geom"
)

func Example() {
	w, err := webmesh.New(
		webmesh.WithK(2),
		webmesh.WithMetric(distance.MetricEuclidean),
	)
	if err != nil {
		log.Fatal(err)
	}

	points := []geom.Point3{
		{0, 0, 0},
		{1, 0, 0},
		{3, 0, 0},
	}

	buf, err := w.Update(context.Background(), "web", points)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("vertices:", buf.VertexCount())
	for _, e := range buf.Edges() {
		fmt.Printf("edge %d-%d\n", e.A, e.B)
	}
	// Output:
	// vertices: 3
	// edge 0-1
	// edge 1-2
}
