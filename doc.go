// Package webmesh builds and maintains web-like edge meshes over moving
// 3D point clouds.
//
// Each update takes a point cloud, finds the k nearest neighbors of
// every point (exact brute force or an approximate HNSW index), and
// synchronizes a persistent mesh buffer with the resulting neighbor
// graph: one vertex per point, one undirected edge per deduplicated
// neighbor pair. When the point count is unchanged between updates the
// vertices are repositioned in place; otherwise the buffer is rebuilt.
//
// # Quick Start
//
//	w, _ := webmesh.New(
//	    webmesh.WithK(4),
//	    webmesh.WithMetric(distance.MetricEuclidean),
//	)
//
//	buf, _ := w.Update(ctx, "web", points)
//	fmt.Println(buf.VertexCount(), buf.EdgeCount())
//
//	// Next frame: same names reuse the same buffer.
//	buf, _ = w.Update(ctx, "web", movedPoints)
//
// # Approximate Mode
//
// For large clouds the exact O(N²) search can be replaced with an HNSW
// index built per update:
//
//	w, _ := webmesh.New(webmesh.WithK(4), webmesh.WithApproximateIndex(true))
//
// The table shape contract is unchanged; only neighbor quality varies.
// If index construction fails, the update falls back to exact search
// with a warning.
//
// # Snapshots
//
// A configured blob store receives a compressed, self-describing
// snapshot of every buffer after each update:
//
//	store, _ := blobstore.NewLocalStore("./webs")
//	w, _ := webmesh.New(webmesh.WithK(4), webmesh.WithSnapshotStore(store))
//
// # Key Features
//
//   - Exact and approximate (HNSW) k-nearest-neighbor search
//   - Four metrics: euclidean, manhattan, dot (squared euclidean), angular
//   - Deterministic exact mode, optional in-call parallelism
//   - Reposition-vs-rebuild vertex buffer reuse across frames
//   - Compressed frame snapshots to local disk, S3, or MinIO
package webmesh
