// Package matrix provides the dense distance tables used by the metrics
// stage.
//
// The package provides:
//
//   - Dense, a row-major float64 matrix stored in one flat slice.
//   - FloydWarshall, an in-place all-pairs shortest-path closure with a fixed
//     k → i → j loop order.
//   - HopDistances, which builds the undirected hop-count table of a
//     core.Adjacency view (+Inf marks unreachable pairs).
//   - MaxFinite, which reads the diameter off a distance table.
//
// Dense tables cost O(V²) memory and Floyd–Warshall O(V³) time; callers are
// expected to enforce a node ceiling before building one.
package matrix
