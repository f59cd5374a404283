// Package metrics computes node centralities and global structure figures
// for an interaction graph.
//
// Compute runs a fixed sequence of passes over an annotated copy of the
// input:
//
//	degree       raw in/out link counts
//	distances    hop-distance table (matrix.HopDistances, Floyd–Warshall)
//	closeness    1 / Σ finite hop distances
//	betweenness  Brandes over bfs.BFS, normalized by (n-1)(n-2)
//	eigenvector  shifted power iteration, L2-normalized
//	pagerank     weighted power iteration, damping 0.85, sums to 1
//	density      2·pairs / (n(n-1))
//
// The context supplied through WithContext is checked between passes, and
// inside the per-source BFS of betweenness. WithLimits makes Compute fail
// fast with ErrGraphTooLarge before any cubic work starts.
//
// Results are deterministic: every loop walks nodes in graph order and the
// adjacency view lists neighbors in ascending position.
package metrics
