// Package community detects communities in an interaction graph by
// modularity optimization.
//
// Louvain is the only registered algorithm. ParseAlgorithm and
// WithAlgorithm reject every other name with ErrUnknownAlgorithm instead of
// silently falling back.
//
// Modularity of a partition:
//
//	Q = Σ_c [ in_c / 2m − γ·(tot_c / 2m)² ]
//
// where in_c is the weight inside community c counted over ordered pairs,
// tot_c the summed weighted degree of its members, 2m the total weighted
// degree and γ the resolution (1 by default).
//
// Determinism: nodes are visited in graph order, candidate communities in
// ascending label order, and final IDs are assigned by first appearance.
package community
