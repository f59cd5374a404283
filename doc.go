// Package netxplore turns chat message logs into directed interaction
// graphs and analyzes them.
//
// A link u→v of weight w means v posted right after u, w times, within the
// filtered message sequence. On top of that graph the module computes
// per-user centralities, partitions users into communities, compares two
// sources, maps metrics onto node sizes and colors and replaces user names
// with aliases.
//
// Packages:
//
//	core/       — Message, Node, Link and Graph types plus the graph builder
//	filter/     — message filtering and graph construction
//	metrics/    — degree, closeness, betweenness, eigenvector and PageRank
//	community/  — Louvain community detection and modularity
//	compare/    — differences between two filtered graphs
//	customize/  — node sizes, colors and highlights for rendering
//	anonymize/  — sequential or keyed user aliases
//	pipeline/   — the staged engine wiring the packages together
//	matrix/     — dense distance tables and Floyd–Warshall
//	bfs/        — breadth-first distances and shortest-path counts
//
// Quick example:
//
//	ann ──► ben ──► ann ──► cat ──► ben
//
//	gives links ann→ben, ben→ann, ann→cat and cat→ben, a graph of
//	density 1 whose users all reach each other.
//
// The netxplore command (cmd/netxplore) stores sources in SQLite and serves
// the engine over HTTP and the command line.
package netxplore
