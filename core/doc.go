// Package core defines the value types shared by every netxplore stage:
// Message, Node, Link and Graph, plus a Builder that folds repeated
// interactions into weighted links and an Adjacency view used by the
// metric and community algorithms.
//
// A Graph is plain data. Nodes and links live in two slices (an arena);
// relationships are expressed through node IDs and, inside algorithms,
// through slice positions obtained from IndexByID. No node holds a pointer
// to another node, so copying a Graph is a matter of copying two slices.
//
// Invariants of a valid Graph (checked by Validate):
//
//   - every node ID is non-empty and unique;
//   - every link endpoint names an existing node (no dangling links);
//   - every link weight is ≥ 1.
//
// Stages never mutate their input graph. They call Clone and annotate the
// copy, so a caller may run several stages over the same source graph
// concurrently.
//
// Determinism:
//
//   - Nodes keep the order in which they were first added.
//   - Links keep the order of their first occurrence; later occurrences of
//     the same ordered pair only increase Weight.
//   - Adjacency neighbor lists are sorted by node position.
//
// Errors:
//
//	ErrEmptyNodeID   - node ID is the empty string.
//	ErrDuplicateNode - a node ID occurs twice.
//	ErrDanglingLink  - a link endpoint does not name a node.
//	ErrNodeNotFound  - a lookup referenced a missing node.
//	ErrBadWeight     - a link weight is below 1.
package core
