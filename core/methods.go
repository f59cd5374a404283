// SPDX-License-Identifier: MIT

package core

import "fmt"

// Clone returns a deep copy of g. Community pointers are re-allocated so the
// copy can be annotated without touching the source.
// Complexity: O(V + E).
func (g *Graph) Clone() *Graph {
	if g == nil {
		return NewGraph()
	}
	out := &Graph{
		Nodes: make([]Node, len(g.Nodes)),
		Links: make([]Link, len(g.Links)),
	}
	copy(out.Nodes, g.Nodes)
	copy(out.Links, g.Links)
	for i := range out.Nodes {
		if c := out.Nodes[i].Community; c != nil {
			out.Nodes[i].Community = IntPtr(*c)
		}
	}

	return out
}

// IndexByID returns a fresh map from node ID to its position in g.Nodes.
// On duplicate IDs the first position wins.
// Complexity: O(V).
func (g *Graph) IndexByID() map[string]int {
	idx := make(map[string]int, len(g.Nodes))
	for i, n := range g.Nodes {
		if _, seen := idx[n.ID]; !seen {
			idx[n.ID] = i
		}
	}

	return idx
}

// NodeIDs returns node IDs in node order.
func (g *Graph) NodeIDs() []string {
	ids := make([]string, len(g.Nodes))
	for i, n := range g.Nodes {
		ids[i] = n.ID
	}

	return ids
}

// Lookup returns the node with the given ID.
// Returns ErrNodeNotFound if no such node exists.
func (g *Graph) Lookup(id string) (Node, error) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, nil
		}
	}

	return Node{}, fmt.Errorf("%w: %q", ErrNodeNotFound, id)
}

// Empty reports whether g has no nodes.
func (g *Graph) Empty() bool {
	return g == nil || len(g.Nodes) == 0
}

// Validate checks the Graph invariants in a fixed order:
// node IDs first, then link endpoints, then weights.
func (g *Graph) Validate() error {
	seen := make(map[string]struct{}, len(g.Nodes))
	for i, n := range g.Nodes {
		if n.ID == "" {
			return fmt.Errorf("node %d: %w", i, ErrEmptyNodeID)
		}
		if _, dup := seen[n.ID]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateNode, n.ID)
		}
		seen[n.ID] = struct{}{}
	}
	for i, l := range g.Links {
		if _, ok := seen[l.Source]; !ok {
			return fmt.Errorf("link %d source %q: %w", i, l.Source, ErrDanglingLink)
		}
		if _, ok := seen[l.Target]; !ok {
			return fmt.Errorf("link %d target %q: %w", i, l.Target, ErrDanglingLink)
		}
		if l.Weight < 1 {
			return fmt.Errorf("link %d (%s->%s) weight %d: %w", i, l.Source, l.Target, l.Weight, ErrBadWeight)
		}
	}

	return nil
}

// DropDangling returns a copy of g without links whose endpoints are not
// nodes, together with the number of links removed.
func (g *Graph) DropDangling() (*Graph, int) {
	out := g.Clone()
	idx := out.IndexByID()
	kept := out.Links[:0]
	for _, l := range out.Links {
		_, okS := idx[l.Source]
		_, okT := idx[l.Target]
		if okS && okT {
			kept = append(kept, l)
		}
	}
	dropped := len(out.Links) - len(kept)
	out.Links = kept

	return out, dropped
}

// Subgraph returns a copy of g restricted to the nodes for which keep
// returns true. Only links whose both endpoints survive are retained, so the
// result never has dangling links. Node and link order are preserved.
func (g *Graph) Subgraph(keep func(Node) bool) *Graph {
	out := &Graph{
		Nodes: make([]Node, 0, len(g.Nodes)),
		Links: make([]Link, 0, len(g.Links)),
	}
	kept := make(map[string]struct{}, len(g.Nodes))
	for _, n := range g.Nodes {
		if !keep(n) {
			continue
		}
		if n.Community != nil {
			n.Community = IntPtr(*n.Community)
		}
		out.Nodes = append(out.Nodes, n)
		kept[n.ID] = struct{}{}
	}
	for _, l := range g.Links {
		_, okS := kept[l.Source]
		_, okT := kept[l.Target]
		if okS && okT {
			out.Links = append(out.Links, l)
		}
	}

	return out
}

// FilterLinks returns a copy of g keeping only links for which keep returns
// true. Nodes are untouched.
func (g *Graph) FilterLinks(keep func(Link) bool) *Graph {
	out := g.Clone()
	kept := out.Links[:0]
	for _, l := range out.Links {
		if keep(l) {
			kept = append(kept, l)
		}
	}
	out.Links = kept

	return out
}

// IntPtr returns a pointer to a copy of v.
func IntPtr(v int) *int {
	return &v
}
