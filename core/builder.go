// SPDX-License-Identifier: MIT

package core

// pair is an ordered (source, target) key for link folding.
type pair struct {
	from, to string
}

// Builder accumulates nodes and links, folding repeated interactions between
// the same ordered pair into a single Link with increasing Weight.
//
// Node order is first-AddNode order; link order is first-occurrence order.
// The zero value is not usable; call NewBuilder.
type Builder struct {
	g     *Graph
	nodes map[string]int
	links map[pair]int
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		g:     NewGraph(),
		nodes: make(map[string]int),
		links: make(map[pair]int),
	}
}

// AddNode adds a node if it does not exist yet and returns its position.
// Returns ErrEmptyNodeID for an empty ID.
func (b *Builder) AddNode(id string) (int, error) {
	if id == "" {
		return -1, ErrEmptyNodeID
	}
	if i, ok := b.nodes[id]; ok {
		return i, nil
	}
	b.g.Nodes = append(b.g.Nodes, Node{ID: id})
	i := len(b.g.Nodes) - 1
	b.nodes[id] = i

	return i, nil
}

// CountMessage increments the message counter of id, adding the node when
// it is new.
func (b *Builder) CountMessage(id string) error {
	i, err := b.AddNode(id)
	if err != nil {
		return err
	}
	b.g.Nodes[i].Messages++

	return nil
}

// AddLink records one interaction from → to of the given weight. Both
// endpoints are added as nodes when missing. Self-loops are ignored.
// Returns ErrEmptyNodeID or ErrBadWeight on invalid input.
func (b *Builder) AddLink(from, to string, weight int) error {
	if weight < 1 {
		return ErrBadWeight
	}
	if _, err := b.AddNode(from); err != nil {
		return err
	}
	if _, err := b.AddNode(to); err != nil {
		return err
	}
	if from == to {
		return nil
	}
	k := pair{from: from, to: to}
	if i, ok := b.links[k]; ok {
		b.g.Links[i].Weight += weight
		return nil
	}
	b.g.Links = append(b.g.Links, Link{Source: from, Target: to, Weight: weight})
	b.links[k] = len(b.g.Links) - 1

	return nil
}

// Has reports whether id was added.
func (b *Builder) Has(id string) bool {
	_, ok := b.nodes[id]
	return ok
}

// Graph returns the accumulated graph. The Builder must not be used after.
func (b *Builder) Graph() *Graph {
	return b.g
}
