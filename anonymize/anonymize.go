// SPDX-License-Identifier: MIT

// Package anonymize replaces node identifiers with pseudonymous aliases.
//
// The mapping is injective within one graph and applied to nodes and link
// endpoints alike, so the anonymized graph has exactly the shape of the
// input. Sequential mode numbers nodes in graph order; keyed mode derives
// each alias from a name-based UUID (SHA-1) under a namespace built from
// the caller's key, growing the alias by hex digits whenever two IDs share
// a prefix.
package anonymize

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/katalvlaran/netxplore/core"
)

// Apply returns an anonymized copy of g and the mapping that was used.
//
// Errors: ErrGraphNil, ErrOptionViolation, ErrUnknownMode, ErrAliasCollision
// and the core.Validate errors for malformed graphs.
func Apply(g *core.Graph, opts ...Option) (*core.Graph, *Mapping, error) {
	if g == nil {
		return nil, nil, ErrGraphNil
	}
	if err := g.Validate(); err != nil {
		return nil, nil, fmt.Errorf("anonymize: %w", err)
	}
	m, err := NewMapping(g.NodeIDs(), opts...)
	if err != nil {
		return nil, nil, err
	}
	out, err := m.Rewrite(g)
	if err != nil {
		return nil, nil, err
	}

	return out, m, nil
}

// NewMapping builds the alias table for ids. Repeated IDs are mapped once;
// sequential numbering follows first appearance. Use it directly when
// several graphs must share one table.
func NewMapping(ids []string, opts ...Option) (*Mapping, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	uniq := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; !dup {
			seen[id] = struct{}{}
			uniq = append(uniq, id)
		}
	}

	if o.Mode == ModeKeyed {
		return keyed(uniq, o)
	}

	return sequential(uniq, o.Prefix), nil
}

// Rewrite returns a copy of g with node IDs and link endpoints replaced by
// their aliases. Every ID of g must be mapped.
func (m *Mapping) Rewrite(g *core.Graph) (*core.Graph, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	out := g.Clone()
	for i := range out.Nodes {
		a, err := m.must(out.Nodes[i].ID)
		if err != nil {
			return nil, err
		}
		out.Nodes[i].ID = a
	}
	for i := range out.Links {
		l := &out.Links[i]
		var err error
		if l.Source, err = m.must(l.Source); err != nil {
			return nil, err
		}
		if l.Target, err = m.must(l.Target); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func (m *Mapping) must(id string) (string, error) {
	a, ok := m.Alias(id)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnmappedID, id)
	}

	return a, nil
}

func sequential(ids []string, prefix string) *Mapping {
	m := &Mapping{aliases: make(map[string]string, len(ids))}
	for i, id := range ids {
		m.aliases[id] = prefix + strconv.Itoa(i+1)
	}

	return m
}

// keyed assigns each ID the shortest free prefix (at least keyedMinLen hex
// digits) of its keyed UUID.
func keyed(ids []string, o Options) (*Mapping, error) {
	ns := uuid.NewSHA1(uuid.NameSpaceOID, []byte(o.Key))
	m := &Mapping{aliases: make(map[string]string, len(ids))}
	taken := make(map[string]string, len(ids))

	for _, id := range ids {
		digest := strings.ReplaceAll(uuid.NewSHA1(ns, []byte(id)).String(), "-", "")
		alias := ""
		for n := keyedMinLen; n <= len(digest); n++ {
			candidate := o.Prefix + digest[:n]
			if _, used := taken[candidate]; !used {
				alias = candidate
				break
			}
		}
		if alias == "" {
			return nil, fmt.Errorf("%w: %q and %q", ErrAliasCollision, id, taken[o.Prefix+digest])
		}
		taken[alias] = id
		m.aliases[id] = alias
	}

	return m, nil
}
