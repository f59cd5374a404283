// SPDX-License-Identifier: MIT

package customize

import (
	"fmt"
	"slices"

	"github.com/go-playground/validator/v10"

	"github.com/katalvlaran/netxplore/core"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// importantSizeFactor scales NodeSizes.Max for important nodes.
const importantSizeFactor = 0.8

// Validate checks the enum fields, the palette name and the struct tags.
func (s VisualizationSettings) Validate() error {
	if _, err := ParseColorBy(string(s.ColorBy)); err != nil {
		return err
	}
	if _, err := ParseSizeBy(string(s.SizeBy)); err != nil {
		return err
	}
	if _, err := Palette(s.ColorScheme); err != nil {
		return err
	}
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}

	return nil
}

// Apply returns a copy of g with Size, Color and the highlight flags set
// according to s. Neither g nor s is modified, and equal inputs always
// produce equal outputs.
//
// Per node, in order:
//  1. size from the SizeBy strategy and color from the ColorBy strategy;
//  2. IsHighlightedCommunity when the node's community is listed in
//     HighlightCommunities;
//  3. with ShowImportantNodes, nodes whose max(betweenness/maxBetweenness,
//     pagerank/maxPageRank) exceeds the threshold take the highlight color,
//     are flagged Highlighted and grow to at least 0.8·NodeSizes.Max.
//
// Nodes listed in HighlightUsers are always flagged Highlighted.
func Apply(g *core.Graph, s VisualizationSettings) (*core.Graph, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	colorBy, _ := ParseColorBy(string(s.ColorBy))
	sizeBy, _ := ParseSizeBy(string(s.SizeBy))

	palette := s.CustomColors.CommunityColors
	if len(palette) == 0 || s.ColorScheme != "" {
		palette, _ = Palette(s.ColorScheme)
	}

	out := g.Clone()
	sc := newScale(out, s, palette)
	sizeOf, colorOf := sizeStrategies[sizeBy], colorStrategies[colorBy]

	for i := range out.Nodes {
		n := &out.Nodes[i]
		color, err := colorOf(*n, sc)
		if err != nil {
			return nil, err
		}
		n.Color = color
		n.Size = sizeOf(*n, sc)
		n.Highlighted = slices.Contains(s.HighlightUsers, n.ID)

		id, ok := n.CommunityID()
		n.IsHighlightedCommunity = ok && slices.Contains(s.HighlightCommunities, id)

		if s.ShowImportantNodes && important(*n, sc) {
			n.Color = s.CustomColors.HighlightNodeColor
			n.Size = max(n.Size, s.NodeSizes.Max*importantSizeFactor)
			n.Highlighted = true
		}
	}

	return out, nil
}

func important(n core.Node, sc *scale) bool {
	imp := max(ratio(n.Betweenness, sc.maxBetweenness), ratio(n.PageRank, sc.maxPageRank))

	return imp > sc.s.ImportantNodesThreshold
}
