// SPDX-License-Identifier: MIT

package customize

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for visualization customization.
var (
	// ErrGraphNil is returned if a nil graph pointer is passed.
	ErrGraphNil = errors.New("customize: graph is nil")

	// ErrUnknownColorBy is returned for a colorBy value outside the closed set.
	ErrUnknownColorBy = errors.New("customize: unknown colorBy")

	// ErrUnknownSizeBy is returned for a sizeBy value outside the closed set.
	ErrUnknownSizeBy = errors.New("customize: unknown sizeBy")

	// ErrUnknownScheme is returned for an unnamed color scheme.
	ErrUnknownScheme = errors.New("customize: unknown color scheme")

	// ErrInvalidSettings wraps struct-level validation failures.
	ErrInvalidSettings = errors.New("customize: invalid settings")
)

// ColorBy selects how node colors are chosen.
type ColorBy string

// Supported ColorBy variants.
const (
	ColorDefault     ColorBy = "default"
	ColorCommunity   ColorBy = "community"
	ColorDegree      ColorBy = "degree"
	ColorBetweenness ColorBy = "betweenness"
	ColorPageRank    ColorBy = "pagerank"
	ColorCustom      ColorBy = "custom"
)

// ParseColorBy maps a request value onto a ColorBy. The empty string is
// ColorDefault.
func ParseColorBy(s string) (ColorBy, error) {
	c := ColorBy(strings.ToLower(strings.TrimSpace(s)))
	if c == "" {
		return ColorDefault, nil
	}
	if _, ok := colorStrategies[c]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownColorBy, s)
	}

	return c, nil
}

// SizeBy selects the metric that drives node size.
type SizeBy string

// Supported SizeBy variants.
const (
	SizeDefault     SizeBy = "default"
	SizeMessages    SizeBy = "messages"
	SizeDegree      SizeBy = "degree"
	SizeBetweenness SizeBy = "betweenness"
	SizePageRank    SizeBy = "pagerank"
)

// ParseSizeBy maps a request value onto a SizeBy. The empty string is
// SizeDefault.
func ParseSizeBy(s string) (SizeBy, error) {
	v := SizeBy(strings.ToLower(strings.TrimSpace(s)))
	if v == "" {
		return SizeDefault, nil
	}
	if _, ok := sizeStrategies[v]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownSizeBy, s)
	}

	return v, nil
}

// NodeSizes bounds the rendered node radius.
type NodeSizes struct {
	Min float64 `json:"min" yaml:"min" validate:"gte=0"`
	Max float64 `json:"max" yaml:"max" validate:"gtefield=Min"`
}

// CustomColors holds the fixed colors of a rendering.
type CustomColors struct {
	DefaultNodeColor   string   `json:"defaultNodeColor" yaml:"defaultNodeColor" validate:"required,hexcolor"`
	HighlightNodeColor string   `json:"highlightNodeColor" yaml:"highlightNodeColor" validate:"required,hexcolor"`
	CommunityColors    []string `json:"communityColors" yaml:"communityColors" validate:"dive,hexcolor"`

	// EdgeColor is passed through to the renderer untouched; any CSS color.
	EdgeColor string `json:"edgeColor,omitempty" yaml:"edgeColor,omitempty"`
}

// VisualizationSettings is an immutable description of how a graph should
// be drawn. Apply never modifies it.
type VisualizationSettings struct {
	ColorBy     ColorBy `json:"colorBy" yaml:"colorBy"`
	SizeBy      SizeBy  `json:"sizeBy" yaml:"sizeBy"`
	ColorScheme string  `json:"colorScheme,omitempty" yaml:"colorScheme,omitempty"`

	NodeSizes    NodeSizes    `json:"nodeSizes" yaml:"nodeSizes"`
	CustomColors CustomColors `json:"customColors" yaml:"customColors"`

	// CommunityOverrides pins the color of individual communities.
	CommunityOverrides map[int]string `json:"communityOverrides,omitempty" yaml:"communityOverrides,omitempty" validate:"dive,hexcolor"`

	HighlightUsers       []string `json:"highlightUsers,omitempty" yaml:"highlightUsers,omitempty"`
	HighlightCommunities []int    `json:"highlightCommunities,omitempty" yaml:"highlightCommunities,omitempty"`

	ShowImportantNodes      bool    `json:"showImportantNodes" yaml:"showImportantNodes"`
	ImportantNodesThreshold float64 `json:"importantNodesThreshold" yaml:"importantNodesThreshold" validate:"gte=0,lte=1"`
}

// Colors used by the metric gradients.
const (
	GradientBase     = "#ffefca"
	BetweennessColor = "#ff5733"
	PageRankColor    = "#3366cc"
)

// DefaultSettings returns the toolbar defaults: minimum size 15, maximum 40,
// dark navy nodes, orange highlights and threshold 0.5.
func DefaultSettings() VisualizationSettings {
	return VisualizationSettings{
		ColorBy: ColorDefault,
		SizeBy:  SizeDefault,
		NodeSizes: NodeSizes{
			Min: 15,
			Max: 40,
		},
		CustomColors: CustomColors{
			DefaultNodeColor:   "#050d2d",
			HighlightNodeColor: "#ff5733",
			CommunityColors:    []string{"#ff5733", "#33ff57", "#3357ff", "#f3ff33", "#ff33f3", "#33fff3"},
			EdgeColor:          "rgba(128, 128, 128, 0.6)",
		},
		ImportantNodesThreshold: 0.5,
	}
}
