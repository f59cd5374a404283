// Package customize maps an annotated interaction graph and a
// VisualizationSettings value onto per-node render attributes.
//
// ColorBy and SizeBy are closed enums; each variant has exactly one
// strategy and unknown values are rejected by Validate. Metric-driven sizes
// interpolate linearly between NodeSizes.Min and NodeSizes.Max using
// value / max over all nodes. Metric-driven colors blend GradientBase
// towards an accent color channel by channel.
//
// Community colors come from CommunityOverrides, then from
// CustomColors.CommunityColors, or from the named ColorScheme palette when
// one is set. Available palettes: default, pastel, vivid, monochrome,
// colorful, sequential and netxplore.
//
// Apply is pure; it is safe to call concurrently.
package customize
