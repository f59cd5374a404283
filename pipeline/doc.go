// Package pipeline wires the netxplore stages into request-level
// operations: Analyze, Communities, Compare and Customize.
//
// Each operation loads the messages of a stored source, sanitizes and
// applies the filter, checks the size ceilings, computes metrics and runs
// the later stages on copies of the graph. The request context is checked
// before every stage; a stage that has started runs to completion except
// where the stage itself honours the context (metrics, communities).
//
// Compare runs its two single-source pipelines concurrently with errgroup;
// the first error cancels the other side.
package pipeline
