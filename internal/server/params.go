package server

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/katalvlaran/netxplore/anonymize"
	"github.com/katalvlaran/netxplore/compare"
	"github.com/katalvlaran/netxplore/customize"
	"github.com/katalvlaran/netxplore/filter"
	"github.com/katalvlaran/netxplore/pipeline"
)

// query wraps url.Values and collects notes for values it had to ignore.
type query struct {
	v     url.Values
	notes []string
}

func (q *query) str(name string) string {
	return strings.TrimSpace(q.v.Get(name))
}

// number parses name, noting and ignoring malformed values.
func (q *query) number(name string) int {
	s := q.str(name)
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		q.notes = append(q.notes, fmt.Sprintf("%s %q is not an integer; ignored", name, s))
		return 0
	}

	return n
}

// flag parses name, noting and ignoring malformed values.
func (q *query) flag(name string) bool {
	s := q.str(name)
	if s == "" {
		return false
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		q.notes = append(q.notes, fmt.Sprintf("%s %q is not a boolean; ignored", name, s))
		return false
	}

	return b
}

// filterOptions reads the shared filter parameters. Values are sanitized
// later by the pipeline.
func (q *query) filterOptions() filter.Options {
	return filter.Options{
		StartDate:     q.str("start_date"),
		EndDate:       q.str("end_date"),
		StartTime:     q.str("start_time"),
		EndTime:       q.str("end_time"),
		Limit:         q.number("limit"),
		LimitType:     filter.LimitType(q.str("limit_type")),
		MinLength:     q.number("min_length"),
		MaxLength:     q.number("max_length"),
		Keywords:      filter.SplitList(q.v.Get("keywords")),
		Username:      q.str("username"),
		MinMessages:   q.number("min_messages"),
		MaxMessages:   q.number("max_messages"),
		ActiveUsers:   q.number("active_users"),
		SelectedUsers: filter.SplitList(q.v.Get("selected_users")),
	}
}

func (q *query) anonymization() pipeline.Anonymization {
	return pipeline.Anonymization{
		Enabled: q.flag("anonymize"),
		Mode:    anonymize.Mode(q.str("anonymize_mode")),
		Phase:   anonymize.Phase(q.str("anonymize_phase")),
	}
}

// settings reads visualization parameters over the defaults. It returns
// nil when the request asks for no customization.
func (q *query) settings() *customize.VisualizationSettings {
	colorBy, sizeBy, scheme := q.str("color_by"), q.str("size_by"), q.str("color_scheme")
	users := filter.SplitList(q.v.Get("highlight_users"))
	important := q.flag("show_important_nodes")
	if colorBy == "" && sizeBy == "" && scheme == "" && len(users) == 0 && !important {
		return nil
	}

	s := customize.DefaultSettings()
	s.ColorBy = customize.ColorBy(colorBy)
	s.SizeBy = customize.SizeBy(sizeBy)
	s.ColorScheme = scheme
	s.HighlightUsers = users
	s.ShowImportantNodes = important

	return &s
}

// compareOptions reads the comparison parameters. Unknown metric names are
// an error.
func (q *query) compareOptions() (compare.Options, error) {
	ms, err := compare.ParseMetrics(filter.SplitList(q.v.Get("metrics")))
	if err != nil {
		return compare.Options{}, err
	}

	return compare.Options{
		NodeFilter:      q.str("node_filter"),
		MinWeight:       q.number("min_weight"),
		HighlightCommon: q.flag("highlight_common"),
		Metrics:         ms,
	}, nil
}
