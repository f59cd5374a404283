// Package filter turns an ordered message log into a weighted interaction
// graph.
//
// Build applies, in order:
//
//  1. message filters: date/time bounds, text length, username, keywords;
//  2. first/last windowing of the surviving sequence;
//  3. reply folding: each message whose author differs from the previous
//     surviving author adds one to the link previous → current;
//  4. author filters: message-count bounds, top-N active users and the
//     explicit allow-list; links lose any endpoint that was dropped.
//
// Nodes appear in first-appearance order with Messages set to the number of
// surviving messages of that author. An empty log, or a log where every
// message is filtered out, yields an empty graph.
package filter

import (
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/cases"

	"github.com/katalvlaran/netxplore/core"
)

// bounds is the compiled form of the date/time options.
type bounds struct {
	loc        *time.Location
	from, to   time.Time
	hasFrom    bool
	hasTo      bool
	todFrom    time.Duration
	todTo      time.Duration
	hasTodFrom bool
	hasTodTo   bool
}

// compileBounds assumes sanitized options.
func compileBounds(o Options) bounds {
	b := bounds{loc: o.Location}
	if b.loc == nil {
		b.loc = time.UTC
	}

	if o.StartDate != "" {
		d, _ := time.ParseInLocation(DateLayout, o.StartDate, b.loc)
		if o.StartTime != "" {
			off, _ := parseClock(o.StartTime)
			d = d.Add(off)
		}
		b.from, b.hasFrom = d, true
	} else if o.StartTime != "" {
		b.todFrom, _ = parseClock(o.StartTime)
		b.hasTodFrom = true
	}

	if o.EndDate != "" {
		d, _ := time.ParseInLocation(DateLayout, o.EndDate, b.loc)
		off := 23*time.Hour + 59*time.Minute + 59*time.Second
		if o.EndTime != "" {
			off, _ = parseClock(o.EndTime)
		}
		// the whole last second is inclusive
		b.to, b.hasTo = d.Add(off+time.Second-time.Nanosecond), true
	} else if o.EndTime != "" {
		b.todTo, _ = parseClock(o.EndTime)
		b.hasTodTo = true
	}

	return b
}

// admit reports whether ts satisfies the bounds.
func (b bounds) admit(ts time.Time) bool {
	if b.hasFrom && ts.Before(b.from) {
		return false
	}
	if b.hasTo && ts.After(b.to) {
		return false
	}
	if !b.hasTodFrom && !b.hasTodTo {
		return true
	}

	local := ts.In(b.loc)
	tod := time.Duration(local.Hour())*time.Hour +
		time.Duration(local.Minute())*time.Minute +
		time.Duration(local.Second())*time.Second
	switch {
	case b.hasTodFrom && b.hasTodTo && b.todFrom > b.todTo:
		// window wraps midnight, e.g. 22:00 → 02:00
		return tod >= b.todFrom || tod <= b.todTo
	case b.hasTodFrom && tod < b.todFrom:
		return false
	case b.hasTodTo && tod > b.todTo:
		return false
	}

	return true
}

// Build folds msgs into an interaction graph under opts. Malformed options
// are replaced by safe defaults (see Options.Sanitize). msgs is not modified.
func Build(msgs []core.Message, opts Options) *core.Graph {
	o, _ := opts.Sanitize()
	fold := cases.Fold()

	b := compileBounds(o)
	username := fold.String(o.Username)
	keywords := make([]string, len(o.Keywords))
	for i, kw := range o.Keywords {
		keywords[i] = fold.String(kw)
	}

	kept := make([]core.Message, 0, len(msgs))
	for _, m := range msgs {
		if m.Author == "" || !b.admit(m.Timestamp) {
			continue
		}
		n := utf8.RuneCountInString(m.Text)
		if o.MinLength > 0 && n < o.MinLength {
			continue
		}
		if o.MaxLength > 0 && n > o.MaxLength {
			continue
		}
		if username != "" && fold.String(m.Author) != username {
			continue
		}
		if len(keywords) > 0 && !containsAny(fold.String(m.Text), keywords) {
			continue
		}
		kept = append(kept, m)
	}

	kept = window(kept, o.Limit, o.LimitType)

	gb := core.NewBuilder()
	prev := ""
	for _, m := range kept {
		_ = gb.CountMessage(m.Author)
		if prev != "" && prev != m.Author {
			_ = gb.AddLink(prev, m.Author, 1)
		}
		prev = m.Author
	}
	g := gb.Graph()

	if o.MinMessages == 0 && o.MaxMessages == 0 && o.ActiveUsers == 0 && len(o.SelectedUsers) == 0 {
		return g
	}

	allowed := authorSet(g, o, fold)

	return g.Subgraph(func(n core.Node) bool {
		_, ok := allowed[n.ID]
		return ok
	})
}

// window keeps the first or last limit messages.
func window(msgs []core.Message, limit int, lt LimitType) []core.Message {
	if limit <= 0 || limit >= len(msgs) || lt == LimitAll {
		return msgs
	}
	if lt == LimitLast {
		return msgs[len(msgs)-limit:]
	}

	return msgs[:limit]
}

// authorSet applies the author-level filters to the nodes of g.
func authorSet(g *core.Graph, o Options, fold cases.Caser) map[string]struct{} {
	candidates := make([]core.Node, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		if o.MinMessages > 0 && n.Messages < o.MinMessages {
			continue
		}
		if o.MaxMessages > 0 && n.Messages > o.MaxMessages {
			continue
		}
		candidates = append(candidates, n)
	}

	if o.ActiveUsers > 0 && o.ActiveUsers < len(candidates) {
		// stable: equal counts keep first-appearance order
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].Messages > candidates[j].Messages
		})
		candidates = candidates[:o.ActiveUsers]
	}

	var selected map[string]struct{}
	if len(o.SelectedUsers) > 0 {
		selected = make(map[string]struct{}, len(o.SelectedUsers))
		for _, u := range o.SelectedUsers {
			selected[fold.String(u)] = struct{}{}
		}
	}

	out := make(map[string]struct{}, len(candidates))
	for _, n := range candidates {
		if selected != nil {
			if _, ok := selected[fold.String(n.ID)]; !ok {
				continue
			}
		}
		out[n.ID] = struct{}{}
	}

	return out
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}

	return false
}
