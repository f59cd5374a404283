package filter

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnknownLimitType is returned by ParseLimitType for unrecognized values.
var ErrUnknownLimitType = errors.New("filter: unknown limit type")

// LimitType selects which end of the message sequence a Limit keeps.
type LimitType string

const (
	// LimitFirst keeps the first N messages.
	LimitFirst LimitType = "first"
	// LimitLast keeps the last N messages.
	LimitLast LimitType = "last"
	// LimitAll ignores Limit.
	LimitAll LimitType = "all"
)

// ParseLimitType maps a request value onto a LimitType.
// The empty string maps to LimitFirst.
func ParseLimitType(s string) (LimitType, error) {
	switch LimitType(strings.ToLower(strings.TrimSpace(s))) {
	case "", LimitFirst:
		return LimitFirst, nil
	case LimitLast:
		return LimitLast, nil
	case LimitAll:
		return LimitAll, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownLimitType, s)
}

// Layouts accepted for date and time-of-day bounds.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"

	shortTimeLayout = "15:04"
)

// Options configures Build. The zero value keeps every message.
//
// Dates use DateLayout; times use TimeLayout (HH:MM is accepted too).
// A date combined with its time forms an instant bound; a time without a
// date is a daily time-of-day window. Zero numeric bounds are unbounded.
type Options struct {
	StartDate string
	EndDate   string
	StartTime string
	EndTime   string

	// Location interprets dates and times; nil means UTC.
	Location *time.Location

	Limit     int
	LimitType LimitType

	MinLength int
	MaxLength int

	// Keywords keeps messages containing any of them (case-insensitive).
	Keywords []string

	// Username keeps only messages of this author (case-insensitive).
	Username string

	MinMessages int
	MaxMessages int

	// ActiveUsers keeps the N authors with most surviving messages.
	ActiveUsers int

	// SelectedUsers is a case-insensitive author allow-list.
	SelectedUsers []string
}

// SplitList splits a comma-separated request value into trimmed,
// non-empty entries.
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return out
}

// Sanitize returns a copy of o with malformed values replaced by safe
// defaults, plus one human-readable note per correction. It never fails.
func (o Options) Sanitize() (Options, []string) {
	var notes []string
	note := func(format string, args ...any) {
		notes = append(notes, fmt.Sprintf(format, args...))
	}

	for _, f := range []struct {
		name string
		v    *string
	}{
		{"start_date", &o.StartDate},
		{"end_date", &o.EndDate},
	} {
		if *f.v == "" {
			continue
		}
		if _, err := time.Parse(DateLayout, *f.v); err != nil {
			note("%s %q is not %s; ignored", f.name, *f.v, DateLayout)
			*f.v = ""
		}
	}
	for _, f := range []struct {
		name string
		v    *string
	}{
		{"start_time", &o.StartTime},
		{"end_time", &o.EndTime},
	} {
		if *f.v == "" {
			continue
		}
		if _, err := parseClock(*f.v); err != nil {
			note("%s %q is not HH:MM[:SS]; ignored", f.name, *f.v)
			*f.v = ""
		}
	}

	if lt, err := ParseLimitType(string(o.LimitType)); err != nil {
		note("limit_type %q unknown; using %q", o.LimitType, LimitFirst)
		o.LimitType = LimitFirst
	} else {
		o.LimitType = lt
	}

	for _, f := range []struct {
		name string
		v    *int
	}{
		{"limit", &o.Limit},
		{"min_length", &o.MinLength},
		{"max_length", &o.MaxLength},
		{"min_messages", &o.MinMessages},
		{"max_messages", &o.MaxMessages},
		{"active_users", &o.ActiveUsers},
	} {
		if *f.v < 0 {
			note("%s %d is negative; ignored", f.name, *f.v)
			*f.v = 0
		}
	}
	if o.MaxLength > 0 && o.MinLength > o.MaxLength {
		note("min_length %d > max_length %d; swapped", o.MinLength, o.MaxLength)
		o.MinLength, o.MaxLength = o.MaxLength, o.MinLength
	}
	if o.MaxMessages > 0 && o.MinMessages > o.MaxMessages {
		note("min_messages %d > max_messages %d; swapped", o.MinMessages, o.MaxMessages)
		o.MinMessages, o.MaxMessages = o.MaxMessages, o.MinMessages
	}

	o.Keywords = compact(o.Keywords)
	o.SelectedUsers = compact(o.SelectedUsers)
	o.Username = strings.TrimSpace(o.Username)

	return o, notes
}

// compact trims entries and drops empty ones.
func compact(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}

	return out
}

// parseClock parses HH:MM:SS or HH:MM into an offset from midnight.
func parseClock(s string) (time.Duration, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		if t, err = time.Parse(shortTimeLayout, s); err != nil {
			return 0, err
		}
	}

	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second, nil
}
