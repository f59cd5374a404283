package anonymize

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for pseudonymization.
var (
	// ErrGraphNil is returned if a nil graph pointer is passed.
	ErrGraphNil = errors.New("anonymize: graph is nil")

	// ErrUnknownMode is returned for a mode outside the closed set.
	ErrUnknownMode = errors.New("anonymize: unknown mode")

	// ErrUnknownPhase is returned for a phase outside the closed set.
	ErrUnknownPhase = errors.New("anonymize: unknown phase")

	// ErrAliasCollision is returned when two IDs hash to the same full
	// keyed alias.
	ErrAliasCollision = errors.New("anonymize: alias collision")

	// ErrUnmappedID is returned by Mapping.Rewrite for an ID outside the
	// mapping.
	ErrUnmappedID = errors.New("anonymize: ID has no alias")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("anonymize: invalid option supplied")
)

// Mode selects how aliases are generated.
type Mode string

const (
	// ModeSequential numbers nodes in graph order: User_1, User_2, ...
	ModeSequential Mode = "sequential"

	// ModeKeyed derives each alias from a keyed SHA-1 UUID of the ID, so the
	// same ID keeps its alias across requests that share a key.
	ModeKeyed Mode = "keyed"
)

// ParseMode maps a request value onto a Mode; "" is ModeSequential.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeSequential, nil
	case ModeSequential, ModeKeyed:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// Phase places anonymization in the analysis pipeline.
type Phase string

const (
	// PhaseEarly anonymizes right after filtering.
	PhaseEarly Phase = "early"

	// PhaseLate anonymizes after customization.
	PhaseLate Phase = "late"
)

// ParsePhase maps a request value onto a Phase; "" is PhaseEarly.
func ParsePhase(s string) (Phase, error) {
	switch p := Phase(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PhaseEarly, nil
	case PhaseEarly, PhaseLate:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPhase, s)
	}
}

// DefaultPrefix starts every alias.
const DefaultPrefix = "User_"

// keyedMinLen is the initial number of hex digits in a keyed alias.
const keyedMinLen = 8

// Option configures Apply.
type Option func(*Options)

// Options holds the Apply parameters.
type Options struct {
	Mode   Mode
	Key    string
	Prefix string

	err error
}

// DefaultOptions returns sequential mode with the "User_" prefix.
func DefaultOptions() Options {
	return Options{Mode: ModeSequential, Prefix: DefaultPrefix}
}

// WithMode sets the alias mode.
func WithMode(m Mode) Option {
	return func(o *Options) {
		if m != ModeSequential && m != ModeKeyed {
			o.err = fmt.Errorf("%w: %q", ErrUnknownMode, m)
			return
		}
		o.Mode = m
	}
}

// WithKey sets the secret that seeds keyed aliases.
func WithKey(key string) Option {
	return func(o *Options) { o.Key = key }
}

// WithPrefix replaces DefaultPrefix; it must not be empty.
func WithPrefix(p string) Option {
	return func(o *Options) {
		if p == "" {
			o.err = fmt.Errorf("%w: empty prefix", ErrOptionViolation)
			return
		}
		o.Prefix = p
	}
}

// Mapping is the alias table of one request. It lives only as
// long as the caller keeps it; nothing is persisted.
type Mapping struct {
	aliases map[string]string
}

// Alias returns the alias of id and whether id was mapped.
func (m *Mapping) Alias(id string) (string, bool) {
	if m == nil {
		return "", false
	}
	a, ok := m.aliases[id]

	return a, ok
}

// Len returns the number of mapped IDs.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}

	return len(m.aliases)
}

// AliasAll maps each id, keeping unmapped ones unchanged.
func (m *Mapping) AliasAll(ids []string) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		if a, ok := m.Alias(id); ok {
			out[i] = a
		} else {
			out[i] = id
		}
	}

	return out
}
