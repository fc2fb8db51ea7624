// Package match implements the criteria filter applied to command
// invocations: a set of optional predicates resolved against the
// container collection into the ordered working set a handler operates
// on.
package match

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/slatewm/slate/internal/layout"
)

// Pattern is a compiled regular expression that remembers its source
// text. Two patterns are the same predicate iff their sources are
// equal; the compiled form never takes part in comparisons.
type Pattern struct {
	re  *regexp.Regexp
	src string
}

// NewPattern compiles src into a pattern.
func NewPattern(src string) (*Pattern, error) {
	re, err := regexp.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("compile pattern %q: %w", src, err)
	}
	return &Pattern{re: re, src: src}, nil
}

// MatchString reports whether the pattern matches anywhere in s.
func (p *Pattern) MatchString(s string) bool { return p.re.MatchString(s) }

// Source returns the original pattern text, empty for a nil pattern.
func (p *Pattern) Source() string {
	if p == nil {
		return ""
	}
	return p.src
}

func (p *Pattern) String() string { return p.Source() }

// Tri is a three-valued predicate toggle: absent, required, excluded.
type Tri int

const (
	TriAny Tri = iota
	TriYes
	TriNo
)

func (t Tri) String() string {
	switch t {
	case TriYes:
		return "yes"
	case TriNo:
		return "no"
	default:
		return "any"
	}
}

// Anchor says where a container created after this match would attach.
// It rides along as criteria state but does not filter anything.
type Anchor int

const (
	AnchorHere Anchor = iota
	AnchorWorkspace
	AnchorBelow
)

func (a Anchor) String() string {
	switch a {
	case AnchorWorkspace:
		return "workspace"
	case AnchorBelow:
		return "below"
	default:
		return "here"
	}
}

// Match is the filter attached to one command invocation. A zero Match
// is the empty match, which targets the focused container. Matches are
// built fresh per invocation and discarded afterwards.
type Match struct {
	Class       *Pattern
	Instance    *Pattern
	Title       *Pattern
	Application *Pattern
	Role        *Pattern
	Mark        *Pattern

	// WindowID matches the window identity, ConID the container
	// identity. Container ids start at 1; a parse failure leaves the
	// sentinel 0 behind, a predicate that can never match.
	WindowID *uint64
	ConID    *uint64

	Dock     Tri
	Floating Tri
	Anchor   Anchor
}

// Add sets one criterion from its key/value form. Unknown keys return
// an error and leave the match unchanged. A malformed con_id or id
// value also returns an error but pins the predicate to the
// never-matching sentinel, so the criterion stays present.
func (m *Match) Add(key, value string) error {
	switch key {
	case "class":
		return setPattern(&m.Class, key, value)
	case "instance":
		return setPattern(&m.Instance, key, value)
	case "title":
		return setPattern(&m.Title, key, value)
	case "window_role":
		return setPattern(&m.Role, key, value)
	case "con_mark":
		return setPattern(&m.Mark, key, value)
	case "con_id":
		return setID(&m.ConID, key, value)
	case "id":
		return setID(&m.WindowID, key, value)
	default:
		return fmt.Errorf("unknown criterion: %s", key)
	}
}

func setPattern(dst **Pattern, key, value string) error {
	p, err := NewPattern(value)
	if err != nil {
		return fmt.Errorf("criterion %s: %w", key, err)
	}
	*dst = p
	return nil
}

func setID(dst **uint64, key, value string) error {
	n, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		zero := uint64(0)
		*dst = &zero
		return fmt.Errorf("criterion %s: cannot parse %q", key, value)
	}
	*dst = &n
	return nil
}

// Empty reports whether no predicate is present. The empty match is
// semantically "the focused container", distinct from a match that
// filters everything out.
func (m *Match) Empty() bool {
	return m.Class == nil && m.Instance == nil && m.Title == nil &&
		m.Application == nil && m.Role == nil && m.Mark == nil &&
		m.WindowID == nil && m.ConID == nil &&
		m.Dock == TriAny && m.Floating == TriAny &&
		m.Anchor == AnchorHere
}

// Matches evaluates the window predicates against one candidate. The
// candidate must hold a window; containers without one cannot satisfy
// this branch. Absent predicates are vacuously true.
func (m *Match) Matches(c *layout.Container) bool {
	w := c.Window
	if w == nil {
		return false
	}
	if m.Class != nil && !m.Class.MatchString(w.Class) {
		return false
	}
	if m.Instance != nil && !m.Instance.MatchString(w.Instance) {
		return false
	}
	if m.Title != nil && !m.Title.MatchString(w.Title) {
		return false
	}
	if m.Application != nil && !m.Application.MatchString(w.Application) {
		return false
	}
	if m.Role != nil && !m.Role.MatchString(w.Role) {
		return false
	}
	if m.WindowID != nil && *m.WindowID != w.ID {
		return false
	}
	switch m.Dock {
	case TriYes:
		if !w.Dock {
			return false
		}
	case TriNo:
		if w.Dock {
			return false
		}
	}
	switch m.Floating {
	case TriYes:
		if !c.Floating() {
			return false
		}
	case TriNo:
		if c.Floating() {
			return false
		}
	}
	return true
}
