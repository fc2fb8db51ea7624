package match

import "fmt"

// Snapshot is a value copy of a Match taken at handler entry, safe to
// retain after the Match itself is discarded. Regex predicates collapse
// to their source text: two snapshots agree on a pattern iff both are
// absent or both carry identical source.
type Snapshot struct {
	Class       *string `json:"class,omitempty"`
	Instance    *string `json:"instance,omitempty"`
	Title       *string `json:"title,omitempty"`
	Application *string `json:"application,omitempty"`
	Role        *string `json:"role,omitempty"`
	Mark        *string `json:"mark,omitempty"`

	WindowID *uint64 `json:"window_id,omitempty"`
	ConID    *uint64 `json:"con_id,omitempty"`

	Dock     Tri    `json:"dock,omitempty"`
	Floating Tri    `json:"floating,omitempty"`
	Anchor   Anchor `json:"anchor,omitempty"`
}

// Snapshot captures the match state by value.
func (m *Match) Snapshot() Snapshot {
	return Snapshot{
		Class:       patternSource(m.Class),
		Instance:    patternSource(m.Instance),
		Title:       patternSource(m.Title),
		Application: patternSource(m.Application),
		Role:        patternSource(m.Role),
		Mark:        patternSource(m.Mark),
		WindowID:    copyID(m.WindowID),
		ConID:       copyID(m.ConID),
		Dock:        m.Dock,
		Floating:    m.Floating,
		Anchor:      m.Anchor,
	}
}

func patternSource(p *Pattern) *string {
	if p == nil {
		return nil
	}
	src := p.src
	return &src
}

func copyID(id *uint64) *uint64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

// Equal reports whether two snapshots describe the same criteria.
func (s Snapshot) Equal(o Snapshot) bool {
	return s.Diff(o) == ""
}

// Diff returns a description of the first differing field, empty when
// the snapshots agree.
func (s Snapshot) Diff(o Snapshot) string {
	type pat struct {
		name string
		a, b *string
	}
	for _, p := range []pat{
		{"class", s.Class, o.Class},
		{"instance", s.Instance, o.Instance},
		{"title", s.Title, o.Title},
		{"application", s.Application, o.Application},
		{"role", s.Role, o.Role},
		{"mark", s.Mark, o.Mark},
	} {
		if !strEq(p.a, p.b) {
			return fmt.Sprintf("criteria %s: %s != %s", p.name, fmtStr(p.a), fmtStr(p.b))
		}
	}
	if !idEq(s.WindowID, o.WindowID) {
		return fmt.Sprintf("criteria window id: %s != %s", fmtID(s.WindowID), fmtID(o.WindowID))
	}
	if !idEq(s.ConID, o.ConID) {
		return fmt.Sprintf("criteria container id: %s != %s", fmtID(s.ConID), fmtID(o.ConID))
	}
	if s.Dock != o.Dock {
		return fmt.Sprintf("criteria dock: %s != %s", s.Dock, o.Dock)
	}
	if s.Floating != o.Floating {
		return fmt.Sprintf("criteria floating: %s != %s", s.Floating, o.Floating)
	}
	if s.Anchor != o.Anchor {
		return fmt.Sprintf("criteria anchor: %s != %s", s.Anchor, o.Anchor)
	}
	return ""
}

func strEq(a, b *string) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return a == nil || *a == *b
}

func idEq(a, b *uint64) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return a == nil || *a == *b
}

func fmtStr(s *string) string {
	if s == nil {
		return "<absent>"
	}
	return fmt.Sprintf("%q", *s)
}

func fmtID(id *uint64) string {
	if id == nil {
		return "<absent>"
	}
	return fmt.Sprintf("%d", *id)
}
