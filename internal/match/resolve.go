package match

import "github.com/slatewm/slate/internal/layout"

// Resolve filters the container collection down to the working set one
// command operates on.
//
// The empty match resolves to exactly the focused container. Otherwise
// every candidate is judged by a strict three-tier precedence:
//
//  1. con_id set: identity equality decides, nothing else is looked at.
//  2. mark predicate set and the candidate carries a mark: the mark
//     regex decides. A marked candidate failing its mark is dropped,
//     window predicates are never consulted for it.
//  3. window predicates: candidates without a window are dropped, the
//     rest must satisfy every present predicate.
//
// The result preserves the order of all; Resolve never mutates
// anything.
func Resolve(m *Match, all []*layout.Container, focused *layout.Container) []*layout.Container {
	if m == nil || m.Empty() {
		if focused == nil {
			return nil
		}
		return []*layout.Container{focused}
	}

	var out []*layout.Container
	for _, c := range all {
		switch {
		case m.ConID != nil:
			if c.ID == *m.ConID {
				out = append(out, c)
			}
		case m.Mark != nil && c.Mark != "":
			if m.Mark.MatchString(c.Mark) {
				out = append(out, c)
			}
		default:
			if m.Matches(c) {
				out = append(out, c)
			}
		}
	}
	return out
}
