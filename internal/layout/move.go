package layout

import (
	"fmt"
)

// FocusDirection moves focus one neighbor over along the direction's
// axis, wrapping around within the split. Reports whether focus moved.
func (t *Tree) FocusDirection(d Direction) bool {
	return t.focusNext(t.focused, d)
}

func (t *Tree) focusNext(c *Container, d Direction) bool {
	if c.Kind == KindWorkspace || c.parent == nil {
		return false
	}
	parent := c.parent
	if parent.Kind == KindFloating {
		return t.focusNext(parent, d)
	}
	if parent.Orient != d.Axis() {
		if parent.Kind == KindWorkspace {
			return false
		}
		return t.focusNext(parent, d)
	}
	siblings := parent.TilingChildren()
	if len(siblings) < 2 {
		return t.focusNext(parent, d)
	}
	at := -1
	for i, s := range siblings {
		if s == c {
			at = i
			break
		}
	}
	if at == -1 {
		return t.focusNext(parent, d)
	}
	var next *Container
	if d == Right || d == Down {
		next = siblings[(at+1)%len(siblings)]
	} else {
		next = siblings[(at-1+len(siblings))%len(siblings)]
	}
	t.SetFocus(next.DescendFocused())
	return true
}

// FocusParent moves focus one level up, stopping at the workspace.
func (t *Tree) FocusParent() bool {
	f := t.focused
	if f.Kind == KindWorkspace || f.parent == nil {
		return false
	}
	if f.parent.Kind == KindOutput || f.parent.Kind == KindRoot {
		return false
	}
	t.SetFocus(f.parent)
	return true
}

// FocusChild moves focus one level down onto the focused child.
func (t *Tree) FocusChild() bool {
	ch := t.focused.FocusedChild()
	if ch == nil {
		return false
	}
	t.SetFocus(ch)
	return true
}

// FocusRealm switches focus between the tiling and floating windows of
// the current workspace. realm is "tiling", "floating" or "mode_toggle".
func (t *Tree) FocusRealm(realm string) error {
	ws := t.FocusedWorkspace()
	if ws == nil {
		return ErrNoOutputs
	}
	wantFloating := false
	switch realm {
	case "floating":
		wantFloating = true
	case "tiling":
		wantFloating = false
	case "mode_toggle":
		wantFloating = !t.focused.Floating()
	default:
		return fmt.Errorf("unknown focus mode: %s", realm)
	}
	for _, cand := range ws.focusOrder {
		if (cand.Kind == KindFloating) == wantFloating {
			t.SetFocus(cand.DescendFocused())
			return nil
		}
	}
	if wantFloating {
		return fmt.Errorf("no floating windows on workspace %s", ws.Name)
	}
	return fmt.Errorf("no tiling windows on workspace %s", ws.Name)
}

// MoveFocused shifts the focused container one position in the given
// direction: swapping with a window neighbor, descending into a split
// neighbor, or reorienting the workspace when the axis does not exist
// yet.
func (t *Tree) MoveFocused(d Direction) error {
	f := t.focused
	if f.Kind != KindContainer {
		return fmt.Errorf("cannot move a %s", f.Kind)
	}
	if f.Floating() {
		return fmt.Errorf("floating containers are repositioned, not moved")
	}

	// Find the ancestor taking part in a split along the wanted axis.
	cur := f
	for cur.parent.Kind != KindWorkspace && cur.parent.Orient != d.Axis() {
		cur = cur.parent
	}
	parent := cur.parent
	if parent.Orient != d.Axis() {
		return t.moveAcrossAxis(f, d)
	}

	siblings := parent.TilingChildren()
	at := -1
	for i, s := range siblings {
		if s == cur {
			at = i
			break
		}
	}
	if at == -1 {
		return fmt.Errorf("container detached from its split")
	}

	var target *Container
	if d == Right || d == Down {
		if at+1 < len(siblings) {
			target = siblings[at+1]
		}
	} else {
		if at > 0 {
			target = siblings[at-1]
		}
	}
	if target == nil {
		// Already at the edge along this axis.
		return nil
	}

	if target.Kind == KindContainer && target.Window == nil && len(target.children) > 0 {
		// Descend into the neighboring split, entering from the side
		// we came from.
		parent.detachChild(cur)
		cur.Percent = 0
		if d == Right || d == Down {
			target.attachChild(cur, 0)
		} else {
			target.attachChild(cur, -1)
		}
	} else {
		swapChildren(parent, cur, target)
	}
	t.SetFocus(f)
	return nil
}

// moveAcrossAxis handles moving along an axis the workspace does not
// split on yet: the existing content is wrapped into one split and the
// workspace flips to the new axis with the moved container beside it.
func (t *Tree) moveAcrossAxis(f *Container, d Direction) error {
	ws := f.Workspace()
	if ws == nil {
		return ErrNoOutputs
	}
	tiling := ws.TilingChildren()
	if len(tiling) < 2 {
		// Nothing to move against; flip the workspace axis only.
		ws.Orient = d.Axis()
		return nil
	}

	bundle := t.newNode(KindContainer)
	bundle.Orient = ws.Orient
	for _, ch := range tiling {
		if ch == f {
			continue
		}
		ws.detachChild(ch)
		bundle.attachChild(ch, -1)
	}
	if f.parent != ws {
		old := f.parent
		old.detachChild(f)
		t.dissolveEmpty(old)
		ws.attachChild(f, -1)
	}
	f.Percent = 0
	ws.attachChild(bundle, -1)
	ws.Orient = d.Axis()

	// Order along the new axis: up/left puts the mover first.
	wsTiling := ws.TilingChildren()
	if len(wsTiling) == 2 {
		first := f
		second := bundle
		if d == Down || d == Right {
			first, second = bundle, f
		}
		reorderChildren(ws, first, second)
	}
	t.SetFocus(f)
	return nil
}

func swapChildren(parent, a, b *Container) {
	ai, bi := -1, -1
	for i, ch := range parent.children {
		if ch == a {
			ai = i
		}
		if ch == b {
			bi = i
		}
	}
	if ai >= 0 && bi >= 0 {
		parent.children[ai], parent.children[bi] = parent.children[bi], parent.children[ai]
	}
}

// reorderChildren rewrites parent's tiling order to the given sequence,
// keeping floating wrappers at the back of the list.
func reorderChildren(parent *Container, order ...*Container) {
	floats := parent.FloatingChildren()
	parent.children = append(append([]*Container{}, order...), floats...)
}
