package layout

import (
	"errors"
	"fmt"
)

// ErrScratchpadEmpty is returned when showing from an empty scratchpad.
var ErrScratchpadEmpty = errors.New("scratchpad is empty")

// ScratchpadMove parks c on the hidden scratch workspace. The container
// is floated first so it comes back as an overlay.
func (t *Tree) ScratchpadMove(c *Container) error {
	if c.Kind == KindWorkspace {
		return ErrIsWorkspace
	}
	if err := t.FloatingEnable(c); err != nil {
		return err
	}
	wrap := c.FloatingWrap()
	if wrap == nil {
		wrap = c
	}
	wrap.scratch = true
	return t.hideScratch(wrap)
}

func (t *Tree) hideScratch(wrap *Container) error {
	src := wrap.parent
	if src == t.scratch {
		return nil
	}
	hadFocus := t.isFocusInside(wrap)
	src.detachChild(wrap)
	t.scratch.attachChild(wrap, -1)
	if hadFocus {
		t.SetFocus(src.DescendFocused())
	}
	return nil
}

func (t *Tree) showScratch(wrap *Container) error {
	ws := t.FocusedWorkspace()
	if ws == nil {
		out := t.focusedOutput()
		if out == nil {
			return ErrNoOutputs
		}
		ws = t.visibleWorkspaceOf(out)
		if ws == nil {
			return ErrNoOutputs
		}
	}
	if wrap.parent != nil {
		wrap.parent.detachChild(wrap)
	}
	ws.attachChild(wrap, -1)
	wrap.Rect = floatDefaultRect(ws)
	t.SetFocus(wrap.DescendFocused())
	return nil
}

// visibleScratchOn returns a scratchpad wrapper currently shown on ws,
// nil when there is none.
func (t *Tree) visibleScratchOn(ws *Container) *Container {
	if ws == nil {
		return nil
	}
	for _, wrap := range ws.FloatingChildren() {
		if wrap.scratch {
			return wrap
		}
	}
	return nil
}

// ScratchpadCycle implements the bare show command: a visible scratch
// window on the focused workspace is hidden again, otherwise the most
// recently parked one is brought up.
func (t *Tree) ScratchpadCycle() error {
	if vis := t.visibleScratchOn(t.FocusedWorkspace()); vis != nil {
		return t.hideScratch(vis)
	}
	head := t.scratch.FocusedChild()
	if head == nil {
		return ErrScratchpadEmpty
	}
	return t.showScratch(head)
}

// ScratchpadToggle shows or hides one specific scratchpad container.
// Containers never parked on the scratchpad are rejected.
func (t *Tree) ScratchpadToggle(c *Container) error {
	wrap := c.FloatingWrap()
	if wrap == nil {
		wrap = c
	}
	if !wrap.scratch {
		return fmt.Errorf("%s is not a scratchpad window", c.Title())
	}
	if wrap.parent == t.scratch {
		return t.showScratch(wrap)
	}
	return t.hideScratch(wrap)
}
