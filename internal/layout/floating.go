package layout

// floatDefaultRect centers a floating wrapper on its workspace, at half
// the workspace size with a sane minimum.
func floatDefaultRect(ws *Container) Rect {
	w := ws.Rect.Width / 2
	h := ws.Rect.Height / 2
	if w < 20 {
		w = 20
	}
	if h < 6 {
		h = 6
	}
	return Rect{
		X:      ws.Rect.X + (ws.Rect.Width-w)/2,
		Y:      ws.Rect.Y + (ws.Rect.Height-h)/2,
		Width:  w,
		Height: h,
	}
}

// FloatingEnable lifts c out of the tiling layout into a floating
// wrapper parked on its workspace. Enabling twice is a no-op.
func (t *Tree) FloatingEnable(c *Container) error {
	if c.Kind == KindWorkspace {
		return ErrIsWorkspace
	}
	if c.Floating() {
		return nil
	}
	ws := c.Workspace()
	if ws == nil {
		return ErrNoOutputs
	}
	hadFocus := t.isFocusInside(c)
	oldParent := c.parent
	oldParent.detachChild(c)
	c.Percent = 0

	wrap := t.newNode(KindFloating)
	if c.Rect.Width > 0 && c.Rect.Height > 0 {
		wrap.Rect = c.Rect
	} else {
		wrap.Rect = floatDefaultRect(ws)
	}
	ws.attachChild(wrap, -1)
	wrap.attachChild(c, -1)

	t.dissolveEmpty(oldParent)

	if hadFocus {
		t.SetFocus(c)
	}
	return nil
}

// FloatingDisable sinks c back into the tiling layout. Disabling a
// tiled container is a no-op.
func (t *Tree) FloatingDisable(c *Container) error {
	if c.Kind == KindWorkspace {
		return ErrIsWorkspace
	}
	wrap := c.FloatingWrap()
	if wrap == nil {
		return nil
	}
	if c.Kind == KindFloating {
		// Asked to sink the wrapper itself; operate on its content.
		if inner := c.FocusedChild(); inner != nil {
			return t.FloatingDisable(inner)
		}
		return nil
	}
	ws := wrap.Workspace()
	hadFocus := t.isFocusInside(c)
	wrap.detachChild(c)
	ws.detachChild(wrap)
	t.unregister(wrap)
	c.Percent = 0
	ws.attachChild(c, -1)
	if hadFocus {
		t.SetFocus(c)
	}
	return nil
}

// ToggleFloating flips c between floating and tiled placement.
func (t *Tree) ToggleFloating(c *Container) error {
	if c.Floating() {
		return t.FloatingDisable(c)
	}
	return t.FloatingEnable(c)
}

// FloatingReposition moves and resizes a floating wrapper in place.
func (t *Tree) FloatingReposition(wrap *Container, r Rect) {
	if wrap.Kind != KindFloating {
		if w := wrap.FloatingWrap(); w != nil {
			wrap = w
		} else {
			return
		}
	}
	wrap.Rect = r
}
