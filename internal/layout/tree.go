package layout

import (
	"errors"
	"fmt"
)

// ReservedPrefix marks workspace names the manager keeps for itself.
// User commands may not create or switch to workspaces under it.
const ReservedPrefix = "__slate_"

// scratchName is the hidden workspace that parks scratchpad windows.
const scratchName = ReservedPrefix + "scratch"

var (
	// ErrIsWorkspace is returned by per-container mutations that make
	// no sense applied to a workspace node.
	ErrIsWorkspace = errors.New("operation does not apply to a workspace")
	// ErrNoOutputs is returned when the tree has no output to work on.
	ErrNoOutputs = errors.New("tree has no outputs")
)

// Tree owns the container hierarchy: root, outputs, workspaces, and the
// window containers beneath them. All mutation goes through Tree methods
// so the registry and focus bookkeeping stay consistent. It is not safe
// for concurrent use; the command loop runs on a single goroutine.
type Tree struct {
	root    *Container
	scratch *Container
	focused *Container
	nextID  uint64
	cons    []*Container

	// lastWorkspace names the workspace shown before the current one,
	// the target of back-and-forth switching.
	lastWorkspace string

	// DefaultBorder is the style newly opened containers start with.
	DefaultBorder BorderStyle
}

// NewTree builds an empty tree with the hidden scratchpad workspace
// attached. Outputs and workspaces are added by the caller.
func NewTree() *Tree {
	t := &Tree{}
	t.root = t.newNode(KindRoot)
	t.root.Name = "root"
	t.scratch = t.newNode(KindWorkspace)
	t.scratch.Name = scratchName
	t.root.attachChild(t.scratch, -1)
	t.focused = t.root
	return t
}

func (t *Tree) newNode(kind Kind) *Container {
	t.nextID++
	c := &Container{ID: t.nextID, Kind: kind}
	t.cons = append(t.cons, c)
	return c
}

// Root returns the top of the hierarchy.
func (t *Tree) Root() *Container { return t.root }

// Focused returns the container holding input focus. It is never nil;
// an empty tree focuses the root.
func (t *Tree) Focused() *Container { return t.focused }

// Containers returns every live node in creation order. This is the
// stable collection criteria matching iterates over.
func (t *Tree) Containers() []*Container {
	out := make([]*Container, len(t.cons))
	copy(out, t.cons)
	return out
}

// ByID finds a container by identity token, nil when it is gone.
func (t *Tree) ByID(id uint64) *Container {
	for _, c := range t.cons {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// SetFocus gives c input focus and rewrites the focus order on every
// ancestor so descending focus lands back on c.
func (t *Tree) SetFocus(c *Container) {
	if c == nil {
		return
	}
	for cur := c; cur.parent != nil; cur = cur.parent {
		cur.parent.promoteFocus(cur)
	}
	t.focused = c
}

// AddOutput registers a display region. The first output added becomes
// the focused one.
func (t *Tree) AddOutput(name string, r Rect) *Container {
	o := t.newNode(KindOutput)
	o.Name = name
	o.Rect = r
	t.root.attachChild(o, -1)
	if t.focused == t.root {
		t.SetFocus(o)
	}
	return o
}

// AddWorkspace creates a named workspace on the given output. The
// workspace orientation follows the output shape: wide outputs split
// horizontally, tall ones vertically.
func (t *Tree) AddWorkspace(name string, output *Container) *Container {
	ws := t.newNode(KindWorkspace)
	ws.Name = name
	ws.Rect = output.Rect
	if output.Rect.Height > output.Rect.Width {
		ws.Orient = Vertical
	}
	output.attachChild(ws, -1)
	return ws
}

// openTarget resolves where a fresh container should attach: the
// focused workspace when focus is on a workspace or above, otherwise
// next to the focused container.
func (t *Tree) openTarget() (parent *Container, at int) {
	f := t.focused
	switch f.Kind {
	case KindRoot, KindOutput:
		ws := t.visibleWorkspaceOf(t.focusedOutput())
		if ws == nil {
			return nil, -1
		}
		return ws, -1
	case KindWorkspace:
		return f, -1
	default:
		if wrap := f.FloatingWrap(); wrap != nil {
			ws := f.Workspace()
			return ws, -1
		}
		return f.parent, f.index() + 1
	}
}

// OpenContainer creates an empty container next to the focused one and
// focuses it. This backs the open command.
func (t *Tree) OpenContainer() (*Container, error) {
	parent, at := t.openTarget()
	if parent == nil {
		return nil, ErrNoOutputs
	}
	c := t.newNode(KindContainer)
	c.Border = t.DefaultBorder
	parent.attachChild(c, at)
	t.SetFocus(c)
	return c, nil
}

// OpenWindow creates a container holding the given window content and
// focuses it unless the window is a dock.
func (t *Tree) OpenWindow(win *Window) (*Container, error) {
	parent, at := t.openTarget()
	if parent == nil {
		return nil, ErrNoOutputs
	}
	c := t.newNode(KindContainer)
	c.Border = t.DefaultBorder
	c.Window = win
	c.Name = win.Title
	parent.attachChild(c, at)
	if !win.Dock {
		t.SetFocus(c)
	}
	return c, nil
}

// unregister removes c and every descendant from the registry.
func (t *Tree) unregister(c *Container) {
	for _, ch := range c.children {
		t.unregister(ch)
	}
	for i, cand := range t.cons {
		if cand == c {
			t.cons = append(t.cons[:i], t.cons[i+1:]...)
			return
		}
	}
}

// Close removes c from the tree. Focus moves to the nearest surviving
// relative. Empty floating wrappers and hidden empty workspaces are
// cleaned up along the way.
func (t *Tree) Close(c *Container) error {
	if c.Kind == KindRoot || c.Kind == KindOutput {
		return fmt.Errorf("cannot close a %s", c.Kind)
	}
	if c.Kind == KindWorkspace {
		return ErrIsWorkspace
	}
	parent := c.parent
	hadFocus := t.isFocusInside(c)
	parent.detachChild(c)
	t.unregister(c)
	parent = t.dissolveEmpty(parent)

	if ws := parent.Workspace(); ws != nil {
		t.maybeReapWorkspace(ws)
	}

	if hadFocus {
		t.SetFocus(parent.DescendFocused())
	}
	return nil
}

// CloseFocused closes the container currently holding focus, resolving
// a workspace focus down to nothing to close.
func (t *Tree) CloseFocused() error {
	f := t.focused
	if f.Kind != KindContainer && f.Kind != KindFloating {
		return fmt.Errorf("nothing to close on %s", f.Kind)
	}
	if wrap := f.FloatingWrap(); wrap != nil {
		return t.Close(wrap)
	}
	return t.Close(f)
}

// dissolveEmpty removes emptied split containers and floating wrappers
// walking up from p, returning the first surviving ancestor.
func (t *Tree) dissolveEmpty(p *Container) *Container {
	for p != nil && (p.Kind == KindContainer || p.Kind == KindFloating) &&
		p.Window == nil && len(p.children) == 0 {
		grand := p.parent
		grand.detachChild(p)
		t.unregister(p)
		p = grand
	}
	return p
}

func (t *Tree) isFocusInside(c *Container) bool {
	for cur := t.focused; cur != nil; cur = cur.parent {
		if cur == c {
			return true
		}
	}
	return false
}

// maybeReapWorkspace deletes a workspace that is empty and not visible.
// The scratch workspace is never reaped.
func (t *Tree) maybeReapWorkspace(ws *Container) {
	if ws == t.scratch || len(ws.children) > 0 {
		return
	}
	out := ws.Output()
	if out == nil || t.visibleWorkspaceOf(out) == ws {
		return
	}
	out.detachChild(ws)
	t.unregister(ws)
}

// Split wraps c in a new split container with the given orientation.
// Splitting a workspace just changes its orientation.
func (t *Tree) Split(c *Container, o Orientation) error {
	switch c.Kind {
	case KindRoot, KindOutput:
		return fmt.Errorf("cannot split a %s", c.Kind)
	case KindWorkspace:
		c.Orient = o
		return nil
	}
	parent := c.parent
	at := c.index()
	split := t.newNode(KindContainer)
	split.Orient = o
	split.Percent = c.Percent
	parent.detachChild(c)
	parent.attachChild(split, at)
	c.Percent = 0
	split.attachChild(c, -1)
	split.promoteFocus(c)
	if t.focused == c {
		t.SetFocus(c)
	}
	return nil
}

// MoveToWorkspace reparents c (or its floating wrapper) onto ws. The
// container loses its percent share on both sides; focus stays where it
// was unless it rode along inside c.
func (t *Tree) MoveToWorkspace(c, ws *Container) error {
	if c.Kind == KindWorkspace {
		return ErrIsWorkspace
	}
	if wrap := c.FloatingWrap(); wrap != nil {
		c = wrap
	}
	if c.Workspace() == ws {
		return nil
	}
	oldParent := c.parent
	hadFocus := t.isFocusInside(c)
	oldParent.detachChild(c)
	c.Percent = 0
	ws.attachChild(c, -1)
	oldParent = t.dissolveEmpty(oldParent)
	if oldWs := oldParent.Workspace(); oldWs != nil {
		t.maybeReapWorkspace(oldWs)
	}
	if hadFocus {
		t.SetFocus(oldParent.DescendFocused())
	}
	return nil
}

// MoveToOutput moves c onto the visible workspace of the target output.
func (t *Tree) MoveToOutput(c, output *Container) error {
	ws := t.visibleWorkspaceOf(output)
	if ws == nil {
		return fmt.Errorf("output %q has no workspace", output.Name)
	}
	return t.MoveToWorkspace(c, ws)
}
