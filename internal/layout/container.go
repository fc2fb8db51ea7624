package layout

// Kind classifies a node's role in the tree.
type Kind uint8

const (
	KindRoot Kind = iota
	KindOutput
	KindWorkspace
	KindContainer
	KindFloating
)

func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindOutput:
		return "output"
	case KindWorkspace:
		return "workspace"
	case KindContainer:
		return "container"
	case KindFloating:
		return "floating"
	}
	return "unknown"
}

// Orientation is the axis along which a split lays out its children.
type Orientation uint8

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Style selects how a container presents its children.
type Style uint8

const (
	StyleSplit Style = iota
	StyleStacked
	StyleTabbed
)

func (s Style) String() string {
	switch s {
	case StyleStacked:
		return "stacked"
	case StyleTabbed:
		return "tabbed"
	}
	return "split"
}

// BorderStyle selects pane decoration. The numeric order matters: the
// border toggle command cycles through these values mod 3.
type BorderStyle uint8

const (
	BorderNormal BorderStyle = iota
	BorderNone
	BorderPixel
)

func (b BorderStyle) String() string {
	switch b {
	case BorderNone:
		return "none"
	case BorderPixel:
		return "1pixel"
	}
	return "normal"
}

// FullscreenMode distinguishes no fullscreen, fullscreen within one
// output, and fullscreen spanning all outputs.
type FullscreenMode uint8

const (
	FullscreenNone FullscreenMode = iota
	FullscreenOutput
	FullscreenGlobal
)

// Direction is a cardinal movement or focus direction.
type Direction uint8

const (
	Left Direction = iota
	Right
	Up
	Down
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	}
	return "down"
}

// Axis reports the orientation a direction travels along.
func (d Direction) Axis() Orientation {
	if d == Left || d == Right {
		return Horizontal
	}
	return Vertical
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case Left:
		return Right
	case Right:
		return Left
	case Up:
		return Down
	}
	return Up
}

// Rect is a rectangle in cell coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Window is the client content held by a leaf container.
type Window struct {
	ID          uint64
	Class       string
	Instance    string
	Title       string
	Role        string
	Application string
	Dock        bool
}

// Container is one node of the tree: an output, a workspace, a split, a
// floating wrapper, or a window holder. Percent is the share of the
// parent's split axis, 0 meaning unset.
type Container struct {
	ID         uint64
	Kind       Kind
	Name       string
	Rect       Rect
	Percent    float64
	Orient     Orientation
	Style      Style
	Border     BorderStyle
	Fullscreen FullscreenMode
	Mark       string
	Window     *Window

	parent   *Container
	children []*Container
	// focusOrder holds children most-recently-focused first. Its head
	// decides which child a descending focus lands on, and for outputs
	// which workspace is visible.
	focusOrder []*Container

	scratch bool
}

// Parent returns the containing node, nil for the root.
func (c *Container) Parent() *Container { return c.parent }

// Children returns the layout-ordered child list. Callers must not
// modify it.
func (c *Container) Children() []*Container { return c.children }

// NumChildren reports the number of direct children.
func (c *Container) NumChildren() int { return len(c.children) }

// FocusedChild returns the most recently focused direct child, nil if
// the container is empty.
func (c *Container) FocusedChild() *Container {
	if len(c.focusOrder) == 0 {
		return nil
	}
	return c.focusOrder[0]
}

// DescendFocused follows focusOrder heads down to the deepest focused
// descendant, returning c itself when there is none.
func (c *Container) DescendFocused() *Container {
	cur := c
	for {
		next := cur.FocusedChild()
		if next == nil {
			return cur
		}
		cur = next
	}
}

// Workspace returns the workspace this container belongs to, or c
// itself when it is one. Nil for outputs and the root.
func (c *Container) Workspace() *Container {
	for cur := c; cur != nil; cur = cur.parent {
		if cur.Kind == KindWorkspace {
			return cur
		}
	}
	return nil
}

// Output returns the output this container sits on, nil for the root
// and for workspaces detached from any output.
func (c *Container) Output() *Container {
	for cur := c; cur != nil; cur = cur.parent {
		if cur.Kind == KindOutput {
			return cur
		}
	}
	return nil
}

// FloatingWrap returns the floating wrapper containing this node, nil
// when the node is tiled. The search stops at the workspace boundary.
func (c *Container) FloatingWrap() *Container {
	for cur := c; cur != nil; cur = cur.parent {
		switch cur.Kind {
		case KindFloating:
			return cur
		case KindWorkspace, KindOutput, KindRoot:
			return nil
		}
	}
	return nil
}

// Floating reports whether the container lives inside a floating
// wrapper (or is one).
func (c *Container) Floating() bool { return c.FloatingWrap() != nil }

// index returns c's position among its siblings, -1 when detached.
func (c *Container) index() int {
	if c.parent == nil {
		return -1
	}
	for i, ch := range c.parent.children {
		if ch == c {
			return i
		}
	}
	return -1
}

// PrevSibling returns the layout-order predecessor, nil at the front.
func (c *Container) PrevSibling() *Container {
	i := c.index()
	if i <= 0 {
		return nil
	}
	return c.parent.children[i-1]
}

// NextSibling returns the layout-order successor, nil at the end.
func (c *Container) NextSibling() *Container {
	i := c.index()
	if i < 0 || i+1 >= len(c.parent.children) {
		return nil
	}
	return c.parent.children[i+1]
}

// TilingChildren returns the children that take part in split sizing,
// excluding floating wrappers.
func (c *Container) TilingChildren() []*Container {
	out := make([]*Container, 0, len(c.children))
	for _, ch := range c.children {
		if ch.Kind != KindFloating {
			out = append(out, ch)
		}
	}
	return out
}

// FloatingChildren returns the floating wrappers parked on this node.
func (c *Container) FloatingChildren() []*Container {
	var out []*Container
	for _, ch := range c.children {
		if ch.Kind == KindFloating {
			out = append(out, ch)
		}
	}
	return out
}

// Title returns the human label for the container: the window title,
// the container name, or the kind as a last resort.
func (c *Container) Title() string {
	if c.Window != nil && c.Window.Title != "" {
		return c.Window.Title
	}
	if c.Name != "" {
		return c.Name
	}
	return c.Kind.String()
}

// attachChild links ch under c at the given index (-1 appends). The
// child joins the back of the focus order; focusing is a separate step.
func (c *Container) attachChild(ch *Container, at int) {
	ch.parent = c
	if at < 0 || at >= len(c.children) {
		c.children = append(c.children, ch)
	} else {
		c.children = append(c.children[:at], append([]*Container{ch}, c.children[at:]...)...)
	}
	c.focusOrder = append(c.focusOrder, ch)
}

// detachChild unlinks ch from c's child list and focus order.
func (c *Container) detachChild(ch *Container) {
	for i, cand := range c.children {
		if cand == ch {
			c.children = append(c.children[:i], c.children[i+1:]...)
			break
		}
	}
	for i, cand := range c.focusOrder {
		if cand == ch {
			c.focusOrder = append(c.focusOrder[:i], c.focusOrder[i+1:]...)
			break
		}
	}
	ch.parent = nil
}

// promoteFocus moves ch to the front of c's focus order.
func (c *Container) promoteFocus(ch *Container) {
	for i, cand := range c.focusOrder {
		if cand == ch {
			copy(c.focusOrder[1:i+1], c.focusOrder[:i])
			c.focusOrder[0] = ch
			return
		}
	}
	c.focusOrder = append([]*Container{ch}, c.focusOrder...)
}
