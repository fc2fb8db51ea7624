package layout

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// layoutNode is the JSON shape accepted by AppendJSON. A node is either
// a window holder (window set) or a split (children set); both at once
// is rejected.
type layoutNode struct {
	Name     string  `json:"name,omitempty"`
	Layout   string  `json:"layout,omitempty"`
	Percent  float64 `json:"percent,omitempty"`
	Border   string  `json:"border,omitempty"`
	Mark     string  `json:"mark,omitempty"`
	Floating bool    `json:"floating,omitempty"`

	Window   *windowNode  `json:"window,omitempty"`
	Children []layoutNode `json:"children,omitempty"`
}

type windowNode struct {
	ID          uint64 `json:"id,omitempty"`
	Class       string `json:"class,omitempty"`
	Instance    string `json:"instance,omitempty"`
	Title       string `json:"title,omitempty"`
	Role        string `json:"role,omitempty"`
	Application string `json:"application,omitempty"`
	Dock        bool   `json:"dock,omitempty"`
}

// AppendJSON reads one layout node from r and attaches it beneath the
// given workspace. The snippet may nest arbitrarily deep.
func (t *Tree) AppendJSON(ws *Container, r io.Reader) error {
	dec := json.NewDecoder(r)
	var node layoutNode
	if err := dec.Decode(&node); err != nil {
		return fmt.Errorf("decode layout: %w", err)
	}
	mark := len(t.cons)
	c, err := t.buildNode(&node)
	if err != nil {
		// drop the partially built subtree from the registry
		t.cons = t.cons[:mark]
		return err
	}
	ws.attachChild(c, -1)
	return nil
}

// AppendJSONFile is AppendJSON reading from a file path.
func (t *Tree) AppendJSONFile(ws *Container, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open layout: %w", err)
	}
	defer f.Close()
	return t.AppendJSON(ws, f)
}

func (t *Tree) buildNode(n *layoutNode) (*Container, error) {
	if n.Window != nil && len(n.Children) > 0 {
		return nil, fmt.Errorf("layout node %q has both window and children", n.Name)
	}

	kind := KindContainer
	if n.Floating {
		kind = KindFloating
	}
	c := t.newNode(kind)
	c.Name = n.Name
	c.Percent = n.Percent
	c.Mark = n.Mark

	switch n.Layout {
	case "", "splith":
		c.Orient = Horizontal
	case "splitv":
		c.Orient = Vertical
	case "stacked", "stacking":
		c.Style = StyleStacked
	case "tabbed":
		c.Style = StyleTabbed
	default:
		return nil, fmt.Errorf("unknown layout %q in node %q", n.Layout, n.Name)
	}

	switch n.Border {
	case "":
	case "normal":
		c.Border = BorderNormal
	case "none":
		c.Border = BorderNone
	case "1pixel":
		c.Border = BorderPixel
	default:
		return nil, fmt.Errorf("unknown border %q in node %q", n.Border, n.Name)
	}

	if n.Window != nil {
		c.Window = &Window{
			ID:          n.Window.ID,
			Class:       n.Window.Class,
			Instance:    n.Window.Instance,
			Title:       n.Window.Title,
			Role:        n.Window.Role,
			Application: n.Window.Application,
			Dock:        n.Window.Dock,
		}
		if c.Name == "" {
			c.Name = n.Window.Title
		}
	}

	for i := range n.Children {
		ch, err := t.buildNode(&n.Children[i])
		if err != nil {
			return nil, err
		}
		c.attachChild(ch, -1)
	}
	return c, nil
}
