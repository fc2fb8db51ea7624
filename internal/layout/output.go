package layout

import (
	"fmt"
	"strings"
)

// Outputs returns the display regions in registration order.
func (t *Tree) Outputs() []*Container {
	var out []*Container
	for _, ch := range t.root.children {
		if ch.Kind == KindOutput {
			out = append(out, ch)
		}
	}
	return out
}

// OutputByName finds an output by case-insensitive name.
func (t *Tree) OutputByName(name string) *Container {
	for _, o := range t.Outputs() {
		if strings.EqualFold(o.Name, name) {
			return o
		}
	}
	return nil
}

// OutputNext returns the nearest output strictly in the given direction
// from the current one, nil at the edge.
func (t *Tree) OutputNext(d Direction, from *Container) *Container {
	var best *Container
	for _, o := range t.Outputs() {
		if o == from {
			continue
		}
		switch d {
		case Left:
			if o.Rect.X < from.Rect.X && (best == nil || o.Rect.X > best.Rect.X) {
				best = o
			}
		case Right:
			if o.Rect.X > from.Rect.X && (best == nil || o.Rect.X < best.Rect.X) {
				best = o
			}
		case Up:
			if o.Rect.Y < from.Rect.Y && (best == nil || o.Rect.Y > best.Rect.Y) {
				best = o
			}
		case Down:
			if o.Rect.Y > from.Rect.Y && (best == nil || o.Rect.Y < best.Rect.Y) {
				best = o
			}
		}
	}
	return best
}

// OutputMost returns the output furthest toward the given direction.
func (t *Tree) OutputMost(d Direction) *Container {
	var best *Container
	for _, o := range t.Outputs() {
		if best == nil {
			best = o
			continue
		}
		switch d {
		case Left:
			if o.Rect.X < best.Rect.X {
				best = o
			}
		case Right:
			if o.Rect.X > best.Rect.X {
				best = o
			}
		case Up:
			if o.Rect.Y < best.Rect.Y {
				best = o
			}
		case Down:
			if o.Rect.Y > best.Rect.Y {
				best = o
			}
		}
	}
	return best
}

// OutputFor resolves an output token: a direction steps from the
// current output and wraps around to the far side when there is nothing
// further that way; anything else is an output name.
func (t *Tree) OutputFor(from *Container, token string) (*Container, error) {
	if from == nil {
		return nil, ErrNoOutputs
	}
	switch strings.ToLower(token) {
	case "left":
		if o := t.OutputNext(Left, from); o != nil {
			return o, nil
		}
		return t.OutputMost(Right), nil
	case "right":
		if o := t.OutputNext(Right, from); o != nil {
			return o, nil
		}
		return t.OutputMost(Left), nil
	case "up":
		if o := t.OutputNext(Up, from); o != nil {
			return o, nil
		}
		return t.OutputMost(Down), nil
	case "down":
		if o := t.OutputNext(Down, from); o != nil {
			return o, nil
		}
		return t.OutputMost(Up), nil
	default:
		if o := t.OutputByName(token); o != nil {
			return o, nil
		}
		return nil, fmt.Errorf("no such output: %s", token)
	}
}

// MoveWorkspaceToOutput reparents a workspace onto another output. The
// source output always keeps a visible workspace: a fresh numbered one
// is created when the moved workspace was its last. The moved workspace
// becomes visible on the target.
func (t *Tree) MoveWorkspaceToOutput(ws, target *Container) error {
	if ws.Kind != KindWorkspace {
		return fmt.Errorf("%s is not a workspace", ws.Title())
	}
	source := ws.Output()
	if source == nil {
		return fmt.Errorf("workspace %q is not on any output", ws.Name)
	}
	if source == target {
		return nil
	}

	source.detachChild(ws)
	ws.Rect = target.Rect
	target.attachChild(ws, -1)

	if t.visibleWorkspaceOf(source) == nil {
		fresh := t.AddWorkspace(t.FreshWorkspaceName(), source)
		source.promoteFocus(fresh)
	}

	t.ShowWorkspace(ws)
	return nil
}
