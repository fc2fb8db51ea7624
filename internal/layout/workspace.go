package layout

import (
	"fmt"
	"strconv"
	"strings"
)

// Workspaces returns every user workspace in output order, skipping the
// hidden scratch workspace.
func (t *Tree) Workspaces() []*Container {
	var out []*Container
	for _, o := range t.Outputs() {
		for _, ws := range o.children {
			if ws.Kind == KindWorkspace {
				out = append(out, ws)
			}
		}
	}
	return out
}

// WorkspaceNamed finds a workspace by exact name, nil when absent.
func (t *Tree) WorkspaceNamed(name string) *Container {
	if name == scratchName {
		return t.scratch
	}
	for _, ws := range t.Workspaces() {
		if ws.Name == name {
			return ws
		}
	}
	return nil
}

// EnsureWorkspace returns the named workspace, creating it on the
// focused output when it does not exist yet.
func (t *Tree) EnsureWorkspace(name string) (*Container, error) {
	if ws := t.WorkspaceNamed(name); ws != nil {
		return ws, nil
	}
	out := t.focusedOutput()
	if out == nil {
		return nil, ErrNoOutputs
	}
	return t.AddWorkspace(name, out), nil
}

// focusedOutput resolves the output the focus currently sits on,
// falling back to the first output for detached focus (scratch).
func (t *Tree) focusedOutput() *Container {
	if o := t.focused.Output(); o != nil {
		return o
	}
	outs := t.Outputs()
	if len(outs) == 0 {
		return nil
	}
	return outs[0]
}

// visibleWorkspaceOf returns the workspace currently shown on an
// output: the head of the output's focus order.
func (t *Tree) visibleWorkspaceOf(output *Container) *Container {
	if output == nil {
		return nil
	}
	return output.FocusedChild()
}

// VisibleWorkspace is the exported form of visibleWorkspaceOf.
func (t *Tree) VisibleWorkspace(output *Container) *Container {
	return t.visibleWorkspaceOf(output)
}

// WorkspaceVisible reports whether ws is the one shown on its output.
func (t *Tree) WorkspaceVisible(ws *Container) bool {
	out := ws.Output()
	return out != nil && t.visibleWorkspaceOf(out) == ws
}

// ShowWorkspace makes ws the visible workspace on its output and moves
// focus onto it. Switching away records the previous workspace for
// back-and-forth.
func (t *Tree) ShowWorkspace(ws *Container) {
	prev := t.FocusedWorkspace()
	if prev != nil && prev != ws {
		t.lastWorkspace = prev.Name
	}
	t.SetFocus(ws.DescendFocused())
}

// FocusedWorkspace returns the workspace holding focus, nil when focus
// is on an output or the root of an empty tree.
func (t *Tree) FocusedWorkspace() *Container {
	return t.focused.Workspace()
}

// LastWorkspaceName returns the back-and-forth target, empty before the
// first switch.
func (t *Tree) LastWorkspaceName() string { return t.lastWorkspace }

// BackAndForth switches to the previously shown workspace.
func (t *Tree) BackAndForth() error {
	if t.lastWorkspace == "" {
		return fmt.Errorf("no previous workspace to switch to")
	}
	ws, err := t.EnsureWorkspace(t.lastWorkspace)
	if err != nil {
		return err
	}
	t.ShowWorkspace(ws)
	return nil
}

// workspaceRing returns the cycle order for next/prev: all workspaces,
// or only the focused output's when onOutput is set.
func (t *Tree) workspaceRing(onOutput bool) []*Container {
	if !onOutput {
		return t.Workspaces()
	}
	out := t.focusedOutput()
	if out == nil {
		return nil
	}
	var ring []*Container
	for _, ws := range out.children {
		if ws.Kind == KindWorkspace {
			ring = append(ring, ws)
		}
	}
	return ring
}

// StepWorkspace returns the workspace one step forward or backward from
// the focused one, wrapping at the ends.
func (t *Tree) StepWorkspace(forward, onOutput bool) (*Container, error) {
	ring := t.workspaceRing(onOutput)
	if len(ring) == 0 {
		return nil, ErrNoOutputs
	}
	cur := t.FocusedWorkspace()
	at := -1
	for i, ws := range ring {
		if ws == cur {
			at = i
			break
		}
	}
	if at == -1 {
		return ring[0], nil
	}
	if forward {
		return ring[(at+1)%len(ring)], nil
	}
	return ring[(at-1+len(ring))%len(ring)], nil
}

// FreshWorkspaceName picks the lowest positive number not used by any
// workspace, as a string.
func (t *Tree) FreshWorkspaceName() string {
	used := map[int]bool{}
	for _, ws := range t.Workspaces() {
		if n, err := strconv.Atoi(ws.Name); err == nil {
			used[n] = true
		}
	}
	for n := 1; ; n++ {
		if !used[n] {
			return strconv.Itoa(n)
		}
	}
}

// Reserved reports whether a workspace name is internal to the manager.
func Reserved(name string) bool {
	return strings.HasPrefix(name, ReservedPrefix)
}
