package commands

import (
	"github.com/slatewm/slate/internal/layout"
	"github.com/slatewm/slate/internal/match"
)

// Workspace switches to the next or previous workspace in the ring,
// optionally restricted to the focused output.
func (r *Runner) Workspace(m *match.Match, which string) Reply {
	if r.record("workspace", m, &which) {
		return done()
	}
	var forward, onOutput bool
	switch which {
	case "next":
		forward = true
	case "prev":
	case "next_on_output":
		forward, onOutput = true, true
	case "prev_on_output":
		onOutput = true
	default:
		return failf("unknown workspace step: %s", which)
	}
	ws, err := r.tree.StepWorkspace(forward, onOutput)
	if err != nil {
		return failf("%v", err)
	}
	r.tree.ShowWorkspace(ws)
	r.touch()
	return done()
}

// WorkspaceBackAndForth switches to the previously shown workspace.
func (r *Runner) WorkspaceBackAndForth(m *match.Match) Reply {
	if r.record("workspace_back_and_forth", m) {
		return done()
	}
	if err := r.tree.BackAndForth(); err != nil {
		return failf("%v", err)
	}
	r.touch()
	return done()
}

// WorkspaceName switches to a workspace by name, creating it when
// needed. Reserved names are refused. Switching to the workspace
// already focused is a no-op, unless auto back-and-forth is on, which
// turns it into a back_and_forth.
func (r *Runner) WorkspaceName(m *match.Match, name string) Reply {
	if r.record("workspace_name", m, &name) {
		return done()
	}
	if layout.Reserved(name) {
		return failf("workspace names starting with %s are reserved", layout.ReservedPrefix)
	}
	if cur := r.tree.FocusedWorkspace(); cur != nil && cur.Name == name {
		if r.AutoBackAndForth && r.tree.LastWorkspaceName() != "" {
			if err := r.tree.BackAndForth(); err != nil {
				return failf("%v", err)
			}
			r.touch()
		}
		return done()
	}
	ws, err := r.tree.EnsureWorkspace(name)
	if err != nil {
		return failf("%v", err)
	}
	r.tree.ShowWorkspace(ws)
	r.touch()
	return done()
}
