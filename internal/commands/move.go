package commands

import (
	"github.com/slatewm/slate/internal/layout"
	"github.com/slatewm/slate/internal/match"
)

// MoveToWorkspace sends each matched container to the next or previous
// workspace in the ring. Focus stays behind.
func (r *Runner) MoveToWorkspace(m *match.Match, which string) Reply {
	if r.record("move_con_to_workspace", m, &which) {
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
	return r.moveTargetsTo(m, ws)
}

// MoveToWorkspaceName sends each matched container to the named
// workspace, creating it when needed.
func (r *Runner) MoveToWorkspaceName(m *match.Match, name string) Reply {
	if r.record("move_con_to_workspace_name", m, &name) {
		return done()
	}
	if layout.Reserved(name) {
		return failf("workspace names starting with %s are reserved", layout.ReservedPrefix)
	}
	// the match being empty matters, not the result being empty
	if (m == nil || m.Empty()) && r.tree.Focused().Kind == layout.KindWorkspace {
		return failf("nothing to move: a workspace is focused")
	}
	ws, err := r.tree.EnsureWorkspace(name)
	if err != nil {
		return failf("%v", err)
	}
	return r.moveTargetsTo(m, ws)
}

func (r *Runner) moveTargetsTo(m *match.Match, ws *layout.Container) Reply {
	for _, c := range r.targets(m) {
		if c.Kind == layout.KindWorkspace {
			continue
		}
		if err := r.tree.MoveToWorkspace(c, ws); err != nil {
			return failf("%v", err)
		}
	}
	r.touch()
	return done()
}

// MoveToOutput sends each matched container to the visible workspace of
// another output, by direction or name.
func (r *Runner) MoveToOutput(m *match.Match, token string) Reply {
	if r.record("move_con_to_output", m, &token) {
		return done()
	}
	out, err := r.tree.OutputFor(r.currentOutput(m), token)
	if err != nil {
		return failf("%v", err)
	}
	for _, c := range r.targets(m) {
		if c.Kind == layout.KindWorkspace {
			continue
		}
		if err := r.tree.MoveToOutput(c, out); err != nil {
			return failf("%v", err)
		}
	}
	r.touch()
	return done()
}

// MoveWorkspaceToOutput carries the focused workspace to another
// output. The source output keeps a visible workspace behind.
func (r *Runner) MoveWorkspaceToOutput(m *match.Match, token string) Reply {
	if r.record("move_workspace_to_output", m, &token) {
		return done()
	}
	ws := r.tree.FocusedWorkspace()
	if ws == nil {
		return failf("no workspace is focused")
	}
	out, err := r.tree.OutputFor(ws.Output(), token)
	if err != nil {
		return failf("%v", err)
	}
	if err := r.tree.MoveWorkspaceToOutput(ws, out); err != nil {
		return failf("%v", err)
	}
	r.touch()
	return done()
}

// MoveDirection shifts the focused container: a floating container is
// repositioned by px, a tiling container trades places along the
// direction's axis. Criteria are captured but the move always acts on
// the focused container.
func (r *Runner) MoveDirection(m *match.Match, direction string, px *string) Reply {
	if r.record("move_direction", m, &direction, px) {
		return done()
	}
	pixels, ok := parseAmount(px)
	if !ok {
		return failf("cannot parse move amount %s", fmtArg(px))
	}
	dir, ok := parseDirection(direction)
	if !ok {
		return failf("invalid direction: %s", direction)
	}

	focused := r.tree.Focused()
	if wrap := focused.FloatingWrap(); wrap != nil {
		rect := wrap.Rect
		switch dir {
		case layout.Left:
			rect.X -= pixels
		case layout.Right:
			rect.X += pixels
		case layout.Up:
			rect.Y -= pixels
		case layout.Down:
			rect.Y += pixels
		}
		r.tree.FloatingReposition(wrap, rect)
		r.touch()
		return done()
	}
	if err := r.tree.MoveFocused(dir); err != nil {
		return failf("%v", err)
	}
	r.touch()
	return done()
}

// MoveScratchpad parks each matched container on the scratchpad.
func (r *Runner) MoveScratchpad(m *match.Match) Reply {
	if r.record("move_scratchpad", m) {
		return done()
	}
	for _, c := range r.targets(m) {
		if err := r.tree.ScratchpadMove(c); err != nil {
			r.log.Printf("warn: move scratchpad: %v", err)
		}
	}
	r.touch()
	return done()
}

// ScratchpadShow cycles the scratchpad for the bare form; with criteria
// it toggles each matched scratchpad window.
func (r *Runner) ScratchpadShow(m *match.Match) Reply {
	if r.record("scratchpad_show", m) {
		return done()
	}
	if m == nil || m.Empty() {
		if err := r.tree.ScratchpadCycle(); err != nil {
			return failf("%v", err)
		}
		r.touch()
		return done()
	}
	shown := 0
	var lastErr error
	for _, c := range r.targets(m) {
		if err := r.tree.ScratchpadToggle(c); err != nil {
			lastErr = err
			continue
		}
		shown++
	}
	if shown == 0 && lastErr != nil {
		return failf("%v", lastErr)
	}
	r.touch()
	return done()
}
