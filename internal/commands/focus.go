package commands

import (
	"github.com/slatewm/slate/internal/layout"
	"github.com/slatewm/slate/internal/match"
)

// Focus gives input focus to the matched containers in working-set
// order, so with several matches the last one wins. The bare form
// requires criteria; dock windows and containers parked on internal
// workspaces cannot take focus this way.
func (r *Runner) Focus(m *match.Match) Reply {
	if r.record("focus", m) {
		return done()
	}
	if m == nil || m.Empty() {
		return failf("you have to specify which window/container should be focused")
	}

	count := 0
	for _, c := range r.targets(m) {
		if c.Window != nil && c.Window.Dock {
			continue
		}
		ws := c.Workspace()
		if ws == nil || layout.Reserved(ws.Name) {
			continue
		}
		r.tree.ShowWorkspace(ws)
		r.tree.SetFocus(c)
		count++
	}
	if count > 1 {
		r.log.Printf("warn: focus criteria matched %d containers, only one can hold focus", count)
	}
	r.touch()
	return done()
}

// FocusDirection moves focus to the neighbor in the given direction.
func (r *Runner) FocusDirection(m *match.Match, direction string) Reply {
	if r.record("focus_direction", m, &direction) {
		return done()
	}
	if rep, ok := r.refuseFullscreenFocus(); !ok {
		return rep
	}
	dir, ok := parseDirection(direction)
	if !ok {
		return failf("invalid direction: %s", direction)
	}
	r.tree.FocusDirection(dir)
	r.touch()
	return done()
}

// FocusWindowMode switches focus between the tiling and floating realm
// of the current workspace. mode is tiling, floating or mode_toggle.
func (r *Runner) FocusWindowMode(m *match.Match, mode string) Reply {
	if r.record("focus_window_mode", m, &mode) {
		return done()
	}
	if rep, ok := r.refuseFullscreenFocus(); !ok {
		return rep
	}
	if err := r.tree.FocusRealm(mode); err != nil {
		return failf("%v", err)
	}
	r.touch()
	return done()
}

// FocusLevel moves focus one level up (parent) or down (child).
func (r *Runner) FocusLevel(m *match.Match, level string) Reply {
	if r.record("focus_level", m, &level) {
		return done()
	}
	if rep, ok := r.refuseFullscreenFocus(); !ok {
		return rep
	}
	switch level {
	case "parent":
		r.tree.FocusParent()
	case "child":
		r.tree.FocusChild()
	default:
		return failf("invalid focus level: %s", level)
	}
	r.touch()
	return done()
}

// FocusOutput focuses the visible workspace of the named output, or of
// the next output in a direction.
func (r *Runner) FocusOutput(m *match.Match, token string) Reply {
	if r.record("focus_output", m, &token) {
		return done()
	}
	from := r.currentOutput(m)
	out, err := r.tree.OutputFor(from, token)
	if err != nil {
		return failf("%v", err)
	}
	ws := r.tree.VisibleWorkspace(out)
	if ws == nil {
		return failf("output %s has no workspace", out.Name)
	}
	r.tree.ShowWorkspace(ws)
	r.touch()
	return done()
}

// refuseFullscreenFocus blocks focus navigation away from a fullscreen
// container.
func (r *Runner) refuseFullscreenFocus() (Reply, bool) {
	f := r.tree.Focused()
	if f.Kind != layout.KindWorkspace && f.Fullscreen != layout.FullscreenNone {
		return failf("cannot change focus while in fullscreen mode"), false
	}
	return Reply{}, true
}

// currentOutput picks the output the command starts from: the last
// matched target's output, or the focused one.
func (r *Runner) currentOutput(m *match.Match) *layout.Container {
	var out *layout.Container
	for _, c := range r.targets(m) {
		if o := c.Output(); o != nil {
			out = o
		}
	}
	if out != nil {
		return out
	}
	outs := r.tree.Outputs()
	if len(outs) == 0 {
		return nil
	}
	return outs[0]
}
