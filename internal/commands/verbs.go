package commands

import (
	"github.com/slatewm/slate/internal/layout"
	"github.com/slatewm/slate/internal/match"
)

// Border sets or cycles the border style of each matched container.
func (r *Runner) Border(m *match.Match, style string) Reply {
	if r.record("border", m, &style) {
		return done()
	}
	var want layout.BorderStyle
	toggle := false
	switch style {
	case "toggle":
		toggle = true
	case "normal":
		want = layout.BorderNormal
	case "none":
		want = layout.BorderNone
	case "1pixel":
		want = layout.BorderPixel
	default:
		return failf("unknown border style: %s", style)
	}
	for _, c := range r.targets(m) {
		if toggle {
			c.Border = (c.Border + 1) % 3
		} else {
			c.Border = want
		}
	}
	r.touch()
	return done()
}

// Nop accepts a comment and does nothing.
func (r *Runner) Nop(m *match.Match, comment *string) Reply {
	if r.record("nop", m, comment) {
		return done()
	}
	return done()
}

// AppendLayout loads a layout JSON snippet beneath the focused
// workspace.
func (r *Runner) AppendLayout(m *match.Match, path string) Reply {
	if r.record("append_layout", m, &path) {
		return done()
	}
	ws := r.tree.FocusedWorkspace()
	if ws == nil {
		return failf("no workspace to append to")
	}
	if err := r.tree.AppendJSONFile(ws, path); err != nil {
		return failf("%v", err)
	}
	r.touch()
	return done()
}

// Mark names the matched containers. The mark is first cleared from
// every container that carries it, so it stays unique.
func (r *Runner) Mark(m *match.Match, name string) Reply {
	if r.record("mark", m, &name) {
		return done()
	}
	for _, c := range r.tree.Containers() {
		if c.Mark == name {
			c.Mark = ""
		}
	}
	for _, c := range r.targets(m) {
		c.Mark = name
	}
	r.touch()
	return done()
}

// Mode switches the active key-binding mode.
func (r *Runner) Mode(m *match.Match, name string) Reply {
	if r.record("mode", m, &name) {
		return done()
	}
	if err := r.host.SwitchMode(name); err != nil {
		return failf("%v", err)
	}
	return done()
}

// Floating lifts matched containers out of the tiling layout, sinks
// them back, or toggles. Workspaces are skipped.
func (r *Runner) Floating(m *match.Match, mode string) Reply {
	if r.record("floating", m, &mode) {
		return done()
	}
	if mode != "enable" && mode != "disable" && mode != "toggle" {
		return failf("unknown floating mode: %s", mode)
	}
	for _, c := range r.targets(m) {
		if c.Kind == layout.KindWorkspace {
			continue
		}
		var err error
		switch mode {
		case "enable":
			err = r.tree.FloatingEnable(c)
		case "disable":
			err = r.tree.FloatingDisable(c)
		case "toggle":
			err = r.tree.ToggleFloating(c)
		}
		if err != nil {
			return failf("%v", err)
		}
	}
	r.touch()
	return done()
}

// Split wraps each matched container in a new split of the given
// orientation.
func (r *Runner) Split(m *match.Match, dir string) Reply {
	if r.record("split", m, &dir) {
		return done()
	}
	var o layout.Orientation
	switch dir {
	case "v", "vertical":
		o = layout.Vertical
	case "h", "horizontal":
		o = layout.Horizontal
	default:
		return failf("invalid split direction: %s", dir)
	}
	for _, c := range r.targets(m) {
		if err := r.tree.Split(c, o); err != nil {
			return failf("%v", err)
		}
	}
	r.touch()
	return done()
}

// Kill closes containers. With criteria each match is closed; the bare
// form closes the focused container.
func (r *Runner) Kill(m *match.Match, killMode *string) Reply {
	if r.record("kill", m, killMode) {
		return done()
	}
	mode := "window"
	if killMode != nil {
		mode = *killMode
	}
	if mode != "window" && mode != "client" {
		r.log.Printf("error: kill called with mode %q", mode)
		return failf("unknown kill mode: %s", mode)
	}
	// the match being empty matters, not the result being empty
	if m == nil || m.Empty() {
		if err := r.tree.CloseFocused(); err != nil {
			return failf("%v", err)
		}
	} else {
		for _, c := range r.targets(m) {
			if err := r.tree.Close(c); err != nil {
				return failf("%v", err)
			}
		}
	}
	r.touch()
	return done()
}

// Exec hands a command line to the spawner. The no-startup-id flag
// detaches the child from the pane that started it.
func (r *Runner) Exec(m *match.Match, noStartupID *string, command string) Reply {
	if r.record("exec", m, noStartupID, &command) {
		return done()
	}
	if err := r.spawn.Start(command, noStartupID != nil); err != nil {
		return failf("exec %q: %v", command, err)
	}
	return done()
}

// Fullscreen toggles fullscreen on each matched container. The default
// scope is one output; global spans all of them.
func (r *Runner) Fullscreen(m *match.Match, mode *string) Reply {
	if r.record("fullscreen", m, mode) {
		return done()
	}
	scope := "output"
	if mode != nil {
		scope = *mode
	}
	var want layout.FullscreenMode
	switch scope {
	case "output":
		want = layout.FullscreenOutput
	case "global":
		want = layout.FullscreenGlobal
	default:
		return failf("unknown fullscreen mode: %s", scope)
	}
	for _, c := range r.targets(m) {
		if c.Kind == layout.KindWorkspace {
			continue
		}
		if c.Fullscreen == layout.FullscreenNone {
			c.Fullscreen = want
		} else {
			c.Fullscreen = layout.FullscreenNone
		}
	}
	r.touch()
	return done()
}

// Layout sets the presentation of each matched container's parent; the
// bare form acts on the focused container's parent. A workspace target
// restyles the workspace itself.
func (r *Runner) Layout(m *match.Match, name string) Reply {
	if r.record("layout", m, &name) {
		return done()
	}
	var style layout.Style
	switch name {
	case "default":
		style = layout.StyleSplit
	case "stacked":
		style = layout.StyleStacked
	case "tabbed":
		style = layout.StyleTabbed
	default:
		return failf("unknown layout: %s", name)
	}
	// the match being empty matters, not the result being empty
	if m == nil || m.Empty() {
		r.setLayout(r.tree.Focused(), style)
	} else {
		for _, c := range r.targets(m) {
			r.setLayout(c, style)
		}
	}
	r.touch()
	return done()
}

func (r *Runner) setLayout(c *layout.Container, style layout.Style) {
	if c.Kind == layout.KindWorkspace {
		c.Style = style
		return
	}
	p := c.Parent()
	if p == nil || p.Kind == layout.KindOutput || p.Kind == layout.KindRoot {
		return
	}
	p.Style = style
}

// Exit shuts the manager down. This is the one verb whose effect is an
// intentional process termination.
func (r *Runner) Exit(m *match.Match) Reply {
	if r.record("exit", m) {
		return done()
	}
	r.host.Quit()
	return done()
}

// Reload re-reads the configuration.
func (r *Runner) Reload(m *match.Match) Reply {
	if r.record("reload", m) {
		return done()
	}
	if err := r.host.Reload(); err != nil {
		return failf("%v", err)
	}
	return done()
}

// Restart re-executes the manager in place.
func (r *Runner) Restart(m *match.Match) Reply {
	if r.record("restart", m) {
		return done()
	}
	if err := r.host.Restart(); err != nil {
		return failf("%v", err)
	}
	return done()
}

// Open creates an empty container next to the focused one and focuses
// it. The reply carries the new container's id.
func (r *Runner) Open(m *match.Match) Reply {
	if r.record("open", m) {
		return done()
	}
	c, err := r.tree.OpenContainer()
	if err != nil {
		return failf("%v", err)
	}
	r.touch()
	return Reply{Success: true, ContainerID: c.ID}
}
