package commands

import (
	"strings"

	"github.com/slatewm/slate/internal/match"
)

// LegacyDispatcher is the production interpreter: one switch over the
// verb with the argument handling written out longhand per case. The
// routing table in table.go is its planned replacement; both stay
// wired until the self-test harness has seen them agree in the field.
type LegacyDispatcher struct {
	r *Runner
}

func NewLegacyDispatcher(r *Runner) *LegacyDispatcher {
	return &LegacyDispatcher{r: r}
}

// Run dispatches a full command line, then settles the layout once.
func (d *LegacyDispatcher) Run(line []Invocation) []Reply {
	replies := make([]Reply, 0, len(line))
	for _, inv := range line {
		replies = append(replies, d.Dispatch(inv))
	}
	d.r.Settle()
	return replies
}

// Dispatch maps one invocation onto its handler.
func (d *LegacyDispatcher) Dispatch(inv Invocation) Reply {
	r := d.r
	m := buildMatch(inv.Criteria, r.log)
	args := inv.Args
	switch inv.Verb {
	case "border":
		if len(args) != 1 {
			return failf("wrong number of arguments to %q", inv.Verb)
		}
		return r.Border(m, args[0])

	case "nop":
		var comment *string
		if len(args) > 0 {
			comment = strptr(strings.Join(args, " "))
		}
		return r.Nop(m, comment)

	case "append_layout":
		if len(args) != 1 {
			return failf("wrong number of arguments to %q", inv.Verb)
		}
		return r.AppendLayout(m, args[0])

	case "workspace":
		if len(args) == 0 {
			return failf("wrong number of arguments to %q", inv.Verb)
		}
		switch args[0] {
		case "next", "prev", "next_on_output", "prev_on_output":
			return r.Workspace(m, args[0])
		case "back_and_forth":
			return r.WorkspaceBackAndForth(m)
		default:
			return r.WorkspaceName(m, strings.Join(args, " "))
		}

	case "mark":
		if len(args) == 0 {
			return failf("wrong number of arguments to %q", inv.Verb)
		}
		return r.Mark(m, strings.Join(args, " "))

	case "mode":
		if len(args) == 0 {
			return failf("wrong number of arguments to %q", inv.Verb)
		}
		return r.Mode(m, strings.Join(args, " "))

	case "move":
		return d.move(m, args)

	case "floating":
		if len(args) != 1 {
			return failf("wrong number of arguments to %q", inv.Verb)
		}
		return r.Floating(m, args[0])

	case "split":
		if len(args) != 1 {
			return failf("wrong number of arguments to %q", inv.Verb)
		}
		return r.Split(m, args[0])

	case "kill":
		switch len(args) {
		case 0:
			return r.Kill(m, nil)
		case 1:
			return r.Kill(m, &args[0])
		default:
			return failf("wrong number of arguments to %q", inv.Verb)
		}

	case "exec":
		if len(args) == 0 {
			return failf("wrong number of arguments to %q", inv.Verb)
		}
		var noStartupID *string
		rest := args
		if args[0] == "--no-startup-id" {
			noStartupID = &args[0]
			rest = args[1:]
			if len(rest) == 0 {
				return failf("wrong number of arguments to %q", inv.Verb)
			}
		}
		return r.Exec(m, noStartupID, strings.Join(rest, " "))

	case "focus":
		if len(args) == 0 {
			return r.Focus(m)
		}
		switch args[0] {
		case "left", "right", "up", "down":
			return r.FocusDirection(m, args[0])
		case "tiling", "floating", "mode_toggle":
			return r.FocusWindowMode(m, args[0])
		case "parent", "child":
			return r.FocusLevel(m, args[0])
		case "output":
			if len(args) != 2 {
				return failf("wrong number of arguments to %q", inv.Verb)
			}
			return r.FocusOutput(m, args[1])
		default:
			return failf("unknown focus target: %s", args[0])
		}

	case "fullscreen":
		switch len(args) {
		case 0:
			return r.Fullscreen(m, nil)
		case 1:
			return r.Fullscreen(m, &args[0])
		default:
			return failf("wrong number of arguments to %q", inv.Verb)
		}

	case "layout":
		if len(args) != 1 {
			return failf("wrong number of arguments to %q", inv.Verb)
		}
		name := args[0]
		if name == "stacking" {
			name = "stacked"
		}
		return r.Layout(m, name)

	case "resize":
		if len(args) < 2 {
			return failf("wrong number of arguments to %q", inv.Verb)
		}
		px, ppt := strptr("10"), strptr("10")
		slot := 0
		for i := 2; i < len(args); i++ {
			switch args[i] {
			case "px", "ppt", "or":
				continue
			}
			switch slot {
			case 0:
				px = &args[i]
			case 1:
				ppt = &args[i]
			}
			slot++
		}
		return r.Resize(m, args[0], args[1], px, ppt)

	case "scratchpad":
		if len(args) == 1 && args[0] == "show" {
			return r.ScratchpadShow(m)
		}
		return failf("scratchpad supports only show")

	case "exit":
		return r.Exit(m)

	case "reload":
		return r.Reload(m)

	case "restart":
		return r.Restart(m)

	case "open":
		return r.Open(m)

	default:
		return unknownVerb(inv.Verb)
	}
}

// move handles the move verb's sub-grammar.
func (d *LegacyDispatcher) move(m *match.Match, args []string) Reply {
	r := d.r
	if len(args) == 0 {
		return failf("wrong number of arguments to %q", "move")
	}
	if _, ok := parseDirection(args[0]); ok {
		px := strptr("10")
		if len(args) > 1 && args[1] != "px" {
			px = &args[1]
		}
		return r.MoveDirection(m, args[0], px)
	}
	switch args[0] {
	case "container":
		if len(args) < 4 || args[1] != "to" {
			return failf("wrong number of arguments to %q", "move")
		}
		switch args[2] {
		case "workspace":
			rest := args[3:]
			if len(rest) == 1 {
				switch rest[0] {
				case "next", "prev", "next_on_output", "prev_on_output":
					return r.MoveToWorkspace(m, rest[0])
				}
			}
			return r.MoveToWorkspaceName(m, strings.Join(rest, " "))
		case "output":
			if len(args) != 4 {
				return failf("wrong number of arguments to %q", "move")
			}
			return r.MoveToOutput(m, args[3])
		default:
			return failf("unknown move target: %s", args[2])
		}
	case "workspace":
		if len(args) != 4 || args[1] != "to" || args[2] != "output" {
			return failf("wrong number of arguments to %q", "move")
		}
		return r.MoveWorkspaceToOutput(m, args[3])
	case "scratchpad":
		return r.MoveScratchpad(m)
	default:
		return failf("unknown move target: %s", args[0])
	}
}
