package commands

import (
	"strings"

	"github.com/slatewm/slate/internal/match"
)

// TableEntry is one routing-table row: the verb, its palette metadata,
// the argument arity the table enforces, and the handler adapter.
type TableEntry struct {
	Verb    string
	Usage   string
	Help    string
	MinArgs int
	// MaxArgs < 0 means unbounded.
	MaxArgs int

	run func(t *TableDispatcher, m *match.Match, args []string) Reply
}

// TableDispatcher is the routing-table interpreter: verb lookup in a
// map, shared arity check, then a small per-verb adapter. It must stay
// observably equivalent to LegacyDispatcher; the self-test harness
// compares the two call for call.
type TableDispatcher struct {
	r       *Runner
	entries []TableEntry
	byVerb  map[string]TableEntry
}

func NewTableDispatcher(r *Runner) *TableDispatcher {
	t := &TableDispatcher{r: r}
	t.entries = []TableEntry{
		{
			Verb: "append_layout", Usage: "append_layout <path>",
			Help:    "Load a layout snippet beneath the focused workspace",
			MinArgs: 1, MaxArgs: 1,
			run: func(t *TableDispatcher, m *match.Match, args []string) Reply {
				return t.r.AppendLayout(m, args[0])
			},
		},
		{
			Verb: "border", Usage: "border normal|none|1pixel|toggle",
			Help:    "Set or cycle the border style of matched panes",
			MinArgs: 1, MaxArgs: 1,
			run: func(t *TableDispatcher, m *match.Match, args []string) Reply {
				return t.r.Border(m, args[0])
			},
		},
		{
			Verb: "exec", Usage: "exec [--no-startup-id] <command>",
			Help:    "Run a command in a new pane",
			MinArgs: 1, MaxArgs: -1,
			run: func(t *TableDispatcher, m *match.Match, args []string) Reply {
				var noStartupID *string
				rest := args
				if args[0] == "--no-startup-id" {
					noStartupID = &args[0]
					rest = args[1:]
					if len(rest) == 0 {
						return failf("wrong number of arguments to %q", "exec")
					}
				}
				return t.r.Exec(m, noStartupID, strings.Join(rest, " "))
			},
		},
		{
			Verb: "exit", Usage: "exit",
			Help:    "Shut the window manager down",
			MinArgs: 0, MaxArgs: -1,
			run: func(t *TableDispatcher, m *match.Match, args []string) Reply {
				return t.r.Exit(m)
			},
		},
		{
			Verb: "floating", Usage: "floating enable|disable|toggle",
			Help:    "Lift matched panes out of the tiling layout or sink them back",
			MinArgs: 1, MaxArgs: 1,
			run: func(t *TableDispatcher, m *match.Match, args []string) Reply {
				return t.r.Floating(m, args[0])
			},
		},
		{
			Verb: "focus", Usage: "focus [<direction>|parent|child|tiling|floating|mode_toggle|output <which>]",
			Help:    "Move focus by criteria, direction, level, realm or output",
			MinArgs: 0, MaxArgs: -1,
			run:     (*TableDispatcher).routeFocus,
		},
		{
			Verb: "fullscreen", Usage: "fullscreen [global|output]",
			Help:    "Toggle fullscreen on matched panes",
			MinArgs: 0, MaxArgs: 1,
			run: func(t *TableDispatcher, m *match.Match, args []string) Reply {
				if len(args) == 0 {
					return t.r.Fullscreen(m, nil)
				}
				return t.r.Fullscreen(m, &args[0])
			},
		},
		{
			Verb: "kill", Usage: "kill [window|client]",
			Help:    "Close matched panes, or the focused one",
			MinArgs: 0, MaxArgs: 1,
			run: func(t *TableDispatcher, m *match.Match, args []string) Reply {
				if len(args) == 0 {
					return t.r.Kill(m, nil)
				}
				return t.r.Kill(m, &args[0])
			},
		},
		{
			Verb: "layout", Usage: "layout default|stacked|stacking|tabbed",
			Help:    "Set the split presentation of the matched panes' parents",
			MinArgs: 1, MaxArgs: 1,
			run: func(t *TableDispatcher, m *match.Match, args []string) Reply {
				name := args[0]
				if name == "stacking" {
					name = "stacked"
				}
				return t.r.Layout(m, name)
			},
		},
		{
			Verb: "mark", Usage: "mark <name>",
			Help:    "Name the matched panes for later criteria lookup",
			MinArgs: 1, MaxArgs: -1,
			run: func(t *TableDispatcher, m *match.Match, args []string) Reply {
				return t.r.Mark(m, strings.Join(args, " "))
			},
		},
		{
			Verb: "mode", Usage: "mode <name>",
			Help:    "Switch the key-binding mode",
			MinArgs: 1, MaxArgs: -1,
			run: func(t *TableDispatcher, m *match.Match, args []string) Reply {
				return t.r.Mode(m, strings.Join(args, " "))
			},
		},
		{
			Verb: "move", Usage: "move <direction> [<px>] | move container|workspace to ... | move scratchpad",
			Help:    "Move panes and workspaces through the layout",
			MinArgs: 1, MaxArgs: -1,
			run:     (*TableDispatcher).routeMove,
		},
		{
			Verb: "nop", Usage: "nop [comment]",
			Help:    "Do nothing, successfully",
			MinArgs: 0, MaxArgs: -1,
			run: func(t *TableDispatcher, m *match.Match, args []string) Reply {
				var comment *string
				if len(args) > 0 {
					comment = strptr(strings.Join(args, " "))
				}
				return t.r.Nop(m, comment)
			},
		},
		{
			Verb: "open", Usage: "open",
			Help:    "Create an empty pane next to the focused one",
			MinArgs: 0, MaxArgs: -1,
			run: func(t *TableDispatcher, m *match.Match, args []string) Reply {
				return t.r.Open(m)
			},
		},
		{
			Verb: "reload", Usage: "reload",
			Help:    "Re-read the configuration",
			MinArgs: 0, MaxArgs: -1,
			run: func(t *TableDispatcher, m *match.Match, args []string) Reply {
				return t.r.Reload(m)
			},
		},
		{
			Verb: "resize", Usage: "resize grow|shrink <direction> [<px> px [or <ppt> ppt]]",
			Help:    "Grow or shrink the focused pane",
			MinArgs: 2, MaxArgs: -1,
			run: func(t *TableDispatcher, m *match.Match, args []string) Reply {
				vals := make([]string, 0, 2)
				for _, a := range args[2:] {
					if a == "px" || a == "ppt" || a == "or" {
						continue
					}
					vals = append(vals, a)
				}
				px, ppt := strptr("10"), strptr("10")
				if len(vals) > 0 {
					px = &vals[0]
				}
				if len(vals) > 1 {
					ppt = &vals[1]
				}
				return t.r.Resize(m, args[0], args[1], px, ppt)
			},
		},
		{
			Verb: "restart", Usage: "restart",
			Help:    "Re-exec the window manager in place",
			MinArgs: 0, MaxArgs: -1,
			run: func(t *TableDispatcher, m *match.Match, args []string) Reply {
				return t.r.Restart(m)
			},
		},
		{
			Verb: "scratchpad", Usage: "scratchpad show",
			Help:    "Cycle or toggle scratchpad panes",
			MinArgs: 0, MaxArgs: -1,
			run: func(t *TableDispatcher, m *match.Match, args []string) Reply {
				if len(args) == 1 && args[0] == "show" {
					return t.r.ScratchpadShow(m)
				}
				return failf("scratchpad supports only show")
			},
		},
		{
			Verb: "split", Usage: "split v|h|vertical|horizontal",
			Help:    "Wrap the matched panes in a new split",
			MinArgs: 1, MaxArgs: 1,
			run: func(t *TableDispatcher, m *match.Match, args []string) Reply {
				return t.r.Split(m, args[0])
			},
		},
		{
			Verb: "workspace", Usage: "workspace next|prev|next_on_output|prev_on_output|back_and_forth|<name>",
			Help:    "Switch to another workspace",
			MinArgs: 1, MaxArgs: -1,
			run: func(t *TableDispatcher, m *match.Match, args []string) Reply {
				switch args[0] {
				case "next", "prev", "next_on_output", "prev_on_output":
					return t.r.Workspace(m, args[0])
				case "back_and_forth":
					return t.r.WorkspaceBackAndForth(m)
				default:
					return t.r.WorkspaceName(m, strings.Join(args, " "))
				}
			},
		},
	}
	t.byVerb = make(map[string]TableEntry, len(t.entries))
	for _, e := range t.entries {
		t.byVerb[e.Verb] = e
	}
	return t
}

// Entries returns a copy of the routing table, for the palette.
func (t *TableDispatcher) Entries() []TableEntry {
	out := make([]TableEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Run dispatches a full command line, then settles the layout once.
func (t *TableDispatcher) Run(line []Invocation) []Reply {
	replies := make([]Reply, 0, len(line))
	for _, inv := range line {
		replies = append(replies, t.Dispatch(inv))
	}
	t.r.Settle()
	return replies
}

// Dispatch looks the verb up, enforces the entry's arity and hands the
// arguments to its adapter.
func (t *TableDispatcher) Dispatch(inv Invocation) Reply {
	e, ok := t.byVerb[inv.Verb]
	if !ok {
		return unknownVerb(inv.Verb)
	}
	if len(inv.Args) < e.MinArgs || (e.MaxArgs >= 0 && len(inv.Args) > e.MaxArgs) {
		return failf("wrong number of arguments to %q", inv.Verb)
	}
	m := buildMatch(inv.Criteria, t.r.log)
	return e.run(t, m, inv.Args)
}

func (t *TableDispatcher) routeFocus(m *match.Match, args []string) Reply {
	if len(args) == 0 {
		return t.r.Focus(m)
	}
	switch args[0] {
	case "left", "right", "up", "down":
		return t.r.FocusDirection(m, args[0])
	case "tiling", "floating", "mode_toggle":
		return t.r.FocusWindowMode(m, args[0])
	case "parent", "child":
		return t.r.FocusLevel(m, args[0])
	case "output":
		if len(args) != 2 {
			return failf("wrong number of arguments to %q", "focus")
		}
		return t.r.FocusOutput(m, args[1])
	default:
		return failf("unknown focus target: %s", args[0])
	}
}

func (t *TableDispatcher) routeMove(m *match.Match, args []string) Reply {
	if _, ok := parseDirection(args[0]); ok {
		px := strptr("10")
		if len(args) > 1 && args[1] != "px" {
			px = &args[1]
		}
		return t.r.MoveDirection(m, args[0], px)
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
					return t.r.MoveToWorkspace(m, rest[0])
				}
			}
			return t.r.MoveToWorkspaceName(m, strings.Join(rest, " "))
		case "output":
			if len(args) != 4 {
				return failf("wrong number of arguments to %q", "move")
			}
			return t.r.MoveToOutput(m, args[3])
		default:
			return failf("unknown move target: %s", args[2])
		}
	case "workspace":
		if len(args) != 4 || args[1] != "to" || args[2] != "output" {
			return failf("wrong number of arguments to %q", "move")
		}
		return t.r.MoveWorkspaceToOutput(m, args[3])
	case "scratchpad":
		return t.r.MoveScratchpad(m)
	default:
		return failf("unknown move target: %s", args[0])
	}
}
