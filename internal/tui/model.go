// Package tui is the interactive shell of the manager. It draws the layout
// tree as nested panes, translates key chords through the binding modes and
// feeds typed command lines to the dispatchers.
package tui

import (
	"log"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/slatewm/slate/internal/commands"
	"github.com/slatewm/slate/internal/config"
	"github.com/slatewm/slate/internal/journal"
	"github.com/slatewm/slate/internal/layout"
	"github.com/slatewm/slate/internal/selftest"
)

const historyLimit = 100

// AlertClosedMsg arrives when the external alert viewer exits. Err carries
// the viewer's exit error, nil for a clean close.
type AlertClosedMsg struct {
	Err error
}

// Model is the bubbletea program state. One runner drives the tree, both
// dispatchers sit in front of it and the self-test session arbitrates
// between them while it captures.
type Model struct {
	cfg    config.Config
	log    *log.Logger
	keymap *Keymap
	host   *host

	runner *commands.Runner
	legacy *commands.LegacyDispatcher
	table  *commands.TableDispatcher

	jnl     *journal.Journal
	session *selftest.Session

	width  int
	height int

	status    string
	statusErr bool

	input   textinput.Model
	typing  bool
	history []string
	histAt  int

	quitting bool
}

// New assembles the program around a tree raised from the configuration.
// The journal and the session may be nil, both are optional.
func New(cfg config.Config, jnl *journal.Journal, session *selftest.Session, logger *log.Logger) *Model {
	if logger == nil {
		logger = log.Default()
	}
	keymap := NewKeymap(cfg.Bindings)
	h := &host{keymap: keymap, mode: "default"}
	runner := commands.NewRunner(BuildTree(cfg), shellSpawner{log: logger}, h, logger)
	runner.AutoBackAndForth = cfg.WorkspaceAutoBackAndForth

	ti := textinput.New()
	ti.Prompt = "cmd> "

	m := &Model{
		cfg:     cfg,
		log:     logger,
		keymap:  keymap,
		host:    h,
		runner:  runner,
		legacy:  commands.NewLegacyDispatcher(runner),
		table:   commands.NewTableDispatcher(runner),
		jnl:     jnl,
		session: session,
		status:  "ready",
		input:   ti,
	}
	m.seedHistory()
	return m
}

// Mode returns the active binding mode.
func (m *Model) Mode() string { return m.host.mode }

// Tree returns the layout tree the runner mutates.
func (m *Model) Tree() *layout.Tree { return m.runner.Tree() }

// seedHistory preloads the command history from the journal so recall
// works across runs. Journal entries only keep verb and arguments, the
// criteria prefix of the original line is gone.
func (m *Model) seedHistory() {
	if m.jnl == nil {
		return
	}
	entries, err := m.jnl.Recent(historyLimit)
	if err != nil {
		m.log.Printf("warn: journal history: %v", err)
		return
	}
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		line := strings.TrimSpace(e.Verb + " " + strings.Join(e.Args, " "))
		if n := len(m.history); n > 0 && m.history[n-1] == line {
			continue
		}
		m.history = append(m.history, line)
	}
	m.histAt = len(m.history)
}

// BuildTree raises the configured outputs and workspaces. Outputs left
// without a workspace get a numbered one, so every output has something to
// show. Focus starts on the first workspace.
func BuildTree(cfg config.Config) *layout.Tree {
	t := layout.NewTree()
	t.DefaultBorder = borderStyle(cfg.DefaultBorder)

	outputs := make(map[string]*layout.Container, len(cfg.Outputs))
	for _, oc := range cfg.Outputs {
		outputs[oc.Name] = t.AddOutput(oc.Name, layout.Rect{
			X: oc.X, Y: oc.Y, Width: oc.Width, Height: oc.Height,
		})
	}

	taken := make(map[string]bool, len(cfg.Workspaces))
	var first *layout.Container
	for _, wc := range cfg.Workspaces {
		out := outputs[wc.Output]
		if out == nil || taken[wc.Name] {
			continue
		}
		taken[wc.Name] = true
		ws := t.AddWorkspace(wc.Name, out)
		if first == nil {
			first = ws
		}
	}

	n := 1
	for _, oc := range cfg.Outputs {
		out := outputs[oc.Name]
		if t.VisibleWorkspace(out) != nil {
			continue
		}
		for taken[strconv.Itoa(n)] {
			n++
		}
		taken[strconv.Itoa(n)] = true
		ws := t.AddWorkspace(strconv.Itoa(n), out)
		if first == nil {
			first = ws
		}
	}

	if first != nil {
		t.SetFocus(first)
	}
	t.Arrange()
	return t
}

// borderStyle maps the configured default_border value onto the tree enum.
// Load has already rejected anything else, unknown values fall back to
// normal.
func borderStyle(name string) layout.BorderStyle {
	switch name {
	case "none":
		return layout.BorderNone
	case "1pixel":
		return layout.BorderPixel
	}
	return layout.BorderNormal
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.statusErr = true
}

// remember appends a line to the recall history, collapsing immediate
// repeats, and resets the recall cursor.
func (m *Model) remember(line string) {
	if n := len(m.history); n == 0 || m.history[n-1] != line {
		m.history = append(m.history, line)
		if len(m.history) > historyLimit {
			m.history = m.history[len(m.history)-historyLimit:]
		}
	}
	m.histAt = len(m.history)
}

// historyNewestFirst flips the history for the suggestion ranking, which
// wants recent lines to win position ties.
func (m *Model) historyNewestFirst() []string {
	out := make([]string, 0, len(m.history))
	for i := len(m.history) - 1; i >= 0; i-- {
		out = append(out, m.history[i])
	}
	return out
}
