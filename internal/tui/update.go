package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/slatewm/slate/internal/commands"
	"github.com/slatewm/slate/internal/config"
	"github.com/slatewm/slate/internal/selftest"
)

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 10
		return m, nil
	case AlertClosedMsg:
		if msg.Err != nil {
			m.setError(fmt.Sprintf("alert viewer: %v", msg.Err))
		} else {
			m.setStatus("alert viewer closed")
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.typing {
		return m.handleTyping(msg)
	}

	key := msg.String()
	switch key {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case ":":
		m.typing = true
		m.histAt = len(m.history)
		m.input.Focus()
		return m, textinput.Blink
	}

	if line, ok := m.keymap.Lookup(m.host.mode, key); ok {
		m.runLine(line)
		return m, m.lifecycle()
	}
	return m, nil
}

// handleTyping owns the key while the command line is open.
func (m *Model) handleTyping(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeInput()
		return m, nil
	case "enter":
		line := strings.TrimSpace(m.input.Value())
		m.closeInput()
		if line != "" {
			m.runLine(line)
		}
		return m, m.lifecycle()
	case "up":
		m.histBack()
		return m, nil
	case "down":
		m.histForward()
		return m, nil
	case "tab":
		if s := suggest(m.input.Value(), commands.Verbs(), m.historyNewestFirst(), 1); len(s) > 0 {
			m.input.SetValue(s[0])
			m.input.CursorEnd()
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) closeInput() {
	m.typing = false
	m.input.Reset()
	m.input.Blur()
	m.histAt = len(m.history)
}

func (m *Model) histBack() {
	if m.histAt == 0 || len(m.history) == 0 {
		return
	}
	m.histAt--
	m.input.SetValue(m.history[m.histAt])
	m.input.CursorEnd()
}

func (m *Model) histForward() {
	if m.histAt >= len(m.history) {
		return
	}
	m.histAt++
	if m.histAt == len(m.history) {
		m.input.SetValue("")
		return
	}
	m.input.SetValue(m.history[m.histAt])
	m.input.CursorEnd()
}

// runLine parses and dispatches one command line. While the self-test
// session captures, the line first runs through the table dispatcher
// against a shadow tap, then through the legacy dispatcher for real, and
// the two streams are compared before anything else happens.
func (m *Model) runLine(line string) {
	invs, err := commands.ParseLine(line)
	if err != nil {
		m.setError(err.Error())
		m.remember(line)
		return
	}
	if len(invs) == 0 {
		return
	}

	var replies []commands.Reply
	var mismatch *selftest.Report
	if m.session != nil && m.session.Capturing() {
		m.runner.SetTap(m.session.ShadowTap())
		m.table.Run(invs)
		m.runner.SetTap(m.session.LiveTap())
		replies = m.legacy.Run(invs)
		m.runner.SetTap(nil)
		mismatch = m.session.Validate()
	} else {
		replies = m.legacy.Run(invs)
	}

	if m.jnl != nil {
		for i, inv := range invs {
			var rep commands.Reply
			if i < len(replies) {
				rep = replies[i]
			}
			if err := m.jnl.RecordCommand(inv.Verb, inv.Args, rep.Success, rep.Error); err != nil {
				m.log.Printf("warn: journal: %v", err)
			}
		}
	}

	if mismatch != nil {
		m.setError(fmt.Sprintf("dispatcher mismatch at frame %d: %s", mismatch.FrameIndex, mismatch.Reason))
	} else {
		m.statusFromReplies(line, replies)
	}
	m.remember(line)
}

func (m *Model) statusFromReplies(line string, replies []commands.Reply) {
	for _, rep := range replies {
		if !rep.Success {
			msg := rep.Error
			if msg == "" {
				msg = "command failed"
			}
			m.setError(msg)
			return
		}
	}
	m.setStatus(line)
}

// lifecycle consumes the flags the last dispatch left on the host. Quit
// beats restart beats reload, a restart already rereads the configuration.
func (m *Model) lifecycle() tea.Cmd {
	if m.host.quit {
		m.quitting = true
		return tea.Quit
	}
	if m.host.restart {
		m.host.restart = false
		m.host.reload = false
		m.restart()
		return nil
	}
	if m.host.reload {
		m.host.reload = false
		m.reloadConfig()
	}
	return nil
}

// reloadConfig rereads the configuration and swaps in everything that can
// change without touching the tree.
func (m *Model) reloadConfig() {
	cfg, err := config.Load(m.cfg.Path)
	if err != nil {
		m.setError(fmt.Sprintf("reload: %v", err))
		return
	}
	m.cfg = cfg
	m.keymap = NewKeymap(cfg.Bindings)
	m.host.keymap = m.keymap
	if m.host.mode != "default" && !m.keymap.HasMode(m.host.mode) {
		m.host.mode = "default"
	}
	m.runner.AutoBackAndForth = cfg.WorkspaceAutoBackAndForth
	m.runner.Tree().DefaultBorder = borderStyle(cfg.DefaultBorder)
	m.setStatus("configuration reloaded")
}

// restart rebuilds the world from the configuration. Running in-process
// there is no program image to replace, so a restart is a reload plus a
// fresh tree and runner.
func (m *Model) restart() {
	cfg, err := config.Load(m.cfg.Path)
	if err != nil {
		m.setError(fmt.Sprintf("restart: %v", err))
		return
	}
	m.cfg = cfg
	m.keymap = NewKeymap(cfg.Bindings)
	m.host = &host{keymap: m.keymap, mode: "default"}
	m.runner = commands.NewRunner(BuildTree(cfg), shellSpawner{log: m.log}, m.host, m.log)
	m.runner.AutoBackAndForth = cfg.WorkspaceAutoBackAndForth
	m.legacy = commands.NewLegacyDispatcher(m.runner)
	m.table = commands.NewTableDispatcher(m.runner)
	m.setStatus("restarted")
}
