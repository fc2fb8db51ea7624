// Package main provides slate-alert, the viewer slate launches when the
// dispatcher self-test fails. It shows both recorded handler streams with
// the diverging frame highlighted.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/slatewm/slate/internal/selftest"
)

const (
	colorRed      lipgloss.Color = "#f38ba8"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorLavender lipgloss.Color = "#b4befe"
	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext  lipgloss.Color = "#a6adc8"
	colorSurface  lipgloss.Color = "#313244"
	colorMantle   lipgloss.Color = "#181825"
)

var (
	titleStyle  = lipgloss.NewStyle().Background(colorRed).Foreground(colorMantle).Padding(0, 1).Bold(true)
	reasonStyle = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	metaStyle   = lipgloss.NewStyle().Foreground(colorSubtext)
	headStyle   = lipgloss.NewStyle().Foreground(colorLavender).Bold(true)
	frameStyle  = lipgloss.NewStyle().Foreground(colorText)
	badStyle    = lipgloss.NewStyle().Background(colorSurface).Foreground(colorYellow).Bold(true)
	footStyle   = lipgloss.NewStyle().Background(colorMantle).Foreground(colorSubtext).Padding(0, 2)
)

type model struct {
	rep      *selftest.Report
	vp       viewport.Model
	ready    bool
	quitting bool
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		body := msg.Height - 4
		if body < 1 {
			body = 1
		}
		if !m.ready {
			m.vp = viewport.New(msg.Width, body)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = body
		}
		m.vp.SetContent(renderReport(m.rep))
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "loading…"
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("slate dispatcher self-test failure"))
	b.WriteByte('\n')
	b.WriteString(reasonStyle.Render(m.rep.Reason))
	b.WriteByte('\n')
	b.WriteString(m.vp.View())
	b.WriteByte('\n')
	b.WriteString(footStyle.Render("j/k scroll  q quit"))
	return b.String()
}

func renderReport(rep *selftest.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", metaStyle.Render(fmt.Sprintf("report %s", rep.ID)))
	fmt.Fprintf(&b, "%s\n", metaStyle.Render(fmt.Sprintf("time   %s", rep.Time.Format("2006-01-02 15:04:05 MST"))))
	fmt.Fprintf(&b, "%s\n\n", metaStyle.Render(fmt.Sprintf("frame  %d", rep.FrameIndex)))

	b.WriteString(headStyle.Render("table dispatcher stream"))
	b.WriteByte('\n')
	writeFrames(&b, rep.Table, rep.FrameIndex)
	b.WriteByte('\n')
	b.WriteString(headStyle.Render("legacy dispatcher stream"))
	b.WriteByte('\n')
	writeFrames(&b, rep.Legacy, rep.FrameIndex)
	return b.String()
}

func writeFrames(b *strings.Builder, frames []selftest.Frame, bad int) {
	if len(frames) == 0 {
		b.WriteString(metaStyle.Render("  (no frames)"))
		b.WriteByte('\n')
		return
	}
	for i, f := range frames {
		line := fmt.Sprintf("%3d  %s", i, frameLine(f))
		if i == bad {
			line = badStyle.Render(line)
		} else {
			line = frameStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
}

// frameLine flattens one recorded handler entry: the handler name, the
// criteria that were in force and the raw arguments, nil spelled out.
func frameLine(f selftest.Frame) string {
	var parts []string
	if data, err := json.Marshal(f.Match); err == nil && string(data) != "{}" {
		parts = append(parts, string(data))
	}
	for _, a := range f.Args {
		if a == nil {
			parts = append(parts, "<absent>")
		} else {
			parts = append(parts, fmt.Sprintf("%q", *a))
		}
	}
	if len(parts) == 0 {
		return f.Handler
	}
	return f.Handler + " " + strings.Join(parts, " ")
}

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: slate-alert <report.json>")
		os.Exit(2)
	}
	rep, err := selftest.Load(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	p := tea.NewProgram(model{rep: rep}, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}
