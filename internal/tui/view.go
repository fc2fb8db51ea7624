package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/slatewm/slate/internal/commands"
	"github.com/slatewm/slate/internal/layout"
)

var (
	barStyle       = lipgloss.NewStyle().Background(colorMantle).Foreground(colorSubtext0)
	outputStyle    = lipgloss.NewStyle().Background(colorMantle).Foreground(colorSurface2).Padding(0, 1)
	wsStyle        = lipgloss.NewStyle().Background(colorMantle).Foreground(colorDim).Padding(0, 1)
	wsVisibleStyle = lipgloss.NewStyle().Background(colorSurface0).Foreground(colorText).Padding(0, 1)
	wsFocusStyle   = lipgloss.NewStyle().Background(colorAccent).Foreground(colorCrust).Padding(0, 1).Bold(true)

	statusBarStyle = lipgloss.NewStyle().Background(colorSurface0).Foreground(colorText).Padding(0, 1)
	statusErrStyle = lipgloss.NewStyle().Background(colorSurface0).Foreground(colorError).Padding(0, 1).Bold(true)
	modeStyle      = lipgloss.NewStyle().Background(colorWarning).Foreground(colorCrust).Padding(0, 1).Bold(true)
	selftestStyle  = lipgloss.NewStyle().Background(colorSurface0).Foreground(colorTeal).Padding(0, 1)

	footerStyle   = lipgloss.NewStyle().Background(colorMantle).Foreground(colorSubtext0).Padding(0, 2)
	helpKeyStyle  = lipgloss.NewStyle().Background(colorMantle).Foreground(colorAccent).Bold(true)
	helpDescStyle = lipgloss.NewStyle().Background(colorMantle).Foreground(colorSubtext0)

	paneStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorSurface1)
	panePixelStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(colorSurface1)
	titleStyle     = lipgloss.NewStyle().Foreground(colorText).Bold(true)
	subtitleStyle  = lipgloss.NewStyle().Foreground(colorDim)
	markStyle      = lipgloss.NewStyle().Foreground(colorPeach)
	deckActive     = lipgloss.NewStyle().Background(colorSurface1).Foreground(colorText).Padding(0, 1).Bold(true)
	deckInactive   = lipgloss.NewStyle().Background(colorMantle).Foreground(colorDim).Padding(0, 1)
)

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "starting…"
	}
	canvasH := m.height - 3
	if canvasH < 1 {
		canvasH = 1
	}

	var b strings.Builder
	b.WriteString(m.renderWorkspaceBar())
	b.WriteByte('\n')
	b.WriteString(m.renderTree(m.width, canvasH))
	b.WriteByte('\n')
	if m.typing {
		b.WriteString(statusBarStyle.Width(m.width).Render(m.input.View()))
	} else {
		b.WriteString(m.renderStatus())
	}
	b.WriteByte('\n')
	b.WriteString(m.renderFooter())
	return b.String()
}

// renderWorkspaceBar lists the workspaces grouped by output. The focused
// workspace gets the accent, visible ones on other outputs a lighter
// highlight. Reserved workspaces stay hidden.
func (m *Model) renderWorkspaceBar() string {
	t := m.runner.Tree()
	outs := t.Outputs()
	focused := t.FocusedWorkspace()

	var parts []string
	for _, out := range outs {
		if len(outs) > 1 {
			parts = append(parts, outputStyle.Render(out.Name))
		}
		for _, ws := range t.Workspaces() {
			if ws.Output() != out || strings.HasPrefix(ws.Name, layout.ReservedPrefix) {
				continue
			}
			st := wsStyle
			switch {
			case ws == focused:
				st = wsFocusStyle
			case t.WorkspaceVisible(ws):
				st = wsVisibleStyle
			}
			parts = append(parts, st.Render(ws.Name))
		}
	}
	bar := truncate(strings.Join(parts, ""), m.width)
	return barStyle.Width(m.width).Render(bar)
}

func (m *Model) renderStatus() string {
	left := ""
	if m.host.mode != "default" {
		left = modeStyle.Render(m.host.mode)
	}
	right := ""
	if m.session != nil && m.session.Capturing() {
		right = selftestStyle.Render("selftest")
	}

	st := statusBarStyle
	if m.statusErr {
		st = statusErrStyle
	}
	msg := strings.ReplaceAll(m.status, "\n", " ")
	avail := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if avail < 2 {
		return truncate(left+right, m.width)
	}
	return left + st.Width(avail).Render(truncate(msg, avail-2)) + right
}

// renderFooter shows the chords of the active mode as key and description
// pairs on the mantle background. While the command line is open it shows
// the usage of the verb being typed instead.
func (m *Model) renderFooter() string {
	sep := helpDescStyle.Render("  ")
	var parts []string
	if m.typing {
		if e, ok := m.verbEntry(); ok {
			parts = append(parts, helpKeyStyle.Render(e.Usage)+helpDescStyle.Render("  "+e.Help))
		} else {
			parts = append(parts, helpKeyStyle.Render("tab")+helpDescStyle.Render(" complete"))
			parts = append(parts, helpKeyStyle.Render("esc")+helpDescStyle.Render(" cancel"))
		}
	} else {
		for _, b := range m.keymap.Chords(m.host.mode) {
			parts = append(parts, helpKeyStyle.Render(b.Key)+helpDescStyle.Render(" "+truncate(b.Command, 16)))
		}
		parts = append(parts, helpKeyStyle.Render(":")+helpDescStyle.Render(" command"))
		parts = append(parts, helpKeyStyle.Render("ctrl+c")+helpDescStyle.Render(" quit"))
	}
	line := truncate(strings.Join(parts, sep), m.width-4)
	return footerStyle.Width(m.width).Render(line)
}

// verbEntry resolves the routing-table entry of the verb on the command
// line, skipping over a leading criteria block.
func (m *Model) verbEntry() (commands.TableEntry, bool) {
	line := strings.TrimSpace(m.input.Value())
	if i := strings.IndexByte(line, ']'); strings.HasPrefix(line, "[") && i >= 0 {
		line = strings.TrimSpace(line[i+1:])
	}
	verb, _, _ := strings.Cut(line, " ")
	for _, e := range m.table.Entries() {
		if e.Verb == verb {
			return e, true
		}
	}
	return commands.TableEntry{}, false
}

// cell is a rectangle in terminal cells.
type cell struct {
	x, y, w, h int
}

// scaler maps tree cell coordinates onto the terminal canvas. Corners are
// scaled independently so adjacent rects stay adjacent after rounding.
type scaler struct {
	minX, minY    int
	spanX, spanY  int
	width, height int
}

func (s scaler) rect(r layout.Rect) cell {
	x0 := (r.X - s.minX) * s.width / s.spanX
	y0 := (r.Y - s.minY) * s.height / s.spanY
	x1 := (r.X + r.Width - s.minX) * s.width / s.spanX
	y1 := (r.Y + r.Height - s.minY) * s.height / s.spanY
	return cell{x0, y0, x1 - x0, y1 - y0}
}

// renderTree paints every output's visible workspace onto one canvas. A
// globally fullscreen container paints last, over everything.
func (m *Model) renderTree(width, height int) string {
	t := m.runner.Tree()
	outs := t.Outputs()
	canvas := make([]string, height)
	if len(outs) == 0 {
		return strings.Join(canvas, "\n")
	}

	minX, minY := outs[0].Rect.X, outs[0].Rect.Y
	maxX, maxY := minX+outs[0].Rect.Width, minY+outs[0].Rect.Height
	for _, o := range outs[1:] {
		if o.Rect.X < minX {
			minX = o.Rect.X
		}
		if o.Rect.Y < minY {
			minY = o.Rect.Y
		}
		if x := o.Rect.X + o.Rect.Width; x > maxX {
			maxX = x
		}
		if y := o.Rect.Y + o.Rect.Height; y > maxY {
			maxY = y
		}
	}
	sc := scaler{minX: minX, minY: minY, spanX: maxX - minX, spanY: maxY - minY, width: width, height: height}
	if sc.spanX <= 0 {
		sc.spanX = 1
	}
	if sc.spanY <= 0 {
		sc.spanY = 1
	}

	focusedCon := t.Focused()
	var global *layout.Container
	for _, out := range outs {
		ws := t.VisibleWorkspace(out)
		if ws == nil {
			continue
		}
		if f := fullscreenOf(ws); f != nil {
			if f.Fullscreen == layout.FullscreenGlobal {
				global = f
				continue
			}
			m.paintLeaf(canvas, f, sc.rect(out.Rect), width, focusedCon)
			continue
		}
		for _, ch := range ws.TilingChildren() {
			m.paintCon(canvas, ch, sc, width, focusedCon)
		}
		for _, fl := range ws.FloatingChildren() {
			m.paintCon(canvas, fl, sc, width, focusedCon)
		}
	}
	if global != nil {
		m.paintLeaf(canvas, global, cell{0, 0, width, height}, width, focusedCon)
	}
	return strings.Join(canvas, "\n")
}

// fullscreenOf finds the fullscreen container at or below c, if any.
func fullscreenOf(c *layout.Container) *layout.Container {
	if c.Fullscreen != layout.FullscreenNone {
		return c
	}
	for _, ch := range c.Children() {
		if f := fullscreenOf(ch); f != nil {
			return f
		}
	}
	return nil
}

func (m *Model) paintCon(canvas []string, c *layout.Container, sc scaler, width int, focused *layout.Container) {
	switch {
	case c.Window != nil || c.NumChildren() == 0:
		m.paintLeaf(canvas, c, sc.rect(c.Rect), width, focused)
	case c.Style == layout.StyleStacked || c.Style == layout.StyleTabbed:
		m.paintDeck(canvas, c, sc, width, focused)
	default:
		for _, ch := range c.TilingChildren() {
			m.paintCon(canvas, ch, sc, width, focused)
		}
	}
}

// paintDeck draws a stacked or tabbed container: a header strip naming the
// children, then the most recently focused child in the remaining body.
func (m *Model) paintDeck(canvas []string, c *layout.Container, sc scaler, width int, focused *layout.Container) {
	r := sc.rect(c.Rect)
	if r.w <= 0 || r.h <= 0 {
		return
	}
	children := c.TilingChildren()
	active := c.FocusedChild()
	if active == nil && len(children) > 0 {
		active = children[0]
	}

	var header []string
	if c.Style == layout.StyleTabbed {
		var tabs []string
		for _, ch := range children {
			st := deckInactive
			if ch == active {
				st = deckActive
			}
			tabs = append(tabs, st.Render(truncate(ch.Title(), 14)))
		}
		header = []string{truncate(strings.Join(tabs, ""), r.w)}
	} else {
		for _, ch := range children {
			st := deckInactive
			if ch == active {
				st = deckActive
			}
			header = append(header, st.Width(r.w).Render(truncate(ch.Title(), r.w-2)))
		}
	}
	for i, line := range header {
		if i >= r.h {
			return
		}
		paintAt(canvas, r.x, r.y+i, width, line)
	}
	if active != nil && r.h > len(header) {
		body := cell{r.x, r.y + len(header), r.w, r.h - len(header)}
		m.paintLeaf(canvas, active, body, width, focused)
	}
}

// paintLeaf draws one pane box into the given cell. The border follows the
// container's border style, focus recolors it.
func (m *Model) paintLeaf(canvas []string, c *layout.Container, r cell, width int, focused *layout.Container) {
	if r.w <= 0 || r.h <= 0 {
		return
	}
	hasFocus := c == focused || c.DescendFocused() == focused

	if c.Border == layout.BorderNone || r.w < 4 || r.h < 3 {
		title := truncate(c.Title(), r.w)
		if hasFocus {
			title = titleStyle.Render(title)
		}
		paintAt(canvas, r.x, r.y, width, title)
		return
	}

	st := paneStyle
	if c.Border == layout.BorderPixel {
		st = panePixelStyle
	}
	if hasFocus {
		st = st.BorderForeground(colorFocus)
	}

	inner := r.w - 2
	var lines []string
	if c.Border != layout.BorderPixel {
		lines = append(lines, titleStyle.Render(truncate(c.Title(), inner)))
	}
	if c.Window != nil {
		sub := c.Window.Class
		if c.Window.Instance != "" && c.Window.Instance != c.Window.Class {
			sub += "/" + c.Window.Instance
		}
		if sub != "" {
			lines = append(lines, subtitleStyle.Render(truncate(sub, inner)))
		}
	}
	if c.Mark != "" {
		lines = append(lines, markStyle.Render(truncate("["+c.Mark+"]", inner)))
	}
	if c.Fullscreen != layout.FullscreenNone {
		lines = append(lines, subtitleStyle.Render("fullscreen"))
	}
	if limit := r.h - 2; len(lines) > limit {
		lines = lines[:limit]
	}

	box := st.Width(r.w - 2).Height(r.h - 2).Render(strings.Join(lines, "\n"))
	paintAt(canvas, r.x, r.y, width, box)
}
