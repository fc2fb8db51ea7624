package tui

import (
	"io"
	"log"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/slatewm/slate/internal/config"
	"github.com/slatewm/slate/internal/layout"
	"github.com/slatewm/slate/internal/selftest"
)

func layoutRect(x, y, w, h int) layout.Rect {
	return layout.Rect{X: x, Y: y, Width: w, Height: h}
}

func testConfig() config.Config {
	return config.Config{
		DefaultBorder: "normal",
		Outputs: []config.OutputConfig{
			{Name: "main", X: 0, Y: 0, Width: 160, Height: 48},
		},
		Workspaces: []config.WorkspaceConfig{
			{Name: "1", Output: "main"},
			{Name: "2", Output: "main"},
		},
		Bindings: []config.Binding{
			{Key: "alt+enter", Command: "open"},
			{Key: "alt+h", Command: "focus left"},
			{Key: "alt+r", Command: "mode resize"},
			{Mode: "resize", Key: "l", Command: "resize grow right 5 px or 5 ppt"},
			{Mode: "resize", Key: "esc", Command: "mode default"},
		},
	}
}

func newTestModel(t *testing.T) *Model {
	t.Helper()
	m := New(testConfig(), nil, nil, log.New(io.Discard, "", 0))
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func altKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s), Alt: true}
}

// submit opens the command line, sets the line and hits enter.
func submit(m *Model, line string) tea.Cmd {
	m.Update(keyRunes(":"))
	m.input.SetValue(line)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return cmd
}

func TestKeymapLookup(t *testing.T) {
	k := NewKeymap(testConfig().Bindings)

	cmd, ok := k.Lookup("default", "alt+enter")
	if !ok || cmd != "open" {
		t.Fatalf("Lookup(default, alt+enter) = %q, %v", cmd, ok)
	}
	cmd, ok = k.Lookup("resize", "l")
	if !ok || !strings.HasPrefix(cmd, "resize grow") {
		t.Fatalf("Lookup(resize, l) = %q, %v", cmd, ok)
	}
	if _, ok := k.Lookup("default", "l"); ok {
		t.Fatalf("default mode should not know the resize chord")
	}
	if !k.HasMode("resize") || k.HasMode("gaps") {
		t.Fatalf("mode detection wrong")
	}
}

func TestKeymapFirstBindingWins(t *testing.T) {
	k := NewKeymap([]config.Binding{
		{Key: "alt+x", Command: "kill"},
		{Key: "alt+x", Command: "open"},
	})
	cmd, _ := k.Lookup("default", "alt+x")
	if cmd != "kill" {
		t.Fatalf("duplicate binding won: %q", cmd)
	}
	if n := len(k.Chords("default")); n != 1 {
		t.Fatalf("Chords kept the duplicate, len %d", n)
	}
}

func TestFuzzyMatchScore(t *testing.T) {
	if ok, _ := fuzzyMatchScore("workspace", "wksp"); !ok {
		t.Fatalf("subsequence should match")
	}
	if ok, _ := fuzzyMatchScore("workspace", "xyz"); ok {
		t.Fatalf("non-subsequence should not match")
	}
	if ok, score := fuzzyMatchScore("focus", ""); !ok || score != 0 {
		t.Fatalf("empty query = %v, %d", ok, score)
	}

	_, exact := fuzzyMatchScore("focus", "focus")
	_, prefix := fuzzyMatchScore("focus", "foc")
	_, scattered := fuzzyMatchScore("fullscreen", "fsc")
	if exact <= prefix {
		t.Fatalf("exact %d should beat prefix %d", exact, prefix)
	}
	if prefix <= scattered {
		t.Fatalf("prefix %d should beat scattered %d", prefix, scattered)
	}
}

func TestSuggestRanking(t *testing.T) {
	history := []string{"resize grow right 5 px or 5 ppt", "focus left"}
	verbs := []string{"focus", "floating", "fullscreen"}

	got := suggest("foc", verbs, history, 3)
	if len(got) == 0 {
		t.Fatalf("no suggestions for foc")
	}
	if got[0] != "focus left" {
		t.Fatalf("best suggestion = %q, want the history line", got[0])
	}

	got = suggest("resize", verbs, history, 5)
	if len(got) == 0 || !strings.HasPrefix(got[0], "resize grow") {
		t.Fatalf("history line should win for resize, got %v", got)
	}

	if got := suggest("zzz", verbs, history, 5); len(got) != 0 {
		t.Fatalf("impossible query matched %v", got)
	}
}

func TestSuggestCapsAndDedupes(t *testing.T) {
	verbs := []string{"focus"}
	history := []string{"focus", "focus left", "focus right"}
	got := suggest("f", verbs, history, 2)
	if len(got) != 2 {
		t.Fatalf("cap ignored, got %v", got)
	}
	seen := map[string]bool{}
	for _, s := range got {
		if seen[s] {
			t.Fatalf("duplicate suggestion %q", s)
		}
		seen[s] = true
	}
}

func TestChordOpensPane(t *testing.T) {
	m := newTestModel(t)

	m.Update(tea.KeyMsg{Type: tea.KeyEnter, Alt: true})

	ws := m.Tree().FocusedWorkspace()
	if ws == nil || len(ws.TilingChildren()) != 1 {
		t.Fatalf("chord did not open a pane")
	}
	if m.statusErr {
		t.Fatalf("status reports error: %q", m.status)
	}
}

func TestUnboundKeyIsIgnored(t *testing.T) {
	m := newTestModel(t)
	m.Update(keyRunes("z"))
	if ws := m.Tree().FocusedWorkspace(); len(ws.TilingChildren()) != 0 {
		t.Fatalf("unbound key mutated the tree")
	}
}

func TestModeSwitchChords(t *testing.T) {
	m := newTestModel(t)

	m.Update(altKey("r"))
	if m.Mode() != "resize" {
		t.Fatalf("mode = %q after alt+r", m.Mode())
	}

	// the resize chord only works in resize mode
	m.Update(tea.KeyMsg{Type: tea.KeyEnter, Alt: true})
	if ws := m.Tree().FocusedWorkspace(); len(ws.TilingChildren()) != 0 {
		t.Fatalf("default-mode chord leaked into resize mode")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	if m.Mode() != "default" {
		t.Fatalf("mode = %q after esc", m.Mode())
	}
}

func TestUnknownModeFails(t *testing.T) {
	m := newTestModel(t)
	submit(m, "mode gaps")
	if !m.statusErr || !strings.Contains(m.status, "unknown binding mode") {
		t.Fatalf("status = %q, err %v", m.status, m.statusErr)
	}
	if m.Mode() != "default" {
		t.Fatalf("failed switch changed mode to %q", m.Mode())
	}
}

func TestCommandLineRun(t *testing.T) {
	m := newTestModel(t)

	m.Update(keyRunes(":"))
	if !m.typing {
		t.Fatalf("colon did not open the command line")
	}
	for _, r := range "open" {
		m.Update(keyRunes(string(r)))
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if m.typing {
		t.Fatalf("enter left the command line open")
	}
	if ws := m.Tree().FocusedWorkspace(); len(ws.TilingChildren()) != 1 {
		t.Fatalf("typed command did not run")
	}
	if m.statusErr || m.status != "open" {
		t.Fatalf("status = %q, err %v", m.status, m.statusErr)
	}
}

func TestCommandLineEscape(t *testing.T) {
	m := newTestModel(t)
	m.Update(keyRunes(":"))
	m.input.SetValue("kill")
	m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	if m.typing {
		t.Fatalf("esc did not close the command line")
	}
	if m.input.Value() != "" {
		t.Fatalf("input kept %q", m.input.Value())
	}
}

func TestUnknownVerbSuggestsInStatus(t *testing.T) {
	m := newTestModel(t)
	submit(m, "focsu left")
	if !m.statusErr {
		t.Fatalf("unknown verb did not set an error")
	}
	if !strings.Contains(m.status, "unknown command") || !strings.Contains(m.status, "focus") {
		t.Fatalf("status = %q", m.status)
	}
}

func TestParseErrorInStatus(t *testing.T) {
	m := newTestModel(t)
	submit(m, `[class="unclosed open`)
	if !m.statusErr {
		t.Fatalf("parse error did not set an error, status %q", m.status)
	}
}

func TestHistoryRecall(t *testing.T) {
	m := newTestModel(t)
	submit(m, "open")
	submit(m, "split v")

	m.Update(keyRunes(":"))
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if m.input.Value() != "split v" {
		t.Fatalf("first recall = %q", m.input.Value())
	}
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if m.input.Value() != "open" {
		t.Fatalf("second recall = %q", m.input.Value())
	}
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if m.input.Value() != "split v" {
		t.Fatalf("forward recall = %q", m.input.Value())
	}
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if m.input.Value() != "" {
		t.Fatalf("bottom of history = %q", m.input.Value())
	}
}

func TestTabCompletion(t *testing.T) {
	m := newTestModel(t)
	m.Update(keyRunes(":"))
	m.input.SetValue("fullsc")
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.input.Value() != "fullscreen" {
		t.Fatalf("completion = %q", m.input.Value())
	}
}

func TestDualPathCleanRun(t *testing.T) {
	logger := log.New(io.Discard, "", 0)
	session := selftest.NewSession(t.TempDir(), nil, nil, nil, logger)
	session.Enable()

	m := New(testConfig(), nil, session, logger)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	submit(m, "open; split v; open; layout stacked")
	if m.statusErr {
		t.Fatalf("dual-path run failed: %q", m.status)
	}
	if !session.Capturing() {
		t.Fatalf("session stopped capturing")
	}
	if ws := m.Tree().FocusedWorkspace(); len(ws.TilingChildren()) != 1 {
		t.Fatalf("batch did not apply")
	}
}

func TestExitCommandQuits(t *testing.T) {
	m := newTestModel(t)
	cmd := submit(m, "exit")
	if cmd == nil {
		t.Fatalf("exit returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("exit did not quit, msg %T", cmd())
	}
	if !m.quitting {
		t.Fatalf("model not marked quitting")
	}
}

func TestCtrlCQuits(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatalf("ctrl+c returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("ctrl+c did not quit")
	}
}

func TestReloadKeepsTree(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SLATE_CONFIG", "")

	m := newTestModel(t)
	submit(m, "open")
	before := m.Tree()

	submit(m, "reload")
	if m.statusErr {
		t.Fatalf("reload failed: %q", m.status)
	}
	if m.Tree() != before {
		t.Fatalf("reload replaced the tree")
	}
	if m.status != "configuration reloaded" {
		t.Fatalf("status = %q", m.status)
	}
}

func TestRestartRebuildsTree(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SLATE_CONFIG", "")

	m := newTestModel(t)
	submit(m, "open")
	before := m.Tree()

	submit(m, "restart")
	if m.statusErr {
		t.Fatalf("restart failed: %q", m.status)
	}
	if m.Tree() == before {
		t.Fatalf("restart kept the old tree")
	}
	if m.Mode() != "default" {
		t.Fatalf("restart left mode %q", m.Mode())
	}
}

func TestAlertClosedMsg(t *testing.T) {
	m := newTestModel(t)

	m.Update(AlertClosedMsg{})
	if m.statusErr || !strings.Contains(m.status, "alert viewer") {
		t.Fatalf("clean close status = %q", m.status)
	}

	m.Update(AlertClosedMsg{Err: io.ErrUnexpectedEOF})
	if !m.statusErr {
		t.Fatalf("viewer error not surfaced")
	}
}

func TestBuildTreePlugsWorkspaceGaps(t *testing.T) {
	cfg := config.Config{
		DefaultBorder: "none",
		Outputs: []config.OutputConfig{
			{Name: "left", Width: 80, Height: 24},
			{Name: "right", X: 80, Width: 80, Height: 24},
		},
		Workspaces: []config.WorkspaceConfig{
			{Name: "web", Output: "left"},
		},
	}
	tr := BuildTree(cfg)
	right := tr.OutputByName("right")
	if right == nil {
		t.Fatalf("output right missing")
	}
	ws := tr.VisibleWorkspace(right)
	if ws == nil {
		t.Fatalf("right output has no workspace")
	}
	if ws.Name != "1" {
		t.Fatalf("plugged workspace named %q", ws.Name)
	}
	if fw := tr.FocusedWorkspace(); fw == nil || fw.Name != "web" {
		t.Fatalf("focus did not land on the first configured workspace")
	}
}

func TestViewGeometry(t *testing.T) {
	m := newTestModel(t)
	submit(m, "open")

	v := m.View()
	lines := strings.Split(v, "\n")
	if len(lines) != 30 {
		t.Fatalf("view has %d lines, want 30", len(lines))
	}
	if !strings.Contains(v, "container") {
		t.Fatalf("opened pane not drawn")
	}
	if !strings.Contains(v, "command") || !strings.Contains(v, "quit") {
		t.Fatalf("footer help missing")
	}
}

func TestViewBeforeFirstResize(t *testing.T) {
	m := New(testConfig(), nil, nil, log.New(io.Discard, "", 0))
	if v := m.View(); v == "" {
		t.Fatalf("zero-size view empty")
	}
}

func TestViewShowsModeIndicator(t *testing.T) {
	m := newTestModel(t)
	m.Update(altKey("r"))
	if v := m.View(); !strings.Contains(v, "resize") {
		t.Fatalf("mode indicator missing")
	}
}

func TestViewShowsVerbUsageWhileTyping(t *testing.T) {
	m := newTestModel(t)
	m.Update(keyRunes(":"))
	m.input.SetValue("split")
	if v := m.View(); !strings.Contains(v, "split v|h") {
		t.Fatalf("usage hint missing while typing split")
	}

	m.input.SetValue(`[class="term"] border`)
	if v := m.View(); !strings.Contains(v, "border normal|none|1pixel|toggle") {
		t.Fatalf("usage hint missing behind a criteria block")
	}

	m.input.SetValue("nonsense")
	if v := m.View(); !strings.Contains(v, "complete") {
		t.Fatalf("generic typing help missing")
	}
}

func TestPaintAtSplicesRows(t *testing.T) {
	canvas := make([]string, 3)
	paintAt(canvas, 2, 1, 6, "ab\ncd")

	if canvas[0] != "" {
		t.Fatalf("row 0 touched: %q", canvas[0])
	}
	if canvas[1] != "  ab  " {
		t.Fatalf("row 1 = %q", canvas[1])
	}
	if canvas[2] != "  cd  " {
		t.Fatalf("row 2 = %q", canvas[2])
	}

	paintAt(canvas, 0, 1, 6, "XX")
	if canvas[1] != "XXab  " {
		t.Fatalf("overpaint row 1 = %q", canvas[1])
	}
}

func TestScalerKeepsAdjacency(t *testing.T) {
	sc := scaler{spanX: 160, spanY: 48, width: 101, height: 31}
	a := sc.rect(layoutRect(0, 0, 80, 48))
	b := sc.rect(layoutRect(80, 0, 80, 48))
	if a.x+a.w != b.x {
		t.Fatalf("split rects drifted: %+v then %+v", a, b)
	}
	if a.w+b.w != 101 {
		t.Fatalf("widths do not cover the canvas: %d + %d", a.w, b.w)
	}
}

func TestTextHelpers(t *testing.T) {
	if got := padRight("ab", 4); got != "ab  " {
		t.Fatalf("padRight = %q", got)
	}
	if got := truncate("abcdef", 4); got != "abc…" {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("ab", 4); got != "ab" {
		t.Fatalf("truncate widened: %q", got)
	}
	if got := maxLineWidth("ab\nabcd\n"); got != 4 {
		t.Fatalf("maxLineWidth = %d", got)
	}
}
