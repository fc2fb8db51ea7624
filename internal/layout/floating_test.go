package layout

import "testing"

func TestFloatingEnableWrapsWindow(t *testing.T) {
	tr, _, ws := newTestTree()
	openWin(t, tr, "term", "a")
	b := openWin(t, tr, "term", "b")
	if err := tr.FloatingEnable(b); err != nil {
		t.Fatalf("FloatingEnable: %v", err)
	}
	if !b.Floating() {
		t.Fatal("container should report floating")
	}
	wrap := b.FloatingWrap()
	if wrap == nil || wrap.Kind != KindFloating {
		t.Fatal("expected a floating wrapper above the container")
	}
	floats := ws.FloatingChildren()
	if len(floats) != 1 || floats[0] != wrap {
		t.Fatal("wrapper should hang off the workspace")
	}
	if tr.Focused() != b {
		t.Fatal("focus should ride along into the wrapper")
	}
	if err := tr.FloatingEnable(b); err != nil {
		t.Fatalf("second FloatingEnable: %v", err)
	}
	if len(ws.FloatingChildren()) != 1 {
		t.Fatal("enabling twice must not stack wrappers")
	}
}

func TestFloatingDefaultRect(t *testing.T) {
	tr, _, _ := newTestTree()
	b := openWin(t, tr, "term", "b")
	if err := tr.FloatingEnable(b); err != nil {
		t.Fatalf("FloatingEnable: %v", err)
	}
	got := b.FloatingWrap().Rect
	want := Rect{X: 40, Y: 12, Width: 80, Height: 24}
	if got != want {
		t.Fatalf("wrapper rect = %+v, want centered %+v", got, want)
	}
}

func TestFloatingDisable(t *testing.T) {
	tr, _, ws := newTestTree()
	openWin(t, tr, "term", "a")
	b := openWin(t, tr, "term", "b")
	if err := tr.FloatingEnable(b); err != nil {
		t.Fatalf("FloatingEnable: %v", err)
	}
	wrap := b.FloatingWrap()
	if err := tr.FloatingDisable(b); err != nil {
		t.Fatalf("FloatingDisable: %v", err)
	}
	if b.Floating() {
		t.Fatal("container should be tiled again")
	}
	if b.Parent() != ws {
		t.Fatal("container should rejoin the workspace tiling")
	}
	if tr.ByID(wrap.ID) != nil {
		t.Fatal("wrapper should be gone")
	}
	if err := tr.FloatingDisable(b); err != nil {
		t.Fatalf("disable on a tiled container: %v", err)
	}
}

func TestFloatingDisableOnWrapper(t *testing.T) {
	tr, _, ws := newTestTree()
	b := openWin(t, tr, "term", "b")
	if err := tr.FloatingEnable(b); err != nil {
		t.Fatalf("FloatingEnable: %v", err)
	}
	wrap := b.FloatingWrap()
	if err := tr.FloatingDisable(wrap); err != nil {
		t.Fatalf("FloatingDisable on wrapper: %v", err)
	}
	if b.Parent() != ws || b.Floating() {
		t.Fatal("disabling the wrapper should sink its content")
	}
}

func TestToggleFloating(t *testing.T) {
	tr, _, _ := newTestTree()
	b := openWin(t, tr, "term", "b")
	if err := tr.ToggleFloating(b); err != nil {
		t.Fatalf("ToggleFloating: %v", err)
	}
	if !b.Floating() {
		t.Fatal("first toggle should float")
	}
	if err := tr.ToggleFloating(b); err != nil {
		t.Fatalf("ToggleFloating back: %v", err)
	}
	if b.Floating() {
		t.Fatal("second toggle should sink")
	}
}

func TestFloatingWorkspaceRejected(t *testing.T) {
	tr, _, ws := newTestTree()
	if err := tr.FloatingEnable(ws); err != ErrIsWorkspace {
		t.Fatalf("FloatingEnable(workspace) = %v, want ErrIsWorkspace", err)
	}
}

func TestFloatingEnableDissolvesEmptySplit(t *testing.T) {
	tr, _, _ := newTestTree()
	a := openWin(t, tr, "term", "a")
	openWin(t, tr, "term", "b")
	if err := tr.Split(a, Vertical); err != nil {
		t.Fatalf("Split: %v", err)
	}
	split := a.Parent()
	if err := tr.FloatingEnable(a); err != nil {
		t.Fatalf("FloatingEnable: %v", err)
	}
	if tr.ByID(split.ID) != nil {
		t.Fatal("emptied split should dissolve when its only child floats away")
	}
}

func TestScratchpadMoveHides(t *testing.T) {
	tr, _, ws := newTestTree()
	a := openWin(t, tr, "term", "a")
	b := openWin(t, tr, "term", "b")
	if err := tr.ScratchpadMove(b); err != nil {
		t.Fatalf("ScratchpadMove: %v", err)
	}
	if got := b.Workspace().Name; got != "__slate_scratch" {
		t.Fatalf("container parked on %q, want the scratch workspace", got)
	}
	if len(ws.FloatingChildren()) != 0 {
		t.Fatal("workspace should no longer show the window")
	}
	if tr.Focused() != a {
		t.Fatalf("focus = %s, want back on a", tr.Focused().Title())
	}
}

func TestScratchpadCycle(t *testing.T) {
	tr, _, ws := newTestTree()
	a := openWin(t, tr, "term", "a")
	b := openWin(t, tr, "term", "b")
	if err := tr.ScratchpadMove(b); err != nil {
		t.Fatalf("ScratchpadMove: %v", err)
	}

	if err := tr.ScratchpadCycle(); err != nil {
		t.Fatalf("ScratchpadCycle show: %v", err)
	}
	if b.Workspace() != ws {
		t.Fatal("cycle should bring the parked window onto the focused workspace")
	}
	if tr.Focused() != b {
		t.Fatal("shown scratch window should take focus")
	}

	if err := tr.ScratchpadCycle(); err != nil {
		t.Fatalf("ScratchpadCycle hide: %v", err)
	}
	if got := b.Workspace().Name; got != "__slate_scratch" {
		t.Fatalf("container on %q after hiding, want scratch", got)
	}
	if tr.Focused() != a {
		t.Fatal("hiding should return focus to the workspace")
	}
}

func TestScratchpadCycleEmpty(t *testing.T) {
	tr, _, _ := newTestTree()
	openWin(t, tr, "term", "a")
	if err := tr.ScratchpadCycle(); err != ErrScratchpadEmpty {
		t.Fatalf("ScratchpadCycle on empty = %v, want ErrScratchpadEmpty", err)
	}
}

func TestScratchpadToggle(t *testing.T) {
	tr, _, ws := newTestTree()
	openWin(t, tr, "term", "a")
	b := openWin(t, tr, "term", "b")
	if err := tr.ScratchpadMove(b); err != nil {
		t.Fatalf("ScratchpadMove: %v", err)
	}
	if err := tr.ScratchpadToggle(b); err != nil {
		t.Fatalf("ScratchpadToggle show: %v", err)
	}
	if b.Workspace() != ws {
		t.Fatal("toggle should show the parked window")
	}
	if err := tr.ScratchpadToggle(b); err != nil {
		t.Fatalf("ScratchpadToggle hide: %v", err)
	}
	if got := b.Workspace().Name; got != "__slate_scratch" {
		t.Fatalf("container on %q after toggle, want scratch", got)
	}
}

func TestScratchpadToggleRejectsOutsiders(t *testing.T) {
	tr, _, _ := newTestTree()
	c := openWin(t, tr, "term", "c")
	if err := tr.FloatingEnable(c); err != nil {
		t.Fatalf("FloatingEnable: %v", err)
	}
	if err := tr.ScratchpadToggle(c); err == nil {
		t.Fatal("toggling a window never sent to the scratchpad should fail")
	}
}
