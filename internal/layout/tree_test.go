package layout

import "testing"

// newTestTree builds one output with one workspace and focuses it.
func newTestTree() (*Tree, *Container, *Container) {
	tr := NewTree()
	out := tr.AddOutput("main", Rect{X: 0, Y: 0, Width: 160, Height: 48})
	ws := tr.AddWorkspace("1", out)
	tr.SetFocus(ws)
	return tr, out, ws
}

func openWin(t *testing.T, tr *Tree, class, title string) *Container {
	t.Helper()
	c, err := tr.OpenWindow(&Window{Class: class, Instance: class, Title: title})
	if err != nil {
		t.Fatalf("OpenWindow(%s): %v", class, err)
	}
	return c
}

func TestOpenWindowFocusesNew(t *testing.T) {
	tr, _, ws := newTestTree()
	a := openWin(t, tr, "term", "a")
	if tr.Focused() != a {
		t.Fatalf("focused = %s, want the new window", tr.Focused().Title())
	}
	b := openWin(t, tr, "term", "b")
	if tr.Focused() != b {
		t.Fatalf("focused = %s, want second window", tr.Focused().Title())
	}
	if got := len(ws.Children()); got != 2 {
		t.Fatalf("workspace children = %d, want 2", got)
	}
	if ws.Children()[0] != a || ws.Children()[1] != b {
		t.Fatal("children out of insertion order")
	}
}

func TestOpenWindowDockDoesNotTakeFocus(t *testing.T) {
	tr, _, _ := newTestTree()
	a := openWin(t, tr, "term", "a")
	if _, err := tr.OpenWindow(&Window{Class: "bar", Title: "bar", Dock: true}); err != nil {
		t.Fatalf("OpenWindow dock: %v", err)
	}
	if tr.Focused() != a {
		t.Fatalf("dock window stole focus: focused = %s", tr.Focused().Title())
	}
}

func TestCloseMovesFocusToSurvivor(t *testing.T) {
	tr, _, ws := newTestTree()
	a := openWin(t, tr, "term", "a")
	b := openWin(t, tr, "term", "b")
	if err := tr.Close(b); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if tr.Focused() != a {
		t.Fatalf("focused = %s, want a", tr.Focused().Title())
	}
	if len(ws.Children()) != 1 {
		t.Fatalf("children = %d, want 1", len(ws.Children()))
	}
	if tr.ByID(b.ID) != nil {
		t.Fatal("closed container still registered")
	}
}

func TestCloseWorkspaceRejected(t *testing.T) {
	tr, _, ws := newTestTree()
	if err := tr.Close(ws); err == nil {
		t.Fatal("closing a workspace should fail")
	}
}

func TestSplitWrapsContainer(t *testing.T) {
	tr, _, ws := newTestTree()
	a := openWin(t, tr, "term", "a")
	a.Percent = 0.7
	if err := tr.Split(a, Vertical); err != nil {
		t.Fatalf("Split: %v", err)
	}
	split := a.Parent()
	if split == ws {
		t.Fatal("expected a new split container between workspace and window")
	}
	if split.Orient != Vertical {
		t.Fatalf("split orientation = %s, want vertical", split.Orient)
	}
	if split.Percent != 0.7 {
		t.Fatalf("split percent = %v, want inherited 0.7", split.Percent)
	}
	if a.Percent != 0 {
		t.Fatalf("window percent = %v, want reset to 0", a.Percent)
	}
	if tr.Focused() != a {
		t.Fatal("focus should stay on the window after split")
	}
}

func TestSplitWorkspaceChangesOrientation(t *testing.T) {
	tr, _, ws := newTestTree()
	if ws.Orient != Horizontal {
		t.Fatalf("wide workspace should start horizontal")
	}
	if err := tr.Split(ws, Vertical); err != nil {
		t.Fatalf("Split: %v", err)
	}
	if ws.Orient != Vertical {
		t.Fatal("splitting the workspace should flip its orientation")
	}
}

func TestMoveToWorkspaceResetsPercent(t *testing.T) {
	tr, out, ws := newTestTree()
	a := openWin(t, tr, "term", "a")
	openWin(t, tr, "term", "b")
	a.Percent = 0.8
	ws2 := tr.AddWorkspace("2", out)
	if err := tr.MoveToWorkspace(a, ws2); err != nil {
		t.Fatalf("MoveToWorkspace: %v", err)
	}
	if a.Workspace() != ws2 {
		t.Fatal("container did not land on the target workspace")
	}
	if a.Percent != 0 {
		t.Fatalf("percent = %v, want 0 after move", a.Percent)
	}
	if fw := tr.FocusedWorkspace(); fw != ws {
		t.Fatalf("focus followed the moved container to %s", fw.Name)
	}
}

func TestMoveToSameWorkspaceIsNoop(t *testing.T) {
	tr, _, ws := newTestTree()
	a := openWin(t, tr, "term", "a")
	if err := tr.MoveToWorkspace(a, ws); err != nil {
		t.Fatalf("MoveToWorkspace: %v", err)
	}
	if a.Workspace() != ws || len(ws.Children()) != 1 {
		t.Fatal("no-op move changed the tree")
	}
}

func TestCloseDissolvesEmptySplit(t *testing.T) {
	tr, _, ws := newTestTree()
	a := openWin(t, tr, "term", "a")
	openWin(t, tr, "term", "b")
	if err := tr.Split(a, Vertical); err != nil {
		t.Fatalf("Split: %v", err)
	}
	split := a.Parent()
	tr.SetFocus(a)
	if err := tr.Close(a); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if tr.ByID(split.ID) != nil {
		t.Fatal("empty split container should dissolve")
	}
	if len(ws.Children()) != 1 {
		t.Fatalf("workspace children = %d, want only b", len(ws.Children()))
	}
}

func TestMoveToWorkspaceDissolvesEmptySplit(t *testing.T) {
	tr, out, _ := newTestTree()
	a := openWin(t, tr, "term", "a")
	openWin(t, tr, "term", "b")
	if err := tr.Split(a, Vertical); err != nil {
		t.Fatalf("Split: %v", err)
	}
	split := a.Parent()
	ws2 := tr.AddWorkspace("2", out)
	if err := tr.MoveToWorkspace(a, ws2); err != nil {
		t.Fatalf("MoveToWorkspace: %v", err)
	}
	if tr.ByID(split.ID) != nil {
		t.Fatal("empty split left behind after the move")
	}
}

func TestDescendFocusedFollowsFocusOrder(t *testing.T) {
	tr, _, ws := newTestTree()
	openWin(t, tr, "term", "a")
	b := openWin(t, tr, "term", "b")
	if got := ws.DescendFocused(); got != b {
		t.Fatalf("DescendFocused = %s, want b", got.Title())
	}
	if got := tr.Root().DescendFocused(); got != b {
		t.Fatalf("DescendFocused from root = %s, want b", got.Title())
	}
}

func TestContainersStableOrder(t *testing.T) {
	tr, _, _ := newTestTree()
	a := openWin(t, tr, "term", "a")
	b := openWin(t, tr, "term", "b")
	all := tr.Containers()
	ai, bi := -1, -1
	for i, c := range all {
		switch c {
		case a:
			ai = i
		case b:
			bi = i
		}
	}
	if ai == -1 || bi == -1 || ai > bi {
		t.Fatalf("creation order lost: a at %d, b at %d", ai, bi)
	}
}

func TestByID(t *testing.T) {
	tr, _, _ := newTestTree()
	a := openWin(t, tr, "term", "a")
	if tr.ByID(a.ID) != a {
		t.Fatal("ByID did not find the container")
	}
	if tr.ByID(99999) != nil {
		t.Fatal("ByID invented a container")
	}
}
