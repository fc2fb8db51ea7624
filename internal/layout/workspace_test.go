package layout

import "testing"

func TestShowWorkspaceRecordsPrevious(t *testing.T) {
	tr, out, ws1 := newTestTree()
	ws2 := tr.AddWorkspace("2", out)
	tr.ShowWorkspace(ws2)
	if !tr.WorkspaceVisible(ws2) {
		t.Fatal("ws2 should be visible after show")
	}
	if tr.WorkspaceVisible(ws1) {
		t.Fatal("ws1 should be hidden after switching away")
	}
	if got := tr.LastWorkspaceName(); got != "1" {
		t.Fatalf("last workspace = %q, want %q", got, "1")
	}
}

func TestShowSameWorkspaceKeepsPrevious(t *testing.T) {
	tr, out, _ := newTestTree()
	ws2 := tr.AddWorkspace("2", out)
	tr.ShowWorkspace(ws2)
	tr.ShowWorkspace(ws2)
	if got := tr.LastWorkspaceName(); got != "1" {
		t.Fatalf("last workspace = %q, want %q after re-show", got, "1")
	}
}

func TestBackAndForth(t *testing.T) {
	tr, out, ws1 := newTestTree()
	ws2 := tr.AddWorkspace("2", out)
	tr.ShowWorkspace(ws2)
	if err := tr.BackAndForth(); err != nil {
		t.Fatalf("BackAndForth: %v", err)
	}
	if tr.FocusedWorkspace() != ws1 {
		t.Fatalf("focused workspace = %s, want 1", tr.FocusedWorkspace().Name)
	}
	if err := tr.BackAndForth(); err != nil {
		t.Fatalf("BackAndForth return trip: %v", err)
	}
	if tr.FocusedWorkspace() != ws2 {
		t.Fatalf("focused workspace = %s, want 2", tr.FocusedWorkspace().Name)
	}
}

func TestBackAndForthWithoutHistory(t *testing.T) {
	tr, _, _ := newTestTree()
	if err := tr.BackAndForth(); err == nil {
		t.Fatal("back-and-forth with no history should fail")
	}
}

func TestStepWorkspaceWrapsAcrossOutputs(t *testing.T) {
	tr, out, ws1 := newTestTree()
	ws2 := tr.AddWorkspace("2", out)
	out2 := tr.AddOutput("side", Rect{X: 160, Y: 0, Width: 80, Height: 48})
	ws3 := tr.AddWorkspace("3", out2)

	next, err := tr.StepWorkspace(true, false)
	if err != nil {
		t.Fatalf("StepWorkspace: %v", err)
	}
	if next != ws2 {
		t.Fatalf("next = %s, want 2", next.Name)
	}

	tr.ShowWorkspace(ws3)
	next, err = tr.StepWorkspace(true, false)
	if err != nil {
		t.Fatalf("StepWorkspace: %v", err)
	}
	if next != ws1 {
		t.Fatalf("next from last = %s, want wrap to 1", next.Name)
	}

	prev, err := tr.StepWorkspace(false, false)
	if err != nil {
		t.Fatalf("StepWorkspace back: %v", err)
	}
	if prev != ws2 {
		t.Fatalf("prev = %s, want 2", prev.Name)
	}
}

func TestStepWorkspaceOnOutput(t *testing.T) {
	tr, out, ws1 := newTestTree()
	ws2 := tr.AddWorkspace("2", out)
	out2 := tr.AddOutput("side", Rect{X: 160, Y: 0, Width: 80, Height: 48})
	tr.AddWorkspace("3", out2)

	next, err := tr.StepWorkspace(true, true)
	if err != nil {
		t.Fatalf("StepWorkspace: %v", err)
	}
	if next != ws2 {
		t.Fatalf("next on output = %s, want 2", next.Name)
	}
	tr.ShowWorkspace(ws2)
	next, err = tr.StepWorkspace(true, true)
	if err != nil {
		t.Fatalf("StepWorkspace: %v", err)
	}
	if next != ws1 {
		t.Fatalf("next on output = %s, want wrap to 1, not the other output", next.Name)
	}
}

func TestEnsureWorkspaceCreatesOnFocusedOutput(t *testing.T) {
	tr, out, _ := newTestTree()
	ws, err := tr.EnsureWorkspace("mail")
	if err != nil {
		t.Fatalf("EnsureWorkspace: %v", err)
	}
	if ws.Output() != out {
		t.Fatalf("workspace created on %s, want focused output", ws.Output().Name)
	}
	again, err := tr.EnsureWorkspace("mail")
	if err != nil {
		t.Fatalf("EnsureWorkspace again: %v", err)
	}
	if again != ws {
		t.Fatal("EnsureWorkspace created a duplicate")
	}
}

func TestFreshWorkspaceName(t *testing.T) {
	tr, out, _ := newTestTree()
	if got := tr.FreshWorkspaceName(); got != "2" {
		t.Fatalf("fresh name = %q, want %q", got, "2")
	}
	tr.AddWorkspace("2", out)
	tr.AddWorkspace("4", out)
	if got := tr.FreshWorkspaceName(); got != "3" {
		t.Fatalf("fresh name = %q, want gap fill %q", got, "3")
	}
}

func TestReservedNames(t *testing.T) {
	if !Reserved("__slate_scratch") {
		t.Fatal("scratch workspace name should be reserved")
	}
	if Reserved("mail") {
		t.Fatal("plain names are not reserved")
	}
}

func TestWorkspacesSkipScratch(t *testing.T) {
	tr, _, _ := newTestTree()
	for _, ws := range tr.Workspaces() {
		if ws.Name == "__slate_scratch" {
			t.Fatal("scratch workspace leaked into the workspace list")
		}
	}
}
