package layout

import (
	"strings"
	"testing"
)

func TestAppendJSONBuildsSubtree(t *testing.T) {
	tr, _, ws := newTestTree()
	snippet := `{
		"layout": "splitv",
		"percent": 0.5,
		"children": [
			{"name": "editor", "mark": "ed", "window": {"class": "vim", "title": "main.go"}},
			{"layout": "tabbed", "children": [
				{"window": {"class": "term", "title": "build"}},
				{"window": {"class": "term", "title": "logs"}}
			]}
		]
	}`
	if err := tr.AppendJSON(ws, strings.NewReader(snippet)); err != nil {
		t.Fatalf("AppendJSON: %v", err)
	}

	kids := ws.Children()
	root := kids[len(kids)-1]
	if root.Orient != Vertical || root.Percent != 0.5 {
		t.Fatalf("root orient=%s percent=%v, want splitv 0.5", root.Orient, root.Percent)
	}
	if len(root.Children()) != 2 {
		t.Fatalf("root children = %d, want 2", len(root.Children()))
	}
	ed := root.Children()[0]
	if ed.Mark != "ed" || ed.Window == nil || ed.Window.Class != "vim" {
		t.Fatalf("editor node wrong: %+v", ed)
	}
	tabs := root.Children()[1]
	if tabs.Style != StyleTabbed || len(tabs.Children()) != 2 {
		t.Fatalf("tabbed node wrong: style=%s children=%d", tabs.Style, len(tabs.Children()))
	}
	if tabs.Children()[1].Window.Title != "logs" {
		t.Fatalf("tab title = %q, want logs", tabs.Children()[1].Window.Title)
	}
	if tr.ByID(ed.ID) != ed {
		t.Fatal("appended containers must be registered")
	}
}

func TestAppendJSONWindowNameFallback(t *testing.T) {
	tr, _, ws := newTestTree()
	snippet := `{"window": {"class": "term", "title": "scratch"}}`
	if err := tr.AppendJSON(ws, strings.NewReader(snippet)); err != nil {
		t.Fatalf("AppendJSON: %v", err)
	}
	kids := ws.Children()
	if got := kids[len(kids)-1].Name; got != "scratch" {
		t.Fatalf("name = %q, want window title fallback", got)
	}
}

func TestAppendJSONStackingAlias(t *testing.T) {
	tr, _, ws := newTestTree()
	snippet := `{"layout": "stacking", "children": [{"window": {"title": "x"}}]}`
	if err := tr.AppendJSON(ws, strings.NewReader(snippet)); err != nil {
		t.Fatalf("AppendJSON: %v", err)
	}
	kids := ws.Children()
	if got := kids[len(kids)-1].Style; got != StyleStacked {
		t.Fatalf("style = %s, want stacked for the stacking alias", got)
	}
}

func TestAppendJSONRejectsBadNodes(t *testing.T) {
	tests := []struct {
		name    string
		snippet string
	}{
		{"window and children", `{"window": {"title": "x"}, "children": [{"name": "y"}]}`},
		{"unknown layout", `{"layout": "spiral"}`},
		{"unknown border", `{"border": "double"}`},
		{"truncated json", `{"layout": "splitv"`},
	}
	for _, tt := range tests {
		tr, _, ws := newTestTree()
		before := len(tr.Containers())
		if err := tr.AppendJSON(ws, strings.NewReader(tt.snippet)); err == nil {
			t.Errorf("%s: AppendJSON accepted bad input", tt.name)
		}
		if got := len(tr.Containers()); got != before {
			t.Errorf("%s: rejected snippet left %d orphan containers", tt.name, got-before)
		}
	}
}

func TestAppendJSONFileMissing(t *testing.T) {
	tr, _, ws := newTestTree()
	if err := tr.AppendJSONFile(ws, "/nonexistent/layout.json"); err == nil {
		t.Fatal("missing file should fail")
	}
}
