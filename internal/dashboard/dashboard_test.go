package dashboard

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/HendryAvila/specdeck/internal/spec"
	"github.com/HendryAvila/specdeck/internal/store"
)

func tree() []*spec.TaskNode {
	return []*spec.TaskNode{
		{ID: "A", Description: "schema", Checked: true},
		{ID: "B", Description: "endpoints", Children: []*spec.TaskNode{
			{ID: "B.1", Description: "create", Checked: true},
			{ID: "B.2", Description: "verify", Children: []*spec.TaskNode{
				{ID: "B.2.1", Description: "happy path"},
			}},
		}},
	}
}

// --- Tree flattening ---

func TestVisibleTasks_FullTree(t *testing.T) {
	rows := visibleTasks(tree(), map[string]bool{})
	want := []string{"A", "B", "B.1", "B.2", "B.2.1"}
	if len(rows) != len(want) {
		t.Fatalf("rows = %d, want %d", len(rows), len(want))
	}
	for i, id := range want {
		if rows[i].node.ID != id {
			t.Errorf("rows[%d] = %s, want %s", i, rows[i].node.ID, id)
		}
	}
	if rows[4].depth != 2 {
		t.Errorf("B.2.1 depth = %d, want 2", rows[4].depth)
	}
}

func TestVisibleTasks_CollapsedHidesSubtree(t *testing.T) {
	rows := visibleTasks(tree(), map[string]bool{"B": true})
	want := []string{"A", "B"}
	if len(rows) != len(want) {
		t.Fatalf("rows = %d, want %d", len(rows), len(want))
	}
	for i, id := range want {
		if rows[i].node.ID != id {
			t.Errorf("rows[%d] = %s, want %s", i, rows[i].node.ID, id)
		}
	}
}

func TestVisibleTasks_CollapsedInnerNode(t *testing.T) {
	rows := visibleTasks(tree(), map[string]bool{"B.2": true})
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.node.ID
	}
	if got := strings.Join(ids, " "); got != "A B B.1 B.2" {
		t.Errorf("ids = %q", got)
	}
}

// --- Rendering helpers ---

func TestTaskBar(t *testing.T) {
	tests := []struct {
		checked, total int
		want           string
	}{
		{0, 4, "[----------]"},
		{2, 4, "[#####-----]"},
		{4, 4, "[##########]"},
		{0, 0, "[##########]"},
		{1, 3, "[###-------]"},
	}
	for _, tt := range tests {
		if got := taskBar(tt.checked, tt.total, 10); got != tt.want {
			t.Errorf("taskBar(%d, %d) = %q, want %q", tt.checked, tt.total, got, tt.want)
		}
	}
}

func TestRenderTaskLine(t *testing.T) {
	nodes := tree()

	leaf := renderTaskLine(taskRow{node: nodes[0], depth: 0}, false, false)
	if !strings.Contains(leaf, "[x] A: schema") {
		t.Errorf("checked leaf = %q", leaf)
	}

	parent := renderTaskLine(taskRow{node: nodes[1], depth: 0}, false, false)
	if !strings.Contains(parent, "(1/2) B: endpoints") {
		t.Errorf("parent = %q", parent)
	}
	if !strings.Contains(parent, "▾") {
		t.Errorf("expanded parent missing marker: %q", parent)
	}

	folded := renderTaskLine(taskRow{node: nodes[1], depth: 0}, false, true)
	if !strings.Contains(folded, "▸") {
		t.Errorf("collapsed parent missing marker: %q", folded)
	}

	selected := renderTaskLine(taskRow{node: nodes[0], depth: 0}, true, false)
	if !strings.Contains(selected, "›") {
		t.Errorf("selected line missing cursor: %q", selected)
	}
}

// --- Model updates ---

func writeSpec(t *testing.T, root, name, body string) {
	t.Helper()
	path := filepath.Join(root, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

const sampleSpec = `---
specdeck: v0
title: Login Flow
applications:
    -
---

# Background

Why.

# Proposal

What.

# Implementation Plan

- [x] A: schema
- [ ] B: endpoints

# Test Plan

- manual
`

func newTestModel(t *testing.T) Model {
	t.Helper()
	root := t.TempDir()
	writeSpec(t, root, "2026-02-17-21-27-login-flow.md", sampleSpec)

	m := NewModel(store.New(root), nil)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = next.(Model)

	msg := m.Init()()
	summaries, ok := msg.(summariesMsg)
	if !ok {
		t.Fatalf("Init message = %T (%v)", msg, msg)
	}
	next, _ = m.Update(summaries)
	return next.(Model)
}

func TestModel_LoadsSummariesIntoList(t *testing.T) {
	m := newTestModel(t)
	if len(m.summaries) != 1 {
		t.Fatalf("summaries = %d, want 1", len(m.summaries))
	}
	item, ok := m.specList.SelectedItem().(specItem)
	if !ok {
		t.Fatal("no selected item")
	}
	if item.summary.Name != "login-flow" {
		t.Errorf("selected = %s", item.summary.Name)
	}
	if !strings.Contains(item.Description(), "1/2 tasks") {
		t.Errorf("description = %q", item.Description())
	}
}

func TestModel_EnterOpensDetailAndEscReturns(t *testing.T) {
	m := newTestModel(t)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	if m.state != stateDetail {
		t.Fatalf("state = %d, want detail", m.state)
	}
	if m.detail == nil || m.detail.Name != "login-flow" {
		t.Fatal("detail not attached")
	}
	view := m.View()
	if !strings.Contains(view, "Login Flow") {
		t.Errorf("detail view missing title:\n%s", view)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	if m.state != stateList {
		t.Errorf("state after esc = %d, want list", m.state)
	}
}

func TestModel_CollapseToggle(t *testing.T) {
	m := newTestModel(t)
	m.enterDetail(m.summaries[0])
	m.detail.Tasks = tree()

	// Move to B and fold it.
	m.moveCursor(1)
	m.toggleCollapse()
	if !m.collapsed["B"] {
		t.Fatal("B not collapsed")
	}
	if rows := visibleTasks(m.detail.Tasks, m.collapsed); len(rows) != 2 {
		t.Errorf("visible rows = %d, want 2", len(rows))
	}
	m.toggleCollapse()
	if m.collapsed["B"] {
		t.Error("B still collapsed after second toggle")
	}
}

func TestModel_StoreChangeReloads(t *testing.T) {
	m := newTestModel(t)

	writeSpec(t, m.store.Root, "2026-02-17-21-28-billing.md", sampleSpec)
	msg := loadSummaries(m.store)()
	summaries, ok := msg.(summariesMsg)
	if !ok {
		t.Fatalf("message = %T", msg)
	}
	next, _ := m.Update(summaries)
	m = next.(Model)
	if len(m.summaries) != 2 {
		t.Errorf("summaries after reload = %d, want 2", len(m.summaries))
	}
}
