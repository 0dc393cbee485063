package spec

import (
	"errors"
	"strings"
	"testing"
)

// --- BuildTree ---

func TestBuildTree_NestedPlan(t *testing.T) {
	text := `
Intro prose is ignored.

- [ ] A: First group
  - [x] A.1: Subtask one
  - [ ] A.2: Subtask two
    - [x] A.2.1: Deep subtask
- [x] B: Second group
`
	tree, err := BuildTree(text)
	if err != nil {
		t.Fatalf("BuildTree: %v", err)
	}

	if len(tree) != 2 {
		t.Fatalf("got %d roots, want 2", len(tree))
	}
	a := tree[0]
	if a.ID != "A" || a.Checked || len(a.Children) != 2 {
		t.Errorf("A = %+v", a)
	}
	if !a.Children[0].Checked || a.Children[0].ID != "A.1" {
		t.Errorf("A.1 = %+v", a.Children[0])
	}
	a2 := a.Children[1]
	if len(a2.Children) != 1 || a2.Children[0].ID != "A.2.1" {
		t.Errorf("A.2 children = %+v", a2.Children)
	}
	if tree[1].ID != "B" || !tree[1].Checked {
		t.Errorf("B = %+v", tree[1])
	}
}

func TestBuildTree_IgnoresNonChecklistLines(t *testing.T) {
	text := "- [ ] not a task (no id)\n- plain bullet\n- [ ] A: real task\n"
	tree, err := BuildTree(text)
	if err != nil {
		t.Fatalf("BuildTree: %v", err)
	}
	if len(tree) != 1 || tree[0].ID != "A" {
		t.Errorf("tree = %+v", tree)
	}
}

func TestBuildTree_ChecklistInsideFenceIgnored(t *testing.T) {
	text := "```\n- [ ] X: looks like a task\n```\n- [ ] A: real task\n"
	tree, err := BuildTree(text)
	if err != nil {
		t.Fatalf("BuildTree: %v", err)
	}
	if len(tree) != 1 || tree[0].ID != "A" {
		t.Errorf("tree = %+v", tree)
	}
}

func TestBuildTree_StructureErrors(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		wantID string
		reason string
	}{
		{
			"child before parent",
			"- [ ] A.1: orphan subtask\n- [ ] A: parent\n",
			"A.1",
			"skips a nesting level",
		},
		{
			"duplicate id",
			"- [ ] A: one\n- [ ] A: two\n",
			"A",
			"duplicate task id",
		},
		{
			"depth jump",
			"- [ ] A: parent\n  - [ ] A.1.1: too deep\n",
			"A.1.1",
			"skips a nesting level",
		},
		{
			"non-contiguous siblings",
			"- [ ] A: first\n- [ ] B: second\n  - [ ] A.1: detached child\n",
			"A.1",
			"does not extend its parent",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildTree(tt.text)
			var serr *StructureError
			if !errors.As(err, &serr) {
				t.Fatalf("BuildTree = %v, want *StructureError", err)
			}
			if serr.ID != tt.wantID {
				t.Errorf("ID = %q, want %q", serr.ID, tt.wantID)
			}
			if !strings.Contains(serr.Reason, tt.reason) {
				t.Errorf("Reason = %q, want substring %q", serr.Reason, tt.reason)
			}
		})
	}
}

// --- Completion ---

func TestCompletion_LeafWeighting(t *testing.T) {
	// A (unchecked) with A.1 checked and A.2 unchecked → (1, 2):
	// the parent's own flag carries no weight.
	tree, err := BuildTree("- [ ] A: group\n  - [x] A.1: done\n  - [ ] A.2: open\n")
	if err != nil {
		t.Fatalf("BuildTree: %v", err)
	}
	checked, total := Completion(tree[0])
	if checked != 1 || total != 2 {
		t.Errorf("Completion(A) = (%d, %d), want (1, 2)", checked, total)
	}
}

func TestCompletion_ChildlessNodeIsOneLeaf(t *testing.T) {
	n := &TaskNode{ID: "A", Checked: true}
	if c, tot := Completion(n); c != 1 || tot != 1 {
		t.Errorf("Completion = (%d, %d), want (1, 1)", c, tot)
	}
}

func TestCompletionAll_SumsForest(t *testing.T) {
	tree, err := BuildTree(`
- [ ] A: group
  - [x] A.1: done
  - [ ] A.2: open
- [x] B: solo
- [ ] C: group
  - [ ] C.1: open
`)
	if err != nil {
		t.Fatalf("BuildTree: %v", err)
	}
	checked, total := CompletionAll(tree)
	if checked != 2 || total != 4 {
		t.Errorf("CompletionAll = (%d, %d), want (2, 4)", checked, total)
	}
}

// --- SetChecked ---

func TestSetChecked_DoesNotCascade(t *testing.T) {
	tree, err := BuildTree("- [ ] A: group\n  - [ ] A.1: open\n  - [ ] A.2: open\n")
	if err != nil {
		t.Fatalf("BuildTree: %v", err)
	}
	if err := SetChecked(tree, "A", true); err != nil {
		t.Fatalf("SetChecked: %v", err)
	}
	if !tree[0].Checked {
		t.Error("A should be checked")
	}
	for _, child := range tree[0].Children {
		if child.Checked {
			t.Errorf("%s was cascaded, want independent flag", child.ID)
		}
	}
}

func TestSetChecked_NotFound(t *testing.T) {
	tree, _ := BuildTree("- [ ] A: group\n")
	err := SetChecked(tree, "B", true)
	var nf *TaskNotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("err = %v, want *TaskNotFoundError", err)
	}
}
