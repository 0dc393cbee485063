package tools

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/specdeck/internal/store"
)

// --- Test helpers ---

// setupTestStore creates a temp project with a .specs directory and
// changes cwd into it so store discovery finds it.
func setupTestStore(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	root := filepath.Join(tmpDir, store.DefaultDir)
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}
	t.Chdir(tmpDir)
	// Keep user-level template and config lookups inside the sandbox.
	t.Setenv("HOME", tmpDir)
	t.Setenv("SPECDECK_HOME", "")
	return root
}

func writeTestSpec(t *testing.T, root, filename, plan string) {
	t.Helper()
	content := "---\nspecdeck: v0\ntitle: Test Spec\n---\n\n" +
		"# Background\n\nWhy.\n\n# Proposal\n\nWhat.\n\n" +
		"# Implementation Plan\n\n" + plan + "\n# Test Plan\n\nManual.\n"
	if err := os.WriteFile(filepath.Join(root, filename), []byte(content), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
}

func callRequest(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// isErrorResult checks if the result is a tool error.
func isErrorResult(result *mcp.CallToolResult) bool {
	return result != nil && result.IsError
}

// getResultText extracts the text content from a CallToolResult.
func getResultText(result *mcp.CallToolResult) string {
	if result == nil || len(result.Content) == 0 {
		return ""
	}
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

// --- spec_new ---

func TestNewTool_CreatesSpec(t *testing.T) {
	root := setupTestStore(t)

	tool := NewNewTool()
	result, err := tool.Handle(context.Background(), callRequest(map[string]interface{}{
		"name": "hello-world",
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("expected success, got error: %s", getResultText(result))
	}

	files, err := store.New(root).Files()
	if err != nil {
		t.Fatalf("Files: %v", err)
	}
	if len(files) != 1 || files[0].Name != "hello-world" {
		t.Fatalf("store files = %+v", files)
	}
	data, _ := os.ReadFile(files[0].Path)
	if !strings.Contains(string(data), "title: Hello World") {
		t.Errorf("scaffold content = %q", data)
	}
}

func TestNewTool_GroupPrefix(t *testing.T) {
	root := setupTestStore(t)

	tool := NewNewTool()
	result, err := tool.Handle(context.Background(), callRequest(map[string]interface{}{
		"name": "auth/login-flow",
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("expected success, got error: %s", getResultText(result))
	}

	files, _ := store.New(root).Files()
	if len(files) != 1 || files[0].Group != "auth" {
		t.Fatalf("store files = %+v", files)
	}
}

func TestNewTool_RejectsConflict(t *testing.T) {
	root := setupTestStore(t)
	writeTestSpec(t, root, "2026-01-01-10-00-hello-world.md", "- [ ] A: task\n")

	tool := NewNewTool()
	result, err := tool.Handle(context.Background(), callRequest(map[string]interface{}{
		"name": "hello-world",
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !isErrorResult(result) {
		t.Error("creating a duplicate name should fail")
	}
}

func TestNewTool_MissingName(t *testing.T) {
	setupTestStore(t)

	tool := NewNewTool()
	result, err := tool.Handle(context.Background(), callRequest(map[string]interface{}{}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !isErrorResult(result) {
		t.Error("should return error when name is missing")
	}
}

// --- spec_check ---

func TestCheckTool_ChecksSingleTask(t *testing.T) {
	root := setupTestStore(t)
	writeTestSpec(t, root, "2026-01-01-10-00-feature.md",
		"- [ ] A: group\n  - [ ] A.1: first\n  - [ ] A.2: second\n")

	tool := NewCheckTool()
	result, err := tool.Handle(context.Background(), callRequest(map[string]interface{}{
		"name": "feature",
		"task": "A.1",
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("expected success, got error: %s", getResultText(result))
	}
	if text := getResultText(result); !strings.Contains(text, "1/2") {
		t.Errorf("result = %q, want leaf progress 1/2", text)
	}

	data, _ := os.ReadFile(filepath.Join(root, "2026-01-01-10-00-feature.md"))
	content := string(data)
	if !strings.Contains(content, "- [x] A.1: first") {
		t.Errorf("A.1 not checked:\n%s", content)
	}
	if !strings.Contains(content, "- [ ] A.2: second") || !strings.Contains(content, "- [ ] A: group") {
		t.Errorf("other tasks changed:\n%s", content)
	}
}

func TestCheckTool_TestPlanTask(t *testing.T) {
	root := setupTestStore(t)
	content := "---\nspecdeck: v0\ntitle: Feature\n---\n\n" +
		"# Background\n\nWhy.\n\n# Proposal\n\nWhat.\n\n" +
		"# Implementation Plan\n\n- [x] A: build it\n\n" +
		"# Test Plan\n\n- [ ] T1: curl the endpoint\n- [ ] T2: expire a session\n"
	if err := os.WriteFile(filepath.Join(root, "2026-01-01-10-00-feature.md"), []byte(content), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	tool := NewCheckTool()
	result, err := tool.Handle(context.Background(), callRequest(map[string]interface{}{
		"name": "feature",
		"task": "T1",
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("expected success, got error: %s", getResultText(result))
	}
	if text := getResultText(result); !strings.Contains(text, "1/2 test tasks complete") {
		t.Errorf("result = %q, want Test Plan progress", text)
	}

	data, _ := os.ReadFile(filepath.Join(root, "2026-01-01-10-00-feature.md"))
	got := string(data)
	if !strings.Contains(got, "- [x] T1: curl the endpoint") {
		t.Errorf("T1 not checked:\n%s", got)
	}
	if !strings.Contains(got, "- [ ] T2: expire a session") || !strings.Contains(got, "- [x] A: build it") {
		t.Errorf("other tasks changed:\n%s", got)
	}
}

func TestCheckTool_Uncheck(t *testing.T) {
	root := setupTestStore(t)
	writeTestSpec(t, root, "2026-01-01-10-00-feature.md", "- [x] A: done\n")

	tool := NewCheckTool()
	result, err := tool.Handle(context.Background(), callRequest(map[string]interface{}{
		"name": "feature",
		"task": "A",
		"done": false,
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("expected success, got error: %s", getResultText(result))
	}

	data, _ := os.ReadFile(filepath.Join(root, "2026-01-01-10-00-feature.md"))
	if !strings.Contains(string(data), "- [ ] A: done") {
		t.Errorf("A not unchecked:\n%s", data)
	}
}

func TestCheckTool_UnknownTask(t *testing.T) {
	root := setupTestStore(t)
	writeTestSpec(t, root, "2026-01-01-10-00-feature.md", "- [ ] A: task\n")

	tool := NewCheckTool()
	result, err := tool.Handle(context.Background(), callRequest(map[string]interface{}{
		"name": "feature",
		"task": "Z",
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !isErrorResult(result) {
		t.Error("unknown task id should fail")
	}
}

func TestCheckTool_SuggestsOnUnknownName(t *testing.T) {
	root := setupTestStore(t)
	writeTestSpec(t, root, "2026-01-01-10-00-login-flow.md", "- [ ] A: task\n")

	tool := NewCheckTool()
	result, err := tool.Handle(context.Background(), callRequest(map[string]interface{}{
		"name": "login-flw",
		"task": "A",
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !isErrorResult(result) {
		t.Fatal("unknown spec name should fail")
	}
	if text := getResultText(result); !strings.Contains(text, "login-flow") {
		t.Errorf("error should suggest login-flow, got: %s", text)
	}
}

// --- spec_list / spec_status ---

func TestListTool_EmptyStore(t *testing.T) {
	setupTestStore(t)

	tool := NewListTool()
	result, err := tool.Handle(context.Background(), callRequest(nil))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !strings.Contains(getResultText(result), "No specs found") {
		t.Errorf("result = %q", getResultText(result))
	}
}

func TestListTool_ShowsProgress(t *testing.T) {
	root := setupTestStore(t)
	writeTestSpec(t, root, "2026-01-01-10-00-feature.md",
		"- [x] A: done\n- [ ] B: open\n")

	tool := NewListTool()
	result, err := tool.Handle(context.Background(), callRequest(nil))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	text := getResultText(result)
	if !strings.Contains(text, "feature") || !strings.Contains(text, "1/2") {
		t.Errorf("listing = %q", text)
	}
}

func TestStatusTool_RendersTree(t *testing.T) {
	root := setupTestStore(t)
	writeTestSpec(t, root, "2026-01-01-10-00-feature.md",
		"- [ ] A: group\n  - [x] A.1: done\n  - [ ] A.2: open\n")

	tool := NewStatusTool()
	result, err := tool.Handle(context.Background(), callRequest(map[string]interface{}{
		"name": "feature",
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	text := getResultText(result)
	if !strings.Contains(text, "A: group (1/2)") {
		t.Errorf("status = %q, want group completion", text)
	}
	if !strings.Contains(text, "[x] A.1: done") {
		t.Errorf("status = %q, want checked leaf", text)
	}
}

// --- spec_view ---

func TestViewTool_ReturnsContent(t *testing.T) {
	root := setupTestStore(t)
	writeTestSpec(t, root, "2026-01-01-10-00-feature.md", "- [ ] A: task\n")

	tool := NewViewTool()
	result, err := tool.Handle(context.Background(), callRequest(map[string]interface{}{
		"name": "feature",
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("expected success, got error: %s", getResultText(result))
	}
	if !strings.Contains(getResultText(result), "# Implementation Plan") {
		t.Errorf("view = %q", getResultText(result))
	}
}

func TestViewTool_UnmappedApplicationFails(t *testing.T) {
	root := setupTestStore(t)
	content := "---\nspecdeck: v0\ntitle: App Spec\napplications:\n    - billing-api\n---\n\n" +
		"# Background\n\nx\n\n# Proposal\n\nx\n\n# Implementation Plan\n\n\n# Test Plan\n\nx\n"
	if err := os.WriteFile(filepath.Join(root, "2026-01-01-10-00-app-spec.md"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	tool := NewViewTool()
	result, err := tool.Handle(context.Background(), callRequest(map[string]interface{}{
		"name": "app-spec",
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !isErrorResult(result) {
		t.Fatal("view with unmapped application should fail")
	}
	if !strings.Contains(getResultText(result), "billing-api") {
		t.Errorf("error = %q, want the unmapped name listed", getResultText(result))
	}
}
