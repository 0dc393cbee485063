package template

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTemplate(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name+".md"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// userTemplatesDir points UserDir at a throwaway home directory.
func userTemplatesDir(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return filepath.Join(home, ".config", "specdeck", "templates")
}

// --- Collect ---

func TestCollect_RepoShadowsUser(t *testing.T) {
	userDir := userTemplatesDir(t)
	storeRoot := t.TempDir()

	writeTemplate(t, RepoDir(storeRoot), "feature", "repo version\n")
	writeTemplate(t, userDir, "feature", "user version\n")
	writeTemplate(t, userDir, "bugfix", "user only\n")

	templates, err := Collect(storeRoot)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(templates) != 2 {
		t.Fatalf("got %d templates, want 2: %+v", len(templates), templates)
	}
	// Sorted by name: bugfix, feature.
	if templates[0].Name != "bugfix" || templates[0].Source != SourceUser {
		t.Errorf("templates[0] = %+v", templates[0])
	}
	if templates[1].Name != "feature" || templates[1].Source != SourceRepo {
		t.Errorf("templates[1] = %+v, want the repo copy", templates[1])
	}
}

func TestCollect_MissingDirsAreEmpty(t *testing.T) {
	userTemplatesDir(t)
	templates, err := Collect(filepath.Join(t.TempDir(), "no-store"))
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(templates) != 0 {
		t.Errorf("got %d templates, want 0", len(templates))
	}
}

// --- Find ---

func TestFind_NotFound(t *testing.T) {
	userTemplatesDir(t)
	_, err := Find(t.TempDir(), "missing")
	if err == nil || !strings.Contains(err.Error(), "missing") {
		t.Errorf("Find err = %v", err)
	}
}

// --- Scaffold ---

func TestScaffold_ExplicitTemplate(t *testing.T) {
	userTemplatesDir(t)
	storeRoot := t.TempDir()
	writeTemplate(t, RepoDir(storeRoot), "feature", "# {{title}}\n\nKeep `{{title}}` literal.\n")

	got, err := Scaffold(storeRoot, "my-feature", "feature")
	if err != nil {
		t.Fatalf("Scaffold: %v", err)
	}
	want := "# My Feature\n\nKeep `{{title}}` literal.\n"
	if got != want {
		t.Errorf("Scaffold = %q, want %q", got, want)
	}
}

func TestScaffold_AutoAppliesDefault(t *testing.T) {
	userDir := userTemplatesDir(t)
	storeRoot := t.TempDir()
	writeTemplate(t, userDir, DefaultName, "default for {{title}}\n")

	got, err := Scaffold(storeRoot, "hello-world", "")
	if err != nil {
		t.Fatalf("Scaffold: %v", err)
	}
	if got != "default for Hello World\n" {
		t.Errorf("Scaffold = %q", got)
	}
}

func TestScaffold_FallsBackToBuiltin(t *testing.T) {
	userTemplatesDir(t)
	got, err := Scaffold(t.TempDir(), "hello-world", "")
	if err != nil {
		t.Fatalf("Scaffold: %v", err)
	}
	if !strings.Contains(got, "title: Hello World") || !strings.Contains(got, "# Test Plan") {
		t.Errorf("Scaffold = %q", got)
	}
}

func TestScaffold_UnknownTemplateErrors(t *testing.T) {
	userTemplatesDir(t)
	if _, err := Scaffold(t.TempDir(), "hello-world", "nope"); err == nil {
		t.Error("Scaffold with unknown template succeeded")
	}
}
