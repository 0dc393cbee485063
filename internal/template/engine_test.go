package template

import (
	"strings"
	"testing"
	"time"
)

// --- Expand ---

func TestExpand_BothSyntaxes(t *testing.T) {
	vars := map[string]string{"title": "My Feature", "date": "2026-02-17"}
	got := Expand("# {{title}}\n\nCreated ${date}.\n", vars)
	want := "# My Feature\n\nCreated 2026-02-17.\n"
	if got != want {
		t.Errorf("Expand = %q, want %q", got, want)
	}
}

func TestExpand_UnresolvedPassesThrough(t *testing.T) {
	got := Expand("{{title}} and {{unknown}} and ${nope}\n", map[string]string{"title": "T"})
	want := "T and {{unknown}} and ${nope}\n"
	if got != want {
		t.Errorf("Expand = %q, want %q", got, want)
	}
}

func TestExpand_MalformedPlaceholdersAreLiteral(t *testing.T) {
	vars := map[string]string{"title": "T"}
	for _, text := range []string{"{{title}", "{{ title }}", "${title", "{{}}", "$title"} {
		if got := Expand(text, vars); got != text {
			t.Errorf("Expand(%q) = %q, want unchanged", text, got)
		}
	}
}

func TestExpand_InlineCodeStaysLiteral(t *testing.T) {
	// One inline-code occurrence and one bare occurrence of the same
	// placeholder on adjacent lines.
	vars := map[string]string{"title": "My Feature"}
	got := Expand("Use `{{title}}` in templates.\nHeading: {{title}}\n", vars)
	want := "Use `{{title}}` in templates.\nHeading: My Feature\n"
	if got != want {
		t.Errorf("Expand = %q, want %q", got, want)
	}
}

func TestExpand_FencedBlockStaysLiteral(t *testing.T) {
	vars := map[string]string{"title": "My Feature"}
	text := "{{title}}\n```yaml\ntitle: {{title}}\n```\n~~~\n${title}\n~~~\n{{title}}\n"
	got := Expand(text, vars)
	want := "My Feature\n```yaml\ntitle: {{title}}\n```\n~~~\n${title}\n~~~\nMy Feature\n"
	if got != want {
		t.Errorf("Expand = %q, want %q", got, want)
	}
}

func TestExpand_UnclosedBacktickRunDoesNotSwallowLine(t *testing.T) {
	vars := map[string]string{"title": "T"}
	got := Expand("stray ` then {{title}}\n", vars)
	if got != "stray ` then T\n" {
		t.Errorf("Expand = %q", got)
	}
}

func TestExpand_DoubleBacktickSpan(t *testing.T) {
	vars := map[string]string{"v": "X"}
	got := Expand("`` {{v}} `` and {{v}}\n", vars)
	if got != "`` {{v}} `` and X\n" {
		t.Errorf("Expand = %q", got)
	}
}

func TestExpand_NoTrailingNewline(t *testing.T) {
	if got := Expand("{{v}}", map[string]string{"v": "X"}); got != "X" {
		t.Errorf("Expand = %q", got)
	}
}

// --- Built-ins ---

func TestTitleCase(t *testing.T) {
	tests := []struct{ in, want string }{
		{"my-feature", "My Feature"},
		{"x", "X"},
		{"a-b-c", "A B C"},
		{"v2-api", "V2 Api"},
	}
	for _, tt := range tests {
		if got := TitleCase(tt.in); got != tt.want {
			t.Errorf("TitleCase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuiltinVars(t *testing.T) {
	restore := timeNow
	timeNow = func() time.Time { return time.Date(2026, 2, 17, 9, 30, 0, 0, time.UTC) }
	defer func() { timeNow = restore }()

	vars := BuiltinVars("my-feature")
	if vars["title"] != "My Feature" {
		t.Errorf("title = %q", vars["title"])
	}
	if vars["date"] != "2026-02-17" {
		t.Errorf("date = %q", vars["date"])
	}
}

func TestDefaultScaffold_Expands(t *testing.T) {
	got := Expand(DefaultScaffold, BuiltinVars("hello-world"))
	if !strings.Contains(got, "title: Hello World") {
		t.Errorf("expanded scaffold missing title:\n%s", got)
	}
	if strings.Contains(got, "{{") {
		t.Errorf("expanded scaffold still has placeholders:\n%s", got)
	}
}
