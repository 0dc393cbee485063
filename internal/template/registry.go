package template

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Source says which directory a template came from.
type Source int

const (
	// SourceRepo is the store-local templates directory.
	SourceRepo Source = iota
	// SourceUser is the per-user templates directory.
	SourceUser
)

func (s Source) String() string {
	switch s {
	case SourceRepo:
		return "repo"
	case SourceUser:
		return "user"
	default:
		return "unknown"
	}
}

// Info describes one available template.
type Info struct {
	Name   string
	Path   string
	Source Source
}

// RepoDir is the store-local templates directory under the store root.
func RepoDir(storeRoot string) string {
	return filepath.Join(storeRoot, "templates")
}

// UserDir is the per-user templates directory.
func UserDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating home directory: %w", err)
	}
	return filepath.Join(home, ".config", "specdeck", "templates"), nil
}

// Collect lists every available template. Repo templates shadow user
// templates with the same name, and the result is sorted by name.
func Collect(storeRoot string) ([]Info, error) {
	seen := make(map[string]bool)
	var templates []Info

	for _, t := range scan(RepoDir(storeRoot), SourceRepo) {
		seen[t.Name] = true
		templates = append(templates, t)
	}

	userDir, err := UserDir()
	if err != nil {
		return nil, err
	}
	for _, t := range scan(userDir, SourceUser) {
		if !seen[t.Name] {
			templates = append(templates, t)
		}
	}

	sort.Slice(templates, func(i, j int) bool { return templates[i].Name < templates[j].Name })
	return templates, nil
}

// scan lists the .md files of one directory as templates. A missing or
// unreadable directory is simply empty.
func scan(dir string, source Source) []Info {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var templates []Info
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		templates = append(templates, Info{
			Name:   strings.TrimSuffix(e.Name(), ".md"),
			Path:   filepath.Join(dir, e.Name()),
			Source: source,
		})
	}
	return templates
}

// Find returns the template with the given name.
func Find(storeRoot, name string) (Info, error) {
	templates, err := Collect(storeRoot)
	if err != nil {
		return Info{}, err
	}
	for _, t := range templates {
		if t.Name == name {
			return t, nil
		}
	}
	return Info{}, fmt.Errorf("no template found matching %q", name)
}

// Scaffold returns the expanded content for a new spec named name.
// The template is chosen in order of preference: the explicitly named
// one, then one named "default" if present, then the built-in
// scaffold. templateName may be empty.
func Scaffold(storeRoot, name, templateName string) (string, error) {
	vars := BuiltinVars(name)

	var raw string
	switch {
	case templateName != "":
		info, err := Find(storeRoot, templateName)
		if err != nil {
			return "", err
		}
		data, err := os.ReadFile(info.Path)
		if err != nil {
			return "", fmt.Errorf("reading template %q: %w", info.Name, err)
		}
		raw = string(data)
	default:
		info, err := Find(storeRoot, DefaultName)
		if err != nil {
			raw = DefaultScaffold
			break
		}
		data, err := os.ReadFile(info.Path)
		if err != nil {
			return "", fmt.Errorf("reading template %q: %w", info.Name, err)
		}
		raw = string(data)
	}

	return Expand(raw, vars), nil
}
