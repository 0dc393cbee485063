// Package store locates spec files on disk and owns the naming rules:
// kebab-case display names, minute-granularity timestamp prefixes, and
// a single global namespace across the store root and its one level of
// group subdirectories.
//
// A Store is an explicit value passed into every call so tests can
// point at an isolated temporary directory; there is no ambient global
// store state.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

const (
	// DefaultDir is the store directory name under a project root.
	DefaultDir = ".specs"
	// TemplatesDir is the reserved subdirectory holding spec templates;
	// it is never treated as a group.
	TemplatesDir = "templates"

	maxSuggestions = 3
)

// Store is a spec store rooted at one directory.
type Store struct {
	Root string
}

// New returns a Store rooted at the given directory.
func New(root string) *Store {
	return &Store{Root: root}
}

// Discover walks up from the working directory looking for an existing
// store. If none is found it returns a Store rooted at <cwd>/.specs;
// the caller decides whether to create it.
func Discover() (*Store, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	current := cwd
	for {
		candidate := filepath.Join(current, DefaultDir)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return New(candidate), nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			return New(filepath.Join(cwd, DefaultDir)), nil
		}
		current = parent
	}
}

// File is one spec file found in the store.
type File struct {
	Path  string
	Name  string // kebab-case display name
	Group string // empty when the spec lives at the store root
	Stamp string // "YYYY-MM-DD-HH-MM" creation prefix
}

// SpecName extracts the display name from a timestamped filename like
// "2025-02-17-09-36-hello-world.md".
func SpecName(filename string) (string, bool) {
	if len(filename) <= stampPrefixLen+len(".md") || !strings.HasSuffix(filename, ".md") {
		return "", false
	}
	return filename[stampPrefixLen : len(filename)-len(".md")], true
}

// Files lists every spec in the store: the root directory plus each
// immediate subdirectory (group). A missing root is an empty store,
// not an error.
func (s *Store) Files() ([]File, error) {
	entries, err := os.ReadDir(s.Root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading store %s: %w", s.Root, err)
	}

	var files []File
	collect := func(dir, group string) error {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return fmt.Errorf("reading group %s: %w", dir, err)
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			name, ok := SpecName(e.Name())
			if !ok {
				continue
			}
			files = append(files, File{
				Path:  filepath.Join(dir, e.Name()),
				Name:  name,
				Group: group,
				Stamp: e.Name()[:stampPrefixLen-1],
			})
		}
		return nil
	}

	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if e.Name() == TemplatesDir {
			continue
		}
		if err := collect(filepath.Join(s.Root, e.Name()), e.Name()); err != nil {
			return nil, err
		}
	}
	if err := collect(s.Root, ""); err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool {
		return filepath.Base(files[i].Path) < filepath.Base(files[j].Path)
	})
	return files, nil
}

// Resolve maps a display name to the path of its spec file. When the
// name matches nothing it fails with a *NotFoundError carrying fuzzy
// near-match suggestions. Legacy stores may hold several files with
// the same name under different timestamps; the most recent wins.
func (s *Store) Resolve(name string) (string, error) {
	files, err := s.Files()
	if err != nil {
		return "", err
	}

	var matches []File
	for _, f := range files {
		if f.Name == name {
			matches = append(matches, f)
		}
	}
	switch len(matches) {
	case 0:
		return "", &NotFoundError{Name: name, Suggestions: suggest(name, files)}
	case 1:
		return matches[0].Path, nil
	default:
		sort.Slice(matches, func(i, j int) bool { return matches[i].Stamp < matches[j].Stamp })
		return matches[len(matches)-1].Path, nil
	}
}

// suggest returns up to maxSuggestions near-matches for a name that
// failed to resolve.
func suggest(name string, files []File) []string {
	seen := make(map[string]bool, len(files))
	var names []string
	for _, f := range files {
		if !seen[f.Name] {
			seen[f.Name] = true
			names = append(names, f.Name)
		}
	}
	ranked := fuzzy.Find(name, names)
	var out []string
	for i := 0; i < len(ranked) && i < maxSuggestions; i++ {
		out = append(out, ranked[i].Str)
	}
	return out
}

// Create writes a new spec file for name, optionally inside a group,
// and returns its path. It fails with a *ConflictError when the name
// already resolves anywhere in the store.
func (s *Store) Create(name, group, content string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	if group != "" {
		if err := validateGroup(group); err != nil {
			return "", err
		}
	}

	if existing, err := s.Resolve(name); err == nil {
		return "", &ConflictError{Name: name, Path: existing}
	} else if _, ok := err.(*NotFoundError); !ok {
		return "", err
	}

	dir := s.Root
	if group != "" {
		dir = filepath.Join(s.Root, group)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", dir, err)
	}

	files, err := s.Files()
	if err != nil {
		return "", err
	}
	existing := make([]string, len(files))
	for i, f := range files {
		existing[i] = filepath.Base(f.Path)
	}

	stamp := NextStamp(timeNow(), existing)
	path := filepath.Join(dir, stamp+"-"+name+".md")
	if err := WriteFileAtomic(path, []byte(content)); err != nil {
		return "", err
	}
	return path, nil
}

// Delete removes the spec file matching name.
func (s *Store) Delete(name string) (string, error) {
	path, err := s.Resolve(name)
	if err != nil {
		return "", err
	}
	if err := os.Remove(path); err != nil {
		return "", fmt.Errorf("deleting spec: %w", err)
	}
	return path, nil
}

// ValidateName enforces kebab-case display names: lowercase letters,
// digits, and single interior hyphens.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("spec name cannot be empty")
	}
	for _, r := range name {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' {
			return invalidName(name)
		}
	}
	if strings.HasPrefix(name, "-") || strings.HasSuffix(name, "-") || strings.Contains(name, "--") {
		return invalidName(name)
	}
	return nil
}

func invalidName(name string) error {
	return fmt.Errorf("invalid spec name %q: names must be kebab-case (lowercase letters, numbers, and single hyphens), e.g. my-feature", name)
}

// validateGroup enforces the one-level grouping rule and the same
// kebab shape as spec names.
func validateGroup(group string) error {
	if strings.ContainsAny(group, `/\`) {
		return fmt.Errorf("invalid group %q: groups cannot nest", group)
	}
	if group == TemplatesDir {
		return fmt.Errorf("group name %q is reserved", TemplatesDir)
	}
	if err := ValidateName(group); err != nil {
		return fmt.Errorf("invalid group %q: %w", group, err)
	}
	return nil
}

// SplitInput separates an optional "group/" prefix from a spec name.
func SplitInput(input string) (group, name string, err error) {
	switch parts := strings.Split(input, "/"); len(parts) {
	case 1:
		return "", parts[0], nil
	case 2:
		if parts[0] == "" || parts[1] == "" {
			return "", "", fmt.Errorf("invalid spec reference %q", input)
		}
		return parts[0], parts[1], nil
	default:
		return "", "", fmt.Errorf("invalid spec reference %q: grouping is limited to one level", input)
	}
}
