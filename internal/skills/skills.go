// Package skills installs agent skill files into a project so AI
// coding tools pick up the spec workflow automatically.
package skills

import (
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

//go:embed files/*.md
var files embed.FS

// Dir is the directory skills are installed into, relative to the
// project root.
const Dir = ".claude/skills"

// Names lists the installed skills in a stable order.
var Names = []string{
	"specdeck-refine",
	"specdeck-do",
	"specdeck-task",
	"specdeck-oneshot",
}

// Install writes every skill's SKILL.md under root/.claude/skills.
// Existing files are skipped unless force is set. Progress lines go
// to out.
func Install(root string, force bool, out io.Writer) error {
	for _, name := range Names {
		content, err := files.ReadFile("files/" + name + ".md")
		if err != nil {
			return fmt.Errorf("reading embedded skill %s: %w", name, err)
		}

		dir := filepath.Join(root, Dir, name)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		path := filepath.Join(dir, "SKILL.md")
		if !force {
			if _, err := os.Stat(path); err == nil {
				fmt.Fprintf(out, "Skipped %s/SKILL.md (already exists)\n", name)
				continue
			}
		}
		if err := os.WriteFile(path, content, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Fprintf(out, "Created %s/SKILL.md\n", name)
	}
	return nil
}

// Remove deletes previously installed specdeck skill directories
// under root. Unknown directories are left alone.
func Remove(root string) error {
	for _, name := range Names {
		dir := filepath.Join(root, Dir, name)
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("removing %s: %w", dir, err)
		}
	}
	return nil
}
