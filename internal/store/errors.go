package store

import (
	"fmt"
	"strings"
)

// NotFoundError means a name resolved to no spec file. Suggestions
// carries near-matches for the caller to print.
type NotFoundError struct {
	Name        string
	Suggestions []string
}

func (e *NotFoundError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("no spec found matching %q", e.Name)
	}
	return fmt.Sprintf("no spec found matching %q (did you mean: %s?)",
		e.Name, strings.Join(e.Suggestions, ", "))
}

// ConflictError means a create was attempted with a name that already
// resolves somewhere in the store. Groups share one namespace, so the
// existing spec may live in a different group.
type ConflictError struct {
	Name string
	Path string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("a spec named %q already exists: %s", e.Name, e.Path)
}
