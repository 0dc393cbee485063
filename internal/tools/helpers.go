// Package tools implements the MCP tool handlers for spec management.
//
// Each tool is a struct that receives its dependencies at construction
// and exposes a Definition for registration plus a Handle compatible
// with mcp-go's CallToolRequest signature. One file per tool.
package tools

import (
	"fmt"
	"os"

	"github.com/HendryAvila/specdeck/internal/spec"
	"github.com/HendryAvila/specdeck/internal/store"
)

// openStore locates the spec store for the current invocation. Tools
// discover the store per call so the server works from any
// subdirectory of the project.
func openStore() (*store.Store, error) {
	s, err := store.Discover()
	if err != nil {
		return nil, fmt.Errorf("locating spec store: %w", err)
	}
	return s, nil
}

// loadDocument reads and parses the spec file matching name.
func loadDocument(s *store.Store, name string) (*spec.Document, string, error) {
	path, err := s.Resolve(name)
	if err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("reading spec: %w", err)
	}
	doc, err := spec.Parse(string(data))
	if err != nil {
		return nil, "", fmt.Errorf("parsing %s: %w", path, err)
	}
	return doc, path, nil
}

// progressBar renders a ten-slot completion bar like "[####------]".
func progressBar(checked, total int) string {
	if total == 0 {
		return "[##########]"
	}
	filled := checked * 10 / total
	bar := make([]byte, 10)
	for i := range bar {
		if i < filled {
			bar[i] = '#'
		} else {
			bar[i] = '-'
		}
	}
	return "[" + string(bar) + "]"
}
