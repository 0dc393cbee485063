package store

import (
	"fmt"
	"os"
	"sort"

	"github.com/HendryAvila/specdeck/internal/spec"
)

// Status describes how far along a spec's implementation plan is.
type Status int

const (
	// StatusPending means no plan task is checked yet.
	StatusPending Status = iota
	// StatusInProgress means some but not all plan tasks are checked.
	StatusInProgress
	// StatusCompleted means every plan task is checked. A spec with an
	// empty plan is also completed; there is nothing left to do.
	StatusCompleted
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusInProgress:
		return "in progress"
	case StatusCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Summary is the parsed, progress-annotated view of one spec file used
// by listings and status reports.
type Summary struct {
	Name    string
	Title   string
	Group   string
	Stamp   string
	Path    string
	Checked int
	Total   int
	Tasks   []*spec.TaskNode
}

// Status derives the progress state from the leaf counts.
func (s Summary) Status() Status {
	switch {
	case s.Total == 0 || s.Checked == s.Total:
		return StatusCompleted
	case s.Checked == 0:
		return StatusPending
	default:
		return StatusInProgress
	}
}

// Percent returns completion as 0-100. An empty plan reads as 100.
func (s Summary) Percent() int {
	if s.Total == 0 {
		return 100
	}
	return s.Checked * 100 / s.Total
}

// LoadSummary parses one spec file and computes its plan progress.
func LoadSummary(f File) (Summary, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return Summary{}, fmt.Errorf("reading %s: %w", f.Path, err)
	}
	doc, err := spec.Parse(string(data))
	if err != nil {
		return Summary{}, fmt.Errorf("parsing %s: %w", f.Path, err)
	}
	tasks, err := doc.Tasks(spec.SectionImplementationPlan)
	if err != nil {
		return Summary{}, fmt.Errorf("parsing %s: %w", f.Path, err)
	}
	checked, total := spec.CompletionAll(tasks)
	return Summary{
		Name:    f.Name,
		Title:   doc.Meta.Title,
		Group:   f.Group,
		Stamp:   f.Stamp,
		Path:    f.Path,
		Checked: checked,
		Total:   total,
		Tasks:   tasks,
	}, nil
}

// LoadAll summarizes every spec in the store, ordered for display:
// incomplete specs first (by group, then oldest first), then completed
// specs newest first.
func (s *Store) LoadAll() ([]Summary, error) {
	files, err := s.Files()
	if err != nil {
		return nil, err
	}
	summaries := make([]Summary, 0, len(files))
	for _, f := range files {
		sum, err := LoadSummary(f)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, sum)
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		a, b := summaries[i], summaries[j]
		aDone := a.Status() == StatusCompleted
		bDone := b.Status() == StatusCompleted
		if aDone != bDone {
			return !aDone
		}
		if aDone {
			return a.Stamp > b.Stamp
		}
		if a.Group != b.Group {
			return a.Group < b.Group
		}
		return a.Stamp < b.Stamp
	})
	return summaries, nil
}
