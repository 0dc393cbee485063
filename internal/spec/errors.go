package spec

import "fmt"

// ParseError reports a structural problem in a spec file: a broken
// metadata block or a section heading that is missing, duplicated, or
// out of order. Line numbers are 1-based.
type ParseError struct {
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// StructureError reports a task-tree invariant violation, citing the
// offending task id.
type StructureError struct {
	ID     string
	Reason string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("task %s: %s", e.ID, e.Reason)
}

// TaskNotFoundError is returned by check/uncheck operations when no
// task with the given id exists in the targeted section.
type TaskNotFoundError struct {
	ID string
}

func (e *TaskNotFoundError) Error() string {
	return fmt.Sprintf("no task %q found", e.ID)
}
