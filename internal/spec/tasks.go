package spec

import (
	"fmt"
	"strings"
)

// TaskNode is one checklist entry: a hierarchical dot-separated id, a
// description, and an independent checked flag. Children are owned
// exclusively by their parent.
type TaskNode struct {
	ID          string
	Description string
	Checked     bool
	Children    []*TaskNode
}

// Depth is the number of id segments (A → 1, A.1.2 → 3).
func (n *TaskNode) Depth() int {
	return strings.Count(n.ID, ".") + 1
}

// BuildTree scans checklist lines top to bottom and assembles the task
// tree. Task lists must be written in depth-first pre-order, so a
// single left-to-right pass with a depth-keyed stack suffices: a line's
// segment count determines how many open ancestors to pop before it
// attaches under the new stack top.
//
// It fails with a *StructureError when an id is duplicated, when depth
// increases by more than one level between adjacent lines, or when a
// line does not extend the id of the ancestor it would attach to.
func BuildTree(sectionText string) ([]*TaskNode, error) {
	var roots []*TaskNode
	var stack []*TaskNode // stack[d-1] is the open ancestor at depth d
	seen := make(map[string]bool)

	var fence FenceScanner
	for _, line := range splitLines(sectionText) {
		if fence.Observe(line) {
			continue
		}
		node, ok := parseTaskLine(line)
		if !ok {
			continue
		}
		if seen[node.ID] {
			return nil, &StructureError{ID: node.ID, Reason: "duplicate task id"}
		}
		seen[node.ID] = true

		depth := node.Depth()
		if depth > len(stack)+1 {
			return nil, &StructureError{
				ID:     node.ID,
				Reason: fmt.Sprintf("skips a nesting level (depth %d with no open ancestor at depth %d)", depth, depth-1),
			}
		}
		stack = stack[:depth-1]

		if depth == 1 {
			roots = append(roots, node)
		} else {
			parent := stack[depth-2]
			if parentID(node.ID) != parent.ID {
				return nil, &StructureError{
					ID:     node.ID,
					Reason: fmt.Sprintf("does not extend its parent id %q by one segment", parent.ID),
				}
			}
			parent.Children = append(parent.Children, node)
		}
		stack = append(stack, node)
	}
	return roots, nil
}

// Find locates a node by id anywhere in the forest.
func Find(nodes []*TaskNode, id string) *TaskNode {
	for _, n := range nodes {
		if n.ID == id {
			return n
		}
		if found := Find(n.Children, id); found != nil {
			return found
		}
	}
	return nil
}

// SetChecked sets one node's checked flag. It never cascades: children
// and ancestors keep their own flags, and "is this group done" is read
// via Completion, not inferred from state.
func SetChecked(nodes []*TaskNode, id string, checked bool) error {
	node := Find(nodes, id)
	if node == nil {
		return &TaskNotFoundError{ID: id}
	}
	node.Checked = checked
	return nil
}

// Completion computes the (checked, total) leaf statistic for one node.
// A node with no children counts as a single leaf; a parent's statistic
// is the sum over its children's leaves; the parent's own flag carries
// no weight.
func Completion(n *TaskNode) (checked, total int) {
	if len(n.Children) == 0 {
		if n.Checked {
			return 1, 1
		}
		return 0, 1
	}
	for _, c := range n.Children {
		cc, ct := Completion(c)
		checked += cc
		total += ct
	}
	return checked, total
}

// CompletionAll sums the leaf statistics of a whole forest.
func CompletionAll(nodes []*TaskNode) (checked, total int) {
	for _, n := range nodes {
		c, t := Completion(n)
		checked += c
		total += t
	}
	return checked, total
}

// parseTaskLine recognizes the literal checklist form
// `- [ ] <id>: <description>` (or `[x]`), at any indentation.
func parseTaskLine(line string) (*TaskNode, bool) {
	mark, rest, ok := splitTaskLine(strings.TrimSpace(trimNewline(line)))
	if !ok {
		return nil, false
	}
	id, desc, ok := splitTaskRest(rest)
	if !ok {
		return nil, false
	}
	return &TaskNode{
		ID:          id,
		Description: desc,
		Checked:     mark == "- [x] " || mark == "- [X] ",
	}, true
}

// splitTaskLine strips the checkbox marker from a trimmed line.
func splitTaskLine(trimmed string) (mark, rest string, ok bool) {
	for _, m := range []string{"- [ ] ", "- [x] ", "- [X] "} {
		if strings.HasPrefix(trimmed, m) {
			return m, trimmed[len(m):], true
		}
	}
	return "", "", false
}

// splitTaskRest splits "ID: description" and validates the id shape:
// dot-separated alphanumeric segments.
func splitTaskRest(rest string) (id, desc string, ok bool) {
	colon := strings.Index(rest, ":")
	if colon < 0 {
		return "", "", false
	}
	id = strings.TrimSpace(rest[:colon])
	if !validTaskID(id) {
		return "", "", false
	}
	return id, strings.TrimSpace(rest[colon+1:]), true
}

func validTaskID(id string) bool {
	if id == "" {
		return false
	}
	for _, seg := range strings.Split(id, ".") {
		if seg == "" {
			return false
		}
		for _, r := range seg {
			if !isAlnum(r) {
				return false
			}
		}
	}
	return true
}

func isAlnum(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9'
}

func parentID(id string) string {
	dot := strings.LastIndex(id, ".")
	if dot < 0 {
		return ""
	}
	return id[:dot]
}
