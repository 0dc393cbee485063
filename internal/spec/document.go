// Package spec implements the spec document model: parsing a spec file
// into a structured representation, validating its task tree, and
// performing round-trip-safe mutations.
//
// A spec file is a YAML metadata block followed by exactly four
// top-level sections in fixed order. Section bodies are kept as opaque
// raw text so that human-edited Markdown (tables, code fences, nested
// lists) survives every operation untouched; mutations patch single
// lines, they never re-render prose.
package spec

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// The four section headings every spec document must carry, in order.
const (
	SectionBackground         = "Background"
	SectionProposal           = "Proposal"
	SectionImplementationPlan = "Implementation Plan"
	SectionTestPlan           = "Test Plan"
)

// SectionOrder is the required heading sequence.
var SectionOrder = [4]string{
	SectionBackground,
	SectionProposal,
	SectionImplementationPlan,
	SectionTestPlan,
}

// ChecklistSections are the sections interpreted as task trees, in
// lookup order.
var ChecklistSections = [2]string{
	SectionImplementationPlan,
	SectionTestPlan,
}

// SchemaKey is the metadata key carrying the schema version tag.
const SchemaKey = "specdeck"

// SchemaVersion is the current schema version tag value.
const SchemaVersion = "v0"

// MetadataField is an unrecognized metadata key preserved for
// round-tripping. Keeping these explicit (rather than an open map)
// makes the pass-through guarantee checkable.
type MetadataField struct {
	Key   string
	Value string
}

// Metadata holds the declared front matter of a spec document.
// The original block bytes are preserved and re-emitted verbatim
// unless a field is explicitly edited.
type Metadata struct {
	Version      string
	Title        string
	Applications []string
	Extra        []MetadataField

	raw   string // original block including both --- delimiter lines
	dirty bool
}

// SetTitle updates the title and marks the block for re-serialization.
func (m *Metadata) SetTitle(title string) {
	m.Title = title
	m.dirty = true
}

// Block returns the metadata block text, delimiters included. An
// unmodified block is returned byte-for-byte as parsed.
func (m *Metadata) Block() string {
	if !m.dirty {
		return m.raw
	}
	return m.render()
}

// render re-serializes the metadata with a fixed, stable key order:
// schema tag, title, applications, then pass-through fields.
func (m *Metadata) render() string {
	root := &yaml.Node{Kind: yaml.MappingNode}
	add := func(key, value string) {
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: key},
			&yaml.Node{Kind: yaml.ScalarNode, Value: value},
		)
	}
	add(SchemaKey, m.Version)
	add("title", m.Title)

	apps := &yaml.Node{Kind: yaml.SequenceNode}
	for _, a := range m.Applications {
		apps.Content = append(apps.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: a})
	}
	root.Content = append(root.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: "applications"},
		apps,
	)
	for _, f := range m.Extra {
		add(f.Key, f.Value)
	}

	out, err := yaml.Marshal(root)
	if err != nil {
		// A mapping of scalar nodes cannot fail to marshal; fall back
		// to the original bytes rather than corrupt the file.
		return m.raw
	}
	return "---\n" + string(out) + "---\n"
}

// Section is one of the four named bodies of a document.
type Section struct {
	Name string

	heading string // heading line exactly as written, newline included
	Body    string // raw text up to the next top-level heading
}

// Document is one parsed spec file.
type Document struct {
	Meta Metadata

	preamble string // text between the metadata block and the first heading
	sections [4]Section
}

// Section returns the named section, or nil if the name is not one of
// the four fixed headings.
func (d *Document) Section(name string) *Section {
	for i := range d.sections {
		if d.sections[i].Name == name {
			return &d.sections[i]
		}
	}
	return nil
}

// Tasks builds the task tree of the named section.
func (d *Document) Tasks(section string) ([]*TaskNode, error) {
	s := d.Section(section)
	if s == nil {
		return nil, fmt.Errorf("unknown section %q", section)
	}
	return BuildTree(s.Body)
}

// Serialize renders the document back to file text. Re-parsing the
// output yields an equal document, and an unmodified metadata block is
// reproduced byte-for-byte.
func (d *Document) Serialize() string {
	var b strings.Builder
	b.WriteString(d.Meta.Block())
	b.WriteString(d.preamble)
	for i := range d.sections {
		b.WriteString(d.sections[i].heading)
		b.WriteString(d.sections[i].Body)
	}
	return b.String()
}

// SetTaskChecked flips the checkbox of one task line inside the named
// section. Exactly one source line is replaced; sibling formatting and
// surrounding prose are untouched. Setting a task to its current state
// is a no-op, not an error.
func (d *Document) SetTaskChecked(section, id string, checked bool) error {
	s := d.Section(section)
	if s == nil {
		return fmt.Errorf("unknown section %q", section)
	}

	lines := splitLines(s.Body)
	var fence FenceScanner
	for i, line := range lines {
		if fence.Observe(line) {
			continue
		}
		mark, rest, ok := splitTaskLine(strings.TrimSpace(trimNewline(line)))
		if !ok {
			continue
		}
		lineID, _, ok := splitTaskRest(rest)
		if !ok || lineID != id {
			continue
		}
		want := "- [ ] "
		if checked {
			want = "- [x] "
		}
		if mark != want {
			lines[i] = strings.Replace(line, mark, want, 1)
		}
		s.Body = strings.Join(lines, "")
		return nil
	}
	return &TaskNotFoundError{ID: id}
}

// SetTaskCheckedAny flips one task's checkbox in whichever checklist
// section holds its id, trying the Implementation Plan before the Test
// Plan. It returns the name of the section that was patched. Task ids
// are unique across the whole document, so an id present in more than
// one section is rejected instead of silently resolved.
func (d *Document) SetTaskCheckedAny(id string, checked bool) (string, error) {
	if err := d.ValidateTaskIDs(); err != nil {
		return "", err
	}
	for _, name := range ChecklistSections {
		err := d.SetTaskChecked(name, id, checked)
		if err == nil {
			return name, nil
		}
		var notFound *TaskNotFoundError
		if !errors.As(err, &notFound) {
			return "", err
		}
	}
	return "", &TaskNotFoundError{ID: id}
}

// ValidateTaskIDs builds every checklist section's tree and rejects an
// id appearing in more than one section. Uniqueness within a single
// section is already enforced by BuildTree.
func (d *Document) ValidateTaskIDs() error {
	owner := map[string]string{}
	var walk func(section string, nodes []*TaskNode) error
	walk = func(section string, nodes []*TaskNode) error {
		for _, n := range nodes {
			if other, dup := owner[n.ID]; dup {
				return &StructureError{
					ID:     n.ID,
					Reason: fmt.Sprintf("id used in both %q and %q", other, section),
				}
			}
			owner[n.ID] = section
			if err := walk(section, n.Children); err != nil {
				return err
			}
		}
		return nil
	}
	for _, name := range ChecklistSections {
		nodes, err := d.Tasks(name)
		if err != nil {
			return err
		}
		if err := walk(name, nodes); err != nil {
			return err
		}
	}
	return nil
}

// CheckMetadata validates that metadata block content (the text
// between the delimiter lines) is well-formed key-value data.
func CheckMetadata(src string) error {
	_, err := parseMetadata(src)
	return err
}

// heading holds a located top-level heading during parsing.
type headingLoc struct {
	name string
	line int // 1-based line number
	idx  int // index into the split-lines slice
}

// Parse converts raw file text into a Document. It fails with a
// *ParseError when the metadata block is missing or malformed, or when
// a required section heading is absent, duplicated, or out of order.
func Parse(text string) (*Document, error) {
	lines := splitLines(text)

	// --- Metadata block ---

	if len(lines) == 0 || strings.TrimRight(lines[0], "\n") != "---" {
		return nil, &ParseError{Line: 1, Reason: "missing metadata block delimiter '---'"}
	}
	closeIdx := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], "\n") == "---" {
			closeIdx = i
			break
		}
	}
	if closeIdx < 0 {
		return nil, &ParseError{Line: 1, Reason: "metadata block is not terminated by '---'"}
	}

	meta, err := parseMetadata(strings.Join(lines[1:closeIdx], ""))
	if err != nil {
		return nil, err
	}
	meta.raw = strings.Join(lines[:closeIdx+1], "")

	// --- Section headings ---
	//
	// Scan for top-level headings outside code fences; everything else
	// is opaque content.

	var found []headingLoc
	var fence FenceScanner
	for i := closeIdx + 1; i < len(lines); i++ {
		line := lines[i]
		if fence.Observe(line) {
			continue
		}
		if !strings.HasPrefix(line, "# ") {
			continue
		}
		found = append(found, headingLoc{
			name: strings.TrimSpace(trimNewline(line[2:])),
			line: i + 1,
			idx:  i,
		})
	}

	seen := make(map[string]int, len(found))
	for _, h := range found {
		if !knownSection(h.name) {
			return nil, &ParseError{
				Line:   h.line,
				Reason: fmt.Sprintf("unexpected top-level heading %q", h.name),
			}
		}
		if first, dup := seen[h.name]; dup {
			return nil, &ParseError{
				Line:   h.line,
				Reason: fmt.Sprintf("duplicate section heading %q (first at line %d)", h.name, first),
			}
		}
		seen[h.name] = h.line
	}
	for _, want := range SectionOrder {
		if _, ok := seen[want]; !ok {
			return nil, &ParseError{
				Line:   len(lines),
				Reason: fmt.Sprintf("missing section heading %q", want),
			}
		}
	}
	for k, h := range found {
		if h.name != SectionOrder[k] {
			return nil, &ParseError{
				Line:   h.line,
				Reason: fmt.Sprintf("section heading %q out of order", h.name),
			}
		}
	}

	doc := &Document{
		Meta:     meta,
		preamble: strings.Join(lines[closeIdx+1:found[0].idx], ""),
	}
	for k := range SectionOrder {
		end := len(lines)
		if k+1 < len(found) {
			end = found[k+1].idx
		}
		doc.sections[k] = Section{
			Name:    found[k].name,
			heading: lines[found[k].idx],
			Body:    strings.Join(lines[found[k].idx+1:end], ""),
		}
	}
	return doc, nil
}

// parseMetadata decodes the YAML between the delimiters into the
// recognized fields plus the pass-through bucket.
func parseMetadata(src string) (Metadata, error) {
	var root yaml.Node
	if err := yaml.Unmarshal([]byte(src), &root); err != nil {
		// src starts below the opening delimiter, so its line N is
		// file line N+1.
		line := 2
		if n := yamlErrorLine(err); n > 0 {
			line = n + 1
		}
		return Metadata{}, &ParseError{Line: line, Reason: fmt.Sprintf("malformed metadata: %v", err)}
	}
	if len(root.Content) == 0 {
		return Metadata{}, &ParseError{Line: 2, Reason: "metadata block is empty"}
	}
	mapping := root.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return Metadata{}, &ParseError{Line: 2, Reason: "metadata is not key-value data"}
	}

	var meta Metadata
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key := mapping.Content[i]
		val := mapping.Content[i+1]
		switch key.Value {
		case SchemaKey:
			meta.Version = val.Value
		case "title":
			meta.Title = val.Value
		case "applications":
			for _, item := range val.Content {
				if v := strings.TrimSpace(item.Value); v != "" {
					meta.Applications = append(meta.Applications, v)
				}
			}
		default:
			meta.Extra = append(meta.Extra, MetadataField{Key: key.Value, Value: val.Value})
		}
	}
	return meta, nil
}

// yamlErrorLine pulls the line number out of a yaml.v3 error message
// ("yaml: line 3: ..."); the library does not expose it structurally.
// Returns 0 when the message carries no line.
func yamlErrorLine(err error) int {
	msg := err.Error()
	const marker = "line "
	i := strings.Index(msg, marker)
	if i < 0 {
		return 0
	}
	n := 0
	for _, r := range msg[i+len(marker):] {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
	}
	return n
}

func knownSection(name string) bool {
	for _, s := range SectionOrder {
		if s == name {
			return true
		}
	}
	return false
}

// splitLines splits text into lines that keep their trailing newline,
// so joining them reproduces the input byte-for-byte.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func trimNewline(line string) string {
	return strings.TrimRight(line, "\n")
}

// FenceScanner tracks fenced code blocks during a line scan. Lines
// inside a fence are opaque: headings, checklist syntax, and template
// placeholders there are content, not structure.
type FenceScanner struct {
	open bool
	char byte
	size int
}

// Observe inspects one line and reports whether the scanner is inside a
// fence (the delimiter lines themselves count as inside).
func (f *FenceScanner) Observe(line string) bool {
	trimmed := strings.TrimSpace(trimNewline(line))
	if f.open {
		if runLen(trimmed, f.char) >= f.size && strings.TrimRight(trimmed, string(f.char)) == "" {
			f.open = false
		}
		return true
	}
	for _, c := range []byte{'`', '~'} {
		if n := runLen(trimmed, c); n >= 3 {
			f.open = true
			f.char = c
			f.size = n
			return true
		}
	}
	return false
}

// runLen counts how many consecutive c bytes s starts with.
func runLen(s string, c byte) int {
	n := 0
	for n < len(s) && s[n] == c {
		n++
	}
	return n
}
