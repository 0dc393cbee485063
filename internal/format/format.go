// Package format normalizes the Markdown style of spec bodies. The
// metadata block passes through byte-exact; only body sections are
// rewritten, and the result is stable under repeated formatting.
package format

import (
	"strings"

	"github.com/HendryAvila/specdeck/internal/spec"
)

// Format normalizes a spec file's body style. It fails only when the
// metadata block is missing or malformed; everything after it is
// normalized best-effort without interpreting unmodeled Markdown.
//
// Applied rules, all outside code fences:
//   - trailing spaces and tabs are stripped
//   - list bullets '*' and '+' become '-'
//   - checkbox marks '[X]' become '[x]'
//   - runs of blank lines collapse to one
//   - top-level headings get one blank line before and after
//   - the body is separated from the metadata block by one blank line
//     and ends with exactly one newline
func Format(text string) (string, error) {
	meta, body, err := splitMetadata(text)
	if err != nil {
		return "", err
	}

	lines := normalize(splitLines(body))

	var b strings.Builder
	b.Grow(len(text))
	b.WriteString(meta)
	if len(lines) > 0 {
		b.WriteString("\n")
		for _, line := range lines {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}

// splitMetadata separates the metadata block (delimiters included,
// verbatim) from the body and validates the block's content.
func splitMetadata(text string) (meta, body string, err error) {
	if !strings.HasPrefix(text, "---\n") {
		return "", "", &spec.ParseError{Line: 1, Reason: "missing metadata block delimiter '---'"}
	}
	rest := text[len("---\n"):]
	end := strings.Index(rest, "\n---\n")
	var inner string
	switch {
	case end >= 0:
		inner = rest[:end+1]
		split := len("---\n") + end + len("\n---\n")
		meta, body = text[:split], text[split:]
	case strings.HasSuffix(rest, "\n---"):
		inner = rest[:len(rest)-len("---")]
		meta, body = text+"\n", ""
	default:
		return "", "", &spec.ParseError{Line: 1, Reason: "metadata block is not terminated by '---'"}
	}
	if err := spec.CheckMetadata(inner); err != nil {
		return "", "", err
	}
	return meta, body, nil
}

// normalize applies the body rules line by line and returns lines
// without trailing newlines.
func normalize(raw []string) []string {
	var out []string
	var fence spec.FenceScanner
	blankPending := false

	emit := func(line string) {
		if blankPending && len(out) > 0 {
			out = append(out, "")
		}
		blankPending = false
		out = append(out, line)
	}

	for _, l := range raw {
		line := strings.TrimRight(l, "\n")
		if fence.Observe(l) {
			emit(line)
			continue
		}
		line = strings.TrimRight(line, " \t")
		if line == "" {
			blankPending = true
			continue
		}
		line = normalizeBullet(line)
		if strings.HasPrefix(line, "# ") {
			blankPending = len(out) > 0
			emit(line)
			blankPending = true
			continue
		}
		emit(line)
	}
	return out
}

// normalizeBullet rewrites '*' and '+' list markers to '-' and fixes
// checkbox capitalization. Indentation is preserved.
func normalizeBullet(line string) string {
	trimmed := strings.TrimLeft(line, " \t")
	indent := line[:len(line)-len(trimmed)]

	if strings.HasPrefix(trimmed, "* ") || strings.HasPrefix(trimmed, "+ ") {
		trimmed = "-" + trimmed[1:]
	}
	if strings.HasPrefix(trimmed, "- [X] ") {
		trimmed = "- [x] " + trimmed[len("- [X] "):]
	}
	return indent + trimmed
}

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
