// Package template expands placeholder variables in spec scaffolds.
// Two syntaxes name the same variable: {{name}} and ${name}. Text
// inside fenced code blocks and inline code spans is never scanned,
// and unresolved placeholders pass through unchanged.
package template

import (
	"strings"
	"time"
	"unicode"

	"github.com/HendryAvila/specdeck/internal/spec"
)

// timeNow is a package-level variable for testability.
var timeNow = time.Now

// DefaultName is the template applied automatically on creation when
// it exists and no template was named explicitly.
const DefaultName = "default"

// DefaultScaffold is the built-in scaffold used when no template named
// "default" exists anywhere.
const DefaultScaffold = `---
specdeck: v0
title: {{title}}
applications:
    -
---

# Background



# Proposal



# Implementation Plan



# Test Plan

`

// BuiltinVars returns the variables every expansion receives: the
// title-case form of the spec's kebab-case name and today's date.
func BuiltinVars(name string) map[string]string {
	return map[string]string{
		"title": TitleCase(name),
		"date":  timeNow().Format("2006-01-02"),
	}
}

// TitleCase converts a kebab-case name to a display title:
// "my-feature" becomes "My Feature".
func TitleCase(name string) string {
	words := strings.Split(name, "-")
	for i, w := range words {
		r := []rune(w)
		if len(r) > 0 {
			r[0] = unicode.ToUpper(r[0])
		}
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// Expand substitutes {{var}} and ${var} placeholders in text using
// vars. Placeholders inside fenced code blocks or inline code spans
// stay literal, and a placeholder naming an unknown variable is
// emitted unchanged rather than treated as an error.
func Expand(text string, vars map[string]string) string {
	var out strings.Builder
	out.Grow(len(text))

	var fence spec.FenceScanner
	rest := text
	for len(rest) > 0 {
		line := rest
		if i := strings.IndexByte(rest, '\n'); i >= 0 {
			line, rest = rest[:i+1], rest[i+1:]
		} else {
			rest = ""
		}
		if fence.Observe(line) {
			out.WriteString(line)
			continue
		}
		out.WriteString(expandLine(line, vars))
	}
	return out.String()
}

// expandLine substitutes placeholders in one line, skipping inline
// code spans (a backtick run closed by a matching run of the same
// length on the same line).
func expandLine(line string, vars map[string]string) string {
	var out strings.Builder
	out.Grow(len(line))

	for i := 0; i < len(line); {
		switch line[i] {
		case '`':
			n := tickRun(line[i:])
			if end := closingRun(line[i+n:], n); end >= 0 {
				// Copy the whole span, opener through closer.
				out.WriteString(line[i : i+n+end+n])
				i += n + end + n
			} else {
				out.WriteString(line[i : i+n])
				i += n
			}
		case '{':
			if strings.HasPrefix(line[i:], "{{") {
				if name, after, ok := varName(line[i+2:], "}}"); ok {
					if value, found := vars[name]; found {
						out.WriteString(value)
						i += 2 + after
						continue
					}
				}
			}
			out.WriteByte(line[i])
			i++
		case '$':
			if strings.HasPrefix(line[i:], "${") {
				if name, after, ok := varName(line[i+2:], "}"); ok {
					if value, found := vars[name]; found {
						out.WriteString(value)
						i += 2 + after
						continue
					}
				}
			}
			out.WriteByte(line[i])
			i++
		default:
			out.WriteByte(line[i])
			i++
		}
	}
	return out.String()
}

// varName reads a variable name followed by the closing delimiter.
// It returns the name, the offset just past the delimiter, and whether
// a well-formed placeholder was found.
func varName(s, close string) (string, int, bool) {
	j := 0
	for j < len(s) && isVarChar(s[j]) {
		j++
	}
	if j == 0 || !strings.HasPrefix(s[j:], close) {
		return "", 0, false
	}
	return s[:j], j + len(close), true
}

func isVarChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}

// tickRun returns the length of the leading backtick run.
func tickRun(s string) int {
	n := 0
	for n < len(s) && s[n] == '`' {
		n++
	}
	return n
}

// closingRun finds a backtick run of exactly length n in s and returns
// the offset of its first byte, or -1.
func closingRun(s string, n int) int {
	for i := 0; i < len(s); {
		if s[i] != '`' {
			i++
			continue
		}
		run := tickRun(s[i:])
		if run == n {
			return i
		}
		i += run
	}
	return -1
}

