package diag

import (
	"fmt"
	"strings"
)

// Result is the partial-failure wrapper every vb6parse entry point returns:
// a best-effort Value plus the Diagnostics collected while producing it.
// Value may be the zero value of T if the failure was total; Diagnostics
// may be empty if the parse was clean. Both fields are always inspectable,
// independent of one another, rather than an error that forces the caller
// to choose between a value and a failure.
type Result[T any] struct {
	Value       T
	Diagnostics []Diagnostic
}

// OK reports whether the result carries no diagnostics at all.
func (r Result[T]) OK() bool { return len(r.Diagnostics) == 0 }

// Add appends one diagnostic to the result's Diagnostics.
func (r *Result[T]) Add(d Diagnostic) { r.Diagnostics = append(r.Diagnostics, d) }

// Render formats a diagnostic as an annotated source snippet: the message
// on one line, the offending source line below it, and a caret under the
// column the diagnostic's Span starts at. text is the full source this
// diagnostic's Span refers into.
func Render(d Diagnostic, text string) string {
	lineStart, lineEnd := lineBounds(text, d.Span.Start)
	line := text[lineStart:lineEnd]
	col := d.Span.Start - lineStart
	if col < 0 {
		col = 0
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s:%d:%d: %s: %s\n", d.Span.File, d.Span.Line, d.Span.Column, d.Kind, d.Message)
	b.WriteString(line)
	b.WriteByte('\n')
	b.WriteString(strings.Repeat(" ", col))
	b.WriteString("^")
	return b.String()
}

func lineBounds(text string, offset int) (start, end int) {
	if offset > len(text) {
		offset = len(text)
	}
	start = strings.LastIndexByte(text[:offset], '\n') + 1
	if idx := strings.IndexByte(text[offset:], '\n'); idx >= 0 {
		end = offset + idx
	} else {
		end = len(text)
	}
	return start, end
}
