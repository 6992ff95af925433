// Package textutils holds small helpers for laying out generated text and
// log messages.
package textutils

import (
	"strings"
)

// IndentString prepends indent nIndent times to each line of s. Lines
// holding only whitespace are emptied instead.
func IndentString(s string, indent string, nIndent int) string {
	prefix := strings.Repeat(indent, nIndent)

	var res strings.Builder
	res.Grow(len(s) + (strings.Count(s, "\n")+1)*len(prefix))
	for line := range strings.Lines(s) {
		body, hasNewline := strings.CutSuffix(line, "\n")
		if strings.TrimSpace(body) != "" {
			res.WriteString(prefix)
			res.WriteString(body)
		}
		if hasNewline {
			res.WriteByte('\n')
		}
	}
	return res.String()
}

// PadRight appends spaces to s up to width columns. Longer strings are
// returned unchanged.
func PadRight(s string, width int) string {
	if n := width - len(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}
