package binderio

import (
	"bufio"
	"fmt"
	"strings"
)

// CodeBuilder is a wrapper around [strings.Builder] that simplifies
// building line-oriented code.
//
// The zero value is safely ready to use.
type CodeBuilder struct {
	// Indent is the indentation level (indentation is spaces).
	Indent int

	b strings.Builder
}

// Write appends a raw string to the internal [strings.Builder].
func (w *CodeBuilder) Write(s string) {
	w.b.WriteString(s)
}

// Append writes the given string line by line with correct indentation.
// Empty lines stay empty.
func (w *CodeBuilder) Append(s string) {
	sc := bufio.NewScanner(strings.NewReader(s))
	for sc.Scan() {
		if sc.Text() == "" {
			w.Blank()
			continue
		}
		w.Linef("%v", sc.Text())
	}
}

// Linef writes a single line, prepended by the current indentation.
//
// Takes format and args like [fmt.Printf].
func (w *CodeBuilder) Linef(format string, args ...any) {
	w.b.WriteString(strings.Repeat(" ", w.Indent))
	w.b.WriteString(fmt.Sprintf(format, args...))
	w.b.WriteString("\n")
}

// Blank writes an empty line.
func (w *CodeBuilder) Blank() {
	w.b.WriteString("\n")
}

// String returns the current code.
func (w *CodeBuilder) String() string {
	return w.b.String()
}
