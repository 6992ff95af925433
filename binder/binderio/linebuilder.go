package binderio

import (
	"slices"
	"strings"
)

// Fits reports whether a token width columns wide, placed at column col,
// ends within budget.
func Fits(col, width, budget int) bool {
	return col+width <= budget
}

// LineBuilder assembles tokens into lines at most Budget columns wide.
//
// Each token is placed on the current line if it fits there together
// with the continuation marker Cont. Otherwise trailing spaces are cut
// from the current line, it is terminated with Cont and the token
// starts a new line indented to Margin. A line can only exceed the
// budget if a single token does.
//
// Use [NewLineBuilder] to create one.
type LineBuilder struct {
	Budget int
	Margin int
	Cont   string

	lines   []string
	cur     strings.Builder
	col     int
	content bool // current line holds more than indentation
}

func NewLineBuilder(budget, margin int, cont string) *LineBuilder {
	return &LineBuilder{
		Budget: budget,
		Margin: margin,
		Cont:   cont,
	}
}

// Start writes text to the current line without checking the width. It
// is meant for the fixed head of a statement, e.g. indentation and
// "subroutine name(".
func (b *LineBuilder) Start(text string) {
	b.cur.WriteString(text)
	b.col += len(text)
	if strings.TrimSpace(text) != "" {
		b.content = true
	}
}

// Append places tok, breaking the line before it if needed. Leading
// spaces of a token that starts a continuation line are dropped.
func (b *LineBuilder) Append(tok string) {
	if b.content && !Fits(b.col, len(tok)+len(b.Cont), b.Budget) {
		b.Break()
		tok = strings.TrimLeft(tok, " ")
	}
	b.Start(tok)
}

// AppendList places items separated by sep. The separator stays on the
// line of the item before it.
func (b *LineBuilder) AppendList(items []string, sep string) {
	for i, item := range items {
		if i != len(items)-1 {
			item += sep
		}
		b.Append(item)
	}
}

// Break terminates the current line with the continuation marker and
// starts a new one at the margin.
func (b *LineBuilder) Break() {
	b.lines = append(b.lines, strings.TrimRight(b.cur.String(), " ")+b.Cont)
	b.cur.Reset()
	b.cur.WriteString(strings.Repeat(" ", b.Margin))
	b.col = b.Margin
	b.content = false
}

// Col returns the column the next token would start at.
func (b *LineBuilder) Col() int {
	return b.col
}

// Lines returns all lines, including the unterminated current one.
func (b *LineBuilder) Lines() []string {
	return append(slices.Clone(b.lines), b.cur.String())
}

func (b *LineBuilder) String() string {
	return strings.Join(b.Lines(), "\n")
}
