package binder

import (
	"strings"

	"github.com/refaktor/fwrapgen/binder/binderio"
	"github.com/refaktor/fwrapgen/textutils"
)

// contMarker ends every line that is continued on the next one.
const contMarker = " &"

// writeStatement writes head at the builder's indentation, followed by
// toks. A token that would exceed budget starts a continuation line at
// column cont. Each space-separated word of head is a token of its own.
func writeStatement(cb *binderio.CodeBuilder, budget, cont int, head string, toks ...string) {
	lb := binderio.NewLineBuilder(budget, cont, contMarker)
	lb.Start(strings.Repeat(" ", cb.Indent))
	for _, word := range strings.SplitAfter(head, " ") {
		if word != "" {
			lb.Append(word)
		}
	}
	for _, tok := range toks {
		lb.Append(tok)
	}
	for _, ln := range lb.Lines() {
		cb.Write(ln + "\n")
	}
}

// argList returns the tokens of a comma-separated list. Separators and
// the closing text stay attached to the item before them, so no line
// starts with either.
func argList(items []string, closing string) []string {
	if len(items) == 0 {
		return []string{closing}
	}
	toks := make([]string, len(items))
	for i, item := range items {
		if i == len(items)-1 {
			toks[i] = item + closing
		} else {
			toks[i] = item + ", "
		}
	}
	return toks
}

// declLine is a declaration statement: type and attribute columns,
// aligned across the lines of a block, then the name.
type declLine struct {
	cols []string
	name string
}

// measureDecls returns the width of every column.
func measureDecls(lines []declLine) []int {
	var widths []int
	for _, ln := range lines {
		for i, col := range ln.cols {
			if i == len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], len(col))
		}
	}
	return widths
}

// renderDecls writes lines with every column padded to its width, so
// the names line up.
func renderDecls(cb *binderio.CodeBuilder, budget, cont int, widths []int, lines []declLine) {
	for _, ln := range lines {
		toks := make([]string, 0, len(widths)+1)
		for i, w := range widths {
			var col string
			if i < len(ln.cols) {
				col = ln.cols[i]
			}
			toks = append(toks, textutils.PadRight(col, w))
		}
		toks = append(toks, " :: ", ln.name)
		writeStatement(cb, budget, cont, "", toks...)
	}
}

