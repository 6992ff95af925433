package config

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"
	"unicode"
)

// BindingList records which native functions get bindings. Functions
// missing from the list are enabled.
type BindingList struct {
	Enabled map[string]bool
}

func NewBindingList() *BindingList {
	return &BindingList{
		Enabled: make(map[string]bool),
	}
}

// IsEnabled reports whether bindings should be generated for symbol.
func (bl *BindingList) IsEnabled(symbol string) bool {
	if bl == nil {
		return true
	}
	enabled, ok := bl.Enabled[symbol]
	return !ok || enabled
}

func LoadBindingListFromFile(filename string) (*BindingList, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadBindingList(filename, f)
}

// ReadBindingList parses a binding list. filename is for errors.
func ReadBindingList(filename string, r io.Reader) (*BindingList, error) {
	res := NewBindingList()

	type section int
	const (
		sectionNone section = iota
		sectionEnabled
		sectionDisabled
	)

	currSection := sectionNone
	sc := bufio.NewScanner(r)
	for lineNum := 1; sc.Scan(); lineNum++ {
		makeErr := func(format string, a ...any) error {
			return fmt.Errorf("%v: line %v: %v", filename, lineNum, fmt.Errorf(format, a...))
		}

		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			switch line {
			case "[enabled]":
				currSection = sectionEnabled
			case "[disabled]":
				currSection = sectionDisabled
			default:
				return nil, makeErr("invalid section name %v", line)
			}
			continue
		}
		fields := strings.FieldsFunc(line, func(r rune) bool {
			return unicode.IsSpace(r)
		})
		name := fields[0]
		switch currSection {
		case sectionNone:
			return nil, makeErr("expected symbol \"%v\" to be under a section ([enabled] or [disabled])", name)
		case sectionEnabled:
			if v, ok := res.Enabled[name]; ok && !v {
				return nil, makeErr("cannot have symbol \"%v\" in both [enabled] and [disabled] sections", name)
			}
			res.Enabled[name] = true
		case sectionDisabled:
			if v, ok := res.Enabled[name]; ok && v {
				return nil, makeErr("cannot have symbol \"%v\" in both [enabled] and [disabled] sections", name)
			}
			res.Enabled[name] = false
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%v: %w", filename, err)
	}
	return res, nil
}

// Format renders the list with every symbol of symbolsToDocstrs,
// sorted, each followed by its docstring. Symbols only present in the
// list are dropped.
func (bl *BindingList) Format(symbolsToDocstrs map[string]string) []byte {
	var enabledBindings []string
	var disabledBindings []string
	for name := range symbolsToDocstrs {
		if bl.IsEnabled(name) {
			enabledBindings = append(enabledBindings, name)
		} else {
			disabledBindings = append(disabledBindings, name)
		}
	}
	slices.Sort(enabledBindings)
	slices.Sort(disabledBindings)

	var res bytes.Buffer
	fmt.Fprintln(&res, "# This file lists the native functions bindings are generated for.")
	fmt.Fprintln(&res, "# Move a symbol to the [disabled] section to skip it.")
	fmt.Fprintln(&res, "# The list is re-sorted and updated on every run.")

	writeBindings := func(bs []string) {
		maxCol0Len := 0
		for _, name := range bs {
			maxCol0Len = max(maxCol0Len, len(name))
		}
		for _, name := range bs {
			fmt.Fprintf(
				&res,
				"%v %v\"%v\"\n",
				name,
				strings.Repeat(" ", maxCol0Len-len(name)),
				symbolsToDocstrs[name],
			)
		}
	}
	fmt.Fprintln(&res)
	fmt.Fprintln(&res, "[enabled]")
	writeBindings(enabledBindings)
	fmt.Fprintln(&res)
	fmt.Fprintln(&res, "[disabled]")
	writeBindings(disabledBindings)

	return res.Bytes()
}

func (bl *BindingList) SaveToFile(filename string, symbolsToDocstrs map[string]string) error {
	return os.WriteFile(filename, bl.Format(symbolsToDocstrs), 0666)
}

// Symbols returns all symbols mentioned in the list, sorted.
func (bl *BindingList) Symbols() []string {
	return slices.Sorted(maps.Keys(bl.Enabled))
}
