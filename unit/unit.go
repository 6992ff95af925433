// Package unit assembles generated blocks into one Fortran source file.
package unit

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/refaktor/fwrapgen/binder/binderio"
	"github.com/refaktor/fwrapgen/config"
)

// Unit is the identity of a generated source file. All text is used
// verbatim.
type Unit struct {
	// Filename is the name of the generated file. The module is named
	// after it.
	Filename    string
	Description string
	// Version is a semantic version, with or without the "v" prefix.
	Version string
	Authors []string
	Date    string
	// Copyright lines, if any, are placed in the header comment.
	Copyright []string
	// Generator names the program in the "generated by" note.
	Generator string
	// Header is inserted after the module's use statements, Footer
	// after the last wrapper.
	Header string
	Footer string
}

// Blocks are the generated blocks of a unit, each in declaration order.
type Blocks struct {
	Enums      []string
	Structs    []string
	Interfaces []string
	Wrappers   []string
}

// ModuleName returns the file name without directory and without a
// ".f90" extension (in any case).
func (u Unit) ModuleName() string {
	base := filepath.Base(u.Filename)
	if ext := filepath.Ext(base); strings.EqualFold(ext, ".f90") {
		base = strings.TrimSuffix(base, ext)
	}
	return base
}

// SemVer returns the canonical form of u.Version, e.g. "v6.0.0".
func (u Unit) SemVer() string {
	v := u.Version
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return semver.Canonical(v)
}

func (u Unit) Validate() error {
	if u.Filename == "" {
		return errors.New("missing file name")
	}
	name := u.ModuleName()
	if name == "" || !isModuleName(name) {
		return fmt.Errorf("file name %q does not give a valid module name", u.Filename)
	}
	if u.Version != "" && u.SemVer() == "" {
		return fmt.Errorf("invalid version %q (expected a semantic version such as 6.0.0)", u.Version)
	}
	return nil
}

func isModuleName(s string) bool {
	for i, c := range s {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case i > 0 && (c == '_' || c >= '0' && c <= '9'):
		default:
			return false
		}
	}
	return true
}

// Assemble renders the complete source file of u around b. Statements
// of the module itself are indented to the layout's margin.
func Assemble(u Unit, layout config.Layout, b Blocks) (string, error) {
	if err := u.Validate(); err != nil {
		return "", err
	}
	name := u.ModuleName()

	var cb binderio.CodeBuilder
	writeHeaderComment(&cb, u)

	cb.Linef("module %v", name)
	cb.Indent = layout.Margin
	cb.Linef("use iso_c_binding")
	if u.Header != "" {
		cb.Indent = 0
		cb.Append(u.Header)
		cb.Indent = layout.Margin
	}
	cb.Linef("implicit none")
	cb.Indent = 0

	for _, group := range [][]string{b.Enums, b.Structs, b.Interfaces} {
		for _, block := range group {
			cb.Blank()
			cb.Write(block)
		}
	}

	cb.Blank()
	cb.Linef("contains")
	for _, block := range b.Wrappers {
		cb.Blank()
		cb.Write(block)
	}

	if u.Footer != "" {
		cb.Blank()
		cb.Append(u.Footer)
	}
	cb.Blank()
	cb.Linef("end module %v", name)
	return cb.String(), nil
}

func writeHeaderComment(cb *binderio.CodeBuilder, u Unit) {
	line := func(format string, args ...any) {
		s := fmt.Sprintf(format, args...)
		if s == "" {
			cb.Linef("!")
		} else {
			cb.Linef("! %v", s)
		}
	}

	line("")
	line("@file %v", filepath.Base(u.Filename))
	line("")
	if u.Description != "" {
		for _, ln := range strings.Split(strings.TrimRight(u.Description, "\n"), "\n") {
			line("%v", ln)
		}
		line("")
	}
	for i, ln := range u.Copyright {
		if i == 0 {
			line("@copyright %v", ln)
		} else {
			line("           %v", ln)
		}
	}
	if len(u.Copyright) != 0 {
		line("")
	}
	if u.Version != "" {
		line("@version %v", strings.TrimPrefix(u.SemVer(), "v"))
	}
	for _, a := range u.Authors {
		line("@author %v", a)
	}
	if u.Date != "" {
		line("@date %v", u.Date)
	}
	if u.Version != "" || len(u.Authors) != 0 || u.Date != "" {
		line("")
	}
	gen := u.Generator
	if gen == "" {
		gen = "fwrapgen"
	}
	line("This file has been automatically generated with %v", gen)
	line("")
}
