package binder

import (
	"strings"

	"github.com/refaktor/fwrapgen/descriptor"
)

// maxIdentLen is the longest name the target language accepts.
const maxIdentLen = 63

func isIdent(s string) bool {
	if s == "" || len(s) > maxIdentLen {
		return false
	}
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

func checkName(what, name string) error {
	if name == "" {
		return malformed("missing %v name", what)
	}
	if !isIdent(name) {
		return malformed("invalid %v name %q", what, name)
	}
	return nil
}

// nameSet detects names that are equal when case is ignored, as the
// target language does.
type nameSet map[string]int

// add records name at index i and returns the index of an earlier equal
// name, or -1.
func (s nameSet) add(name string, i int) int {
	key := strings.ToLower(name)
	if prev, ok := s[key]; ok {
		return prev
	}
	s[key] = i
	return -1
}

func (s nameSet) has(name string) bool {
	_, ok := s[strings.ToLower(name)]
	return ok
}

// validateArgs checks the names of function arguments or struct fields.
func validateArgs(what, decl string, args []descriptor.Arg) (nameSet, error) {
	names := make(nameSet, len(args))
	for i, a := range args {
		e := &Error{What: what, Decl: decl, Index: i, Name: a.Name}
		if err := checkName(e.item(), a.Name); err != nil {
			e.Err = err
			return nil, e
		}
		if a.Type.Name == "" {
			e.Err = malformed("missing type")
			return nil, e
		}
		if prev := names.add(a.Name, i); prev >= 0 {
			e.Err = collision("duplicate %v name %v (also %v %v)", e.item(), a.Name, e.item(), prev)
			return nil, e
		}
	}
	return names, nil
}

func validateFlags(fn string, i int, a descriptor.Arg) error {
	e := &Error{What: whatFunction, Decl: fn, Index: i, Name: a.Name}
	switch {
	case a.OutputOnly && a.Const:
		e.Err = malformed("argument is both output-only and const")
	case a.Type.Indirection == descriptor.None && a.OutputOnly:
		e.Err = malformed("output-only argument must be a pointer")
	case a.Type.Indirection == descriptor.None && a.Array:
		e.Err = malformed("array argument must be a pointer")
	case a.Type.Indirection == descriptor.DoublePointer && a.Array:
		e.Err = malformed("double-pointer array arguments have no known shape")
	case (a.Type.Kind == descriptor.Opaque || a.Type.Kind == descriptor.File) && a.Array:
		e.Err = malformed("handle argument cannot be an array")
	default:
		return nil
	}
	return e
}

func validateStruct(s descriptor.Struct) error {
	if err := checkName("struct", s.Name); err != nil {
		return &Error{What: whatStruct, Decl: s.Name, Index: -1, Err: err}
	}
	if len(s.Fields) == 0 {
		return &Error{What: whatStruct, Decl: s.Name, Index: -1, Err: malformed("struct has no fields")}
	}
	_, err := validateArgs(whatStruct, s.Name, s.Fields)
	return err
}

func validateEnum(e descriptor.Enum) error {
	if err := checkName("enum", e.Name); err != nil {
		return &Error{What: whatEnum, Decl: e.Name, Index: -1, Err: err}
	}
	if len(e.Values) == 0 {
		return &Error{What: whatEnum, Decl: e.Name, Index: -1, Err: malformed("enum has no values")}
	}
	names := make(nameSet, len(e.Values))
	for i, v := range e.Values {
		err := checkName("value", v.Name)
		if err == nil {
			if prev := names.add(v.Name, i); prev >= 0 {
				err = collision("duplicate value name %v (also value %v)", v.Name, prev)
			}
		}
		if err != nil {
			return &Error{What: whatEnum, Decl: e.Name, Index: i, Name: v.Name, Err: err}
		}
	}
	return nil
}
