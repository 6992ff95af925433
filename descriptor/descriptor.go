// Package descriptor defines the structured metadata the binding generator
// consumes: native functions, structs and enumerations.
//
// Descriptors are plain values. They are built once (by hand, or by [Load]
// from a descriptor file) and only ever read afterwards.
package descriptor

import (
	"fmt"
	"strings"
)

// Kind is the category of a native type.
type Kind uint8

const (
	// Scalar is an integer or real type listed in the type table.
	Scalar Kind = iota
	// Opaque is a type whose layout never crosses the boundary (void).
	Opaque
	// Derived is a reference to a struct, mirrored field-for-field as a
	// derived type.
	Derived
	// File is a file-like resource (FILE). Such handles are not
	// interoperable and are never forwarded by wrappers.
	File
)

func (k Kind) String() string {
	switch k {
	case Scalar:
		return "scalar"
	case Opaque:
		return "opaque"
	case Derived:
		return "struct"
	case File:
		return "file"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	if k > File {
		return nil, fmt.Errorf("invalid type kind %d", uint8(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "", "scalar":
		*k = Scalar
	case "opaque":
		*k = Opaque
	case "struct":
		*k = Derived
	case "file":
		*k = File
	default:
		return fmt.Errorf("invalid type kind %q (expected scalar, opaque, struct or file)", text)
	}
	return nil
}

// Indirection is the pointer level of a type.
type Indirection uint8

const (
	None Indirection = iota
	Pointer
	DoublePointer
)

func (ind Indirection) String() string {
	switch ind {
	case None:
		return "none"
	case Pointer:
		return "pointer"
	case DoublePointer:
		return "double-pointer"
	default:
		return fmt.Sprintf("Indirection(%d)", uint8(ind))
	}
}

// Stars returns the C spelling of the indirection ("", "*" or "**").
func (ind Indirection) Stars() string {
	return strings.Repeat("*", int(ind))
}

func (ind Indirection) MarshalText() ([]byte, error) {
	if ind > DoublePointer {
		return nil, fmt.Errorf("invalid indirection %d", uint8(ind))
	}
	return []byte(ind.String()), nil
}

func (ind *Indirection) UnmarshalText(text []byte) error {
	switch string(text) {
	case "", "none":
		*ind = None
	case "*", "pointer":
		*ind = Pointer
	case "**", "double-pointer":
		*ind = DoublePointer
	default:
		return fmt.Errorf("invalid indirection %q (expected none, pointer or double-pointer)", text)
	}
	return nil
}

// Type describes a native type: its category, its native name and its
// pointer level.
type Type struct {
	Kind        Kind        `toml:"kind" yaml:"kind"`
	Name        string      `toml:"name" yaml:"name"`
	Indirection Indirection `toml:"indirection" yaml:"indirection"`
}

// Void is the return type of native functions that return nothing.
var Void = Type{Kind: Opaque, Name: "void"}

// IsVoid reports whether t is a plain (non-pointer) opaque type.
func (t Type) IsVoid() bool {
	return t.Kind == Opaque && t.Indirection == None
}

// String returns the C spelling of the type, e.g. "double *".
func (t Type) String() string {
	if t.Indirection == None {
		return t.Name
	}
	return t.Name + " " + t.Indirection.Stars()
}

// Arg is a function argument or a struct field.
type Arg struct {
	Name string `toml:"name" yaml:"name"`
	Type Type   `toml:"type" yaml:"type"`
	// OutputOnly marks pointer arguments the callee only writes to.
	OutputOnly bool `toml:"output-only" yaml:"output-only"`
	// Const marks pointer arguments the callee only reads from.
	Const bool `toml:"const" yaml:"const"`
	// Array marks pointer arguments that point to the first element of
	// an array rather than to a single value.
	Array bool `toml:"array" yaml:"array"`
}

func (a Arg) String() string {
	var b strings.Builder
	if a.Const {
		b.WriteString("const ")
	}
	b.WriteString(a.Type.Name)
	b.WriteString(" ")
	b.WriteString(a.Type.Indirection.Stars())
	b.WriteString(a.Name)
	if a.Array {
		b.WriteString("[]")
	}
	return b.String()
}

// Function describes a native function.
//
// Symbol uniquely identifies the function within a [Set].
type Function struct {
	Symbol string `toml:"symbol" yaml:"symbol"`
	// Return is the return type. The zero value means void.
	Return Type  `toml:"return" yaml:"return"`
	Args   []Arg `toml:"arg" yaml:"arg"`
}

// ReturnType returns f.Return, or [Void] if no return type was given.
func (f Function) ReturnType() Type {
	if f.Return == (Type{}) {
		return Void
	}
	return f.Return
}

// String returns the C prototype of f.
func (f Function) String() string {
	var b strings.Builder
	ret := f.ReturnType()
	b.WriteString(ret.Name)
	b.WriteString(" ")
	b.WriteString(ret.Indirection.Stars())
	b.WriteString(f.Symbol)
	b.WriteString("(")
	for i, a := range f.Args {
		if i != 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.String())
	}
	b.WriteString(")")
	return b.String()
}

// Struct describes a native struct.
type Struct struct {
	Name   string `toml:"name" yaml:"name"`
	Fields []Arg  `toml:"field" yaml:"field"`
}

// EnumValue is a single enumeration constant.
type EnumValue struct {
	Name string `toml:"name" yaml:"name"`
	// Value is the explicit value, if any.
	Value *int64 `toml:"value" yaml:"value"`
	// Sentinel marks count markers, which take no part in the
	// positional increment and receive no family offset.
	Sentinel bool `toml:"sentinel" yaml:"sentinel"`
}

// Enum describes a native enumeration.
type Enum struct {
	Name string `toml:"name" yaml:"name"`
	// Family selects the base and offset rule for the values, see
	// config.Family. Empty means base 0 and no offset.
	Family string      `toml:"family" yaml:"family"`
	Values []EnumValue `toml:"value" yaml:"value"`
}

// Set is the group of declarations that make up one generated unit.
type Set struct {
	Enums     []Enum     `toml:"enum" yaml:"enum"`
	Structs   []Struct   `toml:"struct" yaml:"struct"`
	Functions []Function `toml:"function" yaml:"function"`
}

// Append adds all declarations of other to s, keeping their order.
func (s *Set) Append(other *Set) {
	s.Enums = append(s.Enums, other.Enums...)
	s.Structs = append(s.Structs, other.Structs...)
	s.Functions = append(s.Functions, other.Functions...)
}

// StructNames returns the names of all structs in s, in order.
func (s *Set) StructNames() []string {
	names := make([]string, 0, len(s.Structs))
	for _, st := range s.Structs {
		names = append(names, st.Name)
	}
	return names
}

// Int returns a pointer to v. It is a convenience for building
// [EnumValue] literals.
func Int(v int64) *int64 {
	return &v
}
