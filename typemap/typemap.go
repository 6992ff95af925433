// Package typemap maps native type descriptors to target declarations and
// passing conventions.
package typemap

import (
	"errors"
	"fmt"
	"maps"

	"github.com/refaktor/fwrapgen/descriptor"
)

var (
	// ErrUnknownType is returned for types absent from the lookup table.
	// There is no fallback: a wrong ABI mapping is worse than none.
	ErrUnknownType = errors.New("unknown type mapping")
	// ErrInvalidType is returned for descriptors that cannot be mapped in
	// the requested role at all.
	ErrInvalidType = errors.New("invalid type")
)

// OpaqueDecl is the declaration of every opaque handle.
const OpaqueDecl = "type(c_ptr)"

// Role is the position a type is mapped for.
type Role uint8

const (
	Argument Role = iota
	Return
	Field
)

func (r Role) String() string {
	switch r {
	case Argument:
		return "argument"
	case Return:
		return "return value"
	case Field:
		return "field"
	default:
		panic("invalid role")
	}
}

// Passing is the convention a value crosses the boundary with.
type Passing uint8

const (
	// ByValue forwards the value unchanged.
	ByValue Passing = iota
	// ByAddress passes the address of a variable that may alias an
	// external buffer.
	ByAddress
	// Deferred passes an opaque handle the callee writes a new pointer
	// into; the caller resolves it after the call.
	Deferred
)

func (p Passing) String() string {
	switch p {
	case ByValue:
		return "by-value"
	case ByAddress:
		return "by-address"
	case Deferred:
		return "deferred"
	default:
		panic("invalid passing convention")
	}
}

// Mapping is the result of mapping a type.
type Mapping struct {
	// Decl is the target declaration of the value, or of the pointee
	// for pointer types.
	Decl    string
	Passing Passing
	// Derived is the name of the referenced derived type, if any.
	Derived string
	// Opaque is set for types that only exist as handles.
	Opaque bool
}

// InterfaceDecl returns the declaration used on the ABI side, where
// every pointer is an opaque handle.
func (m Mapping) InterfaceDecl() string {
	if m.Passing != ByValue {
		return OpaqueDecl
	}
	return m.Decl
}

// Mapper maps types using an immutable type table.
//
// The zero value maps nothing; use [New].
type Mapper struct {
	types   map[string]string
	derived map[string]struct{}
}

// New returns a Mapper for the scalar table types and the given
// derived type names. The table is copied.
func New(types map[string]string, derived ...string) *Mapper {
	m := &Mapper{
		types:   maps.Clone(types),
		derived: make(map[string]struct{}, len(derived)),
	}
	for _, name := range derived {
		m.derived[name] = struct{}{}
	}
	return m
}

// IsDerived reports whether name is a known derived type.
func (m *Mapper) IsDerived(name string) bool {
	_, ok := m.derived[name]
	return ok
}

// Map maps t for the given role.
func (m *Mapper) Map(t descriptor.Type, role Role) (Mapping, error) {
	if t.Name == "" {
		return Mapping{}, fmt.Errorf("%w: missing type name", ErrInvalidType)
	}

	var res Mapping
	switch t.Indirection {
	case descriptor.None:
		res.Passing = ByValue
	case descriptor.Pointer:
		res.Passing = ByAddress
	case descriptor.DoublePointer:
		res.Passing = Deferred
	default:
		return Mapping{}, fmt.Errorf("%w: %v", ErrInvalidType, t.Indirection)
	}

	switch t.Kind {
	case descriptor.Opaque, descriptor.File:
		if t.Indirection == descriptor.None {
			return Mapping{}, fmt.Errorf("%w: %v type %v cannot be used as %v without indirection", ErrInvalidType, t.Kind, t.Name, role)
		}
		res.Decl = OpaqueDecl
		res.Opaque = true
	case descriptor.Scalar:
		decl, ok := m.types[t.Name]
		if !ok {
			return Mapping{}, fmt.Errorf("%w: no declaration for scalar type %v", ErrUnknownType, t.Name)
		}
		res.Decl = decl
	case descriptor.Derived:
		if !m.IsDerived(t.Name) {
			return Mapping{}, fmt.Errorf("%w: %v is not a known derived type", ErrUnknownType, t.Name)
		}
		res.Decl = "type(" + t.Name + ")"
		res.Derived = t.Name
	default:
		return Mapping{}, fmt.Errorf("%w: %v", ErrInvalidType, t.Kind)
	}
	return res, nil
}
