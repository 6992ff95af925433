package binder

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/refaktor/fwrapgen/typemap"
)

var (
	// ErrUnknownTypeMapping is returned for types absent from the type
	// table. It is the same error as [typemap.ErrUnknownType].
	ErrUnknownTypeMapping = typemap.ErrUnknownType
	// ErrMalformedDescriptor is returned for descriptors with missing or
	// invalid names, types or flags.
	ErrMalformedDescriptor = errors.New("malformed descriptor")
	// ErrSymbolCollision is returned when two generated names coincide.
	ErrSymbolCollision = errors.New("symbol collision")
)

const (
	whatFunction = "function"
	whatStruct   = "struct"
	whatEnum     = "enum"
)

// Error is a generation error located in a declaration.
type Error struct {
	// What is the kind of declaration ("function", "struct" or "enum").
	What string
	// Decl is the name of the declaration.
	Decl string
	// Index is the index of the offending argument, field or value, or
	// -1 if the error concerns the declaration itself or a return value.
	Index int
	// Name is the name of the offending argument, field or value, if
	// known.
	Name string
	Err  error
}

func (e *Error) item() string {
	switch e.What {
	case whatFunction:
		return "argument"
	case whatStruct:
		return "field"
	default:
		return "value"
	}
}

func (e *Error) location() string {
	var b strings.Builder
	b.WriteString(e.What)
	b.WriteString(" ")
	if e.Decl == "" {
		b.WriteString("<unnamed>")
	} else {
		b.WriteString(e.Decl)
	}
	if e.Index >= 0 {
		fmt.Fprintf(&b, ", %v %v", e.item(), e.Index)
		if e.Name != "" {
			fmt.Fprintf(&b, " (%v)", e.Name)
		}
	} else if e.Name != "" {
		fmt.Fprintf(&b, ", %v", e.Name)
	}
	return b.String()
}

// Error returns a short error message.
func (e *Error) Error() string {
	return e.location() + ": " + e.Err.Error()
}

// String returns the full multi-line error string.
func (e *Error) String() string {
	var b strings.Builder
	b.WriteString("Error in ")
	b.WriteString(e.What)
	b.WriteString(" ")
	b.WriteString(strconv.Quote(e.Decl))
	b.WriteString(":\n")
	if e.Index >= 0 {
		fmt.Fprintf(&b, "  %v: %v\n", e.item(), e.Index)
	}
	if e.Name != "" {
		fmt.Fprintf(&b, "  name: %v\n", e.Name)
	}
	if kind := e.Kind(); kind != nil {
		fmt.Fprintf(&b, "  kind: %v\n", kind)
	}
	fmt.Fprintf(&b, "  %v\n", e.Err)
	return b.String()
}

// Kind returns the sentinel error e wraps, or nil.
func (e *Error) Kind() error {
	for _, kind := range []error{ErrUnknownTypeMapping, ErrMalformedDescriptor, ErrSymbolCollision} {
		if errors.Is(e.Err, kind) {
			return kind
		}
	}
	return nil
}

func (e *Error) Unwrap() error {
	return e.Err
}

func malformed(format string, a ...any) error {
	return fmt.Errorf("%w: %v", ErrMalformedDescriptor, fmt.Sprintf(format, a...))
}

func collision(format string, a ...any) error {
	return fmt.Errorf("%w: %v", ErrSymbolCollision, fmt.Sprintf(format, a...))
}

// mapError classifies errors from [typemap.Mapper.Map]. Types that
// cannot be mapped in their role at all are malformed descriptors.
func mapError(err error) error {
	if errors.Is(err, typemap.ErrInvalidType) {
		return fmt.Errorf("%w: %w", ErrMalformedDescriptor, err)
	}
	return err
}
