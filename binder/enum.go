package binder

import (
	"strconv"

	"github.com/refaktor/fwrapgen/binder/binderio"
	"github.com/refaktor/fwrapgen/config"
	"github.com/refaktor/fwrapgen/descriptor"
	"github.com/refaktor/fwrapgen/textutils"
)

// GenerateEnum renders e as an interoperable enumeration. Values are
// computed by [EnumValues] using the family of e.
func GenerateEnum(ctx *Context, e descriptor.Enum) (string, error) {
	if err := validateEnum(e); err != nil {
		return "", err
	}
	fam, ok := ctx.Config.Family(e.Family)
	if !ok {
		return "", &Error{What: whatEnum, Decl: e.Name, Index: -1, Name: e.Family, Err: malformed("unknown enum family %q", e.Family)}
	}

	values := EnumValues(fam, e.Values)

	width := 0
	for _, v := range e.Values {
		width = max(width, len(v.Name))
	}

	col := ctx.columns()
	var cb binderio.CodeBuilder
	cb.Indent = col.block
	cb.Linef("! enum %v", e.Name)
	cb.Linef("enum, bind(C)")
	cb.Indent = col.decl
	for i, v := range e.Values {
		writeStatement(&cb, ctx.budget(), col.decl+ctx.Config.Layout.Indent,
			"enumerator :: ", textutils.PadRight(v.Name, width), " = "+strconv.FormatInt(values[i], 10))
	}
	cb.Indent = col.block
	cb.Linef("end enum")
	return cb.String(), nil
}

// EnumValues returns the emitted value of every constant in values.
//
// A constant without an explicit value takes the previous non-sentinel
// value plus one, or fam.Base if it is the first. fam.Offset is added
// to every non-sentinel value. Sentinels are emitted without the offset
// and do not advance the chain; without an explicit value, a sentinel
// takes the value the next constant would get.
func EnumValues(fam config.Family, values []descriptor.EnumValue) []int64 {
	res := make([]int64, len(values))
	next := fam.Base
	for i, v := range values {
		raw := next
		if v.Value != nil {
			raw = *v.Value
		}
		if v.Sentinel {
			res[i] = raw
			continue
		}
		res[i] = raw + fam.Offset
		next = raw + 1
	}
	return res
}
