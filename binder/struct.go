package binder

import (
	"github.com/refaktor/fwrapgen/binder/binderio"
	"github.com/refaktor/fwrapgen/descriptor"
	"github.com/refaktor/fwrapgen/typemap"
)

// GenerateStruct renders s as an interoperable derived type. Every
// field gets one line; the type columns are aligned to the widest one.
func GenerateStruct(ctx *Context, s descriptor.Struct) (string, error) {
	if err := validateStruct(s); err != nil {
		return "", err
	}

	fields := make([]declLine, 0, len(s.Fields))
	for i, f := range s.Fields {
		m, err := ctx.Types.Map(f.Type, typemap.Field)
		if err != nil {
			return "", &Error{What: whatStruct, Decl: s.Name, Index: i, Name: f.Name, Err: mapError(err)}
		}
		fields = append(fields, declLine{cols: []string{m.InterfaceDecl()}, name: f.Name})
	}

	return renderStruct(ctx, s.Name, fields, measureDecls(fields)), nil
}

func renderStruct(ctx *Context, name string, fields []declLine, widths []int) string {
	col := ctx.columns()

	var cb binderio.CodeBuilder
	cont := col.decl + ctx.Config.Layout.Indent
	cb.Indent = col.block
	writeStatement(&cb, ctx.budget(), cont, "type, bind(c) :: ", name)
	cb.Indent = col.decl
	renderDecls(&cb, ctx.budget(), cont, widths, fields)
	cb.Indent = col.block
	writeStatement(&cb, ctx.budget(), cont, "end type ", name)
	return cb.String()
}
