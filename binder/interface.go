package binder

import (
	"github.com/refaktor/fwrapgen/binder/binderio"
	"github.com/refaktor/fwrapgen/typemap"
)

// interfaceDecl returns the declaration columns of an argument on the
// ABI side. Only deferred handles are passed by reference.
func interfaceDecl(m typemap.Mapping) []string {
	switch m.Passing {
	case typemap.ByValue:
		return []string{m.Decl + ", ", "value"}
	case typemap.ByAddress:
		return []string{typemap.OpaqueDecl + ", ", "value"}
	default:
		return []string{typemap.OpaqueDecl}
	}
}

func generateInterface(ctx *Context, sig *signature) string {
	col := ctx.columns()
	budget := ctx.budget()

	kind := "subroutine"
	if sig.ret != nil {
		kind = "function"
	}

	names := make([]string, len(sig.params))
	for i, p := range sig.params {
		names[i] = p.Name
	}

	var decls []declLine
	if sig.ret != nil {
		decls = append(decls, declLine{cols: []string{sig.ret.InterfaceDecl()}, name: sig.iface})
	}
	for _, p := range sig.params {
		decls = append(decls, declLine{cols: interfaceDecl(p.Mapping), name: p.Name})
	}

	var cb binderio.CodeBuilder
	cb.Indent = col.block
	cb.Linef("interface")
	cb.Indent = col.decl
	writeStatement(&cb, budget, col.ifaceCont, kind+" "+sig.iface+"(", argList(names, ") &")...)
	cb.Indent = col.ifaceCont
	writeStatement(&cb, budget, col.ifaceCont, "bind(c, ", "name='"+sig.symbol+"')")
	cb.Indent = col.ifaceBody
	cb.Linef("use iso_c_binding")
	for _, typ := range sig.deps.Types {
		writeStatement(&cb, budget, col.ifaceCont, "import ", typ)
	}
	cb.Linef("implicit none")
	renderDecls(&cb, budget, col.ifaceCont, measureDecls(decls), decls)
	cb.Indent = col.decl
	writeStatement(&cb, budget, col.ifaceCont, "end "+kind+" ", sig.iface)
	cb.Indent = col.block
	cb.Linef("end interface")
	return cb.String()
}
