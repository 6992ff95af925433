package binder

import (
	"github.com/refaktor/fwrapgen/binder/binderio"
	"github.com/refaktor/fwrapgen/typemap"
)

// wrapperDecl is a wrapper declaration in three aligned columns.
type wrapperDecl struct {
	typ, intent, attr string
	name              string
}

func intent(p param) string {
	switch {
	case p.Passing == typemap.ByValue || p.handle() || p.Const:
		return "intent(in)"
	case p.OutputOnly:
		return "intent(out)"
	default:
		return "intent(inout)"
	}
}

func newWrapperDecl(p param) wrapperDecl {
	d := wrapperDecl{
		typ:    p.Decl,
		intent: intent(p),
		name:   p.Name,
	}
	switch {
	case p.handle():
	case p.Passing == typemap.ByAddress:
		d.attr = "target"
		if p.Array {
			d.name += "(*)"
		}
	case p.Passing == typemap.Deferred:
		d.attr = "pointer"
	}
	return d
}

func returnDecl(sig *signature) wrapperDecl {
	d := wrapperDecl{
		typ:    sig.ret.Decl,
		intent: "intent(out)",
		name:   sig.retName,
	}
	if sig.ret.Passing == typemap.ByAddress && !sig.ret.Opaque {
		d.attr = "pointer"
	}
	return d
}

// wrapperCols returns the declaration columns of d. Separators stay
// with the column before them.
func wrapperCols(d wrapperDecl) []string {
	if d.attr == "" {
		return []string{d.typ + ", ", d.intent}
	}
	return []string{d.typ + ", ", d.intent + ", ", d.attr}
}

// callArg returns what the wrapper passes to the interface for p.
func callArg(p param) string {
	switch {
	case p.file():
		return "c_null_ptr"
	case p.handle():
		return p.Name
	case p.Passing == typemap.ByAddress:
		return "c_loc(" + p.Name + ")"
	case p.Passing == typemap.Deferred:
		return p.aux()
	default:
		return p.Name
	}
}

func generateWrapper(ctx *Context, sig *signature) string {
	col := ctx.columns()
	budget := ctx.budget()

	var sigNames, callArgs []string
	var decls []wrapperDecl
	for _, p := range sig.params {
		callArgs = append(callArgs, callArg(p))
		if p.file() {
			continue
		}
		sigNames = append(sigNames, p.Name)
		decls = append(decls, newWrapperDecl(p))
	}
	if sig.ret != nil {
		sigNames = append(sigNames, sig.retName)
		decls = append(decls, returnDecl(sig))
	}
	deferred := sig.deferred()

	var cb binderio.CodeBuilder
	cb.Indent = col.block
	writeStatement(&cb, budget, col.wrapCont, "subroutine "+sig.symbol+"(", argList(sigNames, ")")...)
	cb.Indent = col.wrapBody
	cb.Linef("use iso_c_binding")
	cb.Linef("implicit none")
	lines := make([]declLine, len(decls))
	for i, d := range decls {
		lines[i] = declLine{cols: wrapperCols(d), name: d.name}
	}
	renderDecls(&cb, budget, col.wrapCont, measureDecls(lines), lines)
	cb.Blank()

	if len(deferred) != 0 {
		for _, p := range deferred {
			writeStatement(&cb, budget, col.wrapCont, typemap.OpaqueDecl, " :: ", p.aux())
		}
		cb.Blank()
	}

	switch {
	case sig.ret == nil:
		writeStatement(&cb, budget, col.callCont, "call "+sig.iface+"(", argList(callArgs, ")")...)
	case sig.ret.Passing == typemap.ByAddress && !sig.ret.Opaque:
		toks := append([]string{sig.iface + "("}, argList(callArgs, "), "+sig.retName+")")...)
		writeStatement(&cb, budget, col.callCont, "call c_f_pointer(", toks...)
	default:
		writeStatement(&cb, budget, col.callCont, sig.retName+" = "+sig.iface+"(", argList(callArgs, ")")...)
	}
	for _, p := range deferred {
		writeStatement(&cb, budget, col.callCont, "call c_f_pointer(", p.aux()+", ", p.Name+")")
	}

	cb.Indent = col.block
	writeStatement(&cb, budget, col.wrapCont, "end subroutine ", sig.symbol)
	return cb.String()
}
