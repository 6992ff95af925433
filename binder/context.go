package binder

import (
	"slices"

	"github.com/refaktor/fwrapgen/config"
	"github.com/refaktor/fwrapgen/typemap"
)

// Immutable
type Context struct {
	Config *config.Config
	Types  *typemap.Mapper
}

// NewContext returns a context for generating the declarations of one
// unit. derived lists the structs of the unit, which may be referenced
// in addition to the configured derived types.
func NewContext(cfg *config.Config, derived ...string) *Context {
	names := slices.Concat(cfg.DerivedTypes, derived)
	return &Context{
		Config: cfg,
		Types:  typemap.New(cfg.Types, names...),
	}
}

// columns are the start columns of the emitted statements, derived from
// the layout.
type columns struct {
	block     int // interface, subroutine, type and enum statements
	decl      int // interface functions, struct fields, enumerators
	ifaceBody int
	ifaceCont int
	wrapBody  int
	wrapCont  int
	callCont  int
}

func (ctx *Context) columns() columns {
	l := ctx.Config.Layout
	c := columns{
		block: l.Margin,
		decl:  l.Margin + l.Indent,
	}
	c.ifaceBody = c.decl + l.Tab
	c.ifaceCont = c.ifaceBody + l.Indent
	c.wrapBody = c.block + l.Tab
	c.wrapCont = c.wrapBody + l.Indent
	c.callCont = c.wrapCont + l.Tab
	return c
}

func (ctx *Context) budget() int {
	return ctx.Config.Layout.Budget
}
