package binder

import (
	"strings"

	"github.com/iancoleman/strcase"
	"go.uber.org/zap"

	"github.com/refaktor/fwrapgen/descriptor"
	"github.com/refaktor/fwrapgen/typemap"
)

// FunctionBinding holds the generated code of one native function.
type FunctionBinding struct {
	Symbol string
	// Interface is the low-level interface block bound to Symbol.
	Interface string
	// Wrapper is the subroutine named Symbol that calls the interface.
	Wrapper string
}

// param is a function argument and its mapping.
type param struct {
	descriptor.Arg
	typemap.Mapping
}

// file reports whether p is a file handle, which wrappers never
// forward.
func (p param) file() bool {
	return p.Type.Kind == descriptor.File
}

// handle reports whether p is an opaque pointer. Wrappers take and
// forward it as a handle value.
func (p param) handle() bool {
	return p.Opaque && p.Passing == typemap.ByAddress
}

// aux returns the name of the local holding the handle of a deferred
// argument.
func (p param) aux() string {
	return p.Name + "_aux"
}

// signature is a function with all its types mapped and all generated
// names checked.
type signature struct {
	symbol string
	iface  string
	params []param
	// ret is nil for functions returning nothing.
	ret *typemap.Mapping
	// retName is the wrapper's output parameter for the return value.
	retName string
	deps    *Dependencies
}

func (sig *signature) deferred() []param {
	var res []param
	for _, p := range sig.params {
		if p.Passing == typemap.Deferred && !p.file() {
			res = append(res, p)
		}
	}
	return res
}

// useType records a derived type the function refers to, at any level
// of indirection. The interface imports all of them.
func (sig *signature) useType(m typemap.Mapping) {
	sig.deps.MarkUsed(m)
}

// ReturnName returns the name of the output parameter a wrapper gets
// for a return value of type t.
func ReturnName(ctx *Context, t descriptor.Type) string {
	if name, ok := ctx.Config.ReturnNames[t.Name]; ok {
		return name
	}
	return strcase.ToSnake(strings.TrimSuffix(t.Name, "_t"))
}

func bindSignature(ctx *Context, f descriptor.Function) (*signature, error) {
	fnErr := func(i int, name string, err error) error {
		return &Error{What: whatFunction, Decl: f.Symbol, Index: i, Name: name, Err: err}
	}

	if err := checkName("function", f.Symbol); err != nil {
		return nil, fnErr(-1, "", err)
	}
	names, err := validateArgs(whatFunction, f.Symbol, f.Args)
	if err != nil {
		return nil, err
	}

	sig := &signature{
		symbol: f.Symbol,
		iface:  f.Symbol + ctx.Config.Suffix,
		deps:   NewDependencies(),
	}
	if strings.EqualFold(sig.iface, sig.symbol) {
		return nil, fnErr(-1, "", collision("interface name %v equals the wrapper name", sig.iface))
	}
	if !isIdent(sig.iface) {
		return nil, fnErr(-1, "", malformed("invalid interface name %q", sig.iface))
	}
	if names.has(sig.symbol) {
		return nil, fnErr(names[strings.ToLower(sig.symbol)], sig.symbol, collision("argument name equals the function name"))
	}
	if names.has(sig.iface) {
		return nil, fnErr(names[strings.ToLower(sig.iface)], sig.iface, collision("argument name equals the interface name"))
	}

	if rt := f.ReturnType(); !rt.IsVoid() {
		m, err := ctx.Types.Map(rt, typemap.Return)
		if err != nil {
			return nil, fnErr(-1, "return value", mapError(err))
		}
		if m.Passing == typemap.Deferred {
			return nil, fnErr(-1, "return value", malformed("double-pointer return values cannot be resolved"))
		}
		sig.ret = &m
		sig.retName = ReturnName(ctx, rt)
		if !isIdent(sig.retName) {
			return nil, fnErr(-1, "return value", malformed("invalid return value name %q", sig.retName))
		}
		if names.has(sig.retName) {
			return nil, fnErr(names[strings.ToLower(sig.retName)], sig.retName, collision("argument name equals the return value name"))
		}
		if strings.EqualFold(sig.retName, sig.symbol) || strings.EqualFold(sig.retName, sig.iface) {
			return nil, fnErr(-1, "return value", collision("return value name %v equals the function name", sig.retName))
		}
		sig.useType(m)
	}

	for i, a := range f.Args {
		if err := validateFlags(f.Symbol, i, a); err != nil {
			return nil, err
		}
		m, err := ctx.Types.Map(a.Type, typemap.Argument)
		if err != nil {
			return nil, fnErr(i, a.Name, mapError(err))
		}
		p := param{Arg: a, Mapping: m}
		if p.Passing == typemap.Deferred && !p.file() {
			if prev, ok := names[strings.ToLower(p.aux())]; ok {
				return nil, fnErr(prev, f.Args[prev].Name, collision("argument name equals the handle of argument %v", a.Name))
			}
			if sig.ret != nil && strings.EqualFold(p.aux(), sig.retName) {
				return nil, fnErr(i, a.Name, collision("handle %v equals the return value name", p.aux()))
			}
		}
		sig.useType(m)
		sig.params = append(sig.params, p)
	}
	return sig, nil
}

// GenerateFunction generates the interface and the wrapper of f. Either
// both are returned or an error.
func GenerateFunction(ctx *Context, f descriptor.Function) (*FunctionBinding, error) {
	sig, err := bindSignature(ctx, f)
	if err != nil {
		return nil, err
	}
	res := &FunctionBinding{
		Symbol:    f.Symbol,
		Interface: generateInterface(ctx, sig),
		Wrapper:   generateWrapper(ctx, sig),
	}
	Logger().Debug("generated function binding",
		zap.String("symbol", f.Symbol),
		zap.String("interface", sig.iface),
		zap.Int("args", len(sig.params)),
		zap.Strings("imports", sig.deps.Types))
	return res, nil
}
