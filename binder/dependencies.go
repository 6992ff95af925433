package binder

import "github.com/refaktor/fwrapgen/typemap"

// Dependencies tracks the derived types used while generating code, in
// the order they were first used.
type Dependencies struct {
	Types []string

	seen map[string]struct{}
}

func NewDependencies() *Dependencies {
	return &Dependencies{
		seen: make(map[string]struct{}),
	}
}

func (deps *Dependencies) MarkUsed(m typemap.Mapping) {
	if m.Derived == "" {
		return
	}
	if _, ok := deps.seen[m.Derived]; ok {
		return
	}
	deps.seen[m.Derived] = struct{}{}
	deps.Types = append(deps.Types, m.Derived)
}
