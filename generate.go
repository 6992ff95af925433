package fwrapgen

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"

	"github.com/refaktor/fwrapgen/binder"
	"github.com/refaktor/fwrapgen/config"
	"github.com/refaktor/fwrapgen/descriptor"
	"github.com/refaktor/fwrapgen/digraphutils"
	"github.com/refaktor/fwrapgen/unit"
)

// Categories of declarations, as used in [Result.Stats].
const (
	CategoryEnum     = "enum"
	CategoryStruct   = "struct"
	CategoryFunction = "function"
)

// Block is the generated code of an enum or struct.
type Block struct {
	Name string
	Code string
}

// Stats counts the declarations of one category.
type Stats struct {
	Total   int
	Written int
	// Skipped counts functions disabled in the binding list.
	Skipped int
	Failed  int
}

// Result holds the generated code of one unit. Every slice is in the
// order of the declarations in the input.
type Result struct {
	Enums     []Block
	Structs   []Block
	Functions []*binder.FunctionBinding
	// Skipped lists the functions disabled in the binding list.
	Skipped []string
	Stats   map[string]*Stats
}

// Blocks returns the code for [unit.Assemble].
func (r *Result) Blocks() unit.Blocks {
	var b unit.Blocks
	for _, e := range r.Enums {
		b.Enums = append(b.Enums, e.Code)
	}
	for _, s := range r.Structs {
		b.Structs = append(b.Structs, s.Code)
	}
	for _, fb := range r.Functions {
		b.Interfaces = append(b.Interfaces, fb.Interface)
		b.Wrappers = append(b.Wrappers, fb.Wrapper)
	}
	return b
}

// scope holds the names declared at module level. Names are compared
// case-insensitively.
type scope map[string]string

// declare records names for owner. If one of them is taken, none is
// recorded and its index is returned with the error.
func (s scope) declare(owner string, names ...string) (int, error) {
	for i, name := range names {
		if prev, ok := s[strings.ToLower(name)]; ok {
			return i, fmt.Errorf("%w: %v is already declared by %v", binder.ErrSymbolCollision, name, prev)
		}
	}
	for _, name := range names {
		s[strings.ToLower(name)] = owner
	}
	return -1, nil
}

// Generate generates the code of every declaration in set. Functions
// disabled in bindingList (which may be nil) are skipped.
//
// A declaration that cannot be generated is left out of the result; the
// others are still generated. If any failed, the returned error is a
// [*multierror.Error] holding one [*binder.Error] per failure, and the
// result is still valid.
func Generate(cfg *config.Config, set *descriptor.Set, bindingList *config.BindingList) (*Result, error) {
	// Pointer fields may reference any struct of the set.
	structCtx := binder.NewContext(cfg, set.StructNames()...)
	res := &Result{
		Stats: map[string]*Stats{
			CategoryEnum:     {Total: len(set.Enums)},
			CategoryStruct:   {Total: len(set.Structs)},
			CategoryFunction: {Total: len(set.Functions)},
		},
	}
	names := make(scope)

	var resErr error
	fail := func(category string, err error) {
		res.Stats[category].Failed++
		resErr = multierror.Append(resErr, err)
		Logger().Debug("declaration failed", zap.String("category", category), zap.Error(err))
	}

	for _, e := range set.Enums {
		code, err := binder.GenerateEnum(structCtx, e)
		if err == nil {
			values := make([]string, len(e.Values))
			for i, v := range e.Values {
				values[i] = v.Name
			}
			if i, dErr := names.declare("enum "+e.Name, values...); dErr != nil {
				err = &binder.Error{What: CategoryEnum, Decl: e.Name, Index: i, Name: values[i], Err: dErr}
			}
		}
		if err != nil {
			fail(CategoryEnum, err)
			continue
		}
		res.Enums = append(res.Enums, Block{Name: e.Name, Code: code})
		res.Stats[CategoryEnum].Written++
	}

	structs, cyclic := orderStructs(set.Structs)
	for _, s := range cyclic {
		fail(CategoryStruct, &binder.Error{What: CategoryStruct, Decl: s.Name, Index: -1,
			Err: fmt.Errorf("%w: struct contains itself by value", binder.ErrMalformedDescriptor)})
	}
	inSet := make(map[string]bool, len(set.Structs))
	for _, s := range set.Structs {
		inSet[s.Name] = true
	}
	written := make(map[string]bool, len(set.Structs))
	for _, s := range structs {
		err := missingMember(s, inSet, written)
		var code string
		if err == nil {
			code, err = binder.GenerateStruct(structCtx, s)
		}
		if err == nil {
			if _, dErr := names.declare("struct "+s.Name, s.Name); dErr != nil {
				err = &binder.Error{What: CategoryStruct, Decl: s.Name, Index: -1, Err: dErr}
			}
		}
		if err != nil {
			fail(CategoryStruct, err)
			continue
		}
		written[s.Name] = true
		res.Structs = append(res.Structs, Block{Name: s.Name, Code: code})
		res.Stats[CategoryStruct].Written++
	}

	// Functions only see the structs that were emitted.
	declared := make([]string, len(res.Structs))
	for i, b := range res.Structs {
		declared[i] = b.Name
	}
	fnCtx := binder.NewContext(cfg, declared...)
	for _, f := range set.Functions {
		if !bindingList.IsEnabled(f.Symbol) {
			res.Skipped = append(res.Skipped, f.Symbol)
			res.Stats[CategoryFunction].Skipped++
			Logger().Debug("function disabled", zap.String("symbol", f.Symbol))
			continue
		}
		fb, err := binder.GenerateFunction(fnCtx, f)
		if err == nil {
			if _, dErr := names.declare("function "+f.Symbol, f.Symbol, f.Symbol+cfg.Suffix); dErr != nil {
				err = &binder.Error{What: CategoryFunction, Decl: f.Symbol, Index: -1, Err: dErr}
			}
		}
		if err != nil {
			fail(CategoryFunction, err)
			continue
		}
		res.Functions = append(res.Functions, fb)
		res.Stats[CategoryFunction].Written++
	}

	Logger().Info("generated unit",
		zap.Int("enums", len(res.Enums)),
		zap.Int("structs", len(res.Structs)),
		zap.Int("functions", len(res.Functions)),
		zap.Int("skipped", len(res.Skipped)))
	return res, resErr
}

// missingMember fails s if it contains a struct of the set by value that
// was not emitted.
func missingMember(s descriptor.Struct, inSet, written map[string]bool) error {
	for i, f := range s.Fields {
		if f.Type.Kind != descriptor.Derived || f.Type.Indirection != descriptor.None {
			continue
		}
		if inSet[f.Type.Name] && !written[f.Type.Name] {
			return &binder.Error{What: CategoryStruct, Decl: s.Name, Index: i, Name: f.Name,
				Err: fmt.Errorf("%w: struct %v failed", binder.ErrUnknownTypeMapping, f.Type.Name)}
		}
	}
	return nil
}

// structEdges returns, for each struct, the indices of the structs it
// contains by value.
func structEdges(structs []descriptor.Struct) func(int) []int {
	index := make(map[string]int, len(structs))
	for i, s := range structs {
		if _, ok := index[s.Name]; !ok {
			index[s.Name] = i
		}
	}
	return func(i int) []int {
		var res []int
		for _, f := range structs[i].Fields {
			if f.Type.Kind != descriptor.Derived || f.Type.Indirection != descriptor.None {
				continue
			}
			if j, ok := index[f.Type.Name]; ok {
				res = append(res, j)
			}
		}
		return res
	}
}

// orderStructs orders structs so that each comes after the structs it
// contains by value, which the target language requires to be declared
// first.
func orderStructs(structs []descriptor.Struct) (sorted, cyclic []descriptor.Struct) {
	nodes := make([]int, len(structs))
	for i := range nodes {
		nodes[i] = i
	}
	sortedIdx, cyclicIdx := digraphutils.TopoSort(nodes, structEdges(structs))
	for _, i := range sortedIdx {
		sorted = append(sorted, structs[i])
	}
	for _, i := range cyclicIdx {
		cyclic = append(cyclic, structs[i])
	}
	return sorted, cyclic
}

// StructGraph returns graphviz DOT code showing which structs of set
// contain which others by value.
func StructGraph(set *descriptor.Set) []byte {
	nodes := make([]int, len(set.Structs))
	for i := range nodes {
		nodes[i] = i
	}
	return digraphutils.DOTCode(nodes, structEdges(set.Structs), "structs", "node [shape=box]",
		func(i int) string {
			return fmt.Sprintf("[label=%q]", set.Structs[i].Name)
		})
}

// BindingDocs returns the C prototype of every function in set, keyed by
// symbol, as docstrings for [config.BindingList.Format].
func BindingDocs(set *descriptor.Set) map[string]string {
	docs := make(map[string]string, len(set.Functions))
	for _, f := range set.Functions {
		docs[f.Symbol] = f.String()
	}
	return docs
}
