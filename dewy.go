package metagrammar

import (
	"github.com/dewy-lang/metagrammar/cfg"
	"github.com/dewy-lang/metagrammar/fold"
	"github.com/dewy-lang/metagrammar/metaast"
	"github.com/dewy-lang/metagrammar/metaparse"
	"github.com/dewy-lang/metagrammar/symtab"
)

// Result is the output of running the whole pipeline in Compile: the
// folded meta-AST, the CFG productions lowered from it, and the symbol
// store every index in both refers into.
type Result struct {
	AST         *metaast.Node
	Productions []cfg.Production
	Store       *symtab.Store
	Start       symtab.Index
}

// Compile runs the full pipeline named in §2: tokenize, parse, fold to a
// fixed point, and lower to CFG productions, all against a fresh symbol
// store. It is the root package's reference wiring of the per-stage
// packages, analogous to how a driver ties together a scanner, parser and
// code generator in a conventional front end.
func Compile(src string) (*Result, error) {
	store := symtab.New()
	return CompileWith(src, store)
}

// CompileWith runs the pipeline against a caller-supplied store, so that
// multiple grammar fragments can be compiled into one shared symbol space
// (§5: "each [compilation] must own a separate symbol store" only when
// grammars are independent; sharing one store across fragments of the
// same grammar is the normal case).
func CompileWith(src string, store *symtab.Store) (*Result, error) {
	T().Debugf("metagrammar: compiling %d bytes", len(src))

	toks, err := metaparse.NewTokenizer(src).Tokenize()
	if err != nil {
		return nil, err
	}
	root, err := metaparse.Parse(toks)
	if err != nil {
		return nil, err
	}
	root, _, err = fold.Fold(root)
	if err != nil {
		return nil, err
	}

	productions, start, err := cfg.Lower(root, store)
	if err != nil {
		return nil, err
	}
	return &Result{
		AST:         root,
		Productions: productions,
		Store:       store,
		Start:       start,
	}, nil
}
