/*
Package metagrammar implements the core of a compiler front-end for a
grammar-based language ("Dewy"): a meta-grammar parser that reads a rich
BNF-like syntax and builds an abstract grammar tree, constant-folding and
normalization of that tree into a conventional context-free grammar of
symbol strings, and an RNGLR (Right-Nulled Generalized LR) reduction-action
record used during generalized parsing of ambiguous grammars.

The pipeline is a unidirectional chain of transformations over a shared
symbol store:

	tokens → meta-AST (metaast) → folded AST (fold) → CFG productions (cfg) → reduction actions (reduction)

Sub-packages

	charset    character-set algebra (union, intersect, complement, ...)
	symtab     append-only interning table for terminals/non-terminals
	metaast    the tagged meta-AST node type and its constructors
	metaparse  the Pratt-style precedence parser and token model
	fold       constant-folding rewrite passes over a meta-AST
	cfg        CFG lowering (productions) from a folded meta-AST
	reduction  the RNGLR reduction-action primitive and its per-state sets
	print      structural and surface-syntax pretty-printing

This module does not implement a full GLR parser driver or runtime code
generation: those are treated as external collaborators (see §6 of the
specification this module implements) or are explicitly out of scope. The
meta-tokenizer is also an external collaborator, but metaparse ships a
reference Tokenizer so that Compile can run the pipeline from source text.


License

Governed by a 3-Clause BSD license, in the spirit of the project this
module's design is descended from.
*/
package metagrammar
