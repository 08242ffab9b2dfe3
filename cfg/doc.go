/*
Package cfg lowers a folded meta-AST into a conventional context-free
grammar of symbol strings: Productions of the form head_idx -> [rhs...],
as described in §3 and the "CFG Lowerer" collaborator interface of §6.

Walk exposes the post-order AST iteration §6 names explicitly
("Iteration over the folded AST in post-order, yielding CFG productions to
a consumer callback"); Lower is a reference lowering that produces
productions in the same post-order through its own recursive descent (it
does not call Walk), since the meta-grammar core otherwise has no runnable
lowering strategy to test against.

License

Governed by a 3-Clause BSD license, in the spirit of the project this
module's design is descended from.
*/
package cfg
