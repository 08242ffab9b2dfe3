/*
Package metaast implements the meta-AST node type described in §3 of the
meta-grammar specification: a single tagged tree, re-architected (per §9)
as one exhaustive sum type rather than a tag-dispatched interface
hierarchy.

Ownership follows §9 exactly: every Node is owned by exactly one slot —
a parent's Inner/Left/Right/Children field, or the top-level driver for a
root — and folding (package fold) performs a move-and-replace by
overwriting that slot directly; there is no shared-pointer aliasing and no
reference counting.

License

Governed by a 3-Clause BSD license, in the spirit of the project this
module's design is descended from.
*/
package metaast
