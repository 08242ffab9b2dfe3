/*
Package fold implements the meta-AST folder of §4.2: two orthogonal
rewrite passes, fold_charsets and fold_strings, run to a fixed point.

Folding never changes the language a sub-tree denotes (§4.2's preserved
invariant); it only canonicalizes representation. The folder owns replaced
sub-trees and releases them (§9) — in Go terms, a folded-away node simply
becomes unreachable once its parent's slot is overwritten, so "freeing" is
left to the garbage collector, matching how value ownership already works
in package metaast.

License

Governed by a 3-Clause BSD license, in the spirit of the project this
module's design is descended from.
*/
package fold
