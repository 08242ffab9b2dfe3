/*
Package symtab implements the Symbol Store described in §4.3 of the
meta-grammar specification: a process-lifetime (or, here, compilation-
lifetime) append-only interning table mapping every distinct terminal,
non-terminal, or character-set value to a stable integer index.

It generalizes the single string-keyed symbol table of a typical
interpreter runtime (value → Tag) into three parallel indexes — by
identifier name, by string literal, and by charset value — over one dense
backing array, so that every kind of grammar symbol shares one index
space.

License

Governed by a 3-Clause BSD license, in the spirit of the project this
module's design is descended from.
*/
package symtab
