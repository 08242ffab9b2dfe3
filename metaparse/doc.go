/*
Package metaparse implements the meta-parser of §4.1: a Pratt-style
precedence parser that consumes an ordered, random-access sequence of
meta-tokens and emits a metaast.Node tree, or a fatal ParseError.

The token model (Token, TokenKind, TokenStream) is the collaborator
interface named in §6 ("an ordered sequence of meta-tokens"); the actual
meta-tokenizer that turns raw grammar source into a TokenStream is treated
as an external collaborator per §1's scope statement. This package does,
however, ship a reference Tokenizer (tokenizer.go) covering the surface
grammar of §6, so the pipeline is runnable and testable standalone without
requiring a host to supply one.

License

Governed by a 3-Clause BSD license, in the spirit of the project this
module's design is descended from.
*/
package metaparse
