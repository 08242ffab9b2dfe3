/*
Package charset implements the character-set algebra collaborator
described in §6 of the meta-grammar specification: closed sets of
codepoints over the Unicode scalar range 0..0x10FFFF, plus the reserved
augment value 0x200000 used as an end-of-rule sentinel by the parser core.

A Set is consumed by the core through an interface, so that a host may
swap in a different character-set library; this package additionally
ships a concrete, range-list implementation (RangeSet) since the core
must be runnable standalone.

License

Governed by a 3-Clause BSD license, in the spirit of the project this
module's design is descended from.
*/
package charset
