/*
Package reduction implements the RNGLR reduction-action primitive of §4.4:
the value-type record (head_idx, length), its equality, hash, and a
structural printer, plus a per-state set that enforces the "no duplicate
actions per state" invariant during table construction.

License

Governed by a 3-Clause BSD license, in the spirit of the project this
module's design is descended from.
*/
package reduction
