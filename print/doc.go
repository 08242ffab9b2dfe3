/*
Package print implements the two pretty-printing modes of §4.5: Repr, a
structural dump with indentation for debugging, and Surface, which
reproduces the grammar's own surface syntax, consulting the precedence
table from §4.1 to decide where parentheses are required.

License

Governed by a 3-Clause BSD license, in the spirit of the project this
module's design is descended from.
*/
package print
