package cfg

import (
	"fmt"
	"strings"

	"github.com/dewy-lang/metagrammar/symtab"
)

// Preference annotates a Production synthesized from a GreaterThan/LessThan
// disambiguation node. Plain CFG productions carry no preference; a GLR
// table builder downstream (out of scope here, §1 Non-goals: "a full GLR
// parser driver") is the intended consumer of this annotation during
// conflict resolution.
type Preference int8

const (
	// NoPreference marks an ordinary production.
	NoPreference Preference = iota
	// PreferLonger marks a production synthesized from the greedy/longer
	// (`>`) disambiguation operator.
	PreferLonger
	// PreferShorter marks a production synthesized from the non-greedy/
	// shorter (`<`) disambiguation operator.
	PreferShorter
)

// Production is `head_idx : [rhs_idx_0, rhs_idx_1, …]` (§3): a head-symbol
// index plus an ordered, possibly empty, right-hand sequence of symbol
// indices. An empty RHS represents epsilon.
type Production struct {
	Head symtab.Index
	RHS  []symtab.Index

	// Pref carries a disambiguation preference when this production was
	// synthesized from GreaterThan/LessThan; NoPreference otherwise.
	Pref Preference

	// NotFollowedBy and HasNotFollowedBy carry the forbidden lookahead
	// symbol when this production was synthesized from a NoFollow (`#`)
	// node's left operand: the production matches only where
	// NotFollowedBy's symbol does not immediately follow. Unlike
	// GreaterThan/LessThan, the right operand is never itself a valid
	// derivation of Head, so it is never emitted as a sibling production —
	// only carried here as the constraint a GLR-time lookahead check (out
	// of scope here, §1) would consult. HasNotFollowedBy distinguishes "no
	// constraint" from a constraint referencing symbol index 0.
	NotFollowedBy    symtab.Index
	HasNotFollowedBy bool
}

// String renders a Production using the store to resolve symbol names:
// identifiers and strings by their text, anonymous symbols by their "#n"
// name, charsets as "#<index><charset>", and indices the store does not
// hold as bare "#<index>".
func (p Production) String(store *symtab.Store) string {
	var b strings.Builder
	b.WriteString(symbolName(store, p.Head))
	b.WriteString(" : [")
	for i, idx := range p.RHS {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(symbolName(store, idx))
	}
	b.WriteString("]")
	if p.HasNotFollowedBy {
		b.WriteString(" #")
		b.WriteString(symbolName(store, p.NotFollowedBy))
	}
	return b.String()
}

func symbolName(store *symtab.Store, idx symtab.Index) string {
	sym, ok := store.Get(idx)
	if !ok {
		return fmt.Sprintf("#%d", idx)
	}
	switch sym.Kind {
	case symtab.Identifier, symtab.StringLiteral:
		return fmt.Sprintf("%v", sym.Value)
	case symtab.Anonymous:
		return fmt.Sprintf("%v", sym.Value)
	default:
		return fmt.Sprintf("#%d<%s>", idx, sym.Kind)
	}
}
