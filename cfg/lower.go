package cfg

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"

	"github.com/dewy-lang/metagrammar/fold"
	"github.com/dewy-lang/metagrammar/metaast"
	"github.com/dewy-lang/metagrammar/symtab"
)

func tracer() tracing.Trace {
	return gtrace.SyntaxTracer
}

// LowerError reports a folded AST node that Lower cannot turn into a
// production: a set operator that still has a non-charset operand (§7
// kind 3: the folder had its chance to resolve it and didn't), or a tag
// Lower has no lowering rule for at all.
type LowerError struct {
	Op string
}

func (e *LowerError) Error() string {
	return "cfg: cannot lower " + e.Op + " node to a production"
}

// Walk performs the post-order traversal named in §6 ("iteration over the
// folded AST in post-order"), visiting every child before its parent.
// Lower does not use Walk; it lowers through its own recursive descent.
func Walk(root *metaast.Node, visit func(*metaast.Node)) {
	if root == nil {
		return
	}
	Walk(root.Inner, visit)
	Walk(root.Left, visit)
	Walk(root.Right, visit)
	for _, ch := range root.Children {
		Walk(ch, visit)
	}
	visit(root)
}

// Lowerer is the "CFG Lowerer" collaborator of §2 item 4 / §6: it turns a
// folded meta-AST into a set of Productions, fed to a consumer callback
// during a post-order walk. Nothing in this package implements Lowerer: the
// package-level Lower function below has a different signature (it returns
// the productions as a slice instead of feeding emit). A host is free to
// supply its own (e.g. one that skips synthesizing anonymous non-terminals
// for sub-expressions it represents differently).
type Lowerer interface {
	Lower(root *metaast.Node, store *symtab.Store, emit func(Production)) (symtab.Index, error)
}

// lowering holds the mutable state threaded through a single Lower call:
// the shared symbol store and the productions emitted so far.
type lowering struct {
	store *symtab.Store
	emit  func(Production)
}

// Lower is the reference lowering. It walks root post-order, emitting the
// Productions that define each synthesized non-terminal (one for Cat, Eps
// and NoFollow; two for Star, Plus, Option, Or, GreaterThan and LessThan),
// and returns the index of the
// symbol that denotes the whole tree (the grammar's start symbol, when
// root is a whole grammar's top-level expression).
//
// Repetition and alternation constructs (Star, Plus, Option, Or, Cat) have
// no single existing symbol to denote them, so Lower mints a fresh
// Anonymous symbol via store.NewAnonymous and emits the productions that
// define it. Identifier references are left as references — Lower never
// emits a production for the rule a caller must define elsewhere.
func Lower(root *metaast.Node, store *symtab.Store) ([]Production, symtab.Index, error) {
	var productions []Production
	lw := &lowering{store: store, emit: func(p Production) {
		productions = append(productions, p)
	}}
	head, err := lw.lowerSym(root)
	if err != nil {
		return nil, 0, err
	}
	return productions, head, nil
}

// lowerSeq returns the RHS sequence node contributes when used inline
// within a concatenation: the empty sequence for Eps, a single symbol for
// a terminal or reference, the flattened sequence of a Cat's children, or
// (as a fallback) a single synthesized symbol for anything else.
func (lw *lowering) lowerSeq(n *metaast.Node) ([]symtab.Index, error) {
	switch n.Tag {
	case metaast.Eps:
		return nil, nil
	case metaast.StringLit:
		return []symtab.Index{lw.store.InternString(string(n.Codepoints))}, nil
	case metaast.IdentifierTag:
		return []symtab.Index{lw.store.InternIdentifier(string(n.Codepoints))}, nil
	case metaast.CharsetTag:
		return []symtab.Index{lw.store.InternCharset(n.Set)}, nil
	case metaast.CaselessTag:
		return lw.lowerSeq(n.Inner)
	case metaast.Capture:
		// Capture marks a sub-tree for the GLR semantic-action layer; it
		// is transparent to the productions a plain CFG sees (§1
		// Non-goals excludes the runtime that would consume capture
		// boundaries).
		return lw.lowerSeq(n.Inner)
	case metaast.Cat:
		var seq []symtab.Index
		for _, ch := range n.Children {
			s, err := lw.lowerSeq(ch)
			if err != nil {
				return nil, err
			}
			seq = append(seq, s...)
		}
		return seq, nil
	default:
		sym, err := lw.lowerSym(n)
		if err != nil {
			return nil, err
		}
		return []symtab.Index{sym}, nil
	}
}

// lowerSym returns a single symbol index denoting the whole of n, minting
// an anonymous non-terminal and emitting its defining productions when n
// has no single existing symbol of its own.
func (lw *lowering) lowerSym(n *metaast.Node) (symtab.Index, error) {
	switch n.Tag {
	case metaast.Eps:
		head := lw.store.NewAnonymous()
		lw.emit(Production{Head: head})
		return head, nil
	case metaast.StringLit:
		return lw.store.InternString(string(n.Codepoints)), nil
	case metaast.IdentifierTag:
		return lw.store.InternIdentifier(string(n.Codepoints)), nil
	case metaast.CharsetTag:
		return lw.store.InternCharset(n.Set), nil
	case metaast.CaselessTag:
		return lw.lowerSym(n.Inner)
	case metaast.Capture:
		return lw.lowerSym(n.Inner)

	case metaast.Cat:
		seq, err := lw.lowerSeq(n)
		if err != nil {
			return 0, err
		}
		head := lw.store.NewAnonymous()
		lw.emit(Production{Head: head, RHS: seq})
		return head, nil

	case metaast.Or:
		return lw.lowerAlternatives(n.Left, n.Right, NoPreference)
	case metaast.GreaterThan:
		return lw.lowerAlternatives(n.Left, n.Right, PreferLonger)
	case metaast.LessThan:
		return lw.lowerAlternatives(n.Left, n.Right, PreferShorter)

	case metaast.NoFollow:
		// Unlike Or/GreaterThan/LessThan, the right operand of `#` is not
		// an alternative derivation of head — it is the lookahead symbol
		// head's match must not be followed by. Emitting it as a sibling
		// production (as an earlier version of this lowering did) would
		// wrongly make it a valid parse of head in its own right.
		leftSeq, err := lw.lowerSeq(n.Left)
		if err != nil {
			return 0, err
		}
		rightSym, err := lw.lowerSym(n.Right)
		if err != nil {
			return 0, err
		}
		head := lw.store.NewAnonymous()
		lw.emit(Production{Head: head, RHS: leftSeq, NotFollowedBy: rightSym, HasNotFollowedBy: true})
		return head, nil

	case metaast.Star, metaast.Plus:
		inner, err := lw.lowerSeq(n.Inner)
		if err != nil {
			return 0, err
		}
		head := lw.store.NewAnonymous()
		// n.MinCount() tells the base case apart: Star (0) bottoms out at
		// eps, Plus (1) bottoms out at one copy of inner.
		if n.MinCount() == 0 {
			lw.emit(Production{Head: head}) // head -> eps
		} else {
			lw.emit(Production{Head: head, RHS: inner}) // head -> inner
		}
		rhs := append(append([]symtab.Index(nil), head), inner...)
		lw.emit(Production{Head: head, RHS: rhs}) // head -> head inner
		return head, nil

	case metaast.Option:
		inner, err := lw.lowerSeq(n.Inner)
		if err != nil {
			return 0, err
		}
		head := lw.store.NewAnonymous()
		lw.emit(Production{Head: head})           // head -> eps
		lw.emit(Production{Head: head, RHS: inner}) // head -> inner
		return head, nil

	case metaast.CountTag:
		// §8 scenario: a bounded repetition lowers to a Cat of n copies of
		// its inner node. That Cat is freshly synthesized here, so it never
		// passed through the tree-wide fold; give it the same one more
		// fold_strings chance the rest of the tree already had, so "ab"3
		// lowers the same way "ab" "ab" "ab" would: to string("ababab"),
		// not three separate terminals.
		copies := make([]*metaast.Node, n.Count)
		for i := range copies {
			copies[i] = n.Inner
		}
		expanded, _, err := fold.Fold(metaast.NewCat(copies...))
		if err != nil {
			return 0, err
		}
		return lw.lowerSym(expanded)

	case metaast.Complement, metaast.Intersect, metaast.Reject:
		// These are set operators (§3: "compliment and intersect operate
		// only over set-valued sub-trees"); a folded AST that still
		// contains one applied to non-charset operands is the §7 kind 3
		// fatal "malformed set operation".
		return 0, &LowerError{Op: n.Tag.String()}

	default:
		tracer().Errorf("cfg: lower: unhandled tag %s", n.Tag)
		return 0, &LowerError{Op: n.Tag.String()}
	}
}

// lowerAlternatives lowers an Or/GreaterThan/LessThan node into a fresh
// non-terminal with one production per branch, annotated with the given
// preference.
func (lw *lowering) lowerAlternatives(left, right *metaast.Node, pref Preference) (symtab.Index, error) {
	leftSeq, err := lw.lowerSeq(left)
	if err != nil {
		return 0, err
	}
	rightSeq, err := lw.lowerSeq(right)
	if err != nil {
		return 0, err
	}
	head := lw.store.NewAnonymous()
	lw.emit(Production{Head: head, RHS: leftSeq, Pref: pref})
	lw.emit(Production{Head: head, RHS: rightSeq, Pref: pref})
	return head, nil
}
