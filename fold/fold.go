package fold

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"

	"github.com/dewy-lang/metagrammar/charset"
	"github.com/dewy-lang/metagrammar/metaast"
)

func tracer() tracing.Trace {
	return gtrace.SyntaxTracer
}

// SetOpError is the §7 kind 3 fatal error: a set operator applied to
// non-set children after folding has had a chance to resolve sub-trees to
// charsets. It indicates a grammar-author error, not a folder bug.
type SetOpError struct {
	Op string
}

func (e *SetOpError) Error() string {
	return "fold: set operator " + e.Op + " applied to non-set operand"
}

// Fold drives fold_charsets and fold_strings to a fixed point (§4.2: "the
// driver iterates until a full pass reports no change") and returns the
// folded root. This is the collaborator entry point named in §6 as
// `fold(&mut root) → changed: bool`; Go's value-ownership model makes it
// more idiomatic to return the (possibly replaced) root directly alongside
// the changed flag, rather than require callers to pass a pointer-to-
// pointer.
//
// Once the tree is at a fixed point, Fold validates it for the §7 kind 3
// error: a Complement/Intersect/Reject node whose operand(s) still don't
// resolve to a set, meaning folding had its chance and the grammar author's
// set operator is simply malformed.
func Fold(root *metaast.Node) (*metaast.Node, bool, error) {
	everChanged := false
	for {
		next, changed := FoldOnce(root)
		root = next
		if !changed {
			break
		}
		everChanged = true
	}
	if err := validateSetOps(root); err != nil {
		return root, everChanged, err
	}
	return root, everChanged, nil
}

// validateSetOps walks the fixed-point tree looking for a set operator
// whose operand(s) asSet still can't resolve — the same predicate
// foldCharsets uses, so a node flagged here is one foldCharsets already had
// every opportunity to collapse.
func validateSetOps(n *metaast.Node) error {
	if n == nil {
		return nil
	}
	switch n.Tag {
	case metaast.Complement:
		if _, ok := asSet(n.Inner); !ok {
			return &SetOpError{Op: n.Tag.String()}
		}
	case metaast.Intersect, metaast.Reject:
		if _, ok := asSet(n.Left); !ok {
			return &SetOpError{Op: n.Tag.String()}
		}
		if _, ok := asSet(n.Right); !ok {
			return &SetOpError{Op: n.Tag.String()}
		}
	}
	if err := validateSetOps(n.Inner); err != nil {
		return err
	}
	if err := validateSetOps(n.Left); err != nil {
		return err
	}
	if err := validateSetOps(n.Right); err != nil {
		return err
	}
	for _, ch := range n.Children {
		if err := validateSetOps(ch); err != nil {
			return err
		}
	}
	return nil
}

// FoldOnce runs a single bottom-up pass of both fold_charsets and
// fold_strings over the tree, reporting whether anything changed.
func FoldOnce(n *metaast.Node) (*metaast.Node, bool) {
	if n == nil {
		return nil, false
	}
	changed := false

	// Recurse into children first (bottom-up, §4.2 "applies recursively
	// bottom-up"), replacing each owned slot in place.
	if n.Inner != nil {
		next, c := FoldOnce(n.Inner)
		if c {
			n.Inner = next
			changed = true
		}
	}
	if n.Left != nil {
		next, c := FoldOnce(n.Left)
		if c {
			n.Left = next
			changed = true
		}
	}
	if n.Right != nil {
		next, c := FoldOnce(n.Right)
		if c {
			n.Right = next
			changed = true
		}
	}
	if n.Children != nil {
		newChildren := make([]*metaast.Node, len(n.Children))
		childChanged := false
		for i, ch := range n.Children {
			folded, c := FoldOnce(ch)
			newChildren[i] = folded
			if c {
				childChanged = true
			}
		}
		if childChanged {
			n.Children = newChildren
			changed = true
		}
	}

	if out, ok := foldCharsets(n); ok {
		return out, true
	}
	if out, ok := foldStrings(n); ok {
		return out, true
	}
	return n, changed
}

func shallowCopyWithInner(n *metaast.Node, inner *metaast.Node) *metaast.Node {
	cp := *n
	cp.Inner = inner
	return &cp
}

func shallowCopyWithLeft(n *metaast.Node, left *metaast.Node) *metaast.Node {
	cp := *n
	cp.Left = left
	return &cp
}

func shallowCopyWithRight(n *metaast.Node, right *metaast.Node) *metaast.Node {
	cp := *n
	cp.Right = right
	return &cp
}

// asSet resolves n to a charset.Set if it denotes one outright (a charset
// leaf) or, per §4.2/§9, if it is a case-sensitive length-1 string required
// to act as a set operand by a surrounding set-algebra context (promotion
// happens only here, transiently; a standalone length-1 string elsewhere is
// never mutated into a charset). A caseless length-1 string is never
// promoted: a charset leaf has no case-insensitivity marker of its own, so
// promoting e.g. caseless "a" would silently drop its implicit match of
// "A", changing the language the grammar denotes.
func asSet(n *metaast.Node) (charset.Set, bool) {
	switch n.Tag {
	case metaast.CharsetTag:
		return n.Set, true
	case metaast.StringLit:
		if len(n.Codepoints) == 1 && !n.CaseInsensitive {
			return charset.Single(charset.Codepoint(n.Codepoints[0])), true
		}
	}
	return nil, false
}

// foldCharsets implements fold_charsets (§4.2): a set-operation sub-tree
// whose operands are all set-valued collapses to a single normalized
// charset leaf.
func foldCharsets(n *metaast.Node) (*metaast.Node, bool) {
	if !n.Tag.IsSetOp() {
		return nil, false
	}
	switch n.Tag {
	case metaast.Complement:
		if set, ok := asSet(n.Inner); ok {
			tracer().Debugf("fold_charsets: complement collapses to charset")
			return metaast.NewCharset(set.Complement()), true
		}
	case metaast.Intersect:
		if l, ok := asSet(n.Left); ok {
			if r, ok := asSet(n.Right); ok {
				tracer().Debugf("fold_charsets: intersect collapses to charset")
				return metaast.NewCharset(l.Intersect(r)), true
			}
		}
	case metaast.Or:
		if l, ok := asSet(n.Left); ok {
			if r, ok := asSet(n.Right); ok {
				tracer().Debugf("fold_charsets: or collapses to charset")
				return metaast.NewCharset(l.Union(r)), true
			}
		}
	case metaast.Reject:
		if l, ok := asSet(n.Left); ok {
			if r, ok := asSet(n.Right); ok {
				tracer().Debugf("fold_charsets: reject collapses to charset")
				return metaast.NewCharset(l.Diff(r)), true
			}
		}
	}
	return nil, false
}

// foldStrings implements fold_strings (§4.2): a Cat all of whose children
// are string leaves (uniformly case-sensitive or uniformly caseless, §9)
// collapses to a single concatenated string leaf.
func foldStrings(n *metaast.Node) (*metaast.Node, bool) {
	if n.Tag != metaast.Cat {
		return nil, false
	}
	caseless := n.Children[0].Tag == metaast.StringLit && n.Children[0].CaseInsensitive
	for _, ch := range n.Children {
		if ch.Tag != metaast.StringLit || ch.CaseInsensitive != caseless {
			return nil, false
		}
	}
	var codepoints []rune
	for _, ch := range n.Children {
		codepoints = append(codepoints, ch.Codepoints...)
	}
	tracer().Debugf("fold_strings: cat of %d strings collapses", len(n.Children))
	out := metaast.NewString(codepoints)
	if caseless {
		out.CaseInsensitive = true
	}
	return out, true
}
