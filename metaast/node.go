package metaast

import (
	"golang.org/x/text/cases"

	"github.com/dewy-lang/metagrammar/charset"
)

// caseFolder performs Unicode case folding with no locale tailoring: the
// ASCII-safe subset this module relies on for comparing caseless string
// literals ("locale-aware case folding beyond ASCII" is explicitly out of
// scope).
var caseFolder = cases.Fold()

func foldKey(s string) string {
	return caseFolder.String(s)
}

// Tag identifies the shape of a Node, matching §3's tag set exactly.
type Tag int8

const (
	Eps Tag = iota
	StringLit
	CaselessTag
	IdentifierTag
	CharsetTag
	Complement
	Intersect
	Star
	Plus
	CountTag
	Option
	Capture
	Cat
	Or
	GreaterThan
	LessThan
	Reject
	NoFollow
)

var tagNames = map[Tag]string{
	Eps:           "eps",
	StringLit:     "string",
	CaselessTag:   "caseless",
	IdentifierTag: "identifier",
	CharsetTag:    "charset",
	Complement:    "compliment",
	Intersect:     "intersect",
	Star:          "star",
	Plus:          "plus",
	CountTag:      "count",
	Option:        "option",
	Capture:       "capture",
	Cat:           "cat",
	Or:            "or",
	GreaterThan:   "greaterthan",
	LessThan:      "lessthan",
	Reject:        "reject",
	NoFollow:      "nofollow",
}

// String returns the spec's canonical tag name (§3's table column).
func (t Tag) String() string {
	if n, ok := tagNames[t]; ok {
		return n
	}
	return "?"
}

// IsSetOp reports whether the tag is a set-algebra operator: §3's
// invariant "compliment and intersect operate only over set-valued
// sub-trees" generalizes to this whole family once folded (or/reject are
// set ops only when both children are sets; complement/intersect always
// are).
func (t Tag) IsSetOp() bool {
	switch t {
	case Complement, Intersect, Or, Reject:
		return true
	default:
		return false
	}
}

// Node is the meta-AST node. Exactly the fields named in §3 are present;
// which are meaningful depends on Tag. Node is a value owned by exactly
// one slot (§9): a parent's Inner/Left/Right/Children, or the caller
// holding the root.
type Node struct {
	Tag Tag

	// Codepoints backs StringLit and IdentifierTag.
	Codepoints []rune

	// CaseInsensitive marks a StringLit that is wrapped (directly or via
	// a surrounding CaselessTag) as case-insensitive; folding propagates
	// this flag rather than fusing across case-sensitivity boundaries
	// (§9 open question).
	CaseInsensitive bool

	// Set backs CharsetTag; always fully normalized (§3).
	Set charset.Set

	// Count backs CountTag (n >= 2), Star (implicitly 0) and Plus
	// (implicitly 1); the latter two don't use this field directly but
	// expose it via MinCount for uniform handling.
	Count int

	// Inner backs the single-child tags: CaselessTag, Complement, Star,
	// Plus, CountTag, Option, Capture.
	Inner *Node

	// Left, Right back the binary tags: Intersect, Or, GreaterThan,
	// LessThan, Reject, NoFollow.
	Left, Right *Node

	// Children backs Cat; always len >= 2 (§3 invariant; a 1-child Cat
	// collapses to its child, a 0-child Cat collapses to Eps).
	Children []*Node
}

// MinCount returns the repetition lower bound for Star (0), Plus (1) or
// CountTag (Count, >= 2). It is meaningless for other tags.
func (n *Node) MinCount() int {
	switch n.Tag {
	case Star:
		return 0
	case Plus:
		return 1
	case CountTag:
		return n.Count
	default:
		return 0
	}
}

// --- Constructors -----------------------------------------------------
//
// Each constructor enforces the structural invariants from §3 so that
// ill-formed nodes can never be built: a Count of 0 lowers to Eps, a Count
// of 1 lowers to its inner node, and a Cat of 0 or 1 children lowers to
// Eps or its sole child, respectively.

// NewEps builds the empty-string node.
func NewEps() *Node {
	return &Node{Tag: Eps}
}

// NewString builds a literal-terminal node from a codepoint sequence.
func NewString(codepoints []rune) *Node {
	return &Node{Tag: StringLit, Codepoints: append([]rune(nil), codepoints...)}
}

// NewCaseless wraps inner as a case-insensitive string. Per §9, this is a
// semantic marker; the canonical representation pushes the flag directly
// onto a wrapped StringLit rather than keeping a separate wrapper node
// when inner is already a string.
func NewCaseless(inner *Node) *Node {
	if inner.Tag == StringLit {
		c := *inner
		c.CaseInsensitive = true
		return &c
	}
	return &Node{Tag: CaselessTag, Inner: inner}
}

// NewIdentifier builds a rule-reference node.
func NewIdentifier(name []rune) *Node {
	return &Node{Tag: IdentifierTag, Codepoints: append([]rune(nil), name...)}
}

// NewCharset builds a charset leaf. The set must already be normalized
// (charset.Set guarantees this by construction).
func NewCharset(set charset.Set) *Node {
	return &Node{Tag: CharsetTag, Set: set}
}

// NewComplement builds a set-complement node. inner must be set-valued
// (charset, or another set-op); this is checked during folding, not here
// (§7 kind 3: malformed set operations are only detectable once folding
// has had a chance to resolve sub-trees to charsets).
func NewComplement(inner *Node) *Node {
	return &Node{Tag: Complement, Inner: inner}
}

// NewIntersect builds a set-intersection node.
func NewIntersect(left, right *Node) *Node {
	return &Node{Tag: Intersect, Left: left, Right: right}
}

// NewStar builds a 0-or-more repetition node.
func NewStar(inner *Node) *Node {
	return &Node{Tag: Star, Inner: inner}
}

// NewPlus builds a 1-or-more repetition node.
func NewPlus(inner *Node) *Node {
	return &Node{Tag: Plus, Inner: inner}
}

// NewCount builds an exact-n repetition node. Per §3: count 0 collapses
// to Eps, count 1 collapses to inner, count < 0 panics (the meta-parser
// must reject a zero count as a fatal parse error per §4.1 before ever
// reaching this constructor with n == 0; this constructor additionally
// enforces the invariant defensively for callers other than the parser).
func NewCount(n int, inner *Node) *Node {
	switch {
	case n < 0:
		panic("metaast: negative repetition count")
	case n == 0:
		return NewEps()
	case n == 1:
		return inner
	default:
		return &Node{Tag: CountTag, Count: n, Inner: inner}
	}
}

// NewOption builds a 0-or-1 node.
func NewOption(inner *Node) *Node {
	return &Node{Tag: Option, Inner: inner}
}

// NewCapture builds a parenthesized capture-group node.
func NewCapture(inner *Node) *Node {
	return &Node{Tag: Capture, Inner: inner}
}

// NewCat builds a concatenation node from an ordered list of children.
// Per §3: zero children collapses to Eps, one child collapses to that
// child itself (no Cat wrapper ever exists with fewer than two children).
func NewCat(children ...*Node) *Node {
	switch len(children) {
	case 0:
		return NewEps()
	case 1:
		return children[0]
	default:
		return &Node{Tag: Cat, Children: append([]*Node(nil), children...)}
	}
}

// NewOr builds an alternation node (set union, when both sides are sets).
func NewOr(left, right *Node) *Node {
	return &Node{Tag: Or, Left: left, Right: right}
}

// NewGreaterThan builds a greedy/longer-preference node.
func NewGreaterThan(left, right *Node) *Node {
	return &Node{Tag: GreaterThan, Left: left, Right: right}
}

// NewLessThan builds a non-greedy/shorter-preference node.
func NewLessThan(left, right *Node) *Node {
	return &Node{Tag: LessThan, Left: left, Right: right}
}

// NewReject builds an exclusion node (set difference, when both sides are
// sets).
func NewReject(left, right *Node) *Node {
	return &Node{Tag: Reject, Left: left, Right: right}
}

// NewNoFollow builds a negative-lookahead node.
func NewNoFollow(left, right *Node) *Node {
	return &Node{Tag: NoFollow, Left: left, Right: right}
}

// IsSingleUnit reports whether n counts as a "single unit" for the
// purpose of implicit concatenation (§4.1): atoms, postfix-repetition
// results, captures, and complements bind without needing a connecting
// operator when placed next to another single unit.
func (n *Node) IsSingleUnit() bool {
	switch n.Tag {
	case Eps, StringLit, CaselessTag, IdentifierTag, CharsetTag,
		Star, Plus, CountTag, Option, Capture, Complement:
		return true
	default:
		return false
	}
}

// Equal reports structural equivalence between two meta-AST trees
// (§8 invariant 1, round-trip equivalence).
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Tag != b.Tag {
		return false
	}
	switch a.Tag {
	case Eps:
		return true
	case StringLit, IdentifierTag:
		if a.CaseInsensitive != b.CaseInsensitive {
			return false
		}
		if a.CaseInsensitive {
			return foldKey(string(a.Codepoints)) == foldKey(string(b.Codepoints))
		}
		return string(a.Codepoints) == string(b.Codepoints)
	case CharsetTag:
		return a.Set.Equals(b.Set)
	case CaselessTag, Complement, Star, Plus, Option, Capture:
		return Equal(a.Inner, b.Inner)
	case CountTag:
		return a.Count == b.Count && Equal(a.Inner, b.Inner)
	case Cat:
		if len(a.Children) != len(b.Children) {
			return false
		}
		for i := range a.Children {
			if !Equal(a.Children[i], b.Children[i]) {
				return false
			}
		}
		return true
	case Intersect, Or, GreaterThan, LessThan, Reject, NoFollow:
		return Equal(a.Left, b.Left) && Equal(a.Right, b.Right)
	default:
		return false
	}
}
