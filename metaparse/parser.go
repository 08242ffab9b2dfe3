package metaparse

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"

	"github.com/dewy-lang/metagrammar/charset"
	"github.com/dewy-lang/metagrammar/metaast"
)

func tracer() tracing.Trace {
	return gtrace.SyntaxTracer
}

// Parse consumes an ordered meta-token sequence and returns the meta-AST
// it denotes, or a fatal ParseError (§4.1).
func Parse(ts TokenStream) (*metaast.Node, error) {
	toks := materialize(ts)
	if len(toks) == 0 {
		return nil, errAt(0, "empty token sequence")
	}
	depths, err := bracketDepths(toks)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks, depths: depths}
	node, err := p.parseLevel(0, len(toks), levelOr)
	if err != nil {
		return nil, err
	}
	return node, nil
}

func materialize(ts TokenStream) []Token {
	// Tokens already is a []Token; skip the At-by-At copy the generic
	// TokenStream path needs for a host's own backing store.
	if toks, ok := ts.(Tokens); ok {
		return toks.Slice()
	}
	n := ts.Len()
	out := make([]Token, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, ts.At(i))
	}
	return out
}

type parser struct {
	toks   []Token
	depths []int
}

// precedence levels, loosest (9) to tightest (1); level 4 (implicit
// concatenation) and levels 1-3 (atoms/postfix/prefix) are handled by
// parseConcat/parseComplement/parsePostfix/parseAtom rather than
// parseLevel's window-split, since they have no splitting token (§4.1).
type level int

const (
	levelOr level = iota // 9: alternation |
	levelNoFollow
	levelFollow // 7: > <
	levelReject // 6: - /
	levelIntersect
	levelDone // hands off to parseConcat
)

func (p *parser) parseLevel(lo, hi int, lv level) (*metaast.Node, error) {
	if lo >= hi {
		return nil, errAt(p.offsetAt(lo, hi), "missing operand")
	}
	if lv == levelDone {
		return p.parseConcat(lo, hi)
	}
	kinds := opKindsForLevel(lv)
	if split, opKind, ok := p.findTopLevelRightmost(lo, hi, kinds); ok {
		left, err := p.parseLevel(lo, split, lv) // same level: left-associative chaining
		if err != nil {
			return nil, err
		}
		right, err := p.parseLevel(split+1, hi, lv+1)
		if err != nil {
			return nil, err
		}
		return buildBinary(opKind, left, right), nil
	}
	return p.parseLevel(lo, hi, lv+1)
}

func opKindsForLevel(lv level) []Kind {
	switch lv {
	case levelOr:
		return []Kind{PipeTok}
	case levelNoFollow:
		return []Kind{Hashtag} // decision: hashtag realizes no-follow; see DESIGN.md
	case levelFollow:
		return []Kind{GtTok, LtTok}
	case levelReject:
		return []Kind{MinusTok, SlashTok}
	case levelIntersect:
		return []Kind{AmpersandTok}
	default:
		return nil
	}
}

func buildBinary(opKind Kind, left, right *metaast.Node) *metaast.Node {
	switch opKind {
	case PipeTok:
		return metaast.NewOr(left, right)
	case Hashtag:
		return metaast.NewNoFollow(left, right)
	case GtTok:
		return metaast.NewGreaterThan(left, right)
	case LtTok:
		return metaast.NewLessThan(left, right)
	case MinusTok, SlashTok:
		return metaast.NewReject(left, right)
	case AmpersandTok:
		return metaast.NewIntersect(left, right)
	default:
		panic("metaparse: unreachable opKind")
	}
}

// findTopLevelRightmost scans [lo,hi) right-to-left for the rightmost
// token at bracket depth 0 (relative to this window) whose kind is in
// kinds, skipping balanced bracket pairs (§4.1's find_matching_pair).
func (p *parser) findTopLevelRightmost(lo, hi int, kinds []Kind) (idx int, kind Kind, ok bool) {
	baseDepth := p.depths[lo]
	for i := hi - 1; i >= lo; i-- {
		if p.depths[i] != baseDepth {
			continue
		}
		for _, k := range kinds {
			if p.toks[i].Kind == k {
				return i, k, true
			}
		}
	}
	return 0, 0, false
}

// --- implicit concatenation (level 4) --------------------------------

func (p *parser) parseConcat(lo, hi int) (*metaast.Node, error) {
	var units []*metaast.Node
	i := lo
	for i < hi {
		node, next, err := p.parseComplement(i, hi)
		if err != nil {
			return nil, err
		}
		units = append(units, node)
		i = next
	}
	return metaast.NewCat(units...), nil
}

// --- prefix unary complement (level 3) --------------------------------

func (p *parser) parseComplement(i, hi int) (*metaast.Node, int, error) {
	if i >= hi {
		return nil, i, errAt(p.offsetAt(i, hi), "missing operand")
	}
	if p.toks[i].Kind == TildeTok {
		inner, next, err := p.parseComplement(i+1, hi)
		if err != nil {
			return nil, i, err
		}
		return metaast.NewComplement(inner), next, nil
	}
	return p.parsePostfix(i, hi)
}

// --- postfix repetition (level 2) -------------------------------------

func (p *parser) parsePostfix(i, hi int) (*metaast.Node, int, error) {
	node, next, err := p.parseAtom(i, hi)
	if err != nil {
		return nil, i, err
	}
	for next < hi {
		switch p.toks[next].Kind {
		case StarTok:
			node = metaast.NewStar(node)
			next++
		case PlusTok:
			node = metaast.NewPlus(node)
			next++
		case QuestionTok:
			node = metaast.NewOption(node)
			next++
		case IntegerTok:
			n := p.toks[next].Value.(int)
			if n == 0 {
				return nil, i, errAtf(p.toks[next].Offset, "repetition count must not be zero")
			}
			node = metaast.NewCount(n, node)
			next++
		default:
			return node, next, nil
		}
	}
	return node, next, nil
}

// --- atoms (level 1) ----------------------------------------------------

func (p *parser) parseAtom(i, hi int) (*metaast.Node, int, error) {
	if i >= hi {
		return nil, i, errAt(p.offsetAt(i, hi), "missing operand")
	}
	t := p.toks[i]
	switch t.Kind {
	case EpsilonTok:
		return metaast.NewEps(), i + 1, nil
	case StringTok:
		return metaast.NewString(t.Value.([]rune)), i + 1, nil
	case CaselessTok:
		return metaast.NewCaseless(metaast.NewString(t.Value.([]rune))), i + 1, nil
	case CharsetTok:
		return metaast.NewCharset(t.Value.(charset.Set)), i + 1, nil
	case HexTok:
		return metaast.NewCharset(charset.Single(t.Value.(charset.Codepoint))), i + 1, nil
	case AnysetTok:
		return metaast.NewCharset(charset.Universal()), i + 1, nil
	case IdentifierTok:
		return metaast.NewIdentifier(t.Value.([]rune)), i + 1, nil
	case LParenTok:
		close, err := p.matchingClose(i, hi)
		if err != nil {
			return nil, i, err
		}
		inner, err := p.parseLevel(i+1, close, levelOr)
		if err != nil {
			return nil, i, err
		}
		return metaast.NewCapture(inner), close + 1, nil
	case LBraceTok:
		close, err := p.matchingClose(i, hi)
		if err != nil {
			return nil, i, err
		}
		inner, err := p.parseLevel(i+1, close, levelOr)
		if err != nil {
			return nil, i, err
		}
		return inner, close + 1, nil
	default:
		return nil, i, errAtf(t.Offset, "unexpected token %s", t.Kind)
	}
}

func (p *parser) matchingClose(openIdx, hi int) (int, error) {
	want := closeKindOf(p.toks[openIdx].Kind)
	target := p.depths[openIdx]
	for j := openIdx + 1; j < hi; j++ {
		if p.toks[j].Kind == want && p.depths[j] == target {
			return j, nil
		}
	}
	return 0, errAtf(p.toks[openIdx].Offset, "unbalanced bracket")
}

func closeKindOf(open Kind) Kind {
	switch open {
	case LParenTok:
		return RParenTok
	case LBraceTok:
		return RBraceTok
	default:
		panic("metaparse: not an opening bracket")
	}
}

func (p *parser) offsetAt(lo, hi int) int {
	if lo < len(p.toks) {
		return p.toks[lo].Offset
	}
	if hi > 0 && hi-1 < len(p.toks) {
		return p.toks[hi-1].Offset
	}
	return 0
}

// bracketDepths computes, for every token, its bracket nesting depth
// (0 = top level), validating balance as it goes (§7 kind 1: unbalanced
// bracket is a fatal error).
func bracketDepths(toks []Token) ([]int, error) {
	depths := make([]int, len(toks))
	var stack []Kind
	for i, t := range toks {
		switch t.Kind {
		case LParenTok, LBraceTok:
			depths[i] = len(stack)
			stack = append(stack, t.Kind)
		case RParenTok, RBraceTok:
			if len(stack) == 0 {
				return nil, errAtf(t.Offset, "unbalanced closing bracket")
			}
			top := stack[len(stack)-1]
			if (t.Kind == RParenTok && top != LParenTok) || (t.Kind == RBraceTok && top != LBraceTok) {
				return nil, errAtf(t.Offset, "mismatched bracket")
			}
			stack = stack[:len(stack)-1]
			depths[i] = len(stack)
		default:
			depths[i] = len(stack)
		}
	}
	if len(stack) != 0 {
		return nil, errAtf(toks[len(toks)-1].Offset, "unbalanced opening bracket")
	}
	return depths, nil
}
