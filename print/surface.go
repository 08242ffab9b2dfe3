package print

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dewy-lang/metagrammar/metaast"
)

// rank is the §4.1 precedence table, reduced to "weaker binds looser":
// larger rank means weaker (lower) precedence. Atoms and postfix forms
// bind tightest.
func rank(tag metaast.Tag) int {
	switch tag {
	case metaast.Or:
		return 9
	case metaast.NoFollow:
		return 8
	case metaast.GreaterThan, metaast.LessThan:
		return 7
	case metaast.Reject:
		return 6
	case metaast.Intersect:
		return 5
	case metaast.Cat:
		return 4
	case metaast.Complement:
		return 3
	case metaast.Star, metaast.Plus, metaast.Option, metaast.CountTag:
		return 2
	default: // atoms: Eps, StringLit, CaselessTag, IdentifierTag, CharsetTag, Capture
		return 1
	}
}

// Surface renders n in the meta-grammar's own surface syntax (§4.5),
// parenthesizing a child only when its precedence is weaker than its
// parent's, or equal but on the non-associative (right) side of a
// left-associative binary parent (§4.1's tie-break default). A
// parenthesization forced purely by precedence uses the transparent `{…}`
// grouping, since `(…)` is reserved for an actual Capture node in the
// tree — using it elsewhere would silently introduce a capture that was
// never there.
func Surface(n *metaast.Node) string {
	return surface(n, 0, false)
}

func surface(n *metaast.Node, parentRank int, rightOfLeftAssoc bool) string {
	if n == nil {
		return ""
	}
	body := render(n)
	r := rank(n.Tag)
	// parentRank 0 means there is no enclosing operator (the root, or the
	// body of a Capture), so nothing needs grouping there.
	needsParens := parentRank > 0 && (r > parentRank || (r == parentRank && rightOfLeftAssoc))
	if needsParens {
		return "{" + body + "}"
	}
	return body
}

func render(n *metaast.Node) string {
	r := rank(n.Tag)
	switch n.Tag {
	case metaast.Eps:
		return `\e`
	case metaast.StringLit:
		if n.CaseInsensitive {
			return "'" + string(n.Codepoints) + "'"
		}
		return strconv.Quote(string(n.Codepoints))
	case metaast.IdentifierTag:
		return string(n.Codepoints)
	case metaast.CharsetTag:
		return renderCharset(n)
	case metaast.CaselessTag:
		return "'" + strings.Trim(surface(n.Inner, r, false), `"`) + "'"
	case metaast.Complement:
		return "~" + surface(n.Inner, r, false)
	case metaast.Star:
		return surface(n.Inner, r, false) + "*"
	case metaast.Plus:
		return surface(n.Inner, r, false) + "+"
	case metaast.Option:
		return surface(n.Inner, r, false) + "?"
	case metaast.CountTag:
		return surface(n.Inner, r, false) + strconv.Itoa(n.Count)
	case metaast.Capture:
		return "(" + surface(n.Inner, 0, false) + ")"
	case metaast.Cat:
		parts := make([]string, len(n.Children))
		for i, ch := range n.Children {
			parts[i] = surface(ch, r, false)
		}
		return strings.Join(parts, " ")
	case metaast.Or:
		return surface(n.Left, r, false) + "|" + surface(n.Right, r, true)
	case metaast.NoFollow:
		return surface(n.Left, r, false) + "#" + surface(n.Right, r, true)
	case metaast.GreaterThan:
		return surface(n.Left, r, false) + ">" + surface(n.Right, r, true)
	case metaast.LessThan:
		return surface(n.Left, r, false) + "<" + surface(n.Right, r, true)
	case metaast.Reject:
		return surface(n.Left, r, false) + "-" + surface(n.Right, r, true)
	case metaast.Intersect:
		return surface(n.Left, r, false) + "&" + surface(n.Right, r, true)
	default:
		return fmt.Sprintf("?%s", n.Tag)
	}
}

func renderCharset(n *metaast.Node) string {
	var b strings.Builder
	b.WriteByte('[')
	for _, rg := range n.Set.Ranges() {
		if rg.Lo == rg.Hi {
			fmt.Fprintf(&b, "%c", rune(rg.Lo))
		} else {
			fmt.Fprintf(&b, "%c-%c", rune(rg.Lo), rune(rg.Hi))
		}
	}
	b.WriteByte(']')
	return b.String()
}
