package print

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dewy-lang/metagrammar/metaast"
)

// Repr renders n as an indented structural dump, one node per line, for
// debugging (§4.5 "a repr that prints the tree structurally with
// indentation").
func Repr(n *metaast.Node) string {
	var b strings.Builder
	writeRepr(&b, n, 0)
	return b.String()
}

// ReprWidth computes the widest line Repr(n) would produce, without ever
// building that multi-line string — the same "computable without
// materializing" contract §4.4 requires of the reduction printer, applied
// here to column-align a deep grammar tree's structural dump.
func ReprWidth(n *metaast.Node) int {
	return reprWidth(n, 0)
}

func reprWidth(n *metaast.Node, depth int) int {
	if n == nil {
		return depth*2 + len("<nil>")
	}
	own := depth*2 + len(label(n))
	best := own
	switch n.Tag {
	case metaast.CaselessTag, metaast.Complement, metaast.Star, metaast.Plus,
		metaast.Option, metaast.Capture, metaast.CountTag:
		best = max(best, reprWidth(n.Inner, depth+1))
	case metaast.Cat:
		for _, ch := range n.Children {
			best = max(best, reprWidth(ch, depth+1))
		}
	case metaast.Intersect, metaast.Or, metaast.GreaterThan, metaast.LessThan, metaast.Reject, metaast.NoFollow:
		best = max(best, reprWidth(n.Left, depth+1))
		best = max(best, reprWidth(n.Right, depth+1))
	}
	return best
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// label is the single-line text writeRepr emits for n's own line, with no
// indent or trailing newline.
func label(n *metaast.Node) string {
	switch n.Tag {
	case metaast.Eps:
		return "eps"
	case metaast.StringLit:
		if n.CaseInsensitive {
			return "string(caseless) " + strconv.Quote(string(n.Codepoints))
		}
		return "string " + strconv.Quote(string(n.Codepoints))
	case metaast.IdentifierTag:
		return "identifier " + string(n.Codepoints)
	case metaast.CharsetTag:
		return fmt.Sprintf("charset %v", n.Set.Ranges())
	case metaast.CaselessTag:
		return "caseless"
	case metaast.Complement:
		return "compliment"
	case metaast.Star:
		return "star"
	case metaast.Plus:
		return "plus"
	case metaast.Option:
		return "option"
	case metaast.Capture:
		return "capture"
	case metaast.CountTag:
		return fmt.Sprintf("count %d", n.Count)
	case metaast.Cat:
		return "cat"
	case metaast.Intersect, metaast.Or, metaast.GreaterThan, metaast.LessThan, metaast.Reject, metaast.NoFollow:
		return n.Tag.String()
	default:
		return "?" + n.Tag.String()
	}
}

func writeRepr(b *strings.Builder, n *metaast.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	if n == nil {
		fmt.Fprintf(b, "%s<nil>\n", indent)
		return
	}
	fmt.Fprintf(b, "%s%s\n", indent, label(n))
	switch n.Tag {
	case metaast.CaselessTag, metaast.Complement, metaast.Star, metaast.Plus,
		metaast.Option, metaast.Capture, metaast.CountTag:
		writeRepr(b, n.Inner, depth+1)
	case metaast.Cat:
		for _, ch := range n.Children {
			writeRepr(b, ch, depth+1)
		}
	case metaast.Intersect, metaast.Or, metaast.GreaterThan, metaast.LessThan, metaast.Reject, metaast.NoFollow:
		writeRepr(b, n.Left, depth+1)
		writeRepr(b, n.Right, depth+1)
	}
}
