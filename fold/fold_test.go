package fold

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dewy-lang/metagrammar/charset"
	"github.com/dewy-lang/metagrammar/metaast"
)

func TestCharsetFoldScenario(t *testing.T) {
	// [a-f] | [d-z]  ->  charset([a-z])  (§8 scenario)
	tree := metaast.NewOr(
		metaast.NewCharset(charset.FromRange('a', 'f')),
		metaast.NewCharset(charset.FromRange('d', 'z')),
	)
	out, changed, err := Fold(tree)
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, metaast.CharsetTag, out.Tag)
	assert.Equal(t, []charset.Range{{Lo: 'a', Hi: 'z'}}, out.Set.Ranges())
}

func TestStringFoldScenario(t *testing.T) {
	// "foo" "bar"  ->  string("foobar")  (§8 scenario)
	tree := metaast.NewCat(metaast.NewString([]rune("foo")), metaast.NewString([]rune("bar")))
	out, changed, err := Fold(tree)
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, metaast.StringLit, out.Tag)
	assert.Equal(t, "foobar", string(out.Codepoints))
}

func TestMixedPreservationScenario(t *testing.T) {
	// "foo" | "bar"  stays an Or of two strings: folder makes no change.
	tree := metaast.NewOr(metaast.NewString([]rune("foo")), metaast.NewString([]rune("bar")))
	out, changed, err := Fold(tree)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.True(t, metaast.Equal(tree, out))
}

func TestComplementOfSetScenario(t *testing.T) {
	// ~[a-z]  ->  charset([0..0x60] ∪ [0x7B..0x10FFFF])
	tree := metaast.NewComplement(metaast.NewCharset(charset.FromRange('a', 'z')))
	out, changed, err := Fold(tree)
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, metaast.CharsetTag, out.Tag)
	assert.Equal(t, []charset.Range{
		{Lo: 0, Hi: 'a' - 1},
		{Lo: 'z' + 1, Hi: charset.MaxCodepoint},
	}, out.Set.Ranges())
}

func TestCountedRepetitionLoweringThenFold(t *testing.T) {
	// "ab"3 lowers (in cfg) to cat(string,string,string) and folds to
	// string("ababab") (§8 scenario).
	ab := metaast.NewString([]rune("ab"))
	counted := metaast.NewCount(3, ab)
	// Lowering a bounded repetition to a Cat of copies is cfg's job in
	// general, but the fold-level scenario in §8 exercises the Cat form
	// directly.
	lowered := metaast.NewCat(ab, ab, ab)
	_ = counted
	out, changed, err := Fold(lowered)
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, metaast.StringLit, out.Tag)
	assert.Equal(t, "ababab", string(out.Codepoints))
}

func TestFoldIsIdempotent(t *testing.T) {
	// fold(fold(a)) == fold(a)  (§8 invariant 2)
	tree := metaast.NewOr(
		metaast.NewCharset(charset.FromRange('a', 'f')),
		metaast.NewCharset(charset.FromRange('d', 'z')),
	)
	once, _, err := Fold(tree)
	require.NoError(t, err)
	twice, changed, err := Fold(once)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.True(t, metaast.Equal(once, twice))
}

func TestCaselessBoundaryNotFused(t *testing.T) {
	// A caseless string next to a case-sensitive string does not fuse
	// (§9 open question: caseless is a semantic marker, not erased).
	plain := metaast.NewString([]rune("foo"))
	caseless := metaast.NewCaseless(metaast.NewString([]rune("BAR")))
	tree := metaast.NewCat(plain, caseless)
	out, changed, err := Fold(tree)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.True(t, metaast.Equal(tree, out))
}

func TestLength1StringPromotedOnlyInSetContext(t *testing.T) {
	// "a" | [b-z]  ->  charset([a-z]) : the length-1 string is promoted
	// only because it sits directly under a set operator.
	tree := metaast.NewOr(metaast.NewString([]rune("a")), metaast.NewCharset(charset.FromRange('b', 'z')))
	out, changed, err := Fold(tree)
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, metaast.CharsetTag, out.Tag)
	assert.Equal(t, []charset.Range{{Lo: 'a', Hi: 'z'}}, out.Set.Ranges())

	// But standalone, outside any set context, "a" remains a string.
	standalone := metaast.NewString([]rune("a"))
	out2, changed2, err2 := Fold(standalone)
	require.NoError(t, err2)
	assert.False(t, changed2)
	assert.Equal(t, metaast.StringLit, out2.Tag)
}

func TestCaselessLength1StringNeverPromotedToSet(t *testing.T) {
	// 'a' | [b-z] : unlike the case-sensitive scenario above, a caseless
	// length-1 string must never collapse into the union, since a charset
	// leaf has no case-insensitivity marker of its own — promoting it here
	// would silently drop 'a''s implicit match of 'A'.
	tree := metaast.NewOr(metaast.NewCaseless(metaast.NewString([]rune("a"))), metaast.NewCharset(charset.FromRange('b', 'z')))
	out, _, err := Fold(tree)
	require.NoError(t, err)
	assert.Equal(t, metaast.Or, out.Tag, "caseless operand must block the set-op fold, leaving plain alternation")
}

func TestFoldDetectsMalformedSetOperation(t *testing.T) {
	// ~A : a complement over an identifier can never resolve to a set, no
	// matter how many passes run. §7 kind 3.
	tree := metaast.NewComplement(metaast.NewIdentifier([]rune("A")))
	_, _, err := Fold(tree)
	require.Error(t, err)
	var setErr *SetOpError
	require.ErrorAs(t, err, &setErr)
	assert.Equal(t, "compliment", setErr.Op)
}

func TestFoldDetectsMalformedSetOperationNestedInsideAValidTree(t *testing.T) {
	// B | (A & "xy") : the outer Or is plain alternation (never a set op
	// unless both sides are sets), but the inner Intersect's right operand
	// is a 2-rune string, which never promotes to a charset (§9: only
	// length-1 strings promote), so it stays malformed after folding.
	tree := metaast.NewOr(
		metaast.NewIdentifier([]rune("B")),
		metaast.NewIntersect(metaast.NewIdentifier([]rune("A")), metaast.NewString([]rune("xy"))),
	)
	_, _, err := Fold(tree)
	require.Error(t, err)
	var setErr *SetOpError
	require.ErrorAs(t, err, &setErr)
	assert.Equal(t, "intersect", setErr.Op)
}
