package cfg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dewy-lang/metagrammar/charset"
	"github.com/dewy-lang/metagrammar/metaast"
	"github.com/dewy-lang/metagrammar/symtab"
)

func TestLowerCatEmitsOneProductionOfTerminals(t *testing.T) {
	store := symtab.New()
	tree := metaast.NewCat(metaast.NewString([]rune("a")), metaast.NewIdentifier([]rune("B")))
	prods, head, err := Lower(tree, store)
	require.NoError(t, err)
	require.Len(t, prods, 1)
	assert.Equal(t, head, prods[0].Head)
	require.Len(t, prods[0].RHS, 2)

	aIdx := store.InternString("a")
	bIdx := store.InternIdentifier("B")
	assert.Equal(t, []symtab.Index{aIdx, bIdx}, prods[0].RHS)
}

func TestLowerOrEmitsTwoAlternativeProductions(t *testing.T) {
	store := symtab.New()
	tree := metaast.NewOr(metaast.NewIdentifier([]rune("A")), metaast.NewIdentifier([]rune("B")))
	prods, head, err := Lower(tree, store)
	require.NoError(t, err)
	require.Len(t, prods, 2)
	for _, p := range prods {
		assert.Equal(t, head, p.Head)
		assert.Len(t, p.RHS, 1)
	}
}

func TestLowerStarEmitsLeftRecursiveAndEpsilonProductions(t *testing.T) {
	store := symtab.New()
	tree := metaast.NewStar(metaast.NewIdentifier([]rune("A")))
	prods, head, err := Lower(tree, store)
	require.NoError(t, err)
	require.Len(t, prods, 2)
	assert.Empty(t, prods[0].RHS) // head -> eps
	require.Len(t, prods[1].RHS, 2)
	assert.Equal(t, head, prods[1].RHS[0]) // head -> head A
}

func TestLowerPlusNeverHasAnEpsilonAlternative(t *testing.T) {
	store := symtab.New()
	tree := metaast.NewPlus(metaast.NewIdentifier([]rune("A")))
	prods, _, err := Lower(tree, store)
	require.NoError(t, err)
	require.Len(t, prods, 2)
	for _, p := range prods {
		assert.NotEmpty(t, p.RHS)
	}
}

func TestLowerOptionEmitsEpsilonAndInnerAlternatives(t *testing.T) {
	store := symtab.New()
	tree := metaast.NewOption(metaast.NewIdentifier([]rune("A")))
	prods, _, err := Lower(tree, store)
	require.NoError(t, err)
	require.Len(t, prods, 2)
	assert.Empty(t, prods[0].RHS)
	assert.Len(t, prods[1].RHS, 1)
}

func TestLowerCountExpandsToRepeatedCat(t *testing.T) {
	// "ab"3 lowers through CountTag -> Cat(ab,ab,ab), which then gets the
	// same fold_strings chance the rest of the tree already had: it
	// collapses to the single terminal string("ababab") (§8), not a
	// 3-symbol production.
	store := symtab.New()
	ab := metaast.NewString([]rune("ab"))
	tree := metaast.NewCount(3, ab)
	prods, head, err := Lower(tree, store)
	require.NoError(t, err)
	assert.Empty(t, prods)
	assert.Equal(t, store.InternString("ababab"), head)
}

func TestLowerCountOfNonFusableInnerStillExpandsToRepeatedCat(t *testing.T) {
	// A3 (identifier repeated) can never fuse into a single terminal, so
	// it still lowers to one production of 3 occurrences of the same
	// interned identifier, exercising the general Cat-of-copies path.
	store := symtab.New()
	a := metaast.NewIdentifier([]rune("A"))
	tree := metaast.NewCount(3, a)
	prods, _, err := Lower(tree, store)
	require.NoError(t, err)
	require.Len(t, prods, 1)
	require.Len(t, prods[0].RHS, 3)
	aIdx := store.InternIdentifier("A")
	assert.Equal(t, []symtab.Index{aIdx, aIdx, aIdx}, prods[0].RHS)
}

func TestLowerIdentifierEmitsNoProduction(t *testing.T) {
	store := symtab.New()
	tree := metaast.NewIdentifier([]rune("A"))
	prods, head, err := Lower(tree, store)
	require.NoError(t, err)
	assert.Empty(t, prods)
	assert.Equal(t, store.InternIdentifier("A"), head)
}

func TestLowerCaptureIsTransparent(t *testing.T) {
	store := symtab.New()
	tree := metaast.NewCapture(metaast.NewIdentifier([]rune("A")))
	prods, head, err := Lower(tree, store)
	require.NoError(t, err)
	assert.Empty(t, prods)
	assert.Equal(t, store.InternIdentifier("A"), head)
}

func TestLowerGreaterThanAnnotatesPreference(t *testing.T) {
	store := symtab.New()
	tree := metaast.NewGreaterThan(metaast.NewIdentifier([]rune("A")), metaast.NewIdentifier([]rune("B")))
	prods, _, err := Lower(tree, store)
	require.NoError(t, err)
	require.Len(t, prods, 2)
	for _, p := range prods {
		assert.Equal(t, PreferLonger, p.Pref)
	}
}

func TestLowerNoFollowEmitsOneProductionWithConstraint(t *testing.T) {
	// A#B: B is a lookahead constraint on A's match, never a sibling
	// derivation of head, so exactly one production is emitted.
	store := symtab.New()
	tree := metaast.NewNoFollow(metaast.NewIdentifier([]rune("A")), metaast.NewIdentifier([]rune("B")))
	prods, head, err := Lower(tree, store)
	require.NoError(t, err)
	require.Len(t, prods, 1)
	p := prods[0]
	assert.Equal(t, head, p.Head)
	aIdx := store.InternIdentifier("A")
	bIdx := store.InternIdentifier("B")
	assert.Equal(t, []symtab.Index{aIdx}, p.RHS)
	require.True(t, p.HasNotFollowedBy)
	assert.Equal(t, bIdx, p.NotFollowedBy)
}

func TestLowerMalformedSetOperationIsFatal(t *testing.T) {
	// An Intersect that survived folding with a non-charset operand is the
	// §7 kind 3 malformed set operation.
	store := symtab.New()
	tree := metaast.NewIntersect(metaast.NewIdentifier([]rune("A")), metaast.NewIdentifier([]rune("B")))
	_, _, err := Lower(tree, store)
	require.Error(t, err)
	var lerr *LowerError
	require.ErrorAs(t, err, &lerr)
}

func TestLowerComplementOfCharsetIsAlsoMalformedBeforeFolding(t *testing.T) {
	// Lower only ever sees Complement as malformed: a well-formed tree
	// reaching Lower has already had fold collapse any Complement-of-set
	// into a CharsetTag leaf.
	store := symtab.New()
	tree := metaast.NewComplement(metaast.NewCharset(charset.FromRange('a', 'z')))
	_, _, err := Lower(tree, store)
	require.Error(t, err)
}

func TestWalkVisitsChildrenBeforeParent(t *testing.T) {
	tree := metaast.NewCat(metaast.NewIdentifier([]rune("A")), metaast.NewIdentifier([]rune("B")))
	var order []metaast.Tag
	Walk(tree, func(n *metaast.Node) {
		order = append(order, n.Tag)
	})
	require.Len(t, order, 3)
	assert.Equal(t, metaast.Cat, order[2])
}

func TestProductionStringRendersNamesWhenAvailable(t *testing.T) {
	store := symtab.New()
	head := store.NewAnonymous()
	a := store.InternIdentifier("A")
	p := Production{Head: head, RHS: []symtab.Index{a}}
	s := p.String(store)
	assert.Contains(t, s, "A")
}
