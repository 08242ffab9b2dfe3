package metagrammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dewy-lang/metagrammar/metaast"
	"github.com/dewy-lang/metagrammar/symtab"
)

func TestCompileFusesAdjacentStringLiteralsBeforeLowering(t *testing.T) {
	result, err := Compile(`A | "foo" "bar"`)
	require.NoError(t, err)

	require.Equal(t, metaast.Or, result.AST.Tag)
	require.Equal(t, metaast.StringLit, result.AST.Right.Tag)
	assert.Equal(t, "foobar", string(result.AST.Right.Codepoints))

	require.NotEmpty(t, result.Productions)
	assert.NotZero(t, result.Store.Len())
}

func TestCompileCollapsesSetUnionedCharsetsBeforeLowering(t *testing.T) {
	result, err := Compile(`[a-f] | [d-z]`)
	require.NoError(t, err)

	require.Equal(t, metaast.CharsetTag, result.AST.Tag)
	assert.True(t, result.AST.Set.Contains('m'))

	// A folded root that is a single terminal has no production of its
	// own — it's the terminal itself, interned as the start symbol — so
	// Lower correctly emits zero productions here.
	assert.Empty(t, result.Productions)
	sym, ok := result.Store.Get(result.Start)
	require.True(t, ok)
	assert.Equal(t, symtab.Charset, sym.Kind)
}

func TestCompileWithSharesOneStoreAcrossFragments(t *testing.T) {
	store := symtab.New()
	_, err := CompileWith("A B", store)
	require.NoError(t, err)
	lenAfterFirst := store.Len()

	_, err = CompileWith("A C", store)
	require.NoError(t, err)
	assert.Greater(t, store.Len(), lenAfterFirst, "interning the same grammar's second fragment should grow, not reset, the shared store")
}

func TestCompileRejectsMalformedInput(t *testing.T) {
	_, err := Compile(`(a b`)
	assert.Error(t, err)
}

func TestCompileRejectsMalformedSetOperation(t *testing.T) {
	// ~A : a complement over a bare identifier can never resolve to a
	// set, so it survives folding unchanged and Compile must surface the
	// §7 kind 3 error rather than hand it to cfg.Lower silently.
	_, err := Compile(`~A`)
	assert.Error(t, err)
}
