package metaparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dewy-lang/metagrammar/charset"
)

func mustTokenizeOne(t *testing.T, src string) Token {
	t.Helper()
	toks, err := NewTokenizer(src).Tokenize()
	require.NoError(t, err)
	require.Equal(t, 1, toks.Len())
	return toks.At(0)
}

func TestScanCharsetUnionsSingleCharsAndRanges(t *testing.T) {
	tok := mustTokenizeOne(t, "[a-fxz]")
	require.Equal(t, CharsetTok, tok.Kind)
	set := tok.Value.(charset.Set)
	for _, r := range []rune{'a', 'c', 'f', 'x', 'z'} {
		assert.True(t, set.Contains(charset.Codepoint(r)), "expected set to contain %q", r)
	}
	assert.False(t, set.Contains('g'))
}

func TestScanCharsetRejectsDescendingRange(t *testing.T) {
	// [z-a] is a grammar author typo, not an instruction to swap endpoints;
	// §7 kind 1 treats this the same as any other malformed token.
	_, err := NewTokenizer("[z-a]").Tokenize()
	require.Error(t, err)
}

func TestScanCharsetAcceptsSingleCodepointRange(t *testing.T) {
	tok := mustTokenizeOne(t, "[a-a]")
	set := tok.Value.(charset.Set)
	assert.True(t, set.Contains('a'))
	assert.False(t, set.Contains('b'))
}

func TestScanCharsetUnterminatedIsFatal(t *testing.T) {
	_, err := NewTokenizer("[a-z").Tokenize()
	require.Error(t, err)
}
