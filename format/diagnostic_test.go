package format

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dhamidi/parc/parse"
)

func TestRenderFailure(t *testing.T) {
	digit := parse.CharPred("digit", func(r rune) bool { return r >= '0' && r <= '9' })
	g := parse.NewGrammar(parse.Seq(digit, parse.Char('+'), digit))

	input := "1+"
	res, err := g.Parse(parse.NewStringInput(input))
	require.NoError(t, err)
	require.False(t, res.Matched)

	rendered := RenderFailure(res, NewLineMap(input))
	require.Contains(t, rendered, "1:3")
	require.Contains(t, rendered, "digit")

	plain := RenderFailure(res, nil)
	require.Contains(t, plain, "at 2")
}

func TestRenderFailureOnSuccess(t *testing.T) {
	g := parse.NewGrammar(parse.Char('a'))
	res, err := g.Parse(parse.NewStringInput("a"))
	require.NoError(t, err)
	require.Equal(t, "no failure", RenderFailure(res, nil))
}

func TestRenderMemo(t *testing.T) {
	cache := parse.NewMemoCache(4, true)
	p := parse.Char('a')
	cache.Memoize(parse.NewMemoEntry(true, p, 0, 1, nil, nil))
	cache.Memoize(parse.NewMemoEntry(false, p, 3, 0, nil, nil))

	input := "aaa\naaa"
	listing := RenderMemo(cache, NewLineMap(input))
	require.Contains(t, listing, "from 1:1 to 1:2")
	require.Contains(t, listing, "no match")
}
