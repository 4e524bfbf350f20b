package parse

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDriverFullMatchByDefault(t *testing.T) {
	g := NewGrammar(Plus(Char('a')))

	res, err := g.Parse(NewStringInput("aaa"))
	require.NoError(t, err)
	require.True(t, res.Matched)
	require.Equal(t, 3, res.EndPos)

	// Trailing input fails the parse unless prefix matching is asked
	// for.
	res, err = g.Parse(NewStringInput("aab"))
	require.NoError(t, err)
	require.False(t, res.Matched)

	res, err = g.Parse(NewStringInput("aab"), WithPrefixMatch())
	require.NoError(t, err)
	require.True(t, res.Matched)
	require.Equal(t, 2, res.EndPos)
}

func TestDriverReportsFurthestError(t *testing.T) {
	digit := CharPred("digit", func(r rune) bool { return r >= '0' && r <= '9' })
	g := NewGrammar(Seq(digit, Char('+'), digit))

	res, err := g.Parse(NewStringInput("1+"))
	require.NoError(t, err)
	require.False(t, res.Matched)
	require.Equal(t, 2, res.FurthestPos)
	require.Contains(t, res.CauseNames(), "digit")
}

func TestDriverRefusesIllFormedGrammar(t *testing.T) {
	var a Parser
	a = Choice(
		Seq(Lazy(func() Parser { return a }), Char('x')),
		Char('x'),
	)
	g := NewGrammar(a)

	_, err := g.Parse(NewStringInput("x"))
	require.Error(t, err)
	require.ErrorIs(t, err, ErrIllFormed)
}

func TestWithoutCheckTripsRuntimeGuard(t *testing.T) {
	g := NewGrammar(Star(Optional(Char('a'))))

	_, err := g.Parse(NewStringInput("b"))
	require.ErrorIs(t, err, ErrIllFormed)

	// Bypassing the static check leaves the repetition guard to catch
	// the non-consuming loop at run time.
	_, err = g.Parse(NewStringInput("b"), WithoutCheck())
	require.ErrorIs(t, err, ErrInternal)
}

func TestDriverChecksOnce(t *testing.T) {
	g := NewGrammar(Char('a'))
	require.Empty(t, g.Check())
	require.Empty(t, g.Check())

	res, err := g.Parse(NewStringInput("a"))
	require.NoError(t, err)
	require.True(t, res.Matched)
}

func TestDriverSeedsContext(t *testing.T) {
	var seen any
	probe := Push(Char('a'), func(st *State, span Span, _ []any) any {
		seen = st.Ctx
		return "a"
	})
	g := NewGrammar(probe)

	_, err := g.Parse(NewStringInput("a"), WithContext("species"))
	require.NoError(t, err)
	require.Equal(t, "species", seen)
}

func TestDriverRecoversWrongInputMode(t *testing.T) {
	g := NewGrammar(Char('a'))

	res, err := g.Parse(NewTokenInput([]any{"a"}))
	require.Nil(t, res)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrWrongInputMode)
}

func TestDriverMemoizerBinding(t *testing.T) {
	counted := &countingParser{p: Char('a')}
	m := Memo(counted, func() Memoizer {
		t.Fatal("factory must not run when the driver bound a memoizer")
		return nil
	})
	g := NewGrammar(Seq(m, Char('b')))

	cache := NewMemoCache(8, true)
	res, err := g.Parse(NewStringInput("ab"), WithMemoizer(m, cache))
	require.NoError(t, err)
	require.True(t, res.Matched)
	require.NotNil(t, cache.Get(counted, 0, nil))
}

func TestRunCachesGrammars(t *testing.T) {
	root := Plus(Char('z'))

	for i := 0; i < 2; i++ {
		res, err := Run(root, NewStringInput("zz"))
		require.NoError(t, err)
		require.True(t, res.Matched)
		require.Equal(t, 2, res.EndPos)
	}
}

func TestFurthestErrorMonotonicAcrossParse(t *testing.T) {
	// A grammar that backtracks a lot: the furthest position only ever
	// grows.
	g := NewGrammar(Choice(
		Seq(Text("ab"), Text("cd")),
		Seq(Text("ab"), Text("ce")),
		Text("a"),
	))

	res, err := g.Parse(NewStringInput("abce"))
	require.NoError(t, err)
	require.True(t, res.Matched)
	require.Equal(t, 4, res.EndPos)

	res, err = g.Parse(NewStringInput("abcx"))
	require.NoError(t, err)
	require.False(t, res.Matched)
	require.Equal(t, 2, res.FurthestPos)
}

func TestEngineErrorRendering(t *testing.T) {
	err := engineErrorf(ErrWrongInputMode, Char('a'), "character access on a token input")
	require.ErrorIs(t, err, ErrWrongInputMode)
	require.Contains(t, err.Error(), "wrong input mode")
	require.Contains(t, errors.Unwrap(err).Error(), "wrong input mode")
}
