package ebnf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/ebnf"

	"github.com/dhamidi/parc/parse"
)

func mustGrammar(t *testing.T, src string) ebnf.Grammar {
	t.Helper()
	g, err := ebnf.Parse("test.ebnf", strings.NewReader(src))
	require.NoError(t, err)
	return g
}

func TestCompileAndMatch(t *testing.T) {
	g := mustGrammar(t, `
list = item { "," item } .
item = "a" | "b" .
`)

	compiled, err := Compile(g, "list")
	require.NoError(t, err)
	require.Empty(t, compiled.Check())

	res, err := compiled.Parse(parse.NewStringInput("a,b,a"))
	require.NoError(t, err)
	require.True(t, res.Matched)
	require.Equal(t, 5, res.EndPos)
	require.Len(t, res.Values, 1)

	root := res.Values[0].(*Node)
	require.Equal(t, "list", root.Name)
	require.Len(t, root.Kids, 3)
	require.Equal(t, "item", root.Kids[0].Name)
	require.Equal(t, "a", root.Kids[0].Text)
	require.Equal(t, "b", root.Kids[1].Text)
}

func TestCompileRange(t *testing.T) {
	g := mustGrammar(t, `
number = digit { digit } .
digit = "0" … "9" .
`)

	compiled, err := Compile(g, "number")
	require.NoError(t, err)

	res, err := compiled.Parse(parse.NewStringInput("2026"))
	require.NoError(t, err)
	require.True(t, res.Matched)

	root := res.Values[0].(*Node)
	require.Len(t, root.Kids, 4)
	require.Equal(t, "2", root.Kids[0].Text)
}

func TestCompileOption(t *testing.T) {
	g := mustGrammar(t, `
signed = [ "-" ] "x" .
`)

	compiled, err := Compile(g, "signed")
	require.NoError(t, err)

	for _, input := range []string{"x", "-x"} {
		res, err := compiled.Parse(parse.NewStringInput(input))
		require.NoError(t, err)
		require.True(t, res.Matched, "input %q", input)
	}
}

func TestCompileRecursion(t *testing.T) {
	g := mustGrammar(t, `
balanced = "(" [ balanced ] ")" .
`)

	compiled, err := Compile(g, "balanced")
	require.NoError(t, err)
	require.Empty(t, compiled.Check())

	res, err := compiled.Parse(parse.NewStringInput("((()))"))
	require.NoError(t, err)
	require.True(t, res.Matched)

	depth := 0
	for n := res.Values[0].(*Node); n != nil; {
		depth++
		if len(n.Kids) == 0 {
			break
		}
		n = n.Kids[0]
	}
	require.Equal(t, 3, depth)
}

func TestCompileRejectsLeftRecursion(t *testing.T) {
	g := mustGrammar(t, `
expr = expr "+" term | term .
term = "x" .
`)

	compiled, err := Compile(g, "expr")
	require.NoError(t, err)
	require.NotEmpty(t, compiled.Check())

	_, err = compiled.Parse(parse.NewStringInput("x+x"))
	require.ErrorIs(t, err, parse.ErrIllFormed)
}

func TestCompileUndefinedProduction(t *testing.T) {
	g := mustGrammar(t, `
root = missing .
`)

	_, err := Compile(g, "root")
	require.Error(t, err)
	require.Contains(t, err.Error(), "missing")
}

func TestCompileUnknownStart(t *testing.T) {
	g := mustGrammar(t, `root = "a" .`)

	_, err := Compile(g, "nope")
	require.Error(t, err)
}

func TestOrderedChoiceSemantics(t *testing.T) {
	// PEG reinterpretation: the first alternative shadows the longer
	// second one, so the full input cannot be consumed.
	g := mustGrammar(t, `
word = "a" | "ab" .
`)

	compiled, err := Compile(g, "word")
	require.NoError(t, err)

	res, err := compiled.Parse(parse.NewStringInput("ab"))
	require.NoError(t, err)
	require.False(t, res.Matched)

	res, err = compiled.Parse(parse.NewStringInput("ab"), parse.WithPrefixMatch())
	require.NoError(t, err)
	require.True(t, res.Matched)
	require.Equal(t, 1, res.EndPos)
}
