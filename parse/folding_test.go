package parse

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// letterParser pushes the single character it matches.
func letterParser(r rune) Parser {
	return Push(Char(r), func(st *State, span Span, _ []any) any {
		return string(r)
	})
}

func foldBranch(op rune, operand Parser) FoldBranch {
	suffix := Seq(Char(op), operand)
	return FoldBranch{
		Suffix: suffix,
		Build: func(st *State, span Span, values []any) any {
			return fmt.Sprintf("(%v%c%v)", values[0], op, values[1])
		},
	}
}

func TestLeftFoldAssociatesLeft(t *testing.T) {
	a := letterParser('a')
	fold := LeftFold(a, foldBranch('+', a), foldBranch('-', a))

	tests := []struct {
		input string
		end   int
		want  string
	}{
		{"a", 1, "a"},
		{"a+a", 3, "(a+a)"},
		{"a+a-a", 5, "((a+a)-a)"},
		{"a+a+a+a", 7, "(((a+a)+a)+a)"},
		{"a+", 1, "a"}, // dangling operator is left unconsumed
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			st := NewState(NewStringInput(tt.input))
			require.True(t, st.Parse(fold))
			require.Equal(t, tt.end, st.Pos)
			require.Equal(t, []any{tt.want}, st.Values())
		})
	}
}

func TestLeftFoldTriesBranchesInOrder(t *testing.T) {
	a := letterParser('a')
	b := letterParser('b')
	fold := LeftFold(a, foldBranch('+', a), foldBranch('+', b))

	st := NewState(NewStringInput("a+b"))
	require.True(t, st.Parse(fold))
	require.Equal(t, []any{"(a+b)"}, st.Values())
}

func TestRightFoldAssociatesRight(t *testing.T) {
	a := letterParser('a')
	// A right-fold suffix is the operator alone; the fold supplies the
	// right operand by recursing into itself.
	fold := RightFold(a, foldBranch('+', Seq()))

	tests := []struct {
		input string
		end   int
		want  string
	}{
		{"a", 1, "a"},
		{"a+a", 3, "(a+a)"},
		{"a+a+a", 5, "(a+(a+a))"},
		{"a+a+a+a", 7, "(a+(a+(a+a)))"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			st := NewState(NewStringInput(tt.input))
			require.True(t, st.Parse(fold))
			require.Equal(t, tt.end, st.Pos)
			require.Equal(t, []any{tt.want}, st.Values())
		})
	}
}

func TestRightFoldByJuxtaposition(t *testing.T) {
	// R := "ab" R / "ab", i.e. an empty operator between operands.
	ab := Push(Text("ab"), func(st *State, span Span, _ []any) any {
		return "ab"
	})
	fold := RightFold(ab, FoldBranch{
		Suffix: Seq(),
		Build: func(st *State, span Span, values []any) any {
			return fmt.Sprintf("(%v %v)", values[0], values[1])
		},
	})

	st := NewState(NewStringInput("ababab"))
	require.True(t, st.Parse(fold))
	require.Equal(t, 6, st.Pos)
	require.Equal(t, []any{"(ab (ab ab))"}, st.Values())
}

func TestPushLookback(t *testing.T) {
	a := letterParser('a')
	b := PushLookback(1, letterParser('b'), func(st *State, span Span, values []any) any {
		return fmt.Sprintf("%v%v", values[0], values[1])
	})

	st := NewState(NewStringInput("ab"))
	require.True(t, st.Parse(Seq(a, b)))
	require.Equal(t, []any{"ab"}, st.Values())
}

func TestFoldRollsBackPartialSuffix(t *testing.T) {
	a := letterParser('a')
	// The suffix needs an 'a' after '+'; "a+b" must still match its
	// leading "a" as a bare operand, with "+b" unconsumed.
	fold := LeftFold(a, foldBranch('+', a))
	st := NewState(NewStringInput("a+b"))
	require.True(t, st.Parse(fold))
	require.Equal(t, 1, st.Pos)
	require.Equal(t, []any{"a"}, st.Values())
}
