// Package calc is the arithmetic demonstration grammar shipped with the
// engine: integer operands, the four binary operators with the usual
// precedence, and parenthesised sub-expressions.
package calc

import (
	"fmt"
	"strconv"

	"github.com/dhamidi/parc/format"
	"github.com/dhamidi/parc/parse"
)

// Expr is an arithmetic expression tree.
type Expr interface {
	isExpr()
}

// Num is an integer literal.
type Num struct {
	Value int64
}

// Binary applies Op to Left and Right.
type Binary struct {
	Op    rune
	Left  Expr
	Right Expr
}

func (Num) isExpr()    {}
func (Binary) isExpr() {}

func (n Num) String() string { return strconv.FormatInt(n.Value, 10) }

func (b Binary) String() string {
	return fmt.Sprintf("(%s %c %s)", b.Left, b.Op, b.Right)
}

var grammar = parse.NewGrammar(build())

// Grammar returns the frozen expression grammar.
func Grammar() *parse.Grammar { return grammar }

func build() parse.Parser {
	digit := parse.CharPred("digit", func(r rune) bool { return r >= '0' && r <= '9' })

	number := parse.Rule("number", parse.Push(parse.Plus(digit),
		func(st *parse.State, span parse.Span, _ []any) any {
			text := st.Input.(*parse.StringInput).Slice(span.Start, span.End)
			v, err := strconv.ParseInt(text, 10, 64)
			if err != nil {
				// Plus(digit) only matches digit runs; the sole parse
				// failure left is overflow.
				v = 0
			}
			return Num{Value: v}
		}))

	var sum parse.Parser

	factor := parse.Rule("factor", parse.Choice(
		number,
		parse.Seq(
			parse.Char('('),
			parse.Lazy(func() parse.Parser { return sum }),
			parse.Char(')'),
		),
	))

	product := parse.Rule("product", parse.LeftFold(factor,
		binary('*', factor),
		binary('/', factor),
	))

	sum = parse.Rule("sum", parse.LeftFold(product,
		binary('+', product),
		binary('-', product),
	))

	return sum
}

// binary is a fold branch matching op followed by the next operand.
func binary(op rune, operand parse.Parser) parse.FoldBranch {
	return parse.FoldBranch{
		Suffix: parse.Seq(parse.Char(op), operand),
		Build: func(st *parse.State, span parse.Span, values []any) any {
			return Binary{
				Op:    op,
				Left:  values[0].(Expr),
				Right: values[1].(Expr),
			}
		},
	}
}

// Parse parses input as a full arithmetic expression.
func Parse(input string) (Expr, error) {
	res, err := grammar.Parse(parse.NewStringInput(input))
	if err != nil {
		return nil, err
	}
	if !res.Matched {
		return nil, fmt.Errorf("%s", format.RenderFailure(res, format.NewLineMap(input)))
	}
	return res.Values[0].(Expr), nil
}

// Eval evaluates an expression tree.
func Eval(e Expr) (int64, error) {
	switch v := e.(type) {
	case Num:
		return v.Value, nil
	case Binary:
		left, err := Eval(v.Left)
		if err != nil {
			return 0, err
		}
		right, err := Eval(v.Right)
		if err != nil {
			return 0, err
		}
		switch v.Op {
		case '+':
			return left + right, nil
		case '-':
			return left - right, nil
		case '*':
			return left * right, nil
		case '/':
			if right == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			return left / right, nil
		}
	}
	return 0, fmt.Errorf("unknown expression %T", e)
}
