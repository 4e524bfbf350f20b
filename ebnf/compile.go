// Package ebnf compiles EBNF grammars (golang.org/x/exp/ebnf) into parser
// combinator graphs.
//
// The compilation gives the grammar PEG semantics: alternatives become
// ordered choices tried top to bottom, and repetitions are greedy. A
// grammar that relies on CFG-style ambiguity needs its alternatives
// reordered, longest first.
package ebnf

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/exp/ebnf"

	"github.com/dhamidi/parc/parse"
)

// Node is the generic parse tree produced by compiled grammars: one node
// per production, carrying either the matched text (when the match produced
// no child nodes) or the child nodes.
type Node struct {
	Name  string  `json:"name"`
	Start int     `json:"start"`
	End   int     `json:"end"`
	Text  string  `json:"text,omitempty"`
	Kids  []*Node `json:"children,omitempty"`
}

func (n *Node) String() string {
	if len(n.Kids) == 0 {
		return fmt.Sprintf("%s(%q)", n.Name, n.Text)
	}
	parts := make([]string, len(n.Kids))
	for i, k := range n.Kids {
		parts[i] = k.String()
	}
	return fmt.Sprintf("%s(%s)", n.Name, strings.Join(parts, ", "))
}

// LoadGrammar reads and parses an EBNF grammar file.
func LoadGrammar(filename string) (ebnf.Grammar, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open grammar: %w", err)
	}
	defer f.Close()

	grammar, err := ebnf.Parse(filename, f)
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	return grammar, nil
}

// Compile turns grammar into a combinator graph rooted at the start
// production. Every production is wrapped in a rule of the same name and
// pushes a *Node onto the value stack.
func Compile(grammar ebnf.Grammar, start string) (*parse.Grammar, error) {
	c := &compiler{grammar: grammar, rules: make(map[string]parse.Parser)}
	for name, prod := range grammar {
		if prod.Expr == nil {
			continue
		}
		p, err := c.expression(prod.Expr)
		if err != nil {
			return nil, fmt.Errorf("production %s: %w", name, err)
		}
		c.rules[name] = parse.Rule(name, nodeFor(name, p))
	}
	root, ok := c.rules[start]
	if !ok {
		return nil, fmt.Errorf("start production %q not defined", start)
	}
	return parse.NewGrammar(root), nil
}

type compiler struct {
	grammar ebnf.Grammar
	rules   map[string]parse.Parser
}

func (c *compiler) expression(expr ebnf.Expression) (parse.Parser, error) {
	switch e := expr.(type) {
	case ebnf.Sequence:
		ps := make([]parse.Parser, len(e))
		for i, item := range e {
			p, err := c.expression(item)
			if err != nil {
				return nil, err
			}
			ps[i] = p
		}
		return parse.Seq(ps...), nil

	case ebnf.Alternative:
		ps := make([]parse.Parser, len(e))
		for i, alt := range e {
			p, err := c.expression(alt)
			if err != nil {
				return nil, err
			}
			ps[i] = p
		}
		return parse.Choice(ps...), nil

	case *ebnf.Token:
		return parse.Text(strings.Trim(e.String, `"`)), nil

	case *ebnf.Range:
		lo := []rune(strings.Trim(e.Begin.String, `"`))
		hi := []rune(strings.Trim(e.End.String, `"`))
		if len(lo) != 1 || len(hi) != 1 {
			return nil, fmt.Errorf("range bounds must be single characters, got %q..%q",
				e.Begin.String, e.End.String)
		}
		return parse.Range(lo[0], hi[0]), nil

	case *ebnf.Group:
		return c.expression(e.Body)

	case *ebnf.Option:
		p, err := c.expression(e.Body)
		if err != nil {
			return nil, err
		}
		return parse.Optional(p), nil

	case *ebnf.Repetition:
		p, err := c.expression(e.Body)
		if err != nil {
			return nil, err
		}
		return parse.Star(p), nil

	case *ebnf.Name:
		name := e.String
		if prod, ok := c.grammar[name]; !ok || prod.Expr == nil {
			return nil, fmt.Errorf("undefined production %q", name)
		}
		return parse.Lazy(func() parse.Parser { return c.rules[name] }), nil

	default:
		return nil, fmt.Errorf("unsupported expression %T", expr)
	}
}

// nodeFor wraps a production body so that a successful match replaces the
// frame of child nodes with a single *Node.
func nodeFor(name string, p parse.Parser) parse.Parser {
	return parse.Push(p, func(st *parse.State, span parse.Span, values []any) any {
		n := &Node{Name: name, Start: span.Start, End: span.End}
		if len(values) == 0 {
			if in, ok := st.Input.(*parse.StringInput); ok {
				n.Text = in.Slice(span.Start, span.End)
			}
			return n
		}
		for _, v := range values {
			n.Kids = append(n.Kids, v.(*Node))
		}
		return n
	})
}
