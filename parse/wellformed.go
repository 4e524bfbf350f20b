package parse

import "strings"

// NullableDeclarer lets a user-defined parser declare that it may succeed
// without consuming input. Parsers that do not implement it are assumed to
// consume.
type NullableDeclarer interface {
	Nullable() bool
}

// LeftRecursionHandler tags a parser that deals with left-recursion itself.
// A left-edge cycle is only reported when some parser on it lacks the tag.
type LeftRecursionHandler interface {
	HandlesLeftRecursion()
}

// Diagnostic is one well-formedness finding. Any diagnostic makes the
// grammar unrunnable.
type Diagnostic struct {
	Message string
	Parsers []Parser
}

func (d Diagnostic) String() string {
	names := make([]string, len(d.Parsers))
	for i, p := range d.Parsers {
		names[i] = Name(p)
	}
	return d.Message + ": " + strings.Join(names, " -> ")
}

// Check analyses the parser graph reachable from root for unprotected
// left-recursion and for unbounded repetition over a nullable body. It runs
// once per grammar, before any parse.
func Check(root Parser) []Diagnostic {
	w := &wellFormed{
		nullable: make(map[Parser]bool),
		visited:  make(map[Parser]bool),
	}
	w.collect(root)
	w.fixNullable()
	var diags []Diagnostic
	diags = append(diags, w.findLeftRecursion()...)
	diags = append(diags, w.findNullableRepetitions()...)
	return diags
}

type wellFormed struct {
	nodes    []Parser
	visited  map[Parser]bool
	nullable map[Parser]bool
}

func (w *wellFormed) collect(p Parser) {
	if w.visited[p] {
		return
	}
	w.visited[p] = true
	w.nodes = append(w.nodes, p)
	for _, c := range p.Children() {
		w.collect(c)
	}
}

// fixNullable iterates the per-node nullability rule to a fixed point. The
// rule is monotone (false can flip to true, never back), so the loop
// terminates.
func (w *wellFormed) fixNullable() {
	for changed := true; changed; {
		changed = false
		for _, p := range w.nodes {
			if !w.nullable[p] && w.nullableNow(p) {
				w.nullable[p] = true
				changed = true
			}
		}
	}
}

func (w *wellFormed) nullableNow(p Parser) bool {
	switch q := p.(type) {
	case *sequence:
		for _, c := range q.ps {
			if !w.nullable[c] {
				return false
			}
		}
		return true
	case *choice:
		for _, c := range q.ps {
			if w.nullable[c] {
				return true
			}
		}
		return false
	case *repeat:
		return q.min == 0 || w.nullable[q.p]
	case *rule:
		return w.nullable[q.p]
	case *push:
		return w.nullable[q.p]
	case *memoized:
		return w.nullable[q.p]
	case *LazyParser:
		return w.nullable[q.resolve()]
	case *leftFold:
		return w.nullable[q.operand]
	case *rightFold:
		return w.nullable[q.operand]
	default:
		if d, ok := p.(NullableDeclarer); ok {
			return d.Nullable()
		}
		return false
	}
}

// leftEdges lists the sub-parsers p may invoke before consuming any input.
func (w *wellFormed) leftEdges(p Parser) []Parser {
	switch q := p.(type) {
	case *sequence:
		var edges []Parser
		for _, c := range q.ps {
			edges = append(edges, c)
			if !w.nullable[c] {
				break
			}
		}
		return edges
	case *choice:
		return q.ps
	case *repeat:
		return []Parser{q.p}
	case *optional:
		return []Parser{q.p}
	case *ahead:
		return []Parser{q.p}
	case *not:
		return []Parser{q.p}
	case *rule:
		return []Parser{q.p}
	case *push:
		return []Parser{q.p}
	case *memoized:
		return []Parser{q.p}
	case *LazyParser:
		return []Parser{q.resolve()}
	case *leftFold:
		edges := []Parser{q.operand}
		if w.nullable[q.operand] {
			for _, b := range q.branches {
				edges = append(edges, b.Suffix)
			}
		}
		return edges
	case *rightFold:
		edges := []Parser{q.operand}
		if w.nullable[q.operand] {
			edges = append(edges, q.tails...)
		}
		return edges
	default:
		// User-defined parsers: assume any child may run before input
		// is consumed.
		return p.Children()
	}
}

// findLeftRecursion walks the left-edge graph depth-first and reports each
// cycle whose parsers are not all tagged as handling left-recursion.
func (w *wellFormed) findLeftRecursion() []Diagnostic {
	const (
		unseen = iota
		active
		done
	)
	color := make(map[Parser]int)
	var stack []Parser
	var diags []Diagnostic
	reported := make(map[Parser]bool)

	var visit func(p Parser)
	visit = func(p Parser) {
		switch color[p] {
		case done:
			return
		case active:
			// Extract the cycle from the active stack.
			i := len(stack) - 1
			for i >= 0 && stack[i] != p {
				i--
			}
			cycle := append([]Parser(nil), stack[i:]...)
			protected := true
			for _, q := range cycle {
				if _, ok := q.(LeftRecursionHandler); !ok {
					protected = false
					break
				}
			}
			if !protected && !reported[p] {
				reported[p] = true
				diags = append(diags, Diagnostic{
					Message: "left-recursive cycle",
					Parsers: append(cycle, p),
				})
			}
			return
		}
		color[p] = active
		stack = append(stack, p)
		for _, q := range w.leftEdges(p) {
			visit(q)
		}
		stack = stack[:len(stack)-1]
		color[p] = done
	}

	for _, p := range w.nodes {
		visit(p)
	}
	return diags
}

func (w *wellFormed) findNullableRepetitions() []Diagnostic {
	var diags []Diagnostic
	for _, p := range w.nodes {
		if r, ok := p.(*repeat); ok && r.max < 0 && w.nullable[r.p] {
			diags = append(diags, Diagnostic{
				Message: "unbounded repetition over a nullable parser",
				Parsers: []Parser{r, r.p},
			})
		}
	}
	return diags
}
