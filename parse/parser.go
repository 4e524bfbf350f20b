package parse

// Parser is the contract every combinator implements. Match is the raw
// parsing body: on true it has advanced st.Pos (never moved it backwards)
// and journaled its side effects; on false the caller's executor discards
// whatever it did. Call Match only through (*State).Parse, which enforces
// that discipline.
type Parser interface {
	Match(st *State) bool

	// Children returns every sub-parser referenced, for graph walks.
	Children() []Parser

	// String renders the parser for diagnostics.
	String() string
}

// Leaf marks parsers that fail directly on the input rather than through
// sub-parsers. The executor records furthest-error causes only for leaves,
// so that diagnostics name "digit" rather than every enclosing sequence.
type Leaf interface {
	Parser
	Leaf() bool
}

// Named is implemented by parsers carrying a display name.
type Named interface {
	RuleName() string
}

// Name returns p's rule name when it has one, its String rendering
// otherwise.
func Name(p Parser) string {
	if n, ok := p.(Named); ok {
		if name := n.RuleName(); name != "" {
			return name
		}
	}
	return p.String()
}

// Parse is the executor: the single entry point through which one parser
// invokes another. It wraps p.Match in a snapshot so that after it returns
// the state is either strictly advanced with effects retained, or restored
// to what it was. A failing leaf additionally feeds the furthest-error
// tracking at its entry position.
func (st *State) Parse(p Parser) bool {
	snap := st.Snapshot()
	if p.Match(st) {
		if st.Pos < snap.Pos {
			panic(engineErrorf(ErrInternal, p,
				"matched but moved the position backwards (%d -> %d)", snap.Pos, st.Pos))
		}
		return true
	}
	st.Rollback(snap)
	if leaf, ok := p.(Leaf); ok && leaf.Leaf() {
		st.RecordError(p, snap.Pos)
	}
	return false
}

// rule gives a parser a display name without changing its behavior.
type rule struct {
	name string
	p    Parser
}

// Rule names p for diagnostics and graph dumps. The wrapper delegates
// parsing to p unchanged.
func Rule(name string, p Parser) Parser {
	return &rule{name: name, p: p}
}

func (r *rule) Match(st *State) bool { return st.Parse(r.p) }
func (r *rule) Children() []Parser   { return []Parser{r.p} }
func (r *rule) RuleName() string     { return r.name }
func (r *rule) String() string       { return r.name }
