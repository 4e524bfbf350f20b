package parse

import (
	"strings"
	"sync"
)

// Result is the outcome of a top-level parse. On a match, EndPos is the
// position after the root parser and Values is the final value stack. On a
// failure, FurthestPos and Causes carry the furthest-error diagnostics
// accumulated during the parse.
type Result struct {
	Matched     bool
	EndPos      int
	Values      []any
	FurthestPos int
	Causes      []Parser
}

// CauseNames renders the display names of the failure causes.
func (r *Result) CauseNames() []string {
	names := make([]string, len(r.Causes))
	for i, p := range r.Causes {
		names[i] = Name(p)
	}
	return names
}

type parseOptions struct {
	prefix    bool
	skipCheck bool
	ctx       any
	memos     []memoBinding
}

type memoBinding struct {
	parser   Parser
	memoizer Memoizer
}

// Option configures a single parse invocation.
type Option func(*parseOptions)

// WithPrefixMatch accepts a parse that recognizes a strict prefix of the
// input. By default the whole input must be consumed.
func WithPrefixMatch() Option {
	return func(o *parseOptions) { o.prefix = true }
}

// WithoutCheck skips the well-formedness check for this invocation.
func WithoutCheck() Option {
	return func(o *parseOptions) { o.skipCheck = true }
}

// WithContext seeds the user-context slot of the parse state.
func WithContext(ctx any) Option {
	return func(o *parseOptions) { o.ctx = ctx }
}

// WithMemoizer binds m to the given Memo parser for this invocation,
// overriding the parser's own factory.
func WithMemoizer(p Parser, m Memoizer) Option {
	return func(o *parseOptions) { o.memos = append(o.memos, memoBinding{parser: p, memoizer: m}) }
}

// Grammar freezes a root parser. The well-formedness analysis runs at most
// once per Grammar, on the first parse or the first explicit Check call. A
// Grammar is immutable after construction and safe for concurrent parses,
// each of which gets its own State.
type Grammar struct {
	root      Parser
	checkOnce sync.Once
	diags     []Diagnostic
}

// NewGrammar freezes root.
func NewGrammar(root Parser) *Grammar {
	return &Grammar{root: root}
}

// Root returns the root parser.
func (g *Grammar) Root() Parser { return g.root }

// Check runs the well-formedness analysis, caching the result.
func (g *Grammar) Check() []Diagnostic {
	g.checkOnce.Do(func() { g.diags = Check(g.root) })
	return g.diags
}

// Parse runs the root parser over in. The returned error is non-nil only
// for fatal conditions (an ill-formed grammar, a wrong-mode input access,
// a broken invariant); an input that merely does not match produces a
// Result with Matched false and a nil error.
func (g *Grammar) Parse(in Input, opts ...Option) (res *Result, err error) {
	var o parseOptions
	for _, opt := range opts {
		opt(&o)
	}

	if !o.skipCheck {
		if diags := g.Check(); len(diags) > 0 {
			msgs := make([]string, len(diags))
			for i, d := range diags {
				msgs[i] = d.String()
			}
			return nil, engineErrorf(ErrIllFormed, g.root, "%s", strings.Join(msgs, "; "))
		}
	}

	st := NewState(in)
	st.Ctx = o.ctx
	for _, b := range o.memos {
		st.bindMemoizer(b.parser, b.memoizer)
	}

	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(*EngineError); ok {
				res, err = nil, e
				return
			}
			panic(r)
		}
	}()

	matched := st.Parse(g.root)
	if matched && !o.prefix && st.Pos != in.Len() {
		matched = false
	}

	res = &Result{
		Matched:     matched,
		FurthestPos: st.FurthestPos,
		Causes:      st.Causes(),
	}
	if matched {
		res.EndPos = st.Pos
		res.Values = st.Values()
	}
	return res, nil
}

var grammars sync.Map // Parser -> *Grammar

// Run parses in with root, reusing a cached Grammar (and so a cached
// well-formedness result) for roots it has seen before.
func Run(root Parser, in Input, opts ...Option) (*Result, error) {
	g, ok := grammars.Load(root)
	if !ok {
		g, _ = grammars.LoadOrStore(root, NewGrammar(root))
	}
	return g.(*Grammar).Parse(in, opts...)
}
