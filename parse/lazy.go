package parse

import "sync"

// LazyParser defers resolving a parser until first use. It is the only
// legal bridge for cycles in the parser graph: a rule referencing itself,
// or a forward declaration, goes through Lazy. The target is resolved
// exactly once and published under the sync.Once barrier, after which the
// node behaves as a transparent wrapper around it.
type LazyParser struct {
	once    sync.Once
	factory func() Parser
	target  Parser
}

// Lazy builds a bridge parser whose target is produced by factory on first
// use. The factory must be ready to run by the time the grammar is checked
// or parsed, i.e. every parser it references must have been constructed.
func Lazy(factory func() Parser) *LazyParser {
	return &LazyParser{factory: factory}
}

func (l *LazyParser) resolve() Parser {
	l.once.Do(func() {
		l.target = l.factory()
		l.factory = nil
		if l.target == nil {
			panic(engineErrorf(ErrInternal, l, "lazy factory returned nil"))
		}
	})
	return l.target
}

func (l *LazyParser) Match(st *State) bool { return st.Parse(l.resolve()) }

func (l *LazyParser) Children() []Parser { return []Parser{l.resolve()} }

// String never recurses into the target: the bridge may sit on a cycle,
// and rendering through it would not terminate. Named targets render by
// name, anything else as an opaque bridge.
func (l *LazyParser) String() string {
	if l.target != nil {
		if n, ok := l.target.(Named); ok && n.RuleName() != "" {
			return n.RuleName()
		}
	}
	return "<lazy>"
}
