// Package parse implements a transactional parser combinator engine in the
// PEG tradition, for character or token inputs.
//
// # Overview
//
// A grammar is a graph of Parser nodes built from the combinator
// constructors in this package (Char, Seq, Choice, Repeat, LeftFold, ...).
// Parsing is recursive descent with vertical backtracking: an ordered
// choice commits to the first alternative that matches and never revisits
// the others.
//
// All user-visible mutation during a parse (pushing AST values, swapping
// the context slot) goes through a journal of reversible side effects.
// When a parser fails, the executor rolls the journal back, so a failed
// alternative leaves no trace:
//
//	st := parse.NewState(parse.NewStringInput("1+2"))
//	ok := st.Parse(grammarRoot)
//
// The one deliberate exception is furthest-error tracking: the maximum
// position at which a leaf parser failed, and the set of parsers that
// failed there, survive backtracking and are reported when the overall
// parse fails.
//
// # Driver
//
// NewGrammar freezes a root parser; Grammar.Parse runs it over an Input
// and returns a Result. Before the first parse the grammar is checked for
// unprotected left-recursion and for unbounded repetitions over nullable
// parsers; an ill-formed grammar refuses to run.
//
//	g := parse.NewGrammar(root)
//	res, err := g.Parse(parse.NewStringInput(text))
//
// # Memoization
//
// Memo wraps a parser with a cache of sub-parse outcomes keyed by
// position and context. MemoCache is a fixed-size ring keeping the most
// recent entries; MemoTable is unbounded. Cached entries replay their
// recorded side effects through the journal, so a hit is observably
// identical to re-running the parser.
package parse
