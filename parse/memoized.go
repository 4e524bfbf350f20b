package parse

type memoized struct {
	p       Parser
	factory func() Memoizer
}

// Memo wraps p with a memoizer. Each parse gets its own memoizer instance
// from factory (unless the driver bound one explicitly); within a parse,
// re-running p at a position and context already seen replays the cached
// outcome instead of the parser. A cache hit is indistinguishable from
// re-running p, apart from the furthest-error side channel, to which a
// cached failure contributes at most once.
func Memo(p Parser, factory func() Memoizer) Parser {
	return &memoized{p: p, factory: factory}
}

func (m *memoized) Match(st *State) bool {
	memo := st.memoizerFor(m, m.factory)
	if e := memo.Get(m.p, st.Pos, st.Ctx); e != nil {
		if !e.Succeeded() {
			return false
		}
		if e.EndPos < e.StartPos {
			panic(engineErrorf(ErrMemoInconsistency, m.p,
				"cached entry ends at %d before its start %d", e.EndPos, e.StartPos))
		}
		for _, eff := range e.Delta {
			st.ApplyEffect(eff)
		}
		st.Pos = e.EndPos
		return true
	}

	start := st.Pos
	ctx := st.Ctx
	mark := st.JournalLen()
	ok := st.Parse(m.p)
	var delta []SideEffect
	if ok {
		delta = st.journalTail(mark)
	}
	memo.Memoize(NewMemoEntry(ok, m.p, start, st.Pos, delta, ctx))
	return ok
}

func (m *memoized) Children() []Parser { return []Parser{m.p} }
func (m *memoized) String() string     { return "memo(" + m.p.String() + ")" }
