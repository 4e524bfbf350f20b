package parse

// SideEffect is a reversible mutation of the parse state. Apply has already
// run by the time the effect sits in the journal; Unapply returns the state
// to what it was immediately before Apply. Apply may run again when a
// memoized result is replayed, so both closures must be written relative to
// the current state (e.g. "pop two, push one"), never against absolute
// stack indices.
type SideEffect struct {
	Apply   func(st *State)
	Unapply func(st *State)
}

// Snapshot captures the transactional part of a State: position, journal
// length and user context. Furthest-error data is deliberately not part of
// a snapshot; it survives rollback to feed diagnostics.
type Snapshot struct {
	Pos     int
	Journal int
	Ctx     any
}

// State is the mutable bundle threaded through a parse: the input, the
// current position, the side-effect journal, the value stack, the user
// context slot and the furthest-error bookkeeping. A State belongs to a
// single parse and is never shared across goroutines.
type State struct {
	Input Input

	// Pos is the current position. Parsers advance it on success; the
	// executor restores it on failure.
	Pos int

	// Ctx is an opaque user context. Swap it through SetContext so the
	// change is journaled, or rely on snapshot/rollback restoring it.
	Ctx any

	// FurthestPos is the maximum position at which a leaf parser failed,
	// -1 before the first failure.
	FurthestPos int

	stack   []any
	journal []SideEffect
	causes  []Parser
	memos   map[Parser]Memoizer
}

// NewState builds a fresh state over in, positioned at 0.
func NewState(in Input) *State {
	return &State{Input: in, FurthestPos: -1}
}

// Snapshot captures the current transactional state.
func (st *State) Snapshot() Snapshot {
	return Snapshot{Pos: st.Pos, Journal: len(st.journal), Ctx: st.Ctx}
}

// Commit keeps everything applied since the snapshot. It exists for
// symmetry with Rollback and does nothing.
func (st *State) Commit(Snapshot) {}

// Rollback undoes, in reverse order, every side effect journaled since the
// snapshot, then restores position and context. Furthest-error fields are
// left untouched.
func (st *State) Rollback(s Snapshot) {
	if s.Journal > len(st.journal) {
		panic(engineErrorf(ErrInternal, nil,
			"rollback to journal length %d but only %d entries exist", s.Journal, len(st.journal)))
	}
	for i := len(st.journal) - 1; i >= s.Journal; i-- {
		st.journal[i].Unapply(st)
	}
	st.journal = st.journal[:s.Journal]
	st.Pos = s.Pos
	st.Ctx = s.Ctx
}

// ApplyEffect runs the effect and journals it.
func (st *State) ApplyEffect(e SideEffect) {
	e.Apply(st)
	st.journal = append(st.journal, e)
}

// Log journals an effect that has already been applied.
func (st *State) Log(e SideEffect) {
	st.journal = append(st.journal, e)
}

// JournalLen returns the number of journaled effects.
func (st *State) JournalLen() int { return len(st.journal) }

// journalTail copies the journal entries from index from onward.
func (st *State) journalTail(from int) []SideEffect {
	if from >= len(st.journal) {
		return nil
	}
	return append([]SideEffect(nil), st.journal[from:]...)
}

// SetContext swaps the user context through the journal, so the swap is
// undone on rollback and replayed on a memo hit.
func (st *State) SetContext(ctx any) {
	prev := st.Ctx
	st.ApplyEffect(SideEffect{
		Apply:   func(s *State) { s.Ctx = ctx },
		Unapply: func(s *State) { s.Ctx = prev },
	})
}

// PushValue pushes v onto the value stack through the journal.
func (st *State) PushValue(v any) {
	st.ApplyEffect(SideEffect{
		Apply:   func(s *State) { s.stack = append(s.stack, v) },
		Unapply: func(s *State) { s.stack = s.stack[:len(s.stack)-1] },
	})
}

// ReplaceTop pops the top k values and pushes v in their place, through the
// journal. The replacement is expressed relative to the stack top so a
// memoized replay lands correctly whatever the surrounding stack depth.
func (st *State) ReplaceTop(k int, v any) {
	if k < 0 || k > len(st.stack) {
		panic(engineErrorf(ErrInternal, nil,
			"replace %d values on a stack of %d", k, len(st.stack)))
	}
	removed := append([]any(nil), st.stack[len(st.stack)-k:]...)
	st.ApplyEffect(SideEffect{
		Apply: func(s *State) {
			s.stack = append(s.stack[:len(s.stack)-k], v)
		},
		Unapply: func(s *State) {
			s.stack = append(s.stack[:len(s.stack)-1], removed...)
		},
	})
}

// StackLen returns the value stack depth.
func (st *State) StackLen() int { return len(st.stack) }

// StackSlice copies the values from index from to the top of the stack.
func (st *State) StackSlice(from int) []any {
	return append([]any(nil), st.stack[from:]...)
}

// Values copies the whole value stack, bottom first.
func (st *State) Values() []any {
	return append([]any(nil), st.stack...)
}

// RecordError notes that parser p failed to match at pos. Only the failures
// at the furthest position reached are retained; a new furthest position
// clears the previous causes.
func (st *State) RecordError(p Parser, pos int) {
	switch {
	case pos > st.FurthestPos:
		st.FurthestPos = pos
		st.causes = append(st.causes[:0], p)
	case pos == st.FurthestPos:
		for _, q := range st.causes {
			if q == p {
				return
			}
		}
		st.causes = append(st.causes, p)
	}
}

// Causes copies the parsers recorded at the furthest error position.
func (st *State) Causes() []Parser {
	return append([]Parser(nil), st.causes...)
}

// memoizerFor returns the per-parse memoizer instance bound to key,
// creating it through factory on first use. The driver may pre-seed a
// binding, which then takes precedence over the factory.
func (st *State) memoizerFor(key Parser, factory func() Memoizer) Memoizer {
	if m, ok := st.memos[key]; ok {
		return m
	}
	m := factory()
	if st.memos == nil {
		st.memos = make(map[Parser]Memoizer)
	}
	st.memos[key] = m
	return m
}

// bindMemoizer installs a driver-provided memoizer for key.
func (st *State) bindMemoizer(key Parser, m Memoizer) {
	if st.memos == nil {
		st.memos = make(map[Parser]Memoizer)
	}
	st.memos[key] = m
}
