package parse

import "strings"

type sequence struct {
	ps []Parser
}

// Seq runs its children in order and succeeds iff all of them succeed. Any
// child failing fails the sequence; the executor then restores the state.
func Seq(ps ...Parser) Parser {
	if len(ps) == 1 {
		return ps[0]
	}
	return &sequence{ps: ps}
}

func (s *sequence) Match(st *State) bool {
	for _, p := range s.ps {
		if !st.Parse(p) {
			return false
		}
	}
	return true
}

func (s *sequence) Children() []Parser { return s.ps }

func (s *sequence) String() string {
	return "(" + join(s.ps, " ") + ")"
}

type choice struct {
	ps []Parser
}

// Choice tries its children in order and commits to the first that
// succeeds; later alternatives are never revisited. It fails iff every
// child fails.
func Choice(ps ...Parser) Parser {
	if len(ps) == 1 {
		return ps[0]
	}
	return &choice{ps: ps}
}

func (c *choice) Match(st *State) bool {
	for _, p := range c.ps {
		if st.Parse(p) {
			return true
		}
	}
	return false
}

func (c *choice) Children() []Parser { return c.ps }

func (c *choice) String() string {
	return "(" + join(c.ps, " / ") + ")"
}

func join(ps []Parser, sep string) string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = p.String()
	}
	return strings.Join(parts, sep)
}
