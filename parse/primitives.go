package parse

import (
	"fmt"
	"strings"
)

// Primitives match a single item of input. They are all furthest-error
// leaves.

type charLit struct {
	r rune
}

// Char matches exactly the character r and advances by one.
func Char(r rune) Parser { return &charLit{r: r} }

func (c *charLit) Match(st *State) bool {
	if st.Pos < st.Input.Len() && st.Input.CharAt(st.Pos) == c.r {
		st.Pos++
		return true
	}
	return false
}

func (c *charLit) Children() []Parser { return nil }
func (c *charLit) Leaf() bool         { return true }
func (c *charLit) String() string     { return fmt.Sprintf("%q", string(c.r)) }

type textLit struct {
	runes []rune
	text  string
}

// Text matches the literal string s character by character.
func Text(s string) Parser { return &textLit{runes: []rune(s), text: s} }

func (t *textLit) Match(st *State) bool {
	if st.Pos+len(t.runes) > st.Input.Len() {
		return false
	}
	for i, r := range t.runes {
		if st.Input.CharAt(st.Pos+i) != r {
			return false
		}
	}
	st.Pos += len(t.runes)
	return true
}

func (t *textLit) Children() []Parser { return nil }
func (t *textLit) Leaf() bool         { return true }
func (t *textLit) String() string     { return fmt.Sprintf("%q", t.text) }

// Nullable reports whether the literal is the empty string.
func (t *textLit) Nullable() bool { return len(t.runes) == 0 }

type charRange struct {
	lo, hi rune
}

// Range matches any character between lo and hi inclusive.
func Range(lo, hi rune) Parser { return &charRange{lo: lo, hi: hi} }

func (c *charRange) Match(st *State) bool {
	if st.Pos >= st.Input.Len() {
		return false
	}
	r := st.Input.CharAt(st.Pos)
	if r < c.lo || r > c.hi {
		return false
	}
	st.Pos++
	return true
}

func (c *charRange) Children() []Parser { return nil }
func (c *charRange) Leaf() bool         { return true }
func (c *charRange) String() string {
	return fmt.Sprintf("[%s-%s]", string(c.lo), string(c.hi))
}

type charSet struct {
	chars string
}

// Set matches any one of the given characters.
func Set(chars string) Parser { return &charSet{chars: chars} }

func (c *charSet) Match(st *State) bool {
	if st.Pos >= st.Input.Len() {
		return false
	}
	if !strings.ContainsRune(c.chars, st.Input.CharAt(st.Pos)) {
		return false
	}
	st.Pos++
	return true
}

func (c *charSet) Children() []Parser { return nil }
func (c *charSet) Leaf() bool         { return true }
func (c *charSet) String() string     { return fmt.Sprintf("[%s]", c.chars) }

type charPred struct {
	name string
	pred func(rune) bool
}

// CharPred matches a single character satisfying pred. The name shows up in
// error causes, so pick something a user recognizes ("digit", "letter").
func CharPred(name string, pred func(rune) bool) Parser {
	return &charPred{name: name, pred: pred}
}

func (c *charPred) Match(st *State) bool {
	if st.Pos >= st.Input.Len() || !c.pred(st.Input.CharAt(st.Pos)) {
		return false
	}
	st.Pos++
	return true
}

func (c *charPred) Children() []Parser { return nil }
func (c *charPred) Leaf() bool         { return true }
func (c *charPred) RuleName() string   { return c.name }
func (c *charPred) String() string     { return c.name }

type anyChar struct{}

// AnyChar matches any single character.
var AnyChar Parser = anyChar{}

func (anyChar) Match(st *State) bool {
	if st.Pos >= st.Input.Len() {
		return false
	}
	st.Pos++
	return true
}

func (anyChar) Children() []Parser { return nil }
func (anyChar) Leaf() bool         { return true }
func (anyChar) String() string     { return "." }

type objectPred struct {
	name string
	pred func(any) bool
}

// Object matches a single token satisfying pred. Only valid on token
// inputs.
func Object(name string, pred func(any) bool) Parser {
	return &objectPred{name: name, pred: pred}
}

func (o *objectPred) Match(st *State) bool {
	if st.Pos >= st.Input.Len() || !o.pred(st.Input.ObjectAt(st.Pos)) {
		return false
	}
	st.Pos++
	return true
}

func (o *objectPred) Children() []Parser { return nil }
func (o *objectPred) Leaf() bool         { return true }
func (o *objectPred) RuleName() string   { return o.name }
func (o *objectPred) String() string     { return o.name }

type endOfInput struct{}

// End succeeds only at the end of the input and consumes nothing.
var End Parser = endOfInput{}

func (endOfInput) Match(st *State) bool { return st.Pos >= st.Input.Len() }
func (endOfInput) Children() []Parser   { return nil }
func (endOfInput) Leaf() bool           { return true }
func (endOfInput) Nullable() bool       { return true }
func (endOfInput) String() string       { return "<end>" }
