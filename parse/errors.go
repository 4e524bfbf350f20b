package parse

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by the engine. Match failure is not among them: a
// parser that simply does not match returns false and contributes to the
// furthest-error tracking instead.
var (
	// ErrIllFormed reports that the well-formedness check found
	// unprotected left-recursion or an unbounded repetition over a
	// nullable body.
	ErrIllFormed = errors.New("grammar is ill-formed")

	// ErrWrongInputMode reports that a character primitive ran against a
	// token input, or a token primitive against a character input.
	ErrWrongInputMode = errors.New("wrong input mode")

	// ErrMemoInconsistency reports that replaying a cached entry produced
	// an invalid state.
	ErrMemoInconsistency = errors.New("memoizer inconsistency")

	// ErrInternal reports a broken engine invariant, such as a parser
	// moving the position backwards or a rollback past the journal end.
	ErrInternal = errors.New("internal invariant violated")
)

// EngineError is a fatal error raised during parsing or grammar checking.
// Parsers panic with *EngineError; the driver recovers it and returns it to
// the caller.
type EngineError struct {
	Kind    error
	Parser  Parser
	Message string
}

func (e *EngineError) Error() string {
	if e.Parser != nil {
		return fmt.Sprintf("parse: %s: %s (in %s)", e.Kind, e.Message, Name(e.Parser))
	}
	return fmt.Sprintf("parse: %s: %s", e.Kind, e.Message)
}

func (e *EngineError) Unwrap() error { return e.Kind }

func engineErrorf(kind error, p Parser, format string, args ...any) *EngineError {
	return &EngineError{Kind: kind, Parser: p, Message: fmt.Sprintf(format, args...)}
}
