// Package grampilererr holds the error taxonomy of the analysis pipeline:
// grammar-structural errors, non-fatal LL(1)/LR conflict reports, and fatal
// internal invariant violations, each carrying both a technical message and
// a human-readable one the CLI and HTTP front ends can show directly to an
// operator.
package grampilererr

import "fmt"

// Kind distinguishes the error taxonomy of spec §7.
type Kind int

const (
	// KindStructural is a grammar-structural error: missing start
	// non-terminal, undefined non-terminal reference. The analyses assume
	// the IR is already well-formed and do not produce these; they are
	// returned by grammar.Validate, the light structural check the CLI and
	// server run before analyzing.
	KindStructural Kind = iota

	// KindLLAmbiguity is a non-fatal LL(1) ambiguity: two productions of the
	// same non-terminal predict an overlapping terminal.
	KindLLAmbiguity

	// KindLRConflict is a non-fatal shift/reduce or reduce/reduce conflict
	// in an LR state.
	KindLRConflict

	// KindInternal is a fatal internal invariant violation: a bug in the
	// builder, not a user error.
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindStructural:
		return "structural"
	case KindLLAmbiguity:
		return "ll-ambiguity"
	case KindLRConflict:
		return "lr-conflict"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error pairs a technical message (for logs) with a human-readable one (for
// an operator's terminal), the same split tqerrors.InterpreterError makes
// between Error() and GameMessage().
type Error struct {
	kind      Kind
	technical string
	human     string
	wrapped   error
}

func (e *Error) Error() string {
	return e.technical
}

// Human returns the message meant to be shown to an operator.
func (e *Error) Human() string {
	return e.human
}

// Kind returns the error's taxonomy classification.
func (e *Error) Kind() Kind {
	return e.kind
}

// Unwrap gives the wrapped error, if this Error wraps one.
func (e *Error) Unwrap() error {
	return e.wrapped
}

// New returns a new Error of the given kind with both a human-readable and a
// technical message. If technical is empty one is derived from human.
func New(kind Kind, human, technical string) error {
	if technical == "" {
		technical = fmt.Sprintf("%s: %s", kind, human)
	}
	return &Error{kind: kind, human: human, technical: technical}
}

// Newf is New with a human-facing message built from a format string.
func Newf(kind Kind, humanFormat string, a ...interface{}) error {
	return New(kind, fmt.Sprintf(humanFormat, a...), "")
}

// Wrap returns a new Error that wraps e, carrying its own human/technical
// pair in addition to the wrapped cause.
func Wrap(e error, kind Kind, human, technical string) error {
	if technical == "" {
		technical = fmt.Sprintf("%s: %s", kind, human)
	}
	return &Error{kind: kind, human: human, technical: technical, wrapped: e}
}

// HumanMessage returns the message meant for an operator's terminal. If err
// is not one of this package's Error type, err.Error() is returned instead.
func HumanMessage(err error) string {
	if ge, ok := err.(*Error); ok {
		return ge.Human()
	}
	return err.Error()
}

// Internal returns a fatal internal-invariant-violation error. Per spec §7
// this denotes a bug in the builder, not a user error, and should abort the
// pipeline rather than be collected alongside conflict diagnostics.
func Internal(technical string) error {
	return New(KindInternal, "an internal error occurred in the grammar analyzer", technical)
}

// Internalf is Internal with a formatted technical message.
func Internalf(format string, a ...interface{}) error {
	return Internal(fmt.Sprintf(format, a...))
}
