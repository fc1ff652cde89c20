package machine

import (
	"errors"
	"fmt"
	"strings"
)

// Compilation failure kinds. Every diagnostic produced by Compile wraps one
// of these sentinels, so callers can classify failures with errors.Is.
var (
	// ErrSyntax covers definitions that do not match the clause grammar,
	// including empty transition blocks and malformed identifiers.
	ErrSyntax = errors.New("machine: syntax error")

	// ErrInitialState covers zero or multiple initial markers, and the
	// wildcard source marked initial.
	ErrInitialState = errors.New("machine: invalid initial state marking")

	// ErrDuplicateTransition covers two explicit clauses defining the same
	// (state, event) pair, regardless of whether the targets agree.
	ErrDuplicateTransition = errors.New("machine: duplicate transition")

	// ErrAmbiguousWildcard covers two wildcard clauses defining the same
	// event with different targets.
	ErrAmbiguousWildcard = errors.New("machine: ambiguous wildcard transition")

	// ErrInvalidInternalTransition covers "= _" on a wildcard source, where
	// no single "same as source" state exists.
	ErrInvalidInternalTransition = errors.New("machine: internal transition on wildcard source")

	// ErrUnknownCapability covers derive lists naming a capability the
	// emitter does not implement.
	ErrUnknownCapability = errors.New("machine: unknown derive capability")

	// ErrMalformedTable covers serialized tables whose shape does not
	// describe a valid machine.
	ErrMalformedTable = errors.New("machine: malformed transition table")
)

// Error is a structured compilation diagnostic. It identifies the offending
// clause, the nature of the violation, and, where one exists, a remediation
// hint. Unwrap exposes the sentinel kind for errors.Is.
type Error struct {
	Kind   error  // one of the sentinel errors above
	Clause string // offending clause text, "" when not clause-specific
	Pos    int    // byte offset of the clause in the source text
	Detail string
	Hint   string
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Clause != "" {
		fmt.Fprintf(&b, " (clause %q at offset %d)", e.Clause, e.Pos)
	}
	if e.Hint != "" {
		b.WriteString("\nhelp: ")
		b.WriteString(e.Hint)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Kind }

// clauseError builds a diagnostic tied to a specific clause.
func clauseError(kind error, c Clause, format string, args ...any) *Error {
	return &Error{
		Kind:   kind,
		Clause: c.text(),
		Pos:    c.Pos,
		Detail: fmt.Sprintf(format, args...),
	}
}
