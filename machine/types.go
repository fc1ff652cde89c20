// Package machine defines the semantic model for declarative transition
// tables: clauses as written in a definition, the expansion of pattern
// shorthand into concrete transitions, and the validated Spec consumed by
// code generation, serialization, and the table interpreter.
//
// A Definition is compiled exactly once; a Spec is immutable after
// compilation and safe for concurrent read-only use.
package machine

import "strings"

// Clause is one transition rule as written in a machine definition.
// Pattern shorthand (alternation, wildcard source, internal target) is kept
// intact here and expanded during compilation.
type Clause struct {
	Wildcard bool     // source pattern is "_" and matches every state
	States   []string // concrete source state alternatives (empty when Wildcard)
	Initial  bool     // clause carries the leading "*" marker
	Events   []string // event alternatives, at least one
	Target   string   // destination state ("" when Internal)
	Internal bool     // target is "_": stay in the source state
	Pos      int      // byte offset of the clause in its source text
	Text     string   // clause source text, used in diagnostics
}

// String renders the clause in canonical definition syntax.
func (c Clause) String() string {
	var b strings.Builder
	if c.Initial {
		b.WriteString("*")
	}
	if c.Wildcard {
		b.WriteString("_")
	} else {
		b.WriteString(strings.Join(c.States, " | "))
	}
	b.WriteString(" + ")
	b.WriteString(strings.Join(c.Events, " | "))
	b.WriteString(" = ")
	if c.Internal {
		b.WriteString("_")
	} else {
		b.WriteString(c.Target)
	}
	return b.String()
}

// text returns the clause source text, falling back to the canonical
// rendering for clauses built programmatically.
func (c Clause) text() string {
	if c.Text != "" {
		return c.Text
	}
	return c.String()
}

// Definition is an ordered machine definition prior to compilation.
// Clause order matters only for the first-seen enumeration of state and
// event identifiers; lookup semantics are order-independent.
type Definition struct {
	Name         string
	DeriveStates []string // nil means the default capability set
	DeriveEvents []string
	Clauses      []Clause
}

// Transition is a fully expanded (state, event) -> target triple.
type Transition struct {
	State  string
	Event  string
	Target string
}

// validIdent reports whether s is usable as a state or event identifier:
// a letter or underscore followed by letters, digits, or underscores.
// The bare underscore is reserved for wildcard notation.
func validIdent(s string) bool {
	if s == "" || s == "_" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_':
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
