package dsl

import (
	"strings"

	"github.com/statec-xyz/go-statec/machine"
)

// Builder provides a fluent API for constructing machine definitions.
// Each Transition or AnyState call starts a new clause; On, To, Internal,
// and Initial modify the current one.
type Builder struct {
	node    *MachineNode
	current *ClauseNode
}

// Build creates a new definition builder with the given machine name.
// Pass "" for the default (unnamed) namespace.
func Build(name string) *Builder {
	return &Builder{node: &MachineNode{Name: name}}
}

// DeriveStates sets the derive capability list for the state enumeration.
func (b *Builder) DeriveStates(caps ...string) *Builder {
	b.node.DeriveStates = caps
	return b
}

// DeriveEvents sets the derive capability list for the event enumeration.
func (b *Builder) DeriveEvents(caps ...string) *Builder {
	b.node.DeriveEvents = caps
	return b
}

// Transition starts a clause with one or more concrete source states.
func (b *Builder) Transition(states ...string) *Builder {
	clause := &ClauseNode{States: states}
	b.node.Clauses = append(b.node.Clauses, clause)
	b.current = clause
	return b
}

// AnyState starts a wildcard-source clause: it applies to every state that
// lacks a more specific rule for the clause's events.
func (b *Builder) AnyState() *Builder {
	clause := &ClauseNode{Wildcard: true}
	b.node.Clauses = append(b.node.Clauses, clause)
	b.current = clause
	return b
}

// Initial marks the current clause's source pattern as initial.
// Must be called after Transition().
func (b *Builder) Initial() *Builder {
	if b.current != nil {
		b.current.Initial = true
	}
	return b
}

// On sets the event alternatives of the current clause.
// Must be called after Transition() or AnyState().
func (b *Builder) On(events ...string) *Builder {
	if b.current != nil {
		b.current.Events = events
	}
	return b
}

// To sets the target state of the current clause.
func (b *Builder) To(target string) *Builder {
	if b.current != nil {
		b.current.Target = target
		b.current.Internal = false
	}
	return b
}

// Internal marks the current clause as an internal transition: the target
// resolves to the source state.
func (b *Builder) Internal() *Builder {
	if b.current != nil {
		b.current.Target = ""
		b.current.Internal = true
	}
	return b
}

// AST returns the underlying AST node.
func (b *Builder) AST() *MachineNode {
	return b.node
}

// Spec compiles the built definition into a validated machine.Spec.
func (b *Builder) Spec() (*machine.Spec, error) {
	return Interpret(b.node)
}

// MustSpec compiles the built definition and panics on failure.
func (b *Builder) MustSpec() *machine.Spec {
	spec, err := b.Spec()
	if err != nil {
		panic(err)
	}
	return spec
}

// String renders the definition as DSL text.
func (b *Builder) String() string {
	return Format(b.node)
}

// Format renders a MachineNode as canonical definition text.
func Format(node *MachineNode) string {
	var s strings.Builder
	if node.Name != "" {
		s.WriteString("name: " + node.Name + ",\n")
	}
	if node.DeriveStates != nil {
		s.WriteString("derive_states: [" + strings.Join(node.DeriveStates, ", ") + "],\n")
	}
	if node.DeriveEvents != nil {
		s.WriteString("derive_events: [" + strings.Join(node.DeriveEvents, ", ") + "],\n")
	}
	s.WriteString("transitions {\n")
	for _, c := range node.Clauses {
		s.WriteString("    ")
		if c.Initial {
			s.WriteString("*")
		}
		if c.Wildcard {
			s.WriteString("_")
		} else {
			s.WriteString(strings.Join(c.States, " | "))
		}
		s.WriteString(" + ")
		s.WriteString(strings.Join(c.Events, " | "))
		s.WriteString(" = ")
		if c.Internal {
			s.WriteString("_")
		} else {
			s.WriteString(c.Target)
		}
		s.WriteString(",\n")
	}
	s.WriteString("}\n")
	return s.String()
}
