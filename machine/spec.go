package machine

import "fmt"

// StateID and EventID are dense indexes into a Spec's identifier
// enumerations. The initial state is always StateID(0).
type (
	StateID int
	EventID int
)

const noTransition = int32(-1)

// Spec is a validated, immutable machine: the namespace name, the state and
// event identifier enumerations (initial state first, then first-seen
// order), the requested derive capabilities, and the fully expanded
// transition table. A Spec holds no mutable state and is safe for
// concurrent use.
type Spec struct {
	Name         string
	States       []string
	Events       []string
	DeriveStates []string
	DeriveEvents []string

	// table is row-major: table[state*len(Events)+event] is the target
	// state index, or noTransition.
	table []int32

	stateIndex map[string]StateID
	eventIndex map[string]EventID
}

func (s *Spec) buildIndexes() {
	s.stateIndex = make(map[string]StateID, len(s.States))
	for i, name := range s.States {
		s.stateIndex[name] = StateID(i)
	}
	s.eventIndex = make(map[string]EventID, len(s.Events))
	for i, name := range s.Events {
		s.eventIndex[name] = EventID(i)
	}
}

// ProcessEvent looks up the transition for (state, event). The second
// result is false when the machine defines no transition for the pair,
// including out-of-range inputs; the lookup never fails otherwise.
func (s *Spec) ProcessEvent(state StateID, event EventID) (StateID, bool) {
	if state < 0 || int(state) >= len(s.States) || event < 0 || int(event) >= len(s.Events) {
		return state, false
	}
	target := s.table[int(state)*len(s.Events)+int(event)]
	if target == noTransition {
		return state, false
	}
	return StateID(target), true
}

// InitialState returns the '*'-marked state, which is always index zero.
func (s *Spec) InitialState() StateID { return 0 }

// StateIndex resolves a state identifier to its dense index.
func (s *Spec) StateIndex(name string) (StateID, bool) {
	id, ok := s.stateIndex[name]
	return id, ok
}

// EventIndex resolves an event identifier to its dense index.
func (s *Spec) EventIndex(name string) (EventID, bool) {
	id, ok := s.eventIndex[name]
	return id, ok
}

// StateName returns the identifier for a state index, or "" out of range.
func (s *Spec) StateName(id StateID) string {
	if id < 0 || int(id) >= len(s.States) {
		return ""
	}
	return s.States[id]
}

// EventName returns the identifier for an event index, or "" out of range.
func (s *Spec) EventName(id EventID) string {
	if id < 0 || int(id) >= len(s.Events) {
		return ""
	}
	return s.Events[id]
}

func (s *Spec) NumStates() int { return len(s.States) }
func (s *Spec) NumEvents() int { return len(s.Events) }

// Table returns a copy of the row-major transition table; -1 marks pairs
// with no transition.
func (s *Spec) Table() []int32 {
	out := make([]int32, len(s.table))
	copy(out, s.table)
	return out
}

// Transitions enumerates the expanded table as concrete triples, in state
// then event order.
func (s *Spec) Transitions() []Transition {
	var out []Transition
	for state := range s.States {
		for event := range s.Events {
			target := s.table[state*len(s.Events)+event]
			if target == noTransition {
				continue
			}
			out = append(out, Transition{
				State:  s.States[state],
				Event:  s.Events[event],
				Target: s.States[target],
			})
		}
	}
	return out
}

// String summarizes the machine.
func (s *Spec) String() string {
	name := s.Name
	if name == "" {
		name = "(default)"
	}
	return fmt.Sprintf("%s: %d states, %d events, %d transitions",
		name, len(s.States), len(s.Events), len(s.Transitions()))
}

// FromTable reconstructs a Spec from its serialized form, checking that the
// shape describes a valid machine. Derive lists are not part of the
// serialized table; the interpreter does not need them.
func FromTable(name string, states, events []string, table []int32) (*Spec, error) {
	if name != "" && !validIdent(name) {
		return nil, &Error{Kind: ErrMalformedTable, Detail: "machine name " + quote(name) + " is not an identifier"}
	}
	if len(states) == 0 {
		return nil, &Error{Kind: ErrMalformedTable, Detail: "no states"}
	}
	if len(table) != len(states)*len(events) {
		return nil, &Error{
			Kind:   ErrMalformedTable,
			Detail: fmt.Sprintf("table has %d entries, want %d", len(table), len(states)*len(events)),
		}
	}
	seen := make(map[string]bool)
	for _, s := range states {
		if !validIdent(s) {
			return nil, &Error{Kind: ErrMalformedTable, Detail: "state " + quote(s) + " is not an identifier"}
		}
		if seen[s] {
			return nil, &Error{Kind: ErrMalformedTable, Detail: "state " + quote(s) + " appears twice"}
		}
		seen[s] = true
	}
	seen = make(map[string]bool)
	for _, e := range events {
		if !validIdent(e) {
			return nil, &Error{Kind: ErrMalformedTable, Detail: "event " + quote(e) + " is not an identifier"}
		}
		if seen[e] {
			return nil, &Error{Kind: ErrMalformedTable, Detail: "event " + quote(e) + " appears twice"}
		}
		seen[e] = true
	}
	for i, target := range table {
		if target != noTransition && (target < 0 || int(target) >= len(states)) {
			return nil, &Error{
				Kind:   ErrMalformedTable,
				Detail: fmt.Sprintf("entry %d targets state %d, out of range", i, target),
			}
		}
	}

	spec := &Spec{
		Name:   name,
		States: append([]string(nil), states...),
		Events: append([]string(nil), events...),
		table:  append([]int32(nil), table...),
	}
	spec.buildIndexes()
	return spec, nil
}
