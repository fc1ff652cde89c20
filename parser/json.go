// Package parser handles JSON import/export for machine definitions.
// The JSON form carries exactly the information of the DSL text: metadata
// plus an ordered clause list with pattern shorthand intact. Compilation
// applies the same validation regardless of which surface produced the
// definition.
package parser

import (
	"encoding/json"
	"fmt"

	"github.com/statec-xyz/go-statec/machine"
)

// jsonMachine mirrors machine.Definition:
//
//	{
//	  "name": "Door",
//	  "derive_states": ["Debug", "Eq"],
//	  "derive_events": ["Debug"],
//	  "transitions": [
//	    {"states": ["Closed"], "initial": true, "events": ["Open"], "target": "Opened"},
//	    {"states": ["Opened"], "events": ["Knock"], "internal": true},
//	    {"wildcard": true, "events": ["Lock"], "target": "Locked"}
//	  ]
//	}
type jsonMachine struct {
	Name         string           `json:"name,omitempty"`
	DeriveStates []string         `json:"derive_states,omitempty"`
	DeriveEvents []string         `json:"derive_events,omitempty"`
	Transitions  []jsonTransition `json:"transitions"`
}

type jsonTransition struct {
	States   []string `json:"states,omitempty"`
	Wildcard bool     `json:"wildcard,omitempty"`
	Initial  bool     `json:"initial,omitempty"`
	Events   []string `json:"events"`
	Target   string   `json:"target,omitempty"`
	Internal bool     `json:"internal,omitempty"`
}

// FromJSON parses a machine definition from JSON bytes.
func FromJSON(data []byte) (*machine.Definition, error) {
	var raw jsonMachine
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	def := &machine.Definition{
		Name:         raw.Name,
		DeriveStates: raw.DeriveStates,
		DeriveEvents: raw.DeriveEvents,
	}
	for i, t := range raw.Transitions {
		if t.Wildcard && len(t.States) > 0 {
			return nil, fmt.Errorf("transition %d: wildcard clauses take no states", i)
		}
		if t.Internal && t.Target != "" {
			return nil, fmt.Errorf("transition %d: internal clauses take no target", i)
		}
		def.Clauses = append(def.Clauses, machine.Clause{
			Wildcard: t.Wildcard,
			States:   t.States,
			Initial:  t.Initial,
			Events:   t.Events,
			Target:   t.Target,
			Internal: t.Internal,
		})
	}
	return def, nil
}

// ToJSON serializes a machine definition as indented JSON.
func ToJSON(def *machine.Definition) ([]byte, error) {
	raw := jsonMachine{
		Name:         def.Name,
		DeriveStates: def.DeriveStates,
		DeriveEvents: def.DeriveEvents,
	}
	for _, c := range def.Clauses {
		raw.Transitions = append(raw.Transitions, jsonTransition{
			States:   c.States,
			Wildcard: c.Wildcard,
			Initial:  c.Initial,
			Events:   c.Events,
			Target:   c.Target,
			Internal: c.Internal,
		})
	}
	return json.MarshalIndent(raw, "", "  ")
}
