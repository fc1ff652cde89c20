package dsl

import (
	"github.com/statec-xyz/go-statec/machine"
)

// Definition converts a parsed AST into a machine.Definition ready for
// compilation.
func Definition(node *MachineNode) *machine.Definition {
	def := &machine.Definition{
		Name:         node.Name,
		DeriveStates: node.DeriveStates,
		DeriveEvents: node.DeriveEvents,
	}
	for _, c := range node.Clauses {
		def.Clauses = append(def.Clauses, machine.Clause{
			Wildcard: c.Wildcard,
			States:   c.States,
			Initial:  c.Initial,
			Events:   c.Events,
			Target:   c.Target,
			Internal: c.Internal,
			Pos:      c.Pos,
			Text:     c.Text,
		})
	}
	return def
}

// Node converts a machine.Definition back into an AST, the inverse of
// Definition. Useful for rendering definitions loaded from other formats
// as DSL text.
func Node(def *machine.Definition) *MachineNode {
	node := &MachineNode{
		Name:         def.Name,
		DeriveStates: def.DeriveStates,
		DeriveEvents: def.DeriveEvents,
	}
	for i := range def.Clauses {
		c := &def.Clauses[i]
		node.Clauses = append(node.Clauses, &ClauseNode{
			Wildcard: c.Wildcard,
			States:   c.States,
			Initial:  c.Initial,
			Events:   c.Events,
			Target:   c.Target,
			Internal: c.Internal,
			Pos:      c.Pos,
			Text:     c.Text,
		})
	}
	return node
}

// Interpret compiles a parsed AST into a validated machine.Spec.
func Interpret(node *MachineNode) (*machine.Spec, error) {
	return Definition(node).Compile()
}

// ParseSpec parses definition text and returns a compiled machine.Spec.
// This is a convenience function that combines Parse and Interpret.
func ParseSpec(input string) (*machine.Spec, error) {
	node, err := Parse(input)
	if err != nil {
		return nil, err
	}
	return Interpret(node)
}
