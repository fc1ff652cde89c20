package dsl

// MachineNode represents a parsed machine definition.
type MachineNode struct {
	Name         string
	DeriveStates []string // nil when the derive_states block is omitted
	DeriveEvents []string
	Clauses      []*ClauseNode
}

// ClauseNode represents one parsed transition clause.
type ClauseNode struct {
	Wildcard bool     // source pattern is "_"
	Initial  bool     // clause carries the leading "*"
	States   []string // concrete source alternatives
	Events   []string // event alternatives
	Target   string   // "" when Internal
	Internal bool     // target is "_"
	Pos      int      // byte offset of the clause start
	Text     string   // clause source text
}
