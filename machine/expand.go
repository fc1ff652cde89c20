package machine

// wildcardRule is a deferred transition applying to every state that lacks
// an explicit rule for the event. Resolution against the concrete state set
// happens during table construction, once the full set is known.
type wildcardRule struct {
	event  string
	target string
	clause Clause
}

// expandedTransition is one concrete triple plus its originating clause,
// kept for diagnostics.
type expandedTransition struct {
	Transition
	clause Clause
}

// expandClause turns one clause into its concrete transitions, or into
// wildcard rules when the source pattern matches every state. It is a pure
// function of the clause: the Cartesian product of state and event
// alternatives, with "_" targets resolved to the source state.
func expandClause(c Clause) ([]expandedTransition, []wildcardRule, error) {
	if c.Wildcard {
		if c.Internal {
			return nil, nil, clauseError(ErrInvalidInternalTransition, c,
				"target '_' is meaningless when the source is every state")
		}
		rules := make([]wildcardRule, 0, len(c.Events))
		for _, event := range c.Events {
			rules = append(rules, wildcardRule{event: event, target: c.Target, clause: c})
		}
		return nil, rules, nil
	}

	triples := make([]expandedTransition, 0, len(c.States)*len(c.Events))
	for _, state := range c.States {
		target := c.Target
		if c.Internal {
			target = state
		}
		for _, event := range c.Events {
			triples = append(triples, expandedTransition{
				Transition: Transition{State: state, Event: event, Target: target},
				clause:     c,
			})
		}
	}
	return triples, nil, nil
}
