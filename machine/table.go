package machine

// Compile expands, validates, and assembles the definition into an
// immutable Spec. Compilation is all-or-nothing: any violation aborts with
// a diagnostic and no partial table is produced.
func (d *Definition) Compile() (*Spec, error) {
	if d.Name != "" && !validIdent(d.Name) {
		return nil, &Error{Kind: ErrSyntax, Detail: "machine name " + quote(d.Name) + " is not an identifier"}
	}
	if err := validateDerives("derive_states", d.DeriveStates); err != nil {
		return nil, err
	}
	if err := validateDerives("derive_events", d.DeriveEvents); err != nil {
		return nil, err
	}
	if len(d.Clauses) == 0 {
		return nil, &Error{Kind: ErrSyntax, Detail: "transitions block is empty"}
	}

	if err := d.checkClauses(); err != nil {
		return nil, err
	}

	// Expand pattern shorthand clause by clause.
	var explicit []expandedTransition
	var wildcards []wildcardRule
	for _, c := range d.Clauses {
		triples, rules, err := expandClause(c)
		if err != nil {
			return nil, err
		}
		explicit = append(explicit, triples...)
		wildcards = append(wildcards, rules...)
	}

	states, events, initial := d.collectIdentifiers()

	// The initial state occupies slot 0 so that the zero value of emitted
	// enumerations is the default state.
	for i, s := range states {
		if s == initial && i != 0 {
			copy(states[1:i+1], states[:i])
			states[0] = initial
			break
		}
	}

	spec := &Spec{
		Name:         d.Name,
		States:       states,
		Events:       events,
		DeriveStates: resolveDerives(d.DeriveStates),
		DeriveEvents: resolveDerives(d.DeriveEvents),
	}
	spec.buildIndexes()
	spec.table = make([]int32, len(states)*len(events))
	for i := range spec.table {
		spec.table[i] = noTransition
	}

	if err := spec.insertExplicit(explicit); err != nil {
		return nil, err
	}
	if err := spec.applyWildcards(wildcards); err != nil {
		return nil, err
	}
	return spec, nil
}

// checkClauses enforces clause shape and initial-marker rules before any
// expansion happens.
func (d *Definition) checkClauses() error {
	var initialSeen bool
	for _, c := range d.Clauses {
		if c.Wildcard && c.Initial {
			return clauseError(ErrInitialState, c, "the wildcard source cannot be marked initial")
		}
		if !c.Wildcard && len(c.States) == 0 {
			return clauseError(ErrSyntax, c, "clause has no source states")
		}
		if len(c.Events) == 0 {
			return clauseError(ErrSyntax, c, "clause has no events")
		}
		if !c.Internal && !validIdent(c.Target) {
			return clauseError(ErrSyntax, c, "target %s is not an identifier", quote(c.Target))
		}
		for _, s := range c.States {
			if !validIdent(s) {
				return clauseError(ErrSyntax, c, "state %s is not an identifier", quote(s))
			}
		}
		for _, e := range c.Events {
			if !validIdent(e) {
				return clauseError(ErrSyntax, c, "event %s is not an identifier", quote(e))
			}
		}
		if c.Initial {
			if initialSeen {
				return clauseError(ErrInitialState, c, "more than one clause is marked '*'")
			}
			initialSeen = true
		}
	}
	if !initialSeen {
		return &Error{
			Kind:   ErrInitialState,
			Detail: "no clause is marked '*'",
			Hint:   "prefix exactly one concrete source state with '*' to declare the initial state",
		}
	}
	return nil
}

// collectIdentifiers gathers the distinct state and event identifiers in
// first-seen order: per clause, explicit sources, then the target, with
// events accumulated alongside. The initial state is the first alternative
// of the '*'-marked clause.
func (d *Definition) collectIdentifiers() (states, events []string, initial string) {
	seenState := make(map[string]bool)
	seenEvent := make(map[string]bool)
	for _, c := range d.Clauses {
		for _, s := range c.States {
			if !seenState[s] {
				seenState[s] = true
				states = append(states, s)
			}
		}
		if c.Initial && initial == "" {
			initial = c.States[0]
		}
		if !c.Internal && !seenState[c.Target] {
			seenState[c.Target] = true
			states = append(states, c.Target)
		}
		for _, e := range c.Events {
			if !seenEvent[e] {
				seenEvent[e] = true
				events = append(events, e)
			}
		}
	}
	return states, events, initial
}

// insertExplicit places concrete triples into the table, rejecting on the
// first (state, event) collision. Duplication is syntactic: identical
// targets still collide.
func (s *Spec) insertExplicit(triples []expandedTransition) error {
	for _, t := range triples {
		state := s.stateIndex[t.State]
		event := s.eventIndex[t.Event]
		slot := int(state)*len(s.Events) + int(event)
		if prev := s.table[slot]; prev != noTransition {
			return &Error{
				Kind:   ErrDuplicateTransition,
				Clause: t.clause.text(),
				Pos:    t.clause.Pos,
				Detail: "state '" + t.State + "' + event '" + t.Event +
					"' is already defined (targets '" + s.States[prev] + "' and '" + t.Target + "')",
				Hint: "each source state and event pair may appear once; use distinct events or move conditional logic into the host application",
			}
		}
		s.table[slot] = int32(s.stateIndex[t.Target])
	}
	return nil
}

// applyWildcards resolves wildcard rules against the full state set.
// Explicit transitions always win; two wildcard rules on one event are
// ambiguous unless their targets agree.
func (s *Spec) applyWildcards(rules []wildcardRule) error {
	chosen := make(map[string]wildcardRule)
	for _, r := range rules {
		if prev, ok := chosen[r.event]; ok {
			if prev.target == r.target {
				continue
			}
			return &Error{
				Kind:   ErrAmbiguousWildcard,
				Clause: r.clause.text(),
				Pos:    r.clause.Pos,
				Detail: "event '" + r.event + "' has wildcard targets '" + prev.target +
					"' and '" + r.target + "'",
				Hint: "a wildcard rule per event must name a single target",
			}
		}
		chosen[r.event] = r
	}
	for _, r := range chosen {
		event := s.eventIndex[r.event]
		target := s.stateIndex[r.target]
		for state := range s.States {
			slot := state*len(s.Events) + int(event)
			if s.table[slot] == noTransition {
				s.table[slot] = int32(target)
			}
		}
	}
	return nil
}

func resolveDerives(list []string) []string {
	if list == nil {
		return DefaultDerives()
	}
	out := make([]string, len(list))
	copy(out, list)
	return out
}

func quote(s string) string { return "'" + s + "'" }
