package machine

// Report lists structural findings about a compiled machine. None of these
// are compilation failures; they flag definitions that are probably not
// what the author intended.
type Report struct {
	// UnreachableStates cannot be reached from the initial state by any
	// event sequence.
	UnreachableStates []string

	// TerminalStates have no outgoing transitions; once entered, no event
	// leaves them.
	TerminalStates []string

	// UnusedEvents appear in no transition at all. Compilation cannot
	// produce one, but tables reconstructed with FromTable can carry
	// empty event columns.
	UnusedEvents []string
}

// Clean reports whether the analysis found nothing to flag.
func (r *Report) Clean() bool {
	return len(r.UnreachableStates) == 0 && len(r.TerminalStates) == 0 &&
		len(r.UnusedEvents) == 0
}

// Analyze walks the transition table from the initial state and reports
// unreachable and terminal states.
func Analyze(s *Spec) *Report {
	reached := make([]bool, len(s.States))
	queue := []StateID{s.InitialState()}
	reached[s.InitialState()] = true
	for len(queue) > 0 {
		state := queue[0]
		queue = queue[1:]
		for event := 0; event < len(s.Events); event++ {
			target, ok := s.ProcessEvent(state, EventID(event))
			if ok && !reached[target] {
				reached[target] = true
				queue = append(queue, target)
			}
		}
	}

	report := &Report{}
	for i, name := range s.States {
		if !reached[i] {
			report.UnreachableStates = append(report.UnreachableStates, name)
		}
		outgoing := false
		for event := 0; event < len(s.Events); event++ {
			if s.table[i*len(s.Events)+event] != noTransition {
				outgoing = true
				break
			}
		}
		if !outgoing {
			report.TerminalStates = append(report.TerminalStates, name)
		}
	}
	for event, name := range s.Events {
		used := false
		for state := range s.States {
			if s.table[state*len(s.Events)+event] != noTransition {
				used = true
				break
			}
		}
		if !used {
			report.UnusedEvents = append(report.UnusedEvents, name)
		}
	}
	return report
}
