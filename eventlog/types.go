// Package eventlog reads event traces and replays them against compiled
// machines. A trace is an ordered sequence of named events; replay reports,
// for each event, whether the machine defines a transition from the state
// reached so far. "No transition" is data, not an error.
package eventlog

import "time"

// Event is a single entry in a trace.
type Event struct {
	Name      string         // event identifier as the machine knows it
	Timestamp time.Time      // zero when the trace carries no timestamps
	Attrs     map[string]any // additional record fields, kept verbatim
}

// Trace is an ordered sequence of events.
type Trace struct {
	Events []Event
}

// Len returns the number of events in the trace.
func (t *Trace) Len() int { return len(t.Events) }
