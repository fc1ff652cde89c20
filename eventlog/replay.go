package eventlog

import "github.com/statec-xyz/go-statec/machine"

// Step records the outcome of one trace event during replay.
type Step struct {
	Index    int    `json:"index"`
	Event    string `json:"event"`
	From     string `json:"from"`
	To       string `json:"to"`       // equals From when nothing fired
	Accepted bool   `json:"accepted"` // a transition fired
	Known    bool   `json:"known"`    // the event name exists in the machine
}

// Report summarizes a replay.
type Report struct {
	Machine  string `json:"machine"`
	Steps    []Step `json:"steps"`
	Accepted int    `json:"accepted"`
	Rejected int    `json:"rejected"` // known events with no transition
	Unknown  int    `json:"unknown"`  // event names the machine does not define
	Final    string `json:"final"`
}

// Conformant reports whether every trace event fired a transition.
func (r *Report) Conformant() bool {
	return r.Rejected == 0 && r.Unknown == 0
}

// Replay runs a trace through a compiled machine starting from its initial
// state. The current state only advances when a transition fires; rejected
// and unknown events leave it unchanged, mirroring a host that ignores
// "no transition" results.
func Replay(spec *machine.Spec, trace *Trace) *Report {
	report := &Report{Machine: spec.Name}
	state := spec.InitialState()

	for i, event := range trace.Events {
		step := Step{
			Index: i,
			Event: event.Name,
			From:  spec.StateName(state),
		}
		if id, ok := spec.EventIndex(event.Name); ok {
			step.Known = true
			if next, fired := spec.ProcessEvent(state, id); fired {
				step.Accepted = true
				state = next
				report.Accepted++
			} else {
				report.Rejected++
			}
		} else {
			report.Unknown++
		}
		step.To = spec.StateName(state)
		report.Steps = append(report.Steps, step)
	}

	report.Final = spec.StateName(state)
	return report
}
