package eventlog

import (
	"strings"
	"testing"
	"time"

	"github.com/statec-xyz/go-statec/dsl"
	"github.com/statec-xyz/go-statec/machine"
)

func doorSpec(t *testing.T) *machine.Spec {
	t.Helper()
	spec, err := dsl.ParseSpec(`
name: Door,
transitions {
    *Closed + Open = Opened,
    Opened + Close = Closed,
    Closed + Lock = Locked,
    Locked + Unlock = Closed,
}
`)
	if err != nil {
		t.Fatalf("ParseSpec() failed: %v", err)
	}
	return spec
}

func TestReadJSONL(t *testing.T) {
	input := `{"event": "Open", "timestamp": "2024-03-01T10:00:00Z", "actor": "alice"}

{"event": "Close"}
{"event": "Lock", "timestamp": "not a time"}
`
	trace, err := ReadJSONL(strings.NewReader(input), DefaultJSONLConfig())
	if err != nil {
		t.Fatalf("ReadJSONL() failed: %v", err)
	}
	if trace.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", trace.Len())
	}

	first := trace.Events[0]
	if first.Name != "Open" {
		t.Errorf("Events[0].Name = %q, want Open", first.Name)
	}
	want := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	if !first.Timestamp.Equal(want) {
		t.Errorf("Events[0].Timestamp = %v, want %v", first.Timestamp, want)
	}
	if first.Attrs["actor"] != "alice" {
		t.Errorf("Events[0].Attrs = %v, want actor=alice", first.Attrs)
	}

	// Unparseable timestamps degrade to the zero time, not an error.
	if !trace.Events[2].Timestamp.IsZero() {
		t.Errorf("Events[2].Timestamp = %v, want zero", trace.Events[2].Timestamp)
	}
}

func TestReadJSONLErrors(t *testing.T) {
	cfg := DefaultJSONLConfig()

	if _, err := ReadJSONL(strings.NewReader(`{"event": 42}`), cfg); err == nil {
		t.Error("ReadJSONL() accepted a non-string event field")
	}
	if _, err := ReadJSONL(strings.NewReader(`{"kind": "Open"}`), cfg); err == nil {
		t.Error("ReadJSONL() accepted a record missing the event field")
	}
	if _, err := ReadJSONL(strings.NewReader(`not json`), cfg); err == nil {
		t.Error("ReadJSONL() accepted malformed JSON")
	}

	cfg.EventField = ""
	if _, err := ReadJSONL(strings.NewReader(""), cfg); err == nil {
		t.Error("ReadJSONL() accepted an empty EventField")
	}
}

func TestReadJSONLCustomFields(t *testing.T) {
	cfg := JSONLConfig{EventField: "action"}
	trace, err := ReadJSONL(strings.NewReader(`{"action": "Open"}`), cfg)
	if err != nil {
		t.Fatalf("ReadJSONL() failed: %v", err)
	}
	if trace.Events[0].Name != "Open" {
		t.Errorf("Name = %q, want Open", trace.Events[0].Name)
	}
}

func TestReplayConformant(t *testing.T) {
	spec := doorSpec(t)
	trace := &Trace{Events: []Event{
		{Name: "Open"}, {Name: "Close"}, {Name: "Lock"}, {Name: "Unlock"},
	}}

	report := Replay(spec, trace)
	if !report.Conformant() {
		t.Errorf("Conformant() = false: %+v", report)
	}
	if report.Accepted != 4 {
		t.Errorf("Accepted = %d, want 4", report.Accepted)
	}
	if report.Final != "Closed" {
		t.Errorf("Final = %q, want Closed", report.Final)
	}
}

func TestReplayRejectedAndUnknown(t *testing.T) {
	spec := doorSpec(t)
	trace := &Trace{Events: []Event{
		{Name: "Close"},   // no transition from Closed
		{Name: "Explode"}, // not an event of the machine
		{Name: "Open"},    // fires
	}}

	report := Replay(spec, trace)
	if report.Accepted != 1 || report.Rejected != 1 || report.Unknown != 1 {
		t.Errorf("counts = (%d, %d, %d), want (1, 1, 1)",
			report.Accepted, report.Rejected, report.Unknown)
	}
	if report.Conformant() {
		t.Error("Conformant() = true with rejected and unknown events")
	}
	if report.Final != "Opened" {
		t.Errorf("Final = %q, want Opened", report.Final)
	}

	// Rejected events keep the state where it was.
	if s := report.Steps[0]; s.Accepted || s.From != "Closed" || s.To != "Closed" {
		t.Errorf("Steps[0] = %+v, want a rejected step staying in Closed", s)
	}
	if s := report.Steps[1]; s.Known {
		t.Errorf("Steps[1] = %+v, want Known=false", s)
	}
}
