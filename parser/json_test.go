package parser

import (
	"strings"
	"testing"
)

const doorJSON = `{
  "name": "Door",
  "derive_states": ["Debug"],
  "transitions": [
    {"states": ["Closed"], "initial": true, "events": ["Open"], "target": "Opened"},
    {"states": ["Opened"], "events": ["Close"], "target": "Closed"},
    {"states": ["Opened"], "events": ["Knock"], "internal": true},
    {"wildcard": true, "events": ["Lock"], "target": "Locked"}
  ]
}`

func TestFromJSON(t *testing.T) {
	def, err := FromJSON([]byte(doorJSON))
	if err != nil {
		t.Fatalf("FromJSON() failed: %v", err)
	}
	if def.Name != "Door" {
		t.Errorf("Name = %q, want Door", def.Name)
	}
	if len(def.Clauses) != 4 {
		t.Fatalf("len(Clauses) = %d, want 4", len(def.Clauses))
	}
	if !def.Clauses[0].Initial {
		t.Error("first clause lost its initial marker")
	}
	if !def.Clauses[2].Internal {
		t.Error("third clause lost its internal marker")
	}
	if !def.Clauses[3].Wildcard {
		t.Error("fourth clause lost its wildcard source")
	}
}

func TestFromJSONCompiles(t *testing.T) {
	def, err := FromJSON([]byte(doorJSON))
	if err != nil {
		t.Fatalf("FromJSON() failed: %v", err)
	}
	spec, err := def.Compile()
	if err != nil {
		t.Fatalf("Compile() failed: %v", err)
	}

	if spec.StateName(spec.InitialState()) != "Closed" {
		t.Errorf("initial state = %q, want Closed", spec.StateName(spec.InitialState()))
	}
	locked, ok := spec.StateIndex("Locked")
	if !ok {
		t.Fatalf("wildcard target Locked missing from %v", spec.States)
	}
	lock, _ := spec.EventIndex("Lock")
	closed, _ := spec.StateIndex("Closed")
	if next, fired := spec.ProcessEvent(closed, lock); !fired || next != locked {
		t.Errorf("Closed + Lock = (%v, %v), want (Locked, true)", next, fired)
	}
}

func TestFromJSONErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			"invalid JSON",
			`{"transitions": [`,
			"invalid JSON",
		},
		{
			"wildcard with states",
			`{"transitions": [{"wildcard": true, "states": ["A"], "events": ["Go"], "target": "B"}]}`,
			"wildcard clauses take no states",
		},
		{
			"internal with target",
			`{"transitions": [{"states": ["A"], "events": ["Go"], "target": "B", "internal": true}]}`,
			"internal clauses take no target",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromJSON([]byte(tt.input))
			if err == nil {
				t.Fatal("FromJSON() succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("FromJSON() = %v, want message containing %q", err, tt.want)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	def, err := FromJSON([]byte(doorJSON))
	if err != nil {
		t.Fatalf("FromJSON() failed: %v", err)
	}
	data, err := ToJSON(def)
	if err != nil {
		t.Fatalf("ToJSON() failed: %v", err)
	}
	again, err := FromJSON(data)
	if err != nil {
		t.Fatalf("FromJSON(ToJSON output) failed: %v", err)
	}

	if len(again.Clauses) != len(def.Clauses) {
		t.Fatalf("round trip changed clause count: %d vs %d", len(again.Clauses), len(def.Clauses))
	}
	for i := range def.Clauses {
		if def.Clauses[i].String() != again.Clauses[i].String() {
			t.Errorf("clause %d changed: %q vs %q", i, def.Clauses[i], again.Clauses[i])
		}
	}
}
