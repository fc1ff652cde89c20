package artifact

import (
	"errors"
	"testing"

	"github.com/fxamacker/cbor/v2"

	"github.com/statec-xyz/go-statec/dsl"
	"github.com/statec-xyz/go-statec/machine"
)

func TestEncodeDecode(t *testing.T) {
	spec, err := dsl.ParseSpec(`
name: Door,
transitions {
    *Closed + Open = Opened,
    Opened + Close = Closed,
    _ + Slam = Closed,
}
`)
	if err != nil {
		t.Fatalf("ParseSpec() failed: %v", err)
	}

	data, err := Encode(spec)
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}

	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}

	if got.Name != spec.Name {
		t.Errorf("Name = %q, want %q", got.Name, spec.Name)
	}
	if got.NumStates() != spec.NumStates() || got.NumEvents() != spec.NumEvents() {
		t.Errorf("shape = (%d, %d), want (%d, %d)",
			got.NumStates(), got.NumEvents(), spec.NumStates(), spec.NumEvents())
	}

	// The decoded machine answers lookups identically, wildcard fills
	// included.
	for _, state := range got.States {
		for _, event := range got.Events {
			si, _ := got.StateIndex(state)
			ei, _ := got.EventIndex(event)
			gotNext, gotFired := got.ProcessEvent(si, ei)
			wantNext, wantFired := spec.ProcessEvent(si, ei)
			if gotNext != wantNext || gotFired != wantFired {
				t.Errorf("%s + %s = (%v, %v), want (%v, %v)",
					state, event, gotNext, gotFired, wantNext, wantFired)
			}
		}
	}
}

func TestDecodeRejectsUnknownVersion(t *testing.T) {
	data, err := cbor.Marshal(map[string]any{
		"v":      99,
		"states": []string{"A"},
		"events": []string{},
		"table":  []int32{},
	})
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	if _, err := Decode(data); !errors.Is(err, ErrUnsupportedVersion) {
		t.Errorf("Decode() = %v, want ErrUnsupportedVersion", err)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := Decode([]byte{0xff, 0x00, 0x12}); err == nil {
		t.Error("Decode() accepted garbage bytes")
	}
}

func TestDecodeValidatesTableShape(t *testing.T) {
	data, err := cbor.Marshal(envelope{
		Version: FormatVersion,
		Name:    "Broken",
		States:  []string{"A"},
		Events:  []string{"Go"},
		Table:   []int32{7},
	})
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	if _, err := Decode(data); !errors.Is(err, machine.ErrMalformedTable) {
		t.Errorf("Decode() = %v, want ErrMalformedTable", err)
	}
}
