package dsl

import (
	"errors"
	"testing"

	"github.com/statec-xyz/go-statec/machine"
)

const doorSource = `
name: Door,

transitions {
    *Closed + Open = Opened,
    Opened + Close = Closed,
    Closed + Lock = Locked,
    Locked + Unlock = Closed,
}
`

func TestTokenize(t *testing.T) {
	tokens := Tokenize("*Idle|Busy + Go = _")
	want := []TokenType{
		TokenStar, TokenIdent, TokenPipe, TokenIdent,
		TokenPlus, TokenIdent, TokenEq, TokenUnderscore, TokenEOF,
	}
	if len(tokens) != len(want) {
		t.Fatalf("Tokenize() produced %d tokens, want %d", len(tokens), len(want))
	}
	for i, tt := range want {
		if tokens[i].Type != tt {
			t.Errorf("token %d = %v, want %v", i, tokens[i].Type, tt)
		}
	}
}

func TestTokenizeComments(t *testing.T) {
	tokens := Tokenize("A // this is ignored\n+ B")
	want := []TokenType{TokenIdent, TokenPlus, TokenIdent, TokenEOF}
	if len(tokens) != len(want) {
		t.Fatalf("Tokenize() produced %d tokens, want %d: %v", len(tokens), len(want), tokens)
	}
}

func TestParseDoor(t *testing.T) {
	node, err := Parse(doorSource)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if node.Name != "Door" {
		t.Errorf("Name = %q, want Door", node.Name)
	}
	if len(node.Clauses) != 4 {
		t.Fatalf("len(Clauses) = %d, want 4", len(node.Clauses))
	}
	first := node.Clauses[0]
	if !first.Initial || len(first.States) != 1 || first.States[0] != "Closed" {
		t.Errorf("first clause = %+v, want *Closed", first)
	}
	if first.Text != "*Closed + Open = Opened" {
		t.Errorf("first clause text = %q", first.Text)
	}
}

func TestParseDeriveLists(t *testing.T) {
	node, err := Parse(`
name: Job,
derive_states: [Debug, Text],
derive_events: [],

transitions {
    *Pending + Start = Running,
}
`)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if len(node.DeriveStates) != 2 || node.DeriveStates[0] != "Debug" || node.DeriveStates[1] != "Text" {
		t.Errorf("DeriveStates = %v, want [Debug Text]", node.DeriveStates)
	}
	// An explicit empty list is distinct from an omitted one.
	if node.DeriveEvents == nil || len(node.DeriveEvents) != 0 {
		t.Errorf("DeriveEvents = %#v, want non-nil empty", node.DeriveEvents)
	}
}

func TestParsePatterns(t *testing.T) {
	node, err := Parse(`
transitions {
    *Idle + Start = Running,
    Running | Paused + Stop | Kill = Idle,
    _ + Reset = Idle,
    Running + Tick = _,
}
`)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	alt := node.Clauses[1]
	if len(alt.States) != 2 || len(alt.Events) != 2 {
		t.Errorf("alternation clause = %+v", alt)
	}
	wild := node.Clauses[2]
	if !wild.Wildcard || wild.Target != "Idle" {
		t.Errorf("wildcard clause = %+v", wild)
	}
	internal := node.Clauses[3]
	if !internal.Internal || internal.Target != "" {
		t.Errorf("internal clause = %+v", internal)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"empty input", "", machine.ErrSyntax},
		{"missing transitions", "name: Door,", machine.ErrSyntax},
		{"empty block", "transitions { }", machine.ErrSyntax},
		{"unknown keyword", "states: [A]\ntransitions { *A + Go = B, }", machine.ErrSyntax},
		{"missing target", "transitions { *A + Go = , }", machine.ErrSyntax},
		{"missing event", "transitions { *A = B, }", machine.ErrSyntax},
		{"star inside alternation", "transitions { *A|*B + Go = C, }", machine.ErrSyntax},
		{"wildcard marked initial", "transitions { *_ + Go = B, }", machine.ErrInitialState},
		{"trailing input", "transitions { *A + Go = B, } extra", machine.ErrSyntax},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			if err == nil {
				t.Fatal("Parse() succeeded, want error")
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse() = %v, want errors.Is %v", err, tt.want)
			}
		})
	}
}

func TestParseSpec(t *testing.T) {
	spec, err := ParseSpec(doorSource)
	if err != nil {
		t.Fatalf("ParseSpec() failed: %v", err)
	}
	if spec.Name != "Door" {
		t.Errorf("Name = %q, want Door", spec.Name)
	}
	if spec.StateName(spec.InitialState()) != "Closed" {
		t.Errorf("initial state = %q, want Closed", spec.StateName(spec.InitialState()))
	}

	closed, _ := spec.StateIndex("Closed")
	open, _ := spec.EventIndex("Open")
	next, fired := spec.ProcessEvent(closed, open)
	if !fired || spec.StateName(next) != "Opened" {
		t.Errorf("Closed + Open = (%q, %v), want (Opened, true)", spec.StateName(next), fired)
	}
}

func TestParseSpecCompileError(t *testing.T) {
	_, err := ParseSpec(`
transitions {
    *A + Go = B,
    A + Go = C,
}
`)
	if !errors.Is(err, machine.ErrDuplicateTransition) {
		t.Errorf("ParseSpec() = %v, want ErrDuplicateTransition", err)
	}

	var diag *machine.Error
	if !errors.As(err, &diag) {
		t.Fatalf("ParseSpec() error is not a *machine.Error: %v", err)
	}
	if diag.Clause != "A + Go = C" {
		t.Errorf("diagnostic clause = %q, want the second clause", diag.Clause)
	}
}

func TestSyntaxErrorCarriesOffset(t *testing.T) {
	input := "transitions { *A + + = B, }"
	_, err := Parse(input)
	var diag *machine.Error
	if !errors.As(err, &diag) {
		t.Fatalf("Parse() error is not a *machine.Error: %v", err)
	}
	if diag.Pos <= 0 || diag.Pos >= len(input) {
		t.Errorf("diagnostic offset = %d, want a position inside the input", diag.Pos)
	}
}
