package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/statec-xyz/go-statec/machine"
)

func check(args []string) error {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	outputJSON := fs.Bool("json", false, "Output results as JSON")
	historyPath := fs.String("history", "", "Record the compile in a history database")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: statec check <machine.fsm|machine.json|machine.cbor> [options]

Compile a machine definition and report diagnostics.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Checks performed:
  - Syntax and identifier validity
  - Exactly one initial state
  - No duplicate state/event pairs
  - No conflicting wildcard rules
  - Reachability from the initial state
  - Terminal state detection

Examples:
  # Check a definition
  statec check door.fsm

  # JSON report for tooling
  statec check door.fsm --json

  # Keep a record of the compile
  statec check door.fsm --history builds.db
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("definition file required")
	}

	var spec *machine.Spec
	if strings.HasSuffix(fs.Arg(0), ".cbor") {
		var err error
		spec, err = loadSpec(fs.Arg(0))
		if err != nil {
			return err
		}
	} else {
		def, source, err := loadDefinition(fs.Arg(0))
		if err != nil {
			return err
		}
		spec, err = compileWithHistory(def, source, *historyPath)
		if err != nil {
			return err
		}
	}

	report := machine.Analyze(spec)

	if *outputJSON {
		out := struct {
			Machine     string   `json:"machine"`
			States      []string `json:"states"`
			Events      []string `json:"events"`
			Transitions int      `json:"transitions"`
			Unreachable []string `json:"unreachable_states,omitempty"`
			Terminal    []string `json:"terminal_states,omitempty"`
			Unused      []string `json:"unused_events,omitempty"`
		}{
			Machine:     spec.Name,
			States:      spec.States,
			Events:      spec.Events,
			Transitions: len(spec.Transitions()),
			Unreachable: report.UnreachableStates,
			Terminal:    report.TerminalStates,
			Unused:      report.UnusedEvents,
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	name := spec.Name
	if name == "" {
		name = "machine"
	}
	fmt.Printf("✓ %s compiles\n", name)
	fmt.Printf("  States:      %d (initial: %s)\n", spec.NumStates(), spec.StateName(spec.InitialState()))
	fmt.Printf("  Events:      %d\n", spec.NumEvents())
	fmt.Printf("  Transitions: %d\n", len(spec.Transitions()))

	for _, name := range report.UnreachableStates {
		fmt.Printf("  warning: state %q is unreachable from the initial state\n", name)
	}
	for _, name := range report.TerminalStates {
		fmt.Printf("  note: state %q has no outgoing transitions\n", name)
	}
	for _, name := range report.UnusedEvents {
		fmt.Printf("  warning: event %q appears in no transition\n", name)
	}

	return nil
}
