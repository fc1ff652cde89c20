package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/statec-xyz/go-statec/eventlog"
)

func replay(args []string) error {
	fs := flag.NewFlagSet("replay", flag.ExitOnError)
	outputJSON := fs.Bool("json", false, "Output the replay report as JSON")
	eventField := fs.String("event-field", "event", "JSON field holding the event name")
	timestampField := fs.String("timestamp-field", "timestamp", "JSON field holding the timestamp")
	strict := fs.Bool("strict", false, "Exit non-zero unless every event fires a transition")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: statec replay <machine.fsm|machine.cbor> <trace.jsonl> [options]

Run a JSONL event trace against a compiled machine, starting from its
initial state. Events that fire no transition leave the state unchanged.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Replay a trace
  statec replay door.fsm trace.jsonl

  # Conformance check in CI
  statec replay door.fsm trace.jsonl --strict

  # Traces with a different field name
  statec replay door.fsm audit.jsonl --event-field action
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 2 {
		fs.Usage()
		return fmt.Errorf("machine and trace files required")
	}

	spec, err := loadSpec(fs.Arg(0))
	if err != nil {
		return err
	}

	cfg := eventlog.DefaultJSONLConfig()
	cfg.EventField = *eventField
	cfg.TimestampField = *timestampField

	trace, err := eventlog.ReadJSONLFile(fs.Arg(1), cfg)
	if err != nil {
		return err
	}

	report := eventlog.Replay(spec, trace)

	if *outputJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		fmt.Printf("Replayed %d events against %s\n", trace.Len(), spec.Name)
		fmt.Printf("  Accepted: %d\n", report.Accepted)
		fmt.Printf("  Rejected: %d\n", report.Rejected)
		fmt.Printf("  Unknown:  %d\n", report.Unknown)
		fmt.Printf("  Final:    %s\n", report.Final)
	}

	if *strict && !report.Conformant() {
		return fmt.Errorf("trace does not conform: %d rejected, %d unknown",
			report.Rejected, report.Unknown)
	}
	return nil
}
