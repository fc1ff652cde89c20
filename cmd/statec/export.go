package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/statec-xyz/go-statec/dsl"
	"github.com/statec-xyz/go-statec/parser"
)

func export(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	format := fs.String("format", "json", "Output format: json or dsl")
	output := fs.String("output", "", "Output file (default: stdout)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: statec export <machine.fsm|machine.json> [options]

Convert a machine definition between DSL text and the JSON interchange
format. The definition is compiled first, so only valid machines export.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # DSL to JSON
  statec export door.fsm --output door.json

  # JSON back to DSL
  statec export door.json --format dsl --output door.fsm
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("definition file required")
	}

	def, _, err := loadDefinition(fs.Arg(0))
	if err != nil {
		return err
	}
	if _, err := def.Compile(); err != nil {
		return err
	}

	var out string
	switch strings.ToLower(*format) {
	case "json":
		data, err := parser.ToJSON(def)
		if err != nil {
			return fmt.Errorf("encode JSON: %w", err)
		}
		out = string(data) + "\n"
	case "dsl":
		out = dsl.Format(dsl.Node(def))
	default:
		return fmt.Errorf("unknown format %q (want json or dsl)", *format)
	}

	if *output == "" {
		fmt.Print(out)
		return nil
	}
	if err := os.WriteFile(*output, []byte(out), 0644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Printf("✓ Exported %s\n", *output)
	return nil
}
