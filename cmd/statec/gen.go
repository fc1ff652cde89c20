package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/statec-xyz/go-statec/codegen/golang"
)

func gen(args []string) error {
	fs := flag.NewFlagSet("gen", flag.ExitOnError)
	pkg := fs.String("package", "statemachine", "Package name for generated code")
	output := fs.String("output", "", "Output file (default: stdout)")
	historyPath := fs.String("history", "", "Record the compile in a history database")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: statec gen <machine.fsm> [options]

Generate Go source for a compiled machine: state and event enumerations
plus a ProcessEvent lookup.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Print generated code
  statec gen door.fsm

  # Write into a package
  statec gen door.fsm --package door --output door_gen.go
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("definition file required")
	}

	def, source, err := loadDefinition(fs.Arg(0))
	if err != nil {
		return err
	}

	spec, err := compileWithHistory(def, source, *historyPath)
	if err != nil {
		return err
	}

	code := golang.Generate(spec, *pkg)

	if *output == "" {
		fmt.Print(code)
		return nil
	}

	if err := os.WriteFile(*output, []byte(code), 0644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Printf("✓ Generated %s (%d states, %d events)\n", *output, spec.NumStates(), spec.NumEvents())
	return nil
}
