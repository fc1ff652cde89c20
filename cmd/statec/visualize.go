package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/statec-xyz/go-statec/visualization"
)

func visualize(args []string) error {
	fs := flag.NewFlagSet("visualize", flag.ExitOnError)
	output := fs.String("output", "", "Output SVG file (required)")
	columns := fs.Int("columns", 3, "States per row in the grid layout")
	noEvents := fs.Bool("no-events", false, "Hide event labels on transitions")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: statec visualize <machine.fsm|machine.cbor> [options]

Generate an SVG state diagram of a compiled machine.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Visualize a definition
  statec visualize door.fsm --output door.svg

  # Wider layout without event labels
  statec visualize door.fsm --columns 5 --no-events --output door.svg
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("definition file required")
	}
	if *output == "" {
		fs.Usage()
		return fmt.Errorf("--output required")
	}

	spec, err := loadSpec(fs.Arg(0))
	if err != nil {
		return err
	}

	opts := visualization.DefaultSVGOptions()
	opts.Columns = *columns
	opts.ShowEvents = !*noEvents

	if err := visualization.SaveMachineSVG(spec, *output, opts); err != nil {
		return fmt.Errorf("generate SVG: %w", err)
	}

	fmt.Printf("✓ Visualization saved to %s\n", *output)
	fmt.Printf("  States:      %d\n", spec.NumStates())
	fmt.Printf("  Events:      %d\n", spec.NumEvents())
	fmt.Printf("  Transitions: %d\n", len(spec.Transitions()))

	return nil
}
