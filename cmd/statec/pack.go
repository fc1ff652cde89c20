package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/statec-xyz/go-statec/artifact"
)

func pack(args []string) error {
	fs := flag.NewFlagSet("pack", flag.ExitOnError)
	output := fs.String("output", "", "Output CBOR file (required)")
	historyPath := fs.String("history", "", "Record the compile in a history database")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: statec pack <machine.fsm> [options]

Compile a definition and encode the resulting transition table as a CBOR
artifact. Artifacts load without reparsing and embed well with go:embed.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Pack a machine for embedding
  statec pack door.fsm --output door.cbor

  # Inspect a packed machine
  statec check door.cbor
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

	def, source, err := loadDefinition(fs.Arg(0))
	if err != nil {
		return err
	}
	spec, err := compileWithHistory(def, source, *historyPath)
	if err != nil {
		return err
	}

	data, err := artifact.Encode(spec)
	if err != nil {
		return fmt.Errorf("encode artifact: %w", err)
	}
	if err := os.WriteFile(*output, data, 0644); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}

	fmt.Printf("✓ Packed %s (%d bytes)\n", *output, len(data))
	return nil
}
