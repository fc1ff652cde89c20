package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
	Level(zerolog.WarnLevel).
	With().Timestamp().Logger()

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	if v := os.Getenv("STATEC_DEBUG"); v != "" {
		logger = logger.Level(zerolog.DebugLevel)
	}

	switch command {
	case "check":
		if err := check(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "gen":
		if err := gen(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "export":
		if err := export(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "pack":
		if err := pack(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "visualize":
		if err := visualize(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "replay":
		if err := replay(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "create":
		if err := create(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "history":
		if err := history(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "help", "-h", "--help":
		printUsage()
	case "version", "-v", "--version":
		fmt.Println("statec version 1.0.0")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`statec - transition table compiler

Usage:
  statec <command> [options]

Commands:
  check      Compile a machine definition and report diagnostics
  gen        Generate Go source for a compiled machine
  export     Convert a definition to or from JSON
  pack       Encode a compiled machine as a CBOR artifact
  visualize  Generate an SVG state diagram
  replay     Run a JSONL event trace against a machine
  create     Create a definition from a template
  history    Show recorded compilations
  help       Show this help message
  version    Show version information

Examples:
  # Check a definition
  statec check door.fsm

  # Generate Go source
  statec gen door.fsm --package door --output door_gen.go

  # Pack a compiled machine for embedding
  statec pack door.fsm --output door.cbor

  # Replay a trace
  statec replay door.fsm trace.jsonl

  # Visualize
  statec visualize door.fsm --output door.svg

Set STATEC_DEBUG=1 for verbose diagnostics.`)
}
