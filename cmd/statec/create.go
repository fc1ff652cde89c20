package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
)

// machineTemplates holds starter definitions keyed by template name.
var machineTemplates = map[string]string{
	"door": `name: Door

transitions {
    *Closed + Open  = Opened,
    Opened  + Close = Closed,
    Closed  + Lock  = Locked,
    Locked  + Unlock = Closed,
}
`,
	"turnstile": `name: Turnstile

transitions {
    *Locked   + Coin = Unlocked,
    Unlocked  + Push = Locked,
    Locked    + Push = Locked,
    Unlocked  + Coin = Unlocked,
}
`,
	"traffic-light": `name: TrafficLight

transitions {
    *Red   + Next = Green,
    Green  + Next = Yellow,
    Yellow + Next = Red,
    _      + Fault = Red,
}
`,
	"job": `name: Job
derive_states: [Debug, Text]
derive_events: [Debug, Text]

transitions {
    *Pending            + Start   = Running,
    Running             + Finish  = Done,
    Running             + Fail    = Failed,
    Failed              + Retry   = Pending,
    Pending|Running     + Cancel  = Cancelled,
    Running             + Tick    = _,
}
`,
}

func create(args []string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	templateName := fs.String("template", "", "Template name (required unless --list)")
	output := fs.String("output", "", "Output file (default: stdout)")
	listTemplates := fs.Bool("list", false, "List available templates")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: statec create [options]

Create a machine definition from a starter template.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # List templates
  statec create --list

  # Create a turnstile definition
  statec create --template turnstile --output turnstile.fsm
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *listTemplates {
		names := make([]string, 0, len(machineTemplates))
		for name := range machineTemplates {
			names = append(names, name)
		}
		sort.Strings(names)
		fmt.Println("Available templates:")
		for _, name := range names {
			fmt.Printf("  %s\n", name)
		}
		return nil
	}

	if *templateName == "" {
		fs.Usage()
		return fmt.Errorf("--template required")
	}

	text, ok := machineTemplates[strings.ToLower(*templateName)]
	if !ok {
		return fmt.Errorf("unknown template %q (use --list)", *templateName)
	}

	if *output == "" {
		fmt.Print(text)
		return nil
	}
	if err := os.WriteFile(*output, []byte(text), 0644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Printf("✓ Created %s from template %q\n", *output, *templateName)
	return nil
}
