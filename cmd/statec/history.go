package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/statec-xyz/go-statec/store"
)

func history(args []string) error {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	dbPath := fs.String("db", "statec.db", "History database path")
	limit := fs.Int("limit", 20, "Maximum records to show")
	outputJSON := fs.Bool("json", false, "Output records as JSON")
	pruneDays := fs.Int("prune", 0, "Delete records older than this many days")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: statec history [options]

Show compilations recorded with the --history flag of check, gen, and pack.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Show the last 20 compiles
  statec history --db builds.db

  # Drop records older than 30 days
  statec history --db builds.db --prune 30
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := store.Open(*dbPath, logger)
	if err != nil {
		return err
	}
	defer s.Close()

	if *pruneDays > 0 {
		cutoff := time.Now().AddDate(0, 0, -*pruneDays)
		n, err := s.Prune(cutoff)
		if err != nil {
			return err
		}
		fmt.Printf("✓ Pruned %d records\n", n)
		return nil
	}

	records, err := s.List(*limit)
	if err != nil {
		return err
	}

	if *outputJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Println("No recorded compilations.")
		return nil
	}
	for _, rec := range records {
		status := "ok"
		if !rec.Success {
			status = "failed"
		}
		fmt.Printf("%s  %-8s %-20s states=%-3d events=%-3d transitions=%-3d %s\n",
			rec.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			status, rec.Name, rec.States, rec.Events, rec.Transitions, rec.ID[:8])
		if rec.Error != "" {
			fmt.Printf("    %s\n", rec.Error)
		}
	}
	return nil
}
