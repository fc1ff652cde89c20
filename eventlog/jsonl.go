package eventlog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// JSONLConfig configures JSONL trace parsing.
type JSONLConfig struct {
	EventField       string   // JSON field holding the event name (required)
	TimestampField   string   // JSON field holding the timestamp (optional)
	TimestampFormats []string // formats to try, in order (optional)
}

// DefaultJSONLConfig returns a configuration with common defaults.
func DefaultJSONLConfig() JSONLConfig {
	return JSONLConfig{
		EventField:     "event",
		TimestampField: "timestamp",
		TimestampFormats: []string{
			time.RFC3339Nano,
			time.RFC3339,
			"2006-01-02 15:04:05",
			"2006-01-02T15:04:05",
		},
	}
}

// ReadJSONL parses a JSONL trace: one JSON object per line, blank lines
// skipped. Records missing the event field are rejected; unparseable
// timestamps are kept as zero times rather than failing the trace.
func ReadJSONL(r io.Reader, cfg JSONLConfig) (*Trace, error) {
	if cfg.EventField == "" {
		return nil, fmt.Errorf("eventlog: EventField is required")
	}

	trace := &Trace{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var record map[string]any
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			return nil, fmt.Errorf("eventlog: line %d: %w", lineNum, err)
		}

		name, ok := record[cfg.EventField].(string)
		if !ok || name == "" {
			return nil, fmt.Errorf("eventlog: line %d: missing event field %q", lineNum, cfg.EventField)
		}

		event := Event{Name: name}
		if cfg.TimestampField != "" {
			if raw, ok := record[cfg.TimestampField].(string); ok {
				event.Timestamp = parseTimestamp(raw, cfg.TimestampFormats)
			}
			delete(record, cfg.TimestampField)
		}
		delete(record, cfg.EventField)
		if len(record) > 0 {
			event.Attrs = record
		}

		trace.Events = append(trace.Events, event)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("eventlog: read: %w", err)
	}
	return trace, nil
}

// ReadJSONLFile parses a JSONL trace file.
func ReadJSONLFile(path string, cfg JSONLConfig) (*Trace, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("eventlog: open: %w", err)
	}
	defer f.Close()
	return ReadJSONL(f, cfg)
}

func parseTimestamp(raw string, formats []string) time.Time {
	for _, format := range formats {
		if ts, err := time.Parse(format, raw); err == nil {
			return ts
		}
	}
	return time.Time{}
}
