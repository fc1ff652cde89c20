package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/statec-xyz/go-statec/dsl"
)

const doorSource = `
name: Door,
transitions {
    *Closed + Open = Opened,
    Opened + Close = Closed,
}
`

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"), zerolog.Nop())
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordSuccessfulCompile(t *testing.T) {
	s := openTestStore(t)

	spec, err := dsl.ParseSpec(doorSource)
	if err != nil {
		t.Fatalf("ParseSpec() failed: %v", err)
	}

	rec, err := s.RecordCompile(doorSource, spec, nil)
	if err != nil {
		t.Fatalf("RecordCompile() failed: %v", err)
	}
	if !rec.Success || rec.Name != "Door" {
		t.Errorf("record = %+v, want successful Door compile", rec)
	}
	if rec.States != 2 || rec.Events != 2 || rec.Transitions != 2 {
		t.Errorf("shape = (%d, %d, %d), want (2, 2, 2)", rec.States, rec.Events, rec.Transitions)
	}

	got, err := s.Get(rec.ID)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if got.SourceHash != rec.SourceHash {
		t.Errorf("SourceHash = %q, want %q", got.SourceHash, rec.SourceHash)
	}
	if !got.CreatedAt.Equal(rec.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, rec.CreatedAt)
	}
}

func TestRecordFailedCompile(t *testing.T) {
	s := openTestStore(t)

	source := "transitions { A + Go = B, }"
	_, compileErr := dsl.ParseSpec(source)
	if compileErr == nil {
		t.Fatal("expected a compile failure")
	}

	rec, err := s.RecordCompile(source, nil, compileErr)
	if err != nil {
		t.Fatalf("RecordCompile() failed: %v", err)
	}
	if rec.Success {
		t.Error("failed compile recorded as success")
	}
	if rec.Error == "" {
		t.Error("failed compile recorded without the diagnostic")
	}
}

func TestListNewestFirst(t *testing.T) {
	s := openTestStore(t)

	spec, err := dsl.ParseSpec(doorSource)
	if err != nil {
		t.Fatalf("ParseSpec() failed: %v", err)
	}
	var last string
	for i := 0; i < 3; i++ {
		rec, err := s.RecordCompile(doorSource, spec, nil)
		if err != nil {
			t.Fatalf("RecordCompile() failed: %v", err)
		}
		last = rec.ID
		time.Sleep(2 * time.Millisecond)
	}

	records, err := s.List(2)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("List(2) returned %d records", len(records))
	}
	if records[0].ID != last {
		t.Errorf("List()[0].ID = %q, want the most recent %q", records[0].ID, last)
	}
}

func TestGetNotFound(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.Get("no-such-id"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() = %v, want ErrNotFound", err)
	}
}

func TestPrune(t *testing.T) {
	s := openTestStore(t)

	spec, err := dsl.ParseSpec(doorSource)
	if err != nil {
		t.Fatalf("ParseSpec() failed: %v", err)
	}
	if _, err := s.RecordCompile(doorSource, spec, nil); err != nil {
		t.Fatalf("RecordCompile() failed: %v", err)
	}

	n, err := s.Prune(time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("Prune() failed: %v", err)
	}
	if n != 0 {
		t.Errorf("Prune(old cutoff) removed %d records, want 0", n)
	}

	n, err = s.Prune(time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("Prune() failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Prune(future cutoff) removed %d records, want 1", n)
	}
}
