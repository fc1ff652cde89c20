package cache

import (
	"fmt"
	"sync"
	"testing"
)

const doorSource = `
name: Door,
transitions {
    *Closed + Open = Opened,
    Opened + Close = Closed,
}
`

func TestGetOrCompile(t *testing.T) {
	c := New(10)

	spec, err := c.GetOrCompile(doorSource)
	if err != nil {
		t.Fatalf("GetOrCompile() failed: %v", err)
	}
	if spec.Name != "Door" {
		t.Errorf("Name = %q, want Door", spec.Name)
	}

	again, err := c.GetOrCompile(doorSource)
	if err != nil {
		t.Fatalf("GetOrCompile() failed on hit: %v", err)
	}
	if again != spec {
		t.Error("second GetOrCompile() returned a different instance")
	}

	stats := c.Stats()
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Errorf("stats = %+v, want 1 hit and 1 miss", stats)
	}
}

func TestCompileFailureNotCached(t *testing.T) {
	c := New(10)
	bad := "transitions { A + Go = B, }"

	if _, err := c.GetOrCompile(bad); err == nil {
		t.Fatal("GetOrCompile() accepted a definition with no initial state")
	}
	if c.Size() != 0 {
		t.Errorf("Size() = %d after failed compile, want 0", c.Size())
	}
}

func TestEviction(t *testing.T) {
	c := New(2)
	for i := 0; i < 3; i++ {
		source := fmt.Sprintf("transitions { *S%d + Go = T, }", i)
		if _, err := c.GetOrCompile(source); err != nil {
			t.Fatalf("GetOrCompile() failed: %v", err)
		}
	}
	if c.Size() != 2 {
		t.Errorf("Size() = %d, want 2", c.Size())
	}
	if c.Stats().Evictions != 1 {
		t.Errorf("Evictions = %d, want 1", c.Stats().Evictions)
	}
}

func TestClear(t *testing.T) {
	c := New(0)
	if _, err := c.GetOrCompile(doorSource); err != nil {
		t.Fatalf("GetOrCompile() failed: %v", err)
	}
	c.Clear()
	if c.Size() != 0 {
		t.Errorf("Size() = %d after Clear, want 0", c.Size())
	}
}

func TestConcurrentAccess(t *testing.T) {
	c := New(100)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				source := fmt.Sprintf("transitions { *S%d + Go = T, }", j%5)
				if _, err := c.GetOrCompile(source); err != nil {
					t.Errorf("GetOrCompile() failed: %v", err)
					return
				}
			}
		}(i)
	}
	wg.Wait()
	if c.Size() != 5 {
		t.Errorf("Size() = %d, want 5", c.Size())
	}
}
