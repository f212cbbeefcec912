package history

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func writeTempShots(t *testing.T, dir string, n int) []string {
	t.Helper()
	paths := make([]string, n)
	for i := 0; i < n; i++ {
		p := filepath.Join(dir, fmt.Sprintf("screenshot-%03d.png", i))
		if err := os.WriteFile(p, []byte("png"), 0644); err != nil {
			t.Fatalf("Failed to write fixture: %v", err)
		}
		paths[i] = p
	}
	return paths
}

func TestInsertFrontOrder(t *testing.T) {
	r := New(5)
	r.InsertFront("a.png")
	r.InsertFront("b.png")
	r.InsertFront("c.png")

	got := r.Paths()
	want := []string{"c.png", "b.png", "a.png"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Paths() = %v, want %v", got, want)
		}
	}
	if rec, ok := r.Latest(); !ok || rec.Path != "c.png" {
		t.Errorf("Latest = %+v, %v", rec, ok)
	}
}

func TestEvictionDeletesOldestFile(t *testing.T) {
	dir := t.TempDir()
	paths := writeTempShots(t, dir, DefaultCapacity+1)

	r := New(DefaultCapacity)
	for _, p := range paths {
		r.InsertFront(p)
	}

	if r.Len() != DefaultCapacity {
		t.Errorf("Expected length %d after overflow, got %d", DefaultCapacity, r.Len())
	}
	// The first inserted (oldest) file must be gone, the second must remain.
	if _, err := os.Stat(paths[0]); !os.IsNotExist(err) {
		t.Errorf("Expected evicted file %s to be deleted, stat err=%v", paths[0], err)
	}
	if _, err := os.Stat(paths[1]); err != nil {
		t.Errorf("Expected retained file %s to exist: %v", paths[1], err)
	}
}

func TestEvictionMissingFileIsNotFatal(t *testing.T) {
	r := New(1)
	r.InsertFront("does-not-exist-1.png")
	r.InsertFront("does-not-exist-2.png")
	if r.Len() != 1 {
		t.Errorf("Expected length 1, got %d", r.Len())
	}
}

func TestNavigateClampsToBounds(t *testing.T) {
	r := New(10)
	for i := 0; i < 3; i++ {
		r.InsertFront(fmt.Sprintf("%d.png", i)) // newest is "2.png"
	}

	if rec, _ := r.Navigate(1); rec.Path != "1.png" {
		t.Errorf("Navigate(1) = %s, want 1.png", rec.Path)
	}
	if rec, _ := r.Navigate(10); rec.Path != "0.png" {
		t.Errorf("Navigate past end should clamp to oldest, got %s", rec.Path)
	}
	if rec, _ := r.Navigate(-100); rec.Path != "2.png" {
		t.Errorf("Navigate before start should clamp to newest, got %s", rec.Path)
	}
}

func TestInsertResetsCursor(t *testing.T) {
	r := New(10)
	r.InsertFront("a.png")
	r.InsertFront("b.png")
	r.Navigate(1)

	r.InsertFront("c.png")
	if rec, _ := r.Current(); rec.Path != "c.png" {
		t.Errorf("Cursor should reset to newest on insert, got %s", rec.Path)
	}
}

func TestNavigateEmpty(t *testing.T) {
	r := New(10)
	if _, ok := r.Navigate(1); ok {
		t.Error("Navigate on empty ring should report no record")
	}
}
