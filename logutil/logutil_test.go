package logutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRotateShiftsArchives(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "app.log")
	for i, content := range []string{"current", "first", "second"} {
		path := name
		if i > 0 {
			path = archiveName(name, i)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	rotate(name)

	if _, err := os.Stat(name); !os.IsNotExist(err) {
		t.Error("base log should be gone after rotation")
	}
	got, err := os.ReadFile(archiveName(name, 1))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "current" {
		t.Errorf("archive 1 = %q, want the previous base log", got)
	}
	got, _ = os.ReadFile(archiveName(name, 2))
	if string(got) != "first" {
		t.Errorf("archive 2 = %q", got)
	}
	got, _ = os.ReadFile(archiveName(name, 3))
	if string(got) != "second" {
		t.Errorf("archive 3 = %q", got)
	}
}

func TestRotateDiscardsOldest(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "app.log")
	os.WriteFile(name, []byte("base"), 0o644)
	for i := 1; i <= maxArchives; i++ {
		os.WriteFile(archiveName(name, i), []byte("old"), 0o644)
	}

	rotate(name)

	if _, err := os.Stat(archiveName(name, maxArchives+1)); !os.IsNotExist(err) {
		t.Error("rotation must not create archives past the limit")
	}
	got, _ := os.ReadFile(archiveName(name, 1))
	if string(got) != "base" {
		t.Errorf("archive 1 = %q", got)
	}
}
