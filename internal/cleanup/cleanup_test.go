package cleanup

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSweepRemovesOnlyStaleEntries(t *testing.T) {
	dir := t.TempDir()

	stale := filepath.Join(dir, "hisobot_old.xlsx")
	if err := os.WriteFile(stale, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	old := time.Now().Add(-3 * time.Hour)
	if err := os.Chtimes(stale, old, old); err != nil {
		t.Fatal(err)
	}

	fresh := filepath.Join(dir, "hisobot_new.xlsx")
	if err := os.WriteFile(fresh, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	staleDir := filepath.Join(dir, "certs-leftover")
	if err := os.MkdirAll(staleDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(staleDir, "cert.jpg"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(staleDir, old, old); err != nil {
		t.Fatal(err)
	}

	r := NewReaper(dir, time.Hour)
	r.Sweep()

	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Errorf("stale file still present: %v", err)
	}
	if _, err := os.Stat(staleDir); !os.IsNotExist(err) {
		t.Errorf("stale dir still present: %v", err)
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Errorf("fresh file removed: %v", err)
	}
}

func TestSweepMissingDir(t *testing.T) {
	r := NewReaper(filepath.Join(t.TempDir(), "nope"), time.Hour)
	r.Sweep() // must not panic
}
