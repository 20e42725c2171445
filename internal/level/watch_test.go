package level

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReportsLevelFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("id: custom\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-w.Events:
		if filepath.Base(got) != "custom.yaml" {
			t.Errorf("event for %q, want custom.yaml", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no event received")
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("first Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}

	select {
	case _, ok := <-w.Events:
		if ok {
			t.Error("Events should be closed")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Events not closed after Close")
	}
}
