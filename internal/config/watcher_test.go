package config

import (
	"path/filepath"
	"testing"
	"time"

	"stretchreminder/internal/logging"
)

func TestWatcher_ReloadsOnEdit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)

	cfg := Default()
	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	changed := make(chan *Config, 1)
	w, err := NewWatcher(path, logging.NewConsoleLogger(), func(c *Config) {
		select {
		case changed <- c:
		default:
		}
	})
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Close()

	// Simulate a hand edit: rewrite with a different interval.
	cfg.IntervalMin = 15
	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	select {
	case got := <-changed:
		if got.IntervalMin != 15 {
			t.Errorf("reloaded interval = %v, want 15", got.IntervalMin)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timeout waiting for config reload")
	}
}

func TestWatcher_CloseIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	if err := Save(Default(), path); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(path, logging.NewConsoleLogger(), func(*Config) {})
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("first Close failed: %v", err)
	}
	// Second close must not panic.
	_ = w.Close()
}
