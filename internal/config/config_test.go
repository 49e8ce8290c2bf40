package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestValidateInterval_Range(t *testing.T) {
	// Valid values pass through unchanged.
	for _, v := range []float64{0.1, 0.5, 1, 60, 1439.9, 1440} {
		got, err := ValidateInterval(v)
		if err != nil {
			t.Errorf("ValidateInterval(%v) returned error: %v", v, err)
		}
		if got != v {
			t.Errorf("ValidateInterval(%v) = %v, want %v", v, got, v)
		}
	}

	// Values below the floor clamp to 0.1.
	got, err := ValidateInterval(0.05)
	if err != nil {
		t.Fatalf("ValidateInterval(0.05) returned error: %v", err)
	}
	if got != MinIntervalMin {
		t.Errorf("ValidateInterval(0.05) = %v, want %v", got, MinIntervalMin)
	}

	// Out-of-range values fail.
	for _, v := range []float64{0, -1, 1440.1, 99999} {
		if _, err := ValidateInterval(v); err != ErrInvalidInterval {
			t.Errorf("ValidateInterval(%v) error = %v, want ErrInvalidInterval", v, err)
		}
	}
}

func TestParseInterval(t *testing.T) {
	got, err := ParseInterval(" 12.5 ")
	if err != nil {
		t.Fatalf("ParseInterval failed: %v", err)
	}
	if got != 12.5 {
		t.Errorf("ParseInterval(\"12.5\") = %v, want 12.5", got)
	}

	for _, raw := range []string{"", "abc", "12,5", "-3", "0", "1441"} {
		if _, err := ParseInterval(raw); err != ErrInvalidInterval {
			t.Errorf("ParseInterval(%q) error = %v, want ErrInvalidInterval", raw, err)
		}
	}
}

func TestLoad_CreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)

	cfg, res, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !res.Created {
		t.Error("expected Created for missing file")
	}
	if cfg.IntervalMin != 60 {
		t.Errorf("default interval = %v, want 60", cfg.IntervalMin)
	}
	if cfg.LogFile != "stretch_reminder.log" {
		t.Errorf("default log_file = %q", cfg.LogFile)
	}
	if !cfg.MinimizeToTray {
		t.Error("default minimize_to_tray should be true")
	}

	// The defaults must now exist on disk.
	if _, err := os.Stat(path); err != nil {
		t.Errorf("defaults were not written: %v", err)
	}
}

func TestLoad_MalformedFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, res, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if res.Created {
		t.Error("Created should be false for an existing file")
	}
	if len(res.Warnings) == 0 {
		t.Error("expected a parse warning")
	}
	if cfg.IntervalMin != 60 {
		t.Errorf("interval after parse failure = %v, want default 60", cfg.IntervalMin)
	}
}

func TestLoad_InvalidFieldsSubstituted(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	raw := `{"interval_min": -5, "icon_path": "", "log_file": "my.log", "auto_start": true, "minimize_to_tray": false}`
	if err := os.WriteFile(path, []byte(raw), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, res, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.IntervalMin != 60 {
		t.Errorf("invalid interval should default to 60, got %v", cfg.IntervalMin)
	}
	if cfg.IconPath != "icon.ico" {
		t.Errorf("empty icon_path should default, got %q", cfg.IconPath)
	}
	// Valid fields survive untouched.
	if cfg.LogFile != "my.log" {
		t.Errorf("log_file = %q, want my.log", cfg.LogFile)
	}
	if !cfg.AutoStart {
		t.Error("auto_start should be preserved")
	}
	if cfg.MinimizeToTray {
		t.Error("minimize_to_tray false should be preserved")
	}
	if len(res.Warnings) != 2 {
		t.Errorf("expected 2 warnings, got %d: %v", len(res.Warnings), res.Warnings)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)

	cfg, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	// save(load()) must be a no-op on disk content.
	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	second, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(first) != string(second) {
		t.Errorf("round trip changed file content:\nbefore: %s\nafter: %s", first, second)
	}
}

func TestSave_AtomicKeysStable(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	cfg := Default()
	cfg.IntervalMin = 12.5

	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file left behind after Save")
	}

	// The on-disk record keeps the original field names.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("saved file is not valid JSON: %v", err)
	}
	for _, key := range []string{"interval_min", "icon_path", "log_file", "auto_start", "minimize_to_tray"} {
		if _, ok := m[key]; !ok {
			t.Errorf("saved config missing key %q", key)
		}
	}
}

func TestResolvePath(t *testing.T) {
	base := t.TempDir()
	if got := ResolvePath(base, "icon.ico"); got != filepath.Join(base, "icon.ico") {
		t.Errorf("relative path not resolved against base: %q", got)
	}
	abs := filepath.Join(base, "x", "icon.ico")
	if got := ResolvePath(base, abs); got != abs {
		t.Errorf("absolute path should pass through: %q", got)
	}
}

func TestResolveIcon_MissingFile(t *testing.T) {
	base := t.TempDir()
	cfg := Default()

	if got := ResolveIcon(cfg, base); got != "" {
		t.Errorf("missing icon should resolve to empty fallback marker, got %q", got)
	}

	iconPath := filepath.Join(base, "icon.ico")
	if err := os.WriteFile(iconPath, []byte{0}, 0644); err != nil {
		t.Fatal(err)
	}
	if got := ResolveIcon(cfg, base); got != iconPath {
		t.Errorf("ResolveIcon = %q, want %q", got, iconPath)
	}
}
