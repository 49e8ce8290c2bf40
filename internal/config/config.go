// Package config provides configuration management for Stretch Reminder.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config represents the single on-disk settings record.
//
// Config file location: config.json next to the executable (the application
// is laid out as a portable directory). The file is human-editable.
//
// JSON format:
//
//	{
//	    "interval_min": 60,
//	    "icon_path": "icon.ico",
//	    "log_file": "stretch_reminder.log",
//	    "auto_start": false,
//	    "minimize_to_tray": true
//	}
type Config struct {
	// IntervalMin is the reminder interval in minutes.
	// Valid range: (0, 1440]; values are clamped to a 0.1 minute floor.
	IntervalMin float64 `json:"interval_min"`

	// IconPath is the tray/window icon, resolved relative to the executable
	// directory when not absolute.
	IconPath string `json:"icon_path"`

	// LogFile is the log file path, resolved like IconPath.
	LogFile string `json:"log_file"`

	// AutoStart mirrors the run-at-login registration requested at last apply.
	// The registration itself is always queried live; this field only seeds
	// the first-run default.
	AutoStart bool `json:"auto_start"`

	// MinimizeToTray keeps the process in the tray with no taskbar window.
	MinimizeToTray bool `json:"minimize_to_tray"`
}

const (
	// FileName is the well-known settings file name.
	FileName = "config.json"

	// MinIntervalMin is the smallest usable interval (6 seconds).
	MinIntervalMin = 0.1

	// MaxIntervalMin caps the interval at 24 hours.
	MaxIntervalMin = 1440
)

// ErrInvalidInterval reports an interval that is non-numeric, not positive,
// or above the 24 hour limit.
var ErrInvalidInterval = errors.New("interval must be a number between 0.1 and 1440 minutes")

// Default returns a Config populated with the documented defaults.
func Default() *Config {
	return &Config{
		IntervalMin:    60,
		IconPath:       "icon.ico",
		LogFile:        "stretch_reminder.log",
		AutoStart:      false,
		MinimizeToTray: true,
	}
}

// AppDir returns the directory containing the running executable. Relative
// paths in the config resolve against it.
func AppDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return "", fmt.Errorf("failed to resolve executable path: %w", err)
	}
	return filepath.Dir(exe), nil
}

// DefaultPath returns the default config.json path beside the executable.
func DefaultPath() (string, error) {
	dir, err := AppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// ValidateInterval checks an interval in minutes and returns the value to
// use, clamped to the 0.1 minute floor. Returns ErrInvalidInterval for
// values that are not positive or exceed 1440.
func ValidateInterval(minutes float64) (float64, error) {
	if minutes <= 0 || minutes > MaxIntervalMin {
		return 0, ErrInvalidInterval
	}
	if minutes < MinIntervalMin {
		return MinIntervalMin, nil
	}
	return minutes, nil
}

// ParseInterval parses user input (minutes, decimals allowed) and validates
// it with ValidateInterval.
func ParseInterval(raw string) (float64, error) {
	minutes, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, ErrInvalidInterval
	}
	return ValidateInterval(minutes)
}

// LoadResult reports how Load obtained its configuration.
type LoadResult struct {
	// Created is true when no file existed and defaults were written.
	Created bool

	// Warnings lists fields that were malformed and replaced by defaults.
	Warnings []string
}

// Load reads the settings record from path. A missing file is not an error:
// defaults are written to disk and returned with Created set. A malformed
// file or invalid fields never abort either; the affected fields fall back
// to defaults and are reported in Warnings.
func Load(path string) (*Config, *LoadResult, error) {
	cfg := Default()
	res := &LoadResult{}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		res.Created = true
		if err := Save(cfg, path); err != nil {
			return cfg, res, fmt.Errorf("failed to create default config: %w", err)
		}
		return cfg, res, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, res, fmt.Errorf("failed to read config: %w", err)
	}

	var loaded Config
	if err := json.Unmarshal(data, &loaded); err != nil {
		res.Warnings = append(res.Warnings, fmt.Sprintf("parse failure (%v), using defaults", err))
		return cfg, res, nil
	}

	// Per-field default substitution for invalid values.
	if v, err := ValidateInterval(loaded.IntervalMin); err != nil {
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("interval_min %v out of range, using %v", loaded.IntervalMin, cfg.IntervalMin))
	} else {
		cfg.IntervalMin = v
	}
	if strings.TrimSpace(loaded.IconPath) != "" {
		cfg.IconPath = loaded.IconPath
	} else {
		res.Warnings = append(res.Warnings, "icon_path empty, using default")
	}
	if strings.TrimSpace(loaded.LogFile) != "" {
		cfg.LogFile = loaded.LogFile
	} else {
		res.Warnings = append(res.Warnings, "log_file empty, using default")
	}
	cfg.AutoStart = loaded.AutoStart
	cfg.MinimizeToTray = loaded.MinimizeToTray

	return cfg, res, nil
}

// Save writes the settings record to path. It writes to a temporary file and
// renames it into place so a crash mid-write never corrupts the previous
// valid file.
func Save(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save config: %w", err)
	}

	return nil
}

// ResolvePath resolves p against baseDir unless p is already absolute.
func ResolvePath(baseDir, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(baseDir, p)
}

// ResolveIcon returns the absolute path of the configured icon, or "" when
// the file does not exist and the caller should use the bundled fallback.
func ResolveIcon(cfg *Config, baseDir string) string {
	p := ResolvePath(baseDir, cfg.IconPath)
	if _, err := os.Stat(p); err != nil {
		return ""
	}
	return p
}
