//go:build linux

package autostart

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"stretchreminder/internal/version"
)

const desktopFileName = "stretch-reminder.desktop"

// xdgRegistrar stores the registration as an XDG autostart desktop entry
// under ~/.config/autostart (or $XDG_CONFIG_HOME/autostart).
type xdgRegistrar struct{}

func newRegistrar() Registrar {
	return &xdgRegistrar{}
}

// entryPath returns the desktop entry location, honoring XDG_CONFIG_HOME.
func (r *xdgRegistrar) entryPath() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "autostart", desktopFileName), nil
}

func (r *xdgRegistrar) Enabled() (bool, error) {
	path, err := r.entryPath()
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return false, nil
	} else if err != nil {
		return false, fmt.Errorf("failed to stat autostart entry: %w", err)
	}
	return true, nil
}

func (r *xdgRegistrar) Set(enabled bool) error {
	path, err := r.entryPath()
	if err != nil {
		return err
	}

	if !enabled {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove autostart entry: %w", err)
		}
		return nil
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to locate executable: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create autostart directory: %w", err)
	}

	entry := strings.Join([]string{
		"[Desktop Entry]",
		"Type=Application",
		"Name=" + version.AppName,
		"Comment=Periodic stretch reminder",
		"Exec=" + quoteExec(exe),
		"X-GNOME-Autostart-enabled=true",
		"Version=1.0",
		"",
	}, "\n")

	if err := os.WriteFile(path, []byte(entry), 0644); err != nil {
		return fmt.Errorf("failed to write autostart entry: %w", err)
	}
	return nil
}

// quoteExec quotes the executable path for the desktop entry Exec key when
// it contains spaces.
func quoteExec(path string) string {
	if strings.Contains(path, " ") {
		return `"` + path + `"`
	}
	return path
}
