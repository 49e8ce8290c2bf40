//go:build windows

package autostart

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/sys/windows/registry"

	"stretchreminder/internal/version"
)

const (
	runKeyPath  = `Software\Microsoft\Windows\CurrentVersion\Run`
	infoKeyPath = `Software\Microsoft\Windows\CurrentVersion\Run\StretchReminderInfo`
)

// windowsRegistrar stores the registration as a value under the per-user
// Run key: name = application name, data = quoted absolute executable path.
type windowsRegistrar struct{}

func newRegistrar() Registrar {
	return &windowsRegistrar{}
}

func (r *windowsRegistrar) Enabled() (bool, error) {
	key, err := registry.OpenKey(registry.CURRENT_USER, runKeyPath, registry.QUERY_VALUE)
	if err != nil {
		return false, fmt.Errorf("failed to open Run key: %w", err)
	}
	defer key.Close()

	_, _, err = key.GetStringValue(version.AppName)
	if err == registry.ErrNotExist {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to query Run value: %w", err)
	}
	return true, nil
}

func (r *windowsRegistrar) Set(enabled bool) error {
	key, err := registry.OpenKey(registry.CURRENT_USER, runKeyPath,
		registry.SET_VALUE|registry.QUERY_VALUE)
	if err != nil {
		return fmt.Errorf("failed to open Run key: %w", err)
	}
	defer key.Close()

	if !enabled {
		if err := key.DeleteValue(version.AppName); err != nil && err != registry.ErrNotExist {
			return fmt.Errorf("failed to delete Run value: %w", err)
		}
		// The metadata key is best-effort in both directions.
		registry.DeleteKey(registry.CURRENT_USER, infoKeyPath)
		return nil
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to locate executable: %w", err)
	}
	launch := exe
	if strings.Contains(launch, " ") {
		launch = `"` + launch + `"`
	}

	if err := key.SetStringValue(version.AppName, launch); err != nil {
		return fmt.Errorf("failed to set Run value: %w", err)
	}

	// Secondary metadata entry; failure must not fail the registration.
	writeInfoKey(exe)
	return nil
}

// writeInfoKey records icon path, version and description next to the Run
// entry. Best-effort only.
func writeInfoKey(exePath string) {
	infoKey, _, err := registry.CreateKey(registry.CURRENT_USER, infoKeyPath, registry.SET_VALUE)
	if err != nil {
		return
	}
	defer infoKey.Close()

	infoKey.SetStringValue("IconPath", exePath)
	infoKey.SetStringValue("Version", version.Version)
	infoKey.SetStringValue("Description", "Periodic stretch reminder")
}
