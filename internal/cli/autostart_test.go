//go:build linux

package cli

import (
	"bytes"
	"strings"
	"testing"
)

func runCommand(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
	return out.String()
}

func TestAutostartCommands(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if got := runCommand(t, "autostart", "status"); !strings.Contains(got, "disabled") {
		t.Errorf("fresh status = %q, want disabled", got)
	}

	runCommand(t, "autostart", "enable")
	if got := runCommand(t, "autostart", "status"); !strings.Contains(got, "enabled") {
		t.Errorf("status after enable = %q, want enabled", got)
	}

	runCommand(t, "autostart", "disable")
	if got := runCommand(t, "autostart", "status"); !strings.Contains(got, "disabled") {
		t.Errorf("status after disable = %q, want disabled", got)
	}

	// Disabling when already disabled still succeeds.
	runCommand(t, "autostart", "disable")
}
