// Package version provides build version information for the application.
// This is a separate package to avoid import cycles between cli and app packages.
package version

// AppName is the display name used for the tray tooltip, notifications and
// the run-at-login registration key.
const AppName = "Stretch Reminder"

// Version is the build version string, set by ldflags during build.
// Format: vX.Y.Z or vX.Y.Z-dev for development builds.
var Version = "v1.0.0"

// BuildTime is the build timestamp, set by ldflags during build.
var BuildTime = "unknown"
