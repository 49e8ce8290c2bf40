// Stretch Reminder - tray utility with periodic stretch notifications.
//
// Build for Windows without a console window:
//
//	GOOS=windows go build -ldflags "-H=windowsgui" ./cmd/stretch-reminder
package main

import (
	"os"

	"stretchreminder/internal/cli"
	"stretchreminder/internal/version"
)

// Version information - the Makefile injects release values via LDFLAGS;
// these are the fallbacks for plain go build.
var (
	Version   = "v1.0.0"
	BuildTime = "unknown"
)

func main() {
	version.Version = Version
	version.BuildTime = BuildTime

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
