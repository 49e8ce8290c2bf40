// Package resources embeds the bundled fallback icon.
package resources

import (
	_ "embed"

	"fyne.io/fyne/v2"
)

// IconData contains the bundled application icon (64x64 PNG).
// It is the fallback when the icon configured in config.json is missing.
// The fyne.io/systray library handles PNG format on both Windows and Linux.
//
//go:embed icon.png
var IconData []byte

// Icon returns the bundled icon as a fyne resource for window decoration.
func Icon() fyne.Resource {
	return fyne.NewStaticResource("icon.png", IconData)
}
