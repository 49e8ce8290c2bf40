// Package notify provides cross-platform desktop notifications.
// It uses github.com/gen2brain/beeep for cross-platform notification support.
package notify

import (
	"fmt"

	"github.com/gen2brain/beeep"

	"stretchreminder/internal/logging"
	"stretchreminder/internal/version"
)

// Notifier sends best-effort desktop notifications. Failures are logged and
// swallowed; a notification that cannot be shown must never crash or block
// the reminder cadence.
type Notifier struct {
	logger   *logging.Logger
	iconPath string
}

// NewNotifier creates a notifier. iconPath may be empty, in which case the
// platform default notification icon is used.
func NewNotifier(iconPath string, logger *logging.Logger) *Notifier {
	return &Notifier{
		logger:   logger,
		iconPath: iconPath,
	}
}

// Reminder sends the periodic stretch notification.
func (n *Notifier) Reminder() {
	title := "Time to stretch"
	message := "Stand up, loosen your shoulders and stretch for a minute."

	if err := n.send(title, message); err != nil {
		n.logger.Warn().Err(err).Msg("Failed to send reminder notification")
		return
	}
	n.logger.Info().Str("title", title).Msg("Notification sent")
}

// Welcome sends the startup notification. created indicates the settings
// file was just written for the first time.
func (n *Notifier) Welcome(created bool, intervalMin float64) {
	var title, message string
	if created {
		title = "Welcome!"
		message = fmt.Sprintf("%s %s started.\nDefault: reminders every %.0f minutes.",
			version.AppName, version.Version, intervalMin)
	} else {
		title = version.AppName
		message = fmt.Sprintf("%s %s is running.", version.AppName, version.Version)
	}

	if err := n.send(title, message); err != nil {
		n.logger.Warn().Err(err).Msg("Failed to send startup notification")
	}
}

// AutoStartChanged reports the outcome of a run-at-login toggle triggered
// away from the settings window.
func (n *Notifier) AutoStartChanged(enabled bool, err error) {
	title := "Run at login"
	var message string
	switch {
	case err != nil:
		message = fmt.Sprintf("Could not update run-at-login registration: %v", err)
	case enabled:
		message = "Run at login enabled."
	default:
		message = "Run at login disabled."
	}

	if sendErr := n.send(title, message); sendErr != nil {
		n.logger.Warn().Err(sendErr).Msg("Failed to send auto-start notification")
	}
}

// send is the internal method that actually sends the notification.
// beeep.Notify is cross-platform:
//   - Windows: toast notifications
//   - macOS: NSUserNotificationCenter
//   - Linux: D-Bus notifications
func (n *Notifier) send(title, message string) error {
	return beeep.Notify(title, message, n.iconPath)
}
