// Package tray owns the system tray icon and its two-item menu. It runs the
// native tray loop on its own goroutine and never touches UI or scheduler
// state directly: menu clicks only post commands onto the queue.
package tray

import (
	"fmt"

	"fyne.io/systray"

	"stretchreminder/internal/command"
	"stretchreminder/internal/logging"
	"stretchreminder/internal/version"
)

// Controller bridges the systray menu to the command queue.
type Controller struct {
	queue  *command.Queue
	logger *logging.Logger
	icon   []byte

	mSettings *systray.MenuItem
	mQuit     *systray.MenuItem

	done chan struct{}
}

// New creates a tray controller. icon must be PNG bytes; fyne.io/systray
// handles PNG on both Windows and Linux.
func New(icon []byte, queue *command.Queue, logger *logging.Logger) *Controller {
	return &Controller{
		queue:  queue,
		logger: logger,
		icon:   icon,
		done:   make(chan struct{}),
	}
}

// Run blocks inside the native tray loop. Call on a dedicated goroutine.
// A tray that cannot start is fatal for the program, so the failure path
// posts an exit command.
func (c *Controller) Run() {
	defer func() {
		// systray panics on some headless setups rather than returning an
		// error; fold that into the normal exit path.
		if r := recover(); r != nil {
			c.logger.Error().Interface("panic", r).Msg("Tray loop failed")
			c.queue.Post(command.Exit)
		}
	}()
	systray.Run(c.onReady, c.onExit)
}

// Quit stops the tray loop during teardown.
func (c *Controller) Quit() {
	systray.Quit()
}

func (c *Controller) onReady() {
	systray.SetIcon(c.icon)
	systray.SetTitle(version.AppName)
	systray.SetTooltip(fmt.Sprintf("%s %s", version.AppName, version.Version))

	c.mSettings = systray.AddMenuItem("Open Settings", "Edit reminder interval and run-at-login")
	systray.AddSeparator()
	c.mQuit = systray.AddMenuItem("Exit", "Quit the reminder")

	go c.handleMenuClicks()

	c.logger.Info().Msg("Tray icon ready")
}

func (c *Controller) onExit() {
	select {
	case <-c.done:
	default:
		close(c.done)
	}
}

// handleMenuClicks processes menu item clicks until the tray loop exits.
func (c *Controller) handleMenuClicks() {
	for {
		select {
		case <-c.mSettings.ClickedCh:
			if !c.queue.Post(command.OpenSettings) {
				c.logger.Warn().Msg("Command queue full, open_settings dropped")
			}

		case <-c.mQuit.ClickedCh:
			if !c.queue.Post(command.Exit) {
				c.logger.Warn().Msg("Command queue full, exit dropped")
			}

		case <-c.done:
			return
		}
	}
}
