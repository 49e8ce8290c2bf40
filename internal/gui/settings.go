// Package gui provides the settings window.
package gui

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"stretchreminder/internal/autostart"
	"stretchreminder/internal/config"
	"stretchreminder/internal/logging"
	"stretchreminder/internal/scheduler"
	"stretchreminder/internal/version"
)

// countdownTick is the refresh rate of the "next reminder" label.
const countdownTick = time.Second

// SettingsManager creates the settings window lazily and guarantees a single
// instance: a second open request only refocuses the existing window. All
// methods must run on the fyne event thread.
type SettingsManager struct {
	app       fyne.App
	icon      fyne.Resource
	sched     *scheduler.Scheduler
	registrar autostart.Registrar
	logger    *logging.Logger

	cfgPath   string
	current   func() *config.Config
	onApplied func(*config.Config)

	win      fyne.Window
	stopTick chan struct{}
}

// NewSettingsManager wires the settings window dependencies. current returns
// the live configuration record; onApplied reports a successfully applied
// record back to the owner.
func NewSettingsManager(
	app fyne.App,
	icon fyne.Resource,
	sched *scheduler.Scheduler,
	registrar autostart.Registrar,
	cfgPath string,
	current func() *config.Config,
	onApplied func(*config.Config),
	logger *logging.Logger,
) *SettingsManager {
	return &SettingsManager{
		app:       app,
		icon:      icon,
		sched:     sched,
		registrar: registrar,
		logger:    logger,
		cfgPath:   cfgPath,
		current:   current,
		onApplied: onApplied,
	}
}

// Show opens the settings window, or refocuses it when already open.
func (m *SettingsManager) Show() {
	if m.win != nil {
		m.win.RequestFocus()
		return
	}
	m.win = m.build()
	m.win.Show()
}

// Close tears the window down if it is open.
func (m *SettingsManager) Close() {
	if m.win != nil {
		m.win.Close()
	}
}

// Open reports whether a settings window currently exists.
func (m *SettingsManager) Open() bool {
	return m.win != nil
}

// ReportAutoStart surfaces the outcome of an interactively triggered
// run-at-login toggle on the open settings window. No-op when the window is
// closed; the caller falls back to a desktop notification.
func (m *SettingsManager) ReportAutoStart(enabled bool, err error) {
	if m.win == nil {
		return
	}
	if err != nil {
		dialog.ShowError(fmt.Errorf("run-at-login update failed: %w", err), m.win)
		return
	}
	state := "disabled"
	if enabled {
		state = "enabled"
	}
	dialog.ShowInformation("Run at login", "Run at login "+state+".", m.win)
}

func (m *SettingsManager) build() fyne.Window {
	cfg := m.current()

	win := m.app.NewWindow(version.AppName + " Settings")
	win.SetIcon(m.icon)
	win.Resize(fyne.NewSize(400, 320))
	win.SetFixedSize(true)
	win.CenterOnScreen()

	intervalEntry := widget.NewEntry()
	intervalEntry.SetText(fmt.Sprintf("%.1f", cfg.IntervalMin))

	help := widget.NewLabel("0.1 – 1440 minutes, decimals allowed")
	help.Importance = widget.LowImportance

	// The registration is queried live; the stored flag only matters when
	// the query itself fails.
	autoStartCheck := widget.NewCheck("Run at login", nil)
	if enabled, err := m.registrar.Enabled(); err != nil {
		m.logger.Warn().Err(err).Msg("Failed to query run-at-login state")
		autoStartCheck.SetChecked(cfg.AutoStart)
	} else {
		autoStartCheck.SetChecked(enabled)
	}

	countdown := widget.NewLabel(formatRemaining(m.sched.TimeRemaining()))
	countdown.Alignment = fyne.TextAlignCenter

	applyBtn := widget.NewButton("Apply", func() {
		m.apply(win, intervalEntry, autoStartCheck)
	})
	applyBtn.Importance = widget.HighImportance

	form := widget.NewForm(
		widget.NewFormItem("Reminder interval (min)", intervalEntry),
		widget.NewFormItem("", help),
		widget.NewFormItem("", autoStartCheck),
	)

	win.SetContent(container.NewVBox(
		widget.NewLabelWithStyle(version.AppName+" Settings", fyne.TextAlignCenter,
			fyne.TextStyle{Bold: true}),
		form,
		applyBtn,
		countdown,
	))

	m.stopTick = make(chan struct{})
	go m.runCountdown(countdown, m.stopTick)

	win.SetOnClosed(func() {
		close(m.stopTick)
		m.stopTick = nil
		// Clear the singleton so the next open recreates the window.
		m.win = nil
	})

	return win
}

// apply validates the interval and, on success, persists the record, updates
// the run-at-login registration and resets the scheduler. On validation
// failure the previous value is restored and the error shown inline; invalid
// input is never silently accepted.
func (m *SettingsManager) apply(win fyne.Window, intervalEntry *widget.Entry, autoStartCheck *widget.Check) {
	prev := m.current()

	minutes, err := config.ParseInterval(intervalEntry.Text)
	if err != nil {
		dialog.ShowError(err, win)
		intervalEntry.SetText(fmt.Sprintf("%.1f", prev.IntervalMin))
		return
	}

	next := *prev
	next.IntervalMin = minutes
	next.AutoStart = autoStartCheck.Checked

	if err := config.Save(&next, m.cfgPath); err != nil {
		m.logger.Error().Err(err).Msg("Failed to save settings")
		dialog.ShowError(fmt.Errorf("failed to save settings: %w", err), win)
		return
	}

	registrarErr := m.registrar.Set(next.AutoStart)
	if registrarErr != nil {
		m.logger.Error().Err(registrarErr).Bool("enabled", next.AutoStart).Msg("Failed to update run-at-login registration")
	}

	m.sched.Reset(IntervalDuration(minutes))
	m.onApplied(&next)

	m.logger.Info().
		Float64("interval_min", minutes).
		Bool("auto_start", next.AutoStart).
		Msg("Settings applied")

	if registrarErr != nil {
		dialog.ShowError(fmt.Errorf("settings saved, but run-at-login update failed: %w", registrarErr), win)
		return
	}
	dialog.ShowInformation("Settings applied",
		fmt.Sprintf("New interval: %.1f minutes", minutes), win)
}

// runCountdown refreshes the countdown label once per second until the
// window closes. Label updates are marshalled onto the fyne thread.
func (m *SettingsManager) runCountdown(label *widget.Label, stop <-chan struct{}) {
	ticker := time.NewTicker(countdownTick)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			text := formatRemaining(m.sched.TimeRemaining())
			fyne.Do(func() {
				label.SetText(text)
			})
		case <-stop:
			return
		}
	}
}

// IntervalDuration converts a configured interval in minutes to a Duration.
func IntervalDuration(minutes float64) time.Duration {
	return time.Duration(minutes * float64(time.Minute))
}

// formatRemaining renders a non-negative duration as "Xm YYs", floored at
// zero.
func formatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	return fmt.Sprintf("Next reminder in %dm %02ds", total/60, total%60)
}
