// Package app wires the reminder components together and runs the program
// lifecycle: one fyne event thread, one tray goroutine, one dispatcher
// goroutine draining the command queue, and the scheduler's timer callbacks.
package app

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"

	"stretchreminder/internal/autostart"
	"stretchreminder/internal/command"
	"stretchreminder/internal/config"
	"stretchreminder/internal/gui"
	"stretchreminder/internal/logging"
	"stretchreminder/internal/notify"
	"stretchreminder/internal/resources"
	"stretchreminder/internal/scheduler"
	"stretchreminder/internal/tray"
	"stretchreminder/internal/version"
)

// queueSize bounds the command channel. Three command kinds and one consumer
// make anything beyond a small buffer unreachable in practice.
const queueSize = 16

// App owns every long-lived component and the current settings record.
type App struct {
	fyneApp fyne.App
	logger  *logging.Logger

	cfgMu   sync.Mutex
	cfg     *config.Config
	cfgPath string
	appDir  string

	notifier  *notify.Notifier
	sched     *scheduler.Scheduler
	registrar autostart.Registrar
	queue     *command.Queue
	trayCtl   *tray.Controller
	settings  *gui.SettingsManager
	watcher   *config.Watcher

	created bool
	done    chan struct{}
}

// New loads configuration and prepares all components. Startup failures
// returned here are unrecoverable (exit code 1 in main).
func New(cfgPath string) (*App, error) {
	if cfgPath == "" {
		var err error
		cfgPath, err = config.DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("fatal configuration error: %w", err)
		}
	}

	cfg, loadRes, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("fatal configuration error: %w", err)
	}

	appDir, err := config.AppDir()
	if err != nil {
		return nil, err
	}

	logger, logErr := logging.NewLogger(config.ResolvePath(appDir, cfg.LogFile))
	if logErr != nil {
		// Console-only logging is degraded, not fatal.
		logger.Warn().Err(logErr).Msg("Logging to console only")
	}
	for _, warn := range loadRes.Warnings {
		logger.Warn().Str("field", warn).Msg("Config field invalid, default substituted")
	}

	iconPath, iconBytes, err := loadIcon(cfg, appDir, logger)
	if err != nil {
		return nil, err
	}

	a := &App{
		logger:  logger,
		cfg:     cfg,
		cfgPath: cfgPath,
		appDir:  appDir,
		created: loadRes.Created,
		done:    make(chan struct{}),
	}

	a.fyneApp = fyneapp.NewWithID("com.stretchreminder.app")
	a.fyneApp.SetIcon(resources.Icon())

	a.notifier = notify.NewNotifier(iconPath, logger)
	a.sched = scheduler.New(a.notifier.Reminder, logger)
	a.registrar = autostart.New()
	a.queue = command.NewQueue(queueSize)
	a.trayCtl = tray.New(iconBytes, a.queue, logger)
	a.settings = gui.NewSettingsManager(
		a.fyneApp,
		resources.Icon(),
		a.sched,
		a.registrar,
		cfgPath,
		a.currentConfig,
		a.setConfig,
		logger,
	)

	return a, nil
}

// loadIcon resolves the configured icon, falling back to the bundled one. A
// program with no usable icon at all cannot render a tray entry, which is a
// startup-fatal condition.
func loadIcon(cfg *config.Config, appDir string, logger *logging.Logger) (string, []byte, error) {
	if p := config.ResolveIcon(cfg, appDir); p != "" {
		data, err := os.ReadFile(p)
		if err == nil && len(data) > 0 {
			return p, data, nil
		}
		logger.Warn().Err(err).Str("path", p).Msg("Configured icon unreadable, using bundled icon")
	} else {
		logger.Warn().Str("icon_path", cfg.IconPath).Msg("Configured icon missing, using bundled icon")
	}

	if len(resources.IconData) == 0 {
		return "", nil, errors.New("no usable icon resource")
	}
	return "", resources.IconData, nil
}

// Run starts all goroutines and blocks inside the fyne event loop until an
// exit command tears the application down. The returned error is nil on a
// normal shutdown.
func (a *App) Run() error {
	cfg := a.currentConfig()
	a.logger.Info().
		Str("version", version.Version).
		Float64("interval_min", cfg.IntervalMin).
		Msg("Stretch Reminder starting")

	// First reminder armed before any UI exists, as the original program
	// schedules before showing the tray.
	a.sched.Arm(gui.IntervalDuration(cfg.IntervalMin))

	watcher, err := config.NewWatcher(a.cfgPath, a.logger, a.onConfigEdited)
	if err != nil {
		a.logger.Warn().Err(err).Msg("Config file watcher disabled")
	} else {
		a.watcher = watcher
	}

	go a.trayCtl.Run()
	go a.dispatch()
	go a.handleSignals()

	a.notifier.Welcome(a.created, cfg.IntervalMin)

	// Blocks until teardown calls Quit. The fyne thread also services the
	// settings window; commands reach it via fyne.Do from the dispatcher.
	a.fyneApp.Run()

	a.logger.Info().Msg("Stretch Reminder exited")
	a.logger.Close()
	return nil
}

// dispatch is the single consumer of the command queue. Commands are
// processed strictly in the order enqueued; the loop never blocks on
// anything but the queue itself, so teardown cannot stall here.
func (a *App) dispatch() {
	for {
		select {
		case cmd := <-a.queue.C():
			switch cmd {
			case command.OpenSettings:
				fyne.Do(a.settings.Show)

			case command.ToggleAutoStart:
				a.toggleAutoStart()

			case command.Exit:
				a.shutdown()
				return

			default:
				a.logger.Warn().Str("command", string(cmd)).Msg("Unknown command ignored")
			}

		case <-a.done:
			return
		}
	}
}

// toggleAutoStart flips the live registration state. The outcome is shown on
// the settings window when one is open, otherwise as a notification; both
// paths log.
func (a *App) toggleAutoStart() {
	enabled, err := a.registrar.Enabled()
	if err != nil {
		a.logger.Error().Err(err).Msg("Failed to query run-at-login state")
		a.notifier.AutoStartChanged(false, err)
		return
	}

	target := !enabled
	err = a.registrar.Set(target)
	if err != nil {
		a.logger.Error().Err(err).Bool("enabled", target).Msg("Failed to update run-at-login registration")
	} else {
		a.logger.Info().Bool("enabled", target).Msg("Run-at-login registration updated")
	}

	// The settings window reference belongs to the fyne thread.
	fyne.Do(func() {
		if a.settings.Open() {
			a.settings.ReportAutoStart(target, err)
			return
		}
		go a.notifier.AutoStartChanged(target, err)
	})
}

// shutdown performs the ordered teardown: stop the timer, stop watching the
// config file, stop the tray loop, close the window, then quit the UI pump.
func (a *App) shutdown() {
	close(a.done)

	a.sched.Shutdown()
	if a.watcher != nil {
		a.watcher.Close()
	}
	a.trayCtl.Quit()
	fyne.Do(func() {
		a.settings.Close()
		a.fyneApp.Quit()
	})
}

// handleSignals folds SIGINT/SIGTERM into a normal exit command.
func (a *App) handleSignals() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		a.logger.Info().Str("signal", sig.String()).Msg("Signal received, shutting down")
		a.queue.Post(command.Exit)
	case <-a.done:
	}
}

// onConfigEdited runs on the watcher goroutine after a hand edit of
// config.json. The scheduler only resets when the interval actually changed,
// so the Save performed by the apply handler does not double-reset.
func (a *App) onConfigEdited(cfg *config.Config) {
	a.setConfig(cfg)

	d := gui.IntervalDuration(cfg.IntervalMin)
	if d == a.sched.Interval() {
		return
	}
	a.logger.Info().Float64("interval_min", cfg.IntervalMin).Msg("Rescheduling after config edit")
	a.sched.Reset(d)
}

func (a *App) currentConfig() *config.Config {
	a.cfgMu.Lock()
	defer a.cfgMu.Unlock()
	return a.cfg
}

func (a *App) setConfig(cfg *config.Config) {
	a.cfgMu.Lock()
	defer a.cfgMu.Unlock()
	a.cfg = cfg
}
