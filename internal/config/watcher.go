package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"stretchreminder/internal/logging"
)

// debounceDelay coalesces the write+rename burst editors and Save produce.
const debounceDelay = 500 * time.Millisecond

// Watcher reloads the settings file when it is edited by hand and reports
// the fresh record to a callback. Save uses rename-into-place, so the watch
// is on the containing directory rather than the file itself.
type Watcher struct {
	path     string
	fsw      *fsnotify.Watcher
	logger   *logging.Logger
	onChange func(*Config)
	done     chan struct{}
}

// NewWatcher starts watching the config file at path. onChange runs on the
// watcher goroutine with the reloaded record; callers marshal to their own
// thread as needed.
func NewWatcher(path string, logger *logging.Logger, onChange func(*Config)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create config watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch config directory: %w", err)
	}

	w := &Watcher{
		path:     path,
		fsw:      fsw,
		logger:   logger,
		onChange: onChange,
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Close stops the watcher. Idempotent calls after the first return the
// underlying watcher's close error.
func (w *Watcher) Close() error {
	select {
	case <-w.done:
	default:
		close(w.done)
	}
	return w.fsw.Close()
}

func (w *Watcher) loop() {
	var debounce *time.Timer
	reload := func() {
		cfg, res, err := Load(w.path)
		if err != nil {
			w.logger.Warn().Err(err).Msg("Failed to reload edited config")
			return
		}
		for _, warn := range res.Warnings {
			w.logger.Warn().Str("field", warn).Msg("Edited config field invalid, default substituted")
		}
		w.logger.Info().Float64("interval_min", cfg.IntervalMin).Msg("Config file edited, reloaded")
		w.onChange(cfg)
	}

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(debounceDelay, func() {
				select {
				case <-w.done:
				default:
					reload()
				}
			})

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn().Err(err).Msg("Config watcher error")

		case <-w.done:
			return
		}
	}
}
