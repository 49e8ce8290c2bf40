// Package scheduler owns the repeating reminder lifecycle: a single one-shot
// timer that fires the notifier and rearms itself with the current interval.
package scheduler

import (
	"sync"
	"time"

	"stretchreminder/internal/logging"
)

// Scheduler arms at most one outstanding one-shot timer at a time. All
// cancel+schedule pairs run under one mutex, and every armed timer captures
// a generation number; a callback whose generation is stale (superseded by
// Reset or Shutdown) is a no-op. This replaces cancel-then-delay-then-
// reschedule patterns with a race-free check.
type Scheduler struct {
	mu         sync.Mutex
	interval   time.Duration
	nextFire   time.Time
	timer      *time.Timer
	generation uint64
	stopped    bool

	onFire func()
	logger *logging.Logger
}

// New creates a stopped scheduler. onFire runs on the timer goroutine each
// time the interval elapses; it must not block for long.
func New(onFire func(), logger *logging.Logger) *Scheduler {
	return &Scheduler{
		onFire: onFire,
		logger: logger,
	}
}

// Arm cancels any outstanding timer and schedules the next fire after d.
// Always leaves exactly one timer outstanding. Safe to call from any
// goroutine, including from inside the fire callback.
func (s *Scheduler) Arm(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}
	s.armLocked(d)
}

// Reset cancels the outstanding timer and arms a fresh one with the new
// interval. A previously armed timer that has already started firing detects
// the generation change and does nothing. After Shutdown, Reset is a no-op.
func (s *Scheduler) Reset(d time.Duration) {
	s.Arm(d)
}

// armLocked performs the serialized cancel+schedule pair. Caller holds s.mu.
func (s *Scheduler) armLocked(d time.Duration) {
	if s.timer != nil {
		s.timer.Stop()
	}

	s.generation++
	gen := s.generation
	s.interval = d
	s.nextFire = time.Now().Add(d)
	s.timer = time.AfterFunc(d, func() {
		s.fire(gen)
	})

	s.logger.Info().Dur("interval", d).Msg("Next reminder scheduled")
}

// fire runs on the timer goroutine. It notifies, then rearms with the
// current interval, which may have changed since this timer was armed.
func (s *Scheduler) fire(gen uint64) {
	s.mu.Lock()
	if s.stopped || gen != s.generation {
		// Superseded by Reset or Shutdown while in flight.
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	s.onFire()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped || gen != s.generation {
		return
	}
	s.armLocked(s.interval)
}

// Shutdown cancels any outstanding timer and prevents further rearming.
// Idempotent.
func (s *Scheduler) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}
	s.stopped = true
	s.generation++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.nextFire = time.Time{}
	s.logger.Info().Msg("Reminder scheduler stopped")
}

// Interval returns the interval the scheduler is currently armed with.
func (s *Scheduler) Interval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interval
}

// TimeRemaining returns the duration until the next fire, floored at zero.
// Display only; zero also means "not armed".
func (s *Scheduler) TimeRemaining() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped || s.nextFire.IsZero() {
		return 0
	}
	remaining := time.Until(s.nextFire)
	if remaining < 0 {
		return 0
	}
	return remaining
}
