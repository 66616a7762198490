// Package autosave turns a stream of content-changed notifications into a
// bounded rate of save invocations. A burst of edits arms a single
// deadline; only a quiet period lets it fire.
package autosave

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/introspection"
)

// DefaultDelay is the idle window a burst of triggers must outlast before
// the save callback fires.
const DefaultDelay = 1000 * time.Millisecond

// ErrClosed is returned by SaveNow once the scheduler has been closed.
var ErrClosed = errors.New("scheduler closed")

// SaveFunc persists the current working state. The scheduler never invokes
// it concurrently with itself.
type SaveFunc func() error

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithDelay sets the debounce window. Non-positive values keep the default.
func WithDelay(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.delay = d
		}
	}
}

// WithLogger sets the logger used for swallowed save failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Scheduler collapses bursts of Trigger calls into one save per idle
// period.
//
// State machine: Idle, then a Trigger arms a deadline at now+delay; every
// further Trigger restarts the countdown; when the deadline elapses
// untouched the callback fires and the scheduler is Idle again. SaveNow
// short-circuits from any state straight to the callback.
//
// The scheduler performs no flush of its own on Disable or Close; an owner
// holding unsaved edits calls SaveNow first.
type Scheduler struct {
	save   SaveFunc
	logger *slog.Logger

	mu         sync.Mutex
	delay      time.Duration
	timer      *time.Timer
	generation uint64
	enabled    bool
	closed     bool
	fires      uint64
	failures   uint64

	// saveMu serializes callback invocations so a timer firing and an
	// explicit SaveNow never run the callback at the same time.
	saveMu sync.Mutex
}

// New builds a Scheduler around the given save callback.
func New(save SaveFunc, opts ...Option) *Scheduler {
	s := &Scheduler{
		save:    save,
		logger:  slog.Default(),
		delay:   DefaultDelay,
		enabled: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Trigger restarts the idle countdown. Safe to call arbitrarily often; a
// burst of calls results in a single save once the window elapses with no
// further activity. No-op while disabled or after Close.
func (s *Scheduler) Trigger() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled || s.closed {
		return
	}

	s.generation++
	gen := s.generation

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, func() { s.fire(gen) })
}

// fire runs the callback for a deadline that elapsed untouched. A stale
// generation means the deadline was reset, cancelled or short-circuited
// after this timer was armed, so the fire is a no-op.
func (s *Scheduler) fire(gen uint64) {
	s.mu.Lock()
	if gen != s.generation || !s.enabled || s.closed {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	s.mu.Unlock()

	// A timer has no caller to report to. Log, swallow, stay ready for
	// the next edit.
	if err := s.invoke(); err != nil {
		s.logger.Error("auto-save failed", "error", err)
	}
}

// SaveNow forces an immediate save, bypassing any pending wait and
// cancelling it. Unlike timer-fired saves the error is returned: an
// explicit save has someone to report to. SaveNow works while disabled.
func (s *Scheduler) SaveNow() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.cancelPendingLocked()
	s.mu.Unlock()

	return s.invoke()
}

func (s *Scheduler) invoke() error {
	s.saveMu.Lock()
	err := s.save()
	s.saveMu.Unlock()

	s.mu.Lock()
	s.fires++
	if err != nil {
		s.failures++
	}
	s.mu.Unlock()
	return err
}

// Enable lifts a previous Disable. No-op on a closed scheduler.
func (s *Scheduler) Enable() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.enabled = true
	}
}

// Disable cancels any pending save and suppresses Trigger calls until
// Enable. It fires no final save.
func (s *Scheduler) Disable() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled = false
	s.cancelPendingLocked()
}

// SetDelay changes the debounce window for subsequent triggers. A deadline
// already pending keeps its original schedule. Non-positive values are
// ignored.
func (s *Scheduler) SetDelay(d time.Duration) {
	if d <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = d
}

// Delay reports the current debounce window.
func (s *Scheduler) Delay() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.delay
}

// Pending reports whether a save is armed but has not fired yet.
func (s *Scheduler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil
}

// Close cancels any pending timer and rejects further use. It never
// flushes.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.enabled = false
	s.cancelPendingLocked()
}

// cancelPendingLocked invalidates the current generation so an in-flight
// fire becomes a no-op even when the timer's Stop loses the race.
func (s *Scheduler) cancelPendingLocked() {
	s.generation++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// SchedulerState exposes internal state for observability.
type SchedulerState struct {
	Enabled  bool   `json:"enabled"`
	Pending  bool   `json:"pending"`
	Delay    string `json:"delay"`
	Fires    uint64 `json:"fires"`
	Failures uint64 `json:"failures"`
}

// State implements introspection.Introspectable.
func (s *Scheduler) State() any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SchedulerState{
		Enabled:  s.enabled && !s.closed,
		Pending:  s.timer != nil,
		Delay:    s.delay.String(),
		Fires:    s.fires,
		Failures: s.failures,
	}
}

// ComponentType implements introspection.Component.
func (s *Scheduler) ComponentType() string {
	return "scheduler"
}

var _ introspection.Introspectable = (*Scheduler)(nil)
var _ introspection.Component = (*Scheduler)(nil)
