package fs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	"github.com/aretw0/lifecycle/pkg/core/worker"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/vellum/pkg/core"
)

// debounceWindow is the quiet period for coalescing filesystem event
// bursts (editors typically emit several writes per save).
const debounceWindow = 50 * time.Millisecond

// Watch emits change events for records under the root until ctx is
// cancelled or CloseWatch is called. The pattern filters note ids with
// doublestar globs; an empty pattern matches every record. Writes
// performed through this store are suppressed, so consumers only see
// external changes. The returned channel closes when the watcher stops.
func (s *Store) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	buffer := s.config.EventBuffer
	if buffer <= 0 {
		buffer = 100
	}
	events := make(chan core.Event, buffer)
	w := newWatchWorker(s, pattern, events)

	s.mu.Lock()
	if s.watcher != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("watch already active")
	}
	s.watcher = w
	s.mu.Unlock()

	if err := w.Start(ctx); err != nil {
		s.clearWatcher(w)
		return nil, err
	}
	return events, nil
}

// CloseWatch stops an active watcher and waits for it to wind down. It is
// a no-op when nothing is watching.
func (s *Store) CloseWatch(ctx context.Context) error {
	s.mu.RLock()
	w := s.watcher
	s.mu.RUnlock()
	if w == nil {
		return nil
	}
	return w.Stop(ctx)
}

func (s *Store) setWatcherActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watcherActive = active
}

func (s *Store) clearWatcher(w *watchWorker) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.watcher == w {
		s.watcher = nil
	}
	s.watcherActive = false
}

type watchWorker struct {
	*worker.BaseWorker
	store     *Store
	pattern   string
	events    chan<- core.Event
	watcher   *fsnotify.Watcher
	debouncer *debouncer
	cancel    context.CancelFunc
}

func newWatchWorker(store *Store, pattern string, events chan<- core.Event) *watchWorker {
	return &watchWorker{
		BaseWorker: worker.NewBaseWorker("fs-watcher"),
		store:      store,
		pattern:    pattern,
		events:     events,
	}
}

func (w *watchWorker) Start(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	status := w.State().Status
	if status != worker.StatusCreated && status != worker.StatusPending {
		return fmt.Errorf("watcher already started (status: %s)", status)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := watcher.Add(w.store.Root); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch notes root: %w", err)
	}

	w.watcher = watcher
	w.debouncer = newDebouncer(debounceWindow)
	w.store.setWatcherActive(true)

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.SetStatus(worker.StatusRunning)
	return w.StartFunc(runCtx, w.run)
}

func (w *watchWorker) Stop(ctx context.Context) error {
	if w.cancel != nil {
		w.StopRequested = true
		w.cancel()
	}

	return w.BaseWorker.Stop(ctx)
}

func (w *watchWorker) State() worker.State {
	return w.ExportState(func(s *worker.State) {
		s.Metadata = map[string]string{
			worker.MetadataType: string(worker.TypeGoroutine),
		}
	})
}

// processFilesystemEvent filters, maps and debounces one fsnotify event.
// Returns true if the event was queued for delivery.
func (w *watchWorker) processFilesystemEvent(ctx context.Context, event fsnotify.Event) (processed bool) {
	w.store.logger.Debug("event received", "name", event.Name)

	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, TempFilePrefix) {
		return false
	}

	ext := filepath.Ext(name)
	if _, err := w.store.codec(ext); err != nil {
		return false
	}
	id := strings.TrimSuffix(name, ext)

	if w.pattern != "" {
		ok, err := doublestar.Match(w.pattern, id)
		if err != nil {
			w.fail(fmt.Errorf("invalid watch pattern %q: %w", w.pattern, err))
			return false
		}
		if !ok {
			return false
		}
	}

	eType := mapEventType(event)
	if eType == "" {
		return false
	}

	// Events caused by this store's own writes carry content matching
	// the write ledger; only external changes go out.
	if eType != core.EventDelete {
		if data, err := os.ReadFile(event.Name); err == nil && w.store.ledger.matches(name, data) {
			w.store.logger.Debug("suppressing self-write", "file", name)
			return false
		}
	}

	w.sendEvent(ctx, core.Event{
		Type:      eType,
		ID:        id,
		Timestamp: time.Now().Unix(),
	})

	return true
}

func mapEventType(event fsnotify.Event) core.EventType {
	switch {
	case event.Has(fsnotify.Create):
		return core.EventCreate
	case event.Has(fsnotify.Write):
		return core.EventModify
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return core.EventDelete
	default:
		return ""
	}
}

// sendEvent enqueues an event via the debouncer, protecting against
// channel closure during shutdown.
func (w *watchWorker) sendEvent(ctx context.Context, event core.Event) {
	w.debouncer.add(event, func(e core.Event) {
		defer func() {
			// Recover from panic if channel was closed (worker stopping)
			_ = recover()
		}()
		select {
		case w.events <- e:
		case <-ctx.Done():
		}
	})
}

func (w *watchWorker) fail(err error) {
	w.store.logger.Error("watcher error", "error", err)
	if w.store.config.ErrorHandler != nil {
		w.store.config.ErrorHandler(err)
	}
}

// run is the main event loop for the watcher worker.
func (w *watchWorker) run(ctx context.Context) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			panicErr := fmt.Errorf("watcher panic: %v", recovered)

			// Stack capture only when debug logging is on; production
			// levels skip the noise.
			var stack string
			if w.store.logger.Enabled(ctx, slog.LevelDebug) {
				stack = string(debug.Stack())
			}

			if stack != "" {
				w.store.logger.Error("watcher panic", "error", panicErr, "stack", stack)
			} else {
				w.store.logger.Error("watcher panic", "error", panicErr)
			}
		}
	}()
	defer w.store.clearWatcher(w)
	defer w.watcher.Close()

	err = w.mainEventLoop(ctx)

	// Shutdown order matters: stop accepting new events and wait for
	// in-flight timers before the delivery channel closes.
	w.debouncer.stopAndWait(5 * time.Second)
	close(w.events)

	return err
}

// mainEventLoop is the core select loop processing filesystem and watcher
// error events.
func (w *watchWorker) mainEventLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			w.processFilesystemEvent(ctx, event)

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			w.fail(wErr)
		}
	}
}
