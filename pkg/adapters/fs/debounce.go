package fs

import (
	"sync"
	"time"

	"github.com/aretw0/vellum/pkg/core"
)

// debouncer coalesces bursts of events per key (event type + id),
// delivering the most recent event after a quiet window.
type debouncer struct {
	window time.Duration

	mu      sync.Mutex
	stopped bool
	pending map[string]core.Event
	timers  map[string]*time.Timer
	wg      sync.WaitGroup
}

func newDebouncer(window time.Duration) *debouncer {
	return &debouncer{
		window:  window,
		pending: make(map[string]core.Event),
		timers:  make(map[string]*time.Timer),
	}
}

// add schedules e for delivery after the quiet window, replacing any
// pending event with the same key and restarting its countdown.
func (d *debouncer) add(e core.Event, fire func(core.Event)) {
	key := string(e.Type) + "|" + e.ID

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}

	d.pending[key] = e
	if t, ok := d.timers[key]; ok && t.Stop() {
		t.Reset(d.window)
		return
	}

	// No timer yet, or the old one already fired and is waiting on the
	// lock; it will see itself replaced and bow out.
	d.wg.Add(1)
	var t *time.Timer
	t = time.AfterFunc(d.window, func() {
		defer d.wg.Done()

		d.mu.Lock()
		if d.timers[key] != t {
			d.mu.Unlock()
			return
		}
		ev, ok := d.pending[key]
		delete(d.pending, key)
		delete(d.timers, key)
		stopped := d.stopped
		d.mu.Unlock()

		if ok && !stopped {
			fire(ev)
		}
	})
	d.timers[key] = t
}

// stopAndWait rejects new events, cancels idle timers and waits up to
// timeout for in-flight deliveries to finish. Callers may close the
// delivery channel once it returns.
func (d *debouncer) stopAndWait(timeout time.Duration) {
	d.mu.Lock()
	d.stopped = true
	for key, t := range d.timers {
		if t.Stop() {
			delete(d.pending, key)
			delete(d.timers, key)
			d.wg.Done()
		}
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
	}
}
