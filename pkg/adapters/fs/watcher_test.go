package fs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/lifecycle/pkg/core/supervisor"
	"github.com/aretw0/lifecycle/pkg/core/worker"

	"github.com/aretw0/vellum/pkg/core"
)

func waitForEvent(t *testing.T, events <-chan core.Event, wantType core.EventType, wantID string) core.Event {
	t.Helper()

	select {
	case e, ok := <-events:
		if !ok {
			t.Fatalf("events channel closed while waiting for %s %s", wantType, wantID)
		}
		if e.Type != wantType || e.ID != wantID {
			t.Fatalf("event = %s %s, want %s %s", e.Type, e.ID, wantType, wantID)
		}
		return e
	case <-time.After(2 * time.Second):
		t.Fatalf("timeout waiting for %s %s", wantType, wantID)
	}
	return core.Event{}
}

func expectNoEvent(t *testing.T, events <-chan core.Event, window time.Duration) {
	t.Helper()

	select {
	case e, ok := <-events:
		if ok {
			t.Fatalf("unexpected event: %s %s", e.Type, e.ID)
		}
	case <-time.After(window):
	}
}

func waitForWatcherFlag(t *testing.T, s *Store, expected bool) {
	t.Helper()

	deadline := time.After(2 * time.Second)
	for {
		state, ok := s.State().(StoreState)
		if ok && state.WatcherActive == expected {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("timeout waiting for watcher state = %v", expected)
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestWatchDetectsExternalCreate(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := setupStore(t)
	events, err := s.Watch(ctx, "")
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	defer s.CloseWatch(context.Background())
	waitForWatcherFlag(t, s, true)

	// Another process drops a record into the root.
	path := filepath.Join(s.Root, "imported.json")
	if err := os.WriteFile(path, []byte(`{"id":"imported","content":"<p>hi</p>"}`), 0644); err != nil {
		t.Fatal(err)
	}

	e := waitForEvent(t, events, core.EventCreate, "imported")
	if e.Timestamp <= 0 {
		t.Errorf("timestamp = %d, want a unix time", e.Timestamp)
	}
}

func TestWatchSuppressesOwnWrites(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := setupStore(t)
	events, err := s.Watch(ctx, "")
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	defer s.CloseWatch(context.Background())
	waitForWatcherFlag(t, s, true)

	n := saveNote(t, s, "<p>written through the store</p>")
	expectNoEvent(t, events, 300*time.Millisecond)

	// The same file edited behind the store's back is not ours anymore.
	path := filepath.Join(s.Root, n.ID+".json")
	if err := os.WriteFile(path, []byte(`{"id":"`+n.ID+`","content":"edited"}`), 0644); err != nil {
		t.Fatal(err)
	}

	waitForEvent(t, events, core.EventModify, n.ID)
}

func TestWatchDeliversDeletes(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := setupStore(t)
	n := saveNote(t, s, "short lived")

	events, err := s.Watch(ctx, "")
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	defer s.CloseWatch(context.Background())
	waitForWatcherFlag(t, s, true)

	if err := os.Remove(filepath.Join(s.Root, n.ID+".json")); err != nil {
		t.Fatal(err)
	}

	waitForEvent(t, events, core.EventDelete, n.ID)
}

func TestWatchIgnoresTempAndForeignFiles(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := setupStore(t)
	events, err := s.Watch(ctx, "")
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	defer s.CloseWatch(context.Background())
	waitForWatcherFlag(t, s, true)

	if err := os.WriteFile(filepath.Join(s.Root, TempFilePrefix+"abc"), []byte("partial"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(s.Root, "notes.txt"), []byte("plain text"), 0644); err != nil {
		t.Fatal(err)
	}
	expectNoEvent(t, events, 300*time.Millisecond)

	// A real record after the noise proves the watcher is still alive.
	if err := os.WriteFile(filepath.Join(s.Root, "real.json"), []byte(`{"id":"real"}`), 0644); err != nil {
		t.Fatal(err)
	}
	waitForEvent(t, events, core.EventCreate, "real")
}

func TestWatchPatternFilter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := setupStore(t)
	events, err := s.Watch(ctx, "daily-*")
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	defer s.CloseWatch(context.Background())
	waitForWatcherFlag(t, s, true)

	// The non-matching record lands first; if its event leaked it would
	// arrive ahead of the matching one.
	if err := os.WriteFile(filepath.Join(s.Root, "scratch.json"), []byte(`{"id":"scratch"}`), 0644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(150 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(s.Root, "daily-0815.json"), []byte(`{"id":"daily-0815"}`), 0644); err != nil {
		t.Fatal(err)
	}

	waitForEvent(t, events, core.EventCreate, "daily-0815")
}

func TestWatchSingleActiveWatcher(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := setupStore(t)
	events, err := s.Watch(ctx, "")
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	waitForWatcherFlag(t, s, true)

	if _, err := s.Watch(ctx, ""); err == nil {
		t.Error("expected the second Watch to fail while one is active")
	}

	if err := s.CloseWatch(context.Background()); err != nil {
		t.Fatalf("CloseWatch failed: %v", err)
	}
	expectNoEvent(t, events, 2*time.Second) // channel must close

	// Once the previous watcher wound down the slot frees up again.
	waitForWatcherFlag(t, s, false)
	if _, err := s.Watch(ctx, ""); err != nil {
		t.Fatalf("Watch after CloseWatch failed: %v", err)
	}
	defer s.CloseWatch(context.Background())
}

func TestWatcherSupervisorRestarts(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := setupStore(t)

	// Each worker owns its delivery channel and closes it on exit, so the
	// factory hands every incarnation a fresh one.
	created := make(chan *watchWorker, 2)

	spec := supervisor.Spec{
		Name: "fs-watcher",
		Type: string(worker.TypeGoroutine),
		Factory: func() (worker.Worker, error) {
			w := newWatchWorker(s, "*", make(chan core.Event, 16))
			created <- w
			return w, nil
		},
		Backoff: supervisor.Backoff{
			InitialInterval: 10 * time.Millisecond,
			MaxInterval:     50 * time.Millisecond,
			Multiplier:      1,
			ResetDuration:   50 * time.Millisecond,
			MaxRestarts:     2,
			MaxDuration:     200 * time.Millisecond,
		},
		RestartPolicy: supervisor.RestartOnFailure,
	}

	sup := supervisor.New("test-watcher", supervisor.StrategyOneForOne, spec)
	if err := sup.Start(ctx); err != nil {
		t.Fatalf("failed to start supervisor: %v", err)
	}

	first := waitForWorker(t, created, "first")
	waitForWatcherFlag(t, s, true)

	waitForRunning(t, first)
	_ = first.watcher.Close()

	second := waitForWorker(t, created, "second")
	if first == second {
		t.Fatalf("expected supervisor to restart watcher with a new instance")
	}
	waitForWatcherFlag(t, s, true)

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer stopCancel()
	if err := sup.Stop(stopCtx); err != nil {
		t.Fatalf("failed to stop supervisor: %v", err)
	}
}

func waitForWorker(t *testing.T, ch <-chan *watchWorker, label string) *watchWorker {
	t.Helper()

	select {
	case w := <-ch:
		return w
	case <-time.After(2 * time.Second):
		t.Fatalf("timeout waiting for %s worker", label)
		return nil
	}
}

func waitForRunning(t *testing.T, w *watchWorker) {
	t.Helper()

	deadline := time.After(2 * time.Second)
	for {
		if w.State().Status == worker.StatusRunning {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("timeout waiting for worker to run")
		case <-time.After(10 * time.Millisecond):
		}
	}
}
