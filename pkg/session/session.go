// Package session orchestrates the persistence core the way an editor
// shell drives it: it owns the working set lifecycle around storage,
// index and auto-save scheduler, tracks the current note, and decides
// when pending edits get flushed.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/vellum/pkg/autosave"
	"github.com/aretw0/vellum/pkg/core"
	"github.com/aretw0/vellum/pkg/index"
)

// Surface is the rendering collaborator: whatever presents the current
// note's content and accepts a replacement when the selection changes.
// Implementations are expected to emit ContentChanged on edits.
type Surface interface {
	Content() string
	SetContent(content string)
}

// Session coordinates storage, index and scheduler around a single
// current note. It is safe for concurrent use, though it models one
// logical editor.
type Session struct {
	store     core.Storage
	index     *index.Index
	scheduler *autosave.Scheduler
	logger    *slog.Logger
	delay     time.Duration

	mu      sync.Mutex
	surface Surface
	current *core.Note
	dirty   bool
	started bool
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDelay sets the auto-save debounce window.
func WithDelay(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.delay = d
		}
	}
}

// WithSurface binds a rendering collaborator at construction time.
func WithSurface(surface Surface) Option {
	return func(s *Session) {
		s.surface = surface
	}
}

// New wires a Session around the given storage.
func New(store core.Storage, opts ...Option) *Session {
	s := &Session{
		store:  store,
		index:  index.New(),
		logger: slog.Default(),
		delay:  autosave.DefaultDelay,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.scheduler = autosave.New(s.commit,
		autosave.WithDelay(s.delay),
		autosave.WithLogger(s.logger),
	)
	return s
}

// Start initializes storage, loads the working set into the index and
// selects the most recent note. An empty store is seeded with the welcome
// note so a first run never faces a blank list.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return fmt.Errorf("session already started")
	}
	s.started = true
	s.mu.Unlock()

	if err := s.store.Initialize(ctx); err != nil {
		return fmt.Errorf("initialize storage: %w", err)
	}

	notes, err := s.store.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load working set: %w", err)
	}
	s.index.Load(notes)

	if s.index.Len() == 0 {
		welcome, err := s.seedWelcome(ctx)
		if err != nil {
			return err
		}
		s.index.InsertNew(welcome)
		s.logger.Info("seeded welcome note", "id", welcome.ID)
	}

	if first, ok := s.index.First(); ok {
		s.selectLoaded(first)
	}

	s.logger.Info("session started", "notes", s.index.Len())
	return nil
}

// ContentChanged marks the surface content as diverged from the persisted
// form and restarts the auto-save countdown. The content itself is read
// later, at fire time, so rapid edits never save stale snapshots.
func (s *Session) ContentChanged() {
	s.mu.Lock()
	hasCurrent := s.current != nil
	if hasCurrent {
		s.dirty = true
	}
	s.mu.Unlock()

	if hasCurrent {
		s.scheduler.Trigger()
	}
}

// SaveNow flushes the current note synchronously, bypassing the debounce
// window and cancelling any pending fire.
func (s *Session) SaveNow() error {
	return s.scheduler.SaveNow()
}

// Select flushes pending edits of the current note, switches the active
// selection and pushes the newly selected content to the surface.
// Selecting the current note again is a no-op.
func (s *Session) Select(id string) error {
	s.mu.Lock()
	cur := s.current
	s.mu.Unlock()

	if cur != nil && cur.ID == id {
		return nil
	}
	if cur != nil {
		if err := s.scheduler.SaveNow(); err != nil {
			return fmt.Errorf("flush before switch: %w", err)
		}
	}

	n, ok := s.index.Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", core.ErrNotFound, id)
	}
	s.index.Select(id)
	s.selectLoaded(n)
	return nil
}

// Create flushes the current note, then persists a fresh empty one,
// prepends it to the index and selects it.
func (s *Session) Create(ctx context.Context) (*core.Note, error) {
	s.mu.Lock()
	cur := s.current
	s.mu.Unlock()

	if cur != nil {
		if err := s.scheduler.SaveNow(); err != nil {
			return nil, fmt.Errorf("flush before create: %w", err)
		}
	}

	n := core.New()
	if err := s.store.Save(ctx, n); err != nil {
		return nil, err
	}
	s.index.InsertNew(n)
	s.index.Select(n.ID)
	s.selectLoaded(n)

	s.logger.Info("note created", "id", n.ID)
	return n, nil
}

// Delete removes a note from storage and the index. Deleting the current
// note reselects the most recent remaining one; an unknown id is not an
// error.
func (s *Session) Delete(ctx context.Context, id string) error {
	removed, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		s.logger.Debug("delete skipped, note unknown to storage", "id", id)
	}
	s.index.Remove(id)

	s.mu.Lock()
	wasCurrent := s.current != nil && s.current.ID == id
	if wasCurrent {
		s.current = nil
		s.dirty = false
	}
	surface := s.surface
	s.mu.Unlock()

	if !wasCurrent {
		return nil
	}

	if next, ok := s.index.First(); ok {
		s.index.Select(next.ID)
		s.selectLoaded(next)
	} else if surface != nil {
		surface.SetContent("")
	}
	return nil
}

// UpdateContent rewrites a note's content and persists it immediately.
// It is the headless counterpart of surface editing and accepts any note
// in the working set, not only the current one. An attached surface is
// kept in sync when the current note is the one rewritten.
func (s *Session) UpdateContent(ctx context.Context, id, content string) (*core.Note, error) {
	n, ok := s.index.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrNotFound, id)
	}

	n.UpdateContent(content)
	if err := s.store.Save(ctx, n); err != nil {
		return nil, err
	}
	s.index.Replace(n)

	s.mu.Lock()
	isCurrent := s.current != nil && s.current.ID == id
	if isCurrent {
		s.dirty = false
	}
	surface := s.surface
	s.mu.Unlock()

	if isCurrent && surface != nil {
		surface.SetContent(content)
	}
	return n, nil
}

// ToggleFavorite flips the flag and persists immediately. Metadata
// changes skip the debounce; they are rare and cheap.
func (s *Session) ToggleFavorite(ctx context.Context, id string) (*core.Note, error) {
	n, ok := s.index.Get(id)
	if !ok {
		loaded, err := s.store.Load(ctx, id)
		if err != nil {
			return nil, err
		}
		n = loaded
	}

	n.SetFavorite(!n.IsFavorite)
	if err := s.store.Save(ctx, n); err != nil {
		return nil, err
	}
	s.index.Replace(n)
	return n, nil
}

// Search projects the working set without mutating it; an empty query
// returns every note in index order.
func (s *Session) Search(query string) []*core.Note {
	return s.index.Search(query)
}

// Notes returns the ordered working set.
func (s *Session) Notes() []*core.Note {
	return s.index.All()
}

// Current returns the note the session considers active.
func (s *Session) Current() (*core.Note, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil, false
	}
	return s.current, true
}

// Count reports the number of persisted records straight from storage.
func (s *Session) Count(ctx context.Context) (int, error) {
	return s.store.Count(ctx)
}

// AttachSurface binds the rendering collaborator and pushes the current
// content to it. A nil surface detaches (headless operation).
func (s *Session) AttachSurface(surface Surface) {
	s.mu.Lock()
	s.surface = surface
	n := s.current
	s.mu.Unlock()

	if surface != nil && n != nil {
		surface.SetContent(n.Content)
	}
}

// Scheduler exposes the auto-save scheduler for rate control
// (Enable/Disable/SetDelay).
func (s *Session) Scheduler() *autosave.Scheduler {
	return s.scheduler
}

// Store exposes the underlying storage, e.g. for change watching.
func (s *Session) Store() core.Storage {
	return s.store
}

// Close flushes unsaved edits and releases the scheduler. The scheduler
// never flushes on its own; the session is the owner that does. Close is
// idempotent.
func (s *Session) Close(ctx context.Context) error {
	err := s.scheduler.SaveNow()
	if errors.Is(err, autosave.ErrClosed) {
		err = nil
	}
	s.scheduler.Close()
	if err != nil {
		return fmt.Errorf("flush on close: %w", err)
	}
	return nil
}

// commit is the scheduler's save callback. It reads the surface content
// at fire time, folds it into the current note when it actually changed,
// and persists the result. The scheduler serializes invocations, and
// every selection switch flushes through it first, so the current note
// cannot change under a running commit. The surface is called outside
// the session lock; surfaces may emit notifications synchronously.
func (s *Session) commit() error {
	s.mu.Lock()
	n := s.current
	surface := s.surface
	s.mu.Unlock()

	if n == nil {
		return nil
	}
	if surface != nil {
		if html := surface.Content(); html != n.Content {
			n.UpdateContent(html)
		}
	}

	s.mu.Lock()
	s.dirty = false
	s.mu.Unlock()

	if err := s.store.Save(context.Background(), n); err != nil {
		return err
	}
	s.index.Replace(n)
	s.logger.Debug("note saved", "id", n.ID, "title", n.Title)
	return nil
}

// selectLoaded makes n current and mirrors its content to the surface.
func (s *Session) selectLoaded(n *core.Note) {
	s.mu.Lock()
	s.current = n
	s.dirty = false
	surface := s.surface
	s.mu.Unlock()

	if surface != nil {
		surface.SetContent(n.Content)
	}
}
