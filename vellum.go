package vellum

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/vellum/internal/platform"
	"github.com/aretw0/vellum/pkg/core"
	"github.com/aretw0/vellum/pkg/session"
)

// --- Types ---

// Note is a public alias for the domain entity.
type Note = core.Note

// Session is a public alias for the engine orchestrator.
type Session = session.Session

// Surface is a public alias for the rendering collaborator contract.
type Surface = session.Surface

// Storage is a public alias for the persistence port.
type Storage = core.Storage

// --- Configuration ---

// Option defines a functional option for configuring the engine.
type Option = platform.Option

// WithFormat selects the serialization format for newly written records
// ("json", "yaml", "toml"). Defaults to "json".
func WithFormat(format string) Option {
	return platform.WithFormat(format)
}

// WithDelay sets the auto-save debounce window. Defaults to one second.
func WithDelay(d time.Duration) Option {
	return platform.WithDelay(d)
}

// WithLogger sets the logger shared by all wired components.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithStore injects a custom storage adapter.
func WithStore(store core.Storage) Option {
	return platform.WithStore(store)
}

// WithSurface binds the rendering collaborator up front.
func WithSurface(surface session.Surface) Option {
	return platform.WithSurface(surface)
}

// WithCodec registers a custom codec for a specific extension.
func WithCodec(ext string, c any) Option {
	return platform.WithCodec(ext, c)
}

// WithMustExist requires the notes root to already exist.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithForceTemp forces the notes root into a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithStrict makes the default codecs reject records with unknown fields.
func WithStrict(strict bool) Option {
	return platform.WithStrict(strict)
}

// WithEventBuffer sets the watch channel capacity. Zero means default (100).
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithWatcherErrorHandler registers a callback for errors occurring during the Watch loop.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// WithDevSafety controls the sandbox used during `go run` / `go test` executions.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// --- Factory ---

// Open wires storage, index and auto-save scheduler into a started
// Session rooted at path. The root is created on first use unless
// WithMustExist is set; an empty root gets the welcome note.
func Open(path string, opts ...Option) (*session.Session, error) {
	return platform.Open(context.Background(), path, opts...)
}

// OpenContext is Open with a caller-supplied context governing the
// initial load.
func OpenContext(ctx context.Context, path string, opts ...Option) (*session.Session, error) {
	return platform.Open(ctx, path, opts...)
}

// InitStore builds and initializes the storage adapter without starting
// a session. Useful for vault setup, one-shot commands and change
// watching.
func InitStore(ctx context.Context, path string, opts ...Option) (core.Storage, error) {
	return platform.InitStore(ctx, path, opts...)
}

// --- Domain helpers ---

// NewNote creates a blank note with a fresh identifier and derived
// defaults.
func NewNote() *core.Note {
	return core.New()
}

// DeriveTitle computes the display title for a content payload.
func DeriveTitle(content string) string {
	return core.DeriveTitle(content)
}

// --- Safety & Utils ---

// ResolveRootPath determines the actual notes root based on safety rules.
func ResolveRootPath(userPath string, forceTemp bool) string {
	return platform.ResolveRootPath(userPath, forceTemp)
}

// IsDevRun checks if the current process is running via `go run` or `go test`.
func IsDevRun() bool {
	return platform.IsDevRun()
}

// FindNotesRoot recursively looks upwards for a notes root indicator
// (a .vellum directory or a vellum.yaml file).
func FindNotesRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}
