package platform

import (
	"log/slog"
	"time"

	"github.com/aretw0/vellum/pkg/core"
	"github.com/aretw0/vellum/pkg/session"
)

// options holds the internal configuration for the engine factory.
type options struct {
	store   core.Storage
	surface session.Surface
	logger  *slog.Logger
	config  map[string]interface{}
	codecs  map[string]any
}

// Option defines a functional option for configuring the engine.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		config: make(map[string]interface{}),
		codecs: make(map[string]any),
	}
}

// WithFormat selects the serialization format for newly written records
// ("json", "yaml", "toml"). Defaults to "json". Reading probes every
// registered format regardless.
func WithFormat(format string) Option {
	return func(o *options) {
		o.config["format"] = format
	}
}

// WithDelay sets the auto-save debounce window. Defaults to one second.
func WithDelay(d time.Duration) Option {
	return func(o *options) {
		o.config["delay"] = d
	}
}

// WithLogger sets the logger shared by all wired components.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithStore injects a custom storage adapter (e.g. a mock or a remote
// backend). If provided, the default filesystem adapter is skipped and
// path resolution does not apply.
func WithStore(store core.Storage) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithSurface binds the rendering collaborator up front, so the first
// selection already lands in it.
func WithSurface(surface session.Surface) Option {
	return func(o *options) {
		o.surface = surface
	}
}

// WithCodec registers a custom codec for a specific extension.
// The codec 'c' must implement the adapter's Codec interface (e.g. fs.Codec).
// Using 'any' keeps the public API clean, but validation happens at wiring time.
func WithCodec(ext string, c any) Option {
	return func(o *options) {
		o.codecs[ext] = c
	}
}

// WithMustExist requires the notes root to already exist instead of
// creating it on first use.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.config["must_exist"] = must
	}
}

// WithForceTemp forces the notes root into a temporary directory (useful
// for experiments and throwaway runs).
func WithForceTemp(force bool) Option {
	return func(o *options) {
		o.config["temp_dir"] = force
	}
}

// WithStrict makes the default codecs reject records carrying unknown
// fields instead of silently dropping them.
func WithStrict(strict bool) Option {
	return func(o *options) {
		o.config["strict"] = strict
	}
}

// WithEventBuffer sets the watch channel capacity. Zero means default (100).
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.config["event_buffer"] = size
	}
}

// WithWatcherErrorHandler registers a callback to handle errors occurring during the Watch loop.
// This allows applications to log or react to runtime watcher failures (e.g. permission denied)
// which are otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.config["watcher_error_handler"] = fn
	}
}

// WithDevSafety controls the "Sandbox" safety mechanism when running via `go run`.
// By default (true), the engine forces a temporary directory to prevent accidental
// writes into a developer's workspace. Setting this to false allows operating on
// the real filesystem even during `go run`.
//
// CAUTION: Only disable this if you are sure your code is safe.
func WithDevSafety(enabled bool) Option {
	return func(o *options) {
		o.config["dev_safety"] = enabled
	}
}
