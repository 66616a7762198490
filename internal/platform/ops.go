package platform

import (
	"context"
	"fmt"

	"github.com/aretw0/vellum/pkg/adapters/fs"
	"github.com/aretw0/vellum/pkg/core"
)

// InitStore builds and initializes the storage adapter for the given root.
// It is the lower half of Open, usable on its own when no session is
// wanted (vault initialization, change watching, one-shot commands).
func InitStore(ctx context.Context, root string, opts ...Option) (core.Storage, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	store, err := buildStore(root, o)
	if err != nil {
		return nil, err
	}
	if err := store.Initialize(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

// buildStore wires the filesystem adapter, applying the dev sandbox and
// any custom codecs. An injected store short-circuits all of it.
func buildStore(root string, o *options) (core.Storage, error) {
	if o.store != nil {
		return o.store, nil
	}

	format, _ := o.config["format"].(string)
	mustExist, _ := o.config["must_exist"].(bool)
	strict, _ := o.config["strict"].(bool)
	forceTemp, _ := o.config["temp_dir"].(bool)
	eventBuffer, _ := o.config["event_buffer"].(int)
	errorHandler, _ := o.config["watcher_error_handler"].(func(error))

	// Default to true (safe) if not present.
	devSafety := true
	if val, ok := o.config["dev_safety"].(bool); ok {
		devSafety = val
	}

	useTemp := forceTemp || (IsDevRun() && devSafety)
	resolved := ResolveRootPath(root, useTemp)

	if IsDevRun() && o.logger != nil {
		if devSafety {
			o.logger.Debug("running in SAFE mode (dev sandbox enabled)", "path", resolved)
		} else {
			o.logger.Warn("running in UNSAFE mode (bypassing dev sandbox)", "path", resolved)
		}
	}
	if useTemp && resolved != root && o.logger != nil {
		o.logger.Warn("notes root redirected (Dev/Test)", "original_path", root, "resolved_path", resolved)
	}

	store := fs.New(fs.Config{
		Root:         resolved,
		Format:       format,
		MustExist:    mustExist,
		Strict:       strict,
		EventBuffer:  eventBuffer,
		Logger:       o.logger,
		ErrorHandler: errorHandler,
	})

	for ext, c := range o.codecs {
		codec, ok := c.(fs.Codec)
		if !ok {
			return nil, fmt.Errorf("codec for %s must implement fs.Codec", ext)
		}
		store.RegisterCodec(ext, codec)
	}

	return store, nil
}
