package platform

import (
	"context"
	"time"

	"github.com/aretw0/vellum/pkg/session"
)

// Open wires storage, index and auto-save scheduler into a started
// Session rooted at the given directory. The root is created on first
// use unless WithMustExist is set.
func Open(ctx context.Context, root string, opts ...Option) (*session.Session, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	store, err := buildStore(root, o)
	if err != nil {
		return nil, err
	}

	var sessOpts []session.Option
	if o.logger != nil {
		sessOpts = append(sessOpts, session.WithLogger(o.logger))
	}
	if delay, ok := o.config["delay"].(time.Duration); ok {
		sessOpts = append(sessOpts, session.WithDelay(delay))
	}
	if o.surface != nil {
		sessOpts = append(sessOpts, session.WithSurface(o.surface))
	}

	sess := session.New(store, sessOpts...)
	if err := sess.Start(ctx); err != nil {
		return nil, err
	}
	return sess, nil
}
