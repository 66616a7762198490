package lifecycle

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/vellum/pkg/core"
)

func TestSourceBridgesEvents(t *testing.T) {
	in := make(chan core.Event, 2)
	src := NewSource(in)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, src.Start(ctx))

	in <- core.Event{Type: core.EventCreate, ID: "a", Timestamp: 42}

	select {
	case e := <-src.Events():
		note, ok := e.(core.Event)
		require.True(t, ok, "bridged event should keep its concrete type")
		assert.Equal(t, core.EventCreate, note.Type)
		assert.Equal(t, "a", note.ID)
		assert.Equal(t, "CREATE a", e.String())
	case <-time.After(2 * time.Second):
		t.Fatal("no event bridged")
	}
}

func TestSourceClosesWithInput(t *testing.T) {
	in := make(chan core.Event)
	src := NewSource(in)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, src.Start(ctx))

	close(in)

	select {
	case _, ok := <-src.Events():
		assert.False(t, ok, "output should close when the input closes")
	case <-time.After(2 * time.Second):
		t.Fatal("output channel did not close")
	}
}

func TestSourceStopsOnContextCancel(t *testing.T) {
	in := make(chan core.Event)
	src := NewSource(in)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, src.Start(ctx))

	cancel()

	select {
	case _, ok := <-src.Events():
		assert.False(t, ok, "output should close when the context ends")
	case <-time.After(2 * time.Second):
		t.Fatal("output channel did not close")
	}
}
