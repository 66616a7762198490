package stress

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aretw0/vellum"
	"github.com/aretw0/vellum/pkg/core"
)

// TestConcurrency_ExternalVsInternal simulates a "noisy neighbor"
// environment where the OS is modifying files while the store is also
// saving notes. We want to ensure:
// 1. No panic.
// 2. Every surviving file either decodes or is skipped as corrupt.
// 3. The watcher keeps draining under load.
func TestConcurrency_ExternalVsInternal(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping stress test in short mode")
	}

	dir := t.TempDir()
	storage, err := vellum.InitStore(context.Background(), dir)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var wg sync.WaitGroup

	// 1. External Actor (OS Writes)
	// Randomly writes raw JSON to "noise-N.json", valid or not.
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			default:
				name := fmt.Sprintf("noise-%d.json", rand.Intn(10))
				path := filepath.Join(dir, name)
				content := fmt.Sprintf(`{"id":"noise","content":"%d"`, time.Now().UnixNano())
				if rand.Intn(2) == 0 {
					content += "}" // sometimes valid, sometimes truncated
				}
				_ = os.WriteFile(path, []byte(content), 0o644)
				time.Sleep(time.Duration(rand.Intn(10)) * time.Millisecond)
			}
		}
	}()

	// 2. Internal Actor (Store Saves)
	// Reuses a small id space so the same record is overwritten often.
	notes := make([]*core.Note, 10)
	for i := range notes {
		notes[i] = core.New()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			default:
				n := notes[rand.Intn(len(notes))]
				n.UpdateContent(fmt.Sprintf("<p>Internal data %d</p>", time.Now().UnixNano()))
				// Errors are tolerated here; the point is surviving the
				// contention without a crash.
				_ = storage.Save(context.Background(), n)
				time.Sleep(time.Duration(rand.Intn(10)) * time.Millisecond)
			}
		}
	}()

	// 3. Watcher Actor
	// Just observes.
	watchable, ok := storage.(core.Watchable)
	require.True(t, ok)

	stream, err := watchable.Watch(ctx, "")
	require.NoError(t, err)

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-stream:
				if !ok {
					return
				}
			}
		}
	}()

	// Wait for chaos
	wg.Wait()

	// Post-chaos check: enumeration must skip garbage and never error.
	loaded, err := storage.LoadAll(context.Background())
	require.NoError(t, err)
	t.Logf("Survived chaos with %d readable notes", len(loaded))

	for _, n := range loaded {
		require.NotEmpty(t, n.ID)
	}
}
