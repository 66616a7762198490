// Package fs persists notes as one file per record under a root
// directory. The directory listing is the only index: enumeration,
// counting and watching all work off the filenames, and every record is
// independently decodable so one bad file never poisons the set.
package fs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/aretw0/vellum/pkg/core"
)

// DefaultFormat is the extension notes are written with unless the
// configuration says otherwise.
const DefaultFormat = ".json"

// Config holds the configuration for the filesystem store.
type Config struct {
	// Root is the notes directory.
	Root string
	// Format is the extension used for writes (".json" when empty).
	// Reads accept any registered codec's extension.
	Format string
	// MustExist refuses to create the root on Initialize.
	MustExist bool
	// Strict makes the codecs reject records with unknown fields.
	Strict bool
	// EventBuffer sizes the Watch channel. Zero means default (100).
	EventBuffer int
	// Logger receives skip/failure diagnostics. Nil falls back to
	// slog.Default().
	Logger *slog.Logger
	// ErrorHandler receives runtime watcher failures, which are
	// otherwise only logged.
	ErrorHandler func(error)
}

// Store implements core.Storage on the local filesystem.
type Store struct {
	Root string

	config Config
	logger *slog.Logger
	ledger *writeLedger

	mu            sync.RWMutex
	codecs        map[string]Codec
	watcher       *watchWorker
	watcherActive bool
}

// New creates a filesystem-backed note store. The root directory is not
// touched until Initialize.
func New(cfg Config) *Store {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	format := cfg.Format
	if format == "" {
		format = DefaultFormat
	}
	if !strings.HasPrefix(format, ".") {
		format = "." + format
	}
	cfg.Format = format

	return &Store{
		Root:   cfg.Root,
		config: cfg,
		logger: logger,
		ledger: newWriteLedger(),
		codecs: defaultCodecs(cfg.Strict),
	}
}

// RegisterCodec registers a codec for a file extension, replacing any
// default registered for it.
func (s *Store) RegisterCodec(ext string, c Codec) {
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codecs[ext] = c
}

// Initialize ensures the root directory exists, creating it unless the
// configuration demands it already does.
func (s *Store) Initialize(ctx context.Context) error {
	if s.config.MustExist {
		info, err := os.Stat(s.Root)
		if os.IsNotExist(err) {
			return fmt.Errorf("notes root does not exist: %s", s.Root)
		}
		if err != nil {
			return fmt.Errorf("failed to stat notes root: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("notes root is not a directory: %s", s.Root)
		}
		return nil
	}

	if err := os.MkdirAll(s.Root, 0755); err != nil {
		return fmt.Errorf("failed to create notes root: %w", err)
	}
	return nil
}

// Save persists a note to <root>/<id>.<format>, overwriting any prior
// version. The write is atomic, so a failure mid-operation never corrupts
// an existing record. Failures are logged and returned; they are the
// caller's to absorb or surface.
func (s *Store) Save(ctx context.Context, n *core.Note) error {
	if n == nil || n.ID == "" {
		return fmt.Errorf("note has no ID")
	}

	codec, err := s.codec(s.config.Format)
	if err != nil {
		return err
	}

	data, err := codec.Encode(n)
	if err != nil {
		err = fmt.Errorf("failed to encode note %s: %w", n.ID, err)
		s.logger.Error("save failed", "id", n.ID, "error", err)
		return err
	}

	filename := n.ID + s.config.Format
	if err := writeFileAtomic(filepath.Join(s.Root, filename), data, 0644); err != nil {
		err = fmt.Errorf("failed to write note %s: %w", n.ID, err)
		s.logger.Error("save failed", "id", n.ID, "error", err)
		return err
	}

	s.ledger.record(filename, data)
	s.logger.Debug("note saved", "id", n.ID, "file", filename)
	return nil
}

// Load retrieves a note by ID, probing the configured format first and
// then every other registered extension. It returns core.ErrNotFound when
// no backing file exists and core.ErrCorrupt (with the cause) when a file
// exists but cannot be decoded.
func (s *Store) Load(ctx context.Context, id string) (*core.Note, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: empty id", core.ErrNotFound)
	}

	for _, ext := range s.extensions() {
		filename := id + ext
		f, err := os.Open(filepath.Join(s.Root, filename))
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to open note %s: %w", id, err)
		}

		codec, cerr := s.codec(ext)
		if cerr != nil {
			f.Close()
			return nil, cerr
		}

		n, derr := codec.Decode(f)
		f.Close()
		if derr != nil {
			return nil, fmt.Errorf("%w: %s: %v", core.ErrCorrupt, filename, derr)
		}
		return n, nil
	}

	return nil, fmt.Errorf("%w: %s", core.ErrNotFound, id)
}

// LoadAll enumerates every record under the root, decoding each one
// independently. Records that fail to decode are skipped and logged; one
// bad file never aborts the load. Survivors come back sorted by
// ModifiedAt descending. When the same ID exists in several formats, the
// most recently modified copy wins.
func (s *Store) LoadAll(ctx context.Context) ([]*core.Note, error) {
	entries, err := os.ReadDir(s.Root)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read notes root: %w", err)
	}

	byID := make(map[string]*core.Note)
	var notes []*core.Note

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, TempFilePrefix) {
			continue
		}

		ext := filepath.Ext(name)
		codec, cerr := s.codec(ext)
		if cerr != nil {
			continue // not a note record
		}

		f, ferr := os.Open(filepath.Join(s.Root, name))
		if ferr != nil {
			s.logger.Warn("skipping unreadable note record", "file", name, "error", ferr)
			continue
		}
		n, derr := codec.Decode(f)
		f.Close()
		if derr != nil {
			s.logger.Warn("skipping corrupt note record", "file", name, "error", derr)
			continue
		}

		if prev, ok := byID[n.ID]; ok {
			if !n.ModifiedAt.After(prev.ModifiedAt) {
				continue
			}
			for i, existing := range notes {
				if existing.ID == n.ID {
					notes[i] = n
					break
				}
			}
			byID[n.ID] = n
			continue
		}

		byID[n.ID] = n
		notes = append(notes, n)
	}

	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].ModifiedAt.After(notes[j].ModifiedAt)
	})

	return notes, nil
}

// Delete removes a note's record. An unknown identifier reports
// (false, nil): absence is a normal outcome, not a failure.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, nil
	}

	removed := false
	for _, ext := range s.extensions() {
		filename := id + ext
		err := os.Remove(filepath.Join(s.Root, filename))
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			err = fmt.Errorf("failed to remove note %s: %w", id, err)
			s.logger.Error("delete failed", "id", id, "error", err)
			return removed, err
		}
		s.ledger.forget(filename)
		removed = true
	}

	if !removed {
		s.logger.Debug("delete of unknown note", "id", id)
	}
	return removed, nil
}

// Count reports the number of persisted records without decoding any of
// them: it is a pure directory scan over the registered extensions.
func (s *Store) Count(ctx context.Context) (int, error) {
	entries, err := os.ReadDir(s.Root)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read notes root: %w", err)
	}

	count := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, TempFilePrefix) {
			continue
		}
		if _, err := s.codec(filepath.Ext(name)); err == nil {
			count++
		}
	}
	return count, nil
}

func (s *Store) codec(ext string) (Codec, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.codecs[ext]
	if !ok {
		return nil, fmt.Errorf("no codec registered for %q", ext)
	}
	return c, nil
}

// extensions returns the registered extensions with the configured write
// format first, the rest in stable order.
func (s *Store) extensions() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	exts := make([]string, 0, len(s.codecs))
	for ext := range s.codecs {
		if ext != s.config.Format {
			exts = append(exts, ext)
		}
	}
	sort.Strings(exts)
	return append([]string{s.config.Format}, exts...)
}

var _ core.Storage = (*Store)(nil)
var _ core.Watchable = (*Store)(nil)

// IsNotFound reports whether err marks a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, core.ErrNotFound)
}

// IsCorrupt reports whether err marks an undecodable record.
func IsCorrupt(err error) bool {
	return errors.Is(err, core.ErrCorrupt)
}
