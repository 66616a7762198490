package fs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/vellum/pkg/core"
)

// schemaVersion is the current persisted record shape. Records written
// before versioning existed decode as version 1.
const schemaVersion = 1

// Codec defines how a note record is encoded for a specific file
// extension.
type Codec interface {
	// Decode reads a persisted record from r.
	Decode(r io.Reader) (*core.Note, error)
	// Encode converts the note to its persisted bytes.
	Encode(n *core.Note) ([]byte, error)
}

// defaultCodecs returns the standard set of codecs.
func defaultCodecs(strict bool) map[string]Codec {
	return map[string]Codec{
		".json": NewJSONCodec(strict),
		".yaml": NewYAMLCodec(strict),
		".yml":  NewYAMLCodec(strict),
		".toml": NewTOMLCodec(strict),
	}
}

// record is the persisted shape of a note. Field names are the wire
// contract; timestamps ride as ISO-8601 strings so decoding can stay
// lenient about records written without a zone.
type record struct {
	ID         string `json:"id" yaml:"id" toml:"id"`
	Title      string `json:"title" yaml:"title" toml:"title"`
	Content    string `json:"content" yaml:"content" toml:"content"`
	CreatedAt  string `json:"created_at" yaml:"created_at" toml:"created_at"`
	ModifiedAt string `json:"modified_at" yaml:"modified_at" toml:"modified_at"`
	IsFavorite bool   `json:"is_favorite" yaml:"is_favorite" toml:"is_favorite"`
	Version    int    `json:"version" yaml:"version" toml:"version"`
}

func newRecord(n *core.Note) record {
	return record{
		ID:         n.ID,
		Title:      n.Title,
		Content:    n.Content,
		CreatedAt:  n.CreatedAt.Format(time.RFC3339Nano),
		ModifiedAt: n.ModifiedAt.Format(time.RFC3339Nano),
		IsFavorite: n.IsFavorite,
		Version:    schemaVersion,
	}
}

// note rebuilds the entity, applying the graceful-degradation defaults
// for missing fields. Records from a future schema are rejected rather
// than misread.
func (rec record) note() (*core.Note, error) {
	if rec.Version > schemaVersion {
		return nil, fmt.Errorf("record version %d is newer than supported version %d", rec.Version, schemaVersion)
	}
	return core.Restore(
		rec.ID,
		rec.Title,
		rec.Content,
		parseTimestamp(rec.CreatedAt),
		parseTimestamp(rec.ModifiedAt),
		rec.IsFavorite,
	), nil
}

// timestampLayouts are tried in order: RFC 3339 (what this engine
// writes), then the zone-less ISO form older records carry. Anything
// unparseable degrades to the zero time, which Restore defaults to now.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
}

func parseTimestamp(s string) time.Time {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// --- JSON Codec ---

// JSONCodec handles reading and writing JSON records. It is the default
// format.
type JSONCodec struct {
	// Strict rejects records carrying unknown fields instead of
	// ignoring them.
	Strict bool
}

// NewJSONCodec creates a new JSON codec.
func NewJSONCodec(strict bool) *JSONCodec {
	return &JSONCodec{Strict: strict}
}

func (c *JSONCodec) Decode(r io.Reader) (*core.Note, error) {
	var rec record
	decoder := json.NewDecoder(r)
	if c.Strict {
		decoder.DisallowUnknownFields()
	}
	if err := decoder.Decode(&rec); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	return rec.note()
}

func (c *JSONCodec) Encode(n *core.Note) ([]byte, error) {
	return json.MarshalIndent(newRecord(n), "", "  ")
}

// --- YAML Codec ---

type YAMLCodec struct {
	// Strict rejects records carrying unknown fields.
	Strict bool
}

// NewYAMLCodec creates a new YAML codec.
func NewYAMLCodec(strict bool) *YAMLCodec {
	return &YAMLCodec{Strict: strict}
}

func (c *YAMLCodec) Decode(r io.Reader) (*core.Note, error) {
	var rec record
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(c.Strict)
	if err := decoder.Decode(&rec); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	return rec.note()
}

func (c *YAMLCodec) Encode(n *core.Note) ([]byte, error) {
	return yaml.Marshal(newRecord(n))
}

// --- TOML Codec ---

type TOMLCodec struct {
	// Strict rejects records carrying unknown fields.
	Strict bool
}

// NewTOMLCodec creates a new TOML codec.
func NewTOMLCodec(strict bool) *TOMLCodec {
	return &TOMLCodec{Strict: strict}
}

func (c *TOMLCodec) Decode(r io.Reader) (*core.Note, error) {
	var rec record
	decoder := toml.NewDecoder(r)
	if c.Strict {
		decoder = decoder.DisallowUnknownFields()
	}
	if err := decoder.Decode(&rec); err != nil {
		return nil, fmt.Errorf("invalid toml: %w", err)
	}
	return rec.note()
}

func (c *TOMLCodec) Encode(n *core.Note) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(newRecord(n)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
