// Package store persists launcher settings and the game library in a single
// JSON document. Settings are addressed by gjson/sjson paths such as
// "panel.layout"; the library lives under "library".
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// LibraryPath is the document path holding the serialized Library.
const LibraryPath = "library"

// ErrCorrupt is returned by Open when the settings file is not valid JSON.
var ErrCorrupt = errors.New("settings file is not valid JSON")

// Store is an in-memory settings document backed by a file. It is not safe
// for concurrent use; the panel drives it from the frame loop.
type Store struct {
	path  string
	doc   []byte
	dirty bool
	log   *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for save diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// Open loads the settings document at path. A missing file yields an empty
// document; it is created on the first Save.
func Open(path string, opts ...Option) (*Store, error) {
	s := &Store{path: path, doc: []byte("{}"), log: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		s.log.Debug("settings file missing, starting empty", "path", path)
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("open settings: %w", err)
	}
	if len(data) > 0 {
		if !gjson.ValidBytes(data) {
			return nil, fmt.Errorf("open settings %s: %w", path, ErrCorrupt)
		}
		s.doc = data
	}
	return s, nil
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Dirty reports whether there are unsaved changes.
func (s *Store) Dirty() bool { return s.dirty }

// Get returns the raw value at path.
func (s *Store) Get(path string) gjson.Result {
	return gjson.GetBytes(s.doc, path)
}

// String returns the string at path, or def if it is absent.
func (s *Store) String(path, def string) string {
	if r := s.Get(path); r.Exists() {
		return r.String()
	}
	return def
}

// Bool returns the boolean at path, or def if it is absent.
func (s *Store) Bool(path string, def bool) bool {
	if r := s.Get(path); r.Exists() {
		return r.Bool()
	}
	return def
}

// Float returns the number at path, or def if it is absent.
func (s *Store) Float(path string, def float64) float64 {
	if r := s.Get(path); r.Exists() {
		return r.Float()
	}
	return def
}

// Set stores value at path, creating intermediate objects.
func (s *Store) Set(path string, value any) error {
	doc, err := sjson.SetBytes(s.doc, path, value)
	if err != nil {
		return fmt.Errorf("set %s: %w", path, err)
	}
	s.doc = doc
	s.dirty = true
	return nil
}

// Delete removes the value at path. Deleting a missing path is not an error.
func (s *Store) Delete(path string) error {
	doc, err := sjson.DeleteBytes(s.doc, path)
	if err != nil {
		return fmt.Errorf("delete %s: %w", path, err)
	}
	s.doc = doc
	s.dirty = true
	return nil
}

// Library decodes the stored library, or returns an empty one.
func (s *Store) Library() (*Library, error) {
	raw := s.Get(LibraryPath)
	if !raw.Exists() {
		return NewLibrary(), nil
	}
	lib := NewLibrary()
	if err := json.Unmarshal([]byte(raw.Raw), lib); err != nil {
		return nil, fmt.Errorf("decode library: %w", err)
	}
	return lib, nil
}

// SetLibrary replaces the stored library.
func (s *Store) SetLibrary(lib *Library) error {
	b, err := json.Marshal(lib)
	if err != nil {
		return fmt.Errorf("encode library: %w", err)
	}
	doc, err := sjson.SetRawBytes(s.doc, LibraryPath, b)
	if err != nil {
		return fmt.Errorf("set library: %w", err)
	}
	s.doc = doc
	s.dirty = true
	return nil
}

// Save writes the document to disk if it changed. The file is replaced
// atomically so a crash never leaves half a settings file behind.
func (s *Store) Save() error {
	if !s.dirty {
		return nil
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".settings-*.json")
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(pretty.Pretty(s.doc)); err != nil {
		tmp.Close()
		return fmt.Errorf("save settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	s.dirty = false
	s.log.Debug("settings saved", "path", s.path, "bytes", len(s.doc))
	return nil
}
