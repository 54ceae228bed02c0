package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Storage persists the single Session record. The relay only ever
// holds one session, so implementations have overwrite semantics.
type Storage interface {
	Load() (Session, error)
	Save(Session) error
}

// FileStorage keeps the record in one JSON file, replaced atomically
// on save so a crash mid-write cannot leave a partial record.
type FileStorage struct {
	path string
}

// NewFileStorage returns a FileStorage writing to path.
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// Load reads the persisted record. A missing file is the empty state,
// which is written out immediately so a subsequent process observes
// it.
func (f *FileStorage) Load() (Session, error) {
	var s Session
	b, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return s, f.Save(s)
	}
	if err != nil {
		return s, fmt.Errorf("session file read: %w", err)
	}
	if err := json.Unmarshal(b, &s); err != nil {
		return s, fmt.Errorf("session file decode: %w", err)
	}
	return s, nil
}

// Save serializes the full session and replaces the record via a
// temporary file and rename.
func (f *FileStorage) Save(s Session) error {
	b, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("session encode: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".session-*")
	if err != nil {
		return fmt.Errorf("session temp file: %w", err)
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("session file write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("session file close: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("session file replace: %w", err)
	}
	return nil
}
