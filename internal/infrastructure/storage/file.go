// Package storage implements the durable local settings store: a single
// JSON document on disk holding the token, theme, and sidebar layout.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

const settingsFile = "settings.json"

// FileStore mirrors a key/value map to one JSON file. Every write replaces
// the whole file atomically (temp file + rename), so readers never observe
// a torn document. A missing or corrupt file reads as empty; corruption is
// never surfaced to callers.
type FileStore struct {
	path string
	log  zerolog.Logger

	mu     sync.Mutex
	values map[string]string
}

func NewFileStore(dir string, log zerolog.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	s := &FileStore{
		path:   filepath.Join(dir, settingsFile),
		log:    log,
		values: make(map[string]string),
	}
	s.load()
	return s, nil
}

func (s *FileStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return s.flush()
}

func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[key]; !ok {
		return nil
	}
	delete(s.values, key)
	return s.flush()
}

// load reads the settings file. Unreadable or undecodable state is
// replaced with an empty map and logged; the next write rewrites the file.
func (s *FileStore) load() {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn().Err(err).Str("path", s.path).Msg("settings unreadable, starting empty")
		}
		return
	}

	values := make(map[string]string)
	if err := json.Unmarshal(b, &values); err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("settings corrupt, starting empty")
		return
	}
	s.values = values
}

func (s *FileStore) flush() error {
	b, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace settings: %w", err)
	}
	return nil
}
