// Package yamlstore implements config.Store backed by a flat YAML file.
//
// The file format is flat key-value pairs where dotted keys (e.g.
// "database.path") are literal strings, not nested paths.
// yaml.Marshal on map[string]string produces alphabetical key ordering,
// making the output deterministic and diff-friendly.
package yamlstore

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"reis/internal/config"
	"reis/internal/fsutil"
)

// YAMLStore implements config.Store using a YAML file on disk.
type YAMLStore struct {
	path string
	data map[string]string
	// memory holds SetInMemory values; they shadow data and are never persisted.
	memory map[string]string
}

// New creates a YAMLStore that reads from and writes to path.
// If the file exists it is loaded; if it does not exist the store
// starts empty and the file is created on the first Set call.
func New(path string) (*YAMLStore, error) {
	s := &YAMLStore{
		path:   path,
		data:   make(map[string]string),
		memory: make(map[string]string),
	}
	if err := s.readFromDisk(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the config file location.
func (s *YAMLStore) Path() string {
	return s.path
}

// Get returns the value for key and whether it was found.
func (s *YAMLStore) Get(key string) (string, bool) {
	if v, ok := s.data[key]; ok {
		return v, true
	}
	v, ok := s.memory[key]
	return v, ok
}

// Set writes key=value and persists to disk.
func (s *YAMLStore) Set(key, value string) error {
	return s.withLock(func() {
		s.data[key] = value
	})
}

// SetInMemory records key=value for this process only.
func (s *YAMLStore) SetInMemory(key, value string) {
	s.memory[key] = value
}

// Unset removes key and persists to disk.
func (s *YAMLStore) Unset(key string) error {
	delete(s.memory, key)
	return s.withLock(func() {
		delete(s.data, key)
	})
}

// All returns a copy of all key-value pairs, persisted values winning over
// in-memory ones.
func (s *YAMLStore) All() map[string]string {
	out := make(map[string]string, len(s.data)+len(s.memory))
	for k, v := range s.memory {
		out[k] = v
	}
	for k, v := range s.data {
		out[k] = v
	}
	return out
}

// lockPath returns the path to the lock file used for flock-based coordination.
func (s *YAMLStore) lockPath() string {
	return s.path + ".lock"
}

// withLock acquires an exclusive file lock, re-reads the config from disk
// (picking up writes from other processes), calls fn to mutate s.data,
// then atomically writes s.data back to disk.
func (s *YAMLStore) withLock(fn func()) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	lock, err := fsutil.AcquireLock(s.lockPath())
	if err != nil {
		return fmt.Errorf("locking config: %w", err)
	}
	defer lock.Release()

	if err := s.readFromDisk(); err != nil {
		return err
	}

	fn()

	raw, err := yaml.Marshal(s.data)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return fsutil.AtomicWrite(s.path, raw)
}

// readFromDisk reloads s.data from the config file on disk.
func (s *YAMLStore) readFromDisk() error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.data = make(map[string]string)
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	fresh := make(map[string]string)
	if len(raw) > 0 {
		if err := yaml.Unmarshal(raw, &fresh); err != nil {
			return fmt.Errorf("parsing config file: %w", err)
		}
		if fresh == nil {
			fresh = make(map[string]string)
		}
	}
	s.data = fresh
	return nil
}

// Compile-time check that YAMLStore implements config.Store.
var _ config.Store = (*YAMLStore)(nil)
