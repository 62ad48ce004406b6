// Package filesystem implements kvstorage.KVStore on top of a single
// database file. The file is loaded into memory when the store is opened
// and rewritten in full when it is closed.
package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog"

	"reis/internal/codec"
	"reis/internal/fsutil"
	"reis/internal/kvstorage"
)

// DefaultPath is the database file used when no path is configured.
const DefaultPath = "reis.db"

// Options configures Open.
type Options struct {
	// Logger receives load and flush diagnostics. Defaults to a no-op logger.
	Logger *zerolog.Logger
}

// Store implements kvstorage.KVStore. It holds an exclusive advisory lock
// on the database for its whole lifetime, so concurrent invocations run
// one after another instead of overwriting each other's changes.
type Store struct {
	path    string
	entries map[string]string
	lock    *fsutil.Lock
	closed  bool
	log     zerolog.Logger
}

// Open loads the database at path. A missing file is created empty.
func Open(path string, opts Options) (*Store, error) {
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}

	lock, err := fsutil.AcquireLock(lockPath(path))
	if err != nil {
		return nil, err
	}

	entries, err := load(path)
	if err != nil {
		lock.Release()
		return nil, err
	}

	log.Debug().Str("path", path).Int("entries", len(entries)).Msg("database loaded")
	return &Store{path: path, entries: entries, lock: lock, log: log}, nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) Get(key string) (string, bool) {
	v, ok := s.entries[key]
	return v, ok
}

func (s *Store) Insert(key, value string) {
	s.entries[key] = value
}

func (s *Store) Delete(key string) (string, bool) {
	v, ok := s.entries[key]
	if ok {
		delete(s.entries, key)
	}
	return v, ok
}

func (s *Store) Exists(key string) bool {
	_, ok := s.entries[key]
	return ok
}

func (s *Store) IsEmpty() bool {
	return len(s.entries) == 0
}

func (s *Store) Count() int {
	return len(s.entries)
}

func (s *Store) GetAll() (string, bool) {
	if len(s.entries) == 0 {
		return "", false
	}
	return string(codec.Encode(s.entries)), true
}

func (s *Store) Clear() {
	clear(s.entries)
}

// Flush overwrites the backing file with the current entries without
// releasing the store.
func (s *Store) Flush() error {
	if s.closed {
		return kvstorage.ErrClosed
	}
	if err := fsutil.AtomicWrite(s.path, codec.Encode(s.entries)); err != nil {
		return fmt.Errorf("writing database %s: %w", s.path, err)
	}
	s.log.Debug().Str("path", s.path).Int("entries", len(s.entries)).Msg("database flushed")
	return nil
}

// Close flushes the entries and releases the database lock. The lock is
// released even when the flush fails; the flush error is returned.
func (s *Store) Close() error {
	if s.closed {
		return kvstorage.ErrClosed
	}
	err := s.Flush()
	s.closed = true
	s.lock.Release()
	return err
}

// load reads and decodes the database, creating an empty file if none exists.
func load(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := os.WriteFile(path, nil, 0644); err != nil {
			return nil, fmt.Errorf("creating database %s: %w", path, err)
		}
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading database %s: %w", path, err)
	}

	entries, err := codec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decoding database %s: %w", path, err)
	}
	return entries, nil
}

func lockPath(path string) string {
	return path + ".lock"
}

// Compile-time check that Store implements kvstorage.KVStore.
var _ kvstorage.KVStore = (*Store)(nil)
