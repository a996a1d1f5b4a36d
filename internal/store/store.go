package store

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/roach88/littlebeepers/internal/pet"
)

// Backend reads and writes the raw collection document.
//
// Load returns nil data when nothing has been saved yet.
type Backend interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	Close() error
}

// Store provides whole-collection access to pet records.
type Store struct {
	mu      sync.Mutex
	backend Backend
	logger  *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for store diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New wraps a backend.
func New(b Backend, opts ...Option) *Store {
	s := &Store{
		backend: b,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open creates a Store for path, choosing the backend by extension.
//
// Paths ending in .db or .sqlite (and the special ":memory:") use SQLite;
// everything else is a JSON file. The file itself is not created until the
// first save.
func Open(path string, opts ...Option) (*Store, error) {
	if isSQLitePath(path) {
		b, err := OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		return New(b, opts...), nil
	}
	return New(NewFileBackend(path), opts...), nil
}

func isSQLitePath(path string) bool {
	if path == ":memory:" {
		return true
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

// Close releases the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

// Raw returns the stored document exactly as persisted. Nil means nothing
// has been saved yet.
func (s *Store) Raw(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.backend.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load raw collection: %w", err)
	}
	return data, nil
}

// LoadAll returns the full collection in stored order. A store that has
// never been written returns an empty collection.
func (s *Store) LoadAll(ctx context.Context) ([]pet.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadAll(ctx)
}

// SaveAll overwrites the collection with records, preserving their order.
// It refuses a collection in which two records share an identity.
func (s *Store) SaveAll(ctx context.Context, records []pet.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveAll(ctx, records)
}

// UpdateOne replaces the stored record whose (name, spawn_date) matches rec
// and persists the whole collection.
//
// found is false when no record matches. That is a no-op signal for the
// caller, not an error: nothing is written.
func (s *Store) UpdateOne(ctx context.Context, rec pet.Record) (found bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.loadAll(ctx)
	if err != nil {
		return false, fmt.Errorf("update %s: %w", rec.ID(), err)
	}

	i := pet.Index(records, rec.ID())
	if i < 0 {
		s.logger.Warn("no stored pet matches identity", "pet", rec.Name, "spawn_date", rec.SpawnDate)
		return false, nil
	}

	records[i] = rec
	if err := s.saveAll(ctx, records); err != nil {
		return false, fmt.Errorf("update %s: %w", rec.ID(), err)
	}
	s.logger.Debug("pet updated", "pet", rec.Name, "position", i)
	return true, nil
}

func (s *Store) loadAll(ctx context.Context) ([]pet.Record, error) {
	data, err := s.backend.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load collection: %w", err)
	}
	return unmarshalCollection(data)
}

func (s *Store) saveAll(ctx context.Context, records []pet.Record) error {
	if err := pet.CheckIdentities(records); err != nil {
		return fmt.Errorf("save collection: %w", err)
	}

	data, err := marshalCollection(records)
	if err != nil {
		return fmt.Errorf("save collection: %w", err)
	}
	if err := s.backend.Save(ctx, data); err != nil {
		return fmt.Errorf("save collection: %w", err)
	}
	s.logger.Debug("collection saved", "pets", len(records), "bytes", len(data))
	return nil
}
