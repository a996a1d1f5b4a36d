package playdate

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/roach88/littlebeepers/internal/pet"
	"github.com/roach88/littlebeepers/internal/store"
	"github.com/roach88/littlebeepers/internal/testutil"
)

// createTestStore creates a file-backed store seeded with records.
func createTestStore(t *testing.T, records ...pet.Record) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "pets.json"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if len(records) > 0 {
		if err := s.SaveAll(context.Background(), records); err != nil {
			t.Fatalf("SaveAll() failed: %v", err)
		}
	}
	return s
}

// withWords creates a migrated record spawned offset after testutil.Epoch.
func withWords(name string, offset time.Duration, words ...string) pet.Record {
	r := pet.New(name, testutil.Epoch.Add(offset), "")
	r.Vocabulary = pet.NewVocabulary(words...)
	return r
}

// withWord creates a legacy record.
func withWord(name string, offset time.Duration, word string) pet.Record {
	return pet.New(name, testutil.Epoch.Add(offset), word)
}

type recordingSpeaker struct {
	words []string
	err   error
}

func (s *recordingSpeaker) Speak(word string) error {
	s.words = append(s.words, word)
	return s.err
}

// flakyStore wraps a store and fails UpdateOne on the given call (1-based).
type flakyStore struct {
	*store.Store
	failOn int
	calls  int
}

var errDiskFull = errors.New("disk full")

func (f *flakyStore) UpdateOne(ctx context.Context, rec pet.Record) (bool, error) {
	f.calls++
	if f.calls == f.failOn {
		return false, errDiskFull
	}
	return f.Store.UpdateOne(ctx, rec)
}
