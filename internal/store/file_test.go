package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/littlebeepers/internal/pet"
)

func TestFileBackend_CreatesDirectoryOnSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data", "pets.json")
	s := New(NewFileBackend(path))

	require.NoError(t, s.SaveAll(context.Background(), []pet.Record{createTestPet("A", "a", 0)}))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestFileBackend_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pets.json")
	s := New(NewFileBackend(path))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, s.SaveAll(ctx, []pet.Record{createTestPet("A", "a", 0)}))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "pets.json", entries[0].Name())
}

func TestFileBackend_WritesIndentedDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pets.json")
	s := New(NewFileBackend(path))

	rec := createTestPet("Fish & Chips", "ahs", 0)
	require.NoError(t, s.SaveAll(context.Background(), []pet.Record{rec}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n    \"name\": \"Fish & Chips\"")
	assert.Contains(t, string(data), "\"word\": \"ahs\"")
	assert.NotContains(t, string(data), "\"words\"")
}

func TestFileBackend_ReadsLegacyDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pets.json")
	doc := `[
  {
    "name": "Beep",
    "species": "Little Beeper",
    "spawn_date": "2025-06-01T10:00:00.000001",
    "released": false,
    "history": [],
    "word": "ahs",
    "traits": {"vowel-loving": 5, "consonant-curious": 5, "punctuation-centric": 5}
  }
]`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	records, err := New(NewFileBackend(path)).LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Beep", records[0].Name)
	assert.True(t, records[0].Vocabulary.Legacy())
	assert.Equal(t, []string{"ahs"}, records[0].Vocabulary.Words())
}

func TestFileBackend_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := NewFileBackend(filepath.Join(t.TempDir(), "pets.json"))
	_, err := b.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, b.Save(ctx, []byte("[]")), context.Canceled)
}
