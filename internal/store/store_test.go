package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/littlebeepers/internal/pet"
)

func TestOpen_ChoosesBackendByExtension(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		path   string
		sqlite bool
	}{
		{filepath.Join(dir, "pets.json"), false},
		{filepath.Join(dir, "pets"), false},
		{filepath.Join(dir, "pets.db"), true},
		{filepath.Join(dir, "pets.SQLITE"), true},
		{":memory:", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			s, err := Open(tt.path)
			require.NoError(t, err)
			defer s.Close()

			_, isSQLite := s.backend.(*SQLiteBackend)
			assert.Equal(t, tt.sqlite, isSQLite)
		})
	}
}

func TestOpen_InvalidSQLitePath(t *testing.T) {
	// A regular file where the parent directory should be.
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	_, err := Open(filepath.Join(blocker, "pets.db"))
	assert.Error(t, err)
}

func TestLoadAll_MissingStoreIsEmpty(t *testing.T) {
	for name, s := range backendCases(t) {
		t.Run(name, func(t *testing.T) {
			records, err := s.LoadAll(context.Background())
			require.NoError(t, err)
			assert.NotNil(t, records)
			assert.Empty(t, records)
		})
	}
}

func TestLoadAll_EmptyFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pets.json")
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0o644))

	s, err := Open(path)
	require.NoError(t, err)

	records, err := s.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLoadAll_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pets.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s, err := Open(path)
	require.NoError(t, err)

	_, err = s.LoadAll(context.Background())
	assert.Error(t, err)
}

func TestSaveAll_PreservesOrder(t *testing.T) {
	ctx := context.Background()
	for name, s := range backendCases(t) {
		t.Run(name, func(t *testing.T) {
			records := []pet.Record{
				createTestPet("Zip", "aaa", 0),
				createTestPet("Beep", "sss", time.Second),
				createTestPet("Mox", "ddd", 2*time.Second),
			}
			require.NoError(t, s.SaveAll(ctx, records))

			got, err := s.LoadAll(ctx)
			require.NoError(t, err)
			require.Len(t, got, 3)
			for i := range records {
				assert.Equal(t, records[i].ID(), got[i].ID())
				assert.Equal(t, records[i].Vocabulary.Words(), got[i].Vocabulary.Words())
			}
		})
	}
}

func TestSaveAll_Overwrites(t *testing.T) {
	ctx := context.Background()
	for name, s := range backendCases(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.SaveAll(ctx, []pet.Record{createTestPet("A", "a", 0), createTestPet("B", "b", time.Second)}))
			require.NoError(t, s.SaveAll(ctx, []pet.Record{createTestPet("C", "c", 0)}))

			got, err := s.LoadAll(ctx)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, "C", got[0].Name)
		})
	}
}

func TestSaveAll_RejectsDuplicateIdentity(t *testing.T) {
	ctx := context.Background()
	for name, s := range backendCases(t) {
		t.Run(name, func(t *testing.T) {
			a := createTestPet("Beep", "aaa", 0)
			b := createTestPet("Beep", "sss", 0)

			err := s.SaveAll(ctx, []pet.Record{a, b})
			require.ErrorIs(t, err, pet.ErrDuplicateIdentity)

			got, err := s.LoadAll(ctx)
			require.NoError(t, err)
			assert.Empty(t, got, "nothing should be written")
		})
	}
}

func TestUpdateOne_ReplacesMatchInPlace(t *testing.T) {
	ctx := context.Background()
	for name, s := range backendCases(t) {
		t.Run(name, func(t *testing.T) {
			a := createTestPet("Beep", "aaa", 0)
			b := createTestPet("Beep", "sss", time.Second) // same name, different spawn date
			c := createTestPet("Zip", "ddd", 2*time.Second)
			require.NoError(t, s.SaveAll(ctx, []pet.Record{a, b, c}))

			b.Vocabulary.Learn("kkkkk")
			b.History = append(b.History, pet.Event{Timestamp: "t", DurationSeconds: 3})

			found, err := s.UpdateOne(ctx, b)
			require.NoError(t, err)
			assert.True(t, found)

			got, err := s.LoadAll(ctx)
			require.NoError(t, err)
			require.Len(t, got, 3)
			assert.Equal(t, []string{"aaa"}, got[0].Vocabulary.Words())
			assert.Equal(t, []string{"sss", "kkkkk"}, got[1].Vocabulary.Words())
			assert.Len(t, got[1].History, 1)
			assert.Equal(t, "Zip", got[2].Name)
		})
	}
}

func TestUpdateOne_NoMatchIsNotAnError(t *testing.T) {
	ctx := context.Background()
	for name, s := range backendCases(t) {
		t.Run(name, func(t *testing.T) {
			a := createTestPet("Beep", "aaa", 0)
			require.NoError(t, s.SaveAll(ctx, []pet.Record{a}))
			before, err := s.Raw(ctx)
			require.NoError(t, err)

			stranger := createTestPet("Beep", "aaa", time.Hour)
			found, err := s.UpdateOne(ctx, stranger)
			require.NoError(t, err)
			assert.False(t, found)

			after, err := s.Raw(ctx)
			require.NoError(t, err)
			assert.Equal(t, before, after)
		})
	}
}

func TestUpdateOne_EmptyStore(t *testing.T) {
	for name, s := range backendCases(t) {
		t.Run(name, func(t *testing.T) {
			found, err := s.UpdateOne(context.Background(), createTestPet("A", "a", 0))
			require.NoError(t, err)
			assert.False(t, found)
		})
	}
}

func TestRaw_NilBeforeFirstSave(t *testing.T) {
	for name, s := range backendCases(t) {
		t.Run(name, func(t *testing.T) {
			data, err := s.Raw(context.Background())
			require.NoError(t, err)
			assert.Nil(t, data)
		})
	}
}
