package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/roach88/littlebeepers/internal/pet"
	"github.com/roach88/littlebeepers/internal/testutil"
)

// backendCases opens one store per backend so behavior tests run against both.
func backendCases(t *testing.T) map[string]*Store {
	t.Helper()

	sqlite, err := Open(filepath.Join(t.TempDir(), "pets.db"))
	if err != nil {
		t.Fatalf("Open(sqlite) failed: %v", err)
	}
	t.Cleanup(func() { sqlite.Close() })

	file, err := Open(filepath.Join(t.TempDir(), "data", "pets.json"))
	if err != nil {
		t.Fatalf("Open(file) failed: %v", err)
	}
	t.Cleanup(func() { file.Close() })

	return map[string]*Store{"sqlite": sqlite, "file": file}
}

// createTestPet creates a legacy record spawned offset after testutil.Epoch.
func createTestPet(name, word string, offset time.Duration) pet.Record {
	return pet.New(name, testutil.Epoch.Add(offset), word)
}
