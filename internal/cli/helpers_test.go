package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/roach88/littlebeepers/internal/pet"
	"github.com/roach88/littlebeepers/internal/store"
	"github.com/roach88/littlebeepers/internal/testutil"
)

const testSessionID = "test-session-cli"

// testOptions points a command at a fresh collection in a temp dir, with a
// fixed clock, a seeded random source, and no voice.
func testOptions(t *testing.T, format string) *RootOptions {
	t.Helper()
	clock := testutil.NewClock(testutil.Epoch)
	return &RootOptions{
		Format:     format,
		Data:       filepath.Join(t.TempDir(), "data", "pets.json"),
		Mute:       true,
		Rand:       testutil.NewRand(42),
		Now:        clock.Now,
		SessionIDs: testutil.NewFixedIDs(testSessionID),
	}
}

// execute runs cmd with stdin and args, returning stdout and stderr.
func execute(cmd *cobra.Command, stdin string, args ...string) (string, string, error) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

// seedPets writes records to the collection at path.
func seedPets(t *testing.T, path string, records ...pet.Record) {
	t.Helper()
	st, err := store.Open(path)
	require.NoError(t, err)
	defer st.Close()
	require.NoError(t, st.SaveAll(context.Background(), records))
}

// loadPets reads the collection at path.
func loadPets(t *testing.T, path string) []pet.Record {
	t.Helper()
	st, err := store.Open(path)
	require.NoError(t, err)
	defer st.Close()
	records, err := st.LoadAll(context.Background())
	require.NoError(t, err)
	return records
}

// newPet builds a record spawned offset after the test epoch.
func newPet(name string, offset time.Duration, words ...string) pet.Record {
	rec := pet.New(name, testutil.Epoch.Add(offset), "")
	rec.Vocabulary = pet.NewVocabulary(words...)
	if len(words) == 1 {
		rec.Vocabulary = pet.LegacyVocabulary(words[0])
	}
	return rec
}

func releasedPet(name string, offset time.Duration, words ...string) pet.Record {
	rec := newPet(name, offset, words...)
	rec.Release()
	return rec
}
