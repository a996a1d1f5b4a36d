package care

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/littlebeepers/internal/pet"
	"github.com/roach88/littlebeepers/internal/store"
	"github.com/roach88/littlebeepers/internal/testutil"
)

func createTestStore(t *testing.T, records ...pet.Record) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "pets.json"))
	require.NoError(t, err)
	if len(records) > 0 {
		require.NoError(t, s.SaveAll(context.Background(), records))
	}
	return s
}

type recordingSpeaker struct {
	words []string
}

func (s *recordingSpeaker) Speak(word string) error {
	s.words = append(s.words, word)
	return nil
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	st := createTestStore(t)
	clock := testutil.NewClock(time.Time{})
	speaker := &recordingSpeaker{}
	k := New(st, testutil.NewScriptedRand(0, 1, 2, 3, 7), WithClock(clock.Now), WithSpeaker(speaker))

	rec, err := k.Create(ctx, "  Beep  ")
	require.NoError(t, err)

	assert.Equal(t, "Beep", rec.Name)
	assert.Equal(t, pet.Species, rec.Species)
	assert.Equal(t, pet.FormatTimestamp(testutil.Epoch), rec.SpawnDate)
	assert.False(t, rec.Released)
	assert.Empty(t, rec.History)
	assert.True(t, rec.Vocabulary.Legacy())
	assert.Equal(t, []string{"asdfk"}, rec.Vocabulary.Words())
	assert.Equal(t, pet.DefaultTraits(), rec.Traits)
	assert.Equal(t, []string{"asdfk"}, speaker.words)

	stored, err := st.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, rec.ID(), stored[0].ID())
}

func TestCreate_BlankNameAndAppendOrder(t *testing.T) {
	ctx := context.Background()
	st := createTestStore(t)
	clock := testutil.NewClock(time.Time{})
	k := New(st, testutil.NewRand(1), WithClock(clock.Now))

	_, err := k.Create(ctx, "Alpha")
	require.NoError(t, err)
	clock.Advance(time.Second)
	rec, err := k.Create(ctx, "   ")
	require.NoError(t, err)
	assert.Equal(t, pet.UnnamedPet, rec.Name)

	stored, err := k.Pets(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "Alpha", stored[0].Name)
	assert.Equal(t, pet.UnnamedPet, stored[1].Name)
}

func TestCreate_SameNameSameInstantCollides(t *testing.T) {
	ctx := context.Background()
	st := createTestStore(t)
	clock := testutil.NewClock(time.Time{})
	k := New(st, testutil.NewRand(1), WithClock(clock.Now))

	_, err := k.Create(ctx, "Twin")
	require.NoError(t, err)
	_, err = k.Create(ctx, "Twin")
	require.ErrorIs(t, err, pet.ErrDuplicateIdentity)

	clock.Advance(time.Microsecond)
	_, err = k.Create(ctx, "Twin")
	require.NoError(t, err)

	stored, err := st.LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestVisit_Selection(t *testing.T) {
	ctx := context.Background()
	active := pet.New("Active", testutil.Epoch, "ahs")
	gone := pet.New("Gone", testutil.Epoch.Add(time.Second), "jk")
	gone.Release()
	k := New(createTestStore(t, active, gone), testutil.NewRand(1))

	v, err := k.Visit(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, "Active", v.Pet().Name)

	_, err = k.Visit(ctx, 1)
	assert.ErrorIs(t, err, ErrReleased)

	_, err = k.Visit(ctx, 2)
	assert.ErrorIs(t, err, ErrNoSuchPet)
	_, err = k.Visit(ctx, -1)
	assert.ErrorIs(t, err, ErrNoSuchPet)
}
