package interaction

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/littlebeepers/internal/pet"
	"github.com/roach88/littlebeepers/internal/testutil"
)

func TestLog_AppendsWithoutTouchingExisting(t *testing.T) {
	rec := pet.New("Beep", testutil.Epoch, "ahs")
	first := pet.Event{Timestamp: "a", DurationSeconds: 1}
	second := pet.Event{Timestamp: "b", DurationSeconds: 2, Kind: pet.KindPlaydate, Partners: []string{"Zip"}}

	Log(&rec, first)
	Log(&rec, second)

	require.Len(t, rec.History, 2)
	assert.Equal(t, first, rec.History[0])
	assert.Equal(t, second, rec.History[1])
}

func TestLogger_Visit(t *testing.T) {
	clock := testutil.NewClock(time.Time{})
	l := NewLogger(clock.Now)
	rec := pet.New("Beep", testutil.Epoch, "ahs")

	ev := l.Visit(&rec, 42900*time.Millisecond)

	assert.Equal(t, pet.FormatTimestamp(testutil.Epoch), ev.Timestamp)
	assert.Equal(t, 42, ev.DurationSeconds)
	assert.False(t, ev.IsPlaydate())
	assert.Nil(t, ev.Partners)
	assert.Equal(t, []pet.Event{ev}, rec.History)
}

func TestLogger_PlaydateCopiesPartners(t *testing.T) {
	l := NewLogger(testutil.NewClock(time.Time{}).Now)
	rec := pet.New("Beep", testutil.Epoch, "ahs")
	partners := []string{"Zip", "Mox"}

	ev := l.Playdate(&rec, 5*time.Second, partners)
	partners[0] = "Changed"

	assert.True(t, ev.IsPlaydate())
	assert.Equal(t, 5, ev.DurationSeconds)
	assert.Equal(t, []string{"Zip", "Mox"}, rec.History[0].Partners)
}

func TestSeconds(t *testing.T) {
	assert.Equal(t, 0, Seconds(-time.Second))
	assert.Equal(t, 0, Seconds(999*time.Millisecond))
	assert.Equal(t, 61, Seconds(61*time.Second+500*time.Millisecond))
}

func TestNewLogger_DefaultsToWallClock(t *testing.T) {
	l := NewLogger(nil)
	rec := pet.New("Beep", testutil.Epoch, "ahs")

	before := time.Now().Add(-time.Second)
	ev := l.Visit(&rec, 0)

	ts, err := pet.ParseTimestamp(ev.Timestamp)
	require.NoError(t, err)
	assert.True(t, ts.After(before))
}
