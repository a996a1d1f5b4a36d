package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/littlebeepers/internal/pet"
	"github.com/roach88/littlebeepers/internal/testutil"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func socialPet() pet.Record {
	rec := pet.New("Beep", testutil.Epoch, "")
	rec.Vocabulary = pet.NewVocabulary("ahs", "kkssd")
	rec.History = []pet.Event{
		{Timestamp: pet.FormatTimestamp(testutil.Epoch.Add(time.Hour)), DurationSeconds: 65},
		{
			Timestamp:       pet.FormatTimestamp(testutil.Epoch.Add(2 * time.Hour)),
			DurationSeconds: 35,
			Kind:            pet.KindPlaydate,
			Partners:        []string{"Zed", "Ada"},
		},
		{
			Timestamp: pet.FormatTimestamp(testutil.Epoch.Add(3 * time.Hour)),
			Kind:      pet.KindPlaydate,
			Partners:  []string{"Ada"},
		},
	}
	return rec
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0s"},
		{-5 * time.Second, "0s"},
		{999 * time.Millisecond, "0s"},
		{59 * time.Second, "59s"},
		{60 * time.Second, "1m"},
		{3600 * time.Second, "1h"},
		{3661 * time.Second, "1h 1m 1s"},
		{86400 * time.Second, "1d"},
		{2*24*time.Hour + 4*time.Minute + 5*time.Second, "2d 4m 5s"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDuration(tt.in))
		})
	}
}

func TestPetReport_ActivePet(t *testing.T) {
	now := testutil.Epoch.Add(2*24*time.Hour + 3*time.Hour + 4*time.Minute + 5*time.Second)

	out, err := PetReport(socialPet(), now)
	require.NoError(t, err)
	newGoldie(t).Assert(t, "report_active_pet", []byte(out))
}

func TestPetReport_ReleasedNewborn(t *testing.T) {
	rec := pet.New("Sir Beeps", testutil.Epoch, "asdfk")
	rec.Release()

	out, err := PetReport(rec, testutil.Epoch)
	require.NoError(t, err)
	newGoldie(t).Assert(t, "report_released_newborn", []byte(out))
}

func TestPetReport_NoWords(t *testing.T) {
	rec := pet.New("Quiet", testutil.Epoch, "")
	rec.Vocabulary = pet.NewVocabulary()

	out, err := PetReport(rec, testutil.Epoch)
	require.NoError(t, err)
	assert.Contains(t, out, "## Vocabulary (0 words known)\nWords: none yet\n")
}

func TestPetReport_BadSpawnDate(t *testing.T) {
	rec := pet.New("Broken", testutil.Epoch, "a")
	rec.SpawnDate = "yesterday-ish"

	_, err := PetReport(rec, testutil.Epoch)
	assert.Error(t, err)
}

func TestSummary(t *testing.T) {
	gone := pet.New("Gone", testutil.Epoch.Add(time.Minute), "jk")
	gone.Release()
	records := []pet.Record{socialPet(), pet.New("New", testutil.Epoch.Add(time.Second), "ah"), gone}

	s := Summarize(records)
	assert.Equal(t, Summary{Total: 3, Active: 2, Released: 1, TotalSeconds: 100}, s)
	newGoldie(t).Assert(t, "summary", []byte(s.Text()))
}

func TestSummary_Empty(t *testing.T) {
	newGoldie(t).Assert(t, "summary_empty", []byte(Summarize(nil).Text()))
}

func TestHTML(t *testing.T) {
	md, err := PetReport(socialPet(), testutil.Epoch.Add(24*time.Hour))
	require.NoError(t, err)

	out, err := HTML("Report for <Beep>", md)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "<title>Report for &lt;Beep&gt;</title>")
	assert.Contains(t, out, "<h1>Status Report for Beep</h1>")
	assert.Contains(t, out, "<h2>Social History</h2>")
	assert.Contains(t, out, "<code>kkssd</code>")
	assert.Contains(t, out, "<strong>Playdates Attended:</strong> 2")
}

func TestFileName(t *testing.T) {
	now := time.Date(2025, 3, 14, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "Sir_Beeps_A_Lot_status_20250314.md", FileName("Sir Beeps A Lot", now, ".md"))
	assert.Equal(t, "a_b_status_20250314.html", FileName("a/b", now, ".html"))
}

func TestSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	now := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

	path, err := Save(dir, "Sir Beeps", "# Hello\n", now, false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Sir_Beeps_status_20250314.md"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# Hello\n", string(data))

	path, err = Save(dir, "Sir Beeps", "# Hello\n", now, true)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Sir_Beeps_status_20250314.html"), path)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<h1>Hello</h1>")
}
