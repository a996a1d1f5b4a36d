package voice

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSampler() Sampler {
	return Sampler{
		SampleRate: 1000,
		Amplitude:  1000,
		Note:       10 * time.Millisecond, // 10 samples
		Gap:        2 * time.Millisecond,  // 2 samples
		WordPause:  5 * time.Millisecond,  // 5 samples
	}
}

func TestSampler_ToneLengthAndSilence(t *testing.T) {
	s := testSampler()

	assert.Len(t, s.Tone(440, 10*time.Millisecond), 10)
	for _, v := range s.Tone(0, 5*time.Millisecond) {
		assert.Equal(t, int16(0), v)
	}
}

func TestSampler_RenderLayout(t *testing.T) {
	s := testSampler()

	pcm, err := s.Render([]string{"ad", "k"})
	require.NoError(t, err)
	// 3 letters × (10 + 2) + one pause of 5 between the two words.
	assert.Len(t, pcm, 3*12+5)
}

func TestSampler_RenderNothingAudible(t *testing.T) {
	s := testSampler()

	_, err := s.Render(nil)
	assert.ErrorIs(t, err, ErrNoWords)
	_, err = s.Render([]string{"", ""})
	assert.ErrorIs(t, err, ErrNoWords)
}

func TestWriteWAV_Header(t *testing.T) {
	var buf bytes.Buffer
	pcm := []int16{0, 100, -100}
	require.NoError(t, WriteWAV(&buf, pcm, 44100))

	data := buf.Bytes()
	require.Len(t, data, 44+6)
	assert.Equal(t, "RIFF", string(data[0:4]))
	assert.Equal(t, uint32(36+6), binary.LittleEndian.Uint32(data[4:8]))
	assert.Equal(t, "WAVE", string(data[8:12]))
	assert.Equal(t, "fmt ", string(data[12:16]))
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(data[22:24]))
	assert.Equal(t, uint32(44100), binary.LittleEndian.Uint32(data[24:28]))
	assert.Equal(t, uint16(16), binary.LittleEndian.Uint16(data[34:36]))
	assert.Equal(t, "data", string(data[36:40]))
	assert.Equal(t, uint32(6), binary.LittleEndian.Uint32(data[40:44]))
	assert.Equal(t, int16(-100), int16(binary.LittleEndian.Uint16(data[48:50])))
}

func TestSampleFileName(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, "Sir_Beeps_A_Lot_vocab_20250314.wav", SampleFileName("Sir Beeps A Lot", now))
}

func TestSaveSample(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "audio_samples")
	now := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

	path, err := testSampler().SaveSample(dir, "Beep", []string{"ahs"}, now)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Beep_vocab_20250314.wav"), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(44+3*12*2), info.Size())
}

func TestSaveSample_NoWordsWritesNothing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "audio_samples")

	_, err := testSampler().SaveSample(dir, "Beep", []string{""}, time.Now())
	require.ErrorIs(t, err, ErrNoWords)

	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}
