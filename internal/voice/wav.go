package voice

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"
)

// Sampler renders words as 16-bit mono PCM.
type Sampler struct {
	SampleRate int
	Amplitude  float64
	Note       time.Duration // per character
	Gap        time.Duration // silence after each character
	WordPause  time.Duration // silence between words
}

// DefaultSampler matches the voice sample format: 44.1 kHz, 0.18 s notes,
// 0.07 s gaps, 0.5 s between words.
func DefaultSampler() Sampler {
	return Sampler{
		SampleRate: 44100,
		Amplitude:  16000,
		Note:       180 * time.Millisecond,
		Gap:        70 * time.Millisecond,
		WordPause:  500 * time.Millisecond,
	}
}

func (s Sampler) count(d time.Duration) int {
	return int(int64(d) * int64(s.SampleRate) / int64(time.Second))
}

// Tone renders a sine wave at hz for d. A zero frequency is silence.
func (s Sampler) Tone(hz float64, d time.Duration) []int16 {
	n := s.count(d)
	out := make([]int16, n)
	for i := range out {
		angle := 2 * math.Pi * float64(i) * hz / float64(s.SampleRate)
		out[i] = int16(s.Amplitude * math.Sin(angle))
	}
	return out
}

// Render voices words in order: one note plus a gap per character, and a
// pause between words but not after the last. ErrNoWords is returned when
// nothing audible would be produced.
func (s Sampler) Render(words []string) ([]int16, error) {
	var pcm []int16
	gap := s.Tone(0, s.Gap)
	pause := s.Tone(0, s.WordPause)

	letters := 0
	for i, w := range words {
		for _, c := range strings.ToLower(w) {
			pcm = append(pcm, s.Tone(Frequency(c), s.Note)...)
			pcm = append(pcm, gap...)
			letters++
		}
		if i < len(words)-1 {
			pcm = append(pcm, pause...)
		}
	}
	if letters == 0 {
		return nil, ErrNoWords
	}
	return pcm, nil
}

type wavHeader struct {
	ChunkID       [4]byte
	ChunkSize     uint32
	Format        [4]byte
	Subchunk1ID   [4]byte
	Subchunk1Size uint32
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	Subchunk2ID   [4]byte
	Subchunk2Size uint32
}

// WriteWAV encodes mono 16-bit PCM as a RIFF/WAVE stream.
func WriteWAV(w io.Writer, pcm []int16, sampleRate int) error {
	dataSize := uint32(len(pcm) * 2)
	h := wavHeader{
		ChunkID:       [4]byte{'R', 'I', 'F', 'F'},
		ChunkSize:     36 + dataSize,
		Format:        [4]byte{'W', 'A', 'V', 'E'},
		Subchunk1ID:   [4]byte{'f', 'm', 't', ' '},
		Subchunk1Size: 16,
		AudioFormat:   1,
		NumChannels:   1,
		SampleRate:    uint32(sampleRate),
		ByteRate:      uint32(sampleRate * 2),
		BlockAlign:    2,
		BitsPerSample: 16,
		Subchunk2ID:   [4]byte{'d', 'a', 't', 'a'},
		Subchunk2Size: dataSize,
	}
	if err := binary.Write(w, binary.LittleEndian, h); err != nil {
		return fmt.Errorf("write wav header: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, pcm); err != nil {
		return fmt.Errorf("write wav samples: %w", err)
	}
	return nil
}

// SampleFileName builds "<Name>_vocab_YYYYMMDD.wav" with spaces replaced.
func SampleFileName(petName string, now time.Time) string {
	return fmt.Sprintf("%s_vocab_%s.wav", fileSafe(petName), now.Format("20060102"))
}

// SaveSample renders words and writes the WAV into dir, returning its path.
func (s Sampler) SaveSample(dir, petName string, words []string, now time.Time) (string, error) {
	pcm, err := s.Render(words)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create audio dir: %w", err)
	}

	path := filepath.Join(dir, SampleFileName(petName, now))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create sample: %w", err)
	}
	if err := WriteWAV(f, pcm, s.SampleRate); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close sample: %w", err)
	}
	return path, nil
}

func fileSafe(name string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '/' || r == '\\' {
			return '_'
		}
		return r
	}, name)
}
