// Package voice turns words into tones.
//
// Each character maps to a fixed note; anything outside the eight-key table
// falls back to A4. Words can be printed as note names, rendered to PCM
// samples, or written out as a WAV voice sample.
package voice

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// ErrNoWords means there is nothing to render.
var ErrNoWords = errors.New("pet doesn't know any words to sample")

// FallbackFrequency is used for characters missing from the table (A4).
const FallbackFrequency = 440.0

type note struct {
	name string
	hz   float64
}

var notes = map[rune]note{
	'a': {"C4", 261.63},
	's': {"D4", 293.66},
	'd': {"E4", 329.63},
	'f': {"F4", 349.23},
	'g': {"G4", 392.00},
	'h': {"A4", 440.00},
	'j': {"B4", 493.88},
	'k': {"C5", 523.25},
}

// Frequency returns the tone for c, case-insensitively.
func Frequency(c rune) float64 {
	if n, ok := notes[unicode.ToLower(c)]; ok {
		return n.hz
	}
	return FallbackFrequency
}

// NoteName returns the note name for c, or "A4" for unmapped characters.
func NoteName(c rune) string {
	if n, ok := notes[unicode.ToLower(c)]; ok {
		return n.name
	}
	return "A4"
}

// Notes returns the note names for every character of word.
func Notes(word string) []string {
	var out []string
	for _, c := range word {
		out = append(out, NoteName(c))
	}
	return out
}

// NoteSpeaker "plays" a word by printing its notes.
type NoteSpeaker struct {
	W io.Writer
}

// Speak writes a line like "♪ C4 D4 E4".
func (s NoteSpeaker) Speak(word string) error {
	if word == "" {
		return nil
	}
	_, err := fmt.Fprintf(s.W, "♪ %s\n", strings.Join(Notes(word), " "))
	return err
}

// Mute ignores every word.
type Mute struct{}

// Speak does nothing.
func (Mute) Speak(string) error { return nil }
