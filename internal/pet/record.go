package pet

import (
	"bytes"
	"encoding/json"
	"maps"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

const (
	// Species is the only species that hatches today.
	Species = "Little Beeper"

	// UnnamedPet replaces a blank name at creation.
	UnnamedPet = "Unnamed Pet"

	// Alphabet is the set of characters a freshly spawned pet draws its
	// first word from. Each one maps to a note in the voice table.
	Alphabet = "asdfghjk"

	// WordLength is the length of spawn words and playdate words.
	WordLength = 5
)

// Rand is the randomness a pet needs. *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// Traits are fixed at creation and not consumed by any logic yet.
type Traits map[string]int

// DefaultTraits returns the traits every new pet starts with.
func DefaultTraits() Traits {
	return Traits{
		"vowel-loving":        5,
		"consonant-curious":   5,
		"punctuation-centric": 5,
	}
}

// Record is one simulated companion as persisted in the collection.
type Record struct {
	Name       string
	Species    string
	SpawnDate  string
	Released   bool
	History    []Event
	Vocabulary Vocabulary
	Traits     Traits
}

// NormalizeName trims the name, NFC-normalizes it, and substitutes
// UnnamedPet when nothing is left.
func NormalizeName(name string) string {
	name = norm.NFC.String(strings.TrimSpace(name))
	if name == "" {
		return UnnamedPet
	}
	return name
}

// New builds a freshly spawned record. The spawn word is kept in the legacy
// single-word form until the pet's first playdate.
func New(name string, spawned time.Time, word string) Record {
	return Record{
		Name:       NormalizeName(name),
		Species:    Species,
		SpawnDate:  FormatTimestamp(spawned),
		History:    []Event{},
		Vocabulary: LegacyVocabulary(word),
		Traits:     DefaultTraits(),
	}
}

// SpawnWord draws WordLength characters from Alphabet.
func SpawnWord(r Rand) string {
	letters := []rune(Alphabet)
	var b strings.Builder
	for range WordLength {
		b.WriteRune(letters[r.IntN(len(letters))])
	}
	return b.String()
}

// ID returns the record's identity.
func (r Record) ID() Identity {
	return Identity{Name: r.Name, SpawnDate: r.SpawnDate}
}

// Active reports whether the pet can still take part in interactions.
func (r Record) Active() bool {
	return !r.Released
}

// Release marks the pet released. There is no way back.
func (r *Record) Release() {
	r.Released = true
}

// Clone returns a deep copy so that session-local mutation never aliases
// the caller's slices.
func (r Record) Clone() Record {
	c := r
	c.History = make([]Event, len(r.History))
	for i, e := range r.History {
		e.Partners = slices.Clone(e.Partners)
		c.History[i] = e
	}
	c.Vocabulary = r.Vocabulary.clone()
	c.Traits = maps.Clone(r.Traits)
	return c
}

// Active filters records down to those not yet released, preserving order.
func Active(records []Record) []Record {
	var out []Record
	for _, r := range records {
		if r.Active() {
			out = append(out, r)
		}
	}
	return out
}

// recordJSON is the on-disk layout. Field names are part of the store format.
type recordJSON struct {
	Name      string    `json:"name"`
	Species   string    `json:"species"`
	SpawnDate string    `json:"spawn_date"`
	Released  bool      `json:"released"`
	History   []Event   `json:"history"`
	Word      *string   `json:"word,omitempty"`
	Words     *[]string `json:"words,omitempty"`
	Traits    Traits    `json:"traits,omitempty"`
}

// MarshalJSON writes the legacy "word" field while the vocabulary is legacy
// and "words" afterwards, never both.
func (r Record) MarshalJSON() ([]byte, error) {
	out := recordJSON{
		Name:      r.Name,
		Species:   r.Species,
		SpawnDate: r.SpawnDate,
		Released:  r.Released,
		History:   r.History,
		Traits:    r.Traits,
	}
	if out.History == nil {
		out.History = []Event{}
	}
	words := r.Vocabulary.words
	if r.Vocabulary.legacy && len(words) == 1 {
		w := words[0]
		out.Word = &w
	} else {
		if words == nil {
			words = []string{}
		}
		out.Words = &words
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// UnmarshalJSON accepts legacy, migrated, and half-migrated records. A
// record holding both fields is folded into "words" on read.
func (r *Record) UnmarshalJSON(data []byte) error {
	var in recordJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	*r = Record{
		Name:      in.Name,
		Species:   in.Species,
		SpawnDate: in.SpawnDate,
		Released:  in.Released,
		History:   in.History,
		Traits:    in.Traits,
	}
	if r.History == nil {
		r.History = []Event{}
	}

	switch {
	case in.Words != nil:
		r.Vocabulary = NewVocabulary(*in.Words...)
		if in.Word != nil && !r.Vocabulary.Contains(*in.Word) {
			r.Vocabulary.words = append(r.Vocabulary.words, *in.Word)
		}
	case in.Word != nil:
		r.Vocabulary = LegacyVocabulary(*in.Word)
	}
	return nil
}
