package pet

import "slices"

// Vocabulary is the ordered list of words a pet knows.
//
// Legacy is true while the persisted form is still the single "word" field.
// It is cleared by Migrate and never set again.
type Vocabulary struct {
	words  []string
	legacy bool
}

// NewVocabulary returns a migrated vocabulary holding words in order.
func NewVocabulary(words ...string) Vocabulary {
	return Vocabulary{words: slices.Clone(words)}
}

// LegacyVocabulary returns a vocabulary persisted as a single legacy word.
func LegacyVocabulary(word string) Vocabulary {
	return Vocabulary{words: []string{word}, legacy: true}
}

// Words returns a copy of the known words in order.
func (v Vocabulary) Words() []string {
	return slices.Clone(v.words)
}

// Len returns the number of known words.
func (v Vocabulary) Len() int {
	return len(v.words)
}

// Legacy reports whether the vocabulary is still stored as a single word.
func (v Vocabulary) Legacy() bool {
	return v.legacy
}

// Contains reports whether word is already known.
func (v Vocabulary) Contains(word string) bool {
	return slices.Contains(v.words, word)
}

// Letters returns every character of every known word, in order.
func (v Vocabulary) Letters() []rune {
	var letters []rune
	for _, w := range v.words {
		letters = append(letters, []rune(w)...)
	}
	return letters
}

// Migrate retires the legacy field. The legacy word already sits in words,
// so it is stored exactly once afterwards.
func (v *Vocabulary) Migrate() {
	v.legacy = false
}

// Learn migrates the vocabulary and appends word.
func (v *Vocabulary) Learn(word string) {
	v.Migrate()
	v.words = append(v.words, word)
}

// Random picks one known word uniformly. ok is false when nothing is known.
func (v Vocabulary) Random(r Rand) (word string, ok bool) {
	if len(v.words) == 0 {
		return "", false
	}
	return v.words[r.IntN(len(v.words))], true
}

func (v Vocabulary) clone() Vocabulary {
	return Vocabulary{words: slices.Clone(v.words), legacy: v.legacy}
}
