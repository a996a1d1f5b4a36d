package playdate

import (
	"fmt"
	"strings"

	"github.com/roach88/littlebeepers/internal/pet"
)

// LetterBag pools every character of every word known by every participant,
// in participant order.
func LetterBag(participants []pet.Record) []rune {
	var bag []rune
	for _, p := range participants {
		bag = append(bag, p.Vocabulary.Letters()...)
	}
	return bag
}

// DrawWord samples n characters uniformly from bag, with replacement.
func DrawWord(bag []rune, r pet.Rand, n int) (string, error) {
	if len(bag) == 0 {
		return "", ErrNoSourceLetters
	}
	if n <= 0 {
		return "", fmt.Errorf("draw word: length must be positive, got %d", n)
	}

	var b strings.Builder
	for range n {
		b.WriteRune(bag[r.IntN(len(bag))])
	}
	return b.String(), nil
}

// Partners lists the names of every participant except the one at self,
// in selection order. Pets are told apart by position, not by name, so two
// participants sharing a name still list each other.
func Partners(participants []pet.Record, self int) []string {
	names := make([]string, 0, len(participants)-1)
	for i, p := range participants {
		if i != self {
			names = append(names, p.Name)
		}
	}
	return names
}
