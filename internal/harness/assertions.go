package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/littlebeepers/internal/pet"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string // assertion type
	Pet      string
	Expected string
	Actual   string
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s", e.Type)
	if e.Pet != "" {
		fmt.Fprintf(&buf, " (%s)", e.Pet)
	}
	fmt.Fprintf(&buf, "\n  Expected: %s\n  Actual: %s", e.Expected, e.Actual)
	return buf.String()
}

// EvaluateAssertions checks every assertion against the final collection
// and returns the failure messages.
func EvaluateAssertions(final []pet.Record, seeds map[string]PetSeed, assertions []Assertion) []string {
	var errs []string
	for _, a := range assertions {
		if err := evaluate(final, seeds, a); err != nil {
			errs = append(errs, err.Error())
		}
	}
	return errs
}

func evaluate(final []pet.Record, seeds map[string]PetSeed, a Assertion) error {
	if a.Type == AssertPetCount {
		if len(final) != a.Count {
			return &AssertionError{Type: a.Type, Expected: fmt.Sprintf("%d pets", a.Count), Actual: fmt.Sprintf("%d pets", len(final))}
		}
		return nil
	}

	rec, ok := findPet(final, a.Pet)
	if !ok {
		return &AssertionError{Type: a.Type, Pet: a.Pet, Expected: "pet in collection", Actual: "not found"}
	}

	switch a.Type {
	case AssertWordsCount:
		if n := rec.Vocabulary.Len(); n != a.Count {
			return &AssertionError{Type: a.Type, Pet: a.Pet, Expected: fmt.Sprintf("%d words", a.Count), Actual: fmt.Sprintf("%d words %v", n, rec.Vocabulary.Words())}
		}
	case AssertHistoryCount:
		if n := len(rec.History); n != a.Count {
			return &AssertionError{Type: a.Type, Pet: a.Pet, Expected: fmt.Sprintf("%d events", a.Count), Actual: fmt.Sprintf("%d events", n)}
		}
	case AssertReleased:
		if rec.Released != *a.Released {
			return &AssertionError{Type: a.Type, Pet: a.Pet, Expected: fmt.Sprintf("released=%t", *a.Released), Actual: fmt.Sprintf("released=%t", rec.Released)}
		}
	case AssertLegacy:
		if rec.Vocabulary.Legacy() != *a.Legacy {
			return &AssertionError{Type: a.Type, Pet: a.Pet, Expected: fmt.Sprintf("legacy=%t", *a.Legacy), Actual: fmt.Sprintf("legacy=%t", rec.Vocabulary.Legacy())}
		}
	case AssertLettersFrom:
		return assertLettersFrom(rec, seeds, a)
	case AssertPartners:
		return assertPartners(rec, a)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
	return nil
}

func findPet(records []pet.Record, name string) (pet.Record, bool) {
	for _, r := range records {
		if r.Name == name {
			return r, true
		}
	}
	return pet.Record{}, false
}

// assertLettersFrom checks that the pet knows no letter outside the seeded
// words of the named pets.
func assertLettersFrom(rec pet.Record, seeds map[string]PetSeed, a Assertion) error {
	allowed := map[rune]bool{}
	for _, name := range a.From {
		s, ok := seeds[name]
		if !ok {
			return &AssertionError{Type: a.Type, Pet: a.Pet, Expected: fmt.Sprintf("%q among seeded pets", name), Actual: "not seeded"}
		}
		words := s.Words
		if s.Word != nil {
			words = []string{*s.Word}
		}
		for _, w := range words {
			for _, c := range w {
				allowed[c] = true
			}
		}
	}

	for _, c := range rec.Vocabulary.Letters() {
		if !allowed[c] {
			return &AssertionError{
				Type:     a.Type,
				Pet:      a.Pet,
				Expected: fmt.Sprintf("letters drawn from %v", a.From),
				Actual:   fmt.Sprintf("%q in %v", c, rec.Vocabulary.Words()),
			}
		}
	}
	return nil
}

func assertPartners(rec pet.Record, a Assertion) error {
	var got []string
	for _, ev := range rec.History {
		if !ev.IsPlaydate() {
			continue
		}
		for _, p := range ev.Partners {
			if !slices.Contains(got, p) {
				got = append(got, p)
			}
		}
	}
	want := slices.Clone(a.Partners)
	slices.Sort(got)
	slices.Sort(want)
	if !slices.Equal(got, want) {
		return &AssertionError{Type: a.Type, Pet: a.Pet, Expected: fmt.Sprintf("%v", want), Actual: fmt.Sprintf("%v", got)}
	}
	return nil
}
