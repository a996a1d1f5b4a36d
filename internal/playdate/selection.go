package playdate

import (
	"fmt"
	"slices"

	"github.com/roach88/littlebeepers/internal/pet"
)

// MinParticipants is the smallest group that can hold a playdate.
const MinParticipants = 2

// Selection tracks participants being chosen one at a time from the
// candidate pool.
type Selection struct {
	candidates []pet.Record
	chosen     []int // indices into candidates, in selection order
}

// NewSelection starts choosing among the active records. It fails with
// ErrNotEnoughParticipants when fewer than MinParticipants are active.
func NewSelection(records []pet.Record) (*Selection, error) {
	candidates := pet.Active(records)
	if len(candidates) < MinParticipants {
		return nil, fmt.Errorf("%w: %d active pet(s), need %d", ErrNotEnoughParticipants, len(candidates), MinParticipants)
	}
	return &Selection{candidates: candidates}, nil
}

// Available returns the candidates not yet chosen, in store order.
func (s *Selection) Available() []pet.Record {
	var out []pet.Record
	for i, c := range s.candidates {
		if !slices.Contains(s.chosen, i) {
			out = append(out, c)
		}
	}
	return out
}

// Choose adds the i-th Available pet (0-based) to the playdate.
func (s *Selection) Choose(i int) (pet.Record, error) {
	n := 0
	for ci, c := range s.candidates {
		if slices.Contains(s.chosen, ci) {
			continue
		}
		if n == i {
			s.chosen = append(s.chosen, ci)
			return c, nil
		}
		n++
	}
	return pet.Record{}, fmt.Errorf("%w: %d", ErrInvalidChoice, i+1)
}

// Chosen returns the chosen pets in selection order.
func (s *Selection) Chosen() []pet.Record {
	out := make([]pet.Record, len(s.chosen))
	for i, ci := range s.chosen {
		out[i] = s.candidates[ci]
	}
	return out
}

// Exhausted reports whether every candidate has been chosen.
func (s *Selection) Exhausted() bool {
	return len(s.chosen) == len(s.candidates)
}

// Finish returns the participants, or ErrNotEnoughParticipants when fewer
// than MinParticipants were chosen.
func (s *Selection) Finish() ([]pet.Record, error) {
	if len(s.chosen) < MinParticipants {
		return nil, fmt.Errorf("%w: %d selected, need %d", ErrNotEnoughParticipants, len(s.chosen), MinParticipants)
	}
	return s.Chosen(), nil
}
