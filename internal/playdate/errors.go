package playdate

import "errors"

var (
	// ErrNotEnoughParticipants means fewer than MinParticipants active pets
	// exist or were chosen. Nothing was changed.
	ErrNotEnoughParticipants = errors.New("not enough participants")

	// ErrNoSourceLetters means the pooled letter bag is empty, so no new word
	// can be drawn. Nothing was changed.
	ErrNoSourceLetters = errors.New("no source letters: cannot generate vocabulary")

	// ErrInvalidChoice means a selection index was out of range.
	ErrInvalidChoice = errors.New("invalid choice")

	// ErrConcluded means the session has already been concluded.
	ErrConcluded = errors.New("playdate already concluded")
)
