package playdate

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/roach88/littlebeepers/internal/interaction"
	"github.com/roach88/littlebeepers/internal/pet"
)

// Store is the slice of the record store a playdate needs.
type Store interface {
	LoadAll(ctx context.Context) ([]pet.Record, error)
	UpdateOne(ctx context.Context, rec pet.Record) (bool, error)
}

// Rand drives word choice, turn shuffling, and letter draws.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

// Speaker voices a word. Failures are logged and otherwise ignored.
type Speaker interface {
	Speak(word string) error
}

// Engine hosts playdates against a store.
type Engine struct {
	store   Store
	rng     Rand
	now     func() time.Time
	ids     SessionIDGenerator
	speaker Speaker
	logger  *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the wall clock used for durations and event timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithSessionIDs overrides the session ID generator (for testing).
func WithSessionIDs(g SessionIDGenerator) Option {
	return func(e *Engine) { e.ids = g }
}

// WithSpeaker sets the voice used for spoken and learned words.
func WithSpeaker(s Speaker) Option {
	return func(e *Engine) { e.speaker = s }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an Engine. Defaults: time.Now, UUIDv7 session IDs, no voice,
// discarded logs.
func New(st Store, rng Rand, opts ...Option) *Engine {
	e := &Engine{
		store:  st,
		rng:    rng,
		now:    time.Now,
		ids:    UUIDv7Generator{},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Select loads the collection and opens a Selection over its active pets.
func (e *Engine) Select(ctx context.Context) (*Selection, error) {
	records, err := e.store.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load candidates: %w", err)
	}
	return NewSelection(records)
}

// Start begins the turn loop for the given participants, in selection order.
func (e *Engine) Start(participants []pet.Record) (*Session, error) {
	if len(participants) < MinParticipants {
		return nil, fmt.Errorf("%w: %d selected, need %d", ErrNotEnoughParticipants, len(participants), MinParticipants)
	}

	s := &Session{
		engine:       e,
		id:           e.ids.Generate(),
		participants: make([]pet.Record, len(participants)),
		order:        make([]int, len(participants)),
		started:      e.now(),
	}
	for i, p := range participants {
		s.participants[i] = p.Clone()
		s.order[i] = i
	}
	s.shuffle()

	e.logger.Info("playdate started", "session", s.id, "participants", len(participants))
	return s, nil
}

// Play runs a session to completion. After each utterance, keepGoing is
// asked whether to continue; returning false is the stop signal that
// triggers the conclusion. A cancelled context abandons the session without
// concluding.
func (e *Engine) Play(ctx context.Context, participants []pet.Record, keepGoing func(Utterance) bool) (*Outcome, error) {
	s, err := e.Start(participants)
	if err != nil {
		return nil, err
	}
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !keepGoing(s.Speak()) {
			return s.Conclude(ctx)
		}
	}
}

func (e *Engine) speak(session, word string) {
	if e.speaker == nil || word == "" {
		return
	}
	if err := e.speaker.Speak(word); err != nil {
		e.logger.Warn("speaker failed", "session", session, "word", word, "error", err)
	}
}

func (e *Engine) events() *interaction.Logger {
	return interaction.NewLogger(e.now)
}
