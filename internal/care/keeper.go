package care

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/roach88/littlebeepers/internal/pet"
)

var (
	// ErrReleased means the chosen pet has already been released.
	ErrReleased = errors.New("pet has been released")

	// ErrVisitClosed means the visit already ended or the pet was released.
	ErrVisitClosed = errors.New("visit is over")

	// ErrNoSuchPet means a selection fell outside the collection.
	ErrNoSuchPet = errors.New("no such pet")
)

// Store is the slice of the record store the keeper needs.
type Store interface {
	LoadAll(ctx context.Context) ([]pet.Record, error)
	SaveAll(ctx context.Context, records []pet.Record) error
	UpdateOne(ctx context.Context, rec pet.Record) (bool, error)
}

// Speaker voices a word.
type Speaker interface {
	Speak(word string) error
}

// Keeper creates pets and opens visits.
type Keeper struct {
	store   Store
	rng     pet.Rand
	now     func() time.Time
	speaker Speaker
	logger  *slog.Logger
}

// Option configures a Keeper.
type Option func(*Keeper)

// WithClock sets the clock used for spawn dates and visit durations.
func WithClock(now func() time.Time) Option {
	return func(k *Keeper) { k.now = now }
}

// WithSpeaker sets the voice.
func WithSpeaker(s Speaker) Option {
	return func(k *Keeper) { k.speaker = s }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(k *Keeper) {
		if l != nil {
			k.logger = l
		}
	}
}

// New creates a Keeper.
func New(st Store, rng pet.Rand, opts ...Option) *Keeper {
	k := &Keeper{
		store:  st,
		rng:    rng,
		now:    time.Now,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// Create hatches a pet with a fresh spawn word, appends it to the
// collection, and says the word once.
func (k *Keeper) Create(ctx context.Context, name string) (pet.Record, error) {
	word := pet.SpawnWord(k.rng)
	rec := pet.New(name, k.now(), word)

	records, err := k.store.LoadAll(ctx)
	if err != nil {
		return pet.Record{}, fmt.Errorf("create %q: %w", rec.Name, err)
	}
	records = append(records, rec)
	if err := k.store.SaveAll(ctx, records); err != nil {
		return pet.Record{}, fmt.Errorf("create %q: %w", rec.Name, err)
	}

	k.logger.Info("pet created", "pet", rec.Name, "spawn_date", rec.SpawnDate)
	k.speak(word)
	return rec, nil
}

// Pets returns the whole collection, released pets included.
func (k *Keeper) Pets(ctx context.Context) ([]pet.Record, error) {
	return k.store.LoadAll(ctx)
}

// Visit opens a visit with the pet at position i (0-based) in the
// collection. Released pets cannot be visited.
func (k *Keeper) Visit(ctx context.Context, i int) (*Visit, error) {
	records, err := k.store.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load pets: %w", err)
	}
	if i < 0 || i >= len(records) {
		return nil, fmt.Errorf("%w: %d of %d", ErrNoSuchPet, i+1, len(records))
	}
	return k.Begin(records[i])
}

// Begin opens a visit with rec.
func (k *Keeper) Begin(rec pet.Record) (*Visit, error) {
	if rec.Released {
		return nil, fmt.Errorf("visit %s: %w", rec.Name, ErrReleased)
	}
	k.logger.Debug("visit started", "pet", rec.Name)
	return &Visit{
		keeper:  k,
		rec:     rec.Clone(),
		started: k.now(),
	}, nil
}

func (k *Keeper) speak(word string) {
	if k.speaker == nil || word == "" {
		return
	}
	if err := k.speaker.Speak(word); err != nil {
		k.logger.Warn("speaker failed", "word", word, "error", err)
	}
}
