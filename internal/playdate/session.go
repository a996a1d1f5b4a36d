package playdate

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/roach88/littlebeepers/internal/pet"
)

// Utterance is one turn of the loop.
type Utterance struct {
	Pet    string
	Word   string
	Silent bool // the pet knows no words
	Lap    int  // 0-based lap the turn belongs to
}

// Session is one running playdate.
type Session struct {
	engine       *Engine
	id           string
	participants []pet.Record // selection order
	order        []int        // turn order, indices into participants
	pos          int
	lap          int
	started      time.Time
	concluded    bool
}

// ID returns the session's correlation ID.
func (s *Session) ID() string {
	return s.id
}

// Participants returns copies of the participants in selection order.
func (s *Session) Participants() []pet.Record {
	out := make([]pet.Record, len(s.participants))
	for i, p := range s.participants {
		out[i] = p.Clone()
	}
	return out
}

// TurnOrder returns the names in the current lap's speaking order.
func (s *Session) TurnOrder() []string {
	names := make([]string, len(s.order))
	for i, pi := range s.order {
		names[i] = s.participants[pi].Name
	}
	return names
}

// Speak lets the current participant say one random known word and
// advances the turn. When the lap is complete the order is reshuffled.
func (s *Session) Speak() Utterance {
	p := s.participants[s.order[s.pos]]
	u := Utterance{Pet: p.Name, Lap: s.lap}

	if word, ok := p.Vocabulary.Random(s.engine.rng); ok {
		u.Word = word
	} else {
		u.Silent = true
	}
	s.engine.speak(s.id, u.Word)

	s.pos++
	if s.pos == len(s.order) {
		s.pos = 0
		s.lap++
		s.shuffle()
	}
	return u
}

func (s *Session) shuffle() {
	s.engine.rng.Shuffle(len(s.order), func(i, j int) {
		s.order[i], s.order[j] = s.order[j], s.order[i]
	})
}

// Outcome is what a concluded playdate produced.
type Outcome struct {
	SessionID string
	Duration  time.Duration
	Letters   []rune
	Results   []Result // selection order
}

// Result is one participant's share of the outcome.
type Result struct {
	Pet       pet.Record // as committed
	Word      string
	Partners  []string
	Committed bool // false when the store no longer held the pet
}

// Conclude evolves every participant's vocabulary from the pooled letter
// bag and commits each one individually.
//
// If the letter bag is empty, ErrNoSourceLetters is returned before any
// participant changes. If a commit fails, the outcome so far is returned
// with the error; earlier participants stay committed.
func (s *Session) Conclude(ctx context.Context) (*Outcome, error) {
	if s.concluded {
		return nil, ErrConcluded
	}

	e := s.engine
	elapsed := e.now().Sub(s.started)
	bag := LetterBag(s.participants)
	if len(bag) == 0 {
		return nil, fmt.Errorf("conclude playdate %s: %w", s.id, ErrNoSourceLetters)
	}
	s.concluded = true

	out := &Outcome{
		SessionID: s.id,
		Duration:  elapsed,
		Letters:   slices.Clone(bag),
		Results:   make([]Result, 0, len(s.participants)),
	}
	events := e.events()

	for i := range s.participants {
		rec := s.participants[i].Clone()

		word, err := DrawWord(bag, e.rng, pet.WordLength)
		if err != nil {
			return out, fmt.Errorf("conclude playdate %s: %w", s.id, err)
		}
		rec.Vocabulary.Learn(word)

		partners := Partners(s.participants, i)
		events.Playdate(&rec, elapsed, partners)

		found, err := e.store.UpdateOne(ctx, rec)
		if err != nil {
			return out, fmt.Errorf("commit %s: %w", rec.Name, err)
		}
		if !found {
			e.logger.Warn("participant missing from store, not committed", "session", s.id, "pet", rec.Name)
		} else {
			e.logger.Debug("participant committed", "session", s.id, "pet", rec.Name, "word", word)
		}

		out.Results = append(out.Results, Result{
			Pet:       rec,
			Word:      word,
			Partners:  partners,
			Committed: found,
		})
		e.speak(s.id, word)
	}

	e.logger.Info("playdate concluded", "session", s.id, "participants", len(out.Results), "seconds", int(elapsed/time.Second))
	return out, nil
}
