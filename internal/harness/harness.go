package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/roach88/littlebeepers/internal/care"
	"github.com/roach88/littlebeepers/internal/pet"
	"github.com/roach88/littlebeepers/internal/playdate"
	"github.com/roach88/littlebeepers/internal/schema"
	"github.com/roach88/littlebeepers/internal/store"
	"github.com/roach88/littlebeepers/internal/testutil"
	"github.com/roach88/littlebeepers/internal/voice"
)

// random is what both the keeper and the playdate engine draw from.
type random interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

// Harness is the scenario execution engine.
type Harness struct {
	store  *store.Store
	clock  *testutil.Clock
	keeper *care.Keeper
	engine *playdate.Engine
	logger *slog.Logger
	seeds  map[string]PetSeed
}

// Run executes a scenario and returns the result.
//
// Each scenario runs in a fresh in-memory SQLite store. The returned error
// covers infrastructure failures only; steps and assertions that do not
// hold are reported in the Result, as is a final document that no longer
// passes schema validation.
func Run(scenario *Scenario) (result *Result, err error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	var rng random
	if len(scenario.Script) > 0 {
		rng = testutil.NewScriptedRand(scenario.Script...)
	} else {
		rng = testutil.NewRand(scenario.Seed)
	}

	// A scripted source panics when the scenario draws more values than it
	// lists.
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, fmt.Errorf("scenario %s: %v", scenario.Name, r)
		}
	}()

	clock := testutil.NewClock(time.Time{})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ids := testutil.NewFixedIDs()
	if scenario.SessionID != "" {
		ids = testutil.NewFixedIDs(scenario.SessionID)
	}

	h := &Harness{
		store: st,
		clock: clock,
		keeper: care.New(st, rng,
			care.WithClock(clock.Now),
			care.WithSpeaker(voice.Mute{}),
			care.WithLogger(logger),
		),
		engine: playdate.New(st, rng,
			playdate.WithClock(clock.Now),
			playdate.WithSessionIDs(ids),
			playdate.WithSpeaker(voice.Mute{}),
			playdate.WithLogger(logger),
		),
		logger: logger,
		seeds:  make(map[string]PetSeed, len(scenario.Pets)),
	}

	ctx := context.Background()
	if err := h.seed(ctx, scenario.Pets); err != nil {
		return nil, fmt.Errorf("failed to seed pets: %w", err)
	}

	result = NewResult()
	for i, step := range scenario.Flow {
		stepErr := h.executeStep(ctx, i, step, result)
		h.checkExpectation(i, step.Expect, stepErr, result)
	}

	final, err := st.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load final state: %w", err)
	}
	result.State = final

	raw, err := st.Raw(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read final document: %w", err)
	}
	if err := schema.Check(raw); err != nil {
		result.AddError(err.Error())
	}

	for _, msg := range EvaluateAssertions(final, h.seeds, scenario.Assertions) {
		result.AddError(msg)
	}
	return result, nil
}

func (h *Harness) seed(ctx context.Context, seeds []PetSeed) error {
	records := make([]pet.Record, 0, len(seeds))
	for _, s := range seeds {
		var rec pet.Record
		if s.Word != nil {
			rec = pet.New(s.Name, h.clock.Now(), *s.Word)
		} else {
			rec = pet.New(s.Name, h.clock.Now(), "")
			rec.Vocabulary = pet.NewVocabulary(s.Words...)
		}
		rec.Released = s.Released
		records = append(records, rec)
		h.seeds[s.Name] = s
		h.clock.Advance(time.Second)
	}
	if len(records) == 0 {
		return nil
	}
	return h.store.SaveAll(ctx, records)
}

func (h *Harness) executeStep(ctx context.Context, i int, step FlowStep, result *Result) error {
	switch {
	case step.Create != nil:
		rec, err := h.keeper.Create(ctx, step.Create.Name)
		if err != nil {
			return err
		}
		word := ""
		if words := rec.Vocabulary.Words(); len(words) > 0 {
			word = words[0]
		}
		result.AddTrace(TraceEvent{Step: i, Type: TraceCreated, Pet: rec.Name, Word: word})
		h.clock.Advance(time.Second)
		return nil

	case step.Visit != nil:
		v, err := h.openVisit(ctx, step.Visit.Pet)
		if err != nil {
			return err
		}
		for range step.Visit.Speak {
			word, _ := v.Speak()
			result.AddTrace(TraceEvent{Step: i, Type: TraceSpoke, Pet: step.Visit.Pet, Word: word})
		}
		h.clock.Advance(time.Duration(step.Visit.Seconds) * time.Second)
		ev, _, err := v.End(ctx)
		if err != nil {
			return err
		}
		result.AddTrace(TraceEvent{Step: i, Type: TraceVisit, Pet: step.Visit.Pet, Seconds: ev.DurationSeconds})
		return nil

	case step.Release != nil:
		v, err := h.openVisit(ctx, step.Release.Pet)
		if err != nil {
			return err
		}
		if _, err := v.Release(ctx); err != nil {
			return err
		}
		result.AddTrace(TraceEvent{Step: i, Type: TraceReleased, Pet: step.Release.Pet})
		return nil

	case step.Playdate != nil:
		return h.playdate(ctx, i, step.Playdate, result)
	}
	return fmt.Errorf("flow[%d]: empty step", i)
}

func (h *Harness) openVisit(ctx context.Context, name string) (*care.Visit, error) {
	records, err := h.keeper.Pets(ctx)
	if err != nil {
		return nil, err
	}
	for i, r := range records {
		if r.Name == name {
			return h.keeper.Visit(ctx, i)
		}
	}
	return nil, fmt.Errorf("%w: %q", care.ErrNoSuchPet, name)
}

func (h *Harness) playdate(ctx context.Context, i int, step *PlaydateStep, result *Result) error {
	sel, err := h.engine.Select(ctx)
	if err != nil {
		return err
	}
	for _, name := range step.Pets {
		idx := -1
		for j, r := range sel.Available() {
			if r.Name == name {
				idx = j
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("%w: %q is not available", playdate.ErrInvalidChoice, name)
		}
		if _, err := sel.Choose(idx); err != nil {
			return err
		}
	}
	participants, err := sel.Finish()
	if err != nil {
		return err
	}

	session, err := h.engine.Start(participants)
	if err != nil {
		return err
	}
	for range step.Turns {
		u := session.Speak()
		result.AddTrace(TraceEvent{Step: i, Type: TraceUtterance, Pet: u.Pet, Word: u.Word})
	}
	h.clock.Advance(time.Duration(step.Seconds) * time.Second)

	out, err := session.Conclude(ctx)
	if out != nil {
		for _, r := range out.Results {
			result.AddTrace(TraceEvent{
				Step:     i,
				Type:     TraceLearned,
				Pet:      r.Pet.Name,
				Word:     r.Word,
				Partners: r.Partners,
				Seconds:  int(out.Duration / time.Second),
			})
		}
	}
	return err
}

func (h *Harness) checkExpectation(i int, expect *ExpectClause, err error, result *Result) {
	if err != nil {
		result.AddTrace(TraceEvent{Step: i, Type: TraceError, Error: errorCode(err)})
	}
	switch {
	case expect == nil && err != nil:
		result.AddError(fmt.Sprintf("flow[%d]: unexpected error: %v", i, err))
	case expect != nil && err == nil:
		result.AddError(fmt.Sprintf("flow[%d]: expected error %s, step succeeded", i, expect.Error))
	case expect != nil && errorCode(err) != expect.Error:
		result.AddError(fmt.Sprintf("flow[%d]: expected error %s, got %s (%v)", i, expect.Error, errorCode(err), err))
	}
}

// errorCode maps a step failure to the code scenarios expect.
func errorCode(err error) string {
	switch {
	case errors.Is(err, playdate.ErrNotEnoughParticipants):
		return ErrCodeNotEnoughParticipants
	case errors.Is(err, playdate.ErrNoSourceLetters):
		return ErrCodeNoSourceLetters
	case errors.Is(err, playdate.ErrInvalidChoice):
		return ErrCodeInvalidChoice
	case errors.Is(err, care.ErrReleased):
		return ErrCodeReleased
	case errors.Is(err, care.ErrNoSuchPet):
		return ErrCodeNoSuchPet
	default:
		return "error"
	}
}
