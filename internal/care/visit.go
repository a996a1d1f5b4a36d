package care

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/roach88/littlebeepers/internal/interaction"
	"github.com/roach88/littlebeepers/internal/pet"
)

// Silent is what a pet with no words says.
const Silent = "[silent]"

// Visit is one solo session with a pet.
type Visit struct {
	keeper  *Keeper
	rec     pet.Record
	started time.Time
	closed  bool
}

// Pet returns a copy of the visited record as it currently stands.
func (v *Visit) Pet() pet.Record {
	return v.rec.Clone()
}

// Details renders the record as indented JSON in its stored layout.
func (v *Visit) Details() (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v.rec); err != nil {
		return "", fmt.Errorf("render %s: %w", v.rec.Name, err)
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// Speak picks a known word at random and voices it. A pet with no words
// answers Silent and ok is false.
func (v *Visit) Speak() (word string, ok bool) {
	word, ok = v.rec.Vocabulary.Random(v.keeper.rng)
	if !ok {
		return Silent, false
	}
	v.keeper.speak(word)
	return word, true
}

// Release frees the pet and persists it at once. No visit event is logged
// and the visit is closed. found is false when the pet is no longer in the
// store.
func (v *Visit) Release(ctx context.Context) (found bool, err error) {
	if v.closed {
		return false, ErrVisitClosed
	}
	rec := v.rec.Clone()
	rec.Release()
	found, err = v.keeper.store.UpdateOne(ctx, rec)
	if err != nil {
		return false, fmt.Errorf("release %s: %w", v.rec.Name, err)
	}
	v.rec, v.closed = rec, true
	v.keeper.logger.Info("pet released", "pet", v.rec.Name, "found", found)
	return found, nil
}

// End logs a visit event covering the time since the visit began and
// persists the record.
func (v *Visit) End(ctx context.Context) (ev pet.Event, found bool, err error) {
	if v.closed {
		return pet.Event{}, false, ErrVisitClosed
	}
	elapsed := v.keeper.now().Sub(v.started)
	// The open record only changes once the event is stored, so a failed
	// End can be retried without logging the visit twice.
	rec := v.rec.Clone()
	ev = interaction.NewLogger(v.keeper.now).Visit(&rec, elapsed)

	found, err = v.keeper.store.UpdateOne(ctx, rec)
	if err != nil {
		return ev, false, fmt.Errorf("end visit with %s: %w", v.rec.Name, err)
	}
	v.rec, v.closed = rec, true
	v.keeper.logger.Info("visit recorded", "pet", v.rec.Name, "duration_seconds", ev.DurationSeconds, "found", found)
	return ev, found, nil
}
