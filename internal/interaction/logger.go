// Package interaction appends history events to pet records.
//
// Logging only mutates the in-memory record. Callers persist the record
// through the store afterwards.
package interaction

import (
	"slices"
	"time"

	"github.com/roach88/littlebeepers/internal/pet"
)

// Log appends ev to the record's history.
func Log(rec *pet.Record, ev pet.Event) {
	rec.History = append(rec.History, ev)
}

// Logger stamps events with an injected clock.
type Logger struct {
	now func() time.Time
}

// NewLogger returns a Logger using now, or time.Now when now is nil.
func NewLogger(now func() time.Time) *Logger {
	if now == nil {
		now = time.Now
	}
	return &Logger{now: now}
}

// Seconds truncates an elapsed duration to whole seconds.
func Seconds(d time.Duration) int {
	if d < 0 {
		return 0
	}
	return int(d / time.Second)
}

// Visit logs a solo visit lasting elapsed.
func (l *Logger) Visit(rec *pet.Record, elapsed time.Duration) pet.Event {
	ev := pet.Event{
		Timestamp:       pet.FormatTimestamp(l.now()),
		DurationSeconds: Seconds(elapsed),
	}
	Log(rec, ev)
	return ev
}

// Playdate logs a playdate lasting elapsed with the given partner names.
func (l *Logger) Playdate(rec *pet.Record, elapsed time.Duration, partners []string) pet.Event {
	ev := pet.Event{
		Timestamp:       pet.FormatTimestamp(l.now()),
		DurationSeconds: Seconds(elapsed),
		Kind:            pet.KindPlaydate,
		Partners:        slices.Clone(partners),
	}
	Log(rec, ev)
	return ev
}
