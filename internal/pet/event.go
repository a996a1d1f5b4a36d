package pet

// EventKind distinguishes history events. Visit events carry no kind on disk.
type EventKind string

const (
	KindVisit    EventKind = ""
	KindPlaydate EventKind = "playdate"
)

// Event is one entry of a pet's append-only history.
type Event struct {
	Timestamp       string    `json:"timestamp"`
	DurationSeconds int       `json:"duration_seconds"`
	Kind            EventKind `json:"event,omitempty"`
	Partners        []string  `json:"partners,omitempty"`
}

// IsPlaydate reports whether the event records a playdate.
func (e Event) IsPlaydate() bool {
	return e.Kind == KindPlaydate
}
