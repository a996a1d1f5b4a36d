package harness

import "github.com/roach88/littlebeepers/internal/pet"

// Trace event types.
const (
	TraceCreated   = "created"
	TraceUtterance = "utterance"
	TraceLearned   = "learned"
	TraceSpoke     = "spoke"
	TraceVisit     = "visit"
	TraceReleased  = "released"
	TraceError     = "error"
)

// TraceEvent is one observable thing that happened during a run.
type TraceEvent struct {
	Seq      int64    `json:"seq"`
	Step     int      `json:"step"`
	Type     string   `json:"type"`
	Pet      string   `json:"pet,omitempty"`
	Word     string   `json:"word,omitempty"`
	Partners []string `json:"partners,omitempty"`
	Seconds  int      `json:"seconds,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every step behaved as expected and every
	// assertion held.
	Pass bool `json:"pass"`

	// Trace lists what happened, in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains failure messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// State is the final collection.
	State []pet.Record `json:"state,omitempty"`

	seq int64
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends ev with the next sequence number.
func (r *Result) AddTrace(ev TraceEvent) {
	r.seq++
	ev.Seq = r.seq
	r.Trace = append(r.Trace, ev)
}
