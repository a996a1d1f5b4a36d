package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/roach88/littlebeepers/internal/pet"
)

// Summary totals the whole collection.
type Summary struct {
	Total        int `json:"total"`
	Active       int `json:"active"`
	Released     int `json:"released"`
	TotalSeconds int `json:"total_seconds"`
}

// Summarize counts pets and adds up every recorded duration.
func Summarize(records []pet.Record) Summary {
	var s Summary
	for _, r := range records {
		s.Total++
		if r.Released {
			s.Released++
		} else {
			s.Active++
		}
		for _, ev := range r.History {
			s.TotalSeconds += ev.DurationSeconds
		}
	}
	return s
}

// Text renders the dashboard header.
func (s Summary) Text() string {
	var b strings.Builder
	b.WriteString("--- 🐾 Pet Collection Dashboard 🐾 ---\n")
	if s.Total == 0 {
		b.WriteString("No pets found. Create one first!\n")
		return b.String()
	}
	fmt.Fprintf(&b, "Total Pets:        %d (%d active, %d released)\n", s.Total, s.Active, s.Released)
	fmt.Fprintf(&b, "Total Time Spent:  %s\n", FormatDuration(time.Duration(s.TotalSeconds)*time.Second))
	b.WriteString(strings.Repeat("-", 38) + "\n")
	return b.String()
}
