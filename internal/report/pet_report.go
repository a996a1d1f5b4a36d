package report

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/roach88/littlebeepers/internal/pet"
)

// PetReport renders a Markdown status report for rec as of now.
func PetReport(rec pet.Record, now time.Time) (string, error) {
	spawned, err := pet.ParseTimestamp(rec.SpawnDate)
	if err != nil {
		return "", fmt.Errorf("report %s: spawn date: %w", rec.Name, err)
	}

	status := "Active"
	if rec.Released {
		status = "Released"
	}

	lastInteraction := "Never"
	if n := len(rec.History); n > 0 {
		last, err := pet.ParseTimestamp(rec.History[n-1].Timestamp)
		if err != nil {
			return "", fmt.Errorf("report %s: last interaction: %w", rec.Name, err)
		}
		lastInteraction = FormatDuration(now.Sub(last)) + " ago"
	}

	var totalSeconds, playdates int
	partners := map[string]struct{}{}
	for _, ev := range rec.History {
		totalSeconds += ev.DurationSeconds
		if ev.IsPlaydate() {
			playdates++
			for _, p := range ev.Partners {
				partners[p] = struct{}{}
			}
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Status Report for %s\n", rec.Name)
	fmt.Fprintf(&b, "**Species:** %s | **Status:** %s\n", rec.Species, status)
	fmt.Fprintf(&b, "**Age:** %s\n", FormatDuration(now.Sub(spawned)))
	fmt.Fprintf(&b, "**Last Interaction:** %s\n", lastInteraction)
	fmt.Fprintf(&b, "**Total Time Spent:** %s\n", FormatDuration(time.Duration(totalSeconds)*time.Second))

	words := rec.Vocabulary.Words()
	fmt.Fprintf(&b, "\n## Vocabulary (%d words known)\n", len(words))
	if len(words) == 0 {
		b.WriteString("Words: none yet\n")
	} else {
		fmt.Fprintf(&b, "Words: `%s`\n", strings.Join(words, "`, `"))
	}

	b.WriteString("\n## Social History\n")
	fmt.Fprintf(&b, "**Playdates Attended:** %d\n", playdates)
	if len(partners) == 0 {
		b.WriteString("**Has played with:** No one yet\n")
	} else {
		names := make([]string, 0, len(partners))
		for p := range partners {
			names = append(names, p)
		}
		slices.Sort(names)
		fmt.Fprintf(&b, "**Has played with:** %s\n", strings.Join(names, ", "))
	}
	return b.String(), nil
}
