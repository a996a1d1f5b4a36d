package pet

import (
	"errors"
	"fmt"
)

// ErrDuplicateIdentity is returned when two records in one collection share
// the same (name, spawn_date) pair.
var ErrDuplicateIdentity = errors.New("duplicate pet identity")

// Identity is the unique key of a pet record.
type Identity struct {
	Name      string
	SpawnDate string
}

func (id Identity) String() string {
	return fmt.Sprintf("%s@%s", id.Name, id.SpawnDate)
}

// CheckIdentities reports the first identity that appears more than once.
func CheckIdentities(records []Record) error {
	seen := make(map[Identity]int, len(records))
	for i, r := range records {
		id := r.ID()
		if prev, ok := seen[id]; ok {
			return fmt.Errorf("%w: %s at positions %d and %d", ErrDuplicateIdentity, id, prev, i)
		}
		seen[id] = i
	}
	return nil
}

// Index returns the position of the record with the given identity, or -1.
func Index(records []Record, id Identity) int {
	for i, r := range records {
		if r.ID() == id {
			return i
		}
	}
	return -1
}
