package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runShell drives the interactive menu. Flags are passed on the command
// line because defining them resets the bound option fields.
func runShell(t *testing.T, opts *RootOptions, stdin string) (string, error) {
	t.Helper()
	data := opts.Data
	stdout, _, err := execute(newRootCommand(opts), stdin, "--data", data, "--mute")
	return stdout, err
}

func TestMenu_CreateThenExit(t *testing.T) {
	opts := testOptions(t, "text")

	stdout, err := runShell(t, opts, "1\nBeep\n4\n")
	require.NoError(t, err)
	assert.Contains(t, stdout, "👾 Welcome to Little Beepers!")
	assert.Contains(t, stdout, "=== Main Menu ===\n1. Create a new pet\n2. Visit an existing pet\n3. Host a playdate\n4. Exit\n")
	assert.Contains(t, stdout, "✨ Beep the Little Beeper has joined your collection!")
	assert.Contains(t, stdout, "Goodbye! Your pets will be happily entertaining themselves")

	records := loadPets(t, opts.Data)
	require.Len(t, records, 1)
	assert.Equal(t, "Beep", records[0].Name)
}

func TestMenu_InvalidChoiceThenEOF(t *testing.T) {
	opts := testOptions(t, "text")

	stdout, err := runShell(t, opts, "banana\n")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Hmm... that doesn't seem right. Please try again.")
	assert.Contains(t, stdout, "Goodbye!")
}

func TestMenu_SessionFailureReturnsToMenu(t *testing.T) {
	opts := testOptions(t, "text")

	stdout, err := runShell(t, opts, "3\n2\n4\n")
	require.NoError(t, err)
	assert.Contains(t, stdout, "You need at least 2 active (not released) pets to host a playdate!")
	assert.Contains(t, stdout, "No pets found. Create one first!")
	assert.Contains(t, stdout, "Goodbye!")
}

func TestMenu_VisitRecordsInteraction(t *testing.T) {
	opts := testOptions(t, "text")
	seedPets(t, opts.Data, newPet("Beep", 0, "adada"))

	stdout, err := runShell(t, opts, "2\n1\n4\n4\n")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Interaction of 0 seconds recorded.")
	assert.Contains(t, stdout, "Goodbye!")

	records := loadPets(t, opts.Data)
	require.Len(t, records[0].History, 1)
	assert.False(t, records[0].History[0].IsPlaydate())
}
