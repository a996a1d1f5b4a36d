package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/littlebeepers/internal/report"
	"github.com/roach88/littlebeepers/internal/testutil"
)

func TestReportCommand_OnePet(t *testing.T) {
	opts := testOptions(t, "text")
	seedPets(t, opts.Data,
		newPet("Beep", 0, "adada"),
		releasedPet("Gone", time.Second, "hhhhh"),
	)

	stdout, _, err := execute(NewReportCommand(opts), "", "1")
	require.NoError(t, err)
	assert.Contains(t, stdout, "--- 🐾 Pet Collection Dashboard 🐾 ---")
	assert.Contains(t, stdout, "Total Pets:        2 (1 active, 1 released)")
	assert.Contains(t, stdout, "# Status Report for Beep")
	assert.Contains(t, stdout, "Words: `adada`")
	assert.NotContains(t, stdout, "Report saved")
}

func TestReportCommand_Save(t *testing.T) {
	reportDir := filepath.Join(t.TempDir(), "reports")
	t.Setenv("BEEPERS_REPORT_DIR", reportDir)

	for _, tc := range []struct {
		name string
		args []string
		ext  string
		want string
	}{
		{"markdown", []string{"1", "--save"}, ".md", "# Status Report for Fish & Chips"},
		{"html", []string{"1", "--save", "--html"}, ".html", "<h1>Status Report for Fish &amp; Chips</h1>"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			opts := testOptions(t, "text")
			seedPets(t, opts.Data, newPet("Fish & Chips", 0, "adada"))

			stdout, _, err := execute(NewReportCommand(opts), "", tc.args...)
			require.NoError(t, err)

			path := filepath.Join(reportDir, report.FileName("Fish & Chips", testutil.Epoch, tc.ext))
			assert.Contains(t, stdout, "✅ Report saved successfully to: "+path)
			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Contains(t, string(data), tc.want)
		})
	}
}

func TestReportCommand_Dashboard(t *testing.T) {
	reportDir := filepath.Join(t.TempDir(), "reports")
	t.Setenv("BEEPERS_REPORT_DIR", reportDir)

	opts := testOptions(t, "text")
	seedPets(t, opts.Data,
		newPet("Beep", 0, "adada"),
		newPet("Boop", time.Second, "sksks"),
	)

	stdout, _, err := execute(NewReportCommand(opts), "5\n2\ny\n1\nn\nQ\n")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Select a pet for a detailed report:\n  1. Beep\n  2. Boop\n  Q. Quit\n")
	assert.Contains(t, stdout, "Invalid choice, please try again.")
	assert.Contains(t, stdout, "# Status Report for Boop")
	assert.Contains(t, stdout, "# Status Report for Beep")
	assert.Contains(t, stdout, "Returning to selection...")

	entries, err := os.ReadDir(reportDir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "only Boop's report was saved")
	assert.Equal(t, report.FileName("Boop", testutil.Epoch, ".md"), entries[0].Name())
}

func TestReportCommand_EmptyCollection(t *testing.T) {
	opts := testOptions(t, "text")

	stdout, _, err := execute(NewReportCommand(opts), "")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No pets found. Create one first!")
	assert.NotContains(t, stdout, "Select a pet")
}

func TestReportCommand_JSON(t *testing.T) {
	opts := testOptions(t, "json")
	seedPets(t, opts.Data, newPet("Beep", 0, "adada"))

	stdout, _, err := execute(NewReportCommand(opts), "", "1")
	require.NoError(t, err)

	var resp struct {
		Status string       `json:"status"`
		Data   ReportResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, report.Summary{Total: 1, Active: 1}, resp.Data.Summary)
	assert.Equal(t, "Beep", resp.Data.Pet)
	assert.Contains(t, resp.Data.Report, "## Vocabulary (1 words known)")
	assert.Empty(t, resp.Data.Path)
}
