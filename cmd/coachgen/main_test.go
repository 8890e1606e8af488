// Package main provides tests for the coachgen CLI.
package main

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/coachgen/internal/cli"
	"github.com/leapstack-labs/coachgen/internal/cli/config"
)

func testdataDir(t *testing.T) string {
	t.Helper()
	// Get the absolute path to testdata directory
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	return filepath.Join(wd, "..", "..", "testdata")
}

// run executes the root command with args from a scratch directory.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func readBacklog(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestGenerateFromRoot(t *testing.T) {
	td := testdataDir(t)
	t.Chdir(t.TempDir())

	out, err := run(t, filepath.Join(td, "assessment.csv"), filepath.Join(td, "scores.csv"), "backlog.csv")
	require.NoError(t, err)
	assert.Contains(t, out, "Backlog generated → backlog.csv")

	rows := readBacklog(t, "backlog.csv")
	require.Len(t, rows, 5)
	assert.Equal(t, []string{"Statement", "Symptom", "Root Cause", "Intervention", "Working Agreement", "Success Measures"}, rows[0])

	var statements []string
	for _, row := range rows[1:] {
		statements = append(statements, row[0])
	}
	assert.Equal(t, []string{
		"Our backlog items describe value.",
		"We raise problems early.",
		"Our retrospectives lead to change.",
		"We release with one click.",
	}, statements)
	assert.Equal(t, []string{
		"Our retrospectives lead to change.",
		"No retros.",
		"Fear or cynicism.",
		"Introduce 10-minute rapid retros.",
		"We inspect and adapt every sprint.",
		"More improvements; deeper trust.",
	}, rows[3])
}

func TestGenerateCommandWithLibraryOverlay(t *testing.T) {
	td := testdataDir(t)
	t.Chdir(t.TempDir())

	_, err := run(t, "generate",
		filepath.Join(td, "assessment.csv"), filepath.Join(td, "scores.csv"), "backlog.csv",
		"--library", filepath.Join(td, "team_library.yaml"))
	require.NoError(t, err)

	rows := readBacklog(t, "backlog.csv")
	require.Len(t, rows, 6)
	assert.Equal(t, "Teams coordinate releases.", rows[5][0])
	assert.Equal(t, "Joint release planning every increment.", rows[5][3])
}

func TestGenerateInvalidScoreLeavesExistingOutput(t *testing.T) {
	td := testdataDir(t)
	dir := t.TempDir()
	t.Chdir(dir)

	scores := filepath.Join(dir, "scores.csv")
	require.NoError(t, os.WriteFile(scores, []byte("Statement,Score\nWe raise problems early.,N/A\n"), 0o600))
	require.NoError(t, os.WriteFile("backlog.csv", []byte("previous\n"), 0o600))

	_, err := run(t, filepath.Join(td, "assessment.csv"), scores, "backlog.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid score "N/A"`)

	data, err := os.ReadFile("backlog.csv")
	require.NoError(t, err)
	assert.Equal(t, "previous\n", string(data))
}

func TestGenerateRequiresThreeArgs(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := run(t, "only-one.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 3 arg(s)")
}

func TestVersionCommand(t *testing.T) {
	t.Chdir(t.TempDir())

	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "coachgen v"+cli.Version)
}

func TestHelpCommand(t *testing.T) {
	out, err := run(t, "--help")
	require.NoError(t, err)

	for _, expected := range []string{"generate", "library", "doctor", "version", "completion", "--no-builtin-library"} {
		assert.Contains(t, out, expected)
	}
}

func TestDoctorCommand(t *testing.T) {
	td := testdataDir(t)
	t.Chdir(t.TempDir())

	out, err := run(t, "doctor", filepath.Join(td, "assessment.csv"), filepath.Join(td, "scores.csv"), "-o", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "## Warning (1)")
	assert.Contains(t, out, "Release trains derail.")
	assert.Contains(t, out, "We celebrate wins.")
}

func TestMarkdownAlias(t *testing.T) {
	t.Chdir(t.TempDir())

	out, err := run(t, "library", "-o", "md", "--category", "Leadership")
	require.NoError(t, err)
	assert.Contains(t, out, "# Leadership (")
	assert.Contains(t, out, "| Category |")
}

func TestLibraryCommandJSON(t *testing.T) {
	t.Chdir(t.TempDir())

	out, err := run(t, "library", "-o", "json", "--category", "Leadership")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "{"), "json output only, got: %s", out)
	assert.Contains(t, out, `"symptom": "Leaders act waterfall."`)
}

func TestCompletionCommand(t *testing.T) {
	shells := []string{"bash", "zsh", "fish", "powershell"}

	for _, shell := range shells {
		t.Run(shell, func(t *testing.T) {
			out, err := run(t, "completion", shell)
			require.NoError(t, err)
			assert.Contains(t, out, "coachgen")
		})
	}
}

func TestUnknownFlag(t *testing.T) {
	_, err := run(t, "generate", "--no-such-flag")
	assert.Error(t, err)
}

func TestMain(m *testing.M) {
	os.Exit(m.Run())
}
