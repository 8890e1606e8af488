// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/leapstack-labs/coachgen/internal/cli/output"
)

// AssessmentCSV is a catalog fixture. Its symptoms come from the bundled
// library except "Unheard of.", which has no template.
const AssessmentCSV = `Statement,L1,L2
We ship every sprint.,Bottlenecks persist.,Flow
Retros lead to change.,No retros.,Ways
We know our customers.,No validation.,Discovery
Decisions are documented.,Unheard of.,Leadership
`

// ScoresCSV scores the catalog. Two statements qualify at the default threshold.
const ScoresCSV = `Statement,Score
We ship every sprint.,4
Retros lead to change.,1
We know our customers.,2
Decisions are documented.,1
Not in the catalog.,1
`

// Project holds the paths of a temporary input set.
type Project struct {
	Dir        string
	Assessment string
	Scores     string
}

// Path joins name onto the project directory.
func (p Project) Path(name string) string {
	return filepath.Join(p.Dir, name)
}

// SetupTestProject creates a temporary directory with an assessment catalog
// and a score file.
func SetupTestProject(t *testing.T) Project {
	t.Helper()

	tmpDir := t.TempDir()
	p := Project{
		Dir:        tmpDir,
		Assessment: filepath.Join(tmpDir, "assessment.csv"),
		Scores:     filepath.Join(tmpDir, "scores.csv"),
	}
	WriteFile(t, p.Assessment, AssessmentCSV)
	WriteFile(t, p.Scores, ScoresCSV)
	return p
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// TestRenderer wraps a Renderer for testing with captured output buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a new test renderer with the specified mode and TTY state.
// Output is captured in buffers for inspection.
func NewTestRenderer(mode output.Mode, isTTY bool) *TestRenderer {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRendererWithTTY(out, errOut, isTTY, mode),
		Out:      out,
		ErrOut:   errOut,
	}
}

// NewTestRendererMarkdown creates a new test renderer in markdown mode.
func NewTestRendererMarkdown() *TestRenderer {
	return NewTestRenderer(output.ModeMarkdown, false)
}

// NewTestRendererText creates a new test renderer in text mode without a TTY.
func NewTestRendererText() *TestRenderer {
	return NewTestRenderer(output.ModeText, false)
}

// Output returns the stdout output as a string.
func (tr *TestRenderer) Output() string {
	return tr.Out.String()
}

// ErrorOutput returns the stderr output as a string.
func (tr *TestRenderer) ErrorOutput() string {
	return tr.ErrOut.String()
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}

// AssertValidMarkdown performs basic markdown validation.
// It checks for unclosed code fences and empty headers.
func AssertValidMarkdown(t *testing.T, md string) {
	t.Helper()

	if n := strings.Count(md, "```"); n%2 != 0 {
		t.Errorf("unbalanced code fences in markdown: found %d occurrences", n)
	}

	for i, line := range strings.Split(md, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") && strings.TrimLeft(trimmed, "# ") == "" {
			t.Errorf("empty header at line %d: %q", i+1, line)
		}
	}
}
