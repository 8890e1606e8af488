package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCLIDocs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, generateCLIDocs(dir))

	for _, name := range []string{"index", "generate", "library", "doctor", "init", "version", "completion"} {
		_, err := os.Stat(filepath.Join(dir, name+".md"))
		assert.NoError(t, err, "%s.md should be generated", name)
	}

	index, err := os.ReadFile(filepath.Join(dir, "index.md"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "coachgen <assessment> <team_scores> <output> [flags]")
	assert.Contains(t, string(index), "| `team_scores` | Team scores with `Statement` and `Score` columns |")
	assert.Contains(t, string(index), "| `--no-builtin-library` | `false` | `library.skip_builtin` | `COACHGEN_LIBRARY__SKIP_BUILTIN` |")
	assert.Contains(t, string(index), "### Generate flags", "the root command runs generate")
	assert.Contains(t, string(index), "| `--config` |  |  |  |", "--config is not a config key")
	assert.Contains(t, string(index), "[`doctor`](doctor.md) | assessment, team_scores |")

	generate, err := os.ReadFile(filepath.Join(dir, "generate.md"))
	require.NoError(t, err)
	assert.Contains(t, string(generate), "coachgen generate <assessment> <team_scores> <output>")
	assert.Contains(t, string(generate), "`--threshold`")
	assert.Contains(t, string(generate), "`gen`")
	assert.Contains(t, string(generate), "| `--threshold` | `2` | `threshold` | `COACHGEN_THRESHOLD` |")
	assert.Contains(t, string(generate), "| `--preview` | `false` |  |  |")
	assert.Contains(t, string(generate), "## Arguments")

	initPage, err := os.ReadFile(filepath.Join(dir, "init.md"))
	require.NoError(t, err)
	assert.Contains(t, string(initPage), "`directory`")
	assert.NotContains(t, string(initPage), "## Examples\n\n```bash\n  ")
}

func TestGenerateConfigAndLibraryDocs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, generateConfigDocs(dir))
	require.NoError(t, generateLibraryDocs(dir))

	cfg, err := os.ReadFile(filepath.Join(dir, "configuration.md"))
	require.NoError(t, err)
	assert.Contains(t, string(cfg), "`COACHGEN_LOG_LEVEL`")
	assert.Contains(t, string(cfg), "| `threshold` | int | `2` |")

	lib, err := os.ReadFile(filepath.Join(dir, "library.md"))
	require.NoError(t, err)
	assert.Contains(t, string(lib), "coachgen ships 45 templates in 9 categories.")
	assert.Equal(t, 9+1, strings.Count(string(lib), "\n## "), "one section per category plus extending")
	assert.Contains(t, string(lib), "| No retros. | Fear or cynicism. |")
}

func TestConfigFieldEnvVar(t *testing.T) {
	assert.Equal(t, "COACHGEN_THRESHOLD", ConfigField{Key: "threshold"}.EnvVar())
	assert.Equal(t, "COACHGEN_LIBRARY__PATHS", ConfigField{Key: "library.paths"}.EnvVar())
}

func TestCleanExample(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"shared indent", "  # Generate\n  coachgen a b c\n\n    indented", "# Generate\ncoachgen a b c\n\n  indented"},
		{"flush line first", "coachgen a b c\n  --report", "coachgen a b c\n  --report"},
		{"no indent", "coachgen version", "coachgen version"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanExample(tt.in))
		})
	}
}
