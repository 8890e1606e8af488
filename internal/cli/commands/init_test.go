package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/coachgen/internal/cli/config"
	"github.com/leapstack-labs/coachgen/internal/library"
)

func TestNewInitCommand(t *testing.T) {
	tests := []struct {
		name      string
		setupDir  func(t *testing.T, dir string) // setup before running
		args      []string
		wantErr   bool
		wantFiles []string
	}{
		{
			name:      "init empty directory",
			args:      []string{},
			wantFiles: []string{"coachgen.yaml", "library/team.yaml"},
		},
		{
			name:      "init example",
			args:      []string{"--example"},
			wantFiles: []string{"coachgen.yaml", "library/team.yaml", "data/assessment.csv", "data/scores.csv", ".gitignore"},
		},
		{
			name:      "init subdirectory",
			args:      []string{"team-a"},
			wantFiles: []string{"team-a/coachgen.yaml", "team-a/library/team.yaml"},
		},
		{
			name: "init existing config without force",
			setupDir: func(_ *testing.T, dir string) {
				_ = os.WriteFile(filepath.Join(dir, "coachgen.yaml"), []byte("existing"), 0o600)
			},
			args:    []string{},
			wantErr: true,
		},
		{
			name: "init existing config with force",
			setupDir: func(_ *testing.T, dir string) {
				_ = os.WriteFile(filepath.Join(dir, "coachgen.yaml"), []byte("existing"), 0o600)
			},
			args:      []string{"--force"},
			wantFiles: []string{"coachgen.yaml", "library/team.yaml"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			t.Chdir(tmpDir)

			if tt.setupDir != nil {
				tt.setupDir(t, tmpDir)
			}

			cmd := NewInitCommand()
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(buf)
			cmd.SetArgs(tt.args)

			err := cmd.Execute()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, buf.String(), "coachgen workspace initialized!")

			for _, f := range tt.wantFiles {
				_, err := os.Stat(filepath.Join(tmpDir, filepath.FromSlash(f)))
				assert.NoError(t, err, "expected file %q to exist", f)
			}
		})
	}
}

func TestInitCommandMetadata(t *testing.T) {
	cmd := NewInitCommand()

	assert.Equal(t, "init [directory]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotNil(t, cmd.Flags().Lookup("force"), "--force flag should exist")
	assert.NotNil(t, cmd.Flags().Lookup("example"), "--example flag should exist")
}

func TestInitCreatesLoadableWorkspace(t *testing.T) {
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)

	cmd := NewInitCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())

	config.ResetConfig()
	t.Cleanup(config.ResetConfig)
	cfg, err := config.LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Threshold)
	require.Len(t, cfg.Library.Paths, 1)
	assert.Equal(t, "team.yaml", filepath.Base(cfg.Library.Paths[0]))

	lib, err := library.Load(cfg.Library.Paths, cfg.Library.SkipBuiltin)
	require.NoError(t, err)
	assert.Equal(t, library.Default().Len()+1, lib.Len())
	_, ok := lib.Lookup("Release trains derail.")
	assert.True(t, ok)
}

func TestGroupTemplateFiles(t *testing.T) {
	groups := groupTemplateFiles([]string{"coachgen.yaml", ".gitignore", "library/team.yaml", "data/scores.csv"})

	assert.Equal(t, []string{"coachgen.yaml", ".gitignore"}, groups["config"])
	assert.Equal(t, []string{"library/team.yaml"}, groups["library"])
	assert.Equal(t, []string{"data/scores.csv"}, groups["data"])
}

func TestRenameSpecialFiles(t *testing.T) {
	assert.Equal(t, ".gitignore", renameSpecialFiles("gitignore"))
	assert.Equal(t, "data/.gitignore", renameSpecialFiles("data/gitignore"))
	assert.Equal(t, "library/team.yaml", renameSpecialFiles("library/team.yaml"))
}
