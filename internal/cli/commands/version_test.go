package commands

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clitestutil "github.com/leapstack-labs/coachgen/internal/cli/testutil"
	"github.com/leapstack-labs/coachgen/internal/library"
)

func TestNewVersionCommand(t *testing.T) {
	cmd := NewVersionCommand(BuildInfo{Version: "test"})

	assert.Equal(t, "version", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.Error(t, cmd.Args(cmd, []string{"extra"}))
}

func TestVersionCommand(t *testing.T) {
	tests := []struct {
		name    string
		info    BuildInfo
		wantOut []string
	}{
		{
			name:    "release build",
			info:    BuildInfo{Version: "1.2.3", GitCommit: "4f2a9c1", BuildDate: "2026-10-01"},
			wantOut: []string{"coachgen v1.2.3", "**Commit:** 4f2a9c1", "**Built:** 2026-10-01"},
		},
		{
			name:    "local build",
			info:    BuildInfo{Version: "dev"},
			wantOut: []string{"coachgen vdev", "**Commit:** unknown", "**Built:** unknown"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, t.TempDir(), NewVersionCommand(tt.info))
			require.NoError(t, err)
			for _, want := range tt.wantOut {
				assert.Contains(t, out, want)
			}
			assert.Contains(t, out, "45 templates in 9 categories")
		})
	}
}

func TestVersionCommand_JSON(t *testing.T) {
	t.Setenv("COACHGEN_OUTPUT", "json")
	info := BuildInfo{Version: "1.2.3", GitCommit: "4f2a9c1", BuildDate: "2026-10-01"}

	out, err := execute(t, t.TempDir(), NewVersionCommand(info))
	require.NoError(t, err)

	var got VersionOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, info, got.BuildInfo)
	assert.Equal(t, library.Default().Len(), got.Templates)
	assert.Equal(t, library.Default().Categories(), got.Categories)
}

func TestRunVersion_Text(t *testing.T) {
	r := clitestutil.NewTestRendererText()

	require.NoError(t, runVersion(r.Renderer, BuildInfo{Version: "0.1.0"}, library.Default()))

	out := r.Output()
	assert.Contains(t, out, "coachgen v0.1.0")
	assert.Contains(t, out, "Bundled library: 45 templates in 9 categories")
	clitestutil.AssertNoANSI(t, out)
}
