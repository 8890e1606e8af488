package commands

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/coachgen/internal/cli/output"
	"github.com/leapstack-labs/coachgen/internal/library"
	"github.com/spf13/cobra"
)

// BuildInfo is stamped into the binary with -ldflags at release time.
type BuildInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
}

// VersionOutput is the JSON shape of the version command.
type VersionOutput struct {
	BuildInfo
	Templates  int      `json:"builtin_templates"`
	Categories []string `json:"builtin_categories"`
}

// NewVersionCommand creates the version command.
func NewVersionCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Display the coachgen version, the commit and date it was built from,
and the size of the coaching library bundled into the binary.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, err := NewCommandContextWithoutLibrary(cmd)
			if err != nil {
				return err
			}
			return runVersion(cmdCtx.Renderer, info, library.Default())
		},
	}
}

func runVersion(r *output.Renderer, info BuildInfo, builtin *library.Library) error {
	out := VersionOutput{
		BuildInfo:  info,
		Templates:  builtin.Len(),
		Categories: builtin.Categories(),
	}
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(out)
	}

	r.Printf("coachgen v%s\n", info.Version)
	r.Muted("Coaching backlog generator for team maturity assessments")
	r.KeyValue("Commit", orUnknown(info.GitCommit))
	r.KeyValue("Built", orUnknown(info.BuildDate))
	r.KeyValue("Bundled library", fmt.Sprintf("%d templates in %d categories", out.Templates, len(out.Categories)))
	return nil
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "unknown"
	}
	return s
}
