package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/coachgen/internal/cli/output"
	"github.com/spf13/cobra"
)

// initConfigName is the configuration file written by init.
const initConfigName = "coachgen.yaml"

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool
	var example bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a coachgen workspace",
		Long: `Initialize a coachgen workspace with a configuration file and a team
coaching library that is overlaid on the bundled one.

This creates:
  - coachgen.yaml configuration file
  - library/team.yaml for team-specific coaching templates

Use --example to also create a sample assessment catalog and team scores
under data/ that can be passed straight to generate.`,
		Example: `  # Initialize in current directory
  coachgen init

  # Initialize with sample data
  coachgen init --example

  # Initialize in a new directory
  coachgen init my-team --example

  # Force overwrite existing files
  coachgen init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			// The config may not exist yet, so only an explicit flag picks the mode.
			mode := output.ModeAuto
			if f := cmd.Flags().Lookup("output"); f != nil && f.Changed {
				mode = output.Mode(f.Value.String())
			}
			r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

			templateName := "minimal"
			if example {
				templateName = "example"
			}
			return runInit(r, dir, templateName, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")
	cmd.Flags().BoolVar(&example, "example", false, "Also create a sample assessment and team scores")

	return cmd
}

func runInit(r *output.Renderer, dir, templateName string, force bool) error {
	if dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	configPath := filepath.Join(dir, initConfigName)
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("%s already exists. Use --force to overwrite", initConfigName)
	}

	files, err := copyTemplate(templateName, dir, force)
	if err != nil {
		return fmt.Errorf("failed to initialize workspace: %w", err)
	}

	groups := groupTemplateFiles(files)
	for _, group := range []string{"config", "library", "data"} {
		if len(groups[group]) == 0 {
			continue
		}
		r.Header(2, titleFor(group))
		for _, f := range groups[group] {
			r.StatusLine(f, "success", "")
		}
		r.Println("")
	}

	r.Success("coachgen workspace initialized!")
	r.Println("")
	r.Println("Next steps:")
	if templateName == "example" {
		r.Println("  coachgen doctor data/assessment.csv data/scores.csv")
		r.Println("  coachgen data/assessment.csv data/scores.csv backlog.csv --report")
	} else {
		r.Println("  1. Add team-specific templates to library/team.yaml")
		r.Println("  2. Run 'coachgen library' to review all templates")
		r.Println("  3. Run 'coachgen <assessment> <team_scores> <output>'")
	}

	return nil
}

func titleFor(group string) string {
	switch group {
	case "library":
		return "Library"
	case "data":
		return "Sample data"
	default:
		return "Configuration"
	}
}
