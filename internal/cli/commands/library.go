package commands

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/coachgen/internal/cli/output"
	"github.com/leapstack-labs/coachgen/internal/library"
	"github.com/spf13/cobra"
)

// LibraryOptions holds options for the library command.
type LibraryOptions struct {
	Category string
}

// LibraryOutput is the JSON output for the library command.
type LibraryOutput struct {
	Sources   []string           `json:"sources"`
	Templates []library.Template `json:"templates"`
}

// NewLibraryCommand creates the library command.
func NewLibraryCommand() *cobra.Command {
	opts := &LibraryOptions{}
	cmd := &cobra.Command{
		Use:   "library",
		Short: "List the coaching templates",
		Long: `List every coaching template that generate can attach to a symptom.

The bundled library is shown together with any files given through
--library or the library.paths setting. Later files replace templates
for the same symptom.

Output adapts to environment:
  - Terminal: Styled table
  - Piped/Scripted: Markdown table
  - JSON: Machine-readable format`,
		Example: `  # List all templates
  coachgen library

  # Only one category
  coachgen library --category "Flow & Delivery"

  # Include a team-specific overlay, as JSON
  coachgen library --library team.yaml -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLibrary(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Category, "category", "", "Only list templates in this category")
	_ = cmd.RegisterFlagCompletionFunc("category", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return library.Default().Categories(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runLibrary(cmd *cobra.Command, opts *LibraryOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	lib := cmdCtx.Library
	r := cmdCtx.Renderer

	templates := lib.Templates()
	title := fmt.Sprintf("Coaching library (%d templates)", len(templates))
	if opts.Category != "" {
		templates = lib.InCategory(opts.Category)
		if len(templates) == 0 {
			return fmt.Errorf("unknown category %q (available: %s)", opts.Category, strings.Join(lib.Categories(), ", "))
		}
		title = fmt.Sprintf("%s (%d templates)", templates[0].Category, len(templates))
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(LibraryOutput{Sources: lib.Sources(), Templates: templates})
	}

	r.Header(1, title)
	r.Println("")
	rows := make([][]string, len(templates))
	for i, t := range templates {
		rows[i] = []string{t.Category, t.Symptom, t.Root, t.Intervention}
	}
	r.Table([]string{"Category", "Symptom", "Root Cause", "Intervention"}, rows)
	r.Println("")
	r.Muted("Sources: " + strings.Join(lib.Sources(), ", "))
	return nil
}
