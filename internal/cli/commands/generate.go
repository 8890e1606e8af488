package commands

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/coachgen/internal/backlog"
	"github.com/leapstack-labs/coachgen/internal/cli/config"
	"github.com/leapstack-labs/coachgen/internal/cli/output"
	"github.com/leapstack-labs/coachgen/internal/tabular"
	"github.com/spf13/cobra"
)

// backlogSheet names the worksheet of .xlsx backlogs.
const backlogSheet = "Backlog"

// GenerateOptions holds options for the generate command.
type GenerateOptions struct {
	Preview bool
}

// GenerateOutput is the JSON output for the generate command.
type GenerateOutput struct {
	Output string          `json:"output"`
	Items  int             `json:"items"`
	Report *backlog.Report `json:"report,omitempty"`
	Rows   []backlog.Item  `json:"rows,omitempty"`
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <assessment> <team_scores> <output>",
		Short: "Generate a coaching backlog from team scores",
		Long: `Join team maturity scores to the assessment catalog and write one coaching
backlog item for every statement scored at or below the threshold.

Statements missing from the catalog, and symptoms without a coaching
template, are skipped silently. Use --report to see what was skipped.

The output format follows the file extension: .csv, .tsv, .xlsx or .json.`,
		Example: `  # Generate a backlog as CSV
  coachgen generate assessment.csv scores.csv backlog.csv

  # Include level-3 scores and print a run summary
  coachgen generate assessment.csv scores.csv backlog.xlsx --threshold 3 --report

  # Show the backlog in the terminal as well
  coachgen generate assessment.csv scores.csv backlog.csv --preview`,
		Aliases: []string{"gen"},
	}
	BindGenerate(cmd)
	return cmd
}

// BindGenerate adds the generate flags to cmd and makes it run the
// generate pipeline on its three positional arguments.
func BindGenerate(cmd *cobra.Command) {
	opts := &GenerateOptions{}
	cmd.Args = cobra.ExactArgs(3)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd, args, opts)
	}

	cmd.Flags().Int("threshold", config.DefaultThreshold, "Highest score that still produces a backlog item")
	cmd.Flags().Bool("report", false, "Print a summary of emitted and skipped statements")
	cmd.Flags().BoolVar(&opts.Preview, "preview", false, "Render the backlog to stdout as well")
}

func runGenerate(cmd *cobra.Command, args []string, opts *GenerateOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	cfg := cmdCtx.Cfg
	logger := cmdCtx.Logger
	r := cmdCtx.Renderer

	tblOpts, err := tableOptions(cfg)
	if err != nil {
		return err
	}
	assessmentPath, scoresPath, outPath := args[0], args[1], args[2]

	catalog, err := tabular.ReadFile(assessmentPath, tblOpts, backlog.CatalogColumns...)
	if err != nil {
		return err
	}
	scores, err := tabular.ReadFile(scoresPath, tblOpts, backlog.ScoreColumns...)
	if err != nil {
		return err
	}
	logger.Debug("inputs loaded",
		"assessment", assessmentPath,
		"statements", catalog.Len(),
		"scores", scoresPath,
		"records", scores.Len())

	items, report, err := backlog.Generate(catalog, scores, cmdCtx.Library, backlog.Options{Threshold: cfg.Threshold})
	if err != nil {
		return err
	}
	logReport(logger, report)

	tblOpts.SheetName = backlogSheet
	if err := tabular.WriteFile(outPath, backlog.Header, backlog.Rows(items), tblOpts); err != nil {
		return err
	}
	logger.Info("backlog written", "path", outPath, "items", len(items))

	if r.EffectiveMode() == output.ModeJSON {
		out := GenerateOutput{Output: outPath, Items: len(items)}
		if cfg.Report {
			out.Report = report
		}
		if opts.Preview {
			out.Rows = items
		}
		return r.JSON(out)
	}

	if opts.Preview {
		r.Table(backlog.Header, backlog.Rows(items))
		r.Println("")
	}
	if cfg.Report {
		renderReport(r, report)
	}
	r.Success(fmt.Sprintf("Backlog generated → %s", outPath))
	return nil
}

// logReport records skipped statements at debug level.
func logReport(logger *slog.Logger, report *backlog.Report) {
	for _, s := range report.UnmatchedStatements {
		logger.Debug("statement not in assessment catalog", "statement", s)
	}
	for _, s := range report.UnknownSymptoms {
		logger.Debug("no coaching template for symptom", "symptom", s)
	}
	logger.Debug("generation finished",
		"scored", report.Scored,
		"emitted", report.Emitted,
		"skipped", report.Skipped())
}

func renderReport(r *output.Renderer, report *backlog.Report) {
	r.Header(2, "Run summary")
	r.KeyValue("Scored", fmt.Sprint(report.Scored))
	r.KeyValue("Emitted", fmt.Sprint(report.Emitted))
	r.KeyValue("Above threshold", fmt.Sprint(report.AboveThreshold))
	r.KeyValue("Not in catalog", fmt.Sprint(report.Unmatched))
	r.KeyValue("No template", fmt.Sprint(report.UnknownSymptom))
	if len(report.UnmatchedStatements) > 0 {
		r.Muted("Unmatched statements: " + strings.Join(report.UnmatchedStatements, "; "))
	}
	if len(report.UnknownSymptoms) > 0 {
		r.Muted("Symptoms without a template: " + strings.Join(report.UnknownSymptoms, "; "))
	}
	r.Println("")
}
