package commands

import (
	"errors"
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/coachgen/internal/backlog"
	"github.com/leapstack-labs/coachgen/internal/cli/output"
	"github.com/leapstack-labs/coachgen/internal/tabular"
	"github.com/spf13/cobra"
)

// Finding codes for inputs that cannot be loaded at all.
const (
	codeUnreadable = "unreadable-file"
	codeMalformed  = "malformed-input"
)

// DoctorOutput is the JSON output for the doctor command.
type DoctorOutput struct {
	Assessment string            `json:"assessment"`
	Scores     string            `json:"scores"`
	Statements int               `json:"catalog_statements"`
	Records    int               `json:"score_records"`
	Qualifying int               `json:"qualifying"`
	Errors     int               `json:"errors"`
	Warnings   int               `json:"warnings"`
	Findings   []backlog.Finding `json:"findings"`
}

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor <assessment> <team_scores>",
		Short: "Check the input files without writing a backlog",
		Long: `Analyze an assessment catalog and a team score file for problems that
would stop or silently thin out a generate run:

- Missing files or required columns (error)
- Scores that are not integers (error)
- Catalog statements listed twice with different symptoms (warning)
- Catalog symptoms without a coaching template (warning)
- Scored statements missing from the catalog (info)

Exits non-zero when any error is found.`,
		Example: `  # Check inputs before generating
  coachgen doctor assessment.csv scores.csv

  # Output as JSON
  coachgen doctor assessment.csv scores.csv -o json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(cmd, args)
		},
	}
	cmd.Flags().Int("threshold", 0, "Highest score counted as qualifying (default from config)")
	return cmd
}

func runDoctor(cmd *cobra.Command, args []string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	tblOpts, err := tableOptions(cmdCtx.Cfg)
	if err != nil {
		return err
	}

	out := &DoctorOutput{Assessment: args[0], Scores: args[1]}
	catalog, catErr := tabular.ReadFile(args[0], tblOpts, backlog.CatalogColumns...)
	scores, scoreErr := tabular.ReadFile(args[1], tblOpts, backlog.ScoreColumns...)
	out.Findings = append(out.Findings, readFindings(args[0], catErr)...)
	out.Findings = append(out.Findings, readFindings(args[1], scoreErr)...)

	if catErr == nil && scoreErr == nil {
		diag := backlog.Diagnose(catalog, scores, cmdCtx.Library, backlog.Options{Threshold: cmdCtx.Cfg.Threshold})
		out.Findings = append(out.Findings, diag.Findings...)
		out.Statements = diag.Statements
		out.Records = diag.Scores
		out.Qualifying = diag.Qualifying
	}
	for _, f := range out.Findings {
		switch f.Severity {
		case backlog.SeverityError:
			out.Errors++
		case backlog.SeverityWarning:
			out.Warnings++
		}
	}
	cmdCtx.Logger.Debug("doctor finished", "findings", len(out.Findings), "errors", out.Errors)

	if r.EffectiveMode() == output.ModeJSON {
		if err := r.JSON(out); err != nil {
			return err
		}
	} else {
		renderDoctor(r, out)
	}

	if out.Errors > 0 {
		return fmt.Errorf("%d blocking issue(s) found", out.Errors)
	}
	return nil
}

// readFindings converts a load failure into a finding.
func readFindings(path string, err error) []backlog.Finding {
	if err == nil {
		return nil
	}
	code := codeUnreadable
	var malformed *tabular.MalformedInputError
	if errors.As(err, &malformed) {
		code = codeMalformed
	}
	return []backlog.Finding{{
		Severity: backlog.SeverityError,
		Code:     code,
		File:     path,
		Message:  err.Error(),
	}}
}

func renderDoctor(r *output.Renderer, out *DoctorOutput) {
	markdown := r.EffectiveMode() == output.ModeMarkdown

	r.Header(1, "Input Health Report")
	r.Println("")
	r.KeyValue("Assessment", fmt.Sprintf("%s (%d statements)", out.Assessment, out.Statements))
	r.KeyValue("Scores", fmt.Sprintf("%s (%d records, %d qualifying)", out.Scores, out.Records, out.Qualifying))
	r.Println("")

	if len(out.Findings) == 0 {
		r.Success("No problems found")
		return
	}

	titleCaser := cases.Title(language.English)
	for _, sev := range []backlog.Severity{backlog.SeverityError, backlog.SeverityWarning, backlog.SeverityInfo} {
		var group []backlog.Finding
		for _, f := range out.Findings {
			if f.Severity == sev {
				group = append(group, f)
			}
		}
		if len(group) == 0 {
			continue
		}

		r.Header(2, fmt.Sprintf("%s (%d)", titleCaser.String(string(sev)), len(group)))
		for _, f := range group {
			loc := f.File
			if f.Line > 0 {
				loc = fmt.Sprintf("%s:%d", f.File, f.Line)
			}
			if markdown {
				r.Printf("- **%s** `%s` %s\n", loc, f.Code, f.Message)
				continue
			}
			r.StatusLine(loc, string(sev), f.Message)
		}
		r.Println("")
	}
}
