package backlog

import (
	"fmt"

	"github.com/leapstack-labs/coachgen/internal/library"
	"github.com/leapstack-labs/coachgen/internal/tabular"
)

// Severity ranks a diagnostic finding.
type Severity string

// Finding severities. Only errors block generation.
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Finding codes.
const (
	CodeInvalidScore       = "invalid-score"
	CodeDuplicateStatement = "duplicate-statement"
	CodeUnknownSymptom     = "unknown-symptom"
	CodeUnmatchedStatement = "unmatched-statement"
)

// Finding is one diagnostic about the inputs.
type Finding struct {
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	File     string   `json:"file"`
	Line     int      `json:"line"`
	Message  string   `json:"message"`
}

// Diagnosis collects findings over a catalog and score file.
type Diagnosis struct {
	Findings   []Finding `json:"findings"`
	Statements int       `json:"catalog_statements"`
	Scores     int       `json:"scores"`
	Qualifying int       `json:"qualifying"`
}

// Count returns the number of findings with severity sev.
func (d *Diagnosis) Count(sev Severity) int {
	n := 0
	for _, f := range d.Findings {
		if f.Severity == sev {
			n++
		}
	}
	return n
}

// HasErrors reports whether generation would fail on these inputs.
func (d *Diagnosis) HasErrors() bool { return d.Count(SeverityError) > 0 }

func (d *Diagnosis) add(sev Severity, code, file string, line int, format string, args ...any) {
	d.Findings = append(d.Findings, Finding{
		Severity: sev,
		Code:     code,
		File:     file,
		Line:     line,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Diagnose inspects the inputs without producing a backlog. Unlike Generate
// it keeps going past invalid scores so every problem is reported at once.
func Diagnose(catalog, scores *tabular.Table, lib *library.Library, opts Options) *Diagnosis {
	idx := NewIndex(catalog.Records)
	d := &Diagnosis{Statements: idx.Len(), Scores: scores.Len()}

	seenSymptom := make(map[string]bool)
	for i, rec := range catalog.Records {
		statement, symptom := rec[ColStatement], rec[ColSymptom]

		if first := idx.first[statement]; first != i {
			if kept, _ := idx.Symptom(statement); kept != symptom {
				d.add(SeverityWarning, CodeDuplicateStatement, catalog.Path, catalog.Line(i),
					"statement %q repeats line %d with symptom %q; the first occurrence (%q) is used",
					statement, catalog.Line(first), symptom, kept)
			}
			// The index never reads this row's symptom.
			continue
		}

		if seenSymptom[symptom] {
			continue
		}
		seenSymptom[symptom] = true
		if _, ok := lib.Lookup(symptom); !ok {
			d.add(SeverityWarning, CodeUnknownSymptom, catalog.Path, catalog.Line(i),
				"symptom %q has no coaching library entry; its statements never reach the backlog", symptom)
		}
	}

	m := NewMatcher(idx, lib, opts)
	for i, rec := range scores.Records {
		statement := rec[ColStatement]
		score, err := ParseScore(rec[ColScore])
		if err != nil {
			d.add(SeverityError, CodeInvalidScore, scores.Path, scores.Line(i),
				"invalid score %q for statement %q: must be an integer", rec[ColScore], statement)
			continue
		}
		switch _, _, outcome := m.Match(statement, score); outcome {
		case Emitted:
			d.Qualifying++
		case Unmatched:
			d.add(SeverityInfo, CodeUnmatchedStatement, scores.Path, scores.Line(i),
				"statement %q scored %d but is not in the catalog", statement, score)
		}
	}
	return d
}
