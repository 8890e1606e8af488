package backlog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/leapstack-labs/coachgen/internal/library"
	"github.com/leapstack-labs/coachgen/internal/tabular"
)

// InvalidScoreError reports a Score cell that is not an integer.
type InvalidScoreError struct {
	Path      string
	Line      int
	Statement string
	Value     string
	Err       error
}

func (e *InvalidScoreError) Error() string {
	return fmt.Sprintf("%s:%d: invalid score %q for statement %q: must be an integer",
		e.Path, e.Line, e.Value, e.Statement)
}

func (e *InvalidScoreError) Unwrap() error { return e.Err }

// ParseScore parses a maturity score, tolerating surrounding whitespace.
func ParseScore(raw string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(raw))
}

// Outcome classifies what happened to one score record.
type Outcome int

// Outcomes of Matcher.Match.
const (
	Emitted Outcome = iota
	AboveThreshold
	Unmatched
	UnknownSymptom
)

func (o Outcome) String() string {
	switch o {
	case Emitted:
		return "emitted"
	case AboveThreshold:
		return "above_threshold"
	case Unmatched:
		return "unmatched"
	case UnknownSymptom:
		return "unknown_symptom"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Options tunes generation.
type Options struct {
	// Threshold is the highest score that produces an item.
	// Values <= 0 select DefaultThreshold.
	Threshold int
}

func (o Options) threshold() int {
	if o.Threshold <= 0 {
		return DefaultThreshold
	}
	return o.Threshold
}

// Matcher resolves single statements against a catalog index and library.
type Matcher struct {
	index     *Index
	lib       *library.Library
	threshold int
}

// NewMatcher creates a Matcher.
func NewMatcher(index *Index, lib *library.Library, opts Options) *Matcher {
	return &Matcher{index: index, lib: lib, threshold: opts.threshold()}
}

// Match returns the item for a scored statement, or the reason none exists.
// The symptom is returned whenever the statement joined the catalog.
func (m *Matcher) Match(statement string, score int) (Item, string, Outcome) {
	if score > m.threshold {
		return Item{}, "", AboveThreshold
	}
	symptom, ok := m.index.Symptom(statement)
	if !ok {
		return Item{}, "", Unmatched
	}
	tpl, ok := m.lib.Lookup(symptom)
	if !ok {
		return Item{}, symptom, UnknownSymptom
	}
	return newItem(statement, score, tpl), symptom, Emitted
}

// Report summarises a generation run.
type Report struct {
	Scored         int `json:"scored"`
	AboveThreshold int `json:"above_threshold"`
	Unmatched      int `json:"unmatched"`
	UnknownSymptom int `json:"unknown_symptom"`
	Emitted        int `json:"emitted"`

	// UnmatchedStatements lists low-scoring statements absent from the catalog.
	UnmatchedStatements []string `json:"unmatched_statements,omitempty"`
	// UnknownSymptoms lists joined symptoms without a library entry.
	UnknownSymptoms []string `json:"unknown_symptoms,omitempty"`
}

// Skipped returns the number of score records that produced no item.
func (r *Report) Skipped() int {
	return r.AboveThreshold + r.Unmatched + r.UnknownSymptom
}

// Generate builds the backlog for scores, preserving their order.
// The first invalid score aborts the run with an *InvalidScoreError.
func Generate(catalog, scores *tabular.Table, lib *library.Library, opts Options) ([]Item, *Report, error) {
	m := NewMatcher(NewIndex(catalog.Records), lib, opts)
	report := &Report{}
	seenStatement := make(map[string]bool)
	seenSymptom := make(map[string]bool)

	var items []Item
	for i, rec := range scores.Records {
		statement := rec[ColStatement]
		score, err := ParseScore(rec[ColScore])
		if err != nil {
			return nil, nil, &InvalidScoreError{
				Path:      scores.Path,
				Line:      scores.Line(i),
				Statement: statement,
				Value:     rec[ColScore],
				Err:       err,
			}
		}
		report.Scored++

		item, symptom, outcome := m.Match(statement, score)
		switch outcome {
		case AboveThreshold:
			report.AboveThreshold++
		case Unmatched:
			report.Unmatched++
			if !seenStatement[statement] {
				seenStatement[statement] = true
				report.UnmatchedStatements = append(report.UnmatchedStatements, statement)
			}
		case UnknownSymptom:
			report.UnknownSymptom++
			if !seenSymptom[symptom] {
				seenSymptom[symptom] = true
				report.UnknownSymptoms = append(report.UnknownSymptoms, symptom)
			}
		case Emitted:
			report.Emitted++
			items = append(items, item)
		}
	}
	return items, report, nil
}
