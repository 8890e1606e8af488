// Package backlog turns a team's maturity scores into coaching backlog items.
//
// Each low-scoring statement is joined to its symptom through the assessment
// catalog, and the symptom is looked up in the coaching library. Statements
// that do not resolve are skipped; they are counted in the Report but never
// treated as errors.
package backlog

import (
	"github.com/leapstack-labs/coachgen/internal/library"
	"github.com/leapstack-labs/coachgen/internal/tabular"
)

// Input column names.
const (
	ColStatement = "Statement"
	ColSymptom   = "L1"
	ColScore     = "Score"
)

// DefaultThreshold is the highest score that still counts as low maturity.
const DefaultThreshold = 2

var (
	// CatalogColumns are required in the assessment catalog.
	CatalogColumns = []string{ColStatement, ColSymptom}
	// ScoreColumns are required in the team scores file.
	ScoreColumns = []string{ColStatement, ColScore}
	// Header is the fixed column layout of a written backlog.
	Header = []string{"Statement", "Symptom", "Root Cause", "Intervention", "Working Agreement", "Success Measures"}
)

// Item is one coaching action card.
type Item struct {
	Statement        string `json:"statement"`
	Symptom          string `json:"symptom"`
	RootCause        string `json:"root_cause"`
	Intervention     string `json:"intervention"`
	WorkingAgreement string `json:"working_agreement"`
	SuccessMeasures  string `json:"success_measures"`
	Score            int    `json:"score"`
}

func newItem(statement string, score int, tpl library.Template) Item {
	return Item{
		Statement:        statement,
		Symptom:          tpl.Symptom,
		RootCause:        tpl.Root,
		Intervention:     tpl.Intervention,
		WorkingAgreement: tpl.Agreement,
		SuccessMeasures:  tpl.Success,
		Score:            score,
	}
}

// Row returns the item's cells in Header order.
func (it Item) Row() []string {
	return []string{it.Statement, it.Symptom, it.RootCause, it.Intervention, it.WorkingAgreement, it.SuccessMeasures}
}

// Rows projects items onto Header.
func Rows(items []Item) [][]string {
	rows := make([][]string, len(items))
	for i, it := range items {
		rows[i] = it.Row()
	}
	return rows
}

// Index maps each catalog statement to the symptom of its first occurrence.
type Index struct {
	symptoms map[string]string
	first    map[string]int
}

// NewIndex indexes catalog records in order; later duplicates never
// replace an earlier statement.
func NewIndex(catalog []tabular.Record) *Index {
	idx := &Index{
		symptoms: make(map[string]string, len(catalog)),
		first:    make(map[string]int, len(catalog)),
	}
	for i, rec := range catalog {
		statement := rec[ColStatement]
		if _, seen := idx.symptoms[statement]; seen {
			continue
		}
		idx.symptoms[statement] = rec[ColSymptom]
		idx.first[statement] = i
	}
	return idx
}

// Symptom returns the symptom joined to statement.
func (idx *Index) Symptom(statement string) (string, bool) {
	s, ok := idx.symptoms[statement]
	return s, ok
}

// Len returns the number of distinct statements.
func (idx *Index) Len() int { return len(idx.symptoms) }
