// Package tabular reads and writes the delimited and spreadsheet files that
// flow through coachgen: assessment catalogs, team scores and backlogs.
package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Format identifies the on-disk encoding of a table.
type Format string

// Supported formats.
const (
	FormatCSV  Format = "csv"
	FormatTSV  Format = "tsv"
	FormatXLSX Format = "xlsx"
	FormatJSON Format = "json"
)

// FormatOf infers the format from the file extension.
// Unknown extensions are treated as CSV.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tsv", ".tab":
		return FormatTSV
	case ".xlsx":
		return FormatXLSX
	case ".json":
		return FormatJSON
	default:
		return FormatCSV
	}
}

// Options controls how tables are read and written.
type Options struct {
	// Comma overrides the field delimiter for delimited formats.
	// Zero selects ',' for CSV and '\t' for TSV.
	Comma rune
	// SheetName names the worksheet written to .xlsx files.
	SheetName string
}

func (o Options) comma(f Format) rune {
	if o.Comma != 0 {
		return o.Comma
	}
	if f == FormatTSV {
		return '\t'
	}
	return ','
}

// Record is one data row keyed by header column.
type Record map[string]string

// Table is an ordered set of records read from a file with a header row.
type Table struct {
	Path    string
	Header  []string
	Records []Record

	lines []int
}

// Len returns the number of data records.
func (t *Table) Len() int { return len(t.Records) }

// Line returns the 1-based source line (or spreadsheet row) of record i.
func (t *Table) Line(i int) int {
	if i < 0 || i >= len(t.lines) {
		return 0
	}
	return t.lines[i]
}

// HasColumn reports whether the header contains name.
func (t *Table) HasColumn(name string) bool {
	for _, h := range t.Header {
		if h == name {
			return true
		}
	}
	return false
}

// ReadFile loads path into a Table and verifies that every required column
// is present in its header.
func ReadFile(path string, opts Options, required ...string) (*Table, error) {
	var (
		rows  [][]string
		lines []int
		err   error
	)

	switch f := FormatOf(path); f {
	case FormatXLSX:
		rows, lines, err = readSheet(path)
	case FormatJSON:
		return nil, &FileReadError{Path: path, Err: errors.New("json is an output-only format")}
	default:
		rows, lines, err = readDelimited(path, opts.comma(f))
	}
	if err != nil {
		return nil, err
	}

	return buildTable(path, rows, lines, required)
}

func readDelimited(path string, comma rune) ([][]string, []int, error) {
	f, err := os.Open(path) // #nosec G304 -- path is an operator-supplied input
	if err != nil {
		return nil, nil, &FileReadError{Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	// Spreadsheet exports often prefix a UTF-8 BOM that would otherwise
	// become part of the first header cell.
	src := transform.NewReader(f, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	r := csv.NewReader(src)
	r.Comma = comma
	r.FieldsPerRecord = -1
	// Hand-typed statements carry bare quotes, e.g. Team says "done" early.
	r.LazyQuotes = true

	var rows [][]string
	var lines []int
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, &FileReadError{Path: path, Err: err}
		}
		line, _ := r.FieldPos(0)
		rows = append(rows, rec)
		lines = append(lines, line)
	}
	return rows, lines, nil
}

func readSheet(path string) ([][]string, []int, error) {
	wb, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, &FileReadError{Path: path, Err: err}
	}
	defer func() { _ = wb.Close() }()

	sheet := wb.GetSheetName(0)
	if sheet == "" {
		return nil, nil, &FileReadError{Path: path, Err: errors.New("workbook has no sheets")}
	}
	all, err := wb.GetRows(sheet)
	if err != nil {
		return nil, nil, &FileReadError{Path: path, Err: fmt.Errorf("sheet %q: %w", sheet, err)}
	}

	var rows [][]string
	var lines []int
	for i, row := range all {
		if len(row) == 0 {
			continue
		}
		rows = append(rows, row)
		lines = append(lines, i+1)
	}
	return rows, lines, nil
}

func buildTable(path string, rows [][]string, lines []int, required []string) (*Table, error) {
	if len(rows) == 0 {
		return nil, &MalformedInputError{Path: path, Message: "file is empty; a header row is required"}
	}

	header := rows[0]
	t := &Table{Path: path, Header: header}

	var missing []string
	for _, col := range required {
		if !t.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &MalformedInputError{Path: path, Header: header, Missing: missing}
	}

	t.Records = make([]Record, 0, len(rows)-1)
	t.lines = make([]int, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rec := make(Record, len(header))
		for j, col := range header {
			if j < len(row) {
				rec[col] = row[j]
			} else {
				rec[col] = ""
			}
		}
		t.Records = append(t.Records, rec)
		t.lines = append(t.lines, lines[i+1])
	}
	return t, nil
}
