package tabular

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// DefaultSheetName is used for .xlsx output when Options.SheetName is empty.
const DefaultSheetName = "Sheet1"

// WriteFile writes header and rows to path in the format implied by its
// extension. The file is staged next to the destination and renamed into
// place, so a failed write never leaves partial output behind.
func WriteFile(path string, header []string, rows [][]string, opts Options) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return &FileWriteError{Path: path, Err: err}
	}
	tmpPath := tmp.Name()

	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpPath)
		}
	}()

	if err := encode(tmp, FormatOf(path), header, rows, opts); err != nil {
		_ = tmp.Close()
		return &FileWriteError{Path: path, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return &FileWriteError{Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &FileWriteError{Path: path, Err: err}
	}
	if err := os.Chmod(tmpPath, outputMode(path)); err != nil {
		return &FileWriteError{Path: path, Err: err}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return &FileWriteError{Path: path, Err: err}
	}
	committed = true
	return nil
}

// outputMode keeps the permissions of a backlog being replaced.
func outputMode(path string) os.FileMode {
	if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
		return info.Mode().Perm()
	}
	return 0o644 // #nosec G302 -- backlog files are meant to be shared
}

func encode(w io.Writer, f Format, header []string, rows [][]string, opts Options) error {
	switch f {
	case FormatXLSX:
		return encodeSheet(w, header, rows, opts)
	case FormatJSON:
		return encodeJSON(w, header, rows)
	default:
		cw := csv.NewWriter(w)
		cw.Comma = opts.comma(f)
		if err := cw.Write(header); err != nil {
			return err
		}
		return cw.WriteAll(rows)
	}
}

func encodeSheet(w io.Writer, header []string, rows [][]string, opts Options) error {
	wb := excelize.NewFile()
	defer func() { _ = wb.Close() }()

	sheet := opts.SheetName
	if sheet == "" {
		sheet = DefaultSheetName
	}
	if sheet != DefaultSheetName {
		if err := wb.SetSheetName(DefaultSheetName, sheet); err != nil {
			return err
		}
	}

	if err := setRow(wb, sheet, 1, header); err != nil {
		return err
	}
	bold, err := wb.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := wb.SetRowStyle(sheet, 1, 1, bold); err != nil {
		return err
	}

	for i, row := range rows {
		if err := setRow(wb, sheet, i+2, row); err != nil {
			return err
		}
	}
	return wb.Write(w)
}

func setRow(wb *excelize.File, sheet string, n int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		return err
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return wb.SetSheetRow(sheet, cell, &cells)
}

// orderedRow marshals as a JSON object whose keys follow the header order.
type orderedRow struct {
	header []string
	values []string
}

func (r orderedRow) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range r.header {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		val := ""
		if i < len(r.values) {
			val = r.values[i]
		}
		v, err := json.Marshal(val)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func encodeJSON(w io.Writer, header []string, rows [][]string) error {
	objs := make([]orderedRow, len(rows))
	for i, row := range rows {
		objs[i] = orderedRow{header: header, values: row}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(objs); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
