package tabular

import (
	"fmt"
	"strings"
)

// FileReadError reports an input file that is missing, unreadable, or cannot
// be parsed in its declared format.
type FileReadError struct {
	Path string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("cannot read %s: %v", e.Path, e.Err)
}

func (e *FileReadError) Unwrap() error { return e.Err }

// MalformedInputError reports an input whose header row is absent or lacks
// required columns.
type MalformedInputError struct {
	Path    string
	Header  []string
	Missing []string
	Message string
}

func (e *MalformedInputError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("%s: missing required column(s) %s (header: %s)",
			e.Path, quoteAll(e.Missing), quoteAll(e.Header))
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// FileWriteError reports an output file that could not be written.
type FileWriteError struct {
	Path string
	Err  error
}

func (e *FileWriteError) Error() string {
	return fmt.Sprintf("cannot write %s: %v", e.Path, e.Err)
}

func (e *FileWriteError) Unwrap() error { return e.Err }

func quoteAll(cols []string) string {
	if len(cols) == 0 {
		return "(none)"
	}
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = fmt.Sprintf("%q", c)
	}
	return strings.Join(quoted, ", ")
}
