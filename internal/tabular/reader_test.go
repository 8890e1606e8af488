package tabular

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"scores.csv", FormatCSV},
		{"scores.CSV", FormatCSV},
		{"scores.tsv", FormatTSV},
		{"scores.tab", FormatTSV},
		{"scores.xlsx", FormatXLSX},
		{"backlog.json", FormatJSON},
		{"scores.txt", FormatCSV},
		{"scores", FormatCSV},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatOf(tt.path))
		})
	}
}

func TestReadFile_CSV(t *testing.T) {
	path := writeTemp(t, "catalog.csv", "Statement,L1,Notes\nS1,No retros.,x\n\nS2,\"Quoted, value\",y\n")

	tbl, err := ReadFile(path, Options{}, "Statement", "L1")
	require.NoError(t, err)

	assert.Equal(t, []string{"Statement", "L1", "Notes"}, tbl.Header)
	require.Equal(t, 2, tbl.Len())
	assert.Equal(t, "S1", tbl.Records[0]["Statement"])
	assert.Equal(t, "No retros.", tbl.Records[0]["L1"])
	assert.Equal(t, "Quoted, value", tbl.Records[1]["L1"])
	assert.Equal(t, 2, tbl.Line(0))
	assert.Equal(t, 4, tbl.Line(1), "blank line is skipped but still counted")
	assert.Equal(t, 0, tbl.Line(5))
}

func TestReadFile_StripsBOM(t *testing.T) {
	path := writeTemp(t, "scores.csv", "\ufeffStatement,Score\nS1,1\n")

	tbl, err := ReadFile(path, Options{}, "Statement", "Score")
	require.NoError(t, err)
	assert.Equal(t, "Statement", tbl.Header[0])
	assert.Equal(t, "S1", tbl.Records[0]["Statement"])
}

func TestReadFile_TSVAndCustomDelimiter(t *testing.T) {
	t.Run("tsv by extension", func(t *testing.T) {
		path := writeTemp(t, "scores.tsv", "Statement\tScore\nA, B\t2\n")
		tbl, err := ReadFile(path, Options{}, "Statement", "Score")
		require.NoError(t, err)
		assert.Equal(t, "A, B", tbl.Records[0]["Statement"])
		assert.Equal(t, "2", tbl.Records[0]["Score"])
	})

	t.Run("semicolon override", func(t *testing.T) {
		path := writeTemp(t, "scores.csv", "Statement;Score\nS1;4\n")
		tbl, err := ReadFile(path, Options{Comma: ';'}, "Statement", "Score")
		require.NoError(t, err)
		assert.Equal(t, "4", tbl.Records[0]["Score"])
	})
}

func TestReadFile_ShortAndLongRows(t *testing.T) {
	path := writeTemp(t, "catalog.csv", "Statement,L1\nS1\nS2,Sym,extra\n")

	tbl, err := ReadFile(path, Options{})
	require.NoError(t, err)
	require.Equal(t, 2, tbl.Len())
	assert.Equal(t, "", tbl.Records[0]["L1"])
	assert.Equal(t, "Sym", tbl.Records[1]["L1"])
	assert.Len(t, tbl.Records[1], 2)
}

func TestReadFile_BareQuotes(t *testing.T) {
	t.Run("inside unquoted field", func(t *testing.T) {
		path := writeTemp(t, "catalog.csv", "Statement,L1\nTeam says \"done\" too early,No retros.\n")

		tbl, err := ReadFile(path, Options{}, "Statement", "L1")
		require.NoError(t, err)
		require.Equal(t, 1, tbl.Len())
		assert.Equal(t, `Team says "done" too early`, tbl.Records[0]["Statement"])
		assert.Equal(t, "No retros.", tbl.Records[0]["L1"])
		assert.Equal(t, 2, tbl.Line(0))
	})

	t.Run("stray quote inside quoted field", func(t *testing.T) {
		path := writeTemp(t, "scores.csv", "Statement,Score\n\"We \"ship\" daily\",1\nS2,2\n")

		tbl, err := ReadFile(path, Options{}, "Statement", "Score")
		require.NoError(t, err)
		require.Equal(t, 2, tbl.Len())
		assert.Equal(t, `We "ship" daily`, tbl.Records[0]["Statement"])
		assert.Equal(t, "1", tbl.Records[0]["Score"])
		assert.Equal(t, "S2", tbl.Records[1]["Statement"])
	})
}

func TestReadFile_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := ReadFile(filepath.Join(t.TempDir(), "nope.csv"), Options{}, "Statement")
		var readErr *FileReadError
		require.True(t, errors.As(err, &readErr), "got %T: %v", err, err)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("missing columns", func(t *testing.T) {
		path := writeTemp(t, "scores.csv", "Statement,Level\nS1,1\n")
		_, err := ReadFile(path, Options{}, "Statement", "Score", "Team")
		var malformed *MalformedInputError
		require.True(t, errors.As(err, &malformed), "got %T: %v", err, err)
		assert.Equal(t, []string{"Score", "Team"}, malformed.Missing)
		assert.Contains(t, err.Error(), `"Score", "Team"`)
		assert.Contains(t, err.Error(), path)
	})

	t.Run("empty file", func(t *testing.T) {
		path := writeTemp(t, "empty.csv", "")
		_, err := ReadFile(path, Options{}, "Statement")
		var malformed *MalformedInputError
		require.True(t, errors.As(err, &malformed))
		assert.Contains(t, err.Error(), "header row is required")
	})

	t.Run("json input", func(t *testing.T) {
		path := writeTemp(t, "scores.json", "[]")
		_, err := ReadFile(path, Options{})
		var readErr *FileReadError
		require.True(t, errors.As(err, &readErr))
	})

	t.Run("corrupt workbook", func(t *testing.T) {
		path := writeTemp(t, "scores.xlsx", "not a zip archive")
		_, err := ReadFile(path, Options{}, "Statement")
		var readErr *FileReadError
		require.True(t, errors.As(err, &readErr), "got %T: %v", err, err)
	})
}
