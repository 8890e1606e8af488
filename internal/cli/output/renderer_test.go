package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"", ModeAuto},
		{"auto", ModeAuto},
		{"TEXT", ModeText},
		{" markdown ", ModeMarkdown},
		{"md", ModeMarkdown},
		{"json", ModeJSON},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseMode(tt.in))
		})
	}
}

func TestRenderer_EffectiveMode(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, ModeText, NewRendererWithTTY(&buf, &buf, true, ModeAuto).EffectiveMode())
	assert.Equal(t, ModeMarkdown, NewRendererWithTTY(&buf, &buf, false, ModeAuto).EffectiveMode())
	assert.Equal(t, ModeJSON, NewRendererWithTTY(&buf, &buf, true, ModeJSON).EffectiveMode())
	assert.Equal(t, ModeMarkdown, NewRenderer(&buf, &buf, ModeAuto).EffectiveMode(), "buffers are not terminals")
}

func TestRenderer_Markdown(t *testing.T) {
	var out, errOut bytes.Buffer
	r := NewRendererWithTTY(&out, &errOut, false, ModeMarkdown)

	r.Header(2, "Backlog")
	r.KeyValue("Items", "3")
	r.Warning("careful")

	assert.Equal(t, "## Backlog\n**Items:** 3\n", out.String())
	assert.Equal(t, "! careful\n", errOut.String())
}

func TestRenderer_PlainTextHasNoEscapes(t *testing.T) {
	var out bytes.Buffer
	r := NewRendererWithTTY(&out, &out, false, ModeText)

	r.Header(1, "Doctor")
	r.Success("done")
	r.StatusLine("scores.csv", "error", "(line 3)")
	r.Muted("quiet")

	assert.Equal(t, "Doctor\n✓ done\n✗ scores.csv (line 3)\nquiet\n", out.String())
	assert.NotContains(t, out.String(), "\x1b[")
}

func TestRenderer_Table(t *testing.T) {
	header := []string{"Statement", "Symptom"}
	rows := [][]string{{"We ship weekly.", "No retros."}}

	t.Run("markdown", func(t *testing.T) {
		var out bytes.Buffer
		NewRendererWithTTY(&out, &out, false, ModeMarkdown).Table(header, rows)
		assert.Contains(t, out.String(), "| Statement | Symptom |")
		assert.Contains(t, out.String(), "| We ship weekly. | No retros. |")
	})

	t.Run("text", func(t *testing.T) {
		var out bytes.Buffer
		NewRendererWithTTY(&out, &out, false, ModeText).Table(header, rows)
		assert.Contains(t, out.String(), "┌")
		assert.Contains(t, out.String(), "STATEMENT")
		assert.Contains(t, out.String(), "We ship weekly.")
	})
}

func TestRenderer_JSON(t *testing.T) {
	var out bytes.Buffer
	r := NewRendererWithTTY(&out, &out, false, ModeJSON)
	require.NoError(t, r.JSON(map[string]int{"items": 2}))
	assert.Equal(t, "{\n  \"items\": 2\n}\n", out.String())
}

func TestFormatHeader(t *testing.T) {
	assert.Equal(t, "# Title", FormatHeader(0, "Title"))
	assert.Equal(t, "### Title", FormatHeader(3, "Title"))
}
