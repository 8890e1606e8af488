package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/coachgen/internal/cli/config"
)

// ConfigField describes one coachgen.yaml key.
type ConfigField struct {
	Key         string
	Type        string
	Default     string
	Description string
}

// EnvVar returns the environment variable that sets the field.
func (f ConfigField) EnvVar() string {
	return "COACHGEN_" + strings.ToUpper(strings.ReplaceAll(f.Key, ".", "__"))
}

// configSchema lists the keys of internal/cli/config.Config.
func configSchema() []ConfigField {
	def := config.Defaults()
	return []ConfigField{
		{Key: "threshold", Type: "int", Default: fmt.Sprint(def.Threshold), Description: "Highest score that still produces a backlog item"},
		{Key: "delimiter", Type: "string", Description: "Field delimiter for delimited files; `tab` for tabs, empty to pick from the extension"},
		{Key: "library.paths", Type: "list", Description: "Library YAML files overlaid on the bundled library, relative to the config file"},
		{Key: "library.skip_builtin", Type: "bool", Default: "false", Description: "Drop the bundled library"},
		{Key: "report", Type: "bool", Default: "false", Description: "Print a summary of emitted and skipped statements"},
		{Key: "output", Type: "string", Default: def.OutputFormat, Description: "Output format: auto, text, markdown, json"},
		{Key: "log_level", Type: "string", Default: def.LogLevel, Description: "Log level: debug, info, warn, error"},
		{Key: "verbose", Type: "bool", Default: "false", Description: "Force debug logging"},
	}
}

// generateConfigDocs writes the configuration reference.
func generateConfigDocs(outDir string) error {
	log.Printf("Generating configuration docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	w := NewMarkdownWriter()
	w.Frontmatter("Configuration", "coachgen.yaml reference")
	w.GeneratedMarker()

	w.Header(1, "Configuration")
	w.Paragraph("coachgen looks for `coachgen.yaml`, `coachgen.yml` or `.coachgen.yaml` in the working directory and its parents, or reads the file given with `--config`.")

	headers := []string{"Key", "Type", "Default", "Environment", "Description"}
	var rows [][]string
	for _, f := range configSchema() {
		def := f.Default
		if def != "" {
			def = InlineCode(def)
		}
		rows = append(rows, []string{InlineCode(f.Key), f.Type, def, InlineCode(f.EnvVar()), f.Description})
	}
	w.Table(headers, rows)

	w.Header(2, "Example")
	w.CodeBlock("yaml", `threshold: 2
library:
  paths:
    - library/team.yaml
output: auto
log_level: warn`)

	return os.WriteFile(filepath.Join(outDir, "configuration.md"), w.Bytes(), 0600)
}
