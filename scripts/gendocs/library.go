package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/coachgen/internal/library"
)

// generateLibraryDocs writes one section per category of the bundled library.
func generateLibraryDocs(outDir string) error {
	log.Printf("Generating library docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	lib := library.Default()

	w := NewMarkdownWriter()
	w.Frontmatter("Coaching Library", "Templates bundled with coachgen")
	w.GeneratedMarker()

	w.Header(1, "Coaching Library")
	w.Paragraph(fmt.Sprintf("coachgen ships %d templates in %d categories. A catalog symptom (`L1`) must match a template's symptom exactly.", lib.Len(), len(lib.Categories())))

	for _, category := range lib.Categories() {
		w.Header(2, category)
		headers := []string{"Symptom", "Root Cause", "Intervention", "Working Agreement", "Success Measures"}
		var rows [][]string
		for _, t := range lib.InCategory(category) {
			rows = append(rows, []string{t.Symptom, t.Root, t.Intervention, t.Agreement, t.Success})
		}
		w.Table(headers, rows)
	}

	w.Header(2, "Extending")
	w.Paragraph("Add templates or replace bundled ones with a YAML file passed through `--library` or `library.paths`:")
	w.CodeBlock("yaml", `version: 1
categories:
  - name: Dependencies
    entries:
      - symptom: "Release trains derail."
        root: "No shared integration cadence."
        intervention: "Joint release planning every increment."
        agreement: "We integrate with dependent teams weekly."
        success: "Fewer late integration surprises."`)

	return os.WriteFile(filepath.Join(outDir, "library.md"), w.Bytes(), 0600)
}
