// Package library holds the coaching library: hand-authored remediation
// templates keyed by the symptom text of an assessment catalog's L1 column.
//
// A library is loaded once at process start and never mutated afterwards.
// The bundled default can be extended or overridden by YAML files so that
// operators add coaching entries without rebuilding the binary.
package library

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// SchemaVersion is the only library file version understood by this build.
const SchemaVersion = 1

// Uncategorized names the category of entries declared without one.
const Uncategorized = "Uncategorized"

// BuiltinSource is reported by Sources for the bundled library.
const BuiltinSource = "builtin"

//go:embed default_library.yaml
var defaultLibraryYAML []byte

// Template is the coaching guidance attached to one symptom.
type Template struct {
	Symptom      string `yaml:"symptom" json:"symptom"`
	Category     string `yaml:"-" json:"category"`
	Root         string `yaml:"root" json:"root"`
	Intervention string `yaml:"intervention" json:"intervention"`
	Agreement    string `yaml:"agreement" json:"agreement"`
	Success      string `yaml:"success" json:"success"`
}

// file is the on-disk layout of a library.
type file struct {
	Version    int `yaml:"version"`
	Categories []struct {
		Name    string     `yaml:"name"`
		Entries []Template `yaml:"entries"`
	} `yaml:"categories"`
}

// Library is an ordered, read-only set of templates keyed by exact symptom text.
type Library struct {
	templates []Template
	index     map[string]int
	sources   []string
}

func newLibrary() *Library {
	return &Library{index: make(map[string]int)}
}

// LoadError represents an error loading a library file.
type LoadError struct {
	File    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("library %s: %s: %v", e.File, e.Message, e.Err)
	}
	return fmt.Sprintf("library %s: %s", e.File, e.Message)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Parse decodes a library document. source names the document in errors.
func Parse(data []byte, source string) (*Library, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f file
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &LoadError{File: source, Message: "document is empty"}
		}
		return nil, &LoadError{File: source, Message: "invalid YAML", Err: err}
	}

	if f.Version != 0 && f.Version != SchemaVersion {
		return nil, &LoadError{File: source, Message: fmt.Sprintf("unsupported version %d (want %d)", f.Version, SchemaVersion)}
	}

	lib := newLibrary()
	lib.sources = []string{source}
	for _, cat := range f.Categories {
		name := strings.TrimSpace(cat.Name)
		if name == "" {
			name = Uncategorized
		}
		for _, tpl := range cat.Entries {
			if strings.TrimSpace(tpl.Symptom) == "" {
				return nil, &LoadError{File: source, Message: fmt.Sprintf("category %q has an entry without a symptom", name)}
			}
			if _, dup := lib.index[tpl.Symptom]; dup {
				return nil, &LoadError{File: source, Message: fmt.Sprintf("duplicate symptom %q", tpl.Symptom)}
			}
			tpl.Category = name
			lib.index[tpl.Symptom] = len(lib.templates)
			lib.templates = append(lib.templates, tpl)
		}
	}
	return lib, nil
}

// LoadFile reads and parses a library file.
func LoadFile(path string) (*Library, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, &LoadError{File: path, Message: "cannot read file", Err: err}
	}
	return Parse(data, path)
}

var builtin = sync.OnceValue(func() *Library {
	lib, err := Parse(defaultLibraryYAML, BuiltinSource)
	if err != nil {
		panic(fmt.Sprintf("bundled coaching library is invalid: %v", err))
	}
	return lib
})

// Default returns the bundled coaching library.
func Default() *Library {
	return builtin()
}

// Load builds the effective library: the bundled one (unless skipBuiltin)
// overlaid by each file in paths, in order.
func Load(paths []string, skipBuiltin bool) (*Library, error) {
	if skipBuiltin && len(paths) == 0 {
		return nil, errors.New("no coaching library configured: the builtin library is disabled and no library files were given")
	}

	lib := newLibrary()
	if !skipBuiltin {
		lib = Default()
	}
	for _, p := range paths {
		overlay, err := LoadFile(p)
		if err != nil {
			return nil, err
		}
		lib = lib.Merge(overlay)
	}
	return lib, nil
}

// Merge returns a new library holding l's templates overlaid by other's.
// A replaced template keeps its original position; new ones are appended.
func (l *Library) Merge(other *Library) *Library {
	merged := &Library{
		templates: make([]Template, len(l.templates), len(l.templates)+len(other.templates)),
		index:     make(map[string]int, len(l.index)+len(other.index)),
		sources:   append(append([]string(nil), l.sources...), other.sources...),
	}
	copy(merged.templates, l.templates)
	for k, v := range l.index {
		merged.index[k] = v
	}
	for _, tpl := range other.templates {
		if i, ok := merged.index[tpl.Symptom]; ok {
			merged.templates[i] = tpl
			continue
		}
		merged.index[tpl.Symptom] = len(merged.templates)
		merged.templates = append(merged.templates, tpl)
	}
	return merged
}

// Lookup returns the template for an exact symptom match.
func (l *Library) Lookup(symptom string) (Template, bool) {
	i, ok := l.index[symptom]
	if !ok {
		return Template{}, false
	}
	return l.templates[i], true
}

// Len returns the number of templates.
func (l *Library) Len() int { return len(l.templates) }

// Templates returns a copy of all templates in library order.
func (l *Library) Templates() []Template {
	return append([]Template(nil), l.templates...)
}

// Categories returns category names in order of first appearance.
func (l *Library) Categories() []string {
	seen := make(map[string]bool)
	var cats []string
	for _, tpl := range l.templates {
		if !seen[tpl.Category] {
			seen[tpl.Category] = true
			cats = append(cats, tpl.Category)
		}
	}
	return cats
}

// InCategory returns the templates of a category, matched case-insensitively.
func (l *Library) InCategory(name string) []Template {
	var out []Template
	for _, tpl := range l.templates {
		if strings.EqualFold(tpl.Category, name) {
			out = append(out, tpl)
		}
	}
	return out
}

// Sources lists where the templates came from, in load order.
func (l *Library) Sources() []string {
	return append([]string(nil), l.sources...)
}
