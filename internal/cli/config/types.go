// Package config provides configuration management for the coachgen CLI.
//
// Values are layered with koanf: built-in defaults, then a coachgen.yaml
// file, then COACHGEN_ environment variables, then command-line flags.
package config

import "github.com/leapstack-labs/coachgen/internal/backlog"

// Config holds all CLI configuration options.
type Config struct {
	Library      LibraryConfig `koanf:"library"`
	Delimiter    string        `koanf:"delimiter"`
	Threshold    int           `koanf:"threshold"`
	Report       bool          `koanf:"report"`
	Verbose      bool          `koanf:"verbose"`
	LogLevel     string        `koanf:"log_level"`
	OutputFormat string        `koanf:"output"`

	// ProjectRoot is the directory relative library paths are resolved against.
	ProjectRoot string `koanf:"-"`
}

// LibraryConfig selects the coaching library files.
type LibraryConfig struct {
	// Paths are overlaid, in order, on top of the builtin library.
	Paths []string `koanf:"paths"`
	// SkipBuiltin drops the bundled library so only Paths are used.
	SkipBuiltin bool `koanf:"skip_builtin"`
}

// Default configuration values.
const (
	DefaultThreshold = backlog.DefaultThreshold
	DefaultLogLevel  = "warn"
	DefaultOutput    = "auto" // Auto-detect: TTY=text, non-TTY=markdown
)

// configFileNames are searched, in order, when no --config is given.
var configFileNames = []string{"coachgen.yaml", "coachgen.yml", ".coachgen.yaml"}

// Defaults returns the configuration used when nothing else is set.
func Defaults() *Config {
	return &Config{
		Threshold:    DefaultThreshold,
		LogLevel:     DefaultLogLevel,
		OutputFormat: DefaultOutput,
	}
}
