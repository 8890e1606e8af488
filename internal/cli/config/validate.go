package config

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"
)

var outputModes = []string{"auto", "text", "markdown", "json"}

// outputAliases are accepted in addition to outputModes.
var outputAliases = []string{"md"}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Threshold < 1 {
		return fmt.Errorf("threshold must be at least 1, got %d", c.Threshold)
	}

	if _, err := c.Comma(); err != nil {
		return err
	}

	var lvl slog.Level
	if c.LogLevel != "" {
		if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
			return fmt.Errorf("unknown log_level %q (use debug, info, warn or error)", c.LogLevel)
		}
	}

	if c.OutputFormat != "" {
		valid := false
		for _, m := range append(outputModes, outputAliases...) {
			if strings.EqualFold(c.OutputFormat, m) {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("unknown output format %q (use %s)", c.OutputFormat, strings.Join(outputModes, ", "))
		}
	}
	return nil
}

// Comma returns the configured field delimiter, or 0 to pick one from the
// file extension.
func (c *Config) Comma() (rune, error) {
	switch c.Delimiter {
	case "":
		return 0, nil
	case "tab", `\t`:
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(c.Delimiter)
	if size != len(c.Delimiter) || r == utf8.RuneError || r == '"' || r == '\r' || r == '\n' {
		return 0, fmt.Errorf("delimiter must be a single character other than quote or newline, got %q", c.Delimiter)
	}
	return r, nil
}

// SlogLevel returns the log level, forced to debug in verbose mode.
func (c *Config) SlogLevel() slog.Level {
	if c.Verbose {
		return slog.LevelDebug
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelWarn
	}
	return lvl
}
