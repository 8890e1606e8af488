package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/coachgen/internal/cli"
	"github.com/leapstack-labs/coachgen/internal/cli/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// argDoc describes one positional argument.
type argDoc struct {
	Name        string
	Description string
}

var (
	assessmentArg = argDoc{"assessment", "Assessment catalog with `Statement` and `L1` columns"}
	scoresArg     = argDoc{"team_scores", "Team scores with `Statement` and `Score` columns"}
	outputArg     = argDoc{"output", "Backlog to write; the extension selects csv, tsv, xlsx or json. Replaced atomically."}
)

// positionalArgs documents arguments by command path. Cobra only knows
// the Use line, so descriptions live here.
var positionalArgs = map[string][]argDoc{
	"coachgen":            {assessmentArg, scoresArg, outputArg},
	"coachgen generate":   {assessmentArg, scoresArg, outputArg},
	"coachgen doctor":     {assessmentArg, scoresArg},
	"coachgen init":       {{"directory", "Workspace directory, created if missing (default: current directory)"}},
	"coachgen completion": {{"shell", "One of bash, zsh, fish, powershell"}},
}

// exitCodes are shared by every command.
var exitCodes = [][]string{
	{InlineCode("0"), "Backlog written, or the command completed"},
	{InlineCode("1"), "Unreadable or malformed input, invalid score, blocking doctor finding, or a write failure. Nothing is written."},
}

// generateCLIDocs writes index.md for the root command and one page per
// visible subcommand.
func generateCLIDocs(outDir string) error {
	log.Printf("Generating CLI docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	root := cli.NewRootCmd()
	pages := map[string][]byte{"index.md": rootPage(root)}
	for _, sub := range visibleCommands(root) {
		pages[sub.Name()+".md"] = commandPage(sub)
	}

	for name, body := range pages {
		if err := os.WriteFile(filepath.Join(outDir, name), body, 0600); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		log.Printf("  Generated %s", name)
	}
	return nil
}

func visibleCommands(root *cobra.Command) []*cobra.Command {
	var cmds []*cobra.Command
	for _, c := range root.Commands() {
		if c.Hidden || !c.IsAvailableCommand() || c.Name() == "help" {
			continue
		}
		cmds = append(cmds, c)
	}
	return cmds
}

// rootPage documents coachgen itself: running it with three files is the
// generate pipeline, so the root page carries generate's arguments.
func rootPage(root *cobra.Command) []byte {
	w := NewMarkdownWriter()
	w.Frontmatter("CLI Reference", "Command-line interface reference for coachgen")
	w.GeneratedMarker()

	w.Header(1, "coachgen")
	w.Paragraph(root.Long)

	w.Header(2, "Usage")
	w.CodeBlock("bash", root.UseLine()+"\ncoachgen <command> [flags]")
	writeArgs(w, root)

	w.Header(2, "Commands")
	var rows [][]string
	for _, c := range visibleCommands(root) {
		rows = append(rows, []string{
			fmt.Sprintf("[%s](%s.md)", InlineCode(c.Name()), c.Name()),
			argsSummary(c),
			c.Short,
		})
	}
	w.Table([]string{"Command", "Arguments", "Description"}, rows)

	w.Header(2, "Flags")
	w.Paragraph("Global flags apply to every command. Flags bound to a configuration key override `coachgen.yaml` and the environment.")
	writeFlags(w, root.PersistentFlags())
	if local := root.LocalNonPersistentFlags(); local.HasAvailableFlags() {
		w.Header(3, "Generate flags")
		writeFlags(w, local)
	}

	w.Header(2, "Precedence")
	w.BulletList([]string{
		"command-line flags",
		"`COACHGEN_` environment variables, including a `.env` file in the working directory",
		"`coachgen.yaml`, found in the working directory or a parent",
		"built-in defaults",
	})

	writeExamples(w, root)

	w.Header(2, "Exit Codes")
	w.Table([]string{"Code", "Meaning"}, exitCodes)

	return w.Bytes()
}

func commandPage(cmd *cobra.Command) []byte {
	w := NewMarkdownWriter()
	w.Frontmatter(cmd.Name(), cmd.Short)
	w.GeneratedMarker()

	w.Header(1, cmd.CommandPath())
	if cmd.Long != "" {
		w.Paragraph(cmd.Long)
	} else {
		w.Paragraph(cmd.Short)
	}

	w.Header(2, "Usage")
	w.CodeBlock("bash", cmd.UseLine())
	if len(cmd.Aliases) > 0 {
		aliases := make([]string, len(cmd.Aliases))
		for i, a := range cmd.Aliases {
			aliases[i] = InlineCode(a)
		}
		w.Paragraph("Aliases: " + strings.Join(aliases, ", "))
	}
	writeArgs(w, cmd)

	if flags := cmd.LocalNonPersistentFlags(); flags.HasAvailableFlags() {
		w.Header(2, "Flags")
		writeFlags(w, flags)
	}
	if cmd.HasAvailableInheritedFlags() {
		w.Paragraph("Global flags are listed in the [CLI reference](index.md#flags).")
	}

	writeExamples(w, cmd)
	return w.Bytes()
}

func writeArgs(w *MarkdownWriter, cmd *cobra.Command) {
	args, ok := positionalArgs[cmd.CommandPath()]
	if !ok {
		return
	}
	w.Header(2, "Arguments")
	rows := make([][]string, len(args))
	for i, a := range args {
		rows[i] = []string{InlineCode(a.Name), a.Description}
	}
	w.Table([]string{"Argument", "Description"}, rows)
}

func argsSummary(cmd *cobra.Command) string {
	args := positionalArgs[cmd.CommandPath()]
	names := make([]string, len(args))
	for i, a := range args {
		names[i] = a.Name
	}
	return strings.Join(names, ", ")
}

// writeFlags renders flags with the configuration key and environment
// variable each one is bound to.
func writeFlags(w *MarkdownWriter, flags *pflag.FlagSet) {
	var rows [][]string
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		name := "--" + f.Name
		if f.Shorthand != "" {
			name = "-" + f.Shorthand + ", " + name
		}

		def := f.DefValue
		if def == "[]" {
			def = ""
		}
		if def != "" {
			def = InlineCode(def)
		}

		key, env := "", ""
		if k, ok := config.FlagKey(f.Name); ok {
			key = InlineCode(k)
			env = InlineCode(ConfigField{Key: k}.EnvVar())
		}

		rows = append(rows, []string{InlineCode(name), def, key, env, cleanDescription(f.Usage)})
	})
	w.Table([]string{"Flag", "Default", "Config key", "Environment", "Description"}, rows)
}

func writeExamples(w *MarkdownWriter, cmd *cobra.Command) {
	if cmd.Example == "" {
		return
	}
	w.Header(2, "Examples")
	w.CodeBlock("bash", cleanExample(cmd.Example))
}

// cleanExample strips the indentation cobra examples share.
func cleanExample(example string) string {
	lines := strings.Split(strings.Trim(example, "\n"), "\n")

	var indent string
	found := false
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lead := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if !found || len(lead) < len(indent) {
			indent, found = lead, true
		}
	}

	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, indent)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
