package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tidwall/gjson"

	"github.com/mcncl/jsonedit/internal/config"
	"github.com/mcncl/jsonedit/internal/editor"
	"github.com/mcncl/jsonedit/internal/errors"
	"github.com/mcncl/jsonedit/internal/form"
	"github.com/mcncl/jsonedit/internal/parser"
	"github.com/mcncl/jsonedit/internal/path"
	"github.com/mcncl/jsonedit/internal/tui"
)

// CLI defines the command-line interface
var CLI struct {
	Input    string   `help:"Path to input JSON file. If not specified, reads from stdin." short:"i" type:"path"`
	Output   string   `help:"Path to output JSON file. If not specified, writes to stdout." short:"o" type:"path"`
	Path     string   `help:"GJSON path selecting a subtree of the input to edit." short:"p"`
	Set      []string `help:"Apply a non-interactive edit, e.g. --set 'root.user.name=Ada'. Repeatable." name:"set"`
	Print    bool     `help:"Pretty-print the (edited) document and exit without opening the editor." name:"print"`
	Indent   int      `help:"Spaces per indent level in output. Overrides config." default:"-1"`
	SortKeys bool     `help:"Sort mapping keys alphabetically in output." name:"sort-keys"`
	Version  bool     `help:"Show version information." short:"v"`
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	app := kong.Must(&CLI,
		kong.Name("jsonedit"),
		kong.Description("An interactive form editor for arbitrary JSON documents"),
		kong.UsageOnError(),
	)

	if _, err := app.Parse(os.Args[1:]); err != nil {
		// Usage is already shown by kong.UsageOnError().
		os.Exit(1)
	}

	if CLI.Version {
		fmt.Printf("jsonedit version %s\n", Version)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: jsonedit --help\n")
		os.Exit(1)
	}
}

// run executes the main program logic
func run() error {
	cfg := config.Load()
	if CLI.Indent >= 0 {
		cfg.Output.Indent = CLI.Indent
	}
	if CLI.SortKeys {
		cfg.Output.SortKeys = true
	}

	doc := form.New(cfg)

	raw, haveInput, err := readInput()
	if err != nil {
		return err
	}

	if haveInput {
		if CLI.Path != "" {
			res := gjson.Get(raw, CLI.Path)
			if !res.Exists() {
				return errors.NewPathError(
					fmt.Sprintf("gjson path %q matches nothing in the input", CLI.Path),
					errors.ErrInvalidPath,
				)
			}
			raw = res.Raw
		}
		if err := doc.Load(raw); err != nil {
			return err
		}
	} else if CLI.Print || len(CLI.Set) > 0 {
		return errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	if err := applyEdits(doc); err != nil {
		return err
	}

	// Non-interactive when asked for, or when the terminal cannot host
	// the editor (piped stdin).
	if CLI.Print || (haveInput && !stdinIsTerminal()) {
		out, err := doc.Export()
		if err != nil {
			return err
		}
		return writeOutput(out)
	}

	return runEditor(doc)
}

// applyEdits applies --set flags of the form path=value. The value text
// is parsed as a JSON document first (so numbers, booleans, null, and
// quoted strings land with the right shape) and falls back to a plain
// string, which keeps `--set root.name=Ada` working without quoting.
func applyEdits(doc *form.Form) error {
	for _, edit := range CLI.Set {
		target, valText, found := strings.Cut(edit, "=")
		if !found {
			return errors.NewPathError(
				fmt.Sprintf("--set %q is missing '=value'", edit),
				errors.ErrInvalidPath,
			)
		}
		p, err := path.Parse(strings.TrimSpace(target))
		if err != nil {
			return err
		}
		leaf, err := parser.ParseString(valText)
		if err != nil {
			leaf = nil
		}
		if leaf == nil {
			doc.SetString(p, valText)
			continue
		}
		doc.SetValue(editor.Apply(doc.Value(), p, leaf))
	}
	return nil
}

// readInput reads the raw JSON text from file or piped stdin. The third
// state, no input at all, sends the user to the interactive paste view.
func readInput() (string, bool, error) {
	if CLI.Input != "" {
		data, err := os.ReadFile(CLI.Input)
		if err != nil {
			if os.IsNotExist(err) {
				return "", false, errors.NewInputError(
					fmt.Sprintf("file '%s' not found", CLI.Input),
					errors.ErrFileNotFound,
				)
			}
			return "", false, errors.NewInputError(
				fmt.Sprintf("failed to read file '%s'", CLI.Input),
				err,
			)
		}
		if len(data) == 0 {
			return "", false, errors.NewInputError(
				fmt.Sprintf("input file '%s' is empty", CLI.Input),
				errors.ErrFileEmpty,
			)
		}
		return string(data), true, nil
	}

	if stdinIsTerminal() {
		return "", false, nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", false, errors.NewInputError("failed to read from stdin", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return "", false, errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}
	return string(data), true, nil
}

func stdinIsTerminal() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

// runEditor opens the TUI and writes the edited document on exit.
func runEditor(doc *form.Form) error {
	model := tui.New(doc)
	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return errors.NewOutputError("editor failed", err)
	}

	m, ok := final.(tui.Model)
	if !ok {
		return nil
	}
	out, ok := m.Result()
	if !ok {
		// Quit from the paste view without ever loading a document.
		return nil
	}
	return writeOutput(out)
}

// writeOutput writes the serialized document to file or stdout
func writeOutput(out string) error {
	if CLI.Output != "" {
		err := os.WriteFile(CLI.Output, []byte(out+"\n"), 0644)
		if err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
		}
		fmt.Fprintf(os.Stderr, "Edited JSON written to %s\n", CLI.Output)
		return nil
	}

	_, err := fmt.Println(out)
	if err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}
