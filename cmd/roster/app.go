package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/bjaus/roster"
)

const missingFilename = `no dataset file specified; provide one with --filename or -f

To get started you can:
  1. Generate a test dataset: roster generate --filename my_data.json
  2. Use your own JSON file:  roster search "John" --filename your_data.json

For help: roster help`

// app holds the state shared by every command of one invocation.
type app struct {
	stdout io.Writer
	stderr io.Writer

	filename    string
	output      string
	configPath  string
	color       string
	verbose     bool
	showVersion bool

	logger    *slog.Logger
	formatter roster.Formatter

	// Hooks replaced in tests.
	stdoutIsTerminal func() bool
	confirm          func(path string) (bool, error)
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout:           stdout,
		stderr:           stderr,
		logger:           slog.New(slog.DiscardHandler),
		stdoutIsTerminal: func() bool { return isTerminal(os.Stdout) },
		confirm:          confirmOverwrite,
	}
}

func (a *app) execute(args []string) error {
	root := a.rootCmd()
	// cobra reads os.Args when given a nil slice.
	root.SetArgs(append([]string{}, args...))
	return root.Execute()
}

// setup resolves configuration, logging, and the formatter before any
// command runs, so a bad format name fails before the dataset is touched.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	path := a.configPath
	if path == "" {
		path = os.Getenv(configEnv)
	}
	cfg, err := loadConfig(path)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if !flags.Changed("filename") && cfg.Filename != "" {
		a.filename = cfg.Filename
	}
	if !flags.Changed("output") && cfg.Output != "" {
		a.output = cfg.Output
	}
	if !flags.Changed("color") && cfg.Color != "" {
		a.color = cfg.Color
	}

	level := cfg.level()
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))

	format, err := roster.ParseFormat(a.output)
	if err != nil {
		return fmt.Errorf("%w (expected one of %s)", err, formatNames())
	}
	color, err := a.useColor(format)
	if err != nil {
		return err
	}
	a.formatter, err = roster.New(format, roster.WithColor(color))
	if err != nil {
		return err
	}
	a.logger.Debug("formatter ready", "format", format, "color", color)
	return nil
}

func (a *app) useColor(format roster.Format) (bool, error) {
	switch a.color {
	case "always":
		return format == roster.TTY, nil
	case "never":
		return false, nil
	case "auto", "":
		_, noColor := os.LookupEnv("NO_COLOR")
		return format == roster.TTY && !noColor && a.stdoutIsTerminal(), nil
	default:
		return false, fmt.Errorf("invalid --color %q (expected auto, always, or never)", a.color)
	}
}

func (a *app) dataset() (*roster.Dataset, error) {
	if a.filename == "" {
		return nil, errors.New(missingFilename)
	}
	return roster.Load(a.filename, roster.WithLogger(a.logger))
}

func (a *app) print(text string) error {
	_, err := fmt.Fprintln(a.stdout, text)
	return err
}

func formatNames() string {
	names := make([]string, 0, len(roster.Formats()))
	for _, f := range roster.Formats() {
		names = append(names, f.String())
	}
	return strings.Join(names, ", ")
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// confirmOverwrite asks on the terminal whether path may be replaced.
func confirmOverwrite(path string) (bool, error) {
	if !isTerminal(os.Stdin) {
		return false, fmt.Errorf("file %q already exists; use --force to overwrite", path)
	}
	var ok bool
	err := huh.NewConfirm().
		Title(fmt.Sprintf("File '%s' already exists. Overwrite?", path)).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return ok, err
}
