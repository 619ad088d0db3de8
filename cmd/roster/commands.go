package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/bjaus/roster"
)

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   roster.Name,
		Short: "Query a JSON dataset of client records",
		Long: `roster loads a JSON array of client records and answers three kinds of
query over it: name search, duplicate email detection, and rating filters.
Results can be rendered as tty, csv, json, xml, or yaml.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.showVersion {
				return a.print(a.formatter.Version(roster.Version))
			}
			return cmd.Help()
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	pf := root.PersistentFlags()
	pf.StringVarP(&a.filename, "filename", "f", "", "path to the dataset file (required for all commands except version and generate)")
	pf.StringVarP(&a.output, "output", "o", roster.TTY.String(), fmt.Sprintf("output format (%s)", formatNames()))
	pf.StringVar(&a.configPath, "config", "", "path to a YAML config file (default $"+configEnv+")")
	pf.StringVar(&a.color, "color", "auto", "colorize tty output (auto, always, never)")
	pf.BoolVar(&a.verbose, "verbose", false, "enable debug logging")
	root.Flags().BoolVarP(&a.showVersion, "version", "v", false, "show version number")

	root.AddCommand(
		a.searchCmd(),
		a.duplicatesCmd(),
		a.filterCmd(),
		a.generateCmd(),
		a.versionCmd(),
	)
	return root
}

func (a *app) searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "search QUERY",
		Aliases: []string{"s"},
		Short:   "Search clients whose names partially match a query",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := a.dataset()
			if err != nil {
				return err
			}
			results := ds.SearchNames(args[0])
			a.logger.Debug("search complete", "query", args[0], "matches", len(results))
			return a.print(a.formatter.SearchResults(results, args[0]))
		},
	}
}

func (a *app) duplicatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "duplicates",
		Aliases: []string{"d"},
		Short:   "Show clients that share an email address",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := a.dataset()
			if err != nil {
				return err
			}
			results := ds.DuplicateEmails()
			a.logger.Debug("duplicate scan complete", "clients", len(results))
			return a.print(a.formatter.DuplicateResults(results))
		},
	}
}

func (a *app) filterCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "filter RATING",
		Aliases: []string{"r"},
		Short:   "Show clients rated at or above a threshold",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := a.dataset()
			if err != nil {
				return err
			}
			results := ds.FilterByRatingString(args[0])
			a.logger.Debug("rating filter complete", "threshold", args[0], "matches", len(results))
			return a.print(a.formatter.FilteredResults(results))
		},
	}
}

func (a *app) generateCmd() *cobra.Command {
	var (
		size  int
		force bool
		seed  uint64
	)
	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"g"},
		Short:   "Generate a synthetic dataset",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if size <= 0 {
				return roster.ErrInvalidSize
			}
			path := a.filename
			if path == "" {
				path = fmt.Sprintf("clients_%d.json", size)
			}
			if !force {
				if err := a.checkOverwrite(path); err != nil {
					return err
				}
			}
			var opts []roster.GenerateOption
			if cmd.Flags().Changed("seed") {
				opts = append(opts, roster.WithSeed(seed))
			}
			if err := roster.GenerateFile(path, size, opts...); err != nil {
				return fmt.Errorf("failed to generate dataset: %w", err)
			}
			a.logger.Info("dataset generated", "path", path, "size", size)
			return a.print(a.formatter.GenerationResult(path, size))
		},
	}
	cmd.Flags().IntVar(&size, "size", 10_000, "number of clients to generate")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file without confirmation")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed for reproducible output")
	return cmd
}

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version number",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.print(a.formatter.Version(roster.Version))
		},
	}
}

func (a *app) checkOverwrite(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	ok, err := a.confirm(path)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("generation cancelled by user")
	}
	return nil
}
