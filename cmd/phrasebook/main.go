// Copyright 2025 The phrasebook Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package main implements the phrasebook command line tool.
//
// phrasebook completes free form phrases. A query matches every phrase that
// contains it, case-insensitively, anywhere in the phrase; when nothing matches
// well enough, phrases with a word within a small edit distance of the query are
// returned instead. Results are ranked by how tightly and how early the query
// lines up with the phrase.
//
// # Usage
//
// Complete a query against a phrase list:
//
//	phrasebook --phrases 'phrases/**/*.txt' complete "wor"
//
// Match case exactly, or only where the query has upper case runes:
//
//	phrasebook -p commands.txt complete --strict "Open"
//	phrasebook -p commands.txt complete --smart-case "Open"
//
// Explore interactively:
//
//	phrasebook -p commands.txt repl
//
// Pack text phrase lists into one msgpack file:
//
//	phrasebook -p 'lists/*.txt' pack book.msgpack
//
// # Configuration
//
// Weights and search knobs live in a TOML file, created by "config init":
//
//	[score]
//	word_delimiters = " -/_"
//	character_adjacency_bonus = 1
//	character_adjacency_multiplier = 2
//	max_character_adjacency_bonus = 6
//	word_boundary_bonus = 5
//	word_prefix_bonus = 3
//	word_suffix_bonus = 3
//	character_offset_penalty = 1
//	max_offset_penalty = 3
//
//	[search]
//	threshold = 0
//	fuzzy = true
//	max_edit_distance = 2
//
// Values that fail to parse keep their defaults.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/BurntSushi/toml"
	"github.com/bastiangx/phrasebook/internal/cli"
	"github.com/bastiangx/phrasebook/internal/logger"
	"github.com/bastiangx/phrasebook/pkg/config"
	"github.com/bastiangx/phrasebook/pkg/dictionary"
	"github.com/bastiangx/phrasebook/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	ucli "github.com/urfave/cli/v2"
)

const (
	Version = "0.3.0"
	AppName = "phrasebook"
	gh      = "https://github.com/bastiangx/phrasebook"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ucli.VersionPrinter = printVersion

	app := &ucli.App{
		Name:                   AppName,
		Usage:                  "Fuzzy phrase completion from the command line",
		Version:                Version,
		UseShortOptionHandling: true,
		Flags: []ucli.Flag{
			&ucli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file path (default: user config dir)",
			},
			&ucli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   "Toggle debug logging",
			},
			&ucli.StringSliceFlag{
				Name:    "phrases",
				Aliases: []string{"p"},
				Usage:   "Phrase files to load, glob patterns allowed (overrides [index].phrases)",
			},
		},
		Before: func(c *ucli.Context) error {
			debug := c.Bool("debug")
			level := log.WarnLevel
			if debug {
				level = log.DebugLevel
			}
			log.SetDefault(logger.NewWithConfig(os.Stderr, AppName, level, debug, debug, log.TextFormatter))
			return nil
		},
		Commands: []*ucli.Command{
			{
				Name:      "complete",
				Usage:     "Print the suggestions for a query",
				ArgsUsage: "<query>",
				Flags: []ucli.Flag{
					&ucli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Maximum number of suggestions (0 for all, default from [cli].default_limit)",
						Value:   -1,
					},
					&ucli.BoolFlag{
						Name:  "no-fuzzy",
						Usage: "Disable the edit distance fallback",
					},
					&ucli.BoolFlag{
						Name:    "strict",
						Aliases: []string{"s"},
						Usage:   "Match case exactly",
					},
					&ucli.BoolFlag{
						Name:  "smart-case",
						Usage: "Match case exactly only for upper case query runes",
					},
					&ucli.BoolFlag{
						Name:  "scores",
						Usage: "Show scores and edit distances",
					},
				},
				Action: completeAction,
			},
			{
				Name:   "repl",
				Usage:  "Complete queries read from stdin, one per line",
				Action: replAction,
			},
			{
				Name:      "pack",
				Usage:     "Write the loaded phrases to one msgpack or text file",
				ArgsUsage: "<out.msgpack>",
				Action:    packAction,
			},
			{
				Name:  "config",
				Usage: "Manage the config file",
				Subcommands: []*ucli.Command{
					{
						Name:   "init",
						Usage:  "Create the config file with defaults if it is missing",
						Action: configInitAction,
					},
					{
						Name:   "show",
						Usage:  "Print the active config",
						Action: configShowAction,
					},
				},
			},
		},
	}

	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

// printVersion styles the version banner.
func printVersion(c *ucli.Context) {
	l := logger.New("")

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	l.SetStyles(styles)

	l.Print("")
	l.Print("[ phrasebook ] Fuzzy phrase completion")
	l.Print("", "version", c.App.Version)
	l.Print("")
	l.Print("use -h or --help to see available options")
	l.Print("Github Repo", "gh", gh)
}

func loadConfig(c *ucli.Context) (*config.Config, string, error) {
	cfg, path, err := config.LoadConfigWithPriority(c.String("config"))
	if err != nil {
		return nil, "", err
	}
	log.Debugf("Using config: %s", config.GetActiveConfigPath(path))
	return cfg, path, nil
}

// buildCompleter loads every phrase file named by --phrases, or by the
// config when the flag is absent, into a new completer.
func buildCompleter(c *ucli.Context, cfg *config.Config) (*suggest.Completer, error) {
	opts := cfg.CompleterOptions()
	opts.Logger = log.Default()

	completer, err := suggest.NewCompleter(opts)
	if err != nil {
		return nil, err
	}

	patterns := c.StringSlice("phrases")
	if len(patterns) == 0 {
		patterns = cfg.Index.Phrases
	}
	if len(patterns) == 0 {
		log.Warn("No phrase files given, running with an empty phrase book...")
	}

	for _, pattern := range patterns {
		phrases, err := dictionary.LoadGlob(c.Context, pattern)
		if err != nil {
			return nil, err
		}
		added, err := completer.InsertAll(phrases)
		if err != nil {
			log.Warnf("Skipped phrases from %s: %v", pattern, err)
		}
		log.Debugf("Indexed %d phrases from %s", added, pattern)
	}
	return completer, nil
}

func completeAction(c *ucli.Context) error {
	if c.NArg() != 1 {
		return ucli.Exit("complete takes exactly one query", 2)
	}

	cfg, _, err := loadConfig(c)
	if err != nil {
		return err
	}
	q, err := suggest.NewQuery(c.Args().First())
	if err != nil {
		return ucli.Exit(err, 2)
	}
	q.Fuzzy = !c.Bool("no-fuzzy")
	q.StrictCase = c.Bool("strict")
	q.SmartCase = c.Bool("smart-case")

	completer, err := buildCompleter(c, cfg)
	if err != nil {
		return err
	}

	q.Limit = c.Int("limit")
	if q.Limit < 0 {
		q.Limit = cfg.CLI.DefaultLimit
	}

	suggestions, err := completer.CompleteQuery(q)
	if err != nil {
		return err
	}
	cli.Render(c.App.Writer, suggestions, c.Bool("scores") || cfg.CLI.ShowScores)
	return nil
}

func replAction(c *ucli.Context) error {
	cfg, _, err := loadConfig(c)
	if err != nil {
		return err
	}
	completer, err := buildCompleter(c, cfg)
	if err != nil {
		return err
	}

	log.Debug("Input info:",
		"phrases", completer.Len(),
		"limit", cfg.CLI.DefaultLimit,
		"showScores", cfg.CLI.ShowScores)

	handler := cli.NewInputHandler(completer, os.Stdin, c.App.Writer, cfg.CLI.DefaultLimit, cfg.CLI.Prompt, cfg.CLI.ShowScores)
	return handler.Start()
}

func packAction(c *ucli.Context) error {
	if c.NArg() != 1 {
		return ucli.Exit("pack takes exactly one output path", 2)
	}

	cfg, _, err := loadConfig(c)
	if err != nil {
		return err
	}
	completer, err := buildCompleter(c, cfg)
	if err != nil {
		return err
	}

	out := c.Args().First()
	if err := dictionary.Save(out, completer.All()); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "packed %d phrases into %s\n", completer.Len(), out)
	return nil
}

func configInitAction(c *ucli.Context) error {
	path := c.String("config")
	if path == "" {
		var err error
		if path, err = config.GetDefaultConfigPath(); err != nil {
			return err
		}
	}
	if _, err := config.InitConfig(path); err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, config.GetActiveConfigPath(path))
	return nil
}

func configShowAction(c *ucli.Context) error {
	cfg, path, err := loadConfig(c)
	if err != nil {
		return err
	}
	source := "built-in defaults"
	if path != "" {
		source = config.GetActiveConfigPath(path)
	}
	fmt.Fprintf(c.App.Writer, "# %s\n", source)
	return toml.NewEncoder(c.App.Writer).Encode(cfg)
}
