// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"
	"sigs.k8s.io/release-utils/version"

	"github.com/ianlewis/go-kanjidex"
)

const (
	// ExitCodeSuccess is successful error code.
	ExitCodeSuccess int = iota

	// ExitCodeFlagParseError is the exit code for a flag parsing error.
	ExitCodeFlagParseError

	// ExitCodeUnknownError is the exit code for an unknown error.
	ExitCodeUnknownError
)

// ErrKanjidex is a parent error for all command errors.
var ErrKanjidex = errors.New("kanjidex")

// ErrFlagParse is a flag parsing error.
var ErrFlagParse = fmt.Errorf("%w: parsing flags", ErrKanjidex)

// ErrNoData indicates that no dataset could be found.
var ErrNoData = fmt.Errorf("%w: no dataset found", ErrKanjidex)

var copyrightNames = []string{
	"2025 Ian Lewis",
}

// dataNames are the dataset file names searched for in data directories.
var dataNames = []string{
	"kanji.json",
	"kanji.json.gz",
	"kanji.json.dz",
	"kanji.yaml",
	"kanji.yml",
}

//nolint:gochecknoinits // init needed needed for global variable.
func init() {
	// Set the HelpFlag to a random name so that it isn't used. `cli` handles
	// the flag with the root command such that it takes a command name argument
	// but we handle --help ourselves so that it always prints the app help.
	//
	// This flag is hidden by the help output.
	// See: github.com/urfave/cli/issues/1809
	cli.HelpFlag = &cli.BoolFlag{
		// NOTE: Use a random name no one would guess.
		Name:               "d41d8cd98f00b204e980",
		DisableDefaultText: true,
	}
}

// check checks the error and panics if not nil.
func check(err error) {
	if err != nil {
		panic(err)
	}
}

// env is state shared by commands. It is populated before a command runs.
type env struct {
	cfg    *Config
	logger *slog.Logger
}

func newKanjidexApp() *cli.App {
	e := &env{}
	return &cli.App{
		Name:  filepath.Base(os.Args[0]),
		Usage: "Look up kanji by id, meaning or character.",
		Description: strings.Join([]string{
			"Kanji dictionary lookup written in Go.",
			"http://github.com/ianlewis/go-kanjidex",
		}, "\n"),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "data",
				Usage:   "read the dataset from `FILE`",
				Aliases: []string{"d"},
				EnvVars: []string{"KANJIDEX_DATA"},
			},
			&cli.StringFlag{
				Name:    "config",
				Usage:   "read configuration from `FILE`",
				Aliases: []string{"c"},
				EnvVars: []string{"KANJIDEX_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log at `LEVEL` (debug, info, warn, error)",
			},

			// Special flags are shown at the end.
			&cli.BoolFlag{
				Name:               "help",
				Usage:              "print this help text and exit",
				Aliases:            []string{"h"},
				DisableDefaultText: true,
			},
			&cli.BoolFlag{
				Name:               "version",
				Usage:              "print version information and exit",
				Aliases:            []string{"V"},
				DisableDefaultText: true,
			},
		},
		Copyright:       strings.Join(copyrightNames, "\n"),
		HideHelp:        true,
		HideHelpCommand: true,
		OnUsageError: func(_ *cli.Context, err error, _ bool) error {
			return fmt.Errorf("%w: %w", ErrFlagParse, err)
		},
		Before: e.before,
		Action: func(c *cli.Context) error {
			if c.Bool("version") {
				return printVersion(c)
			}

			check(cli.ShowAppHelp(c))
			return nil
		},
		Commands: []*cli.Command{
			e.queryCommand(),
			e.infoCommand(),
			e.interactiveCommand(),
		},
	}
}

// before loads the configuration and sets up logging.
func (e *env) before(c *cli.Context) error {
	path := c.String("config")
	cfg, err := LoadConfig(path, path != "")
	if err != nil {
		return err
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	e.cfg = cfg

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return fmt.Errorf("%w: invalid log level %q", ErrFlagParse, cfg.LogLevel)
	}
	e.logger = slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{
		Level: level,
	}))
	return nil
}

// open opens the dictionary named by the --data flag, the config file or
// the first dataset found in the default locations.
func (e *env) open(c *cli.Context) (*kanjidex.Dictionary, error) {
	path := c.String("data")
	if path == "" {
		path = e.cfg.Data
	}
	if path == "" {
		path = findData(dataLocations())
	}
	if path == "" {
		return nil, ErrNoData
	}

	e.logger.Debug("opening dataset", slog.String("path", path))
	d, err := kanjidex.Open(path, &kanjidex.Options{
		CacheSize: e.cfg.CacheSize,
		Logger:    e.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrKanjidex, err)
	}
	return d, nil
}

// findData returns the first dataset file found in dirs.
func findData(dirs []string) string {
	for _, dir := range dirs {
		for _, name := range dataNames {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path
			}
		}
	}
	return ""
}

func printVersion(c *cli.Context) error {
	versionInfo := version.GetVersionInfo()
	_, err := fmt.Fprintf(c.App.Writer, `%s %s
Copyright (c) %s

%s`, c.App.Name, versionInfo.GitVersion, c.App.Copyright, versionInfo.String())
	if err != nil {
		return fmt.Errorf("%w: printing version: %w", ErrKanjidex, err)
	}
	return nil
}
