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
	"bufio"
	"fmt"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-kanjidex"
	"github.com/ianlewis/go-kanjidex/render"
)

func formatNames() string {
	names := make([]string, 0, len(render.Formats))
	for _, f := range render.Formats {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

func (e *env) queryCommand() *cli.Command {
	return &cli.Command{
		Name:      "query",
		Usage:     "look up kanji matching each QUERY",
		ArgsUsage: "[QUERY...]",
		Description: strings.Join([]string{
			"Each QUERY is one of:",
			"  5 12 40     kanji with the given ids",
			"  5-10        kanji with ids in the range",
			"  water       kanji whose meaning is water",
			"  water/fire  kanji whose meaning is water or fire",
			"  ~wat        kanji with a meaning containing wat",
			"  水火        the given kanji",
			"",
			"Queries are read from standard input, one per line, if none are given.",
		}, "\n"),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Usage:   fmt.Sprintf("output `FORMAT` (%s)", formatNames()),
				Aliases: []string{"f"},
			},
		},
		Action: e.query,
	}
}

func (e *env) query(c *cli.Context) error {
	name := e.cfg.Format
	if c.IsSet("format") {
		name = c.String("format")
	}
	f, err := render.ParseFormat(name)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFlagParse, err)
	}

	d, err := e.open(c)
	if err != nil {
		return err
	}

	queries := c.Args().Slice()
	if len(queries) > 0 {
		for _, q := range queries {
			if err := e.writeResult(c, d, f, q); err != nil {
				return err
			}
		}
		return nil
	}

	s := bufio.NewScanner(c.App.Reader)
	for s.Scan() {
		if err := e.writeResult(c, d, f, s.Text()); err != nil {
			return err
		}
	}
	if err := s.Err(); err != nil {
		return fmt.Errorf("%w: reading queries: %w", ErrKanjidex, err)
	}
	return nil
}

func (e *env) writeResult(c *cli.Context, d *kanjidex.Dictionary, f render.Format, q string) error {
	r := d.Evaluate(q)
	e.logger.Debug("query",
		slog.String("query", q),
		slog.String("type", r.Query.String()),
		slog.Int("matches", len(r.Matches)),
	)
	if err := render.Write(c.App.Writer, f, r.Matches); err != nil {
		return fmt.Errorf("%w: writing results: %w", ErrKanjidex, err)
	}
	return nil
}
