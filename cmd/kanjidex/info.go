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
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"
)

func (e *env) infoCommand() *cli.Command {
	return &cli.Command{
		Name:   "info",
		Usage:  "print dataset statistics",
		Action: e.info,
	}
}

func (e *env) info(c *cli.Context) error {
	d, err := e.open(c)
	if err != nil {
		return err
	}

	stats := d.Index().Stats()
	idRange := "-"
	if lo, hi, ok := d.Index().IDSpan(); ok {
		idRange = fmt.Sprintf("%d-%d", lo, hi)
	}

	tbl := table.New("Name", "Value").
		WithWriter(c.App.Writer).
		WithWidthFunc(lipgloss.Width)
	tbl.AddRow("Entries", stats.Entries)
	tbl.AddRow("Phrases", stats.Phrases)
	tbl.AddRow("Ids", idRange)
	tbl.AddRow("Invalid ids", stats.InvalidIDs)
	tbl.AddRow("Duplicate ids", stats.DuplicateIDs)
	tbl.Print()

	return nil
}
