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

// Package query classifies raw search box input into a search mode.
package query

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ianlewis/go-kanjidex/index"
)

const (
	// SubstringPrefix marks a substring meaning search.
	SubstringPrefix = "~"

	// RangeSeparator separates the bounds of an id range.
	RangeSeparator = "-"
)

// Query is a classified query. It is one of [Empty], [SubstringMeaning],
// [IDRange], [ID], [Meaning] or [Kanji].
type Query interface {
	fmt.Stringer

	query()
}

// Empty is a blank query. It clears results without searching.
type Empty struct{}

// SubstringMeaning matches meaning phrases containing Term. An empty Term
// performs no search.
type SubstringMeaning struct {
	Term string
}

// IDRange matches ids from Lo to Hi inclusive.
type IDRange struct {
	Lo, Hi int
}

// ID matches a list of ids in ascending order. Duplicates are kept.
type ID struct {
	IDs []int
}

// Meaning matches meaning phrases exactly. Terms joined by "/" are
// searched separately and their results combined.
type Meaning struct {
	Term string
}

// Kanji matches each character of Text.
type Kanji struct {
	Text string
}

func (Empty) query()            {}
func (SubstringMeaning) query() {}
func (IDRange) query()          {}
func (ID) query()               {}
func (Meaning) query()          {}
func (Kanji) query()            {}

func (Empty) String() string              { return "empty" }
func (q SubstringMeaning) String() string { return fmt.Sprintf("substring(%q)", q.Term) }
func (q IDRange) String() string          { return fmt.Sprintf("range(%d-%d)", q.Lo, q.Hi) }
func (q ID) String() string               { return fmt.Sprintf("id(%v)", q.IDs) }
func (q Meaning) String() string          { return fmt.Sprintf("meaning(%q)", q.Term) }
func (q Kanji) String() string            { return fmt.Sprintf("kanji(%q)", q.Text) }

// Classify determines the search mode for raw input. The checks run in a
// fixed order: empty, substring prefix, id range, id, meaning, kanji.
// Range detection must precede id detection because "1-100" also starts
// with a number.
func Classify(raw string) Query {
	t := strings.TrimSpace(raw)
	if t == "" {
		return Empty{}
	}

	if rest, ok := strings.CutPrefix(t, SubstringPrefix); ok {
		return SubstringMeaning{Term: strings.TrimSpace(rest)}
	}

	if lo, hi, ok := parseRange(t); ok {
		return IDRange{Lo: lo, Hi: hi}
	}

	if _, ok := index.ParseInt(t); ok {
		return ID{IDs: parseIDs(t)}
	}

	if isLetter(t) {
		return Meaning{Term: t}
	}

	return Kanji{Text: t}
}

// parseRange parses "lo-hi". Input with more than one separator or
// bounds that do not parse is not a range.
func parseRange(t string) (lo, hi int, ok bool) {
	parts := strings.Split(t, RangeSeparator)
	if len(parts) != 2 {
		return 0, 0, false
	}
	lo, ok = index.ParseInt(strings.TrimSpace(parts[0]))
	if !ok {
		return 0, 0, false
	}
	hi, ok = index.ParseInt(strings.TrimSpace(parts[1]))
	if !ok || lo > hi {
		return 0, 0, false
	}
	return lo, hi, true
}

// parseIDs parses whitespace separated ids, dropping tokens that do not
// parse, and sorts them.
func parseIDs(t string) []int {
	var ids []int
	for _, tok := range strings.Fields(t) {
		if id, ok := index.ParseInt(tok); ok {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

// isLetter reports whether the first character of t has distinct upper and
// lower case forms. Full case mappings are used so that 'ß', whose upper
// case is "SS", is a letter.
func isLetter(t string) bool {
	for _, r := range t {
		c := string(r)
		return cases.Lower(language.Und).String(c) != cases.Upper(language.Und).String(c)
	}
	return false
}
