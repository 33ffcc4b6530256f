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

// Package render resolves search results to entries and formats them for
// display.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/k3a/html2text"
	"github.com/rodaine/table"

	"github.com/ianlewis/go-kanjidex/store"
)

// ErrUnknownFormat indicates an unsupported output format.
var ErrUnknownFormat = errors.New("unknown format")

// Resolver looks up entries by character key.
type Resolver interface {
	Entry(key string) (*store.Entry, bool)
}

// Match is a search result resolved to its entry.
type Match struct {
	Key   string
	Entry *store.Entry
}

// Resolve resolves keys to their entries, preserving order. Keys with no
// entry are skipped.
func Resolve(r Resolver, keys []string) []Match {
	var matches []Match
	for _, key := range keys {
		e, ok := r.Entry(key)
		if !ok || e == nil {
			continue
		}
		matches = append(matches, Match{
			Key:   key,
			Entry: e,
		})
	}
	return matches
}

// Format is an output format.
type Format string

const (
	// TextFormat is plain text.
	TextFormat Format = "text"

	// HTMLFormat is an HTML fragment with one block per match.
	HTMLFormat Format = "html"

	// TableFormat is a text table with one row per match.
	TableFormat Format = "table"
)

// Formats lists the supported formats.
var Formats = []Format{TextFormat, HTMLFormat, TableFormat}

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Write writes matches to w in format f.
func Write(w io.Writer, f Format, matches []Match) error {
	switch f {
	case HTMLFormat:
		return HTML(w, matches)
	case TextFormat:
		return Text(w, matches)
	case TableFormat:
		return Table(w, matches)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

var blockTemplate = template.Must(template.New("block").Funcs(template.FuncMap{
	"meaning": MeaningHTML,
	"jisho":   JishoURL,
}).Parse(`{{range .}}<div class="kanji-block">` +
	`<h2>{{.Entry.Page}}</h2>` +
	`<div class="character">{{.Key}}</div>` +
	`<div><span class="id">{{.Entry.ID}}</span></div>` +
	`<div class="meaning">{{meaning .Entry.Meaning}}</div>` +
	`<div><a href="{{jisho .Key}}" target="_blank">Jisho</a></div>` +
	`</div>
{{end}}`))

// HTML writes one block per match.
func HTML(w io.Writer, matches []Match) error {
	if err := blockTemplate.Execute(w, matches); err != nil {
		return fmt.Errorf("rendering html: %w", err)
	}
	return nil
}

// MeaningHTML escapes meaning text and wraps each separator in a span.
func MeaningHTML(meaning string) template.HTML {
	phrases := strings.Split(meaning, store.Separator)
	for i, p := range phrases {
		phrases[i] = template.HTMLEscapeString(p)
	}
	//nolint:gosec // phrases are escaped above.
	return template.HTML(strings.Join(phrases, `<span class="sep">`+store.Separator+`</span>`))
}

// JishoURL returns the jisho.org kanji page for a character.
func JishoURL(key string) template.URL {
	//nolint:gosec // key is path escaped.
	return template.URL("https://jisho.org/search/" + url.PathEscape(key) + "%23kanji")
}

// Text writes the HTML rendering of matches converted to plain text.
func Text(w io.Writer, matches []Match) error {
	var buf bytes.Buffer
	if err := HTML(&buf, matches); err != nil {
		return err
	}
	text := strings.TrimSpace(html2text.HTML2Text(buf.String()))
	if text == "" {
		return nil
	}
	if _, err := io.WriteString(w, text+"\n"); err != nil {
		return fmt.Errorf("writing text: %w", err)
	}
	return nil
}

// Table writes one row per match.
func Table(w io.Writer, matches []Match) error {
	tbl := table.New("Kanji", "ID", "Meaning", "Page").
		WithWriter(w).
		WithWidthFunc(lipgloss.Width)
	for _, m := range matches {
		tbl.AddRow(m.Key, m.Entry.ID, m.Entry.Meaning, m.Entry.Page)
	}
	tbl.Print()
	return nil
}
