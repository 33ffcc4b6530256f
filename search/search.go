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

// Package search implements the lookup routines for each query mode.
package search

import (
	"io"
	"log/slog"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/ianlewis/go-kanjidex/index"
	"github.com/ianlewis/go-kanjidex/query"
)

// OrSeparator separates alternative terms in a meaning search.
const OrSeparator = "/"

// Options are options for an Engine.
type Options struct {
	// Logger receives search diagnostics. A nil Logger discards them.
	Logger *slog.Logger
}

// Engine searches an index. Results are ordered sequences of character
// keys. An Engine is safe for concurrent use.
type Engine struct {
	idx    *index.Index
	logger *slog.Logger
}

// New returns a new Engine for idx.
func New(idx *index.Index, options *Options) *Engine {
	e := &Engine{
		idx: idx,
	}
	if options != nil {
		e.logger = options.Logger
	}
	if e.logger == nil {
		e.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return e
}

// Search runs the lookup for q. Queries that match nothing return an empty
// result.
func (e *Engine) Search(q query.Query) []string {
	var keys []string
	switch q := q.(type) {
	case query.Empty:
	case query.SubstringMeaning:
		keys = e.BySubstring(q.Term)
	case query.IDRange:
		keys = e.ByIDRange(q.Lo, q.Hi)
	case query.ID:
		keys = e.ByID(q.IDs)
	case query.Meaning:
		keys = e.ByMeaning(q.Term)
	case query.Kanji:
		keys = e.ByKanji(q.Text)
	default:
		e.logger.Warn("unknown query type", slog.Any("query", q))
	}

	e.logger.Debug("search", slog.Any("query", q), slog.Int("results", len(keys)))
	return keys
}

// ByID returns the characters for ids in the given order. An id that appears
// more than once produces a result each time.
func (e *Engine) ByID(ids []int) []string {
	var keys []string
	for _, id := range ids {
		if key, ok := e.idx.Key(id); ok {
			keys = append(keys, key)
		}
	}
	return keys
}

// ByIDRange returns the characters with ids from lo to hi inclusive in
// ascending id order. Only the part of the range that overlaps the index's
// id span is visited.
func (e *Engine) ByIDRange(lo, hi int) []string {
	minID, maxID, ok := e.idx.IDSpan()
	if !ok {
		return nil
	}
	lo = max(lo, minID)
	hi = min(hi, maxID)
	if lo > hi {
		return nil
	}

	var keys []string
	for id := lo; ; id++ {
		if key, ok := e.idx.Key(id); ok {
			keys = append(keys, key)
		}
		// Checked here so that hi == math.MaxInt does not overflow.
		if id == hi {
			break
		}
	}
	return keys
}

// ByKanji returns each character of text that is in the index, in input
// order. Repeated characters produce repeated results.
func (e *Engine) ByKanji(text string) []string {
	var keys []string
	for _, r := range text {
		key := string(r)
		if _, ok := e.idx.Entry(key); ok {
			keys = append(keys, key)
		}
	}
	return keys
}

// ByMeaning returns the characters with a meaning phrase equal to term,
// ignoring case and surrounding whitespace. If term contains OrSeparator
// each separated term is looked up and the results combined.
func (e *Engine) ByMeaning(term string) []string {
	if !strings.Contains(term, OrSeparator) {
		return e.idx.Keys(e.postings(term))
	}

	var sets []*roaring.Bitmap
	for _, t := range strings.Split(term, OrSeparator) {
		if b := e.postings(t); b != nil {
			sets = append(sets, b)
		}
	}
	if len(sets) == 0 {
		return nil
	}
	return e.idx.Keys(roaring.FastOr(sets...))
}

// BySubstring returns the characters with a meaning phrase containing term.
// term is folded the same way as meaning phrases before matching. An empty
// term matches nothing.
func (e *Engine) BySubstring(term string) []string {
	needle, err := e.idx.Normalize(term)
	if err != nil {
		e.logger.Debug("folding substring", slog.Any("err", err))
		return nil
	}
	if needle == "" {
		return nil
	}

	var sets []*roaring.Bitmap
	for _, phrase := range e.idx.Phrases() {
		if strings.Contains(phrase, needle) {
			sets = append(sets, e.idx.Postings(phrase))
		}
	}
	if len(sets) == 0 {
		return nil
	}
	return e.idx.Keys(roaring.FastOr(sets...))
}

// postings normalizes term and returns its meaning index entry.
func (e *Engine) postings(term string) *roaring.Bitmap {
	phrase, err := e.idx.Normalize(term)
	if err != nil {
		e.logger.Debug("folding meaning", slog.Any("err", err))
		return nil
	}
	if phrase == "" {
		return nil
	}
	return e.idx.Postings(phrase)
}
