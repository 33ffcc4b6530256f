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

package kanjidex

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/text/transform"

	"github.com/ianlewis/go-kanjidex/index"
	"github.com/ianlewis/go-kanjidex/query"
	"github.com/ianlewis/go-kanjidex/render"
	"github.com/ianlewis/go-kanjidex/search"
	"github.com/ianlewis/go-kanjidex/store"
)

// DefaultCacheSize is the default number of query results kept by a
// Dictionary.
const DefaultCacheSize = 256

// Options are options for a Dictionary.
type Options struct {
	// CacheSize is the number of query results to cache. Zero uses
	// DefaultCacheSize. A negative value disables the cache.
	CacheSize int

	// Folder returns a [transform.Transformer] used to normalize meaning
	// phrases. Nil uses [index.DefaultOptions].
	Folder func() transform.Transformer

	// Logger receives diagnostics. A nil Logger discards them.
	Logger *slog.Logger
}

// DefaultOptions is the default options for a Dictionary.
var DefaultOptions = &Options{
	CacheSize: DefaultCacheSize,
}

// Result is the result of evaluating a query.
type Result struct {
	// Query is the classified query.
	Query query.Query

	// Matches are the matching entries in display order.
	Matches []render.Match
}

// Dictionary is a searchable kanji dictionary. Its indexes are built once
// and never modified so a Dictionary is safe for concurrent use.
type Dictionary struct {
	store  *store.Store
	idx    *index.Index
	engine *search.Engine
	cache  *lru.Cache[string, *Result]
	logger *slog.Logger
}

// Open opens the dataset at path and builds a Dictionary from it.
func Open(path string, options *Options) (*Dictionary, error) {
	s, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dictionary: %w", err)
	}
	return New(s, options), nil
}

// New builds a Dictionary from s.
func New(s *store.Store, options *Options) *Dictionary {
	if options == nil {
		options = DefaultOptions
	}

	d := &Dictionary{
		store:  s,
		logger: options.Logger,
	}
	if d.logger == nil {
		d.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	d.idx = index.Build(s, &index.Options{
		Folder: options.Folder,
		Logger: d.logger,
	})
	d.engine = search.New(d.idx, &search.Options{
		Logger: d.logger,
	})

	size := options.CacheSize
	if size == 0 {
		size = DefaultCacheSize
	}
	if size > 0 {
		// lru.New only fails for non-positive sizes.
		d.cache, _ = lru.New[string, *Result](size)
	}

	return d
}

// Len returns the number of entries in the dictionary.
func (d *Dictionary) Len() int {
	return d.idx.Len()
}

// Index returns the dictionary's index.
func (d *Dictionary) Index() *index.Index {
	return d.idx
}

// Entries returns the dictionary's entries in dataset order.
func (d *Dictionary) Entries() []*store.Entry {
	return d.store.Entries()
}

// Evaluate classifies raw, runs the matching search and resolves the
// results to entries. Evaluate never fails; a query that matches nothing
// returns a Result with no matches. The returned Result may be shared
// between calls and must not be modified.
func (d *Dictionary) Evaluate(raw string) *Result {
	key := strings.TrimSpace(raw)
	if d.cache != nil {
		if r, ok := d.cache.Get(key); ok {
			return r
		}
	}

	q := query.Classify(key)
	r := &Result{
		Query:   q,
		Matches: render.Resolve(d.idx, d.engine.Search(q)),
	}
	d.logger.Debug("evaluate",
		slog.String("query", key),
		slog.String("mode", q.String()),
		slog.Int("matches", len(r.Matches)),
	)

	if d.cache != nil {
		d.cache.Add(key, r)
	}
	return r
}
