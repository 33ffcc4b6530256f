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

package index

import (
	"io"
	"log/slog"
	"math"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/text/transform"

	"github.com/ianlewis/go-kanjidex/internal/folding"
	"github.com/ianlewis/go-kanjidex/store"
)

// InvalidID is the id index key for entries whose id does not parse.
const InvalidID = math.MinInt

// Options are options for building an Index.
type Options struct {
	// Folder returns a [transform.Transformer] used to normalize meaning
	// phrases.
	Folder func() transform.Transformer

	// Logger receives build diagnostics. A nil Logger discards them.
	Logger *slog.Logger
}

// DefaultOptions is the default options for an Index.
var DefaultOptions = &Options{
	Folder: folding.Meaning,
}

// Stats describes a built Index.
type Stats struct {
	Entries      int
	Phrases      int
	InvalidIDs   int
	DuplicateIDs int
	MinID        int
	MaxID        int
}

// Index holds the character, id and meaning indexes of a dataset.
type Index struct {
	// keys holds character keys by ordinal. Ordinals follow dataset order.
	keys  []string
	chars map[string]*store.Entry
	ids   map[int]string

	// meanings maps a normalized phrase to the ordinals of its characters.
	meanings map[string]*roaring.Bitmap

	// phrases holds the meaning index keys in sorted order.
	phrases []string

	folder func() transform.Transformer
	stats  Stats
}

// Build builds the indexes for s.
func Build(s *store.Store, options *Options) *Index {
	if options == nil {
		options = DefaultOptions
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	idx := &Index{
		keys:     make([]string, 0, s.Len()),
		chars:    make(map[string]*store.Entry, s.Len()),
		ids:      make(map[int]string, s.Len()),
		meanings: make(map[string]*roaring.Bitmap),
		folder:   DefaultOptions.Folder,
	}
	if options.Folder != nil {
		idx.folder = options.Folder
	}
	idx.stats.MinID = math.MaxInt
	idx.stats.MaxID = math.MinInt

	for i, e := range s.Entries() {
		//nolint:gosec // a dataset never holds more than MaxUint32 entries.
		ord := uint32(i)
		idx.keys = append(idx.keys, e.Character)
		idx.chars[e.Character] = e

		id, ok := ParseInt(e.ID)
		switch {
		case !ok || id == InvalidID:
			id = InvalidID
			idx.stats.InvalidIDs++
			logger.Debug("unparsable id", slog.String("kanji", e.Character), slog.String("id", e.ID))
		default:
			if prev, dup := idx.ids[id]; dup {
				idx.stats.DuplicateIDs++
				logger.Debug("duplicate id",
					slog.Int("id", id),
					slog.String("kanji", e.Character),
					slog.String("replaces", prev),
				)
			}
			idx.stats.MinID = min(idx.stats.MinID, id)
			idx.stats.MaxID = max(idx.stats.MaxID, id)
		}
		idx.ids[id] = e.Character

		for _, m := range e.Meanings() {
			phrase, err := folding.String(idx.folder, m)
			if err != nil {
				logger.Warn("skipping meaning", slog.String("kanji", e.Character), slog.Any("err", err))
				continue
			}
			if phrase == "" {
				continue
			}
			b, ok := idx.meanings[phrase]
			if !ok {
				b = roaring.New()
				idx.meanings[phrase] = b
			}
			b.Add(ord)
		}
	}

	idx.phrases = make([]string, 0, len(idx.meanings))
	for phrase, b := range idx.meanings {
		b.RunOptimize()
		idx.phrases = append(idx.phrases, phrase)
	}
	slices.Sort(idx.phrases)

	idx.stats.Entries = len(idx.keys)
	idx.stats.Phrases = len(idx.phrases)
	if idx.stats.MinID > idx.stats.MaxID {
		idx.stats.MinID, idx.stats.MaxID = 0, 0
	}

	logger.Debug("built index",
		slog.Int("entries", idx.stats.Entries),
		slog.Int("phrases", idx.stats.Phrases),
		slog.Int("invalid_ids", idx.stats.InvalidIDs),
		slog.Int("duplicate_ids", idx.stats.DuplicateIDs),
	)

	return idx
}

// Len returns the number of entries in the index.
func (idx *Index) Len() int {
	return len(idx.keys)
}

// Stats returns statistics about the index.
func (idx *Index) Stats() Stats {
	return idx.stats
}

// Entry returns the entry for a character key.
func (idx *Index) Entry(key string) (*store.Entry, bool) {
	e, ok := idx.chars[key]
	return e, ok
}

// Key returns the character key for an id. InvalidID is never found.
func (idx *Index) Key(id int) (string, bool) {
	if id == InvalidID {
		return "", false
	}
	key, ok := idx.ids[id]
	return key, ok
}

// IDSpan returns the smallest and largest valid ids in the index. ok is
// false if the index holds no valid ids.
func (idx *Index) IDSpan() (lo, hi int, ok bool) {
	if idx.stats.Entries-idx.stats.InvalidIDs == 0 {
		return 0, 0, false
	}
	return idx.stats.MinID, idx.stats.MaxID, true
}

// Normalize folds s the same way meaning phrases are folded at build time.
func (idx *Index) Normalize(s string) (string, error) {
	return folding.String(idx.folder, s)
}

// Postings returns the ordinals of the characters with the given normalized
// meaning phrase, or nil. The returned bitmap must not be modified.
func (idx *Index) Postings(phrase string) *roaring.Bitmap {
	return idx.meanings[phrase]
}

// Phrases returns the normalized meaning phrases in sorted order. The
// returned slice must not be modified.
func (idx *Index) Phrases() []string {
	return idx.phrases
}

// Keys returns the character keys for a set of ordinals in dataset order.
func (idx *Index) Keys(b *roaring.Bitmap) []string {
	if b == nil || b.IsEmpty() {
		return nil
	}
	keys := make([]string, 0, b.GetCardinality())
	it := b.Iterator()
	for it.HasNext() {
		ord := int(it.Next())
		if ord < len(idx.keys) {
			keys = append(keys, idx.keys[ord])
		}
	}
	return keys
}
