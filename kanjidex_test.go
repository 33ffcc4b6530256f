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

package kanjidex_test

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-kanjidex"
	"github.com/ianlewis/go-kanjidex/internal/testutil"
	"github.com/ianlewis/go-kanjidex/query"
	"github.com/ianlewis/go-kanjidex/render"
	"github.com/ianlewis/go-kanjidex/store"
)

func keys(r *kanjidex.Result) []string {
	var keys []string
	for _, m := range r.Matches {
		keys = append(keys, m.Key)
	}
	return keys
}

func TestOpen(t *testing.T) {
	t.Parallel()

	path := testutil.WriteDataset(t, testutil.Entries(), &testutil.DatasetOptions{
		Format:      store.YAML,
		Compression: "gz",
	})

	d, err := kanjidex.Open(path, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if want, got := len(testutil.Entries()), d.Len(); want != got {
		t.Fatalf("Len: want: %d, got: %d", want, got)
	}
	if diff := cmp.Diff(testutil.Entries(), d.Entries()); diff != "" {
		t.Fatalf("Entries (-want, +got):\n%s", diff)
	}
}

func TestOpen_error(t *testing.T) {
	t.Parallel()

	_, err := kanjidex.Open(filepath.Join(t.TempDir(), "kanji.csv"), nil)
	if !errors.Is(err, store.ErrUnsupportedFormat) {
		t.Fatalf("Open: want: %v, got: %v", store.ErrUnsupportedFormat, err)
	}
}

func TestDictionary_Evaluate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		raw      string
		query    query.Query
		expected []string
	}{
		{
			name:  "empty",
			raw:   "",
			query: query.Empty{},
		},
		{
			name:  "whitespace",
			raw:   "   ",
			query: query.Empty{},
		},
		{
			name:     "id",
			raw:      "5",
			query:    query.ID{IDs: []int{5}},
			expected: []string{"火"},
		},
		{
			name:     "ids sorted",
			raw:      "6 1 5",
			query:    query.ID{IDs: []int{1, 5, 6}},
			expected: []string{"一", "火", "水"},
		},
		{
			name:     "range",
			raw:      "5-10",
			query:    query.IDRange{Lo: 5, Hi: 10},
			expected: []string{"火", "水", "炎", "泉", "氷", "蛍"},
		},
		{
			name:     "reversed range",
			raw:      "10-5",
			query:    query.ID{IDs: []int{10}},
			expected: []string{"蛍"},
		},
		{
			name:     "meaning",
			raw:      "Water",
			query:    query.Meaning{Term: "Water"},
			expected: []string{"水"},
		},
		{
			name:     "kanji",
			raw:      "木",
			query:    query.Kanji{Text: "木"},
			expected: []string{"木"},
		},
		{
			name:     "substring",
			raw:      "~firef",
			query:    query.SubstringMeaning{Term: "firef"},
			expected: []string{"蛍"},
		},
		{
			name:  "substring empty",
			raw:   " ~ ",
			query: query.SubstringMeaning{},
		},
		{
			name:  "unpaired separators",
			raw:   "-/-~",
			query: query.Kanji{Text: "-/-~"},
		},
	}

	d := kanjidex.New(testutil.Store(), nil)
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			r := d.Evaluate(test.raw)
			if diff := cmp.Diff(test.query, r.Query); diff != "" {
				t.Fatalf("Evaluate(%q).Query (-want, +got):\n%s", test.raw, diff)
			}
			if diff := cmp.Diff(test.expected, keys(r)); diff != "" {
				t.Fatalf("Evaluate(%q) (-want, +got):\n%s", test.raw, diff)
			}
		})
	}
}

func TestDictionary_Evaluate_idempotent(t *testing.T) {
	t.Parallel()

	for _, size := range []int{0, -1} {
		d := kanjidex.New(testutil.Store(), &kanjidex.Options{CacheSize: size})
		for _, raw := range []string{"1-100", "~fir", "water/fire", "3 1 3", "木水木"} {
			first := keys(d.Evaluate(raw))
			second := keys(d.Evaluate(raw))
			if diff := cmp.Diff(first, second); diff != "" {
				t.Fatalf("Evaluate(%q) cache %d (-first, +second):\n%s", raw, size, diff)
			}
		}
	}
}

func TestDictionary_Evaluate_resolves(t *testing.T) {
	t.Parallel()

	d := kanjidex.New(testutil.Store(), nil)
	r := d.Evaluate("1-100")
	for _, m := range r.Matches {
		e, ok := d.Index().Entry(m.Key)
		if !ok {
			t.Fatalf("Entry(%q): not found", m.Key)
		}
		if diff := cmp.Diff(render.Match{Key: m.Key, Entry: e}, m); diff != "" {
			t.Fatalf("Match (-want, +got):\n%s", diff)
		}
	}
}

func TestDictionary_Evaluate_concurrent(t *testing.T) {
	t.Parallel()

	d := kanjidex.New(testutil.Store(), &kanjidex.Options{CacheSize: 2})
	queries := []string{"1-100", "~fir", "water/fire", "木水", "", "fire", "3 1"}

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 50 {
				d.Evaluate(queries[(i+j)%len(queries)])
			}
		}()
	}
	wg.Wait()
}
