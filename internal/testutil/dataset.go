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

package testutil

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/ianlewis/go-dictzip"
	"gopkg.in/yaml.v3"

	"github.com/ianlewis/go-kanjidex/store"
)

// DatasetOptions are options for writing a test dataset.
type DatasetOptions struct {
	// Format is the dataset encoding.
	Format store.Format

	// Array writes a list of records with a "kanji" field instead of an
	// object keyed by character.
	Array bool

	// Compression is "", "gz" or "dz".
	Compression string
}

// GetExt returns the file extension for the dataset.
func (o *DatasetOptions) GetExt() string {
	if o == nil {
		return ".json"
	}
	ext := ".json"
	if o.Format == store.YAML {
		ext = ".yaml"
	}
	if o.Compression != "" {
		ext += "." + o.Compression
	}
	return ext
}

// WriteDataset writes entries to a temporary dataset file and returns its
// path. The file is removed when the test ends.
func WriteDataset(t *testing.T, entries []*store.Entry, opts *DatasetOptions) string {
	t.Helper()
	if opts == nil {
		opts = &DatasetOptions{}
	}

	var data []byte
	switch opts.Format {
	case store.YAML:
		data = MakeYAML(t, entries, opts.Array)
	default:
		data = MakeJSON(t, entries, opts.Array)
	}

	path := filepath.Join(t.TempDir(), "kanji"+opts.GetExt())
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	switch opts.Compression {
	case "gz":
		z := gzip.NewWriter(f)
		if _, err := z.Write(data); err != nil {
			t.Fatal(err)
		}
		if err := z.Close(); err != nil {
			t.Fatal(err)
		}
	case "dz":
		z, err := dictzip.NewWriter(f)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := z.Write(data); err != nil {
			t.Fatal(err)
		}
		if err := z.Close(); err != nil {
			t.Fatal(err)
		}
	default:
		if _, err := f.Write(data); err != nil {
			t.Fatal(err)
		}
	}

	return path
}

type jsonRecord struct {
	Kanji   string `json:"kanji,omitempty"`
	ID      string `json:"id"`
	Meaning string `json:"meaning"`
	Page    string `json:"page"`
}

// MakeJSON encodes entries as a JSON dataset in entry order.
func MakeJSON(t *testing.T, entries []*store.Entry, array bool) []byte {
	t.Helper()

	if array {
		var recs []jsonRecord
		for _, e := range entries {
			recs = append(recs, jsonRecord{
				Kanji:   e.Character,
				ID:      e.ID,
				Meaning: e.Meaning,
				Page:    e.Page,
			})
		}
		b, err := json.Marshal(recs)
		if err != nil {
			t.Fatal(err)
		}
		return b
	}

	// Objects are written by hand because encoding/json sorts map keys.
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(e.Character)
		if err != nil {
			t.Fatal(err)
		}
		v, err := json.Marshal(jsonRecord{
			ID:      e.ID,
			Meaning: e.Meaning,
			Page:    e.Page,
		})
		if err != nil {
			t.Fatal(err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes()
}

// MakeYAML encodes entries as a YAML dataset in entry order.
func MakeYAML(t *testing.T, entries []*store.Entry, array bool) []byte {
	t.Helper()

	str := func(v string) *yaml.Node {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
	}
	fields := func(e *store.Entry, withKanji bool) *yaml.Node {
		n := &yaml.Node{Kind: yaml.MappingNode}
		if withKanji {
			n.Content = append(n.Content, str("kanji"), str(e.Character))
		}
		n.Content = append(n.Content,
			str("id"), str(e.ID),
			str("meaning"), str(e.Meaning),
			str("page"), str(e.Page),
		)
		return n
	}

	root := &yaml.Node{Kind: yaml.MappingNode}
	if array {
		root.Kind = yaml.SequenceNode
	}
	for _, e := range entries {
		if array {
			root.Content = append(root.Content, fields(e, true))
		} else {
			root.Content = append(root.Content, str(e.Character), fields(e, false))
		}
	}

	b, err := yaml.Marshal(root)
	if err != nil {
		t.Fatal(err)
	}
	return b
}
