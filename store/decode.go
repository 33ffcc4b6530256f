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

package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

var (
	// ErrUnsupportedFormat indicates a dataset format that cannot be read.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrMalformed indicates a dataset that could not be decoded.
	ErrMalformed = errors.New("malformed dataset")
)

// Format is a dataset encoding.
type Format int

const (
	// JSON is a JSON object keyed by character, or a JSON array of records
	// with a "kanji" field.
	JSON Format = iota

	// YAML is a YAML mapping keyed by character, or a YAML sequence of
	// records with a "kanji" field.
	YAML
)

// String implements [fmt.Stringer].
func (f Format) String() string {
	switch f {
	case JSON:
		return "json"
	case YAML:
		return "yaml"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// scalar is text that may be written as a string or a number.
type scalar string

// UnmarshalJSON implements [json.Unmarshaler].
func (s *scalar) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*s = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			//nolint:wrapcheck // error is wrapped by the decoder.
			return err
		}
		*s = scalar(str)
		return nil
	}
	*s = scalar(b)
	return nil
}

// UnmarshalYAML implements [yaml.Unmarshaler].
func (s *scalar) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: line %d: expected scalar", ErrMalformed, n.Line)
	}
	*s = scalar(n.Value)
	return nil
}

type record struct {
	Kanji   string `json:"kanji" yaml:"kanji"`
	ID      scalar `json:"id" yaml:"id"`
	Meaning string `json:"meaning" yaml:"meaning"`
	Page    scalar `json:"page" yaml:"page"`
}

func (r *record) entry(key string) (*Entry, error) {
	if key == "" {
		return nil, fmt.Errorf("%w: entry with empty character", ErrMalformed)
	}
	return &Entry{
		Character: key,
		ID:        string(r.ID),
		Meaning:   r.Meaning,
		Page:      string(r.Page),
	}, nil
}

// Decode reads a dataset in the given format. Entry order follows the order
// in the data.
func Decode(r io.Reader, f Format) (*Store, error) {
	switch f {
	case JSON:
		return decodeJSON(r)
	case YAML:
		return decodeYAML(r)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, f)
	}
}

func decodeJSON(r io.Reader) (*Store, error) {
	dec := json.NewDecoder(r)
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	s := New()
	switch tok {
	case json.Delim('{'):
		// Decode key by key so that dataset order is preserved.
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
			}
			key, _ := keyTok.(string)

			var rec record
			if err := dec.Decode(&rec); err != nil {
				return nil, fmt.Errorf("%w: entry %q: %w", ErrMalformed, key, err)
			}
			e, err := rec.entry(key)
			if err != nil {
				return nil, err
			}
			s.Add(e)
		}
	case json.Delim('['):
		for dec.More() {
			var rec record
			if err := dec.Decode(&rec); err != nil {
				return nil, fmt.Errorf("%w: entry %d: %w", ErrMalformed, s.Len(), err)
			}
			e, err := rec.entry(rec.Kanji)
			if err != nil {
				return nil, err
			}
			s.Add(e)
		}
	default:
		return nil, fmt.Errorf("%w: expected object or array, got %v", ErrMalformed, tok)
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	return s, nil
}

func decodeYAML(r io.Reader) (*Store, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return New(), nil
		}
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}

	s := New()
	switch root.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(root.Content); i += 2 {
			key := root.Content[i].Value
			var rec record
			if err := root.Content[i+1].Decode(&rec); err != nil {
				return nil, fmt.Errorf("%w: entry %q: %w", ErrMalformed, key, err)
			}
			e, err := rec.entry(key)
			if err != nil {
				return nil, err
			}
			s.Add(e)
		}
	case yaml.SequenceNode:
		for _, n := range root.Content {
			var rec record
			if err := n.Decode(&rec); err != nil {
				return nil, fmt.Errorf("%w: line %d: %w", ErrMalformed, n.Line, err)
			}
			e, err := rec.entry(rec.Kanji)
			if err != nil {
				return nil, err
			}
			s.Add(e)
		}
	default:
		return nil, fmt.Errorf("%w: line %d: expected mapping or sequence", ErrMalformed, root.Line)
	}

	return s, nil
}
