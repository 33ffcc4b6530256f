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
	"strings"
)

// Separator separates meaning phrases in an entry's meaning text.
const Separator = "・"

// Entry is a single character's dictionary record.
type Entry struct {
	// Character is the entry's key. It is normally a single glyph.
	Character string

	// ID is the entry's id as written in the dataset. It is parsed when the
	// id index is built.
	ID string

	// Meaning is one or more meaning phrases joined by Separator.
	Meaning string

	// Page is an opaque display label.
	Page string
}

// Meanings returns the raw meaning phrases of the entry.
func (e *Entry) Meanings() []string {
	return strings.Split(e.Meaning, Separator)
}

// String returns a string representation of the Entry.
func (e *Entry) String() string {
	return e.Character + " " + e.ID + " " + e.Meaning
}

// Store is an ordered set of entries keyed by character.
type Store struct {
	entries []*Entry
	pos     map[string]int
}

// New returns a new Store containing the given entries.
func New(entries ...*Entry) *Store {
	s := &Store{
		pos: make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		s.Add(e)
	}
	return s
}

// Add adds an entry to the store. An entry with a character already in the
// store replaces the earlier entry but keeps its position.
func (s *Store) Add(e *Entry) {
	if i, ok := s.pos[e.Character]; ok {
		s.entries[i] = e
		return
	}
	s.pos[e.Character] = len(s.entries)
	s.entries = append(s.entries, e)
}

// Entries returns the entries in dataset order.
func (s *Store) Entries() []*Entry {
	return s.entries
}

// Len returns the number of entries.
func (s *Store) Len() int {
	return len(s.entries)
}
