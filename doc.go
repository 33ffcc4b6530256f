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

// Package kanjidex implements lookup of kanji dictionary entries by id, id
// range, character or meaning.
//
// A [Dictionary] is built once from a dataset of entries. Each entry has a
// character key, an integer id, meaning text made up of phrases separated
// by '・' and a page label. Queries typed by a user are classified and
// dispatched to one of the following searches:
//  1. "" clears the results.
//  2. "~fir" finds entries with a meaning phrase containing "fir".
//  3. "1-100" finds entries with ids from 1 to 100.
//  4. "3 1 2" finds entries with the given ids, sorted by id.
//  5. "water" finds entries with the meaning phrase "water". "water/fire"
//     finds entries with either phrase.
//  6. "木水" finds the entries for each character.
//
// Meaning matches ignore case and surrounding whitespace.
package kanjidex
