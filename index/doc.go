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

// Package index builds the lookup structures used to search a kanji dataset.
//
// Three indexes are built from a [store.Store] in a single pass:
//  1. The character index maps a character key to its entry.
//  2. The id index maps an entry's integer id to its character key. Ids are
//     parsed with [ParseInt]. Ids that do not parse are stored under
//     [InvalidID] and are never returned by id lookups. When two entries
//     share an id the later entry wins.
//  3. The meaning index maps a normalized meaning phrase to the set of
//     characters whose meaning text contains that phrase. Meaning text is
//     split on [store.Separator] and each phrase is trimmed and lower-cased.
//     Empty phrases are skipped.
//
// Indexes are read-only once built and safe for concurrent use.
package index
