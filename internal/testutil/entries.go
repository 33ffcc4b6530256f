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
	"github.com/ianlewis/go-kanjidex/store"
)

// Entries returns a small dataset used across tests. A new slice is returned
// on every call.
//
// 口 has an id with trailing garbage and 海 has an id that does not parse.
func Entries() []*store.Entry {
	return []*store.Entry{
		{Character: "一", ID: "1", Meaning: "one", Page: "p. 1"},
		{Character: "二", ID: "2", Meaning: "two", Page: "p. 1"},
		{Character: "木", ID: "3", Meaning: "tree・wood", Page: "p. 2"},
		{Character: "林", ID: "4", Meaning: "grove・woods", Page: "p. 2"},
		{Character: "森", ID: "11", Meaning: " Forest ・・ Woods ", Page: "p. 3"},
		{Character: "火", ID: "5", Meaning: "fire", Page: "p. 4"},
		{Character: "炎", ID: "7", Meaning: "flame・blaze・fire", Page: "p. 4"},
		{Character: "水", ID: "6", Meaning: "Water", Page: "p. 5"},
		{Character: "氷", ID: "9", Meaning: "icicle・ice・freeze", Page: "p. 5"},
		{Character: "泉", ID: "8", Meaning: "spring・fountain", Page: "p. 5"},
		{Character: "蛍", ID: "10", Meaning: "firefly", Page: "p. 6"},
		{Character: "口", ID: "13abc", Meaning: "mouth", Page: "p. 7"},
		{Character: "海", ID: "abc", Meaning: "sea・ocean", Page: "p. 8"},
	}
}

// Store returns the Entries dataset as a store.
func Store() *store.Store {
	return store.New(Entries()...)
}
