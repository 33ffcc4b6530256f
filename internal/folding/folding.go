// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package folding implements the text folding used to normalize meaning
// phrases and queries.
package folding

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/transform"
)

// Meaning returns a transformer that trims and lower-cases a meaning phrase.
func Meaning() transform.Transformer {
	return transform.Chain(&TrimFolder{}, cases.Lower(language.Und))
}

// String folds s using a fresh transformer returned by folder.
func String(folder func() transform.Transformer, s string) (string, error) {
	folded, _, err := transform.String(folder(), s)
	if err != nil {
		return "", fmt.Errorf("folding %q: %w", s, err)
	}
	return folded, nil
}
