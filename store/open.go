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
	"compress/gzip"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/ianlewis/go-dictzip"
)

// Open reads the dataset at path. The format is determined by the file
// extension: .json, .yaml or .yml, optionally followed by .gz (gzip) or .dz
// (dictzip).
func Open(path string) (*Store, error) {
	name := strings.ToLower(filepath.Base(path))
	compression := filepath.Ext(name)
	switch compression {
	case ".gz", ".dz":
		name = strings.TrimSuffix(name, compression)
	default:
		compression = ""
	}

	var format Format
	switch filepath.Ext(name) {
	case ".json":
		format = JSON
	case ".yaml", ".yml":
		format = YAML
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	switch compression {
	case ".gz":
		z, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("opening %q: %w", path, err)
		}
		defer z.Close()
		r = z
	case ".dz":
		z, err := dictzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("opening %q: %w", path, err)
		}
		r = io.NewSectionReader(z, 0, math.MaxInt64)
	}

	s, err := Decode(r, format)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	return s, nil
}
