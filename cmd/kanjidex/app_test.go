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

package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-kanjidex/internal/testutil"
	"github.com/ianlewis/go-kanjidex/store"
)

// writeConfig writes a config file that silences logging and returns its
// path.
func writeConfig(t *testing.T, extra string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("log_level: error\n"+extra), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

// runApp runs the app with args after the config flag. stdin is used as the
// app's input.
func runApp(t *testing.T, config, stdin string, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	app := newKanjidexApp()
	app.Name = "kanjidex"
	app.Reader = strings.NewReader(stdin)
	app.Writer = &stdout
	app.ErrWriter = &stderr

	err := app.Run(append([]string{"kanjidex", "--config", config}, args...))
	return stdout.String(), err
}

func TestApp_version(t *testing.T) {
	t.Parallel()

	out, err := runApp(t, writeConfig(t, ""), "", "--version")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.HasPrefix(out, "kanjidex ") {
		t.Errorf("unexpected version output: %q", out)
	}
	if !strings.Contains(out, "GitVersion") {
		t.Errorf("version output missing version info: %q", out)
	}
}

func TestApp_errors(t *testing.T) {
	t.Parallel()

	data := testutil.WriteDataset(t, testutil.Entries(), nil)

	testCases := []struct {
		name   string
		config string
		args   []string
		err    error
	}{
		{
			name:   "unknown flag",
			config: "",
			args:   []string{"--unknown"},
			err:    ErrFlagParse,
		},
		{
			name:   "bad log level",
			config: "",
			args:   []string{"--log-level", "loud", "info"},
			err:    ErrFlagParse,
		},
		{
			name:   "bad format flag",
			config: "",
			args:   []string{"--data", data, "query", "--format", "xml", "water"},
			err:    ErrFlagParse,
		},
		{
			name:   "bad format config",
			config: "format: xml\n",
			args:   []string{"--data", data, "info"},
			err:    ErrConfig,
		},
		{
			name:   "missing dataset",
			config: "",
			args:   []string{"--data", filepath.Join(t.TempDir(), "kanji.json"), "info"},
			err:    ErrKanjidex,
		},
		{
			name:   "unsupported dataset",
			config: "",
			args:   []string{"--data", filepath.Join(t.TempDir(), "kanji.csv"), "info"},
			err:    store.ErrUnsupportedFormat,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := runApp(t, writeConfig(t, tc.config), "", tc.args...)
			if !errors.Is(err, tc.err) {
				t.Fatalf("unexpected error, want: %v, got: %v", tc.err, err)
			}
		})
	}
}

func TestApp_missingConfig(t *testing.T) {
	t.Parallel()

	_, err := runApp(t, filepath.Join(t.TempDir(), "config.yaml"), "", "info")
	if !errors.Is(err, ErrConfig) {
		t.Fatalf("unexpected error, want: %v, got: %v", ErrConfig, err)
	}
}

func TestQuery(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		dataset  *testutil.DatasetOptions
		config   string
		stdin    string
		args     []string
		contains []string
		excludes []string
	}{
		{
			name:     "meaning",
			args:     []string{"query", "water"},
			contains: []string{"水", "Water", "p. 5"},
			excludes: []string{"火"},
		},
		{
			name:     "range table",
			args:     []string{"query", "--format", "table", "5-6"},
			contains: []string{"Kanji", "火", "水"},
			excludes: []string{"炎"},
		},
		{
			name:     "html",
			args:     []string{"query", "-f", "html", "木"},
			contains: []string{`<div class="kanji-block">`, "tree", "https://jisho.org/search/%E6%9C%A8%23kanji"},
		},
		{
			name:     "several queries",
			args:     []string{"query", "1", "~fire"},
			contains: []string{"一", "火", "炎", "蛍"},
		},
		{
			name:     "stdin",
			stdin:    "one\n\n二\n",
			args:     []string{"query"},
			contains: []string{"一", "二"},
		},
		{
			name: "config",
			dataset: &testutil.DatasetOptions{
				Format:      store.YAML,
				Compression: "dz",
			},
			config:   "format: table\n",
			args:     []string{"query", "ice"},
			contains: []string{"Meaning", "icicle"},
		},
		{
			name:     "no match",
			args:     []string{"query", "dragon"},
			excludes: []string{"Kanji", "p. "},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			data := testutil.WriteDataset(t, testutil.Entries(), tc.dataset)
			args := append([]string{"--data", data}, tc.args...)
			out, err := runApp(t, writeConfig(t, tc.config), tc.stdin, args...)
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			for _, s := range tc.contains {
				if !strings.Contains(out, s) {
					t.Errorf("output missing %q:\n%s", s, out)
				}
			}
			for _, s := range tc.excludes {
				if strings.Contains(out, s) {
					t.Errorf("output contains %q:\n%s", s, out)
				}
			}
		})
	}
}

func TestQuery_configData(t *testing.T) {
	t.Parallel()

	data := testutil.WriteDataset(t, testutil.Entries(), nil)
	out, err := runApp(t, writeConfig(t, "data: "+data+"\n"), "", "query", "7")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out, "炎") {
		t.Errorf("output missing 炎:\n%s", out)
	}
}

func TestInfo(t *testing.T) {
	t.Parallel()

	data := testutil.WriteDataset(t, testutil.Entries(), nil)
	out, err := runApp(t, writeConfig(t, ""), "", "--data", data, "info")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	var got [][]string
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		got = append(got, strings.Fields(line))
	}
	want := [][]string{
		{"Name", "Value"},
		{"Entries", "13"},
		{"Phrases", "20"},
		{"Ids", "1-13"},
		{"Invalid", "ids", "1"},
		{"Duplicate", "ids", "0"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("info (-want, +got):\n%s", diff)
	}
}

func TestFindData(t *testing.T) {
	t.Parallel()

	empty := t.TempDir()
	dir := t.TempDir()
	for _, name := range []string{"kanji.yaml", "kanji.json.gz"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o600); err != nil {
			t.Fatal(err)
		}
	}
	// Directories named like datasets are skipped.
	shadow := t.TempDir()
	if err := os.Mkdir(filepath.Join(shadow, "kanji.json"), 0o700); err != nil {
		t.Fatal(err)
	}

	if want, got := filepath.Join(dir, "kanji.json.gz"), findData([]string{empty, shadow, dir}); want != got {
		t.Errorf("findData: want: %q, got: %q", want, got)
	}
	if got := findData([]string{empty}); got != "" {
		t.Errorf("findData: want: \"\", got: %q", got)
	}
}
