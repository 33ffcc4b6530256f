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
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ianlewis/go-kanjidex"
	"github.com/ianlewis/go-kanjidex/input"
	"github.com/ianlewis/go-kanjidex/render"
)

// ErrConfig indicates that the configuration file could not be loaded.
var ErrConfig = fmt.Errorf("%w: loading config", ErrKanjidex)

// Config is the kanjidex configuration file.
type Config struct {
	// Data is the path to the dataset file.
	Data string `yaml:"data"`

	// Debounce is the delay used by the interactive UI before evaluating
	// the query.
	Debounce time.Duration `yaml:"debounce"`

	// CacheSize is the number of query results cached.
	CacheSize int `yaml:"cache_size"`

	// LogLevel is the minimum level logged to stderr.
	LogLevel string `yaml:"log_level"`

	// Format is the default output format of the query command.
	Format string `yaml:"format"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Debounce:  input.DefaultDelay,
		CacheSize: kanjidex.DefaultCacheSize,
		LogLevel:  "warn",
		Format:    string(render.TextFormat),
	}
}

// defaultConfigPath returns the path of the default config file.
func defaultConfigPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		var err error
		dir, err = os.UserConfigDir()
		if err != nil {
			return ""
		}
	}
	return filepath.Join(dir, "kanjidex", "config.yaml")
}

// LoadConfig reads the config file at path on top of the default
// configuration. If path is empty the default config file is used. A missing
// file is only an error if required is true.
func LoadConfig(path string, required bool) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		path = defaultConfigPath()
	}
	if path == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConfig, path, err)
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = input.DefaultDelay
	}
	if _, err := render.ParseFormat(cfg.Format); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConfig, path, err)
	}

	return cfg, nil
}
