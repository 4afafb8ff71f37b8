// Copyright 2026 Ian Lewis
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

package config

import (
	"fmt"
	"slices"

	"github.com/ianlewis/go-ordbog/internal/logger"
	"github.com/ianlewis/go-ordbog/record"
)

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := c.Source.validate(); err != nil {
		return fmt.Errorf("%w: source: %w", ErrConfig, err)
	}
	if err := c.Convert.validate(); err != nil {
		return fmt.Errorf("%w: convert: %w", ErrConfig, err)
	}
	if err := c.Output.validate(); err != nil {
		return fmt.Errorf("%w: output: %w", ErrConfig, err)
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log: %w", ErrConfig, err)
	}
	if _, err := logger.New(logger.Config{Format: c.Log.Format}); err != nil {
		return fmt.Errorf("%w: log: %w", ErrConfig, err)
	}
	return nil
}

func (s *SourceConfig) validate() error {
	if s.Index == "" {
		return fmt.Errorf("index is required")
	}
	if s.Blobs == "" {
		return fmt.Errorf("blobs is required")
	}
	if s.Direction <= 0 {
		return fmt.Errorf("direction must be > 0 (got %d)", s.Direction)
	}
	if _, err := record.LookupEncoding(s.Encoding); err != nil {
		return fmt.Errorf("encoding: %w", err)
	}
	return nil
}

func (c *ConvertConfig) validate() error {
	switch c.Inflections {
	case InflectionsNone, InflectionsWordlist, InflectionsRecords, InflectionsBoth:
	default:
		return fmt.Errorf("unknown inflections mode %q", c.Inflections)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0 (got %d)", c.Workers)
	}
	return nil
}

func (o *OutputConfig) validate() error {
	if len(o.Formats) == 0 {
		return fmt.Errorf("at least one format is required")
	}
	for _, f := range o.Formats {
		if !slices.Contains([]string{FormatBabylon, FormatStardict, FormatKindle}, f) {
			return fmt.Errorf("unknown format %q", f)
		}
	}
	if o.Name == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}

// UsesWordlist reports whether the inflection mode reads the wordlist.
func (c *ConvertConfig) UsesWordlist() bool {
	return c.Inflections == InflectionsWordlist || c.Inflections == InflectionsBoth
}

// UsesRecords reports whether the inflection mode merges inflection records.
func (c *ConvertConfig) UsesRecords() bool {
	return c.Inflections == InflectionsRecords || c.Inflections == InflectionsBoth
}
