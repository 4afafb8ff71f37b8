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
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-ordbog/record"
)

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "ordbog.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

const validYAML = `
source:
  index: "/data/gdd/index.gdd"
  blobs: "/data/gdd/entries.dat"
  direction: 2
  encoding: "windows-1252"

wordlist:
  glob: "/data/wordlists/*.txt"
  header: true

convert:
  inflections: "records"
  synonyms: true
  workers: 4

output:
  formats: ["babylon", "stardict"]
  dir: "/tmp/out"
  name: "da-en"

log:
  level: "debug"
  format: "json"

patches:
  record:
    7:
      replace:
        - old: "\a"
          new: ""
  markup:
    23166:
      trim_suffix: 5
      append: "</ol>"
`

func TestLoad_ValidYAML(t *testing.T) {
	path := writeYAML(t, t.TempDir(), validYAML)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := &Config{
		Source: SourceConfig{
			Index:     "/data/gdd/index.gdd",
			Blobs:     "/data/gdd/entries.dat",
			Direction: 2,
			Encoding:  "windows-1252",
		},
		Wordlist: WordlistConfig{
			Glob:   "/data/wordlists/*.txt",
			Header: true,
		},
		Convert: ConvertConfig{
			Inflections: InflectionsRecords,
			Synonyms:    true,
			Workers:     4,
		},
		Output: OutputConfig{
			Formats:  []string{FormatBabylon, FormatStardict},
			Dir:      "/tmp/out",
			Name:     "da-en",
			BookName: "Gyldendals Røde Ordbøger: Dansk-Engelsk",
			Author:   "Gyldendals",
		},
		Log: LogConfig{
			Level:  "debug",
			Format: "json",
		},
		Patches: PatchesConfig{
			Record: record.Patches{
				7: {Replace: []record.Replacement{{Old: "\a", New: ""}}},
			},
			Markup: record.Patches{
				23166: {TrimSuffix: 5, Append: "</ol>"},
			},
		},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("Load (-want, +got):\n%s", diff)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestLoad_EnvDefaults(t *testing.T) {
	t.Setenv("ORDBOG_SOURCE_INDEX", "index.gdd")
	t.Setenv("ORDBOG_SOURCE_BLOBS", "entries.dat")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Source.Direction != 1 {
		t.Errorf("Source.Direction = %d, want 1", cfg.Source.Direction)
	}
	if cfg.Source.Encoding != "utf-8" {
		t.Errorf("Source.Encoding = %q, want utf-8", cfg.Source.Encoding)
	}
	if cfg.Convert.Inflections != InflectionsBoth {
		t.Errorf("Convert.Inflections = %q, want %q", cfg.Convert.Inflections, InflectionsBoth)
	}
	if diff := cmp.Diff([]string{FormatBabylon}, cfg.Output.Formats); diff != "" {
		t.Errorf("Output.Formats (-want, +got):\n%s", diff)
	}
	if cfg.Output.Name != "ordbog" {
		t.Errorf("Output.Name = %q, want ordbog", cfg.Output.Name)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	path := writeYAML(t, t.TempDir(), validYAML)
	t.Setenv("ORDBOG_CONVERT_WORKERS", "16")
	t.Setenv("ORDBOG_OUTPUT_FORMATS", "kindle,stardict")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Convert.Workers != 16 {
		t.Errorf("Convert.Workers = %d, want 16", cfg.Convert.Workers)
	}
	if diff := cmp.Diff([]string{FormatKindle, FormatStardict}, cfg.Output.Formats); diff != "" {
		t.Errorf("Output.Formats (-want, +got):\n%s", diff)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, ErrConfig) {
		t.Fatalf("Load: got error %v, want %v", err, ErrConfig)
	}
}

func validConfig() *Config {
	return &Config{
		Source: SourceConfig{
			Index:     "index.gdd",
			Blobs:     "entries.dat",
			Direction: 1,
			Encoding:  "utf-8",
		},
		Convert: ConvertConfig{Inflections: InflectionsBoth},
		Output: OutputConfig{
			Formats: []string{FormatBabylon},
			Name:    "ordbog",
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*Config)
		ok     bool
	}{
		{name: "valid", modify: func(*Config) {}, ok: true},
		{name: "missing index", modify: func(c *Config) { c.Source.Index = "" }},
		{name: "missing blobs", modify: func(c *Config) { c.Source.Blobs = "" }},
		{name: "bad direction", modify: func(c *Config) { c.Source.Direction = 0 }},
		{name: "bad encoding", modify: func(c *Config) { c.Source.Encoding = "klingon" }},
		{name: "bad inflections", modify: func(c *Config) { c.Convert.Inflections = "all" }},
		{name: "negative workers", modify: func(c *Config) { c.Convert.Workers = -1 }},
		{name: "no formats", modify: func(c *Config) { c.Output.Formats = nil }},
		{name: "bad format", modify: func(c *Config) { c.Output.Formats = []string{"epub"} }},
		{name: "missing name", modify: func(c *Config) { c.Output.Name = "" }},
		{name: "bad log level", modify: func(c *Config) { c.Log.Level = "loud" }},
		{name: "bad log format", modify: func(c *Config) { c.Log.Format = "xml" }},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			test.modify(cfg)
			err := cfg.Validate()
			if test.ok && err != nil {
				t.Fatalf("Validate: %v", err)
			}
			if !test.ok && !errors.Is(err, ErrConfig) {
				t.Fatalf("Validate: got error %v, want %v", err, ErrConfig)
			}
		})
	}
}

func TestConvertConfig_Modes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mode     string
		wordlist bool
		records  bool
	}{
		{InflectionsNone, false, false},
		{InflectionsWordlist, true, false},
		{InflectionsRecords, false, true},
		{InflectionsBoth, true, true},
	}

	for _, test := range tests {
		c := &ConvertConfig{Inflections: test.mode}
		if got := c.UsesWordlist(); got != test.wordlist {
			t.Errorf("%s: UsesWordlist = %v, want %v", test.mode, got, test.wordlist)
		}
		if got := c.UsesRecords(); got != test.records {
			t.Errorf("%s: UsesRecords = %v, want %v", test.mode, got, test.records)
		}
	}
}
