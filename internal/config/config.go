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

// Package config loads the converter configuration from a YAML file and the
// environment.
package config

import (
	"github.com/ianlewis/go-ordbog/record"
)

// Inflection modes.
const (
	// InflectionsNone adds no inflected forms.
	InflectionsNone = "none"

	// InflectionsWordlist adds forms from the full-form wordlist.
	InflectionsWordlist = "wordlist"

	// InflectionsRecords adds forms from the corpus' inflection records.
	InflectionsRecords = "records"

	// InflectionsBoth adds forms from the wordlist and the inflection records.
	InflectionsBoth = "both"
)

// Output formats.
const (
	FormatBabylon  = "babylon"
	FormatStardict = "stardict"
	FormatKindle   = "kindle"
)

// Config is the root configuration.
type Config struct {
	Source   SourceConfig   `yaml:"source"`
	Wordlist WordlistConfig `yaml:"wordlist"`
	Convert  ConvertConfig  `yaml:"convert"`
	Output   OutputConfig   `yaml:"output"`
	Log      LogConfig      `yaml:"log"`
	Patches  PatchesConfig  `yaml:"patches"`
}

// SourceConfig locates the dictionary export.
type SourceConfig struct {
	Index     string `yaml:"index"     env:"ORDBOG_SOURCE_INDEX"`
	Blobs     string `yaml:"blobs"     env:"ORDBOG_SOURCE_BLOBS"`
	Direction int    `yaml:"direction" env:"ORDBOG_SOURCE_DIRECTION" env-default:"1"`
	Encoding  string `yaml:"encoding"  env:"ORDBOG_SOURCE_ENCODING"  env-default:"utf-8"`
}

// WordlistConfig locates the full-form wordlist.
type WordlistConfig struct {
	// Glob matches the wordlist files. The greatest match is used.
	Glob               string `yaml:"glob"                  env:"ORDBOG_WORDLIST_GLOB"`
	Header             bool   `yaml:"header"                env:"ORDBOG_WORDLIST_HEADER"`
	IgnorePartOfSpeech bool   `yaml:"ignore_part_of_speech" env:"ORDBOG_WORDLIST_IGNORE_PART_OF_SPEECH"`
}

// ConvertConfig holds pipeline settings.
type ConvertConfig struct {
	Inflections string `yaml:"inflections" env:"ORDBOG_CONVERT_INFLECTIONS" env-default:"both"`
	Synonyms    bool   `yaml:"synonyms"    env:"ORDBOG_CONVERT_SYNONYMS"`
	SkipIdioms  bool   `yaml:"skip_idioms" env:"ORDBOG_CONVERT_SKIP_IDIOMS"`

	// Workers is the number of decoding workers. Zero uses one per CPU.
	Workers int `yaml:"workers" env:"ORDBOG_CONVERT_WORKERS"`

	// KeepMarkup disables list and div simplification.
	KeepMarkup bool `yaml:"keep_markup" env:"ORDBOG_CONVERT_KEEP_MARKUP"`

	// FollowLinks reads entries that refer to another entry as that entry.
	FollowLinks bool `yaml:"follow_links" env:"ORDBOG_CONVERT_FOLLOW_LINKS"`
}

// OutputConfig holds output settings.
type OutputConfig struct {
	Formats  []string `yaml:"formats"  env:"ORDBOG_OUTPUT_FORMATS"  env-default:"babylon"`
	Dir      string   `yaml:"dir"      env:"ORDBOG_OUTPUT_DIR"      env-default:"."`
	Name     string   `yaml:"name"     env:"ORDBOG_OUTPUT_NAME"     env-default:"ordbog"`
	BookName string   `yaml:"bookname" env:"ORDBOG_OUTPUT_BOOKNAME" env-default:"Gyldendals Røde Ordbøger: Dansk-Engelsk"`
	Author   string   `yaml:"author"   env:"ORDBOG_OUTPUT_AUTHOR"   env-default:"Gyldendals"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"ORDBOG_LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"ORDBOG_LOG_FORMAT" env-default:"text"`
}

// PatchesConfig holds record corrections added to the built-in tables. A
// patch replaces the built-in patch for the same record id.
type PatchesConfig struct {
	Record record.Patches `yaml:"record"`
	Markup record.Patches `yaml:"markup"`
}
