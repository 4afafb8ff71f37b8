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

package main

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-ordbog"
	"github.com/ianlewis/go-ordbog/consolidate"
	"github.com/ianlewis/go-ordbog/entry"
	"github.com/ianlewis/go-ordbog/inflect"
	"github.com/ianlewis/go-ordbog/internal/config"
	"github.com/ianlewis/go-ordbog/internal/logger"
	"github.com/ianlewis/go-ordbog/record"
)

var convertCommand = &cli.Command{
	Name:  "convert",
	Usage: "convert a dictionary export",
	Description: "Reads the index store and blob file of a dictionary export and writes\n" +
		"the configured glossaries. Flags override the configuration file and\n" +
		"ORDBOG_* environment variables.",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "index", Usage: "read vectors from the index store `FILE`"},
		&cli.StringFlag{Name: "blobs", Usage: "read records from the blob `FILE`"},
		&cli.IntFlag{Name: "direction", Usage: "lookup `DIRECTION` of the entries table"},
		&cli.StringFlag{Name: "encoding", Usage: "character `ENCODING` of records"},
		&cli.StringFlag{Name: "wordlist", Usage: "read inflected forms from the wordlist matching `GLOB`"},
		&cli.BoolFlag{Name: "wordlist-header", Usage: "skip the first row of the wordlist"},
		&cli.StringFlag{Name: "inflections", Usage: "inflected form `SOURCE` (none, wordlist, records, both)"},
		&cli.BoolFlag{Name: "synonyms", Usage: "write words sharing an article as synonyms"},
		&cli.BoolFlag{Name: "skip-idioms", Usage: "leave idiom entries out"},
		&cli.BoolFlag{Name: "follow-links", Usage: "read entries referring to another entry as that entry"},
		&cli.BoolFlag{Name: "keep-markup", Usage: "do not simplify article markup"},
		&cli.IntFlag{Name: "workers", Usage: "decode records with `N` workers"},
		&cli.StringSliceFlag{
			Name:    "format",
			Usage:   "write `FORMAT` (babylon, stardict, kindle)",
			Aliases: []string{"f"},
		},
		&cli.StringFlag{Name: "output-dir", Usage: "write outputs to `DIR`", Aliases: []string{"o"}},
		&cli.StringFlag{Name: "name", Usage: "base `NAME` of output files"},
		&cli.BoolFlag{Name: "env-help", Usage: "print the configuration environment variables and exit"},
	},
	Action: runConvert,
}

func runConvert(c *cli.Context) error {
	if c.Bool("env-help") {
		usage, err := config.Usage()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrOrdbog, err)
		}
		_, err = fmt.Fprintln(c.App.Writer, usage)
		return err //nolint:wrapcheck // output error
	}

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	applyFlags(c, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("%w: %w", config.ErrConfig, err)
	}
	log, err := logger.New(logger.Config{
		Writer: c.App.ErrWriter,
		Format: cfg.Log.Format,
		Level:  level,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", config.ErrConfig, err)
	}

	log.Debug("inflection sources", "wordlist", cfg.Convert.UsesWordlist(), "records", cfg.Convert.UsesRecords())
	if cfg.Convert.UsesWordlist() && cfg.Wordlist.Glob == "" {
		log.Warn("no wordlist configured", "inflections", cfg.Convert.Inflections)
	}

	opts, err := newOptions(cfg)
	if err != nil {
		return err
	}
	opts.Logger = log

	conv, err := ordbog.NewConverter(opts)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrOrdbog, err)
	}
	stats, err := conv.Run(c.Context)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrOrdbog, err)
	}

	printStats(c.App.Writer, stats)
	return nil
}

// applyFlags overrides configuration values with the flags set on the
// command line.
func applyFlags(c *cli.Context, cfg *config.Config) {
	setString := func(name string, dst *string) {
		if c.IsSet(name) {
			*dst = c.String(name)
		}
	}
	setBool := func(name string, dst *bool) {
		if c.IsSet(name) {
			*dst = c.Bool(name)
		}
	}
	setInt := func(name string, dst *int) {
		if c.IsSet(name) {
			*dst = c.Int(name)
		}
	}

	setString("index", &cfg.Source.Index)
	setString("blobs", &cfg.Source.Blobs)
	setInt("direction", &cfg.Source.Direction)
	setString("encoding", &cfg.Source.Encoding)

	setString("wordlist", &cfg.Wordlist.Glob)
	setBool("wordlist-header", &cfg.Wordlist.Header)

	setString("inflections", &cfg.Convert.Inflections)
	setBool("synonyms", &cfg.Convert.Synonyms)
	setBool("skip-idioms", &cfg.Convert.SkipIdioms)
	setBool("follow-links", &cfg.Convert.FollowLinks)
	setBool("keep-markup", &cfg.Convert.KeepMarkup)
	setInt("workers", &cfg.Convert.Workers)

	if c.IsSet("format") {
		cfg.Output.Formats = c.StringSlice("format")
	}
	setString("output-dir", &cfg.Output.Dir)
	setString("name", &cfg.Output.Name)

	setString("log-level", &cfg.Log.Level)
	setString("log-format", &cfg.Log.Format)
}

// newOptions returns the converter options for a validated configuration.
func newOptions(cfg *config.Config) (*ordbog.Options, error) {
	enc, err := record.LookupEncoding(cfg.Source.Encoding)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", config.ErrConfig, err)
	}

	recordOpts := *record.DefaultOptions
	recordOpts.Encoding = enc
	recordOpts.Patches = record.DefaultPatches.Merge(cfg.Patches.Record)
	recordOpts.MarkupPatches = record.DefaultMarkupPatches.Merge(cfg.Patches.Markup)

	consolidateOpts := *consolidate.DefaultOptions
	consolidateOpts.SupportSynonyms = cfg.Convert.Synonyms

	enrichOpts := *inflect.DefaultOptions
	enrichOpts.MatchPartOfSpeech = !cfg.Wordlist.IgnorePartOfSpeech

	opts := &ordbog.Options{
		IndexPath:    cfg.Source.Index,
		BlobPath:     cfg.Source.Blobs,
		Direction:    cfg.Source.Direction,
		FollowLinks:  cfg.Convert.FollowLinks,
		Record:       &recordOpts,
		Inflections:  ordbog.InflectionMode(cfg.Convert.Inflections),
		WordlistGlob: cfg.Wordlist.Glob,
		Wordlist:     &inflect.ScannerOptions{Header: cfg.Wordlist.Header},
		Enrich:       &enrichOpts,
		Consolidate:  &consolidateOpts,
		SkipIdioms:   cfg.Convert.SkipIdioms,
		KeepMarkup:   cfg.Convert.KeepMarkup,
		Workers:      cfg.Convert.Workers,
		BookName:     cfg.Output.BookName,
		Author:       cfg.Output.Author,
	}

	base := filepath.Join(cfg.Output.Dir, cfg.Output.Name)
	for _, f := range cfg.Output.Formats {
		format := ordbog.Format(f)
		opts.Outputs = append(opts.Outputs, ordbog.Output{
			Format: format,
			Path:   base + format.Extension(),
		})
	}
	return opts, nil
}

func printStats(w io.Writer, stats *ordbog.Stats) {
	tbl := table.New("Statistic", "Value").WithWriter(w)
	tbl.AddRow("records", stats.Records)
	for _, k := range []entry.Kind{entry.Standard, entry.Idiom, entry.Inflection, entry.IdiomInflection, entry.Partial} {
		tbl.AddRow(k.String(), stats.Kinds[k])
	}
	tbl.AddRow("wordlist rows", stats.WordlistRows)
	tbl.AddRow("forms added", stats.FormsAdded)
	tbl.AddRow("groups", stats.Groups)
	tbl.AddRow("degraded links", stats.Degraded)
	tbl.AddRow("duration", stats.Duration.Round(time.Millisecond))
	for _, f := range stats.Files {
		tbl.AddRow("file", f)
	}
	tbl.Print()
}
