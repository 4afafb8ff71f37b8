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

package ordbog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ianlewis/go-ordbog/consolidate"
	"github.com/ianlewis/go-ordbog/entry"
	"github.com/ianlewis/go-ordbog/inflect"
	"github.com/ianlewis/go-ordbog/record"
	"github.com/ianlewis/go-ordbog/source"
)

// ErrInvalidOptions indicates converter options that cannot be used.
var ErrInvalidOptions = errors.New("invalid options")

// InflectionMode selects the sources of inflected forms.
type InflectionMode string

const (
	// InflectionsNone adds no inflected forms.
	InflectionsNone InflectionMode = "none"

	// InflectionsWordlist adds forms from the full-form wordlist.
	InflectionsWordlist InflectionMode = "wordlist"

	// InflectionsRecords adds forms from the corpus' inflection records.
	InflectionsRecords InflectionMode = "records"

	// InflectionsBoth adds forms from the inflection records, then from the
	// wordlist. A form claimed by a record is not reassigned by the wordlist.
	InflectionsBoth InflectionMode = "both"
)

// Options are options for the Converter.
type Options struct {
	// IndexPath is the path of the SQLite index store.
	IndexPath string

	// BlobPath is the path of the blob file.
	BlobPath string

	// Direction is the lookup direction of the entries table.
	Direction int

	// FollowLinks replaces vectors referring to another entry by the vector
	// of that entry.
	FollowLinks bool

	// Record are the options for decoding records.
	Record *record.Options

	// Inflections selects the sources of inflected forms. Defaults to
	// InflectionsBoth.
	Inflections InflectionMode

	// WordlistGlob matches the full-form wordlist files.
	WordlistGlob string

	// Wordlist are the options for reading the wordlist.
	Wordlist *inflect.ScannerOptions

	// Enrich are the options for adding inflected forms.
	Enrich *inflect.Options

	// Consolidate are the options for grouping entries.
	Consolidate *consolidate.Options

	// SkipIdioms leaves idiom entries out of the output.
	SkipIdioms bool

	// KeepMarkup disables list and div simplification of article bodies.
	KeepMarkup bool

	// Workers is the number of records decoded concurrently. Zero uses one
	// worker per CPU.
	Workers int

	// BookName and Author are written to the output headers.
	BookName string
	Author   string

	Outputs []Output

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Stats summarize a conversion.
type Stats struct {
	// Records is the number of records read.
	Records int

	// Kinds counts the decoded entries by kind.
	Kinds map[entry.Kind]int

	// WordlistRows is the number of wordlist rows used.
	WordlistRows int

	// FormsAdded is the number of inflected forms added to entries.
	FormsAdded int

	// Groups is the number of glossary groups.
	Groups int

	// Degraded is the number of links that could not be resolved.
	Degraded int

	// Files are the paths of the written files.
	Files []string

	Duration time.Duration
}

// Converter converts a dictionary export.
type Converter struct {
	opts Options
	log  *slog.Logger
}

// NewConverter returns a new Converter.
func NewConverter(opts *Options) (*Converter, error) {
	if opts == nil {
		return nil, fmt.Errorf("%w: missing options", ErrInvalidOptions)
	}
	c := &Converter{opts: *opts}

	if c.opts.IndexPath == "" || c.opts.BlobPath == "" {
		return nil, fmt.Errorf("%w: missing index or blob path", ErrInvalidOptions)
	}
	if c.opts.Direction <= 0 {
		return nil, fmt.Errorf("%w: direction %d", ErrInvalidOptions, c.opts.Direction)
	}

	switch c.opts.Inflections {
	case "":
		c.opts.Inflections = InflectionsBoth
	case InflectionsNone, InflectionsWordlist, InflectionsRecords, InflectionsBoth:
	default:
		return nil, fmt.Errorf("%w: inflection mode %q", ErrInvalidOptions, c.opts.Inflections)
	}

	if len(c.opts.Outputs) == 0 {
		return nil, fmt.Errorf("%w: no outputs", ErrInvalidOptions)
	}
	for _, o := range c.opts.Outputs {
		switch o.Format {
		case Babylon, Stardict, Kindle:
		default:
			return nil, fmt.Errorf("%w: format %q", ErrInvalidOptions, o.Format)
		}
		if o.Path == "" {
			return nil, fmt.Errorf("%w: missing %s output path", ErrInvalidOptions, o.Format)
		}
	}

	if c.opts.Workers <= 0 {
		c.opts.Workers = runtime.NumCPU()
	}
	if c.opts.Consolidate == nil {
		c.opts.Consolidate = consolidate.DefaultOptions
	}

	c.log = c.opts.Logger
	if c.log == nil {
		c.log = slog.Default()
	}
	return c, nil
}

// Run converts the export and writes the outputs. Outputs only replace
// existing files if the conversion succeeds.
func (c *Converter) Run(ctx context.Context) (*Stats, error) {
	start := time.Now()
	stats := &Stats{
		Kinds: make(map[entry.Kind]int),
	}

	entries, err := c.decode(ctx)
	if err != nil {
		return nil, err
	}
	stats.Records = len(entries)

	var headwords, inflections []*entry.Entry
	for _, e := range entries {
		stats.Kinds[e.Kind]++
		switch e.Kind {
		case entry.Standard:
			headwords = append(headwords, e)
		case entry.Idiom:
			if !c.opts.SkipIdioms {
				headwords = append(headwords, e)
			}
		case entry.Inflection, entry.IdiomInflection:
			inflections = append(inflections, e)
		case entry.Partial:
		}
	}
	c.log.Info("decoded records",
		"records", len(entries),
		"headwords", len(headwords),
		"inflections", len(inflections),
		"partial", stats.Kinds[entry.Partial],
	)

	if err := c.enrich(headwords, inflections, stats); err != nil {
		return nil, err
	}

	groups := consolidate.Consolidate(headwords, c.opts.Consolidate)
	stats.Groups = len(groups)
	c.log.Info("consolidated entries", "groups", len(groups))

	if err := c.write(ctx, headwords, groups, stats); err != nil {
		return nil, err
	}

	stats.Duration = time.Since(start)
	c.log.Info("conversion finished",
		"groups", stats.Groups,
		"forms_added", stats.FormsAdded,
		"degraded_links", stats.Degraded,
		"duration", stats.Duration,
	)
	return stats, nil
}

// decode reads and decodes every record of the export. Records are decoded
// concurrently and returned in index order.
func (c *Converter) decode(ctx context.Context) ([]*entry.Entry, error) {
	vectors, err := source.OpenVectors(c.opts.IndexPath, c.opts.Direction)
	if err != nil {
		return nil, err
	}
	defer vectors.Close()

	blobs, err := source.OpenBlobs(c.opts.BlobPath)
	if err != nil {
		return nil, err
	}
	defer blobs.Close()

	n, err := vectors.Count(ctx)
	if err != nil {
		return nil, err
	}
	vecs, err := vectors.List(ctx, 0, n)
	if err != nil {
		return nil, err
	}
	if c.opts.FollowLinks {
		if vecs, err = follow(ctx, vectors, vecs); err != nil {
			return nil, err
		}
	}
	c.log.Info("reading records", "vectors", len(vecs), "workers", c.opts.Workers)

	recordOpts := *record.DefaultOptions
	if c.opts.Record != nil {
		recordOpts = *c.opts.Record
	}
	if recordOpts.Logger == nil {
		recordOpts.Logger = c.log
	}
	decoder := record.NewDecoder(&recordOpts)

	entries := make([]*entry.Entry, len(vecs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.Workers)
	for i, v := range vecs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("decoding records: %w", err)
			}
			b, err := blobs.Bytes(v)
			if err != nil {
				return err
			}
			entries[i] = decoder.Decode(v.EntryID, b)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}

// follow replaces link vectors by the vectors they refer to. Each entry is
// kept once.
func follow(ctx context.Context, vectors *source.Vectors, vecs []source.Vector) ([]source.Vector, error) {
	seen := make(map[int]bool, len(vecs))
	followed := make([]source.Vector, 0, len(vecs))
	for _, v := range vecs {
		if v.LinkID != v.EntryID {
			var err error
			if v, err = vectors.Follow(ctx, v); err != nil {
				return nil, err
			}
		}
		if seen[v.EntryID] {
			continue
		}
		seen[v.EntryID] = true
		followed = append(followed, v)
	}
	return followed, nil
}

// enrich adds inflected forms to the headword entries.
func (c *Converter) enrich(headwords, inflections []*entry.Entry, stats *Stats) error {
	if c.opts.Inflections == InflectionsNone {
		return nil
	}

	enrichOpts := *inflect.DefaultOptions
	if c.opts.Enrich != nil {
		enrichOpts = *c.opts.Enrich
	}
	if enrichOpts.Logger == nil {
		enrichOpts.Logger = c.log
	}
	enricher := inflect.NewEnricher(headwords, &enrichOpts)

	if c.opts.Inflections == InflectionsRecords || c.opts.Inflections == InflectionsBoth {
		n := enricher.MergeRecords(inflections)
		stats.FormsAdded += n
		c.log.Info("merged inflection records", "records", len(inflections), "forms", n)
	}

	if c.opts.Inflections == InflectionsWordlist || c.opts.Inflections == InflectionsBoth {
		wl, err := inflect.Load(c.opts.WordlistGlob, c.opts.Wordlist)
		switch {
		case errors.Is(err, inflect.ErrMissingWordlist):
			c.log.Warn("no wordlist, continuing without wordlist forms", "glob", c.opts.WordlistGlob, "reason", err)
		case err != nil:
			return err
		default:
			c.log.Info("loaded wordlist",
				"path", wl.Path(),
				"rows", wl.Len(),
				"skipped", wl.Skipped(),
				"dropped", wl.Dropped(),
			)
			stats.WordlistRows = wl.Len()
		}

		n := enricher.AddForms(wl)
		stats.FormsAdded += n
		c.log.Info("added wordlist forms", "forms", n)
	}
	return nil
}
