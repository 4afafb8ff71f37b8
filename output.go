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
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/ianlewis/go-ordbog/babylon"
	"github.com/ianlewis/go-ordbog/consolidate"
	"github.com/ianlewis/go-ordbog/entry"
	"github.com/ianlewis/go-ordbog/internal/atomicfile"
	"github.com/ianlewis/go-ordbog/kindle"
	"github.com/ianlewis/go-ordbog/render"
	"github.com/ianlewis/go-ordbog/stardict"
	"github.com/ianlewis/go-ordbog/xref"
)

// Format is an output format.
type Format string

const (
	// Babylon is a Babylon glossary source.
	Babylon Format = "babylon"

	// Stardict is a compiled StarDict dictionary.
	Stardict Format = "stardict"

	// Kindle is a Kindle dictionary source.
	Kindle Format = "kindle"
)

// Output is an output of the conversion.
type Output struct {
	Format Format

	// Path is the output file. For StarDict it is the path of the dictionary
	// files without their extensions.
	Path string
}

// Extension returns the file extension of the format.
func (f Format) Extension() string {
	switch f {
	case Babylon:
		return ".babylon"
	case Kindle:
		return ".html"
	default:
		return ""
	}
}

// write renders the groups and writes every output.
func (c *Converter) write(ctx context.Context, headwords []*entry.Entry, groups []*consolidate.Group, stats *Stats) error {
	var files atomicfile.Set
	defer files.Abort()

	var glossary *bwordRenderer
	var stardicts []Output
	for _, o := range c.opts.Outputs {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("writing outputs: %w", err)
		}

		switch o.Format {
		case Babylon:
			if glossary == nil {
				glossary = c.newBWordRenderer(headwords)
			}
			if err := c.writeBabylon(&files, o.Path, groups, glossary); err != nil {
				return err
			}
			stats.Files = append(stats.Files, o.Path)
		case Stardict:
			if glossary == nil {
				glossary = c.newBWordRenderer(headwords)
			}
			// StarDict files are saved together after the other outputs are
			// staged.
			stardicts = append(stardicts, o)
		case Kindle:
			resolver := xref.NewResolver(headwords, &xref.Options{Link: xref.Anchor, Logger: c.log})
			if err := c.writeKindle(&files, o.Path, headwords, resolver); err != nil {
				return err
			}
			stats.Degraded += resolver.Degraded()
			stats.Files = append(stats.Files, o.Path)
		}
	}

	for _, o := range stardicts {
		info, err := c.writeStardict(o.Path, groups, glossary)
		if err != nil {
			return err
		}
		c.log.Info("wrote stardict dictionary", "path", o.Path, "words", info.WordCount, "synonyms", info.SynWordCount)
		stats.Files = append(stats.Files, o.Path+".ifo")
	}

	if glossary != nil {
		stats.Degraded += glossary.resolver.Degraded()
	}

	if err := files.Commit(); err != nil {
		return fmt.Errorf("writing outputs: %w", err)
	}
	return nil
}

// bwordRenderer renders glossary groups with bword:// links. Groups sharing
// the same entries are rendered once.
type bwordRenderer struct {
	resolver *xref.Resolver
	renderer *render.Renderer
	cache    map[string]string
}

func (c *Converter) newBWordRenderer(headwords []*entry.Entry) *bwordRenderer {
	resolver := xref.NewResolver(headwords, &xref.Options{Link: xref.BWord, Logger: c.log})
	return &bwordRenderer{
		resolver: resolver,
		renderer: render.NewRenderer(resolver, &render.Options{
			Separator:      render.DefaultOptions.Separator,
			Simplify:       !c.opts.KeepMarkup,
			ReduceHeadings: true,
		}),
		cache: make(map[string]string),
	}
}

func (r *bwordRenderer) render(g *consolidate.Group) string {
	ids := make([]string, len(g.Entries))
	for i, e := range g.Entries {
		ids[i] = strconv.Itoa(e.ID)
	}
	key := strings.Join(ids, "|")
	if body, ok := r.cache[key]; ok {
		return body
	}
	body := r.renderer.Render(g.Entries)
	r.cache[key] = body
	return body
}

func (c *Converter) writeBabylon(files *atomicfile.Set, path string, groups []*consolidate.Group, r *bwordRenderer) error {
	f, err := files.Create(path)
	if err != nil {
		return err
	}

	w := babylon.NewWriter(f, babylon.Header{
		BookName: c.opts.BookName,
		Author:   c.opts.Author,
	})
	for _, g := range groups {
		if err := w.Add(g.Words, r.render(g)); err != nil {
			return fmt.Errorf("writing %q: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("writing %q: %w", path, err)
	}

	c.log.Info("wrote babylon glossary", "path", path, "articles", w.Articles())
	return nil
}

func (c *Converter) writeStardict(basePath string, groups []*consolidate.Group, r *bwordRenderer) (*stardict.Info, error) {
	w := stardict.NewWriter(&stardict.WriterOptions{
		BookName: c.opts.BookName,
		Author:   c.opts.Author,
		Synonyms: c.opts.Consolidate.SupportSynonyms,
		Logger:   c.log,
	})
	for _, g := range groups {
		if err := w.Add(g.Words, r.render(g)); err != nil {
			return nil, fmt.Errorf("writing %q: %w", basePath, err)
		}
	}

	info, err := w.Save(basePath)
	if err != nil {
		return nil, fmt.Errorf("writing %q: %w", basePath, err)
	}
	return info, nil
}

func (c *Converter) writeKindle(files *atomicfile.Set, path string, headwords []*entry.Entry, resolver *xref.Resolver) error {
	f, err := files.Create(path)
	if err != nil {
		return err
	}

	renderer := render.NewRenderer(resolver, &render.Options{
		Simplify: !c.opts.KeepMarkup,
	})
	w := kindle.NewWriter(f, kindle.DefaultOptions)
	for _, e := range headwords {
		if e.PrimaryWord == "" {
			c.log.Warn("skipping kindle entry", "id", e.ID, "label", e.Label, "reason", kindle.ErrInvalidEntry)
			continue
		}
		err := w.Add(&kindle.Entry{
			ID:          e.ID,
			Word:        e.PrimaryWord,
			Inflections: slices.DeleteFunc(slices.Clone(e.Words), func(w string) bool { return w == e.PrimaryWord }),
			Body:        renderer.Render([]*entry.Entry{e}),
		})
		if err != nil {
			return fmt.Errorf("writing %q: %w", path, err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("writing %q: %w", path, err)
	}

	c.log.Info("wrote kindle source", "path", path, "entries", w.Entries())
	return nil
}
