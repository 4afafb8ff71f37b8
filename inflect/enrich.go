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

package inflect

import (
	"log/slog"

	"github.com/ianlewis/go-ordbog/entry"
	"github.com/ianlewis/go-ordbog/internal/folding"
)

// Options are options for the Enricher.
type Options struct {
	// MatchPartOfSpeech restricts wordlist rows to those whose part of speech
	// is contained in the entry's part of speech.
	MatchPartOfSpeech bool

	Logger *slog.Logger
}

// DefaultOptions is the default options for the Enricher.
var DefaultOptions = &Options{
	MatchPartOfSpeech: true,
}

// Enricher adds inflected forms to the words of Standard entries. A form is
// never added to an entry that already lists it, and never added when
// another entry of the corpus already owns it.
type Enricher struct {
	entries []*entry.Entry

	// owners maps folded words to the first entry listing them.
	owners map[string]*entry.Entry

	opts Options
}

// NewEnricher returns a new Enricher over the given corpus of entries.
func NewEnricher(entries []*entry.Entry, opts *Options) *Enricher {
	if opts == nil {
		opts = DefaultOptions
	}
	en := &Enricher{
		entries: entries,
		owners:  make(map[string]*entry.Entry),
		opts:    *opts,
	}
	if en.opts.Logger == nil {
		en.opts.Logger = slog.Default()
	}

	for _, e := range entries {
		if !e.IsHeadword() {
			continue
		}
		for _, w := range e.Words {
			k := folding.Fold(w)
			if _, ok := en.owners[k]; !ok {
				en.owners[k] = e
			}
		}
	}
	return en
}

// AddForms adds the inflected forms listed in the wordlist to every Standard
// entry with a headword. It returns the number of forms added.
func (en *Enricher) AddForms(wl *Wordlist) int {
	total := 0
	for _, e := range en.entries {
		if e.Kind != entry.Standard || e.Headword == "" {
			continue
		}

		var rows []*Row
		if en.opts.MatchPartOfSpeech {
			rows = wl.LookupPOS(e.Headword, e.PartOfSpeech)
		} else {
			rows = wl.Lookup(e.Headword)
		}

		var added []string
		for _, r := range rows {
			if en.add(e, r.InflectedForm) {
				added = append(added, r.InflectedForm)
			}
		}
		if len(added) > 0 {
			en.opts.Logger.Debug("added inflected forms",
				"id", e.ID,
				"headword", e.Headword,
				"forms", added,
			)
		}
		total += len(added)
	}
	return total
}

// MergeRecords adds the forms described by inflection records to the Standard
// entries they inflect. Records are grouped by headword and part of speech and
// each group's forms are added to every entry with the same headword, ignoring
// case, whose part of speech contains the group's. It returns the number of
// forms added.
func (en *Enricher) MergeRecords(records []*entry.Entry) int {
	type group struct {
		headword string
		pos      string
		forms    []string
	}
	var groups []*group
	byKey := make(map[[2]string]*group)
	for _, r := range records {
		if r.Kind != entry.Inflection && r.Kind != entry.IdiomInflection {
			continue
		}
		k := [2]string{r.Headword, r.PartOfSpeech}
		g, ok := byKey[k]
		if !ok {
			g = &group{headword: r.Headword, pos: r.PartOfSpeech}
			byKey[k] = g
			groups = append(groups, g)
		}
		g.forms = append(g.forms, r.InflectedForm)
	}

	total := 0
	for _, g := range groups {
		if g.pos == "" {
			continue
		}
		for _, e := range en.entries {
			if e.Kind != entry.Standard || e.PartOfSpeech == "" {
				continue
			}
			if !folding.Equal(e.Headword, g.headword) || !folding.Contains(e.PartOfSpeech, g.pos) {
				continue
			}

			var added []string
			for _, form := range g.forms {
				if en.add(e, form) {
					added = append(added, form)
				}
			}
			if len(added) > 0 {
				en.opts.Logger.Debug("merged inflection records",
					"id", e.ID,
					"headword", e.Headword,
					"forms", added,
				)
			}
			total += len(added)
		}
	}
	return total
}

// Owner returns the entry owning the word w, ignoring case.
func (en *Enricher) Owner(w string) *entry.Entry {
	return en.owners[folding.Fold(w)]
}

func (en *Enricher) add(e *entry.Entry, form string) bool {
	if form == "" || e.HasWord(form) || e.HasAlternativeWord(form) {
		return false
	}
	k := folding.Fold(form)
	if owner, ok := en.owners[k]; ok && owner != e {
		return false
	}
	if !e.AddWord(form) {
		return false
	}
	en.owners[k] = e
	return true
}
