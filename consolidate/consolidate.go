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

// Package consolidate groups dictionary entries that share words into the
// blocks of a glossary.
package consolidate

import (
	"slices"
	"strconv"
	"strings"

	"github.com/ianlewis/go-ordbog/entry"
)

// Group is a glossary block. Its words are rendered together as the block's
// headwords and its entries' bodies are combined.
type Group struct {
	Words   []string
	Entries []*entry.Entry
}

// Options are options for Consolidate.
type Options struct {
	// SupportSynonyms keeps words that share the same entries in a single
	// group. If false every group holds exactly one word.
	SupportSynonyms bool

	// PluralMarker identifies the markup of entries that describe the plural
	// of a noun.
	PluralMarker string

	// LinkMarker identifies the markup of entries that refer to another entry.
	LinkMarker string
}

// DefaultOptions is the default options for Consolidate.
var DefaultOptions = &Options{
	PluralMarker: "<i>pl. af sb.</i></font></h3>",
	LinkMarker:   `se <a href="lookup`,
}

// Consolidate groups the headword entries of a corpus. Entries are taken in
// order; each entry is collected together with the remaining entries sharing
// one of its words and the collection is then split into groups of words
// owned by exactly the same entries. Collection follows a single hop: entries
// connected only through an intermediate entry are not collected together.
func Consolidate(entries []*entry.Entry, opts *Options) []*Group {
	if opts == nil {
		opts = DefaultOptions
	}

	index := make(map[string][]*entry.Entry)
	for _, e := range entries {
		if !e.IsHeadword() {
			continue
		}
		for _, w := range e.Words {
			index[w] = append(index[w], e)
		}
	}

	var groups []*Group
	done := make(map[*entry.Entry]bool)
	for _, e := range entries {
		if !e.IsHeadword() || done[e] {
			continue
		}

		collected := []*entry.Entry{e}
		done[e] = true
		for _, w := range e.Words {
			for _, other := range index[w] {
				if !done[other] {
					collected = append(collected, other)
					done[other] = true
				}
			}
		}

		if len(collected) == 1 {
			groups = append(groups, &Group{
				Words:   slices.Clone(e.Words),
				Entries: collected,
			})
			continue
		}

		collected = dropRedundantPlurals(collected, opts)
		groups = append(groups, partition(collected)...)
	}

	if opts.SupportSynonyms {
		return groups
	}

	var single []*Group
	for _, g := range groups {
		for _, w := range g.Words {
			single = append(single, &Group{
				Words:   []string{w},
				Entries: g.Entries,
			})
		}
	}
	return single
}

// dropRedundantPlurals removes plural cross-reference entries when the
// collection has a single canonical entry. A collection has a canonical entry
// when all its entries share one headword and exactly one of them has it as
// primary word.
func dropRedundantPlurals(collected []*entry.Entry, opts *Options) []*entry.Entry {
	if opts.PluralMarker == "" || opts.LinkMarker == "" {
		return collected
	}

	hw := collected[0].Headword
	var canonical *entry.Entry
	for _, e := range collected {
		if e.Headword != hw {
			return collected
		}
		if e.PrimaryWord == hw {
			if canonical != nil {
				return collected
			}
			canonical = e
		}
	}
	if canonical == nil {
		return collected
	}

	kept := make([]*entry.Entry, 0, len(collected))
	for _, e := range collected {
		if e != canonical &&
			isSubset(e.Words, canonical.Words) &&
			strings.Contains(e.RawMarkup, opts.PluralMarker) &&
			strings.Contains(e.RawMarkup, opts.LinkMarker) {
			continue
		}
		kept = append(kept, e)
	}
	return kept
}

// partition splits the collected entries into groups keyed by the set of
// entries owning each word.
func partition(collected []*entry.Entry) []*Group {
	var groups []*Group
	bySignature := make(map[string]*Group)
	seen := make(map[string]bool)
	for _, e := range collected {
		for _, w := range e.Words {
			if seen[w] {
				continue
			}
			seen[w] = true

			var owners []*entry.Entry
			for _, o := range collected {
				if slices.Contains(o.Words, w) {
					owners = append(owners, o)
				}
			}

			sig := signature(owners)
			g, ok := bySignature[sig]
			if !ok {
				g = &Group{Entries: owners}
				bySignature[sig] = g
				groups = append(groups, g)
			}
			g.Words = append(g.Words, w)
		}
	}
	return groups
}

// signature returns the sorted ids of entries joined with "|".
func signature(entries []*entry.Entry) string {
	ids := make([]int, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	slices.Sort(ids)

	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, "|")
}

func isSubset(words, of []string) bool {
	for _, w := range words {
		if !slices.Contains(of, w) {
			return false
		}
	}
	return true
}
