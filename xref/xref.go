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

// Package xref rewrites the cross-reference links of entry markup to links a
// glossary reader can follow.
//
// Entry markup contains three kinds of links:
//
//	<a href="lookup://1:4711">stol</a>      a link to the entry with id 4711
//	<a href="search://1:stole">stole</a>    a link to the entry for a word
//	<a href="expand://gammelt">[INFO]</a>  an expandable remark
//
// Lookup and search links are rewritten to point at the target entry and
// degrade to their text when there is no target. Expand links are replaced by
// their remark in parentheses.
package xref

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"sync/atomic"

	"golang.org/x/net/html"
	"golang.org/x/text/transform"

	"github.com/ianlewis/go-ordbog/entry"
	"github.com/ianlewis/go-ordbog/internal/folding"
)

var (
	lookupLink = regexp.MustCompile(`<a href="lookup://[0-9]+:([0-9]+)"([^>]*)>(.*?)</a>`)
	searchLink = regexp.MustCompile(`<a href="search://[0-9]+:([^"]+)"([^>]*)>(.*?)</a>`)
	infoLink   = regexp.MustCompile(`<a href="expand://([^"]+)">\[INFO\]</a>`)
)

// LinkFunc returns the link target for an entry.
type LinkFunc func(e *entry.Entry) string

// BWord links to the entry's headword with the bword scheme understood by
// StarDict readers.
func BWord(e *entry.Entry) string {
	return "bword://" + e.Headword
}

// Anchor links to the entry's id within the same document.
func Anchor(e *entry.Entry) string {
	return "#" + strconv.Itoa(e.ID)
}

// Options are options for the Resolver.
type Options struct {
	// Link formats the target of resolved links.
	Link LinkFunc

	Logger *slog.Logger
}

// DefaultOptions is the default options for the Resolver.
var DefaultOptions = &Options{
	Link: BWord,
}

// Resolver resolves links against the headword entries of a corpus. A
// Resolver is safe for concurrent use.
type Resolver struct {
	byID   map[int]*entry.Entry
	byWord map[string]*entry.Entry
	byAlt  map[string]*entry.Entry

	opts     Options
	degraded atomic.Int64
}

// NewResolver returns a new Resolver for the given corpus. When several
// entries match a word the first one wins.
func NewResolver(entries []*entry.Entry, opts *Options) *Resolver {
	if opts == nil {
		opts = DefaultOptions
	}
	r := &Resolver{
		byID:   make(map[int]*entry.Entry),
		byWord: make(map[string]*entry.Entry),
		byAlt:  make(map[string]*entry.Entry),
		opts:   *opts,
	}
	if r.opts.Link == nil {
		r.opts.Link = BWord
	}
	if r.opts.Logger == nil {
		r.opts.Logger = slog.Default()
	}

	for _, e := range entries {
		if !e.IsHeadword() {
			continue
		}
		if _, ok := r.byID[e.ID]; !ok {
			r.byID[e.ID] = e
		}
		for _, w := range []string{e.Headword, e.PrimaryWord} {
			setFirst(r.byWord, w, e)
		}
		for _, w := range e.AlternativeWords {
			setFirst(r.byAlt, w, e)
		}
	}
	return r
}

func setFirst(m map[string]*entry.Entry, w string, e *entry.Entry) {
	if w == "" {
		return
	}
	k := folding.Fold(w)
	if _, ok := m[k]; !ok {
		m[k] = e
	}
}

// ByID returns the entry with the given id.
func (r *Resolver) ByID(id int) *entry.Entry {
	return r.byID[id]
}

// ByWord returns the entry whose headword or primary word matches w, or
// failing that the entry listing w as an alternative word. Case is ignored.
func (r *Resolver) ByWord(w string) *entry.Entry {
	k := folding.Fold(w)
	if e, ok := r.byWord[k]; ok {
		return e
	}
	return r.byAlt[k]
}

// Degraded returns the number of links degraded to text.
func (r *Resolver) Degraded() int {
	return int(r.degraded.Load())
}

// Rewrite rewrites all links in body.
func (r *Resolver) Rewrite(body string) string {
	body = r.rewriteLookup(body)
	body = rewriteInfo(body)
	return r.rewriteSearch(body)
}

func (r *Resolver) rewriteLookup(body string) string {
	return lookupLink.ReplaceAllStringFunc(body, func(m string) string {
		sub := lookupLink.FindStringSubmatch(m)
		id, err := strconv.Atoi(sub[1])
		if err == nil {
			if e := r.byID[id]; e != nil {
				return link(r.opts.Link(e), sub[2], sub[3])
			}
		}
		return r.degrade("lookup", sub[1], sub[3])
	})
}

func (r *Resolver) rewriteSearch(body string) string {
	return searchLink.ReplaceAllStringFunc(body, func(m string) string {
		sub := searchLink.FindStringSubmatch(m)
		word := html.UnescapeString(sub[1])
		if e := r.ByWord(word); e != nil {
			return link(r.opts.Link(e), sub[2], sub[3])
		}
		return r.degrade("search", word, sub[3])
	})
}

// rewriteInfo replaces expand links by their remark in parentheses.
func rewriteInfo(body string) string {
	return infoLink.ReplaceAllStringFunc(body, func(m string) string {
		sub := infoLink.FindStringSubmatch(m)
		if strings.Contains(sub[1], "INFO") {
			return m
		}
		return "(" + sub[1] + ")"
	})
}

func (r *Resolver) degrade(kind, target, text string) string {
	r.degraded.Add(1)
	r.opts.Logger.Warn("unresolved link", "kind", kind, "target", target)
	return stripTags(text)
}

func link(href, attrs, text string) string {
	return `<a href="` + html.EscapeString(href) + `"` + attrs + ">" + text + "</a>"
}

func stripTags(s string) string {
	out, _, err := transform.String(&folding.TagStripper{}, s)
	if err != nil {
		return s
	}
	return out
}
