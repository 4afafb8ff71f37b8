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

// Package markup parses and normalizes the HTML markup embedded in dictionary
// records.
//
// An entry's markup has the following general shape:
//
//	<h2>stol</h2>
//	<div>(stole; ÷stool)</div>
//	<h3>stol <font><i>sb.</i></font></h3>
//	<ol><li>...</li></ol>
//
// The <h2> holds the headword, the first <div> following it lists alternative
// forms, and the <h3> holds the primary display word followed by an
// annotation.
package markup

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrMalformedMarkup indicates that the markup is missing the required heading
// elements.
var ErrMalformedMarkup = errors.New("malformed markup")

// Options are options for parsing entry markup.
type Options struct {
	// ExcludedMarker marks alternative forms that should be dropped.
	ExcludedMarker string

	// ArticlePrefixes are definite-article prefixes. Alternative forms that
	// start with one of them are reduced to their last word.
	ArticlePrefixes []string

	// Alternations are separators between interchangeable forms. Alternative
	// forms containing one of them are replaced by their first and last word.
	Alternations []string

	// Strip lists strings removed from the primary word.
	Strip []string
}

// DefaultOptions is the default options for Parse.
var DefaultOptions = &Options{
	ExcludedMarker:  "÷",
	ArticlePrefixes: []string{"de ", "den ", "the "},
	Alternations:    []string{" / ", " el. ", " or "},
	Strip:           []string{"®"},
}

// Fragment holds the fields extracted from an entry's markup.
type Fragment struct {
	Headword         string
	PrimaryWord      string
	AlternativeWords []string
}

// Parse extracts the headword, primary word and alternative words from
// entry markup.
func Parse(s string, opts *Options) (*Fragment, error) {
	if opts == nil {
		opts = DefaultOptions
	}

	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedMarkup, err)
	}

	h2 := findFirst(doc, atom.H2)
	if h2 == nil {
		return nil, fmt.Errorf("%w: missing h2", ErrMalformedMarkup)
	}
	h3 := findFirst(doc, atom.H3)
	if h3 == nil {
		return nil, fmt.Errorf("%w: missing h3", ErrMalformedMarkup)
	}

	var f Fragment
	for c := h2.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			f.Headword = strings.TrimSpace(c.Data)
			break
		}
	}

	// The annotation (part of speech, register) is not part of the word.
	for c := h3.FirstChild; c != nil; c = c.NextSibling {
		if isElement(c, atom.Font) {
			h3.RemoveChild(c)
			break
		}
	}
	primary := textContent(h3)
	for _, x := range opts.Strip {
		primary = strings.ReplaceAll(primary, x, "")
	}
	f.PrimaryWord = strings.TrimSpace(primary)

	// Alternative forms are only read from a <div> directly after the <h2>.
	if sib := nextElement(h2); isElement(sib, atom.Div) {
		if t := firstText(sib); t != nil {
			f.AlternativeWords = alternatives(t.Data, opts)
		}
	}

	return &f, nil
}

// alternatives splits the alternative forms block into words.
func alternatives(text string, opts *Options) []string {
	text = strings.Trim(strings.TrimSpace(text), "()")

	var words []string
	for _, tok := range strings.Split(text, ";") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		if opts.ExcludedMarker != "" && strings.HasPrefix(tok, opts.ExcludedMarker) {
			continue
		}

		fields := strings.Fields(tok)
		switch {
		case hasAnyPrefix(tok, opts.ArticlePrefixes):
			words = append(words, fields[len(fields)-1])
		case containsAny(tok, opts.Alternations):
			words = append(words, fields[0], fields[len(fields)-1])
		default:
			words = append(words, tok)
		}
	}
	return words
}

// Repair fixes markup defects shared by many records. Self-closing div tags
// are not valid HTML and swallow the content that follows them.
func Repair(s string) string {
	return strings.ReplaceAll(s, "<div/>", "<div>")
}

// ReduceHeadings demotes every heading one level and removes its margin so
// that entry headings render below the reader's own headword.
func ReduceHeadings(s string) string {
	for i := 10; i > 0; i-- {
		s = strings.ReplaceAll(s, fmt.Sprintf("<h%d>", i), fmt.Sprintf("<h%d style=\"margin:0\">", i+1))
		s = strings.ReplaceAll(s, fmt.Sprintf("</h%d>", i), fmt.Sprintf("</h%d>", i+1))
	}
	return s
}

// TextContent returns the text content of an HTML fragment.
func TextContent(s string) string {
	nodes, err := html.ParseFragment(strings.NewReader(s), contextNode())
	if err != nil {
		return s
	}
	var b strings.Builder
	for _, n := range nodes {
		b.WriteString(textContent(n))
	}
	return b.String()
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
