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

// Package record decodes the binary records of a dictionary export into
// lexical entries.
//
// A record is a sequence of NUL separated fields. The text before the first
// NUL is a header. The fifth field after the header is the headword label,
// preceded by a single marker character, and the sixth field is the part of
// speech tag. The entry's HTML markup is the span between the last two NULs.
// A record with empty markup describes an inflected form of another headword
// in prose, for example:
//
//	biler er flertal af bil sb.
package record

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"

	"github.com/ianlewis/go-ordbog/entry"
	"github.com/ianlewis/go-ordbog/internal/folding"
	"github.com/ianlewis/go-ordbog/markup"
)

const sep = "\x00"

var (
	// ErrUnknownEncoding indicates that a character encoding name is not
	// recognized.
	ErrUnknownEncoding = errors.New("unknown encoding")

	errMissingForm     = errors.New("missing inflected form")
	errMissingHeadword = errors.New("missing headword")
)

// Options are options for the Decoder.
type Options struct {
	// Encoding is the character encoding of record bytes.
	Encoding encoding.Encoding

	// Patches are applied to the decoded text of records.
	Patches Patches

	// MarkupPatches are applied to the markup of records before parsing.
	MarkupPatches Patches

	// Markup are the options for parsing markup.
	Markup *markup.Options

	// Logger receives a warning for every record that could not be decoded.
	Logger *slog.Logger
}

// DefaultOptions is the default options for the Decoder.
var DefaultOptions = &Options{
	Encoding:      unicode.UTF8,
	Patches:       DefaultPatches,
	MarkupPatches: DefaultMarkupPatches,
	Markup:        markup.DefaultOptions,
}

// LookupEncoding returns the encoding with the given WHATWG name or label.
func LookupEncoding(name string) (encoding.Encoding, error) {
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
	return enc, nil
}

// Decoder decodes records into entries. A Decoder is safe for concurrent
// use.
type Decoder struct {
	opts Options
}

// NewDecoder returns a new Decoder.
func NewDecoder(opts *Options) *Decoder {
	if opts == nil {
		opts = DefaultOptions
	}
	d := &Decoder{opts: *opts}
	if d.opts.Encoding == nil {
		d.opts.Encoding = unicode.UTF8
	}
	if d.opts.Markup == nil {
		d.opts.Markup = markup.DefaultOptions
	}
	if d.opts.Logger == nil {
		d.opts.Logger = slog.Default()
	}
	return d
}

// Decode decodes the record with the given id. Decode never fails. Records
// that cannot be decoded are returned as Partial entries holding the reason.
func (d *Decoder) Decode(id int, b []byte) *entry.Entry {
	text, err := d.opts.Encoding.NewDecoder().String(string(b))
	if err != nil {
		d.opts.Logger.Warn("invalid record encoding", "id", id, "reason", err)
		text = strings.ToValidUTF8(string(b), string(utf8.RuneError))
	}
	text = d.opts.Patches.Apply(id, text)

	e := d.decode(id, text)
	if e.Kind == entry.Partial {
		d.opts.Logger.Warn("partial record", "id", id, "label", e.Label, "reason", e.Reason)
	}
	return e
}

func (d *Decoder) decode(id int, text string) *entry.Entry {
	fields := strings.Split(text, sep)

	var label, pos string
	if len(fields) > 4 {
		label = folding.Label(dropFirstRune(fields[4]))
	}
	if len(fields) > 5 {
		pos = strings.TrimSpace(fields[5])
	}

	if len(fields) < 3 {
		e := entry.NewPartial(id, text, fmt.Errorf("%w: %d fields", entry.ErrMalformedRecord, len(fields)))
		e.Label = label
		return e
	}

	html := strings.TrimSpace(fields[len(fields)-2])
	if html == "" {
		headword, form, err := parseInflection(text)
		if err != nil {
			e := entry.NewPartial(id, text, err)
			e.Label = label
			return e
		}
		e := entry.NewInflection(id, headword, form)
		e.Label = label
		e.PartOfSpeech = pos
		return e
	}

	html = d.opts.MarkupPatches.Apply(id, markup.Repair(html))
	f, err := markup.Parse(html, d.opts.Markup)
	if err != nil {
		e := entry.NewPartial(id, html, err)
		e.Label = label
		return e
	}

	e := entry.NewHeadword(id, f.Headword, f.PrimaryWord, f.AlternativeWords)
	e.Label = label
	e.PartOfSpeech = pos
	e.RawMarkup = html
	return e
}

// parseInflection extracts the headword and inflected form from the prose of
// an inflection record.
func parseInflection(text string) (string, string, error) {
	clean := strings.TrimRightFunc(strings.ReplaceAll(text, sep, ""), isSpace)
	// Drop a trailing remark in parentheses.
	if strings.HasSuffix(clean, ")") {
		if i := strings.LastIndex(clean, "("); i >= 0 {
			clean = clean[:i]
		}
	}

	// The headword follows the last " af " and is terminated by the
	// abbreviated word class, e.g. "sb." or "vb.".
	start := strings.LastIndex(clean, " af ")
	if start < 0 {
		return "", "", fmt.Errorf("%w: %w", entry.ErrMalformedRecord, errMissingHeadword)
	}
	rest := clean[start+len(" af "):]
	end := strings.Index(rest, "b.")
	if end < 0 {
		return "", "", fmt.Errorf("%w: %w", entry.ErrMalformedRecord, errMissingHeadword)
	}
	headword := rest[:end]
	i := strings.LastIndex(headword, " ")
	if i < 0 {
		return "", "", fmt.Errorf("%w: %w", entry.ErrMalformedRecord, errMissingHeadword)
	}
	headword = strings.TrimSpace(headword[:i])

	// The inflected form starts the field holding the last " er ".
	end = strings.LastIndex(text, " er ")
	if end < 0 {
		return "", "", fmt.Errorf("%w: %w", entry.ErrMalformedRecord, errMissingForm)
	}
	start = strings.LastIndex(text[:end], sep)
	if start < 0 {
		return "", "", fmt.Errorf("%w: %w", entry.ErrMalformedRecord, errMissingForm)
	}
	form := strings.TrimSpace(text[start+len(sep) : end])

	if headword == "" {
		return "", "", fmt.Errorf("%w: %w", entry.ErrMalformedRecord, errMissingHeadword)
	}
	if form == "" {
		return "", "", fmt.Errorf("%w: %w", entry.ErrMalformedRecord, errMissingForm)
	}
	return headword, form, nil
}

func dropFirstRune(s string) string {
	_, size := utf8.DecodeRuneInString(s)
	return s[size:]
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
