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

// Package kindle writes Kindle dictionary sources: HTML documents of
// idx:entry elements compiled into a dictionary by Kindle publishing tools.
package kindle

import (
	"bufio"
	"errors"
	"fmt"
	"html"
	"io"
	"strconv"
)

// ErrInvalidEntry indicates an entry that cannot be written.
var ErrInvalidEntry = errors.New("invalid entry")

const (
	documentStart = `<html xmlns:math="http://exslt.org/math" xmlns:svg="http://www.w3.org/2000/svg" ` +
		`xmlns:tl="https://kindlegen.s3.amazonaws.com/AmazonKindlePublishingGuidelines.pdf" ` +
		`xmlns:saxon="http://saxon.sf.net/" xmlns:xs="http://www.w3.org/2001/XMLSchema" ` +
		`xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" xmlns:cx="https://kindlegen.s3.amazonaws.com/AmazonKindlePublishingGuidelines.pdf" ` +
		`xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:mbp="https://kindlegen.s3.amazonaws.com/AmazonKindlePublishingGuidelines.pdf" ` +
		`xmlns:mmc="https://kindlegen.s3.amazonaws.com/AmazonKindlePublishingGuidelines.pdf" ` +
		`xmlns:idx="https://kindlegen.s3.amazonaws.com/AmazonKindlePublishingGuidelines.pdf">` +
		`<head><meta http-equiv="Content-Type" content="text/html; charset=utf-8"></head>` +
		`<body><mbp:frameset>` + "\n"
	documentEnd = "\n</mbp:frameset></body></html>\n"
)

// Entry is a dictionary entry.
type Entry struct {
	// ID is the entry's anchor. Links to "#ID" jump to the entry.
	ID int

	// Word is the entry's display word.
	Word string

	// Inflections are the other words the entry is found under.
	Inflections []string

	// Body is the entry's HTML.
	Body string
}

// Options are options for the Writer.
type Options struct {
	// Document wraps the entries in an HTML document with the namespaces
	// Kindle publishing tools expect. Otherwise only the entries are written.
	Document bool
}

// DefaultOptions is the default options for the Writer.
var DefaultOptions = &Options{
	Document: true,
}

// Writer writes Kindle dictionary entries. Entries are separated by
// newlines.
type Writer struct {
	w    *bufio.Writer
	opts *Options

	entries int
}

// NewWriter returns a new Writer writing to w.
func NewWriter(w io.Writer, opts *Options) *Writer {
	if opts == nil {
		opts = DefaultOptions
	}
	return &Writer{
		w:    bufio.NewWriter(w),
		opts: opts,
	}
}

// Add writes an entry.
func (w *Writer) Add(e *Entry) error {
	if e.Word == "" {
		return fmt.Errorf("%w: %d: missing word", ErrInvalidEntry, e.ID)
	}

	if w.entries == 0 && w.opts.Document {
		w.w.WriteString(documentStart)
	}
	if w.entries > 0 {
		w.w.WriteString("\n")
	}

	w.w.WriteString(`<idx:entry scriptable="yes" spell="yes" id="` + strconv.Itoa(e.ID) + `">`)
	w.w.WriteString(`<idx:orth value="` + html.EscapeString(e.Word) + `">`)
	if len(e.Inflections) > 0 {
		w.w.WriteString("<idx:infl>")
		for _, infl := range e.Inflections {
			w.w.WriteString(`<idx:iform value="` + html.EscapeString(infl) + `"/>`)
		}
		w.w.WriteString("</idx:infl>")
	}
	w.w.WriteString("</idx:orth>")
	w.w.WriteString(e.Body)
	if _, err := w.w.WriteString("</idx:entry><hr/>"); err != nil {
		return fmt.Errorf("writing kindle entry: %w", err)
	}

	w.entries++
	return nil
}

// Entries returns the number of entries written.
func (w *Writer) Entries() int {
	return w.entries
}

// Close finishes the document and flushes buffered data to the underlying
// writer. It does not close the underlying writer.
func (w *Writer) Close() error {
	if w.opts.Document {
		if w.entries == 0 {
			w.w.WriteString(documentStart)
		}
		w.w.WriteString(documentEnd)
	}
	if err := w.w.Flush(); err != nil {
		return fmt.Errorf("writing kindle entry: %w", err)
	}
	return nil
}
