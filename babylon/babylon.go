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

// Package babylon reads and writes Babylon glossary source files.
//
// A glossary source starts with a header block of "#key=value" lines. Each
// article follows as a line of "|" separated words, a single line of HTML and
// a blank line. StarDict's babylon tools compile the format into a
// dictionary.
package babylon

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	// ErrInvalidWord indicates a word that cannot be written to a glossary.
	ErrInvalidWord = errors.New("invalid word")

	// ErrMalformedGlossary indicates a glossary that could not be read.
	ErrMalformedGlossary = errors.New("malformed glossary")
)

// maxLineSize is the longest line the Scanner reads.
const maxLineSize = 16 << 20

// Header is the header block of a glossary.
type Header struct {
	BookName string
	Author   string
}

// Writer writes a glossary source.
type Writer struct {
	w      *bufio.Writer
	header Header

	wroteHeader bool
	articles    int
}

// NewWriter returns a new Writer writing to w.
func NewWriter(w io.Writer, header Header) *Writer {
	return &Writer{
		w:      bufio.NewWriter(w),
		header: header,
	}
}

func (w *Writer) writeHeader() {
	if w.wroteHeader {
		return
	}
	w.wroteHeader = true

	w.w.WriteString("\n")
	w.w.WriteString("#bookname=" + singleLine(w.header.BookName) + "\n")
	w.w.WriteString("#author=" + singleLine(w.header.Author) + "\n")
	w.w.WriteString("#stripmethod=keep\n")
	w.w.WriteString("#sametypesequence=h\n")
	w.w.WriteString("\n")
}

// Add writes an article indexed under the given words. The body is written
// on a single line.
func (w *Writer) Add(words []string, body string) error {
	if len(words) == 0 {
		return fmt.Errorf("%w: no words", ErrInvalidWord)
	}
	for _, word := range words {
		if word == "" || strings.ContainsAny(word, "|\r\n") {
			return fmt.Errorf("%w: %q", ErrInvalidWord, word)
		}
	}

	w.writeHeader()
	w.w.WriteString(strings.Join(words, "|") + "\n")
	w.w.WriteString(singleLine(body) + "\n")
	if _, err := w.w.WriteString("\n"); err != nil {
		return fmt.Errorf("writing glossary: %w", err)
	}
	w.articles++
	return nil
}

// Articles returns the number of articles written.
func (w *Writer) Articles() int {
	return w.articles
}

// Flush writes any buffered data to the underlying writer. The header is
// written even if no articles were added.
func (w *Writer) Flush() error {
	w.writeHeader()
	if err := w.w.Flush(); err != nil {
		return fmt.Errorf("writing glossary: %w", err)
	}
	return nil
}

func singleLine(s string) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
}

// Article is a glossary article.
type Article struct {
	Words []string
	Body  string
}

// Scanner scans the articles of a glossary source.
type Scanner struct {
	s       *bufio.Scanner
	line    int
	started bool
	header  map[string]string
	article *Article
	err     error
}

// NewScanner returns a new Scanner reading from r.
func NewScanner(r io.Reader) *Scanner {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &Scanner{
		s:      s,
		header: map[string]string{},
	}
}

func (s *Scanner) next() (string, bool) {
	if !s.s.Scan() {
		return "", false
	}
	s.line++
	return strings.TrimSuffix(s.s.Text(), "\r"), true
}

// Scan advances to the next article. It returns false at the end of the
// glossary or on error.
func (s *Scanner) Scan() bool {
	s.article = nil
	if s.err != nil {
		return false
	}

	for {
		line, ok := s.next()
		if !ok {
			s.err = s.s.Err()
			return false
		}
		if line == "" {
			continue
		}
		if !s.started && strings.HasPrefix(line, "#") {
			k, v, _ := strings.Cut(line[1:], "=")
			s.header[k] = v
			continue
		}

		body, ok := s.next()
		if !ok {
			if s.err = s.s.Err(); s.err == nil {
				s.err = fmt.Errorf("%w: line %d: missing body for %q", ErrMalformedGlossary, s.line, line)
			}
			return false
		}
		s.started = true
		s.article = &Article{
			Words: strings.Split(line, "|"),
			Body:  body,
		}
		return true
	}
}

// Article returns the article read by the last call to Scan.
func (s *Scanner) Article() *Article {
	return s.article
}

// Header returns the header values read so far keyed by name without the
// leading "#".
func (s *Scanner) Header() map[string]string {
	return s.header
}

// Err returns the first error encountered.
func (s *Scanner) Err() error {
	if s.err != nil && !errors.Is(s.err, ErrMalformedGlossary) {
		return fmt.Errorf("reading glossary: %w", s.err)
	}
	return s.err
}
