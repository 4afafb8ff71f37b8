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

// Package inflect enriches dictionary entries with inflected word forms taken
// from a full-form wordlist or from the dictionary's own inflection records.
package inflect

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/ianlewis/go-ordbog/internal/folding"
)

var (
	// ErrMissingWordlist indicates that no wordlist file matched the pattern.
	ErrMissingWordlist = errors.New("missing wordlist")

	errMalformedRow = errors.New("malformed row")
)

// Row is a row of the full-form wordlist.
type Row struct {
	InflectedForm string
	Headword      string

	// HomographNumber distinguishes headwords with the same spelling. It is
	// nil if the row has none.
	HomographNumber *int

	PartOfSpeech string
	ID           int
}

// ScannerOptions are options for scanning a wordlist.
type ScannerOptions struct {
	// Header indicates that the first row is a header and should be skipped.
	Header bool
}

// DefaultScannerOptions is the default options for a Scanner.
var DefaultScannerOptions = &ScannerOptions{}

// Scanner scans the rows of a tab separated wordlist. Malformed rows are
// skipped.
type Scanner struct {
	r       io.ReadCloser
	c       *csv.Reader
	row     *Row
	err     error
	header  bool
	skipped int
}

// NewScanner returns a new wordlist scanner. The Scanner assumes ownership of
// the reader and should be closed with the Close method.
func NewScanner(r io.ReadCloser, options *ScannerOptions) *Scanner {
	if options == nil {
		options = DefaultScannerOptions
	}

	c := csv.NewReader(r)
	c.Comma = '\t'
	c.LazyQuotes = true
	c.FieldsPerRecord = -1

	return &Scanner{
		r:      r,
		c:      c,
		header: options.Header,
	}
}

// Scan advances to the next well formed row. It returns false if the scan
// stops either by reaching the end of the wordlist or an error.
func (s *Scanner) Scan() bool {
	for s.err == nil {
		rec, err := s.c.Read()
		if errors.Is(err, io.EOF) {
			return false
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				s.skipped++
				continue
			}
			s.err = fmt.Errorf("reading wordlist: %w", err)
			return false
		}

		if s.header {
			s.header = false
			continue
		}

		row, err := parseRow(rec)
		if err != nil {
			s.skipped++
			continue
		}
		s.row = row
		return true
	}
	return false
}

// Row returns the current row.
func (s *Scanner) Row() *Row {
	return s.row
}

// Skipped returns the number of malformed rows skipped so far.
func (s *Scanner) Skipped() int {
	return s.skipped
}

// Err returns the first error encountered.
func (s *Scanner) Err() error {
	return s.err
}

// Close closes the underlying reader.
func (s *Scanner) Close() error {
	if err := s.r.Close(); err != nil {
		return fmt.Errorf("closing wordlist: %w", err)
	}
	return nil
}

func parseRow(rec []string) (*Row, error) {
	if len(rec) < 2 {
		return nil, fmt.Errorf("%w: %d fields", errMalformedRow, len(rec))
	}

	r := &Row{
		InflectedForm: strings.TrimSpace(rec[0]),
		Headword:      strings.TrimSpace(rec[1]),
	}
	if r.InflectedForm == "" || r.Headword == "" {
		return nil, fmt.Errorf("%w: empty field", errMalformedRow)
	}

	if len(rec) > 2 {
		if v := strings.TrimSpace(rec[2]); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("%w: homograph number: %w", errMalformedRow, err)
			}
			r.HomographNumber = &n
		}
	}
	if len(rec) > 3 {
		r.PartOfSpeech = strings.TrimSpace(rec[3])
	}
	if len(rec) > 4 {
		if v := strings.TrimSpace(rec[4]); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("%w: id: %w", errMalformedRow, err)
			}
			r.ID = n
		}
	}

	return r, nil
}

// Keep reports whether a row is useful for enrichment. Rows that repeat the
// headword and rows for possessive or genitive forms are dropped.
func Keep(r *Row) bool {
	if strings.EqualFold(r.InflectedForm, r.Headword) {
		return false
	}
	return !strings.HasSuffix(r.InflectedForm, "s") && !strings.HasSuffix(r.InflectedForm, "'")
}

// Wordlist is an immutable index of wordlist rows by headword. A nil
// *Wordlist is an empty wordlist.
type Wordlist struct {
	path    string
	rows    map[string][]*Row
	n       int
	skipped int
	dropped int
}

// NewWordlist indexes the given rows. Rows rejected by Keep are dropped.
func NewWordlist(rows []*Row) *Wordlist {
	wl := &Wordlist{
		rows: make(map[string][]*Row),
	}
	for _, r := range rows {
		if !Keep(r) {
			wl.dropped++
			continue
		}
		k := folding.Fold(r.Headword)
		wl.rows[k] = append(wl.rows[k], r)
		wl.n++
	}
	return wl
}

// Load loads the wordlist from the file matching pattern with the greatest
// name. Wordlist files carry their date in the name so this is the most
// recent one.
func Load(pattern string, options *ScannerOptions) (*Wordlist, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMissingWordlist, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: no file matches %q", ErrMissingWordlist, pattern)
	}
	slices.Sort(matches)
	path := matches[len(matches)-1]

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening wordlist: %w", err)
	}

	s := NewScanner(f, options)
	defer s.Close()

	var rows []*Row
	for s.Scan() {
		rows = append(rows, s.Row())
	}
	if err := s.Err(); err != nil {
		return nil, err
	}

	wl := NewWordlist(rows)
	wl.path = path
	wl.skipped = s.Skipped()
	return wl, nil
}

// Lookup returns the rows for the given headword, ignoring case.
func (wl *Wordlist) Lookup(headword string) []*Row {
	if wl == nil {
		return nil
	}
	return wl.rows[folding.Fold(headword)]
}

// LookupPOS returns the rows for the given headword whose part of speech is
// contained in pos, ignoring case. pos may be a compound of several
// part-of-speech abbreviations. Nothing is returned if pos is empty.
func (wl *Wordlist) LookupPOS(headword, pos string) []*Row {
	if pos == "" {
		return nil
	}
	var rows []*Row
	for _, r := range wl.Lookup(headword) {
		if r.PartOfSpeech != "" && folding.Contains(pos, r.PartOfSpeech) {
			rows = append(rows, r)
		}
	}
	return rows
}

// Path returns the path of the file the wordlist was loaded from.
func (wl *Wordlist) Path() string {
	if wl == nil {
		return ""
	}
	return wl.path
}

// Len returns the number of indexed rows.
func (wl *Wordlist) Len() int {
	if wl == nil {
		return 0
	}
	return wl.n
}

// Skipped returns the number of malformed rows skipped while loading.
func (wl *Wordlist) Skipped() int {
	if wl == nil {
		return 0
	}
	return wl.skipped
}

// Dropped returns the number of rows rejected by Keep.
func (wl *Wordlist) Dropped() int {
	if wl == nil {
		return 0
	}
	return wl.dropped
}
