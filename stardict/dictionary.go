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

// Package stardict reads and writes StarDict dictionaries.
//
// A dictionary is made of an .ifo file holding its metadata, an .idx file
// mapping sorted words to article offsets, a dictionary file holding the
// articles, optionally compressed with dictzip, and an optional .syn file
// mapping synonyms to .idx entries. Writer only produces HTML articles
// (sametypesequence=h).
package stardict

import (
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ianlewis/go-dictzip"

	"github.com/ianlewis/go-ordbog/internal/folding"
	"github.com/ianlewis/go-ordbog/internal/index"
)

var (
	// ErrMissingFile indicates a dictionary file that could not be found.
	ErrMissingFile = errors.New("missing dictionary file")

	// ErrInvalidArticle indicates an index entry pointing outside the
	// dictionary file.
	ErrInvalidArticle = errors.New("invalid article")
)

// Article is a dictionary article.
type Article struct {
	// Word is the .idx word the article is filed under.
	Word string

	// Data is the article data.
	Data []byte
}

// key is an index key pointing at an .idx entry.
type key struct {
	word   string
	target *Word
}

func (k key) String() string {
	return k.word
}

// Dictionary is an opened StarDict dictionary.
type Dictionary struct {
	info  *Info
	words []*Word
	index *index.Index[key]

	dict    io.ReaderAt
	closers []io.Closer
}

// Open opens a dictionary from the given .ifo file path. The index and
// synonyms are read into memory. Words are searched case-insensitively.
func Open(ifoPath string) (*Dictionary, error) {
	ext := filepath.Ext(ifoPath)
	if !strings.EqualFold(ext, ".ifo") {
		return nil, fmt.Errorf("%w: bad extension: %q", ErrInvalidInfo, ext)
	}
	base := strings.TrimSuffix(ifoPath, ext)

	ifoFile, err := os.Open(ifoPath)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", ifoPath, err)
	}
	defer ifoFile.Close()

	info, err := ReadInfo(ifoFile)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", ifoPath, err)
	}

	d := &Dictionary{info: info}

	d.words, err = readIdx(base, info.IdxOffsetBits)
	if err != nil {
		return nil, err
	}

	keys := make([]key, 0, len(d.words))
	for _, w := range d.words {
		keys = append(keys, key{word: w.Word, target: w})
	}
	syns, err := readSyn(base)
	if err != nil {
		return nil, err
	}
	for _, s := range syns {
		if int(s.OriginalWordIndex) >= len(d.words) {
			return nil, fmt.Errorf("%w: synonym %q points at %d", ErrInvalidArticle, s.Word, s.OriginalWordIndex)
		}
		keys = append(keys, key{word: s.Word, target: d.words[s.OriginalWordIndex]})
	}
	d.index = index.New(keys, folding.Fold)

	if err := d.openDict(base); err != nil {
		return nil, err
	}

	return d, nil
}

// Info returns the dictionary metadata.
func (d *Dictionary) Info() *Info {
	return d.info
}

// Words returns the .idx entries in file order.
func (d *Dictionary) Words() []*Word {
	return d.words
}

// Search returns the articles indexed under the given word or one of its
// synonyms, ignoring case. Each article is returned once.
func (d *Dictionary) Search(query string) ([]*Article, error) {
	return d.articles(d.index.Search(query))
}

// Prefix returns the articles with a word or synonym starting with the given
// prefix, ignoring case.
func (d *Dictionary) Prefix(prefix string) ([]*Article, error) {
	return d.articles(d.index.Prefix(prefix))
}

func (d *Dictionary) articles(keys []key) ([]*Article, error) {
	var articles []*Article
	seen := map[*Word]bool{}
	for _, k := range keys {
		if seen[k.target] {
			continue
		}
		seen[k.target] = true

		a, err := d.Article(k.target)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	return articles, nil
}

// Article retrieves the article for the given index entry.
func (d *Dictionary) Article(w *Word) (*Article, error) {
	if w.Offset > uint64(1<<63-1) {
		return nil, fmt.Errorf("%w: offset %d", ErrInvalidArticle, w.Offset)
	}
	b := make([]byte, w.Size)
	if len(b) > 0 {
		// ReadAt may return io.EOF along with a full read at the end of the
		// file.
		//nolint:gosec // offset is bounds checked above.
		n, err := d.dict.ReadAt(b, int64(w.Offset))
		if n < len(b) {
			if err == nil {
				err = io.ErrUnexpectedEOF
			}
			return nil, fmt.Errorf("%w: reading %q: %w", ErrInvalidArticle, w.Word, err)
		}
	}
	return &Article{
		Word: w.Word,
		Data: b,
	}, nil
}

// Close closes the dictionary files.
func (d *Dictionary) Close() error {
	var errs []error
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	d.closers = nil
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("closing dictionary: %w", err)
	}
	return nil
}

func findFile(base string, exts ...string) string {
	for _, ext := range exts {
		if _, err := os.Stat(base + ext); err == nil {
			return base + ext
		}
	}
	return ""
}

func readIdx(base string, offsetBits int) ([]*Word, error) {
	idxPath := findFile(base, ".idx", ".idx.gz", ".IDX", ".IDX.gz", ".IDX.GZ")
	if idxPath == "" {
		return nil, fmt.Errorf("%w: %s.idx", ErrMissingFile, base)
	}

	f, err := os.Open(idxPath)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", idxPath, err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.EqualFold(filepath.Ext(idxPath), ".gz") {
		z, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("opening %q: %w", idxPath, err)
		}
		defer z.Close()
		r = z
	}

	s, err := NewIdxScanner(r, offsetBits)
	if err != nil {
		return nil, err
	}
	var words []*Word
	for s.Scan() {
		words = append(words, s.Word())
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("reading %q: %w", idxPath, err)
	}
	return words, nil
}

func readSyn(base string) ([]*Synonym, error) {
	synPath := findFile(base, ".syn", ".SYN")
	if synPath == "" {
		return nil, nil
	}

	f, err := os.Open(synPath)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", synPath, err)
	}
	defer f.Close()

	s := NewSynScanner(f)
	var syns []*Synonym
	for s.Scan() {
		syns = append(syns, s.Synonym())
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("reading %q: %w", synPath, err)
	}
	return syns, nil
}

func (d *Dictionary) openDict(base string) error {
	dictPath := findFile(base, ".dict.dz", ".dict", ".DICT", ".DICT.dz", ".DICT.DZ")
	if dictPath == "" {
		return fmt.Errorf("%w: %s.dict", ErrMissingFile, base)
	}

	f, err := os.Open(dictPath)
	if err != nil {
		return fmt.Errorf("opening %q: %w", dictPath, err)
	}
	d.closers = append(d.closers, f)
	d.dict = f

	if strings.EqualFold(filepath.Ext(dictPath), ".dz") {
		z, err := dictzip.NewReader(f)
		if err != nil {
			_ = f.Close()
			return fmt.Errorf("opening %q: %w", dictPath, err)
		}
		d.closers = append(d.closers, z)
		d.dict = z
	}
	return nil
}
