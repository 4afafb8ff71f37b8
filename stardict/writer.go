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

package stardict

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"slices"

	"github.com/ianlewis/go-dictzip"

	"github.com/ianlewis/go-ordbog/internal/atomicfile"
)

// WriterOptions are options for writing a dictionary.
type WriterOptions struct {
	BookName    string
	Author      string
	Email       string
	Website     string
	Description string

	// Synonyms indexes the first word of each article in the .idx file and
	// the rest in a .syn file. Otherwise every word gets an .idx entry.
	Synonyms bool

	// Logger receives skipped words. Defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultWriterOptions are the default options for a Writer.
var DefaultWriterOptions = &WriterOptions{
	BookName: "ordbog",
}

type pendingSyn struct {
	word    string
	article *Word
}

// Writer builds a StarDict dictionary with HTML articles
// (sametypesequence=h) in memory and saves it with Save.
type Writer struct {
	opts *WriterOptions
	log  *slog.Logger

	dict     bytes.Buffer
	words    []*Word
	syns     []pendingSyn
	articles int
	skipped  int
}

// NewWriter returns a new dictionary writer.
func NewWriter(opts *WriterOptions) *Writer {
	if opts == nil {
		opts = DefaultWriterOptions
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Writer{
		opts: opts,
		log:  log,
	}
}

// Add adds an article indexed under the given words. Words StarDict cannot
// index are skipped and an article without any remaining words is dropped.
func (w *Writer) Add(words []string, body string) error {
	var keep []string
	for _, word := range words {
		if word == "" || len(word) > maxWordLen {
			w.skipped++
			w.log.Warn("skipping word", "word", word, "reason", ErrWordTooLong)
			continue
		}
		keep = append(keep, word)
	}
	if len(keep) == 0 {
		return nil
	}

	offset := w.dict.Len()
	if uint64(offset)+uint64(len(body)) > math.MaxUint32 {
		return fmt.Errorf("%w: dictionary exceeds 4GiB", ErrInvalidIdxOffset)
	}
	w.dict.WriteString(body)
	w.articles++

	//nolint:gosec // size is bounds checked above.
	size := uint32(len(body))
	if w.opts.Synonyms {
		head := &Word{Word: keep[0], Offset: uint64(offset), Size: size}
		w.words = append(w.words, head)
		for _, s := range keep[1:] {
			w.syns = append(w.syns, pendingSyn{word: s, article: head})
		}
		return nil
	}

	for _, word := range keep {
		w.words = append(w.words, &Word{Word: word, Offset: uint64(offset), Size: size})
	}
	return nil
}

// Articles returns the number of articles added.
func (w *Writer) Articles() int {
	return w.articles
}

// Skipped returns the number of words skipped by Add.
func (w *Writer) Skipped() int {
	return w.skipped
}

// Save writes the dictionary files basePath.ifo, basePath.idx,
// basePath.dict.dz and, with synonyms, basePath.syn. The files replace any
// existing files only if all of them are written successfully.
func (w *Writer) Save(basePath string) (*Info, error) {
	idx, syn, err := w.encodeIndex()
	if err != nil {
		return nil, err
	}

	info := &Info{
		Version:          Version,
		BookName:         w.opts.BookName,
		WordCount:        len(w.words),
		IdxFileSize:      int64(len(idx)),
		Author:           w.opts.Author,
		Email:            w.opts.Email,
		Website:          w.opts.Website,
		Description:      w.opts.Description,
		SameTypeSequence: "h",
	}
	if w.opts.Synonyms {
		info.SynWordCount = len(w.syns)
	}

	var files atomicfile.Set
	defer files.Abort()

	ifoFile, err := files.Create(basePath + ".ifo")
	if err != nil {
		return nil, err
	}
	if _, err := info.WriteTo(ifoFile); err != nil {
		return nil, err
	}

	idxFile, err := files.Create(basePath + ".idx")
	if err != nil {
		return nil, err
	}
	if _, err := idxFile.Write(idx); err != nil {
		return nil, fmt.Errorf("writing idx: %w", err)
	}

	dictFile, err := files.Create(basePath + ".dict.dz")
	if err != nil {
		return nil, err
	}
	if err := writeDictzip(dictFile.File, w.dict.Bytes()); err != nil {
		return nil, err
	}

	if w.opts.Synonyms {
		synFile, err := files.Create(basePath + ".syn")
		if err != nil {
			return nil, err
		}
		if _, err := synFile.Write(syn); err != nil {
			return nil, fmt.Errorf("writing syn: %w", err)
		}
	}

	if err := files.Commit(); err != nil {
		return nil, err
	}

	if !w.opts.Synonyms {
		// A stale .syn file would be read as part of the new dictionary.
		if err := os.Remove(basePath + ".syn"); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("removing stale syn: %w", err)
		}
	}

	return info, nil
}

func writeDictzip(f *os.File, b []byte) error {
	z, err := dictzip.NewWriter(f)
	if err != nil {
		return fmt.Errorf("creating dictzip writer: %w", err)
	}
	if _, err := z.Write(b); err != nil {
		_ = z.Close()
		return fmt.Errorf("writing dict: %w", err)
	}
	if err := z.Close(); err != nil {
		return fmt.Errorf("closing dict: %w", err)
	}
	return nil
}

// encodeIndex returns the sorted .idx and .syn file contents.
func (w *Writer) encodeIndex() ([]byte, []byte, error) {
	words := slices.Clone(w.words)
	slices.SortStableFunc(words, func(a, b *Word) int {
		return Compare(a.Word, b.Word)
	})

	pos := make(map[*Word]uint32, len(words))
	var idx []byte
	var err error
	for i, word := range words {
		//nolint:gosec // word count is bounded by the 4GiB dictionary size.
		pos[word] = uint32(i)
		if idx, err = appendIdx(idx, word); err != nil {
			return nil, nil, err
		}
	}

	syns := make([]*Synonym, len(w.syns))
	for i, s := range w.syns {
		syns[i] = &Synonym{Word: s.word, OriginalWordIndex: pos[s.article]}
	}
	slices.SortStableFunc(syns, func(a, b *Synonym) int {
		return Compare(a.Word, b.Word)
	})

	var syn []byte
	for _, s := range syns {
		if syn, err = appendSyn(syn, s); err != nil {
			return nil, nil, err
		}
	}

	return idx, syn, nil
}
