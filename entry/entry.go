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

// Package entry defines the lexical entries decoded from dictionary records.
package entry

import (
	"errors"
	"slices"
	"strings"

	"github.com/ianlewis/go-ordbog/internal/folding"
)

// ErrMalformedRecord indicates that the sentinel boundaries of a record could
// not be found.
var ErrMalformedRecord = errors.New("malformed record")

// Kind is the kind of a decoded entry.
type Kind int

const (
	// Partial is an entry that could not be decoded. Partial entries are
	// excluded from output.
	Partial Kind = iota

	// Standard is a headword entry for a single word.
	Standard

	// Idiom is a headword entry whose primary word is a multi-word phrase.
	Idiom

	// Inflection is a record describing one inflected form of a headword.
	Inflection

	// IdiomInflection is an inflection record for a multi-word headword.
	IdiomInflection
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case Standard:
		return "standard"
	case Idiom:
		return "idiom"
	case Inflection:
		return "inflection"
	case IdiomInflection:
		return "idiom-inflection"
	default:
		return "partial"
	}
}

// Entry is a decoded dictionary record.
type Entry struct {
	// ID is the source record id. It is the join key for cross references.
	ID int

	Kind Kind

	// Label is the cleaned text of the record's headword field.
	Label string

	// PartOfSpeech is the record's part-of-speech tag. It may be a compound
	// of several abbreviations. Empty if the record has none.
	PartOfSpeech string

	// Headword is the lemma the entry is filed under.
	Headword string

	// PrimaryWord is the entry's display form.
	PrimaryWord string

	// AlternativeWords are alternative spellings listed by the entry.
	AlternativeWords []string

	// Words are the words the entry is indexed under: the primary word, the
	// alternative words and any inflected forms added by enrichment.
	Words []string

	// InflectedForm is the inflected form described by an inflection record.
	InflectedForm string

	// RawMarkup is the entry's HTML body.
	RawMarkup string

	// Reason holds the decoding failure of a Partial entry.
	Reason error
}

// IsHeadword reports whether the entry is a Standard or Idiom entry.
func (e *Entry) IsHeadword() bool {
	return e.Kind == Standard || e.Kind == Idiom
}

// HasWord reports whether w is one of the entry's words, ignoring case.
func (e *Entry) HasWord(w string) bool {
	return containsFold(e.Words, w)
}

// HasAlternativeWord reports whether w is one of the entry's alternative
// words, ignoring case.
func (e *Entry) HasAlternativeWord(w string) bool {
	return containsFold(e.AlternativeWords, w)
}

// AddWord appends w to the entry's words if not already present, ignoring
// case. It reports whether the word was added.
func (e *Entry) AddWord(w string) bool {
	if w == "" || e.HasWord(w) {
		return false
	}
	e.Words = append(e.Words, w)
	return true
}

// NewHeadword returns a Standard or Idiom entry. The entry's words are the
// primary word followed by the alternative words with exact duplicates
// removed.
func NewHeadword(id int, headword, primary string, alternatives []string) *Entry {
	kind := Standard
	if strings.Contains(primary, " ") {
		kind = Idiom
	}

	words := make([]string, 0, len(alternatives)+1)
	for _, w := range append([]string{primary}, alternatives...) {
		if !slices.Contains(words, w) {
			words = append(words, w)
		}
	}

	return &Entry{
		ID:               id,
		Kind:             kind,
		Headword:         headword,
		PrimaryWord:      primary,
		AlternativeWords: alternatives,
		Words:            words,
	}
}

// NewInflection returns an Inflection or IdiomInflection entry.
func NewInflection(id int, headword, form string) *Entry {
	kind := Inflection
	if strings.Contains(headword, " ") {
		kind = IdiomInflection
	}
	return &Entry{
		ID:            id,
		Kind:          kind,
		Headword:      headword,
		InflectedForm: form,
		Words:         []string{form},
	}
}

// NewPartial returns a Partial entry recording why decoding failed.
func NewPartial(id int, raw string, reason error) *Entry {
	return &Entry{
		ID:        id,
		Kind:      Partial,
		RawMarkup: raw,
		Reason:    reason,
	}
}

func containsFold(words []string, w string) bool {
	folded := folding.Fold(w)
	for _, x := range words {
		if x == w || folding.Fold(x) == folded {
			return true
		}
	}
	return false
}
