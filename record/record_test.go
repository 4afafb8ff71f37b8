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

package record

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/encoding/charmap"

	"github.com/ianlewis/go-ordbog/entry"
	"github.com/ianlewis/go-ordbog/internal/testutil"
	"github.com/ianlewis/go-ordbog/markup"
)

func testOptions() *Options {
	opts := *DefaultOptions
	opts.Logger = slog.New(slog.DiscardHandler)
	return &opts
}

func TestDecode(t *testing.T) {
	t.Parallel()

	stol := testutil.MakeEntryMarkup("stol", "stole; ÷stool", "stol", "<ol><li>møbel</li></ol>")
	seng := testutil.MakeEntryMarkup("seng", "", "gå i seng", "<p>sove</p>")

	tests := []struct {
		name     string
		id       int
		input    string
		expected *entry.Entry
	}{
		{
			name:  "standard",
			id:    1,
			input: testutil.MakeRecord("stol", "sb.", stol),
			expected: &entry.Entry{
				ID:               1,
				Kind:             entry.Standard,
				Label:            "stol",
				PartOfSpeech:     "sb.",
				Headword:         "stol",
				PrimaryWord:      "stol",
				AlternativeWords: []string{"stole"},
				Words:            []string{"stol", "stole"},
				RawMarkup:        stol,
			},
		},
		{
			name:  "idiom",
			id:    2,
			input: testutil.MakeRecord("<b>gå  i seng</b>", "", seng),
			expected: &entry.Entry{
				ID:          2,
				Kind:        entry.Idiom,
				Label:       "gå i seng",
				Headword:    "seng",
				PrimaryWord: "gå i seng",
				Words:       []string{"gå i seng"},
				RawMarkup:   seng,
			},
		},
		{
			name:  "inflection",
			id:    3,
			input: testutil.MakeInflectionRecord("biler", "sb.", "biler er flertal af bil sb."),
			expected: &entry.Entry{
				ID:            3,
				Kind:          entry.Inflection,
				Label:         "biler",
				PartOfSpeech:  "sb.",
				Headword:      "bil",
				InflectedForm: "biler",
				Words:         []string{"biler"},
			},
		},
		{
			name:  "inflection with remark",
			id:    4,
			input: testutil.MakeInflectionRecord("biler", "sb.", "biler er flertal af bil sb. (se også vogn)"),
			expected: &entry.Entry{
				ID:            4,
				Kind:          entry.Inflection,
				Label:         "biler",
				PartOfSpeech:  "sb.",
				Headword:      "bil",
				InflectedForm: "biler",
				Words:         []string{"biler"},
			},
		},
		{
			name:  "idiom inflection",
			id:    5,
			input: testutil.MakeInflectionRecord("går i seng", "vb.", "går i seng er nutid af gå i seng vb."),
			expected: &entry.Entry{
				ID:            5,
				Kind:          entry.IdiomInflection,
				Label:         "går i seng",
				PartOfSpeech:  "vb.",
				Headword:      "gå i seng",
				InflectedForm: "går i seng",
				Words:         []string{"går i seng"},
			},
		},
		{
			name:  "patched record",
			id:    329084,
			input: "ordbog\x00\x00\x00\atatars\x00sb.\x00" + testutil.MakeEntryMarkup("tatar", "", "tatar", "") + "\x00",
			expected: &entry.Entry{
				ID:           329084,
				Kind:         entry.Standard,
				Label:        "tatars",
				PartOfSpeech: "sb.",
				Headword:     "tatar",
				PrimaryWord:  "tatar",
				Words:        []string{"tatar"},
				RawMarkup:    testutil.MakeEntryMarkup("tatar", "", "tatar", ""),
			},
		},
	}

	d := NewDecoder(testOptions())
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got := d.Decode(test.id, []byte(test.input))
			if diff := cmp.Diff(test.expected, got); diff != "" {
				t.Fatalf("Decode (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestDecode_partial(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		err   error
	}{
		{
			name:  "too few fields",
			input: "ordbog",
			err:   entry.ErrMalformedRecord,
		},
		{
			name:  "missing headings",
			input: testutil.MakeRecord("stol", "sb.", "<p>ingen overskrift</p>"),
			err:   markup.ErrMalformedMarkup,
		},
		{
			name:  "missing headword",
			input: testutil.MakeInflectionRecord("biler", "sb.", "biler er flertal"),
			err:   entry.ErrMalformedRecord,
		},
		{
			name:  "missing form",
			input: testutil.MakeInflectionRecord("biler", "sb.", "flertal af bil sb."),
			err:   entry.ErrMalformedRecord,
		},
	}

	d := NewDecoder(testOptions())
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got := d.Decode(7, []byte(test.input))
			if got.Kind != entry.Partial {
				t.Fatalf("Decode: got kind %v, want %v", got.Kind, entry.Partial)
			}
			if got.ID != 7 {
				t.Fatalf("Decode: got id %d, want 7", got.ID)
			}
			if !errors.Is(got.Reason, test.err) {
				t.Fatalf("Decode: got reason %v, want %v", got.Reason, test.err)
			}
		})
	}
}

func TestDecode_markupPatch(t *testing.T) {
	t.Parallel()

	opts := testOptions()
	opts.MarkupPatches = Patches{
		9: {TrimSuffix: 5, Append: "</li></ol>"},
	}
	d := NewDecoder(opts)

	html := "<h2>hus</h2><div/>(huse)</div><h3>hus</h3><ol><li>bolig<br/>"
	got := d.Decode(9, []byte(testutil.MakeRecord("hus", "sb.", html)))

	want := "<h2>hus</h2><div>(huse)</div><h3>hus</h3><ol><li>bolig</li></ol>"
	if diff := cmp.Diff(want, got.RawMarkup); diff != "" {
		t.Fatalf("RawMarkup (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"hus", "huse"}, got.Words); diff != "" {
		t.Fatalf("Words (-want, +got):\n%s", diff)
	}
}

func TestDecode_encoding(t *testing.T) {
	t.Parallel()

	enc, err := LookupEncoding("windows-1252")
	if err != nil {
		t.Fatalf("LookupEncoding: %v", err)
	}

	raw, err := charmap.Windows1252.NewEncoder().String(
		testutil.MakeRecord("bøf", "sb.", testutil.MakeEntryMarkup("bøf", "", "bøf", "")))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	opts := testOptions()
	opts.Encoding = enc
	got := NewDecoder(opts).Decode(10, []byte(raw))

	if diff := cmp.Diff("bøf", got.Headword); diff != "" {
		t.Fatalf("Headword (-want, +got):\n%s", diff)
	}
}

func TestLookupEncoding(t *testing.T) {
	t.Parallel()

	if _, err := LookupEncoding("no-such-encoding"); !errors.Is(err, ErrUnknownEncoding) {
		t.Fatalf("LookupEncoding: got error %v, want %v", err, ErrUnknownEncoding)
	}
}

func TestPatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		patch    Patch
		input    string
		expected string
	}{
		{
			name:     "empty",
			input:    "abc",
			expected: "abc",
		},
		{
			name:     "replace",
			patch:    Patch{Replace: []Replacement{{Old: "\a", New: "\x00"}}},
			input:    "a\ab",
			expected: "a\x00b",
		},
		{
			name:     "trim runes",
			patch:    Patch{TrimSuffix: 2, Append: "!"},
			input:    "blåø",
			expected: "bl!",
		},
		{
			name:     "trim past start",
			patch:    Patch{TrimSuffix: 10, Append: "x"},
			input:    "ab",
			expected: "x",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(test.expected, test.patch.Apply(test.input)); diff != "" {
				t.Fatalf("Apply (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestPatches_Merge(t *testing.T) {
	t.Parallel()

	base := Patches{1: {Append: "a"}, 2: {Append: "b"}}
	got := base.Merge(Patches{2: {Append: "c"}})

	want := Patches{1: {Append: "a"}, 2: {Append: "c"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Merge (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff("b", base[2].Append); diff != "" {
		t.Fatalf("Merge modified receiver (-want, +got):\n%s", diff)
	}
}
