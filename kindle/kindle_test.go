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

package kindle

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWriter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		entries  []*Entry
		expected string
	}{
		{
			name: "single",
			entries: []*Entry{
				{ID: 7, Word: "bord", Body: "<b>bord</b>"},
			},
			expected: `<idx:entry scriptable="yes" spell="yes" id="7"><idx:orth value="bord"></idx:orth><b>bord</b></idx:entry><hr/>`,
		},
		{
			name: "inflections",
			entries: []*Entry{
				{ID: 7, Word: "bord", Inflections: []string{"borde", "bordet"}, Body: "<b>bord</b>"},
				{ID: 9, Word: "stol", Body: `se <a href="#7">bord</a>`},
			},
			expected: `<idx:entry scriptable="yes" spell="yes" id="7"><idx:orth value="bord">` +
				`<idx:infl><idx:iform value="borde"/><idx:iform value="bordet"/></idx:infl>` +
				`</idx:orth><b>bord</b></idx:entry><hr/>` + "\n" +
				`<idx:entry scriptable="yes" spell="yes" id="9"><idx:orth value="stol"></idx:orth>` +
				`se <a href="#7">bord</a></idx:entry><hr/>`,
		},
		{
			name: "escaped attributes",
			entries: []*Entry{
				{ID: 1, Word: `"rock & roll"`, Body: "x"},
			},
			expected: `<idx:entry scriptable="yes" spell="yes" id="1"><idx:orth value="&#34;rock &amp; roll&#34;"></idx:orth>x</idx:entry><hr/>`,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			var b strings.Builder
			w := NewWriter(&b, &Options{})
			for _, e := range test.entries {
				if err := w.Add(e); err != nil {
					t.Fatalf("Add: %v", err)
				}
			}
			if err := w.Close(); err != nil {
				t.Fatalf("Close: %v", err)
			}

			if diff := cmp.Diff(test.expected, b.String()); diff != "" {
				t.Fatalf("Writer (-want, +got):\n%s", diff)
			}
			if want, got := len(test.entries), w.Entries(); want != got {
				t.Fatalf("Entries: want %d, got %d", want, got)
			}
		})
	}
}

func TestWriter_document(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	w := NewWriter(&b, nil)
	if err := w.Add(&Entry{ID: 1, Word: "bord", Body: "x"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	got := b.String()
	if !strings.HasPrefix(got, "<html ") || !strings.Contains(got, "<mbp:frameset>\n<idx:entry") {
		t.Fatalf("Writer: missing document start in %q", got)
	}
	if !strings.HasSuffix(got, "<hr/>\n</mbp:frameset></body></html>\n") {
		t.Fatalf("Writer: missing document end in %q", got)
	}
}

func TestWriter_invalidEntry(t *testing.T) {
	t.Parallel()

	w := NewWriter(&strings.Builder{}, nil)
	if err := w.Add(&Entry{ID: 1}); !errors.Is(err, ErrInvalidEntry) {
		t.Fatalf("Add: got error %v, want %v", err, ErrInvalidEntry)
	}
}
