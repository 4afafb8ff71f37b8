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
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-ordbog/internal/testutil"
)

func TestIdxScanner(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		words      []testutil.IdxWord
		offsetBits int
		expected   []*Word
	}{
		{
			name: "32 bit",
			words: []testutil.IdxWord{
				{Word: "bord", Offset: 0, Size: 12},
				{Word: "stol", Offset: 12, Size: 7},
			},
			offsetBits: 32,
			expected: []*Word{
				{Word: "bord", Offset: 0, Size: 12},
				{Word: "stol", Offset: 12, Size: 7},
			},
		},
		{
			name: "64 bit",
			words: []testutil.IdxWord{
				{Word: "bord", Offset: 1 << 40, Size: 12},
			},
			offsetBits: 64,
			expected: []*Word{
				{Word: "bord", Offset: 1 << 40, Size: 12},
			},
		},
		{
			name:       "empty",
			offsetBits: 32,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			b := testutil.MakeIndex(t, test.words, test.offsetBits)
			s, err := NewIdxScanner(bytes.NewReader(b), test.offsetBits)
			if err != nil {
				t.Fatalf("NewIdxScanner: %v", err)
			}

			var got []*Word
			for s.Scan() {
				got = append(got, s.Word())
			}
			if err := s.Err(); err != nil {
				t.Fatalf("Err: %v", err)
			}

			if diff := cmp.Diff(test.expected, got); diff != "" {
				t.Fatalf("Word (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestIdxScanner_truncated(t *testing.T) {
	t.Parallel()

	b := testutil.MakeIndex(t, []testutil.IdxWord{{Word: "bord", Size: 1}}, 32)
	s, err := NewIdxScanner(bytes.NewReader(b[:len(b)-2]), 32)
	if err != nil {
		t.Fatalf("NewIdxScanner: %v", err)
	}
	if !s.Scan() {
		t.Fatalf("Scan: want true")
	}
	if diff := cmp.Diff(&Word{}, s.Word()); diff != "" {
		t.Fatalf("Word (-want, +got):\n%s", diff)
	}
}

func TestNewIdxScanner_offsetBits(t *testing.T) {
	t.Parallel()

	if _, err := NewIdxScanner(bytes.NewReader(nil), 16); !errors.Is(err, ErrInvalidIdxOffset) {
		t.Fatalf("NewIdxScanner: got error %v, want %v", err, ErrInvalidIdxOffset)
	}
}

func TestSynScanner(t *testing.T) {
	t.Parallel()

	b := testutil.MakeSyn([]testutil.SynWord{
		{Word: "borde", Index: 0},
		{Word: "stole", Index: 1},
	})
	s := NewSynScanner(bytes.NewReader(b))

	var got []*Synonym
	for s.Scan() {
		got = append(got, s.Synonym())
	}
	if err := s.Err(); err != nil {
		t.Fatalf("Err: %v", err)
	}

	want := []*Synonym{
		{Word: "borde", OriginalWordIndex: 0},
		{Word: "stole", OriginalWordIndex: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Synonym (-want, +got):\n%s", diff)
	}
}

func TestAppendIdx(t *testing.T) {
	t.Parallel()

	w := &Word{Word: "bord", Offset: 3, Size: 5}
	got, err := appendIdx(nil, w)
	if err != nil {
		t.Fatalf("appendIdx: %v", err)
	}
	want := testutil.MakeIndex(t, []testutil.IdxWord{{Word: "bord", Offset: 3, Size: 5}}, 32)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("appendIdx (-want, +got):\n%s", diff)
	}

	long := &Word{Word: string(bytes.Repeat([]byte("a"), maxWordLen+1))}
	if _, err := appendIdx(nil, long); !errors.Is(err, ErrWordTooLong) {
		t.Fatalf("appendIdx: got error %v, want %v", err, ErrWordTooLong)
	}
}
