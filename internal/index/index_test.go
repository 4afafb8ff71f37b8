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

package index

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type String string

func (s String) String() string {
	return string(s)
}

func TestIndex_Search(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		index    []String
		norm     func(string) string
		query    string
		expected []String
	}{
		{
			name:     "single results",
			index:    []String{"foo", "bar", "baz", "bar"},
			query:    "foo",
			expected: []String{"foo"},
		},
		{
			name:     "multiple results",
			index:    []String{"foo", "bar", "baz", "bar"},
			query:    "bar",
			expected: []String{"bar", "bar"},
		},
		{
			name:     "no results",
			index:    []String{"foo", "bar", "baz", "bar"},
			query:    "none",
			expected: nil,
		},
		{
			name:     "case sensitive",
			index:    []String{"Bord", "bord"},
			query:    "bord",
			expected: []String{"bord"},
		},
		{
			name:     "normalized",
			index:    []String{"Bord", "stol", "bord"},
			norm:     strings.ToLower,
			query:    "BORD",
			expected: []String{"Bord", "bord"},
		},
		{
			name:     "empty index",
			query:    "bord",
			expected: nil,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			index := New(test.index, test.norm)

			if diff := cmp.Diff(test.expected, index.Search(test.query)); diff != "" {
				t.Fatalf("Search (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestIndex_Prefix(t *testing.T) {
	t.Parallel()

	index := New([]String{"bordben", "stol", "Bord", "bor", "bordplade"}, strings.ToLower)

	if diff := cmp.Diff([]String{"Bord", "bordben", "bordplade"}, index.Prefix("bord")); diff != "" {
		t.Fatalf("Prefix (-want, +got):\n%s", diff)
	}
	if got := index.Prefix("x"); got != nil {
		t.Fatalf("Prefix: want nil, got %v", got)
	}
	if want, got := 5, index.Len(); want != got {
		t.Fatalf("Len: want %d, got %d", want, got)
	}
}
