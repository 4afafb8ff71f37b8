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

package folding

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain",
			input:    "stol",
			expected: "stol",
		},
		{
			name:     "tags",
			input:    "<b>stol</b>  <i>sb.</i>",
			expected: "stol sb.",
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
		{
			name:     "leading and trailing",
			input:    "  \tbil \n",
			expected: "bil",
		},
		{
			name:     "internal spans",
			input:    "gå  i\t\tseng",
			expected: "gå i seng",
		},
		{
			name:     "control characters",
			input:    "\x07tatars\x01 sb.",
			expected: "tatars sb.",
		},
		{
			name:     "unterminated tag",
			input:    "stol <i",
			expected: "stol",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(test.expected, Label(test.input)); diff != "" {
				t.Fatalf("Label (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b     string
		expected bool
	}{
		{"Stol", "stol", true},
		{"ÆBLE", "æble", true},
		{"stol", "stole", false},
	}

	for _, test := range tests {
		if got := Equal(test.a, test.b); got != test.expected {
			t.Errorf("Equal(%q, %q); want: %v, got: %v", test.a, test.b, test.expected, got)
		}
	}
}

func TestContains(t *testing.T) {
	t.Parallel()

	if !Contains("sb. el. Vb.", "vb.") {
		t.Errorf("Contains: expected compound tag to contain vb.")
	}
	if Contains("adj.", "sb.") {
		t.Errorf("Contains: unexpected match")
	}
}
