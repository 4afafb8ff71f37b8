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

// Package folding implements the text folding used to compare dictionary
// words and to clean record labels.
package folding

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/transform"
)

// Fold returns the case folded form of s. Two words are considered the same
// word when their folded forms are equal.
func Fold(s string) string {
	// Casers hold state and are not safe for concurrent use.
	return cases.Fold().String(s)
}

// Equal reports whether a and b are equal under case folding.
func Equal(a, b string) bool {
	return a == b || Fold(a) == Fold(b)
}

// Contains reports whether substr is within s under case folding.
func Contains(s, substr string) bool {
	return strings.Contains(Fold(s), Fold(substr))
}

// Label cleans a record label by removing inline tags. Runs of whitespace and
// control characters left by the record format become a single space.
func Label(s string) string {
	out, _, err := transform.String(&TagStripper{}, s)
	if err != nil {
		out = s
	}
	return strings.Join(strings.FieldsFunc(out, isLabelSpace), " ")
}

func isLabelSpace(r rune) bool {
	return unicode.IsSpace(r) || unicode.IsControl(r)
}
