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
	"strings"
	"unicode/utf8"
)

// Replacement is a literal string substitution.
type Replacement struct {
	Old string `yaml:"old"`
	New string `yaml:"new"`
}

// Patch is a correction applied to the text of a single record.
type Patch struct {
	// Replace holds substitutions applied in order.
	Replace []Replacement `yaml:"replace"`

	// TrimSuffix is the number of characters removed from the end of the
	// text after substitution.
	TrimSuffix int `yaml:"trim_suffix"`

	// Append is appended to the text after trimming.
	Append string `yaml:"append"`
}

// Apply returns s with the patch applied.
func (p Patch) Apply(s string) string {
	for _, r := range p.Replace {
		s = strings.ReplaceAll(s, r.Old, r.New)
	}
	for i := 0; i < p.TrimSuffix && s != ""; i++ {
		_, size := utf8.DecodeLastRuneInString(s)
		s = s[:len(s)-size]
	}
	return s + p.Append
}

// Patches is a table of patches keyed by record id.
type Patches map[int]Patch

// Apply applies the patch for the given record id to s. s is returned
// unchanged if there is no patch for id.
func (p Patches) Apply(id int, s string) string {
	patch, ok := p[id]
	if !ok {
		return s
	}
	return patch.Apply(s)
}

// Merge returns a new table holding the patches of p overridden by those of
// other.
func (p Patches) Merge(other Patches) Patches {
	merged := make(Patches, len(p)+len(other))
	for id, patch := range p {
		merged[id] = patch
	}
	for id, patch := range other {
		merged[id] = patch
	}
	return merged
}

// closeNestedLists closes two levels of nested ordered lists.
const closeNestedLists = "</li></ol></li></ol>"

// DefaultPatches are corrections to the decoded text of records.
var DefaultPatches = Patches{
	// The "tatars" record is missing the sentinel before its label.
	329084: {Replace: []Replacement{{Old: "\atatars", New: "\x00atatars"}}},
}

// DefaultMarkupPatches are corrections to the markup of records whose lists
// are not closed properly.
var DefaultMarkupPatches = Patches{
	23166: {TrimSuffix: 11, Append: closeNestedLists},
	51857: {TrimSuffix: 11, Append: "</li></ol>"},
	60775: {TrimSuffix: 11, Append: closeNestedLists},
	87557: {Append: closeNestedLists},
	91348: {TrimSuffix: 11, Append: closeNestedLists},
}
