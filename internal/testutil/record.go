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

package testutil

import (
	"strings"
)

// recordHeader is the header text of test records.
const recordHeader = "ordbog"

// MakeRecord returns the text of a headword record with the given label,
// part of speech tag and markup.
func MakeRecord(label, pos, markup string) string {
	return strings.Join([]string{
		recordHeader,
		"", "", "",
		"\x01" + label,
		pos,
		markup,
		"",
	}, "\x00")
}

// MakeInflectionRecord returns the text of an inflection record describing
// form as an inflection of headword, e.g. "biler er flertal af bil sb.".
func MakeInflectionRecord(form, pos, prose string) string {
	return strings.Join([]string{
		recordHeader,
		"", "", "",
		"\x01" + form,
		pos,
		prose,
		"",
		"",
	}, "\x00")
}

// MakeEntryMarkup returns entry markup with the given headword, alternative
// forms block, primary word and body.
func MakeEntryMarkup(headword, alternatives, primary, body string) string {
	var b strings.Builder
	b.WriteString("<h2>" + headword + "</h2>")
	if alternatives != "" {
		b.WriteString("<div>(" + alternatives + ")</div>")
	}
	b.WriteString("<h3>" + primary + " <font><i>sb.</i></font></h3>")
	b.WriteString(body)
	return b.String()
}
