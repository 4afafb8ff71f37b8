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
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestReadInfo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		data     string
		expected *Info
		err      error
	}{
		{
			name: "minimal",
			data: "StarDict's dict ifo file\n" +
				"version=2.4.2\n" +
				"bookname=Ordbog\n" +
				"wordcount=2\n" +
				"idxfilesize=30\n",
			expected: &Info{
				Version:       "2.4.2",
				BookName:      "Ordbog",
				WordCount:     2,
				IdxFileSize:   30,
				IdxOffsetBits: 32,
			},
		},
		{
			name: "full",
			data: "StarDict's dict ifo file\r\n" +
				"version=3.0.0\r\n" +
				"\r\n" +
				"bookname = Dansk-engelsk\r\n" +
				"wordcount=10\r\n" +
				"synwordcount=4\r\n" +
				"idxfilesize=200\r\n" +
				"idxoffsetbits=64\r\n" +
				"author=Ian\r\n" +
				"description=a=b\r\n" +
				"sametypesequence=h\r\n",
			expected: &Info{
				Version:          "3.0.0",
				BookName:         "Dansk-engelsk",
				WordCount:        10,
				SynWordCount:     4,
				IdxFileSize:      200,
				IdxOffsetBits:    64,
				Author:           "Ian",
				Description:      "a=b",
				SameTypeSequence: "h",
			},
		},
		{
			name: "idxoffsetbits ignored before 3.0.0",
			data: "StarDict's dict ifo file\n" +
				"version=2.4.2\n" +
				"bookname=Ordbog\n" +
				"wordcount=2\n" +
				"idxfilesize=30\n" +
				"idxoffsetbits=64\n",
			expected: &Info{
				Version:       "2.4.2",
				BookName:      "Ordbog",
				WordCount:     2,
				IdxFileSize:   30,
				IdxOffsetBits: 32,
			},
		},
		{
			name: "bad magic",
			data: "test magic\nversion=2.4.2\n",
			err:  ErrInvalidInfo,
		},
		{
			name: "empty",
			data: "",
			err:  ErrInvalidInfo,
		},
		{
			name: "missing version",
			data: "StarDict's dict ifo file\nbookname=Ordbog\n",
			err:  ErrInvalidInfo,
		},
		{
			name: "invalid key",
			data: "StarDict's dict ifo file\nversion=2.4.2\nbook name=Ordbog\n",
			err:  ErrInvalidInfo,
		},
		{
			name: "missing separator",
			data: "StarDict's dict ifo file\nversion=2.4.2\nbookname\n",
			err:  ErrInvalidInfo,
		},
		{
			name: "unsupported version",
			data: "StarDict's dict ifo file\nversion=1.0.0\nbookname=Ordbog\n",
			err:  ErrUnsupportedVersion,
		},
		{
			name: "missing bookname",
			data: "StarDict's dict ifo file\nversion=2.4.2\nwordcount=1\nidxfilesize=1\n",
			err:  ErrInvalidInfo,
		},
		{
			name: "bad wordcount",
			data: "StarDict's dict ifo file\nversion=2.4.2\nbookname=Ordbog\nwordcount=x\nidxfilesize=1\n",
			err:  ErrInvalidInfo,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			info, err := ReadInfo(strings.NewReader(test.data))
			if !errors.Is(err, test.err) {
				t.Fatalf("ReadInfo: got error %v, want %v", err, test.err)
			}
			if diff := cmp.Diff(test.expected, info, cmpopts.IgnoreUnexported(Info{})); diff != "" {
				t.Fatalf("ReadInfo (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestInfo_Value(t *testing.T) {
	t.Parallel()

	info, err := ReadInfo(strings.NewReader("StarDict's dict ifo file\n" +
		"version=2.4.2\nbookname=Ordbog\nwordcount=1\nidxfilesize=1\nlang=da-en\n"))
	if err != nil {
		t.Fatalf("ReadInfo: %v", err)
	}
	if want, got := "da-en", info.Value("lang"); want != got {
		t.Fatalf("Value: want %q, got %q", want, got)
	}
}

func TestInfo_WriteTo(t *testing.T) {
	t.Parallel()

	info := &Info{
		BookName:         "Ordbog",
		WordCount:        3,
		SynWordCount:     2,
		IdxFileSize:      42,
		Author:           "Ian",
		Description:      "line one\nline two",
		SameTypeSequence: "h",
	}

	var b strings.Builder
	n, err := info.WriteTo(&b)
	if err != nil {
		t.Fatalf("WriteTo: %v", err)
	}

	want := "StarDict's dict ifo file\n" +
		"version=2.4.2\n" +
		"bookname=Ordbog\n" +
		"wordcount=3\n" +
		"synwordcount=2\n" +
		"idxfilesize=42\n" +
		"author=Ian\n" +
		"description=line one<br>line two\n" +
		"sametypesequence=h\n"
	if diff := cmp.Diff(want, b.String()); diff != "" {
		t.Fatalf("WriteTo (-want, +got):\n%s", diff)
	}
	if want, got := int64(len(want)), n; want != got {
		t.Fatalf("WriteTo: want %d bytes, got %d", want, got)
	}
}

func TestCompare(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b     string
		expected int
	}{
		{"bord", "bord", 0},
		{"a", "B", -1},
		{"B", "a", 1},
		{"B", "b", -1},
		{"bord", "bordben", -1},
		{"Bord", "bordben", -1},
		{"zebra", "æble", -1},
		{"", "a", -1},
	}

	for _, test := range tests {
		if got := Compare(test.a, test.b); got != test.expected {
			t.Errorf("Compare(%q, %q): want %d, got %d", test.a, test.b, test.expected, got)
		}
	}
}
