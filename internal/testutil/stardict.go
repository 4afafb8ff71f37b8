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
	"compress/gzip"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ianlewis/go-dictzip"
)

// IdxWord is a raw .idx entry of a test dictionary.
type IdxWord struct {
	Word   string
	Offset uint64
	Size   uint32
}

// SynWord is a raw .syn entry of a test dictionary.
type SynWord struct {
	Word  string
	Index uint32
}

// MakeIndex makes a test index given a list of words.
func MakeIndex(t *testing.T, words []IdxWord, offsetBits int) []byte {
	t.Helper()

	b := []byte{}
	for _, w := range words {
		b = append(b, []byte(w.Word)...)
		b = append(b, 0) // Add the zero byte terminator.
		switch offsetBits {
		case 32:
			if w.Offset > math.MaxUint32 {
				t.Fatalf("word offset too large %d > %d", w.Offset, offsetBits)
			}
			//nolint:gosec // test code, offset size determined by offsetBits
			b = binary.BigEndian.AppendUint32(b, uint32(w.Offset))
		case 64:
			b = binary.BigEndian.AppendUint64(b, w.Offset)
		default:
			t.Fatalf("unsupported offset bits: %d", offsetBits)
		}
		b = binary.BigEndian.AppendUint32(b, w.Size)
	}
	return b
}

// MakeSyn makes a test .syn file given a list of synonyms.
func MakeSyn(words []SynWord) []byte {
	b := []byte{}
	for _, w := range words {
		b = append(b, []byte(w.Word)...)
		b = append(b, 0)
		b = binary.BigEndian.AppendUint32(b, w.Index)
	}
	return b
}

// StardictOptions hold the raw files of a test dictionary.
type StardictOptions struct {
	Ifo  string
	Idx  []byte
	Syn  []byte
	Dict []byte

	// DictZip indicates that the dict file should be compressed with DictZip.
	DictZip bool

	// GzipIdx indicates that the idx file should be compressed with gzip.
	GzipIdx bool
}

// MakeStardict writes the files of a test dictionary called name to dir and
// returns the path of the .ifo file. The .syn file is only written if Syn is
// not nil.
func MakeStardict(t *testing.T, dir, name string, opts *StardictOptions) string {
	t.Helper()

	base := filepath.Join(dir, name)
	writeFile(t, base+".ifo", []byte(opts.Ifo))

	if opts.GzipIdx {
		f := createFile(t, base+".idx.gz")
		z := gzip.NewWriter(f)
		if _, err := z.Write(opts.Idx); err != nil {
			t.Fatal(err)
		}
		if err := z.Close(); err != nil {
			t.Fatal(err)
		}
		closeFile(t, f)
	} else {
		writeFile(t, base+".idx", opts.Idx)
	}

	if opts.Syn != nil {
		writeFile(t, base+".syn", opts.Syn)
	}

	if opts.DictZip {
		f := createFile(t, base+".dict.dz")
		z, err := dictzip.NewWriter(f)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := z.Write(opts.Dict); err != nil {
			t.Fatal(err)
		}
		if err := z.Close(); err != nil {
			t.Fatal(err)
		}
		closeFile(t, f)
	} else {
		writeFile(t, base+".dict", opts.Dict)
	}

	return base + ".ifo"
}

func writeFile(t *testing.T, path string, b []byte) {
	t.Helper()
	if err := os.WriteFile(path, b, 0o600); err != nil {
		t.Fatal(err)
	}
}

func createFile(t *testing.T, path string) *os.File {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func closeFile(t *testing.T, f *os.File) {
	t.Helper()
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
}
