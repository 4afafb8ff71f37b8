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
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// Synonym is a .syn file entry. It points a word at an entry of the .idx
// file.
type Synonym struct {
	Word string

	// OriginalWordIndex is the position of the synonym's article in the
	// .idx file.
	OriginalWordIndex uint32
}

// String implements fmt.Stringer.
func (s *Synonym) String() string {
	return s.Word
}

// SynScanner scans a .syn file from start to end.
type SynScanner struct {
	s *bufio.Scanner
}

// NewSynScanner return a new synonym scanner that scans the .syn file from
// start to end.
func NewSynScanner(r io.Reader) *SynScanner {
	s := &SynScanner{
		s: bufio.NewScanner(bufio.NewReader(r)),
	}
	s.s.Split(splitSyn)
	return s
}

// Scan advances to the next synonym. It returns false if the scan stops
// either by reaching the end of the file or an error.
func (s *SynScanner) Scan() bool {
	return s.s.Scan()
}

// Err returns the first error encountered.
func (s *SynScanner) Err() error {
	//nolint:wrapcheck // error should not be wrapped
	return s.s.Err()
}

// Synonym gets the next entry in the .syn file.
func (s *SynScanner) Synonym() *Synonym {
	var e Synonym
	b := s.s.Bytes()
	if i := bytes.IndexByte(b, 0); i >= 0 && len(b) == i+5 {
		e.Word = string(b[0:i])
		e.OriginalWordIndex = binary.BigEndian.Uint32(b[i+1:])
	}

	return &e
}

// splitSyn splits a synonym entry in the .syn file.
func splitSyn(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, 0); i >= 0 {
		// Found zero byte. Request the zero byte + 4 bytes (32 bits) for the
		// original_word_index.
		tokenSize := i + 5
		if len(data) >= tokenSize {
			return tokenSize, data[:tokenSize], nil
		}
	}

	if atEOF {
		return len(data), data, nil
	}

	// Request more data.
	return 0, nil, nil
}

func appendSyn(b []byte, s *Synonym) ([]byte, error) {
	if len(s.Word) > maxWordLen {
		return b, fmt.Errorf("%w: %q", ErrWordTooLong, s.Word)
	}
	b = append(b, s.Word...)
	b = append(b, 0)
	b = binary.BigEndian.AppendUint32(b, s.OriginalWordIndex)
	return b, nil
}
