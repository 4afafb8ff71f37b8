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
	"errors"
	"fmt"
	"io"
	"math"
)

var (
	// ErrInvalidIdxOffset indicates that the OffsetBits is an invalid value.
	ErrInvalidIdxOffset = errors.New("invalid idxoffsetbits")

	// ErrWordTooLong indicates an article or word that does not fit in the
	// index fields.
	ErrWordTooLong = errors.New("word too long")
)

// maxWordLen is the longest word StarDict accepts in .idx and .syn files.
const maxWordLen = 255

// Word is an .idx file entry.
type Word struct {
	Word   string
	Offset uint64
	Size   uint32
}

// String implements fmt.Stringer.
func (w *Word) String() string {
	return w.Word
}

// IdxScanner scans an .idx file from start to end.
type IdxScanner struct {
	r          io.Reader
	s          *bufio.Scanner
	offsetBits int
}

// NewIdxScanner return a new index scanner that scans the index from start to
// end. offsetBits must be either 32 or 64.
func NewIdxScanner(r io.Reader, offsetBits int) (*IdxScanner, error) {
	if offsetBits != 32 && offsetBits != 64 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidIdxOffset, offsetBits)
	}
	s := &IdxScanner{
		r:          r,
		s:          bufio.NewScanner(bufio.NewReader(r)),
		offsetBits: offsetBits,
	}
	s.s.Split(s.splitIndex)
	return s, nil
}

// Scan advances the index to the next index entry. It returns false if the
// scan stops either by reaching the end of the index or an error.
func (s *IdxScanner) Scan() bool {
	return s.s.Scan()
}

// Err returns the first error encountered.
func (s *IdxScanner) Err() error {
	//nolint:wrapcheck // error should not be wrapped
	return s.s.Err()
}

// Word gets the next entry in the index.
func (s *IdxScanner) Word() *Word {
	var e Word
	b := s.s.Bytes()
	if i := bytes.IndexByte(b, 0); i >= 0 && len(b) == i+1+s.offsetBits/8+4 {
		e.Word = string(b[0:i])
		if s.offsetBits == 64 {
			e.Offset = binary.BigEndian.Uint64(b[i+1:])
		} else {
			e.Offset = uint64(binary.BigEndian.Uint32(b[i+1:]))
		}
		e.Size = binary.BigEndian.Uint32(b[i+1+s.offsetBits/8:])
	}

	return &e
}

// splitIndex splits an index entry in the index file.
func (s *IdxScanner) splitIndex(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, 0); i >= 0 {
		// Found zero byte.
		tokenSize := i + 1 + s.offsetBits/8 + 4
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

// appendIdx appends the 32-bit offset encoding of w.
func appendIdx(b []byte, w *Word) ([]byte, error) {
	if len(w.Word) > maxWordLen {
		return b, fmt.Errorf("%w: %q", ErrWordTooLong, w.Word)
	}
	if w.Offset > math.MaxUint32 {
		return b, fmt.Errorf("%w: offset %d of %q", ErrInvalidIdxOffset, w.Offset, w.Word)
	}
	b = append(b, w.Word...)
	b = append(b, 0)
	//nolint:gosec // offset is bounds checked above.
	b = binary.BigEndian.AppendUint32(b, uint32(w.Offset))
	b = binary.BigEndian.AppendUint32(b, w.Size)
	return b, nil
}
