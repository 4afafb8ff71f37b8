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

package source

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Blobs reads entry records from the blob file.
type Blobs struct {
	r io.ReaderAt
	c io.Closer
}

// NewBlobs returns Blobs reading from r.
func NewBlobs(r io.ReaderAt) *Blobs {
	b := &Blobs{r: r}
	if c, ok := r.(io.Closer); ok {
		b.c = c
	}
	return b
}

// OpenBlobs opens the blob file at path.
func OpenBlobs(path string) (*Blobs, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open blob file: %w", err)
	}
	return NewBlobs(f), nil
}

// Bytes returns the record located by v.
func (b *Blobs) Bytes(v Vector) ([]byte, error) {
	if v.Offset < 0 || v.Length < 0 {
		return nil, fmt.Errorf("%w: entry %d: offset %d length %d", ErrInvalidIndex, v.EntryID, v.Offset, v.Length)
	}
	buf := make([]byte, v.Length)
	n, err := b.r.ReadAt(buf, v.Offset)
	if err != nil && !(errors.Is(err, io.EOF) && n == len(buf)) {
		return nil, fmt.Errorf("reading entry %d: %w", v.EntryID, err)
	}
	return buf, nil
}

// Close closes the blob file.
func (b *Blobs) Close() error {
	if b.c == nil {
		return nil
	}
	if err := b.c.Close(); err != nil {
		return fmt.Errorf("closing blob file: %w", err)
	}
	return nil
}
