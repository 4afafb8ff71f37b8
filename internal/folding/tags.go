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
	"golang.org/x/text/transform"
)

// TagStripper removes inline markup tags ("<...>") from its input. The record
// headword field occasionally carries formatting tags around the label.
type TagStripper struct {
	inTag bool
}

// Transform implements [transform.Transformer.Transform].
func (s *TagStripper) Transform(dst, src []byte, _ bool) (int, int, error) {
	var nDst, nSrc int
	for ; nSrc < len(src); nSrc++ {
		c := src[nSrc]
		switch {
		case s.inTag:
			if c == '>' {
				s.inTag = false
			}
			continue
		case c == '<':
			s.inTag = true
			continue
		}

		if nDst >= len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		dst[nDst] = c
		nDst++
	}
	return nDst, nSrc, nil
}

// Reset implements [transform.Transformer.Reset].
func (s *TagStripper) Reset() {
	s.inTag = false
}
