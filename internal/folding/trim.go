// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package folding

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/transform"
)

// TrimFolder removes whitespace from the beginning and end of the input.
// Internal whitespace spans are emitted unchanged.
type TrimFolder struct {
	// notStart is true after encountering the first non-whitespace rune.
	notStart bool

	// span holds an internal whitespace span that has not been emitted yet.
	span []byte
}

// Transform implements [transform.Transformer.Transform].
func (w *TrimFolder) Transform(dst, src []byte, atEOF bool) (int, int, error) {
	var nSrc, nDst int
	for nSrc < len(src) {
		if !atEOF && !utf8.FullRune(src[nSrc:]) {
			return nDst, nSrc, transform.ErrShortSrc
		}
		c, size := utf8.DecodeRune(src[nSrc:])

		if unicode.IsSpace(c) {
			if w.notStart {
				// Hold on to the span until we know it is not trailing.
				w.span = append(w.span, src[nSrc:nSrc+size]...)
			}
			nSrc += size
			continue
		}

		if len(w.span) > 0 {
			// The span is internal so it can be written in pieces.
			n := copy(dst[nDst:], w.span)
			nDst += n
			w.span = w.span[n:]
			if len(w.span) > 0 {
				return nDst, nSrc, transform.ErrShortDst
			}
		}

		// NOTE: c could be utf8.RuneError in which case size is 1 but the
		// encoded length is 3.
		if nDst+utf8.RuneLen(c) > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		w.notStart = true
		nSrc += size
		nDst += utf8.EncodeRune(dst[nDst:], c)
	}

	return nDst, nSrc, nil
}

// Reset implements [transform.Transformer.Reset].
func (w *TrimFolder) Reset() {
	*w = TrimFolder{}
}
