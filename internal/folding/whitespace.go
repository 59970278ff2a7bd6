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

// WhitespaceFolder trims leading and trailing whitespace from a DING entry
// side and collapses every internal run of whitespace to a single ASCII
// space, so that "  Apfel   baum\t" becomes "Apfel baum".
type WhitespaceFolder struct {
	// sawWord becomes true once the first non-whitespace rune has been
	// emitted. Before that, whitespace is leading and is dropped rather
	// than queued.
	sawWord bool

	// inGap is true while the transformer is in the middle of an internal
	// whitespace run, waiting to see whether more non-whitespace follows
	// (in which case the run collapses to one space) or the input ends
	// (in which case it is trailing and is dropped).
	inGap bool
}

// Transform implements [transform.Transformer.Transform].
func (w *WhitespaceFolder) Transform(dst, src []byte, atEOF bool) (int, int, error) {
	var nDst, nSrc int

	for nSrc < len(src) {
		r, size := utf8.DecodeRune(src[nSrc:])
		if r == utf8.RuneError && !atEOF {
			return nDst, nSrc, transform.ErrShortSrc
		}

		if unicode.IsSpace(r) {
			nSrc += size
			if w.sawWord {
				w.inGap = true
			}
			// Leading whitespace before the first word is dropped outright.
			continue
		}

		if w.inGap {
			const space = ' '
			if nDst+utf8.RuneLen(space) > len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			nDst += utf8.EncodeRune(dst[nDst:], space)
			w.inGap = false
		}
		w.sawWord = true
		nSrc += size

		// r may be utf8.RuneError (three bytes when encoded) decoded from a
		// single invalid source byte, so size need not match r's encoded
		// length; re-encode using r's own length rather than size.
		if nDst+utf8.RuneLen(r) > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += utf8.EncodeRune(dst[nDst:], r)
	}

	return nDst, nSrc, nil
}

// Reset implements [transform.Transformer.Reset].
func (w *WhitespaceFolder) Reset() {
	*w = WhitespaceFolder{}
}
