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

package keyword

// digraph is one ASCII-digraph to umlaut-letter substitution. search and
// replace are both always exactly two bytes, so the substitution never
// changes the length of the buffer it's applied to.
type digraph struct {
	search  [2]byte
	replace [2]byte
}

// digraphs is the ordered set of substitutions umlaut recovery applies, in
// the order they are attempted: EE, UE, OE, AE, IE, SS.
var digraphs = []digraph{
	{[2]byte{'E', 'E'}, [2]byte{0xC3, 0x8B}}, // EE -> Ë
	{[2]byte{'U', 'E'}, [2]byte{0xC3, 0x9C}}, // UE -> Ü
	{[2]byte{'O', 'E'}, [2]byte{0xC3, 0x96}}, // OE -> Ö
	{[2]byte{'A', 'E'}, [2]byte{0xC3, 0x84}}, // AE -> Ä
	{[2]byte{'I', 'E'}, [2]byte{0xC3, 0x8F}}, // IE -> Ï
	{[2]byte{'S', 'S'}, [2]byte{0xC3, 0x9F}}, // SS -> ß
}

// substitute replaces every non-overlapping occurrence of d.search in w
// with d.replace, in place, and reports whether it made any substitution.
// Because search and replace are both two bytes, this never needs to
// reallocate.
func (d digraph) substitute(w []byte) bool {
	found := false
	for i := 0; i+1 < len(w); i++ {
		if w[i] == d.search[0] && w[i+1] == d.search[1] {
			w[i], w[i+1] = d.replace[0], d.replace[1]
			found = true
			i++ // Skip past the two bytes just written.
		}
	}
	return found
}

// Adjust performs umlaut recovery: for every keyword, it scans for the
// literal upper-ASCII digraphs AE OE UE IE EE SS and replaces each
// occurrence with the corresponding German letter. It reports whether any
// substitution happened across the whole set; the caller uses that to
// decide whether a second lookup pass is worthwhile.
//
// All six substitutions are attempted for every keyword regardless of
// whether an earlier one matched: the original C implementation combines
// the six calls with a non-short-circuiting bitwise OR, so every pattern is
// always checked.
func (s *Set) Adjust() bool {
	adjusted := false
	for _, w := range s.words {
		for _, d := range digraphs {
			if d.substitute(w) {
				adjusted = true
			}
		}
	}
	if adjusted {
		s.sort()
	}
	return adjusted
}
