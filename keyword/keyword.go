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

// Package keyword builds the normalized, prefix-free keyword set a query
// string is reduced to before it can be used to probe the prefix store or
// score candidate entries.
package keyword

import (
	"bytes"
	"sort"

	"github.com/dingsearch/deen/internal/text"
)

// Set is an ordered collection of normalized, uppercase query keywords. It
// maintains two invariants: no member is a byte-wise prefix of any other
// member, and members are ordered by descending Unicode character count,
// ties broken by ascending lexicographic byte order.
type Set struct {
	words [][]byte
}

// New returns an empty keyword set.
func New() *Set {
	return &Set{}
}

// Len returns the number of keywords in the set.
func (s *Set) Len() int {
	return len(s.words)
}

// At returns the keyword at index i, in the set's current order.
func (s *Set) At(i int) []byte {
	return s.words[i]
}

// hasPrefixOf reports whether w is a byte-wise prefix of (or equal to) any
// keyword already in the set.
func (s *Set) hasPrefixOf(w []byte) bool {
	for _, k := range s.words {
		if bytes.HasPrefix(k, w) {
			return true
		}
	}
	return false
}

// AddFromString uppercases input, tokenizes it on whitespace, drops common
// words and tokens that are a prefix of a keyword already in the set,
// replaces any existing keywords that are a prefix of a new token with that
// token (so the longer keyword survives whatever the input order), and
// re-sorts the set.
func (s *Set) AddFromString(input string) {
	buf := []byte(input)
	text.ToUpper(buf)

	text.EachWord(buf, func(w text.Word) bool {
		if text.IsCommonWord(w.Bytes) {
			return true
		}
		if s.hasPrefixOf(w.Bytes) {
			return true
		}
		kept := s.words[:0]
		for _, k := range s.words {
			if !bytes.HasPrefix(w.Bytes, k) {
				kept = append(kept, k)
			}
		}
		s.words = append(kept, append([]byte(nil), w.Bytes...))
		return true
	})

	s.sort()
}

// sort re-orders the set: primary key descending Unicode character count,
// ties broken by ascending lexicographic byte order. The descending-length
// ordering is load-bearing: scoring assigns longer, more specific keywords
// to positions first.
func (s *Set) sort() {
	sort.SliceStable(s.words, func(i, j int) bool {
		li, _ := text.SequenceCount(s.words[i])
		lj, _ := text.SequenceCount(s.words[j])
		if li != lj {
			return li > lj
		}
		return bytes.Compare(s.words[i], s.words[j]) < 0
	})
}

// LongestKeyword returns the longest byte length among the set's members,
// used to size scoring buffers. It returns 0 for an empty set.
func (s *Set) LongestKeyword() int {
	longest := 0
	for _, w := range s.words {
		if len(w) > longest {
			longest = len(w)
		}
	}
	return longest
}

// AllPresent reports whether every keyword in the set occurs somewhere in
// text under case-insensitive search. An empty set is vacuously true.
func (s *Set) AllPresent(data []byte) bool {
	for _, w := range s.words {
		if text.IFindFirst(data, w, 0, len(data)) == text.NotFound {
			return false
		}
	}
	return true
}
