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

// Package index implements a small sorted-slice lookup structure, used by
// internal/text to hold the fixed common-word set so that membership checks
// run in O(log n) instead of scanning the whole list per token.
package index

import (
	"fmt"
	"slices"
	"sort"
)

// Index is a sorted, binary-searchable copy of a slice of V. The zero value
// is not usable; build one with NewIndex.
type Index[V fmt.Stringer] struct {
	entries []V
	cmp     func(string, string) int
}

// NewIndex copies members, sorts the copy by cmp applied to each member's
// String(), and returns the resulting Index. cmp must behave like
// strings.Compare: negative when a < b, positive when a > b, zero when equal.
func NewIndex[V fmt.Stringer](members []V, cmp func(string, string) int) *Index[V] {
	entries := slices.Clone(members)
	slices.SortFunc(entries, func(a, b V) int {
		return cmp(a.String(), b.String())
	})

	return &Index[V]{entries: entries, cmp: cmp}
}

// Search returns every member whose String() equals query, in the order
// they appear in the sorted index. It returns nil if none match.
func (idx *Index[V]) Search(query string) []V {
	start, found := sort.Find(len(idx.entries), func(i int) int {
		return idx.cmp(query, idx.entries[i].String())
	})
	if !found {
		return nil
	}

	end := start
	for end < len(idx.entries) && idx.cmp(query, idx.entries[end].String()) == 0 {
		end++
	}
	return idx.entries[start:end]
}
