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

// Package entry represents a single DING dictionary line, split into its
// German and English sides, and scores it against a keyword set.
package entry

import (
	"strings"

	"github.com/xrash/smetrics"
	"golang.org/x/text/transform"

	"github.com/dingsearch/deen/internal/folding"
	"github.com/dingsearch/deen/internal/text"
	"github.com/dingsearch/deen/keyword"
)

// Scoring weights. The exact values are not specified by the source
// material; these preserve ranking order on Apfel/Apfelbaum-style scenarios
// because the edit-distance term dominates a bare positional offset once
// the matched word is longer than the keyword.
const (
	sideEnglishPenalty = 50
	missPenalty        = 1000

	// NoMatch is returned by Distance when the entry does not cover every
	// keyword in the set. It is larger than any score a partial match could
	// accumulate.
	NoMatch = 1 << 30
)

// Entry is a single DING line split on the first "::" into a German and an
// English side. Either side may hold further sub-senses separated by "|";
// Entry treats them as opaque text.
type Entry struct {
	German  string
	English string

	// Ref is the byte offset of this entry's line in the installed data
	// file, carried through from lookup for stable tie-breaking.
	Ref int64

	// Dist is the score Distance last computed for this entry, carried
	// through from lookup for display. It is NoMatch until Distance has
	// been called.
	Dist int
}

// New splits line on the first occurrence of "::" and trims leading and
// trailing whitespace from both sides, collapsing internal whitespace runs
// to a single space. It returns false if line does not contain the
// separator.
func New(line string, ref int64) (*Entry, bool) {
	german, english, ok := strings.Cut(line, "::")
	if !ok {
		return nil, false
	}
	return &Entry{
		German:  foldWhitespace(german),
		English: foldWhitespace(english),
		Ref:     ref,
		Dist:    NoMatch,
	}, true
}

// foldWhitespace trims leading and trailing whitespace and collapses
// internal whitespace runs to a single space.
func foldWhitespace(s string) string {
	var f folding.WhitespaceFolder
	out, _, err := transform.String(&f, s)
	if err != nil {
		// WhitespaceFolder never errors on a complete, in-memory string; fall
		// back to a plain trim if that ever changes.
		return strings.TrimSpace(s)
	}
	return out
}

// Distance computes the entry's relevance distance against keywords:
// smaller is better. useMap must have length keywords.Len(); it is reset
// and then used to record, per keyword, whether a match was found. Keywords
// are assigned to matches in the order given (callers pass them
// longest-first) so that longer, more specific keywords claim a position
// before shorter ones can.
//
// For each keyword this looks for a case-insensitive occurrence in the
// German side first, then the English side, and if one is found adds the
// match's byte offset into that side (the positional penalty) plus the Levenshtein
// distance between the keyword and the whole word it matched inside of
// (the edit-distance penalty), plus a fixed penalty if the match was on the
// English side. An unmatched keyword adds a large fixed penalty instead. If
// any keyword ends up unmatched, Distance returns NoMatch rather than the
// accumulated score.
func (e *Entry) Distance(keywords *keyword.Set, useMap []bool) int {
	for i := range useMap {
		useMap[i] = false
	}

	german := []byte(e.German)
	english := []byte(e.English)

	score := 0
	for i := 0; i < keywords.Len(); i++ {
		k := keywords.At(i)

		data, side := german, 0
		pos := text.IFindFirst(data, k, 0, len(data))
		if pos == text.NotFound {
			data, side = english, 1
			pos = text.IFindFirst(data, k, 0, len(data))
		}

		if pos == text.NotFound {
			score += missPenalty
			continue
		}

		useMap[i] = true
		score += pos

		word := text.WordAt(data, pos)
		upperWord := append([]byte(nil), word...)
		text.ToUpper(upperWord)
		score += smetrics.WagnerFischer(string(k), string(upperWord), 1, 1, 1)

		if side == 1 {
			score += sideEnglishPenalty
		}
	}

	for _, used := range useMap {
		if !used {
			e.Dist = NoMatch
			return NoMatch
		}
	}
	e.Dist = score
	return score
}
