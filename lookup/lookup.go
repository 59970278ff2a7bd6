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

// Package lookup resolves a query string to a ranked list of dictionary
// entries by intersecting prefix hits in the store, fetching and verifying
// candidate lines, scoring them, and retrying once with umlaut-recovered
// keywords if too few results come back.
package lookup

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/dingsearch/deen/entry"
	"github.com/dingsearch/deen/indexer"
	"github.com/dingsearch/deen/internal/text"
	"github.com/dingsearch/deen/keyword"
	"github.com/dingsearch/deen/store"
)

// LineReaderAt reads the line starting at a given byte offset. *os.File
// satisfies it; lookup only needs read access to the installed data copy.
type LineReaderAt interface {
	io.ReaderAt
}

// MinResults is the minimum result count below which a second pass with
// umlaut-recovered keywords is attempted.
const MinResults = 3

// readLineMax bounds a single pread-and-scan-for-newline; DING lines are
// short, so this is generous headroom rather than a real limit.
const readLineMax = 64 * 1024

// Run executes a full lookup against an already-open store and data file:
// it builds a keyword set from query, scores candidates, and retries once
// with umlaut-recovered keywords if the first pass comes back thin. It
// returns at most maxResults entries (all of them if maxResults is zero or
// less) ordered by ascending distance, ties broken by ascending ref.
func Run(ctx context.Context, s *store.Store, data LineReaderAt, query string, maxResults int) ([]*entry.Entry, error) {
	keywords := keyword.New()
	keywords.AddFromString(query)

	results, err := pass(ctx, s, data, keywords, maxResults)
	if err != nil {
		return nil, err
	}

	if len(results) < MinResults && keywords.Adjust() {
		results, err = pass(ctx, s, data, keywords, maxResults)
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

// pass runs one end-to-end lookup pass against the current state of
// keywords: deriving search prefixes, fetching and verifying candidate
// lines, scoring them, and sorting the survivors.
func pass(ctx context.Context, s *store.Store, data LineReaderAt, keywords *keyword.Set, maxResults int) ([]*entry.Entry, error) {
	if keywords.Len() == 0 {
		return nil, nil
	}

	prefixes := searchPrefixes(keywords)

	refs, err := s.RefsForPrefixes(ctx, prefixes)
	if err != nil {
		return nil, fmt.Errorf("lookup: %w", err)
	}

	type scored struct {
		e    *entry.Entry
		dist int
	}

	useMap := make([]bool, keywords.Len())
	var candidates []scored
	for _, ref := range refs {
		line, err := readLine(data, ref)
		if err != nil {
			return nil, fmt.Errorf("lookup: reading ref %d: %w", ref, err)
		}

		e, ok := entry.New(line, ref)
		if !ok {
			continue
		}

		if !keywords.AllPresent([]byte(line)) {
			continue
		}

		dist := e.Distance(keywords, useMap)
		if dist == entry.NoMatch {
			continue
		}
		candidates = append(candidates, scored{e: e, dist: dist})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].dist != candidates[j].dist {
			return candidates[i].dist < candidates[j].dist
		}
		return candidates[i].e.Ref < candidates[j].e.Ref
	})

	if maxResults > 0 && len(candidates) > maxResults {
		candidates = candidates[:maxResults]
	}

	out := make([]*entry.Entry, len(candidates))
	for i, c := range candidates {
		out[i] = c.e
	}
	return out, nil
}

// searchPrefixes derives the search-prefix set from keywords: each
// keyword's uppercased form cropped to the indexing depth, deduplicated.
func searchPrefixes(keywords *keyword.Set) [][]byte {
	seen := make(map[string]bool)
	var prefixes [][]byte
	for i := 0; i < keywords.Len(); i++ {
		k := keywords.At(i)
		cropped, _ := text.CropToUnicodeLen(append([]byte(nil), k...), indexer.Depth)
		key := string(cropped)
		if seen[key] {
			continue
		}
		seen[key] = true
		prefixes = append(prefixes, cropped)
	}
	return prefixes
}

// readLine reads the line starting at ref, up to (but not including) the
// next newline or EOF.
func readLine(data LineReaderAt, ref int64) (string, error) {
	buf := make([]byte, readLineMax)
	n, err := data.ReadAt(buf, ref)
	if err != nil && err != io.EOF {
		return "", err
	}
	buf = buf[:n]

	if i := bytes.IndexByte(buf, '\n'); i >= 0 {
		buf = buf[:i]
	}
	return string(buf), nil
}
