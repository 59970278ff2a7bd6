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

// Package indexer streams a DING-format dictionary file and emits
// (ref, prefix) pairs to a store.Tx under a single transaction, re-deriving
// the "ref bag" batching that the original C indexing callback performed
// per line.
package indexer

import (
	"context"
	"fmt"

	"github.com/dingsearch/deen/internal/text"
	"github.com/dingsearch/deen/store"
)

// Depth and Minimum are the indexing depth D and indexing minimum M from
// the data model: tokens shorter than Minimum code points are never
// indexed, and indexed prefixes are cropped to Depth code points.
const (
	Depth   = 3
	Minimum = 3
)

// ProgressFunc is called whenever the integer percentage of the file
// consumed so far advances. pct is in [0, 100].
type ProgressFunc func(pct int)

// CancelFunc is polled once per word; if it returns true, indexing stops
// and Run returns ErrCancelled.
type CancelFunc func() bool

// ErrCancelled is returned by Run when cancel reported true mid-stream.
var ErrCancelled = fmt.Errorf("indexer: cancelled")

// bag is the sorted, deduplicated set of prefixes accumulated for the
// current ref. Kept sorted so membership can be checked by binary search
// before insertion, mirroring the C implementation's prefix bag.
type bag struct {
	prefixes [][]byte
}

func (b *bag) reset() {
	b.prefixes = b.prefixes[:0]
}

// addIfAbsent inserts p in sorted position if it isn't already present.
func (b *bag) addIfAbsent(p []byte) {
	lo, hi := 0, len(b.prefixes)
	for lo < hi {
		mid := (lo + hi) / 2
		switch compareBytes(b.prefixes[mid], p) {
		case 0:
			return
		case -1:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	b.prefixes = append(b.prefixes, nil)
	copy(b.prefixes[lo+1:], b.prefixes[lo:])
	b.prefixes[lo] = append([]byte(nil), p...)
}

func compareBytes(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

// Run streams words from it, building each ref's prefix bag and flushing it
// to tx whenever the ref changes, then flushing the final bag at EOF. It
// reports progress and polls cancel once per word.
func Run(ctx context.Context, it *text.WordIterator, tx *store.Tx, progress ProgressFunc, cancel CancelFunc) error {
	var b bag
	lastReported := -1
	currentRef := int64(-1)
	upper := make([]byte, 0, 64)

	flush := func() error {
		if currentRef < 0 || len(b.prefixes) == 0 {
			return nil
		}
		if err := tx.Add(ctx, currentRef, b.prefixes); err != nil {
			return err
		}
		return nil
	}

	for {
		w, ok := it.Next()
		if !ok {
			break
		}

		if cancel != nil && cancel() {
			return ErrCancelled
		}

		if w.Ref != currentRef {
			if err := flush(); err != nil {
				return err
			}
			b.reset()
			currentRef = w.Ref
		}

		upper = append(upper[:0], w.Bytes...)
		text.ToUpper(upper)

		if !text.IsCommonWord(upper) {
			count, err := text.SequenceCount(upper)
			if err != nil {
				return fmt.Errorf("indexer: %w", err)
			}
			if count >= Minimum {
				cropped, _ := text.CropToUnicodeLen(append([]byte(nil), upper...), Depth)
				b.addIfAbsent(cropped)
			}
		}

		if progress != nil {
			pct := int(w.Progress * 100)
			if pct != lastReported {
				lastReported = pct
				progress(pct)
			}
		}
	}

	if err := it.Err(); err != nil {
		return fmt.Errorf("indexer: %w", err)
	}
	return flush()
}
