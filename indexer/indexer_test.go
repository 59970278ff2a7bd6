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

package indexer

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dingsearch/deen/internal/text"
	"github.com/dingsearch/deen/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "index.db"))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// TestRun tests that Run indexes a small DING file into the store such
// that a prefix query against it returns the expected refs.
func TestRun(t *testing.T) {
	t.Parallel()

	data := "Apfelbaum :: apple tree\nKatze :: cat\n"
	it := text.NewWordIterator(strings.NewReader(data), int64(len(data)))
	s := openTestStore(t)
	ctx := context.Background()

	tx, err := s.Begin(ctx)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := Run(ctx, it, tx, nil, nil); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	refs, err := s.RefsForPrefixes(ctx, [][]byte{[]byte("APF")})
	if err != nil {
		t.Fatalf("RefsForPrefixes: %v", err)
	}
	if diff := cmp.Diff([]int64{0}, refs); diff != "" {
		t.Fatalf("RefsForPrefixes(APF) diff (-want +got):\n%s", diff)
	}

	refs, err = s.RefsForPrefixes(ctx, [][]byte{[]byte("KAT")})
	if err != nil {
		t.Fatalf("RefsForPrefixes: %v", err)
	}
	if diff := cmp.Diff([]int64{int64(len("Apfelbaum :: apple tree\n"))}, refs); diff != "" {
		t.Fatalf("RefsForPrefixes(KAT) diff (-want +got):\n%s", diff)
	}
}

// TestRun_DropsCommonWords verifies a common word produces no index
// entries.
func TestRun_DropsCommonWords(t *testing.T) {
	t.Parallel()

	data := "der Mann :: the man\n"
	it := text.NewWordIterator(strings.NewReader(data), int64(len(data)))
	s := openTestStore(t)
	ctx := context.Background()

	tx, err := s.Begin(ctx)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := Run(ctx, it, tx, nil, nil); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	refs, err := s.RefsForPrefixes(ctx, [][]byte{[]byte("DER")})
	if err != nil {
		t.Fatalf("RefsForPrefixes: %v", err)
	}
	if len(refs) != 0 {
		t.Fatalf("RefsForPrefixes(DER); want: empty, got: %v", refs)
	}
}

// TestRun_Cancelled tests that Run stops and reports ErrCancelled as soon
// as the cancel function returns true.
func TestRun_Cancelled(t *testing.T) {
	t.Parallel()

	data := "Apfelbaum :: apple tree\nKatze :: cat\n"
	it := text.NewWordIterator(strings.NewReader(data), int64(len(data)))
	s := openTestStore(t)
	ctx := context.Background()

	tx, err := s.Begin(ctx)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	err = Run(ctx, it, tx, nil, func() bool { return true })
	if err != ErrCancelled {
		t.Fatalf("Run; want: ErrCancelled, got: %v", err)
	}
	_ = tx.Rollback()
}

// TestBag_AddIfAbsent tests that the prefix bag stays sorted and
// deduplicated regardless of insertion order.
func TestBag_AddIfAbsent(t *testing.T) {
	t.Parallel()

	var b bag
	for _, p := range []string{"BAU", "APF", "KAT", "APF", "BAU"} {
		b.addIfAbsent([]byte(p))
	}

	want := []string{"APF", "BAU", "KAT"}
	if len(b.prefixes) != len(want) {
		t.Fatalf("bag; want: %v, got: %v", want, b.prefixes)
	}
	for i, w := range want {
		if string(b.prefixes[i]) != w {
			t.Fatalf("bag[%d]; want: %q, got: %q", i, w, b.prefixes[i])
		}
	}
}
