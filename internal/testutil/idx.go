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

package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dingsearch/deen/indexer"
	"github.com/dingsearch/deen/internal/text"
	"github.com/dingsearch/deen/store"
)

// MakeInstalledStore indexes dingPath into a fresh SQLite store under a
// temp directory and returns the opened store. It drives the real indexer
// over a real DING file rather than hand-encoding index records, since the
// prefix store has no simple literal encoding to hand-assemble.
func MakeInstalledStore(t *testing.T, dingPath string) *store.Store {
	t.Helper()

	s, err := store.Open(filepath.Join(t.TempDir(), "index.db"))
	if err != nil {
		t.Fatalf("MakeInstalledStore: opening store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	it, closeFile, err := text.WordsInFile(dingPath)
	if err != nil {
		t.Fatalf("MakeInstalledStore: %v", err)
	}
	defer closeFile()

	ctx := context.Background()
	tx, err := s.Begin(ctx)
	if err != nil {
		t.Fatalf("MakeInstalledStore: beginning transaction: %v", err)
	}
	if err := indexer.Run(ctx, it, tx, nil, nil); err != nil {
		t.Fatalf("MakeInstalledStore: indexing: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("MakeInstalledStore: committing: %v", err)
	}

	return s
}
