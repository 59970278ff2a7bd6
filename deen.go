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

// Package deen installs and queries a German-English DING dictionary: a
// single plain-text source file indexed into a prefix-searchable store
// under a root directory, then looked up by free-text query and ranked by
// edit distance.
package deen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dingsearch/deen/entry"
	"github.com/dingsearch/deen/lookup"
	"github.com/dingsearch/deen/store"
)

const (
	dataFileName  = "dict.txt"
	storeFileName = "index.db"
)

func dataPath(rootDir string) string  { return filepath.Join(rootDir, dataFileName) }
func storePath(rootDir string) string { return filepath.Join(rootDir, storeFileName) }

// Dictionary is a handle on an installed, queryable DING dataset: the
// byte-exact copy of the source file plus its prefix store.
type Dictionary struct {
	rootDir string
	store   *store.Store
	data    *os.File
}

// IsInstalled reports whether a dictionary's data file is present under
// rootDir.
func IsInstalled(rootDir string) bool {
	_, err := os.Stat(dataPath(rootDir))
	return err == nil
}

// Open opens an already-installed dictionary under rootDir.
func Open(rootDir string) (*Dictionary, error) {
	if !IsInstalled(rootDir) {
		return nil, fmt.Errorf("deen: %s: no dictionary installed", rootDir)
	}

	st, err := store.Open(storePath(rootDir))
	if err != nil {
		return nil, fmt.Errorf("deen: opening store: %w", err)
	}

	f, err := os.Open(dataPath(rootDir))
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("deen: opening data file: %w", err)
	}

	return &Dictionary{rootDir: rootDir, store: st, data: f}, nil
}

// Close releases the dictionary's open store and data file.
func (d *Dictionary) Close() error {
	storeErr := d.store.Close()
	dataErr := d.data.Close()
	if storeErr != nil {
		return fmt.Errorf("deen: closing store: %w", storeErr)
	}
	if dataErr != nil {
		return fmt.Errorf("deen: closing data file: %w", dataErr)
	}
	return nil
}

// WordCount returns the number of indexed dictionary lines.
func (d *Dictionary) WordCount(ctx context.Context) (int64, error) {
	return d.store.RefCount(ctx)
}

// Lookup runs a query against the dictionary, returning at most maxResults
// entries (all of them if maxResults is zero or less) ranked by ascending
// distance.
func (d *Dictionary) Lookup(ctx context.Context, query string, maxResults int) ([]*Entry, error) {
	results, err := lookup.Run(ctx, d.store, d.data, query, maxResults)
	if err != nil {
		return nil, fmt.Errorf("deen: %w", err)
	}

	entries := make([]*Entry, len(results))
	for i, r := range results {
		entries[i] = &Entry{inner: r}
	}
	return entries, nil
}

// Entry is a thin rendering wrapper around entry.Entry.
type Entry struct {
	inner *entry.Entry
}

// German returns the entry's German side.
func (e *Entry) German() string { return e.inner.German }

// English returns the entry's English side.
func (e *Entry) English() string { return e.inner.English }

// Ref returns the entry's byte offset in the installed data file.
func (e *Entry) Ref() int64 { return e.inner.Ref }

// Distance returns the entry's ranking distance from the query that
// produced it: smaller is a closer match.
func (e *Entry) Distance() int { return e.inner.Dist }

// String renders the entry the way it would appear in the source DING
// file.
func (e *Entry) String() string {
	return e.inner.German + " :: " + e.inner.English
}
