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

// Package store persists the many-to-many relation between indexed
// prefixes and the file offsets ("refs") of the dictionary lines they were
// found in, backed by an embedded SQLite database opened through
// database/sql.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS prefixes (
	prefix_id   INTEGER PRIMARY KEY,
	prefix_bytes BLOB NOT NULL UNIQUE
);
CREATE TABLE IF NOT EXISTS refs (
	prefix_id INTEGER NOT NULL REFERENCES prefixes(prefix_id),
	ref       INTEGER NOT NULL,
	UNIQUE(prefix_id, ref)
);
CREATE INDEX IF NOT EXISTS refs_by_prefix ON refs(prefix_id);
`

// Store is the on-disk prefix-to-ref relation. The zero value is not
// usable; construct one with Open.
type Store struct {
	db *sql.DB
}

// Open opens (and, if necessary, creates) the SQLite database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: opening %q: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: creating schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Tx is a single write transaction spanning an entire install. All of a
// store's writes during one install must go through a single Tx so that the
// embedded engine can batch them.
type Tx struct {
	tx *sql.Tx
}

// Begin starts the install-spanning transaction.
func (s *Store) Begin(ctx context.Context) (*Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("store: beginning transaction: %w", err)
	}
	return &Tx{tx: tx}, nil
}

// Commit commits the transaction.
func (t *Tx) Commit() error {
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("store: committing transaction: %w", err)
	}
	return nil
}

// Rollback abandons the transaction. It is a no-op if the transaction has
// already been committed or rolled back.
func (t *Tx) Rollback() error {
	if err := t.tx.Rollback(); err != nil && err != sql.ErrTxDone {
		return fmt.Errorf("store: rolling back transaction: %w", err)
	}
	return nil
}

// Add ensures every prefix in prefixes exists (inserting it if absent) and
// then inserts one (prefix_id, ref) row per prefix, ignoring rows that would
// duplicate an existing (prefix_id, ref) pair. prefixes is expected to
// already be deduplicated by the caller (the indexer's per-ref prefix bag).
func (t *Tx) Add(ctx context.Context, ref int64, prefixes [][]byte) error {
	for _, p := range prefixes {
		id, err := t.ensurePrefix(ctx, p)
		if err != nil {
			return err
		}
		if _, err := t.tx.ExecContext(ctx,
			`INSERT INTO refs (prefix_id, ref) VALUES (?, ?) ON CONFLICT DO NOTHING`,
			id, ref,
		); err != nil {
			return fmt.Errorf("store: inserting ref %d for prefix %q: %w", ref, p, err)
		}
	}
	return nil
}

func (t *Tx) ensurePrefix(ctx context.Context, prefix []byte) (int64, error) {
	if _, err := t.tx.ExecContext(ctx,
		`INSERT INTO prefixes (prefix_bytes) VALUES (?) ON CONFLICT DO NOTHING`,
		prefix,
	); err != nil {
		return 0, fmt.Errorf("store: inserting prefix %q: %w", prefix, err)
	}

	var id int64
	if err := t.tx.QueryRowContext(ctx,
		`SELECT prefix_id FROM prefixes WHERE prefix_bytes = ?`, prefix,
	).Scan(&id); err != nil {
		return 0, fmt.Errorf("store: looking up prefix %q: %w", prefix, err)
	}
	return id, nil
}

// RefsForPrefixes returns the set of refs that appear for every prefix in
// prefixes, i.e. their intersection. It returns refs in ascending order. An
// empty prefixes slice returns no refs.
func (s *Store) RefsForPrefixes(ctx context.Context, prefixes [][]byte) ([]int64, error) {
	if len(prefixes) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(prefixes))
	args := make([]any, len(prefixes))
	for i, p := range prefixes {
		placeholders[i] = "?"
		args[i] = p
	}

	query := fmt.Sprintf(`
		SELECT r.ref
		FROM refs r
		JOIN prefixes p ON p.prefix_id = r.prefix_id
		WHERE p.prefix_bytes IN (%s)
		GROUP BY r.ref
		HAVING COUNT(DISTINCT p.prefix_bytes) = ?
		ORDER BY r.ref
	`, strings.Join(placeholders, ","))
	args = append(args, len(prefixes))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: querying refs for %d prefixes: %w", len(prefixes), err)
	}
	defer rows.Close()

	var refs []int64
	for rows.Next() {
		var ref int64
		if err := rows.Scan(&ref); err != nil {
			return nil, fmt.Errorf("store: scanning ref: %w", err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: iterating refs: %w", err)
	}

	sort.Slice(refs, func(i, j int) bool { return refs[i] < refs[j] })
	return refs, nil
}

// RefCount returns the number of distinct refs in the store, i.e. the
// number of indexed dictionary lines.
func (s *Store) RefCount(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(DISTINCT ref) FROM refs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("store: counting refs: %w", err)
	}
	return n, nil
}
