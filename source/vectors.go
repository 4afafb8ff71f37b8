// Copyright 2026 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package source reads the entries of a dictionary export. The export
// consists of an SQLite index store holding one vector per entry and a blob
// file holding the entry records the vectors point into.
package source

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	_ "modernc.org/sqlite"
)

var (
	// ErrNotFound indicates that a vector does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidIndex indicates that the index store does not have the
	// expected layout.
	ErrInvalidIndex = errors.New("invalid index store")
)

// Vector locates an entry's record in the blob file.
type Vector struct {
	EntryID int

	// LinkID is the id of the entry this entry refers to. It equals EntryID
	// for entries that are not references.
	LinkID int

	Offset int64
	Length int
}

// Vector columns by position.
const (
	colEntryID = 0
	colLinkID  = 2
	colOffset  = 3
	colLength  = 4

	minColumns = 5
)

// Vectors reads vectors from the index store.
type Vectors struct {
	db    *sql.DB
	table string
}

// OpenVectors opens the index store at path read-only. Vectors are read from
// the entries table of the given lookup direction.
func OpenVectors(path string, direction int) (*Vectors, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open index store: %w", err)
	}

	v := &Vectors{
		db:    db,
		table: "entries" + strconv.Itoa(direction),
	}

	var n int
	err = db.QueryRow(`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, v.table).Scan(&n)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("open index store: %w", err)
	}
	if n == 0 {
		db.Close()
		return nil, fmt.Errorf("%w: missing table %s", ErrInvalidIndex, v.table)
	}

	return v, nil
}

// Close closes the index store.
func (v *Vectors) Close() error {
	if err := v.db.Close(); err != nil {
		return fmt.Errorf("closing index store: %w", err)
	}
	return nil
}

// Count returns the number of vectors.
func (v *Vectors) Count(ctx context.Context) (int, error) {
	var n int
	//nolint:gosec // table name is not user input
	if err := v.db.QueryRowContext(ctx, "SELECT count(id_) FROM "+v.table).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting vectors: %w", err)
	}
	return n, nil
}

// List returns count vectors ordered by entry id starting at skip.
func (v *Vectors) List(ctx context.Context, skip, count int) ([]Vector, error) {
	//nolint:gosec // table name is not user input
	q := "SELECT * FROM " + v.table + " ORDER BY id_ ASC LIMIT ? OFFSET ?"
	return v.query(ctx, q, count, skip)
}

// ByID returns the vectors for the given entry ids ordered by entry id. Ids
// without a vector are ignored.
func (v *Vectors) ByID(ctx context.Context, ids []int) ([]Vector, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	//nolint:gosec // table name is not user input
	q := "SELECT * FROM " + v.table + " WHERE id_ IN (" + placeholders + ") ORDER BY id_ ASC"
	return v.query(ctx, q, args...)
}

// Get returns the vector for the given entry id.
func (v *Vectors) Get(ctx context.Context, id int) (Vector, error) {
	vs, err := v.ByID(ctx, []int{id})
	if err != nil {
		return Vector{}, err
	}
	if len(vs) == 0 {
		return Vector{}, fmt.Errorf("%w: entry %d", ErrNotFound, id)
	}
	return vs[0], nil
}

// Follow returns the vector of the entry v refers to. v is returned unchanged
// if it is not a reference.
func (v *Vectors) Follow(ctx context.Context, vec Vector) (Vector, error) {
	if vec.LinkID == vec.EntryID || vec.LinkID == 0 {
		return vec, nil
	}
	return v.Get(ctx, vec.LinkID)
}

func (v *Vectors) query(ctx context.Context, q string, args ...any) ([]Vector, error) {
	rows, err := v.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying vectors: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("querying vectors: %w", err)
	}
	if len(cols) < minColumns {
		return nil, fmt.Errorf("%w: %s has %d columns", ErrInvalidIndex, v.table, len(cols))
	}

	var vectors []Vector
	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scanning vector: %w", err)
		}
		vec, err := toVector(values)
		if err != nil {
			return nil, err
		}
		vectors = append(vectors, vec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("querying vectors: %w", err)
	}
	return vectors, nil
}

func toVector(values []any) (Vector, error) {
	var ints [minColumns]int64
	for _, col := range []int{colEntryID, colLinkID, colOffset, colLength} {
		n, err := toInt(values[col])
		if err != nil {
			return Vector{}, fmt.Errorf("%w: column %d: %w", ErrInvalidIndex, col, err)
		}
		ints[col] = n
	}
	return Vector{
		EntryID: int(ints[colEntryID]),
		LinkID:  int(ints[colLinkID]),
		Offset:  ints[colOffset],
		Length:  int(ints[colLength]),
	}, nil
}

func toInt(v any) (int64, error) {
	switch x := v.(type) {
	case int64:
		return x, nil
	case float64:
		return int64(x), nil
	case []byte:
		//nolint:wrapcheck // wrapped by caller
		return strconv.ParseInt(string(x), 10, 64)
	case string:
		//nolint:wrapcheck // wrapped by caller
		return strconv.ParseInt(x, 10, 64)
	case nil:
		return 0, nil
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}
