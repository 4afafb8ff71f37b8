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

package testutil

import (
	"database/sql"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	_ "modernc.org/sqlite"
)

// SourceRecord is an entry of a test dictionary export.
type SourceRecord struct {
	ID int

	// LinkID defaults to ID.
	LinkID int

	Text string
}

// MakeSource writes a dictionary export holding the given records to dir and
// returns the paths of the index store and the blob file. Records are stored
// in the blob file in the given order.
func MakeSource(t *testing.T, dir string, direction int, records []SourceRecord) (string, string) {
	t.Helper()

	indexPath := filepath.Join(dir, "index.gdd")
	blobPath := filepath.Join(dir, "entries.dat")

	db, err := sql.Open("sqlite", indexPath)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	table := "entries" + strconv.Itoa(direction)
	_, err = db.Exec("CREATE TABLE " + table + ` (
		id_ INTEGER PRIMARY KEY,
		word_ TEXT,
		link_id_ INTEGER,
		offset_ INTEGER,
		length_ INTEGER
	)`)
	if err != nil {
		t.Fatal(err)
	}

	var blob []byte
	for _, r := range records {
		link := r.LinkID
		if link == 0 {
			link = r.ID
		}
		_, err := db.Exec("INSERT INTO "+table+" VALUES (?, ?, ?, ?, ?)",
			r.ID, "", link, len(blob), len(r.Text))
		if err != nil {
			t.Fatal(err)
		}
		blob = append(blob, r.Text...)
	}

	if err := os.WriteFile(blobPath, blob, 0o600); err != nil {
		t.Fatal(err)
	}

	return indexPath, blobPath
}
