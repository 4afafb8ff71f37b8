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

package atomicfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFile_Commit(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ordbog.txt")
	f, err := Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer f.Abort()

	if _, err := f.WriteString("bord"); err != nil {
		t.Fatalf("WriteString: %v", err)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Stat before commit: want %v, got %v", os.ErrNotExist, err)
	}

	if err := f.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if want, got := "bord", string(b); want != got {
		t.Fatalf("content: want %q, got %q", want, got)
	}

	if err := f.Commit(); !errors.Is(err, ErrDone) {
		t.Fatalf("second Commit: want %v, got %v", ErrDone, err)
	}
}

func TestFile_Abort(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "ordbog.txt")
	f, err := Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := f.Abort(); err != nil {
		t.Fatalf("Abort: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("ReadDir: want empty dir, got %d entries", len(entries))
	}
}

func TestSet(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var s Set
	for _, name := range []string{"a.txt", "b.txt"} {
		f, err := s.Create(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if _, err := f.WriteString(name); err != nil {
			t.Fatalf("WriteString: %v", err)
		}
	}

	if err := s.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	s.Abort()

	for _, name := range []string{"a.txt", "b.txt"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("Stat: %v", err)
		}
	}
}
