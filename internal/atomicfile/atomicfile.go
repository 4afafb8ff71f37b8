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

// Package atomicfile writes files that only appear at their destination once
// they are complete.
package atomicfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrDone indicates the file was already committed or aborted.
var ErrDone = errors.New("file already committed or aborted")

// Mode is the permission of committed files.
const Mode os.FileMode = 0o644

// File is a temporary file in the destination directory. It is renamed to its
// destination by Commit.
type File struct {
	*os.File

	path string
	done bool
}

// Create returns a new temporary file that will be renamed to path when
// committed.
func Create(path string) (*File, error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("creating %q: %w", path, err)
	}
	return &File{
		File: f,
		path: path,
	}, nil
}

// Path returns the destination path.
func (f *File) Path() string {
	return f.path
}

// Commit closes the file and renames it to its destination.
func (f *File) Commit() error {
	if f.done {
		return fmt.Errorf("%w: %s", ErrDone, f.path)
	}
	f.done = true

	tmpPath := f.File.Name()
	if err := f.File.Chmod(Mode); err != nil {
		_ = f.File.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("chmod %q: %w", tmpPath, err)
	}
	if err := f.File.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("closing %q: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("renaming %q: %w", f.path, err)
	}
	return nil
}

// Abort closes and removes the temporary file. Abort does nothing after
// Commit so it can be deferred.
func (f *File) Abort() error {
	if f.done {
		return nil
	}
	f.done = true

	_ = f.File.Close()
	if err := os.Remove(f.File.Name()); err != nil {
		return fmt.Errorf("removing %q: %w", f.File.Name(), err)
	}
	return nil
}

// Set is a group of files committed together.
type Set struct {
	files []*File
}

// Create adds a new file to the set.
func (s *Set) Create(path string) (*File, error) {
	f, err := Create(path)
	if err != nil {
		return nil, err
	}
	s.files = append(s.files, f)
	return f, nil
}

// Commit commits all files in the set. If a file fails to commit the
// remaining files are aborted.
func (s *Set) Commit() error {
	for i, f := range s.files {
		if err := f.Commit(); err != nil {
			for _, rest := range s.files[i+1:] {
				_ = rest.Abort()
			}
			return err
		}
	}
	return nil
}

// Abort aborts all uncommitted files in the set.
func (s *Set) Abort() {
	for _, f := range s.files {
		_ = f.Abort()
	}
}
