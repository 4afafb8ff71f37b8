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

package source

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ianlewis/go-ordbog/internal/testutil"
)

func newTestSource(t *testing.T) (*Vectors, *Blobs) {
	t.Helper()

	indexPath, blobPath := testutil.MakeSource(t, t.TempDir(), 1, []testutil.SourceRecord{
		{ID: 30, Text: "hus"},
		{ID: 10, Text: "stol"},
		{ID: 20, LinkID: 10, Text: "stole"},
	})

	v, err := OpenVectors(indexPath, 1)
	require.NoError(t, err)
	t.Cleanup(func() { v.Close() })

	b, err := OpenBlobs(blobPath)
	require.NoError(t, err)
	t.Cleanup(func() { b.Close() })

	return v, b
}

func TestVectors_Count(t *testing.T) {
	t.Parallel()

	v, _ := newTestSource(t)
	n, err := v.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestVectors_List(t *testing.T) {
	t.Parallel()

	v, _ := newTestSource(t)
	ctx := context.Background()

	all, err := v.List(ctx, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []Vector{
		{EntryID: 10, LinkID: 10, Offset: 3, Length: 4},
		{EntryID: 20, LinkID: 10, Offset: 7, Length: 5},
		{EntryID: 30, LinkID: 30, Offset: 0, Length: 3},
	}, all)

	page, err := v.List(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, 20, page[0].EntryID)
}

func TestVectors_ByID(t *testing.T) {
	t.Parallel()

	v, _ := newTestSource(t)
	ctx := context.Background()

	vs, err := v.ByID(ctx, []int{30, 10, 99})
	require.NoError(t, err)
	require.Len(t, vs, 2)
	assert.Equal(t, 10, vs[0].EntryID)
	assert.Equal(t, 30, vs[1].EntryID)

	vs, err = v.ByID(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, vs)
}

func TestVectors_Get(t *testing.T) {
	t.Parallel()

	v, _ := newTestSource(t)
	ctx := context.Background()

	vec, err := v.Get(ctx, 20)
	require.NoError(t, err)
	assert.Equal(t, 10, vec.LinkID)

	linked, err := v.Follow(ctx, vec)
	require.NoError(t, err)
	assert.Equal(t, 10, linked.EntryID)

	_, err = v.Get(ctx, 99)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestOpenVectors_missingTable(t *testing.T) {
	t.Parallel()

	indexPath, _ := testutil.MakeSource(t, t.TempDir(), 1, nil)
	_, err := OpenVectors(indexPath, 2)
	require.ErrorIs(t, err, ErrInvalidIndex)
}

func TestBlobs_Bytes(t *testing.T) {
	t.Parallel()

	v, b := newTestSource(t)
	ctx := context.Background()

	vs, err := v.List(ctx, 0, 3)
	require.NoError(t, err)

	var got []string
	for _, vec := range vs {
		data, err := b.Bytes(vec)
		require.NoError(t, err)
		got = append(got, string(data))
	}
	assert.Equal(t, []string{"stol", "stole", "hus"}, got)
}

func TestBlobs_Bytes_outOfRange(t *testing.T) {
	t.Parallel()

	b := NewBlobs(bytes.NewReader([]byte("stol")))
	_, err := b.Bytes(Vector{EntryID: 1, Offset: 2, Length: 10})
	require.Error(t, err)

	_, err = b.Bytes(Vector{EntryID: 1, Offset: -1, Length: 1})
	require.ErrorIs(t, err, ErrInvalidIndex)

	data, err := b.Bytes(Vector{EntryID: 1, Offset: 0, Length: 4})
	require.NoError(t, err)
	assert.Equal(t, "stol", string(data))
	require.NoError(t, b.Close())
}

func TestOpenBlobs_missing(t *testing.T) {
	t.Parallel()

	_, err := OpenBlobs(filepath.Join(t.TempDir(), "missing.dat"))
	require.Error(t, err)
}
