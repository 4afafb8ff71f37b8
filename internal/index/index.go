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

// Package index implements a sorted in-memory word index.
package index

import (
	"cmp"
	"fmt"
	"slices"
	"sort"
	"strings"
)

// Index is a generic sorted array index. Items are keyed by their String
// value passed through the index's normalization function.
type Index[V fmt.Stringer] struct {
	keys  []string
	items []V

	norm func(string) string
}

// New creates an index from the given items. norm normalizes both item keys
// and queries; a nil norm compares keys as they are. Items sharing a key keep
// their relative order.
func New[V fmt.Stringer](items []V, norm func(string) string) *Index[V] {
	if norm == nil {
		norm = func(s string) string { return s }
	}

	type keyed struct {
		key  string
		item V
	}
	sorted := make([]keyed, len(items))
	for i, v := range items {
		sorted[i] = keyed{key: norm(v.String()), item: v}
	}
	slices.SortStableFunc(sorted, func(a, b keyed) int {
		return cmp.Compare(a.key, b.key)
	})

	idx := &Index[V]{
		keys:  make([]string, len(sorted)),
		items: make([]V, len(sorted)),
		norm:  norm,
	}
	for i, k := range sorted {
		idx.keys[i] = k.key
		idx.items[i] = k.item
	}
	return idx
}

// Len returns the number of items in the index.
func (idx *Index[V]) Len() int {
	return len(idx.items)
}

// Search performs a binary search over the index and returns the items whose
// key matches the query.
func (idx *Index[V]) Search(query string) []V {
	q := idx.norm(query)
	i, found := slices.BinarySearch(idx.keys, q)
	if !found {
		return nil
	}

	j := i
	//nolint:revive // This block increments j.
	for ; j < len(idx.keys) && idx.keys[j] == q; j++ {
	}
	return idx.items[i:j]
}

// Prefix returns the items whose key starts with the given prefix.
func (idx *Index[V]) Prefix(prefix string) []V {
	p := idx.norm(prefix)
	i := sort.SearchStrings(idx.keys, p)

	j := i
	//nolint:revive // This block increments j.
	for ; j < len(idx.keys) && strings.HasPrefix(idx.keys[j], p); j++ {
	}
	if i == j {
		return nil
	}
	return idx.items[i:j]
}
