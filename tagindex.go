package vispipe

import (
	"slices"

	"golang.org/x/exp/maps"
)

// tagIndexMap stores the endpoint groups of one node side, addressed by an
// optional tag and a zero-based index. Entries are allocated lazily and only
// ever grow; within a tag, indices are contiguous from 0. There is no
// removal.
//
// Visitation is lexicographic by tag, then index-ascending. The ordering is
// load-bearing: the auto-naming pass in Graph.Build relies on it being
// deterministic, so any replacement container must keep sorted-key
// traversal.
type tagIndexMap[E any] struct {
	entries map[string][]*E
}

// get returns the entry for tag, creating an empty one if absent.
func (m *tagIndexMap[E]) get(tag string) []*E {
	if m.entries == nil {
		m.entries = make(map[string][]*E)
	}
	if _, ok := m.entries[tag]; !ok {
		m.entries[tag] = []*E{}
	}
	return m.entries[tag]
}

// getOrGrow returns the endpoint at (tag, index), extending the entry with
// fresh zero endpoints if index is beyond the current length.
func (m *tagIndexMap[E]) getOrGrow(tag string, index int) *E {
	if m.entries == nil {
		m.entries = make(map[string][]*E)
	}
	for len(m.entries[tag]) <= index {
		m.entries[tag] = append(m.entries[tag], new(E))
	}
	return m.entries[tag][index]
}

// visit calls fn for every stored endpoint. count is the total number of
// endpoints under the endpoint's tag, which the renderer needs to decide
// between the "TAG:name" and "TAG:index:name" forms.
func (m *tagIndexMap[E]) visit(fn func(tag string, index, count int, e *E)) {
	tags := maps.Keys(m.entries)
	slices.Sort(tags)
	for _, tag := range tags {
		entry := m.entries[tag]
		for i, e := range entry {
			fn(tag, i, len(entry), e)
		}
	}
}
