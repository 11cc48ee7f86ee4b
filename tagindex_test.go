package vispipe

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestTagIndexMapGrow(t *testing.T) {
	var m tagIndexMap[SourceBase]

	e := m.getOrGrow("IMAGE", 2)
	assert.NotZero(t, e)
	assert.Equal(t, 3, len(m.get("IMAGE")))

	// Repeated access returns the same endpoint.
	e.name = "x"
	assert.Equal(t, "x", m.getOrGrow("IMAGE", 2).name)

	// Growing never shrinks or reallocates earlier entries.
	first := m.getOrGrow("IMAGE", 0)
	m.getOrGrow("IMAGE", 5)
	assert.Equal(t, first, m.getOrGrow("IMAGE", 0))
	assert.Equal(t, 6, len(m.get("IMAGE")))
}

func TestTagIndexMapVisitOrder(t *testing.T) {
	var m tagIndexMap[SourceBase]
	m.getOrGrow("LOOP", 0)
	m.getOrGrow("", 1)
	m.getOrGrow("IMAGE", 0)

	type visited struct {
		tag          string
		index, count int
	}
	var got []visited
	m.visit(func(tag string, index, count int, _ *SourceBase) {
		got = append(got, visited{tag, index, count})
	})

	// Lexicographic by tag, index-ascending within a tag. The empty tag
	// sorts first.
	assert.Equal(t, []visited{
		{"", 0, 2},
		{"", 1, 2},
		{"IMAGE", 0, 1},
		{"LOOP", 0, 1},
	}, got)
}

func TestTagIndexMapVisitEmpty(t *testing.T) {
	var m tagIndexMap[DestinationBase]
	calls := 0
	m.visit(func(string, int, int, *DestinationBase) { calls++ })
	assert.Equal(t, 0, calls)
}
