package slice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDifferenceRemovedAdded(t *testing.T) {
	removed, added := DifferenceRemovedAdded([]string{"a", "b", "c"}, []string{"b", "d", "c", "e"})
	assert.Equal(t, []string{"a"}, removed)
	assert.Equal(t, []string{"d", "e"}, added)

	removedInts, addedInts := DifferenceRemovedAdded([]int{1, 2}, []int{1, 2})
	assert.Empty(t, removedInts)
	assert.Empty(t, addedInts)
}

func TestFilter(t *testing.T) {
	assert.Equal(t, []int{2, 4}, Filter([]int{1, 2, 3, 4}, func(i int) bool { return i%2 == 0 }))
	assert.Empty(t, Filter([]string{"stderr"}, func(s string) bool { return s != "stderr" }))
}

func TestDedup(t *testing.T) {
	type item struct {
		key string
		idx int
	}
	vals := []item{{"a", 0}, {"b", 1}, {"a", 2}, {"c", 3}, {"b", 4}}
	res := Dedup(vals, func(i item) string { return i.key })
	assert.Equal(t, []item{{"a", 0}, {"b", 1}, {"c", 3}}, res)
}
