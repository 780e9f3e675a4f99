package bitset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optakt/rabinfind/bitset"
)

func TestSetBasics(t *testing.T) {
	s := bitset.New(8)

	assert.True(t, s.None())
	assert.False(t, s.Any())

	s.Set(3)
	assert.True(t, s.Test(3))
	assert.False(t, s.Test(4))
	assert.True(t, s.Any())
	assert.False(t, s.None())

	was := s.TestAndSet(5)
	assert.False(t, was)
	assert.True(t, s.Test(5))
	was = s.TestAndSet(5)
	assert.True(t, was)

	s.Reset(3)
	assert.False(t, s.Test(3))
}

func TestSetUnionDifference(t *testing.T) {
	a := bitset.Of(8, 1, 2, 3)
	b := bitset.Of(8, 3, 4, 5)

	union := bitset.Union(a, b)
	require.Equal(t, []uint{1, 2, 3, 4, 5}, union.Elements())

	diff := bitset.Difference(a, b)
	require.Equal(t, []uint{1, 2}, diff.Elements())

	// Originals must be untouched by the free functions.
	require.Equal(t, []uint{1, 2, 3}, a.Elements())
	require.Equal(t, []uint{3, 4, 5}, b.Elements())

	a.Union(b)
	require.Equal(t, []uint{1, 2, 3, 4, 5}, a.Elements())
}

func TestSetIntersects(t *testing.T) {
	a := bitset.Of(8, 1, 2)
	b := bitset.Of(8, 2, 3)
	c := bitset.Of(8, 4, 5)

	assert.True(t, a.Intersects(b))
	assert.False(t, a.Intersects(c))
}

func TestSetEqual(t *testing.T) {
	a := bitset.Of(8, 1, 2, 3)
	b := bitset.Of(8, 1, 2, 3)
	c := bitset.Of(8, 1, 2)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestSetCompare(t *testing.T) {
	empty := bitset.New(8)
	low := bitset.Of(8, 0)
	high := bitset.Of(8, 7)

	assert.Equal(t, 0, empty.Compare(bitset.New(8)))
	assert.Equal(t, -1, empty.Compare(low))
	assert.Equal(t, 1, low.Compare(empty))
	assert.Equal(t, -1, low.Compare(high))
	assert.Equal(t, 1, high.Compare(low))
}

func TestSetClone(t *testing.T) {
	a := bitset.Of(8, 1, 2)
	b := a.Clone()
	b.Set(3)

	assert.False(t, a.Test(3))
	assert.True(t, b.Test(3))
}

func TestSetString(t *testing.T) {
	s := bitset.Of(8, 2, 0, 5)
	assert.Equal(t, "{0 2 5}", s.String())
}
