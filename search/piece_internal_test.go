package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPieceOrderingGraftFirst(t *testing.T) {
	graft := sentinelPiece(4, 0)
	plain := seedPiece(4, 0)

	assert.True(t, less(graft, plain))
	assert.False(t, less(plain, graft))
}

func TestPieceOrderingByState(t *testing.T) {
	a := seedPiece(4, 0)
	b := seedPiece(4, 1)

	assert.True(t, less(a, b))
}

func TestPieceOrderingByHeight(t *testing.T) {
	a := seedPiece(4, 0)
	b := seedPiece(4, 0)
	b.height = 1

	assert.True(t, less(a, b))
}

func TestPieceSimilarIgnoresHeight(t *testing.T) {
	a := seedPiece(4, 2)
	b := seedPiece(4, 2)
	b.height = 5

	assert.True(t, similar(a, b))
}

func TestPieceSimilarRequiresMatchingSets(t *testing.T) {
	a := seedPiece(4, 2)
	b := seedPiece(4, 2)
	b.internal.Set(3)

	assert.False(t, similar(a, b))
}

func TestCombineClosesWhenNonliveEmpty(t *testing.T) {
	left := seedPiece(2, 0)
	right := seedPiece(2, 0)

	p := combine(0, left, right)

	assert.True(t, p.graft)
	assert.True(t, p.nonlive.None())
	assert.Equal(t, uint32(1), p.height)
}

func TestCombineStaysOpenWhenNonliveNonEmpty(t *testing.T) {
	left := seedPiece(3, 0)
	right := newPiece(3, 2)

	p := combine(1, left, right)

	assert.False(t, p.graft)
	assert.Equal(t, []uint{0}, p.nonlive.Elements())
	assert.Equal(t, []uint{1}, p.internal.Elements())
	assert.ElementsMatch(t, []uint{0, 1}, p.all.Elements())
}

func TestUnfoldLeafAndBranch(t *testing.T) {
	leaf := seedPiece(2, 0)
	node := unfold(leaf)
	assert.True(t, node.Graft)
	assert.Equal(t, uint32(0), node.State)

	left := seedPiece(3, 0)
	right := newPiece(3, 2)
	composite := combine(1, left, right)
	require.False(t, composite.graft)

	tree := unfold(composite)
	assert.True(t, tree.Interior())
	assert.Equal(t, uint32(1), tree.State)
}
