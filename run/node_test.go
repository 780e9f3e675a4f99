package run_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/optakt/rabinfind/run"
)

func TestNodeLeaf(t *testing.T) {
	n := run.Leaf(3)
	assert.Equal(t, uint32(3), n.State)
	assert.True(t, n.Graft)
	assert.False(t, n.Interior())
}

func TestNodeBranch(t *testing.T) {
	l := run.Leaf(1)
	r := run.Leaf(2)
	n := run.Branch(0, l, r)

	assert.False(t, n.Graft)
	assert.True(t, n.Interior())
	assert.Same(t, l, n.Left)
	assert.Same(t, r, n.Right)
}
