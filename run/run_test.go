package run_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optakt/rabinfind/run"
)

func TestRunSaveSubrunsOutermost(t *testing.T) {
	r := run.New(3, 0)

	root := run.Branch(0, run.Leaf(1), run.Leaf(2))
	ok := r.SaveSubruns(root)
	require.True(t, ok)

	assert.True(t, r.HasWitness(0))
	assert.Same(t, root, r.Witness(0))
	assert.Nil(t, r.DependencyRoot(0))
	require.Len(t, r.Roots(), 1)
	assert.Same(t, root, r.Roots()[0])
}

func TestRunSaveSubrunsIsSingleAssignment(t *testing.T) {
	r := run.New(2, 0)

	first := run.Branch(0, run.Leaf(1), run.Leaf(1))
	require.True(t, r.SaveSubruns(first))

	second := run.Branch(0, run.Leaf(1), run.Leaf(1))
	ok := r.SaveSubruns(second)

	assert.False(t, ok)
	assert.Same(t, first, r.Witness(0))
	assert.Len(t, r.Roots(), 1)
}

func TestRunSaveSubrunsRegistersInteriorDescendants(t *testing.T) {
	r := run.New(4, 0)

	inner := run.Branch(1, run.Leaf(2), run.Leaf(3))
	root := run.Branch(0, inner, run.Leaf(2))
	r.SaveSubruns(root)

	assert.True(t, r.HasWitness(1))
	assert.Same(t, inner, r.Witness(1))
	assert.Same(t, root, r.DependencyRoot(1))
}

func TestRunSaveSubrunsDoesNotOverwriteExistingDescendantWitness(t *testing.T) {
	r := run.New(2, 0)

	ownRoot := run.Branch(1, run.Leaf(0), run.Leaf(0))
	require.True(t, r.SaveSubruns(ownRoot))

	outer := run.Branch(0, ownRoot, run.Leaf(1))
	r.SaveSubruns(outer)

	assert.Same(t, ownRoot, r.Witness(1))
	assert.Nil(t, r.DependencyRoot(1))
}

func TestRunFrontier(t *testing.T) {
	r := run.New(3, 0)

	r.SaveSubruns(run.Branch(1, run.Leaf(2), run.Leaf(2)))
	r.SaveSubruns(run.Branch(0, run.Leaf(1), run.Leaf(2)))

	frontier := r.Frontier(0, nil)
	assert.Equal(t, []uint32{2, 2, 2}, frontier)
}
